package models

import "time"

type Reaction struct {
	ID      int       // Уникальный идентификатор
	PostID  int       // ID поста
	UserID  int       // ID пользователя
	Kind    string    // Вид реакции (эмодзи)
	Created time.Time // Дата создания
}
