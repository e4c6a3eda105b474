package models

import "time"

type Notification struct {
	ID      int       // Уникальный идентификатор
	UserID  int       // ID получателя
	Message string    // Текст уведомления
	IsRead  bool      // Прочитано ли уведомление
	Created time.Time // Дата создания
}
