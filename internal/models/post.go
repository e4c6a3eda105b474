package models

import "time"

type Post struct {
	ID        int       // Уникальный идентификатор
	Content   string    // Текст поста
	ImageData string    // Сгенерированное изображение в base64 (может быть пустым)
	UserID    int       // ID автора
	Created   time.Time // Дата создания
	// Данные автора (для JOIN запросов)
	Username string // Имя автора
	Avatar   string // Аватар автора
	// Данные для ленты (заполняются при чтении)
	Comments   []*Comment     // Комментарии поста (по возрастанию даты)
	Reactions  map[string]int // Счетчики реакций по видам
	Categories []*Category    // Категории поста
}
