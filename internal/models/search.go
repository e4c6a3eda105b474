package models

// SearchResults объединяет результаты поиска по всем сущностям
type SearchResults struct {
	Posts      []*Post     // Посты, содержащие запрос в тексте
	Users      []*User     // Пользователи с запросом в имени или email
	Categories []*Category // Категории с запросом в названии
}
