package database

import (
	"database/sql"
	"strings"

	"beesociety/internal/models"
)

type SearchService struct {
	db *Database
}

func NewSearchService(db *Database) *SearchService {
	return &SearchService{db: db}
}

// Search ищет подстроку запроса без учета регистра в тексте постов,
// имени/email пользователей и названии категорий.
// Пустой запрос возвращает пустые результаты.
func (ss *SearchService) Search(query string) (*models.SearchResults, error) {
	results := &models.SearchResults{}

	query = strings.TrimSpace(query)
	if query == "" {
		return results, nil
	}

	pattern := "%" + strings.ToLower(query) + "%"

	posts, err := ss.searchPosts(pattern)
	if err != nil {
		return nil, err
	}
	results.Posts = posts

	users, err := ss.searchUsers(pattern)
	if err != nil {
		return nil, err
	}
	results.Users = users

	categories, err := ss.searchCategories(pattern)
	if err != nil {
		return nil, err
	}
	results.Categories = categories

	return results, nil
}

func (ss *SearchService) searchPosts(pattern string) ([]*models.Post, error) {
	query := `SELECT p.id, p.content, p.image_data, p.user_id, p.created, u.username, u.avatar
			  FROM posts p
			  JOIN users u ON p.user_id = u.id
			  WHERE LOWER(p.content) LIKE ?
			  ORDER BY p.created DESC`

	rows, err := ss.db.DBConn.Query(query, pattern)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []*models.Post
	for rows.Next() {
		var post models.Post
		var image sql.NullString
		err := rows.Scan(&post.ID, &post.Content, &image, &post.UserID,
			&post.Created, &post.Username, &post.Avatar)
		if err != nil {
			return nil, err
		}
		post.ImageData = image.String
		posts = append(posts, &post)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return posts, nil
}

func (ss *SearchService) searchUsers(pattern string) ([]*models.User, error) {
	query := `SELECT id, username, email, avatar, bio, created
			  FROM users
			  WHERE LOWER(username) LIKE ? OR LOWER(email) LIKE ?
			  ORDER BY username`

	rows, err := ss.db.DBConn.Query(query, pattern, pattern)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		var user models.User
		err := rows.Scan(&user.ID, &user.Username, &user.Email,
			&user.Avatar, &user.Bio, &user.Created)
		if err != nil {
			return nil, err
		}
		users = append(users, &user)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return users, nil
}

func (ss *SearchService) searchCategories(pattern string) ([]*models.Category, error) {
	query := `SELECT id, name, slug, description, created
			  FROM categories
			  WHERE LOWER(name) LIKE ?
			  ORDER BY name`

	rows, err := ss.db.DBConn.Query(query, pattern)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []*models.Category
	for rows.Next() {
		var category models.Category
		err := rows.Scan(&category.ID, &category.Name, &category.Slug,
			&category.Description, &category.Created)
		if err != nil {
			return nil, err
		}
		categories = append(categories, &category)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return categories, nil
}
