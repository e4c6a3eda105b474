package database

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"beesociety/internal/models"
)

var (
	ErrPostNotFound     = errors.New("пост не найден")
	ErrEmptyContent     = errors.New("содержимое поста не может быть пустым")
	ErrLongContent      = errors.New("содержимое поста не должно превышать 10000 символов")
	ErrPostCreateFailed = errors.New("ошибка создания поста")
)

type PostService struct {
	db *Database
}

func NewPostService(db *Database) *PostService {
	return &PostService{db: db}
}

// CreatePost создает новый пост. Изображение (base64) может быть пустым —
// хранилище его не интерпретирует. Посты неизменяемы после создания.
func (ps *PostService) CreatePost(content, imageData string, userID int, categoryIDs []int) (*models.Post, error) {
	if err := ps.validatePostData(content); err != nil {
		return nil, err
	}

	query := `INSERT INTO posts (content, image_data, user_id, created)
			  VALUES (?, ?, ?, ?) RETURNING id, created`

	var post models.Post
	now := time.Now()

	var image sql.NullString
	if imageData != "" {
		image = sql.NullString{String: imageData, Valid: true}
	}

	err := ps.db.DBConn.QueryRow(query, content, image, userID, now).Scan(&post.ID, &post.Created)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPostCreateFailed, err)
	}

	post.Content = content
	post.ImageData = imageData
	post.UserID = userID

	// Привязываем пост к категориям
	for _, categoryID := range categoryIDs {
		insert := `INSERT OR IGNORE INTO post_categories (post_id, category_id) VALUES (?, ?)`
		if _, err := ps.db.DBConn.Exec(insert, post.ID, categoryID); err != nil {
			return nil, fmt.Errorf("ошибка привязки поста к категории: %v", err)
		}
	}

	return &post, nil
}

// GetPost получает пост по ID с информацией об авторе,
// комментариями и счетчиками реакций
func (ps *PostService) GetPost(id int) (*models.Post, error) {
	query := `SELECT p.id, p.content, p.image_data, p.user_id, p.created, u.username, u.avatar
			  FROM posts p
			  JOIN users u ON p.user_id = u.id
			  WHERE p.id = ?`

	var post models.Post
	var image sql.NullString
	err := ps.db.DBConn.QueryRow(query, id).Scan(
		&post.ID, &post.Content, &image, &post.UserID,
		&post.Created, &post.Username, &post.Avatar)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	post.ImageData = image.String

	if err := ps.enrichPost(&post); err != nil {
		return nil, err
	}

	return &post, nil
}

// GetFeed получает ленту: все посты по убыванию даты создания,
// каждый с комментариями и счетчиками реакций
func (ps *PostService) GetFeed(limit, offset int) ([]*models.Post, error) {
	query := `SELECT p.id, p.content, p.image_data, p.user_id, p.created, u.username, u.avatar
			  FROM posts p
			  JOIN users u ON p.user_id = u.id
			  ORDER BY p.created DESC
			  LIMIT ? OFFSET ?`

	posts, err := ps.queryPosts(query, limit, offset)
	if err != nil {
		return nil, err
	}

	for _, post := range posts {
		if err := ps.enrichPost(post); err != nil {
			return nil, err
		}
	}

	return posts, nil
}

// GetUserPosts получает посты конкретного пользователя
func (ps *PostService) GetUserPosts(userID int) ([]*models.Post, error) {
	query := `SELECT p.id, p.content, p.image_data, p.user_id, p.created, u.username, u.avatar
			  FROM posts p
			  JOIN users u ON p.user_id = u.id
			  WHERE p.user_id = ?
			  ORDER BY p.created DESC`

	return ps.queryPosts(query, userID)
}

// GetPostsCount получает общее количество постов
func (ps *PostService) GetPostsCount() (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM posts`
	err := ps.db.DBConn.QueryRow(query).Scan(&count)
	return count, err
}

// queryPosts выполняет запрос, возвращающий строки постов с автором
func (ps *PostService) queryPosts(query string, args ...interface{}) ([]*models.Post, error) {
	rows, err := ps.db.DBConn.Query(query, args...)
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

// enrichPost дополняет пост комментариями (по возрастанию даты)
// и счетчиками реакций. Агрегаты не хранятся — считаются при чтении.
func (ps *PostService) enrichPost(post *models.Post) error {
	query := `SELECT c.id, c.content, c.post_id, c.user_id, c.created, u.username, u.avatar
			  FROM comments c
			  JOIN users u ON c.user_id = u.id
			  WHERE c.post_id = ?
			  ORDER BY c.created ASC`

	rows, err := ps.db.DBConn.Query(query, post.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var comment models.Comment
		err := rows.Scan(&comment.ID, &comment.Content, &comment.PostID,
			&comment.UserID, &comment.Created, &comment.Username, &comment.Avatar)
		if err != nil {
			return err
		}
		post.Comments = append(post.Comments, &comment)
	}
	if err = rows.Err(); err != nil {
		return err
	}

	counts := `SELECT kind, COUNT(*) FROM reactions WHERE post_id = ? GROUP BY kind`
	reactionRows, err := ps.db.DBConn.Query(counts, post.ID)
	if err != nil {
		return err
	}
	defer reactionRows.Close()

	post.Reactions = make(map[string]int)
	for reactionRows.Next() {
		var kind string
		var count int
		if err := reactionRows.Scan(&kind, &count); err != nil {
			return err
		}
		post.Reactions[kind] = count
	}
	if err = reactionRows.Err(); err != nil {
		return err
	}

	return nil
}

// validatePostData валидирует данные поста
func (ps *PostService) validatePostData(content string) error {
	content = strings.TrimSpace(content)

	if len(content) == 0 {
		return ErrEmptyContent
	}
	if len(content) > 10000 {
		return ErrLongContent
	}

	return nil
}

// postExists проверяет существование поста
func postExists(db *Database, postID int) (bool, error) {
	var exists int
	query := `SELECT 1 FROM posts WHERE id = ?`
	err := db.DBConn.QueryRow(query, postID).Scan(&exists)
	if err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
