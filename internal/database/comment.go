package database

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"beesociety/internal/models"
)

var (
	ErrEmptyCommentContent = errors.New("содержимое комментария не может быть пустым")
	ErrLongCommentContent  = errors.New("содержимое комментария не должно превышать 2000 символов")
	ErrCommentCreateFailed = errors.New("ошибка создания комментария")
)

type CommentService struct {
	db *Database
}

func NewCommentService(db *Database) *CommentService {
	return &CommentService{db: db}
}

// CreateComment создает новый комментарий к существующему посту.
// Комментарии неизменяемы после создания.
func (cs *CommentService) CreateComment(content string, postID, userID int) (*models.Comment, error) {
	if err := cs.validateCommentData(content); err != nil {
		return nil, err
	}

	exists, err := postExists(cs.db, postID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrPostNotFound
	}

	query := `INSERT INTO comments (content, post_id, user_id, created)
			  VALUES (?, ?, ?, ?) RETURNING id, created`

	var comment models.Comment
	now := time.Now()

	err = cs.db.DBConn.QueryRow(query, content, postID, userID, now).Scan(
		&comment.ID, &comment.Created)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCommentCreateFailed, err)
	}

	comment.Content = content
	comment.PostID = postID
	comment.UserID = userID

	return &comment, nil
}

// GetPostComments получает все комментарии поста по возрастанию даты
func (cs *CommentService) GetPostComments(postID int) ([]*models.Comment, error) {
	query := `SELECT c.id, c.content, c.post_id, c.user_id, c.created, u.username, u.avatar
			  FROM comments c
			  JOIN users u ON c.user_id = u.id
			  WHERE c.post_id = ?
			  ORDER BY c.created ASC`

	rows, err := cs.db.DBConn.Query(query, postID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var comments []*models.Comment
	for rows.Next() {
		var comment models.Comment
		err := rows.Scan(&comment.ID, &comment.Content, &comment.PostID, &comment.UserID,
			&comment.Created, &comment.Username, &comment.Avatar)
		if err != nil {
			return nil, err
		}
		comments = append(comments, &comment)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return comments, nil
}

// GetCommentsCount получает общее количество комментариев поста
func (cs *CommentService) GetCommentsCount(postID int) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM comments WHERE post_id = ?`
	err := cs.db.DBConn.QueryRow(query, postID).Scan(&count)
	return count, err
}

// validateCommentData валидирует данные комментария
func (cs *CommentService) validateCommentData(content string) error {
	content = strings.TrimSpace(content)

	if len(content) == 0 {
		return ErrEmptyCommentContent
	}
	if len(content) > 2000 {
		return ErrLongCommentContent
	}

	return nil
}
