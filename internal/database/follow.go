package database

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"beesociety/internal/models"
)

var (
	ErrSelfFollow         = errors.New("нельзя подписаться на самого себя")
	ErrFollowCreateFailed = errors.New("ошибка создания подписки")
	ErrFollowDeleteFailed = errors.New("ошибка удаления подписки")
)

type FollowService struct {
	db            *Database
	notifications *NotificationService
}

func NewFollowService(db *Database, notifications *NotificationService) *FollowService {
	return &FollowService{db: db, notifications: notifications}
}

// Follow подписывает follower на followee. Повторная подписка не создает
// дубликата. При новой подписке followee получает уведомление.
func (fs *FollowService) Follow(followerID, followeeID int) error {
	if followerID == followeeID {
		return ErrSelfFollow
	}

	// Проверяем, что followee существует
	var followeeName string
	query := `SELECT username FROM users WHERE id = ?`
	err := fs.db.DBConn.QueryRow(query, followeeID).Scan(&followeeName)
	if err != nil {
		if err == sql.ErrNoRows {
			return ErrUserNotFound
		}
		return err
	}

	insert := `INSERT OR IGNORE INTO follows (follower_id, followee_id, created) VALUES (?, ?, ?)`
	result, err := fs.db.DBConn.Exec(insert, followerID, followeeID, time.Now())
	if err != nil {
		return fmt.Errorf("%w: %v", ErrFollowCreateFailed, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	// Уведомляем только о новой подписке, не о повторной
	if rowsAffected > 0 {
		var followerName string
		if err := fs.db.DBConn.QueryRow(query, followerID).Scan(&followerName); err != nil {
			return err
		}

		message := fmt.Sprintf("Пользователь %s подписался на вас", followerName)
		if _, err := fs.notifications.Create(followeeID, message); err != nil {
			return err
		}
	}

	return nil
}

// Unfollow отписывает follower от followee.
// Отсутствие подписки не считается ошибкой.
func (fs *FollowService) Unfollow(followerID, followeeID int) error {
	query := `DELETE FROM follows WHERE follower_id = ? AND followee_id = ?`
	_, err := fs.db.DBConn.Exec(query, followerID, followeeID)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrFollowDeleteFailed, err)
	}
	return nil
}

// IsFollowing проверяет, подписан ли follower на followee
func (fs *FollowService) IsFollowing(followerID, followeeID int) (bool, error) {
	var exists int
	query := `SELECT 1 FROM follows WHERE follower_id = ? AND followee_id = ?`
	err := fs.db.DBConn.QueryRow(query, followerID, followeeID).Scan(&exists)
	if err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// GetFollowCounts получает количество подписчиков и подписок пользователя
func (fs *FollowService) GetFollowCounts(userID int) (*models.FollowCounts, error) {
	var counts models.FollowCounts

	query := `SELECT
				(SELECT COUNT(*) FROM follows WHERE followee_id = ?) as followers,
				(SELECT COUNT(*) FROM follows WHERE follower_id = ?) as following`

	err := fs.db.DBConn.QueryRow(query, userID, userID).Scan(&counts.Followers, &counts.Following)
	if err != nil {
		return nil, err
	}

	return &counts, nil
}

// GetFollowers получает подписчиков пользователя
func (fs *FollowService) GetFollowers(userID int) ([]*models.User, error) {
	query := `SELECT u.id, u.username, u.avatar
			  FROM users u
			  JOIN follows f ON u.id = f.follower_id
			  WHERE f.followee_id = ?
			  ORDER BY f.created DESC`

	return fs.queryUsers(query, userID)
}

// GetFollowing получает подписки пользователя
func (fs *FollowService) GetFollowing(userID int) ([]*models.User, error) {
	query := `SELECT u.id, u.username, u.avatar
			  FROM users u
			  JOIN follows f ON u.id = f.followee_id
			  WHERE f.follower_id = ?
			  ORDER BY f.created DESC`

	return fs.queryUsers(query, userID)
}

func (fs *FollowService) queryUsers(query string, args ...interface{}) ([]*models.User, error) {
	rows, err := fs.db.DBConn.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		var user models.User
		if err := rows.Scan(&user.ID, &user.Username, &user.Avatar); err != nil {
			return nil, err
		}
		users = append(users, &user)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return users, nil
}
