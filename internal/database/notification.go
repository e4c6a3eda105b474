package database

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"beesociety/internal/models"
)

var (
	ErrEmptyNotification        = errors.New("текст уведомления не может быть пустым")
	ErrNotificationCreateFailed = errors.New("ошибка создания уведомления")
	ErrNotificationNotFound     = errors.New("уведомление не найдено")
)

type NotificationService struct {
	db *Database
}

func NewNotificationService(db *Database) *NotificationService {
	return &NotificationService{db: db}
}

// Create создает уведомление для пользователя.
// Новое уведомление всегда непрочитано.
func (ns *NotificationService) Create(userID int, message string) (*models.Notification, error) {
	if strings.TrimSpace(message) == "" {
		return nil, ErrEmptyNotification
	}

	query := `INSERT INTO notifications (user_id, message, is_read, created)
			  VALUES (?, ?, 0, ?) RETURNING id, created`

	var notification models.Notification
	now := time.Now()

	err := ns.db.DBConn.QueryRow(query, userID, message, now).Scan(
		&notification.ID, &notification.Created)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotificationCreateFailed, err)
	}

	notification.UserID = userID
	notification.Message = message
	notification.IsRead = false

	return &notification, nil
}

// GetUserNotifications получает уведомления пользователя по убыванию даты
func (ns *NotificationService) GetUserNotifications(userID int) ([]*models.Notification, error) {
	query := `SELECT id, user_id, message, is_read, created
			  FROM notifications
			  WHERE user_id = ?
			  ORDER BY created DESC`

	rows, err := ns.db.DBConn.Query(query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notifications []*models.Notification
	for rows.Next() {
		var notification models.Notification
		err := rows.Scan(&notification.ID, &notification.UserID,
			&notification.Message, &notification.IsRead, &notification.Created)
		if err != nil {
			return nil, err
		}
		notifications = append(notifications, &notification)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return notifications, nil
}

// CountUnread получает количество непрочитанных уведомлений пользователя
func (ns *NotificationService) CountUnread(userID int) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM notifications WHERE user_id = ? AND is_read = 0`
	err := ns.db.DBConn.QueryRow(query, userID).Scan(&count)
	return count, err
}

// MarkRead помечает уведомление прочитанным.
// Чужое уведомление пометить нельзя.
func (ns *NotificationService) MarkRead(id, userID int) error {
	query := `UPDATE notifications SET is_read = 1 WHERE id = ? AND user_id = ?`
	result, err := ns.db.DBConn.Exec(query, id, userID)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrNotificationNotFound
	}

	return nil
}

// MarkAllRead помечает все уведомления пользователя прочитанными
func (ns *NotificationService) MarkAllRead(userID int) error {
	query := `UPDATE notifications SET is_read = 1 WHERE user_id = ?`
	_, err := ns.db.DBConn.Exec(query, userID)
	return err
}
