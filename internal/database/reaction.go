package database

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrEmptyReactionKind  = errors.New("вид реакции не может быть пустым")
	ErrLongReactionKind   = errors.New("вид реакции не должен превышать 20 символов")
	ErrReactionToggleFail = errors.New("ошибка переключения реакции")
)

type ReactionService struct {
	db *Database
}

func NewReactionService(db *Database) *ReactionService {
	return &ReactionService{db: db}
}

// Toggle переключает реакцию пользователя на пост: если реакция
// (post, user, kind) уже стоит — снимает её, иначе ставит.
// Возвращает актуальные счетчики реакций поста по видам.
func (rs *ReactionService) Toggle(postID, userID int, kind string) (map[string]int, error) {
	kind = strings.TrimSpace(kind)
	if kind == "" {
		return nil, ErrEmptyReactionKind
	}
	if len(kind) > 20 {
		return nil, ErrLongReactionKind
	}

	exists, err := postExists(rs.db, postID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrPostNotFound
	}

	// Сначала пробуем снять реакцию
	del := `DELETE FROM reactions WHERE post_id = ? AND user_id = ? AND kind = ?`
	result, err := rs.db.DBConn.Exec(del, postID, userID, kind)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReactionToggleFail, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, err
	}

	// Реакции не было — ставим. Уникальность (post, user, kind)
	// гарантирует ограничение в схеме.
	if rowsAffected == 0 {
		insert := `INSERT INTO reactions (post_id, user_id, kind, created) VALUES (?, ?, ?, ?)`
		if _, err := rs.db.DBConn.Exec(insert, postID, userID, kind, time.Now()); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrReactionToggleFail, err)
		}
	}

	return rs.GetCounts(postID)
}

// GetCounts получает счетчики реакций поста, сгруппированные по видам.
// Виды без реакций в карту не попадают.
func (rs *ReactionService) GetCounts(postID int) (map[string]int, error) {
	query := `SELECT kind, COUNT(*) FROM reactions WHERE post_id = ? GROUP BY kind`

	rows, err := rs.db.DBConn.Query(query, postID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var kind string
		var count int
		if err := rows.Scan(&kind, &count); err != nil {
			return nil, err
		}
		counts[kind] = count
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return counts, nil
}
