package database

import (
	"fmt"
	"sync/atomic"
	"testing"

	"beesociety/internal/models"
)

var testDBCounter atomic.Int64

// newTestDatabase открывает отдельную базу в памяти для каждого теста.
// cache=shared нужен, чтобы все соединения пула видели одну базу.
func newTestDatabase(t *testing.T) *Database {
	t.Helper()

	dsn := fmt.Sprintf("file:beetest%d?mode=memory&cache=shared", testDBCounter.Add(1))
	db, err := NewDatabase(dsn)
	if err != nil {
		t.Fatalf("не удалось открыть тестовую базу: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return db
}

func createTestUser(t *testing.T, db *Database, username string) *models.User {
	t.Helper()

	us := NewUserService(db)
	user, err := us.CreateUser(username, username+"@example.com", "password123", "🐝", "")
	if err != nil {
		t.Fatalf("не удалось создать пользователя %q: %v", username, err)
	}
	return user
}

func createTestPost(t *testing.T, db *Database, userID int, content string) *models.Post {
	t.Helper()

	ps := NewPostService(db)
	post, err := ps.CreatePost(content, "", userID, nil)
	if err != nil {
		t.Fatalf("не удалось создать пост: %v", err)
	}
	return post
}
