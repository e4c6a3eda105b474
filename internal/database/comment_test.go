package database

import (
	"errors"
	"testing"
	"time"
)

func TestCreateCommentOnMissingPost(t *testing.T) {
	db := newTestDatabase(t)
	alice := createTestUser(t, db, "alice")
	cs := NewCommentService(db)

	_, err := cs.CreateComment("hello?", 42, alice.ID)
	if !errors.Is(err, ErrPostNotFound) {
		t.Errorf("ожидался ErrPostNotFound, получено %v", err)
	}
}

func TestCreateCommentValidation(t *testing.T) {
	db := newTestDatabase(t)
	alice := createTestUser(t, db, "alice")
	post := createTestPost(t, db, alice.ID, "a post")
	cs := NewCommentService(db)

	if _, err := cs.CreateComment("", post.ID, alice.ID); !errors.Is(err, ErrEmptyCommentContent) {
		t.Errorf("ожидался ErrEmptyCommentContent, получено %v", err)
	}
}

func TestGetPostCommentsOrder(t *testing.T) {
	db := newTestDatabase(t)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	post := createTestPost(t, db, alice.ID, "a post")
	cs := NewCommentService(db)

	if _, err := cs.CreateComment("first", post.ID, bob.ID); err != nil {
		t.Fatalf("CreateComment вернул ошибку: %v", err)
	}
	time.Sleep(5 * time.Millisecond)
	if _, err := cs.CreateComment("second", post.ID, alice.ID); err != nil {
		t.Fatalf("CreateComment вернул ошибку: %v", err)
	}

	comments, err := cs.GetPostComments(post.ID)
	if err != nil {
		t.Fatalf("GetPostComments вернул ошибку: %v", err)
	}

	if len(comments) != 2 {
		t.Fatalf("ожидалось 2 комментария, получено %d", len(comments))
	}
	if comments[0].Content != "first" || comments[1].Content != "second" {
		t.Errorf("комментарии не по возрастанию даты: %q, %q", comments[0].Content, comments[1].Content)
	}
	if comments[0].Username != "bob" {
		t.Errorf("автор комментария не подтянулся: %q", comments[0].Username)
	}
}

func TestGetCommentsCount(t *testing.T) {
	db := newTestDatabase(t)
	alice := createTestUser(t, db, "alice")
	post := createTestPost(t, db, alice.ID, "a post")
	other := createTestPost(t, db, alice.ID, "another post")
	cs := NewCommentService(db)

	count, err := cs.GetCommentsCount(post.ID)
	if err != nil {
		t.Fatalf("GetCommentsCount вернул ошибку: %v", err)
	}
	if count != 0 {
		t.Errorf("ожидалось 0 комментариев, получено %d", count)
	}

	for i := 0; i < 3; i++ {
		if _, err := cs.CreateComment("reply", post.ID, alice.ID); err != nil {
			t.Fatalf("CreateComment вернул ошибку: %v", err)
		}
	}
	if _, err := cs.CreateComment("elsewhere", other.ID, alice.ID); err != nil {
		t.Fatalf("CreateComment вернул ошибку: %v", err)
	}

	count, err = cs.GetCommentsCount(post.ID)
	if err != nil {
		t.Fatalf("GetCommentsCount вернул ошибку: %v", err)
	}
	// Комментарий к другому посту не учитывается
	if count != 3 {
		t.Errorf("ожидалось 3 комментария, получено %d", count)
	}
}
