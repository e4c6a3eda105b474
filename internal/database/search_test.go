package database

import "testing"

func TestSearch(t *testing.T) {
	db := newTestDatabase(t)
	alice := createTestUser(t, db, "beekeeper")
	createTestUser(t, db, "gardener")
	createTestPost(t, db, alice.ID, "My BEE died today")
	createTestPost(t, db, alice.ID, "Nothing to see here")

	cats := NewCategoryService(db)
	if _, err := cats.CreateCategory("Bee stories", "bee-stories", ""); err != nil {
		t.Fatalf("CreateCategory вернул ошибку: %v", err)
	}
	if _, err := cats.CreateCategory("Garden", "garden", ""); err != nil {
		t.Fatalf("CreateCategory вернул ошибку: %v", err)
	}

	ss := NewSearchService(db)

	// Поиск без учета регистра по всем сущностям
	results, err := ss.Search("bEe")
	if err != nil {
		t.Fatalf("Search вернул ошибку: %v", err)
	}

	if len(results.Posts) != 1 || results.Posts[0].Content != "My BEE died today" {
		t.Errorf("посты не совпадают: %+v", results.Posts)
	}
	if len(results.Users) != 1 || results.Users[0].Username != "beekeeper" {
		t.Errorf("пользователи не совпадают: %+v", results.Users)
	}
	if len(results.Categories) != 1 || results.Categories[0].Slug != "bee-stories" {
		t.Errorf("категории не совпадают: %+v", results.Categories)
	}
}

func TestSearchByEmail(t *testing.T) {
	db := newTestDatabase(t)
	createTestUser(t, db, "alice")

	ss := NewSearchService(db)

	// createTestUser дает email вида username@example.com
	results, err := ss.Search("alice@example")
	if err != nil {
		t.Fatalf("Search вернул ошибку: %v", err)
	}
	if len(results.Users) != 1 {
		t.Errorf("поиск по email не нашел пользователя: %+v", results.Users)
	}
}

func TestSearchEmptyQuery(t *testing.T) {
	db := newTestDatabase(t)
	alice := createTestUser(t, db, "alice")
	createTestPost(t, db, alice.ID, "a post")

	ss := NewSearchService(db)

	results, err := ss.Search("   ")
	if err != nil {
		t.Fatalf("Search вернул ошибку: %v", err)
	}
	if len(results.Posts) != 0 || len(results.Users) != 0 || len(results.Categories) != 0 {
		t.Errorf("пустой запрос вернул результаты: %+v", results)
	}
}
