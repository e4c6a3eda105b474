package database

import (
	"errors"
	"testing"
)

func TestCreateCategoryUniqueness(t *testing.T) {
	db := newTestDatabase(t)
	cs := NewCategoryService(db)

	if _, err := cs.CreateCategory("Сад", "garden", "цветы и ульи"); err != nil {
		t.Fatalf("CreateCategory вернул ошибку: %v", err)
	}

	if _, err := cs.CreateCategory("Сад", "garden-2", ""); !errors.Is(err, ErrCategoryExists) {
		t.Errorf("ожидался ErrCategoryExists, получено %v", err)
	}
	if _, err := cs.CreateCategory("Огород", "garden", ""); !errors.Is(err, ErrSlugExists) {
		t.Errorf("ожидался ErrSlugExists, получено %v", err)
	}
}

func TestCreateCategoryInvalidSlug(t *testing.T) {
	db := newTestDatabase(t)
	cs := NewCategoryService(db)

	if _, err := cs.CreateCategory("Сад", "Bad Slug!", ""); !errors.Is(err, ErrInvalidSlug) {
		t.Errorf("ожидался ErrInvalidSlug, получено %v", err)
	}
}

func TestGetCategoryBySlug(t *testing.T) {
	db := newTestDatabase(t)
	cs := NewCategoryService(db)

	created, err := cs.CreateCategory("Сад", "garden", "")
	if err != nil {
		t.Fatalf("CreateCategory вернул ошибку: %v", err)
	}

	got, err := cs.GetCategoryBySlug("garden")
	if err != nil {
		t.Fatalf("GetCategoryBySlug вернул ошибку: %v", err)
	}
	if got.ID != created.ID || got.Name != "Сад" {
		t.Errorf("категория не совпадает: %+v", got)
	}

	if _, err := cs.GetCategoryBySlug("missing"); !errors.Is(err, ErrCategoryNotFound) {
		t.Errorf("ожидался ErrCategoryNotFound, получено %v", err)
	}
}
