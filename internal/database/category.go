package database

import (
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"beesociety/internal/models"
)

var (
	ErrCategoryNotFound     = errors.New("категория не найдена")
	ErrCategoryExists       = errors.New("категория с таким именем уже существует")
	ErrSlugExists           = errors.New("категория с таким slug уже существует")
	ErrEmptyCategoryName    = errors.New("название категории не может быть пустым")
	ErrLongCategoryName     = errors.New("название категории не должно превышать 100 символов")
	ErrEmptySlug            = errors.New("slug не может быть пустым")
	ErrLongSlug             = errors.New("slug не должен превышать 100 символов")
	ErrInvalidSlug          = errors.New("slug может содержать только строчные буквы, цифры и дефисы")
	ErrLongDescription      = errors.New("описание не должно превышать 500 символов")
	ErrCategoryCreateFailed = errors.New("ошибка создания категории")
)

type CategoryService struct {
	db *Database
}

func NewCategoryService(db *Database) *CategoryService {
	return &CategoryService{db: db}
}

// CreateCategory создает новую категорию
func (cs *CategoryService) CreateCategory(name, slug, description string) (*models.Category, error) {
	if err := cs.validateCategoryData(name, slug, description); err != nil {
		return nil, err
	}

	if err := cs.checkCategoryUniqueness(name, slug); err != nil {
		return nil, err
	}

	query := `INSERT INTO categories (name, slug, description, created)
			  VALUES (?, ?, ?, ?) RETURNING id, created`

	var category models.Category
	now := time.Now()

	err := cs.db.DBConn.QueryRow(query, name, slug, description, now).Scan(
		&category.ID, &category.Created)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCategoryCreateFailed, err)
	}

	category.Name = name
	category.Slug = slug
	category.Description = description

	return &category, nil
}

// GetCategory получает категорию по ID
func (cs *CategoryService) GetCategory(id int) (*models.Category, error) {
	var category models.Category
	query := `SELECT id, name, slug, description, created FROM categories WHERE id = ?`

	err := cs.db.DBConn.QueryRow(query, id).Scan(
		&category.ID, &category.Name, &category.Slug,
		&category.Description, &category.Created)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}

	return &category, nil
}

// GetCategoryBySlug получает категорию по slug
func (cs *CategoryService) GetCategoryBySlug(slug string) (*models.Category, error) {
	var category models.Category
	query := `SELECT id, name, slug, description, created FROM categories WHERE slug = ?`

	err := cs.db.DBConn.QueryRow(query, slug).Scan(
		&category.ID, &category.Name, &category.Slug,
		&category.Description, &category.Created)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}

	return &category, nil
}

// GetAllCategories получает все категории
func (cs *CategoryService) GetAllCategories() ([]*models.Category, error) {
	query := `SELECT id, name, slug, description, created FROM categories ORDER BY name`

	return cs.queryCategories(query)
}

// GetCategoryPosts получает посты категории по убыванию даты создания
func (cs *CategoryService) GetCategoryPosts(categoryID, limit, offset int) ([]*models.Post, error) {
	query := `SELECT p.id, p.content, p.image_data, p.user_id, p.created, u.username, u.avatar
			  FROM posts p
			  JOIN users u ON p.user_id = u.id
			  JOIN post_categories pc ON p.id = pc.post_id
			  WHERE pc.category_id = ?
			  ORDER BY p.created DESC
			  LIMIT ? OFFSET ?`

	rows, err := cs.db.DBConn.Query(query, categoryID, limit, offset)
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

// GetPostCategories получает все категории поста
func (cs *CategoryService) GetPostCategories(postID int) ([]*models.Category, error) {
	query := `SELECT c.id, c.name, c.slug, c.description, c.created
			  FROM categories c
			  JOIN post_categories pc ON c.id = pc.category_id
			  WHERE pc.post_id = ?
			  ORDER BY c.name`

	return cs.queryCategories(query, postID)
}

func (cs *CategoryService) queryCategories(query string, args ...interface{}) ([]*models.Category, error) {
	rows, err := cs.db.DBConn.Query(query, args...)
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

// checkCategoryUniqueness проверяет уникальность имени и slug
func (cs *CategoryService) checkCategoryUniqueness(name, slug string) error {
	var exists int

	query := `SELECT 1 FROM categories WHERE name = ?`
	err := cs.db.DBConn.QueryRow(query, name).Scan(&exists)
	if err != sql.ErrNoRows {
		if err == nil {
			return ErrCategoryExists
		}
		return fmt.Errorf("ошибка проверки уникальности категории: %v", err)
	}

	query = `SELECT 1 FROM categories WHERE slug = ?`
	err = cs.db.DBConn.QueryRow(query, slug).Scan(&exists)
	if err != sql.ErrNoRows {
		if err == nil {
			return ErrSlugExists
		}
		return fmt.Errorf("ошибка проверки уникальности slug: %v", err)
	}

	return nil
}

// validateCategoryData валидирует данные категории
func (cs *CategoryService) validateCategoryData(name, slug, description string) error {
	name = strings.TrimSpace(name)
	slug = strings.TrimSpace(slug)

	if len(name) == 0 {
		return ErrEmptyCategoryName
	}
	if len(name) > 100 {
		return ErrLongCategoryName
	}
	if len(slug) == 0 {
		return ErrEmptySlug
	}
	if len(slug) > 100 {
		return ErrLongSlug
	}

	matched, _ := regexp.MatchString(`^[a-z0-9-]+$`, slug)
	if !matched {
		return ErrInvalidSlug
	}

	if len(description) > 500 {
		return ErrLongDescription
	}

	return nil
}
