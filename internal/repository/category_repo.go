package repository

import (
	"context"

	"github.com/l9kk/CRM-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

// CategoryRepository - интерфейс для работы с категориями.
type CategoryRepository interface {
	GetCategories(ctx context.Context) ([]models.Category, error)
	GetCategoryByID(ctx context.Context, categoryID string) (*models.Category, error)
}

// PostgresCategoryRepository - реализация CategoryRepository для базы данных.
type PostgresCategoryRepository struct {
	DB *pgxpool.Pool
}

// NewPostgresCategoryRepository создаёт новый экземпляр PostgresCategoryRepository.
func NewPostgresCategoryRepository(db *pgxpool.Pool) *PostgresCategoryRepository {
	return &PostgresCategoryRepository{DB: db}
}

// GetCategories возвращает все категории в алфавитном порядке.
func (r *PostgresCategoryRepository) GetCategories(ctx context.Context) ([]models.Category, error) {
	rows, err := r.DB.Query(ctx, `SELECT id, name FROM category ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := []models.Category{}
	for rows.Next() {
		var category models.Category
		if err := rows.Scan(&category.ID, &category.Name); err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}
	return categories, rows.Err()
}

// GetCategoryByID возвращает категорию по её ID.
func (r *PostgresCategoryRepository) GetCategoryByID(ctx context.Context, categoryID string) (*models.Category, error) {
	var category models.Category
	err := r.DB.QueryRow(ctx, `SELECT id, name FROM category WHERE id = $1`, categoryID).
		Scan(&category.ID, &category.Name)
	if err != nil {
		return nil, err
	}
	return &category, nil
}
