package services

import (
	"context"
	"net/http"

	"github.com/l9kk/CRM-backend/internal/models"
	"github.com/l9kk/CRM-backend/internal/repository"
)

type CategoryService struct {
	Repo repository.CategoryRepository
}

// NewCategoryService создаёт новый экземпляр CategoryService.
func NewCategoryService(repo repository.CategoryRepository) *CategoryService {
	return &CategoryService{Repo: repo}
}

// FetchCategories получает список всех категорий.
func (s *CategoryService) FetchCategories(ctx context.Context) ([]models.Category, error) {
	categories, err := s.Repo.GetCategories(ctx)
	if err != nil {
		return nil, models.NewErrorResponse(http.StatusInternalServerError, "internal server error")
	}
	return categories, nil
}
