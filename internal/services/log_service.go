package services

import (
	"context"
	"net/http"

	"github.com/l9kk/CRM-backend/internal/models"
	"github.com/l9kk/CRM-backend/internal/repository"
	"github.com/l9kk/CRM-backend/internal/utils"
)

const defaultLogPageSize = 10

type LogService struct {
	Repo repository.LogRepository
}

// NewLogService создаёт новый экземпляр LogService.
func NewLogService(repo repository.LogRepository) *LogService {
	return &LogService{Repo: repo}
}

// FetchLogs получает записи журнала с фильтрами по уровню и тексту.
func (s *LogService) FetchLogs(ctx context.Context, level, search, limitStr, offsetStr string) ([]models.ApplicationLog, error) {
	limit, offset, err := utils.ParseLimitOffset(limitStr, offsetStr, defaultLogPageSize)
	if err != nil {
		return nil, models.NewErrorResponse(http.StatusBadRequest, err.Error())
	}

	logs, err := s.Repo.GetLogs(ctx, level, search, limit, offset)
	if err != nil {
		return nil, models.NewErrorResponse(http.StatusInternalServerError, "internal server error")
	}
	return logs, nil
}
