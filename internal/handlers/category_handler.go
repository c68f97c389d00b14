package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/l9kk/CRM-backend/internal/models"
	"github.com/l9kk/CRM-backend/internal/services"
	"github.com/l9kk/CRM-backend/internal/utils"
)

// CategoryHandler - структура для обработки HTTP-запросов к категориям.
type CategoryHandler struct {
	Service *services.CategoryService
	Logger  *log.Logger
	Timeout time.Duration
}

// NewCategoryHandler создаёт новый экземпляр CategoryHandler.
func NewCategoryHandler(service *services.CategoryService, logger *log.Logger, timeout time.Duration) *CategoryHandler {
	return &CategoryHandler{
		Service: service,
		Logger:  logger,
		Timeout: timeout,
	}
}

// GetCategories обрабатывает публичные запросы для получения списка категорий.
func (h *CategoryHandler) GetCategories(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	categories, err := h.Service.FetchCategories(ctx)
	if err != nil {
		if errorResponse, ok := err.(*models.ErrorResponse); ok {
			h.Logger.Println(err)
			utils.SendErrorResponse(w, errorResponse.StatusCode, errorResponse.Message)
			return
		}
		h.Logger.Println(err)
		utils.SendErrorResponse(w, http.StatusInternalServerError, "failed to fetch categories")
		return
	}

	utils.SendJSONResponse(w, http.StatusOK, categories)
}
