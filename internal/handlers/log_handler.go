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

// LogHandler - структура для обработки HTTP-запросов к журналу действий.
type LogHandler struct {
	Service *services.LogService
	Logger  *log.Logger
	Timeout time.Duration
}

// NewLogHandler создаёт новый экземпляр LogHandler.
func NewLogHandler(service *services.LogService, logger *log.Logger, timeout time.Duration) *LogHandler {
	return &LogHandler{
		Service: service,
		Logger:  logger,
		Timeout: timeout,
	}
}

// GetLogs обрабатывает запросы для получения записей журнала.
func (h *LogHandler) GetLogs(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	query := r.URL.Query()

	logs, err := h.Service.FetchLogs(ctx, query.Get("level"), query.Get("search"), query.Get("limit"), query.Get("offset"))
	if err != nil {
		if errorResponse, ok := err.(*models.ErrorResponse); ok {
			h.Logger.Println(err)
			utils.SendErrorResponse(w, errorResponse.StatusCode, errorResponse.Message)
			return
		}
		h.Logger.Println(err)
		utils.SendErrorResponse(w, http.StatusInternalServerError, "failed to fetch logs")
		return
	}

	utils.SendJSONResponse(w, http.StatusOK, logs)
}
