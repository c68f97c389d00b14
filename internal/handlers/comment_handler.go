package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/l9kk/CRM-backend/internal/middleware"
	"github.com/l9kk/CRM-backend/internal/models"
	"github.com/l9kk/CRM-backend/internal/services"
	"github.com/l9kk/CRM-backend/internal/utils"
)

// CommentHandler - структура для обработки HTTP-запросов к комментариям.
type CommentHandler struct {
	Service *services.CommentService
	Logger  *log.Logger
	Timeout time.Duration
}

// NewCommentHandler создаёт новый экземпляр CommentHandler.
func NewCommentHandler(service *services.CommentService, logger *log.Logger, timeout time.Duration) *CommentHandler {
	return &CommentHandler{
		Service: service,
		Logger:  logger,
		Timeout: timeout,
	}
}

// CreateComment обрабатывает запросы для создания комментария к заявке.
func (h *CommentHandler) CreateComment(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	identity, _ := middleware.IdentityFrom(r.Context())

	var commentReq models.CommentRequest
	if err := json.NewDecoder(r.Body).Decode(&commentReq); err != nil {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	comment, err := h.Service.CreateComment(ctx, commentReq, identity.Username)
	if err != nil {
		if errorResponse, ok := err.(*models.ErrorResponse); ok {
			h.Logger.Println(err)
			utils.SendErrorResponse(w, errorResponse.StatusCode, errorResponse.Message)
			return
		}
		h.Logger.Println(err)
		utils.SendErrorResponse(w, http.StatusInternalServerError, "failed to create comment")
		return
	}

	utils.SendJSONResponse(w, http.StatusCreated, comment)
}
