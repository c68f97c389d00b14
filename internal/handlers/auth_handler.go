package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/l9kk/CRM-backend/internal/models"
	"github.com/l9kk/CRM-backend/internal/services"
	"github.com/l9kk/CRM-backend/internal/utils"
)

// AuthHandler - структура для обработки HTTP-запросов аутентификации.
type AuthHandler struct {
	Service *services.AuthService
	Logger  *log.Logger
	Timeout time.Duration
}

// NewAuthHandler создаёт новый экземпляр AuthHandler.
func NewAuthHandler(service *services.AuthService, logger *log.Logger, timeout time.Duration) *AuthHandler {
	return &AuthHandler{
		Service: service,
		Logger:  logger,
		Timeout: timeout,
	}
}

// IssueToken обрабатывает запросы для получения пары access/refresh токенов.
func (h *AuthHandler) IssueToken(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	var tokenReq models.TokenRequest
	if err := json.NewDecoder(r.Body).Decode(&tokenReq); err != nil {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	pair, err := h.Service.IssueTokens(ctx, tokenReq)
	if err != nil {
		if errorResponse, ok := err.(*models.ErrorResponse); ok {
			h.Logger.Println(err)
			utils.SendErrorResponse(w, errorResponse.StatusCode, errorResponse.Message)
			return
		}
		h.Logger.Println(err)
		utils.SendErrorResponse(w, http.StatusInternalServerError, "failed to issue tokens")
		return
	}

	utils.SendJSONResponse(w, http.StatusOK, pair)
}

// RefreshToken обрабатывает запросы для обновления access-токена.
func (h *AuthHandler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	var refreshReq models.RefreshRequest
	if err := json.NewDecoder(r.Body).Decode(&refreshReq); err != nil {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	access, err := h.Service.RefreshAccess(refreshReq)
	if err != nil {
		if errorResponse, ok := err.(*models.ErrorResponse); ok {
			h.Logger.Println(err)
			utils.SendErrorResponse(w, errorResponse.StatusCode, errorResponse.Message)
			return
		}
		h.Logger.Println(err)
		utils.SendErrorResponse(w, http.StatusInternalServerError, "failed to refresh token")
		return
	}

	utils.SendJSONResponse(w, http.StatusOK, access)
}
