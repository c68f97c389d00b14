package utils

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/l9kk/CRM-backend/internal/models"
)

// SendErrorResponse отправляет ошибку в формате JSON
func SendErrorResponse(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	errorResponse := models.ErrorResponse{
		StatusCode: statusCode,
		Message:    message,
	}
	if err := json.NewEncoder(w).Encode(errorResponse); err != nil {
		log.Println(err)
	}
}

// SendJSONResponse отправляет ответ в формате JSON с указанным кодом.
func SendJSONResponse(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Println(err)
	}
}

// ParseLimitOffset обрабатывает limit и offset. Пустой limit заменяется
// на defaultLimit; defaultLimit 0 означает выборку без ограничения.
func ParseLimitOffset(limitStr, offsetStr string, defaultLimit int) (int, int, error) {
	limit := defaultLimit
	offset := 0
	var err error

	if limitStr != "" {
		limit, err = strconv.Atoi(limitStr)
		if err != nil || limit <= 0 || limit > 100 {
			return 0, 0, fmt.Errorf("invalid limit parameter, must be a positive integer [1:100]")
		}
	}

	if offsetStr != "" {
		offset, err = strconv.Atoi(offsetStr)
		if err != nil || offset < 0 {
			return 0, 0, fmt.Errorf("invalid offset parameter, must be a non-negative integer")
		}
	}

	return limit, offset, nil
}

// IsValidEmail проверяет, похожа ли строка на адрес электронной почты.
func IsValidEmail(email string) bool {
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 {
		return false
	}
	domain := email[at+1:]
	return strings.Contains(domain, ".") && !strings.ContainsAny(email, " \t")
}

// ContainsStatus проверяет, входит ли статус в список допустимых.
func ContainsStatus(validStatuses []models.ProjectStatus, status models.ProjectStatus) bool {
	for _, validStatus := range validStatuses {
		if validStatus == status {
			return true
		}
	}
	return false
}
