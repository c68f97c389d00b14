package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/l9kk/CRM-backend/internal/middleware"
	"github.com/l9kk/CRM-backend/internal/models"
	"github.com/l9kk/CRM-backend/internal/services"
	"github.com/l9kk/CRM-backend/internal/storage"
	"github.com/l9kk/CRM-backend/internal/utils"
)

const maxUploadMemory = 10 << 20

// maxUploadBytes - предел всего тела запроса: файл плюс запас на поля формы.
const maxUploadBytes = storage.MaxFileSize + 64<<10

// AttachmentHandler - структура для обработки HTTP-запросов к вложениям.
type AttachmentHandler struct {
	Service *services.AttachmentService
	Logger  *log.Logger
	Timeout time.Duration
}

// NewAttachmentHandler создаёт новый экземпляр AttachmentHandler.
func NewAttachmentHandler(service *services.AttachmentService, logger *log.Logger, timeout time.Duration) *AttachmentHandler {
	return &AttachmentHandler{
		Service: service,
		Logger:  logger,
		Timeout: timeout,
	}
}

// UploadAttachment обрабатывает multipart-запросы для загрузки файла к заявке.
func (h *AttachmentHandler) UploadAttachment(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	// Тело ограничивается до разбора формы, чтобы слишком большой файл
	// не успел целиком осесть во временных файлах.
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			utils.SendErrorResponse(w, http.StatusBadRequest, "file size must not exceed 5MB")
			return
		}
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	projectID := r.FormValue("project")

	file, header, err := r.FormFile("file")
	if err != nil {
		utils.SendErrorResponse(w, http.StatusBadRequest, "missing required field: file")
		return
	}
	file.Close()

	attachment, err := h.Service.UploadAttachment(ctx, projectID, header)
	if err != nil {
		if errorResponse, ok := err.(*models.ErrorResponse); ok {
			h.Logger.Println(err)
			utils.SendErrorResponse(w, errorResponse.StatusCode, errorResponse.Message)
			return
		}
		h.Logger.Println(err)
		utils.SendErrorResponse(w, http.StatusInternalServerError, "failed to upload attachment")
		return
	}

	utils.SendJSONResponse(w, http.StatusCreated, attachment)
}

// DownloadAttachment обрабатывает запросы для скачивания файла вложения.
func (h *AttachmentHandler) DownloadAttachment(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	attachmentID := r.PathValue("attachmentId")
	identity, _ := middleware.IdentityFrom(r.Context())

	attachment, file, err := h.Service.DownloadAttachment(ctx, attachmentID, identity.Username)
	if err != nil {
		if errorResponse, ok := err.(*models.ErrorResponse); ok {
			h.Logger.Println(err)
			utils.SendErrorResponse(w, errorResponse.StatusCode, errorResponse.Message)
			return
		}
		h.Logger.Println(err)
		utils.SendErrorResponse(w, http.StatusInternalServerError, "failed to download attachment")
		return
	}
	defer file.Close()

	w.Header().Set("Content-Type", attachment.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", attachment.FileName))
	w.Header().Set("Content-Length", strconv.FormatInt(attachment.SizeBytes, 10))
	if _, err := io.Copy(w, file); err != nil {
		h.Logger.Println(err)
	}
}
