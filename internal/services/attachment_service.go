package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/l9kk/CRM-backend/internal/models"
	"github.com/l9kk/CRM-backend/internal/repository"
	"github.com/l9kk/CRM-backend/internal/storage"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type AttachmentService struct {
	Repo     repository.AttachmentRepository
	Projects repository.ProjectRepository
	Logs     repository.LogRepository
	Storage  *storage.Storage
	Logger   *log.Logger
}

// NewAttachmentService создаёт новый экземпляр AttachmentService.
func NewAttachmentService(
	repo repository.AttachmentRepository,
	projects repository.ProjectRepository,
	logs repository.LogRepository,
	fileStorage *storage.Storage,
	logger *log.Logger,
) *AttachmentService {
	return &AttachmentService{
		Repo:     repo,
		Projects: projects,
		Logs:     logs,
		Storage:  fileStorage,
		Logger:   logger,
	}
}

// UploadAttachment сохраняет файл вложения и запись о нём.
func (s *AttachmentService) UploadAttachment(ctx context.Context, projectID string, header *multipart.FileHeader) (*models.Attachment, error) {
	if projectID == "" {
		return nil, models.NewErrorResponse(http.StatusBadRequest, "missing required field: project")
	}
	if header == nil {
		return nil, models.NewErrorResponse(http.StatusBadRequest, "missing required field: file")
	}

	exists, err := s.Projects.ProjectExists(ctx, projectID)
	if err != nil {
		return nil, models.NewErrorResponse(http.StatusInternalServerError, "internal server error")
	}
	if !exists {
		return nil, models.NewErrorResponse(http.StatusNotFound, "project not found")
	}

	contentType, err := storage.Validate(header)
	if err != nil {
		return nil, models.NewErrorResponse(http.StatusBadRequest, err.Error())
	}

	attachmentID := uuid.New().String()
	relPath, err := s.Storage.Save(attachmentID, header)
	if err != nil {
		return nil, models.NewErrorResponse(http.StatusInternalServerError, "failed to store file")
	}

	attachment := &models.Attachment{
		ID:          attachmentID,
		ProjectID:   projectID,
		FileName:    header.Filename,
		FilePath:    relPath,
		ContentType: contentType,
		SizeBytes:   header.Size,
		UploadedAt:  time.Now().UTC(),
	}
	if err := s.Repo.CreateAttachment(ctx, attachment); err != nil {
		return nil, models.NewErrorResponse(http.StatusInternalServerError, "failed to create attachment")
	}
	attachment.File = models.DownloadURL(attachmentID)
	return attachment, nil
}

// DownloadAttachment открывает сохранённый файл вложения для чтения.
func (s *AttachmentService) DownloadAttachment(ctx context.Context, attachmentID, username string) (*models.Attachment, io.ReadCloser, error) {
	attachment, err := s.Repo.GetAttachmentByID(ctx, attachmentID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, models.NewErrorResponse(http.StatusNotFound, "attachment not found")
		}
		return nil, nil, models.NewErrorResponse(http.StatusInternalServerError, "internal server error")
	}

	file, err := s.Storage.Open(attachment.FilePath)
	if err != nil {
		return nil, nil, models.NewErrorResponse(http.StatusInternalServerError, "failed to open stored file")
	}

	message := fmt.Sprintf("Attachment '%s' viewed by %s.", attachment.FileName, username)
	if err := s.Logs.InsertLog(ctx, "INFO", message, "Attachment download"); err != nil {
		s.Logger.Println("failed to write application log:", err)
	}
	return attachment, file, nil
}
