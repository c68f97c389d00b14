package repository

import (
	"context"
	"fmt"

	"github.com/l9kk/CRM-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

// AttachmentRepository - интерфейс для работы с вложениями.
type AttachmentRepository interface {
	CreateAttachment(ctx context.Context, attachment *models.Attachment) error
	GetAttachmentByID(ctx context.Context, attachmentID string) (*models.Attachment, error)
}

// PostgresAttachmentRepository - реализация AttachmentRepository для базы данных.
type PostgresAttachmentRepository struct {
	DB *pgxpool.Pool
}

// NewPostgresAttachmentRepository создаёт новый экземпляр PostgresAttachmentRepository.
func NewPostgresAttachmentRepository(db *pgxpool.Pool) *PostgresAttachmentRepository {
	return &PostgresAttachmentRepository{DB: db}
}

// CreateAttachment сохраняет запись о вложении.
func (r *PostgresAttachmentRepository) CreateAttachment(ctx context.Context, attachment *models.Attachment) error {
	_, err := r.DB.Exec(ctx, `
       INSERT INTO attachment (id, project_id, file_name, file_path, content_type, size_bytes, uploaded_at)
       VALUES ($1, $2, $3, $4, $5, $6, $7)
   `,
		attachment.ID,
		attachment.ProjectID,
		attachment.FileName,
		attachment.FilePath,
		attachment.ContentType,
		attachment.SizeBytes,
		attachment.UploadedAt)
	if err != nil {
		return fmt.Errorf("failed to insert attachment: %w", err)
	}
	return nil
}

// GetAttachmentByID возвращает вложение по его ID.
func (r *PostgresAttachmentRepository) GetAttachmentByID(ctx context.Context, attachmentID string) (*models.Attachment, error) {
	var attachment models.Attachment
	query := `SELECT id, project_id, file_name, file_path, content_type, size_bytes, uploaded_at
	          FROM attachment WHERE id = $1`
	err := r.DB.QueryRow(ctx, query, attachmentID).Scan(
		&attachment.ID,
		&attachment.ProjectID,
		&attachment.FileName,
		&attachment.FilePath,
		&attachment.ContentType,
		&attachment.SizeBytes,
		&attachment.UploadedAt,
	)
	if err != nil {
		return nil, err
	}
	attachment.File = models.DownloadURL(attachment.ID)
	return &attachment, nil
}
