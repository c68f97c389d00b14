package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/l9kk/CRM-backend/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// CommentRepository - интерфейс для работы с комментариями.
type CommentRepository interface {
	CreateComment(ctx context.Context, projectID, commentText, authorName string) (*models.Comment, error)
}

// PostgresCommentRepository - реализация CommentRepository для базы данных.
type PostgresCommentRepository struct {
	DB *pgxpool.Pool
}

// NewPostgresCommentRepository создаёт новый экземпляр PostgresCommentRepository.
func NewPostgresCommentRepository(db *pgxpool.Pool) *PostgresCommentRepository {
	return &PostgresCommentRepository{DB: db}
}

// CreateComment создаёт комментарий к заявке.
func (r *PostgresCommentRepository) CreateComment(ctx context.Context, projectID, commentText, authorName string) (*models.Comment, error) {
	newComment := models.Comment{
		ID:          uuid.New().String(),
		ProjectID:   projectID,
		CommentText: commentText,
		AuthorName:  authorName,
		CreatedAt:   time.Now().UTC(),
	}
	_, err := r.DB.Exec(ctx, `
       INSERT INTO project_comment (id, project_id, comment_text, author_name, created_at)
       VALUES ($1, $2, $3, $4, $5)
   `,
		newComment.ID,
		newComment.ProjectID,
		newComment.CommentText,
		newComment.AuthorName,
		newComment.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert comment: %w", err)
	}
	return &newComment, nil
}
