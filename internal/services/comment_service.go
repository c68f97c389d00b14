package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/l9kk/CRM-backend/internal/models"
	"github.com/l9kk/CRM-backend/internal/notify"
	"github.com/l9kk/CRM-backend/internal/repository"

	"github.com/jackc/pgx/v5"
)

type CommentService struct {
	Repo     repository.CommentRepository
	Projects repository.ProjectRepository
	Logs     repository.LogRepository
	Mailer   notify.Sender
	Logger   *log.Logger
}

// NewCommentService создаёт новый экземпляр CommentService.
func NewCommentService(
	repo repository.CommentRepository,
	projects repository.ProjectRepository,
	logs repository.LogRepository,
	mailer notify.Sender,
	logger *log.Logger,
) *CommentService {
	return &CommentService{
		Repo:     repo,
		Projects: projects,
		Logs:     logs,
		Mailer:   mailer,
		Logger:   logger,
	}
}

// CreateComment создаёт комментарий к заявке от имени администратора.
func (s *CommentService) CreateComment(ctx context.Context, req models.CommentRequest, authorName string) (*models.Comment, error) {
	commentText := strings.TrimSpace(req.CommentText)
	if req.Project == "" || commentText == "" {
		return nil, models.NewErrorResponse(http.StatusBadRequest, "missing required fields: project and comment_text")
	}

	project, err := s.Projects.GetProjectByID(ctx, req.Project)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.NewErrorResponse(http.StatusNotFound, "project not found")
		}
		return nil, models.NewErrorResponse(http.StatusInternalServerError, "internal server error")
	}

	comment, err := s.Repo.CreateComment(ctx, project.ID, commentText, authorName)
	if err != nil {
		return nil, models.NewErrorResponse(http.StatusInternalServerError, "failed to create comment")
	}

	message := fmt.Sprintf("Comment added to project '%s' by %s.", project.Title, authorName)
	if err := s.Logs.InsertLog(ctx, "INFO", message, "Create comment to project"); err != nil {
		s.Logger.Println("failed to write application log:", err)
	}
	if s.Mailer != nil {
		if err := s.Mailer.Send(project.ContactEmail, "New Comment", commentText); err != nil {
			s.Logger.Println("failed to send notification email:", err)
		}
	}
	return comment, nil
}
