package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/l9kk/CRM-backend/internal/models"
	"github.com/l9kk/CRM-backend/internal/notify"
	"github.com/l9kk/CRM-backend/internal/repository"
	"github.com/l9kk/CRM-backend/internal/utils"

	"github.com/jackc/pgx/v5"
)

type ProjectService struct {
	Repo       repository.ProjectRepository
	Categories repository.CategoryRepository
	Comments   repository.CommentRepository
	Logs       repository.LogRepository
	Mailer     notify.Sender
	Logger     *log.Logger
}

// NewProjectService создаёт новый экземпляр ProjectService.
func NewProjectService(
	repo repository.ProjectRepository,
	categories repository.CategoryRepository,
	comments repository.CommentRepository,
	logs repository.LogRepository,
	mailer notify.Sender,
	logger *log.Logger,
) *ProjectService {
	return &ProjectService{
		Repo:       repo,
		Categories: categories,
		Comments:   comments,
		Logs:       logs,
		Mailer:     mailer,
		Logger:     logger,
	}
}

// FetchProjects получает список заявок с учётом фильтров.
func (s *ProjectService) FetchProjects(ctx context.Context, filter models.ProjectFilter) ([]models.Project, error) {
	allowedStatuses := []models.ProjectStatus{models.NewProject, models.AcceptedProject, models.RejectedProject}
	for _, status := range filter.Statuses {
		if !utils.ContainsStatus(allowedStatuses, models.ProjectStatus(status)) {
			return nil, models.NewErrorResponse(http.StatusBadRequest, fmt.Sprintf("unsupported status: %s", status))
		}
	}

	allowedOrderings := map[string]bool{"budget": true, "created_at": true, "updated_at": true}
	if filter.Ordering != "" && !allowedOrderings[strings.TrimPrefix(filter.Ordering, "-")] {
		return nil, models.NewErrorResponse(http.StatusBadRequest, fmt.Sprintf("unsupported ordering: %s", filter.Ordering))
	}

	projects, err := s.Repo.GetProjects(ctx, filter)
	if err != nil {
		return nil, models.NewErrorResponse(http.StatusInternalServerError, "internal server error")
	}
	if projects == nil {
		projects = []models.Project{}
	}
	return projects, nil
}

// GetProject получает заявку по ID.
func (s *ProjectService) GetProject(ctx context.Context, projectID string) (*models.Project, error) {
	project, err := s.Repo.GetProjectByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.NewErrorResponse(http.StatusNotFound, "project not found")
		}
		return nil, models.NewErrorResponse(http.StatusInternalServerError, "internal server error")
	}
	return project, nil
}

// CreateProject создаёт новую заявку со статусом NEW.
func (s *ProjectService) CreateProject(ctx context.Context, req models.ProjectRequest) (*models.Project, error) {
	if req.Title == "" || req.Description == "" || req.ContactEmail == "" || req.SenderName == "" {
		return nil, models.NewErrorResponse(http.StatusBadRequest, "missing required fields")
	}
	if !utils.IsValidEmail(req.ContactEmail) {
		return nil, models.NewErrorResponse(http.StatusBadRequest, "invalid contact_email")
	}
	if req.Deadline != nil {
		today := time.Now().UTC().Truncate(24 * time.Hour)
		if req.Deadline.Time.Before(today) {
			return nil, models.NewErrorResponse(http.StatusBadRequest, "the deadline cannot be in the past")
		}
	}

	var category *models.Category
	if req.Category != "" {
		var err error
		category, err = s.Categories.GetCategoryByID(ctx, req.Category)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, models.NewErrorResponse(http.StatusBadRequest, "unknown category")
			}
			return nil, models.NewErrorResponse(http.StatusInternalServerError, "internal server error")
		}
	}

	project, err := s.Repo.CreateProject(ctx, req)
	if err != nil {
		return nil, models.NewErrorResponse(http.StatusInternalServerError, "failed to create project")
	}
	project.Category = category

	s.writeLog(ctx, fmt.Sprintf("Project '%s' created by %s.", project.Title, project.SenderName), "Create project")
	s.sendMail(project.ContactEmail,
		"Thank you for your project proposal",
		fmt.Sprintf("We received your proposal '%s'. Our team will review it soon.", project.Title))

	return project, nil
}

// AcceptProject переводит заявку в статус ACCEPTED.
func (s *ProjectService) AcceptProject(ctx context.Context, projectID string, req models.DecisionRequest, author string) (*models.DecisionResponse, error) {
	return s.decideProject(ctx, projectID, models.AcceptedProject, req, author)
}

// RejectProject переводит заявку в статус REJECTED.
func (s *ProjectService) RejectProject(ctx context.Context, projectID string, req models.DecisionRequest, author string) (*models.DecisionResponse, error) {
	return s.decideProject(ctx, projectID, models.RejectedProject, req, author)
}

// decideProject применяет решение администратора по заявке. Допустим только
// переход из NEW; условный UPDATE гарантирует, что из двух одновременных
// решений выигрывает ровно одно.
func (s *ProjectService) decideProject(ctx context.Context, projectID string, status models.ProjectStatus, req models.DecisionRequest, author string) (*models.DecisionResponse, error) {
	project, err := s.Repo.GetProjectByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.NewErrorResponse(http.StatusNotFound, "project not found")
		}
		return nil, models.NewErrorResponse(http.StatusInternalServerError, "internal server error")
	}

	updated, err := s.Repo.UpdateProjectStatus(ctx, projectID, status)
	if err != nil {
		return nil, models.NewErrorResponse(http.StatusInternalServerError, "internal server error")
	}
	if !updated {
		// Конкурирующее решение могло пройти после первого чтения,
		// поэтому статус для сообщения перечитывается.
		if current, err := s.Repo.GetProjectByID(ctx, projectID); err == nil {
			project = current
		}
		return nil, models.NewErrorResponse(http.StatusConflict,
			fmt.Sprintf("project is already %s", project.Status))
	}

	var detail, verb, subjectVerb, loggerName string
	switch status {
	case models.AcceptedProject:
		detail, verb, subjectVerb, loggerName = "Project accepted", "accepted", "Accepted", "Accept project"
	default:
		detail, verb, subjectVerb, loggerName = "Project rejected", "rejected", "Rejected", "Reject project"
	}

	commentText := strings.TrimSpace(req.CommentText)
	if commentText == "" {
		commentText = fmt.Sprintf("Project '%s' was %s.", project.Title, verb)
	}

	if _, err := s.Comments.CreateComment(ctx, projectID, commentText, author); err != nil {
		s.Logger.Println("failed to create decision comment:", err)
	}
	s.writeLog(ctx, fmt.Sprintf("Project '%s' %s by %s.", project.Title, verb, author), loggerName)
	s.sendMail(project.ContactEmail, fmt.Sprintf("Project '%s' %s", project.Title, subjectVerb), commentText)

	return &models.DecisionResponse{
		Detail:      detail,
		Status:      status,
		CommentText: commentText,
	}, nil
}

// writeLog сохраняет запись журнала; сбой журнала не прерывает запрос.
func (s *ProjectService) writeLog(ctx context.Context, message, loggerName string) {
	if err := s.Logs.InsertLog(ctx, "INFO", message, loggerName); err != nil {
		s.Logger.Println("failed to write application log:", err)
	}
}

// sendMail отправляет уведомление; сбой почты не прерывает запрос.
func (s *ProjectService) sendMail(to, subject, body string) {
	if s.Mailer == nil {
		return
	}
	if err := s.Mailer.Send(to, subject, body); err != nil {
		s.Logger.Println("failed to send notification email:", err)
	}
}
