package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/l9kk/CRM-backend/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

// ProjectRepository - интерфейс для работы с заявками на проекты.
type ProjectRepository interface {
	GetProjects(ctx context.Context, filter models.ProjectFilter) ([]models.Project, error)
	GetProjectByID(ctx context.Context, projectID string) (*models.Project, error)
	CreateProject(ctx context.Context, req models.ProjectRequest) (*models.Project, error)
	UpdateProjectStatus(ctx context.Context, projectID string, status models.ProjectStatus) (bool, error)
	ProjectExists(ctx context.Context, projectID string) (bool, error)
}

// PostgresProjectRepository - реализация ProjectRepository для базы данных.
type PostgresProjectRepository struct {
	DB *pgxpool.Pool
}

// NewPostgresProjectRepository создаёт новый экземпляр PostgresProjectRepository.
func NewPostgresProjectRepository(db *pgxpool.Pool) *PostgresProjectRepository {
	return &PostgresProjectRepository{DB: db}
}

const projectColumns = `p.id, p.title, p.description, p.budget, p.deadline, p.sender_name,
       p.contact_email, p.category_id, p.status, p.created_at, p.updated_at`

// projectOrderings - допустимые значения параметра ordering и их SQL-эквиваленты.
var projectOrderings = map[string]string{
	"budget":      "p.budget ASC",
	"-budget":     "p.budget DESC",
	"created_at":  "p.created_at ASC",
	"-created_at": "p.created_at DESC",
	"updated_at":  "p.updated_at ASC",
	"-updated_at": "p.updated_at DESC",
}

// buildProjectQuery собирает SELECT по фильтру списка заявок.
// Без явного ordering заявки идут новыми первыми.
func buildProjectQuery(filter models.ProjectFilter) (string, []interface{}) {
	query := `SELECT ` + projectColumns + ` FROM project p`
	var filters []string
	var args []interface{}
	argIndex := 1

	if len(filter.Statuses) > 0 {
		filters = append(filters, fmt.Sprintf("p.status = ANY($%d)", argIndex))
		args = append(args, pq.Array(filter.Statuses))
		argIndex++
	}

	if filter.Category != "" {
		filters = append(filters, fmt.Sprintf(
			"EXISTS(SELECT 1 FROM category c WHERE c.id = p.category_id AND c.name ILIKE '%%' || $%d || '%%')", argIndex))
		args = append(args, filter.Category)
		argIndex++
	}

	if filter.BudgetGte != nil {
		filters = append(filters, fmt.Sprintf("p.budget >= $%d", argIndex))
		args = append(args, *filter.BudgetGte)
		argIndex++
	}

	if filter.BudgetLte != nil {
		filters = append(filters, fmt.Sprintf("p.budget <= $%d", argIndex))
		args = append(args, *filter.BudgetLte)
		argIndex++
	}

	if filter.Search != "" {
		filters = append(filters, fmt.Sprintf(
			"(p.title ILIKE '%%' || $%d || '%%' OR p.description ILIKE '%%' || $%d || '%%' OR p.sender_name ILIKE '%%' || $%d || '%%')",
			argIndex, argIndex, argIndex))
		args = append(args, filter.Search)
		argIndex++
	}

	if len(filters) > 0 {
		query += " WHERE " + strings.Join(filters, " AND ")
	}

	if orderBy, ok := projectOrderings[filter.Ordering]; ok {
		query += " ORDER BY " + orderBy
	} else {
		query += " ORDER BY p.created_at DESC"
	}

	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argIndex)
		args = append(args, filter.Limit)
		argIndex++
	}
	if filter.Offset > 0 {
		query += fmt.Sprintf(" OFFSET $%d", argIndex)
		args = append(args, filter.Offset)
	}

	return query, args
}

// GetProjects возвращает список заявок с учётом фильтров.
func (r *PostgresProjectRepository) GetProjects(ctx context.Context, filter models.ProjectFilter) ([]models.Project, error) {
	query, args := buildProjectQuery(filter)

	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var projects []models.Project
	for rows.Next() {
		project, err := scanProject(rows.Scan)
		if err != nil {
			return nil, err
		}
		projects = append(projects, *project)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range projects {
		if err := r.loadRelations(ctx, &projects[i]); err != nil {
			return nil, err
		}
	}
	return projects, nil
}

// GetProjectByID возвращает заявку со всеми вложениями и комментариями.
func (r *PostgresProjectRepository) GetProjectByID(ctx context.Context, projectID string) (*models.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM project p WHERE p.id = $1`
	row := r.DB.QueryRow(ctx, query, projectID)

	project, err := scanProject(row.Scan)
	if err != nil {
		return nil, err
	}
	if err := r.loadRelations(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

// CreateProject создаёт новую заявку со статусом NEW.
func (r *PostgresProjectRepository) CreateProject(ctx context.Context, req models.ProjectRequest) (*models.Project, error) {
	now := time.Now().UTC()
	newProject := models.Project{
		ID:           uuid.New().String(),
		Title:        req.Title,
		Description:  req.Description,
		Budget:       req.Budget,
		Deadline:     req.Deadline,
		SenderName:   req.SenderName,
		ContactEmail: req.ContactEmail,
		Status:       models.NewProject,
		CreatedAt:    now,
		UpdatedAt:    now,
		Attachments:  []models.Attachment{},
		Comments:     []models.Comment{},
	}

	var categoryID *string
	if req.Category != "" {
		categoryID = &req.Category
	}
	var deadline *time.Time
	if req.Deadline != nil {
		deadline = &req.Deadline.Time
	}

	_, err := r.DB.Exec(ctx, `
       INSERT INTO project (id, title, description, budget, deadline, sender_name, contact_email, category_id, status, created_at, updated_at)
       VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
   `,
		newProject.ID,
		newProject.Title,
		newProject.Description,
		newProject.Budget,
		deadline,
		newProject.SenderName,
		newProject.ContactEmail,
		categoryID,
		newProject.Status,
		newProject.CreatedAt,
		newProject.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert project: %w", err)
	}
	return &newProject, nil
}

// UpdateProjectStatus переводит заявку из NEW в указанный статус.
// Возвращает false, если заявка уже не в статусе NEW.
func (r *PostgresProjectRepository) UpdateProjectStatus(ctx context.Context, projectID string, status models.ProjectStatus) (bool, error) {
	tag, err := r.DB.Exec(ctx,
		`UPDATE project SET status = $1, updated_at = $2 WHERE id = $3 AND status = $4`,
		status, time.Now().UTC(), projectID, models.NewProject)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// ProjectExists проверяет, существует ли заявка.
func (r *PostgresProjectRepository) ProjectExists(ctx context.Context, projectID string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM project WHERE id = $1)`
	err := r.DB.QueryRow(ctx, query, projectID).Scan(&exists)
	return exists, err
}

// scanProject читает одну строку заявки.
func scanProject(scan func(dest ...interface{}) error) (*models.Project, error) {
	var project models.Project
	var deadline *time.Time
	var categoryID *string

	if err := scan(
		&project.ID,
		&project.Title,
		&project.Description,
		&project.Budget,
		&deadline,
		&project.SenderName,
		&project.ContactEmail,
		&categoryID,
		&project.Status,
		&project.CreatedAt,
		&project.UpdatedAt); err != nil {
		return nil, err
	}

	if deadline != nil {
		project.Deadline = &models.Date{Time: *deadline}
	}
	if categoryID != nil {
		project.Category = &models.Category{ID: *categoryID}
	}
	return &project, nil
}

// loadRelations подгружает категорию, вложения и комментарии заявки.
func (r *PostgresProjectRepository) loadRelations(ctx context.Context, project *models.Project) error {
	if project.Category != nil {
		err := r.DB.QueryRow(ctx, `SELECT name FROM category WHERE id = $1`, project.Category.ID).
			Scan(&project.Category.Name)
		if err != nil {
			return err
		}
	}

	project.Attachments = []models.Attachment{}
	rows, err := r.DB.Query(ctx, `
		SELECT id, file_name, file_path, content_type, size_bytes, uploaded_at, project_id
		FROM attachment WHERE project_id = $1 ORDER BY uploaded_at`, project.ID)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var attachment models.Attachment
		if err := rows.Scan(
			&attachment.ID,
			&attachment.FileName,
			&attachment.FilePath,
			&attachment.ContentType,
			&attachment.SizeBytes,
			&attachment.UploadedAt,
			&attachment.ProjectID); err != nil {
			return err
		}
		attachment.File = models.DownloadURL(attachment.ID)
		project.Attachments = append(project.Attachments, attachment)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	project.Comments = []models.Comment{}
	commentRows, err := r.DB.Query(ctx, `
		SELECT id, project_id, comment_text, author_name, created_at
		FROM project_comment WHERE project_id = $1 ORDER BY created_at DESC`, project.ID)
	if err != nil {
		return err
	}
	defer commentRows.Close()
	for commentRows.Next() {
		var comment models.Comment
		if err := commentRows.Scan(
			&comment.ID,
			&comment.ProjectID,
			&comment.CommentText,
			&comment.AuthorName,
			&comment.CreatedAt); err != nil {
			return err
		}
		project.Comments = append(project.Comments, comment)
	}
	return commentRows.Err()
}
