// Package testutil содержит in-memory реализации репозиториев для юнит-тестов.
package testutil

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/l9kk/CRM-backend/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// FakeProjectRepo - репозиторий заявок в памяти.
type FakeProjectRepo struct {
	Projects map[string]*models.Project
	Created  []models.ProjectRequest
}

func NewFakeProjectRepo() *FakeProjectRepo {
	return &FakeProjectRepo{Projects: make(map[string]*models.Project)}
}

// Add кладёт заявку в репозиторий, выравнивая nil-коллекции.
func (f *FakeProjectRepo) Add(project *models.Project) {
	if project.Attachments == nil {
		project.Attachments = []models.Attachment{}
	}
	if project.Comments == nil {
		project.Comments = []models.Comment{}
	}
	f.Projects[project.ID] = project
}

func (f *FakeProjectRepo) GetProjects(ctx context.Context, filter models.ProjectFilter) ([]models.Project, error) {
	result := []models.Project{}
	for _, project := range f.Projects {
		if matchesProjectFilter(project, filter) {
			result = append(result, *project)
		}
	}
	sortProjects(result, filter.Ordering)
	return pageSlice(result, filter.Limit, filter.Offset), nil
}

func matchesProjectFilter(project *models.Project, filter models.ProjectFilter) bool {
	if len(filter.Statuses) > 0 {
		found := false
		for _, status := range filter.Statuses {
			if models.ProjectStatus(status) == project.Status {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if filter.Category != "" {
		if project.Category == nil || !containsFold(project.Category.Name, filter.Category) {
			return false
		}
	}
	if filter.BudgetGte != nil && (project.Budget == nil || *project.Budget < *filter.BudgetGte) {
		return false
	}
	if filter.BudgetLte != nil && (project.Budget == nil || *project.Budget > *filter.BudgetLte) {
		return false
	}
	if filter.Search != "" {
		if !containsFold(project.Title, filter.Search) &&
			!containsFold(project.Description, filter.Search) &&
			!containsFold(project.SenderName, filter.Search) {
			return false
		}
	}
	return true
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

func sortProjects(projects []models.Project, ordering string) {
	desc := strings.HasPrefix(ordering, "-")
	field := strings.TrimPrefix(ordering, "-")

	var less func(a, b models.Project) bool
	switch field {
	case "budget":
		less = func(a, b models.Project) bool { return budgetValue(a) < budgetValue(b) }
	case "updated_at":
		less = func(a, b models.Project) bool { return a.UpdatedAt.Before(b.UpdatedAt) }
	case "created_at":
		less = func(a, b models.Project) bool { return a.CreatedAt.Before(b.CreatedAt) }
	default:
		// Как и в SQL-запросе: без явного ordering новые заявки первыми.
		less = func(a, b models.Project) bool { return a.CreatedAt.Before(b.CreatedAt) }
		desc = true
	}

	sort.SliceStable(projects, func(i, j int) bool {
		if desc {
			return less(projects[j], projects[i])
		}
		return less(projects[i], projects[j])
	})
}

func budgetValue(project models.Project) float64 {
	if project.Budget == nil {
		return 0
	}
	return *project.Budget
}

func pageSlice[T any](items []T, limit, offset int) []T {
	if offset > 0 {
		if offset >= len(items) {
			return []T{}
		}
		items = items[offset:]
	}
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}

func (f *FakeProjectRepo) GetProjectByID(ctx context.Context, projectID string) (*models.Project, error) {
	project, ok := f.Projects[projectID]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *project
	return &copied, nil
}

func (f *FakeProjectRepo) CreateProject(ctx context.Context, req models.ProjectRequest) (*models.Project, error) {
	f.Created = append(f.Created, req)
	now := time.Now().UTC()
	project := &models.Project{
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
	f.Add(project)
	return project, nil
}

func (f *FakeProjectRepo) UpdateProjectStatus(ctx context.Context, projectID string, status models.ProjectStatus) (bool, error) {
	project, ok := f.Projects[projectID]
	if !ok || project.Status != models.NewProject {
		return false, nil
	}
	project.Status = status
	project.UpdatedAt = time.Now().UTC()
	return true, nil
}

func (f *FakeProjectRepo) ProjectExists(ctx context.Context, projectID string) (bool, error) {
	_, ok := f.Projects[projectID]
	return ok, nil
}

// FakeCategoryRepo - репозиторий категорий в памяти.
type FakeCategoryRepo struct {
	Categories map[string]models.Category
}

func NewFakeCategoryRepo(categories ...models.Category) *FakeCategoryRepo {
	repo := &FakeCategoryRepo{Categories: make(map[string]models.Category)}
	for _, category := range categories {
		repo.Categories[category.ID] = category
	}
	return repo
}

func (f *FakeCategoryRepo) GetCategories(ctx context.Context) ([]models.Category, error) {
	result := []models.Category{}
	for _, category := range f.Categories {
		result = append(result, category)
	}
	return result, nil
}

func (f *FakeCategoryRepo) GetCategoryByID(ctx context.Context, categoryID string) (*models.Category, error) {
	category, ok := f.Categories[categoryID]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &category, nil
}

// FakeCommentRepo - репозиторий комментариев в памяти.
type FakeCommentRepo struct {
	Comments []models.Comment
}

func (f *FakeCommentRepo) CreateComment(ctx context.Context, projectID, commentText, authorName string) (*models.Comment, error) {
	comment := models.Comment{
		ID:          uuid.New().String(),
		ProjectID:   projectID,
		CommentText: commentText,
		AuthorName:  authorName,
		CreatedAt:   time.Now().UTC(),
	}
	f.Comments = append(f.Comments, comment)
	return &comment, nil
}

// FakeLogRepo - журнал действий в памяти.
type FakeLogRepo struct {
	Entries []models.ApplicationLog
}

func (f *FakeLogRepo) InsertLog(ctx context.Context, level, message, loggerName string) error {
	f.Entries = append(f.Entries, models.ApplicationLog{
		ID:         uuid.New().String(),
		Level:      level,
		Message:    message,
		LoggerName: loggerName,
		CreatedAt:  time.Now().UTC(),
	})
	return nil
}

func (f *FakeLogRepo) GetLogs(ctx context.Context, level, search string, limit, offset int) ([]models.ApplicationLog, error) {
	result := []models.ApplicationLog{}
	for _, entry := range f.Entries {
		if level != "" && !strings.EqualFold(entry.Level, level) {
			continue
		}
		if search != "" && !containsFold(entry.Message, search) {
			continue
		}
		result = append(result, entry)
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return pageSlice(result, limit, offset), nil
}

// FakeEmployeeRepo - учётные записи сотрудников в памяти.
type FakeEmployeeRepo struct {
	Employees map[string]models.Employee
}

func NewFakeEmployeeRepo(employees ...models.Employee) *FakeEmployeeRepo {
	repo := &FakeEmployeeRepo{Employees: make(map[string]models.Employee)}
	for _, employee := range employees {
		repo.Employees[employee.Username] = employee
	}
	return repo
}

func (f *FakeEmployeeRepo) GetEmployeeByUsername(ctx context.Context, username string) (*models.Employee, error) {
	employee, ok := f.Employees[username]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &employee, nil
}

func (f *FakeEmployeeRepo) CreateEmployee(ctx context.Context, username, passwordHash string, isAdmin bool) (*models.Employee, error) {
	if _, ok := f.Employees[username]; ok {
		return nil, fmt.Errorf("employee %s already exists", username)
	}
	employee := models.Employee{
		ID:           uuid.New().String(),
		Username:     username,
		PasswordHash: passwordHash,
		IsAdmin:      isAdmin,
		CreatedAt:    time.Now().UTC(),
	}
	f.Employees[username] = employee
	return &employee, nil
}

// SentMail - письмо, перехваченное FakeMailer.
type SentMail struct {
	To      string
	Subject string
	Body    string
}

// FakeMailer перехватывает исходящие уведомления.
type FakeMailer struct {
	Sent []SentMail
}

func (f *FakeMailer) Send(to, subject, body string) error {
	f.Sent = append(f.Sent, SentMail{To: to, Subject: subject, Body: body})
	return nil
}

// FakeAttachmentRepo - репозиторий вложений в памяти.
type FakeAttachmentRepo struct {
	Attachments map[string]*models.Attachment
}

func NewFakeAttachmentRepo() *FakeAttachmentRepo {
	return &FakeAttachmentRepo{Attachments: make(map[string]*models.Attachment)}
}

func (f *FakeAttachmentRepo) CreateAttachment(ctx context.Context, attachment *models.Attachment) error {
	copied := *attachment
	f.Attachments[attachment.ID] = &copied
	return nil
}

func (f *FakeAttachmentRepo) GetAttachmentByID(ctx context.Context, attachmentID string) (*models.Attachment, error) {
	attachment, ok := f.Attachments[attachmentID]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *attachment
	copied.File = models.DownloadURL(copied.ID)
	return &copied, nil
}
