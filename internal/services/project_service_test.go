package services

import (
	"context"
	"io"
	"log"
	"net/http"
	"testing"
	"time"

	"github.com/l9kk/CRM-backend/internal/models"
	"github.com/l9kk/CRM-backend/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProjectService(repo *testutil.FakeProjectRepo, categories *testutil.FakeCategoryRepo, comments *testutil.FakeCommentRepo, logs *testutil.FakeLogRepo, mailer *testutil.FakeMailer) *ProjectService {
	return NewProjectService(repo, categories, comments, logs, mailer, log.New(io.Discard, "", 0))
}

func validProjectRequest() models.ProjectRequest {
	return models.ProjectRequest{
		Title:        "Corporate website redesign",
		Description:  "Full redesign of the public website",
		SenderName:   "Jane Smith",
		ContactEmail: "jane@example.com",
	}
}

func TestCreateProject_MissingFields(t *testing.T) {
	cases := map[string]func(*models.ProjectRequest){
		"no title":         func(r *models.ProjectRequest) { r.Title = "" },
		"no description":   func(r *models.ProjectRequest) { r.Description = "" },
		"no contact_email": func(r *models.ProjectRequest) { r.ContactEmail = "" },
		"no sender_name":   func(r *models.ProjectRequest) { r.SenderName = "" },
	}

	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			repo := testutil.NewFakeProjectRepo()
			service := newProjectService(repo, testutil.NewFakeCategoryRepo(), &testutil.FakeCommentRepo{}, &testutil.FakeLogRepo{}, &testutil.FakeMailer{})

			req := validProjectRequest()
			mutate(&req)

			_, err := service.CreateProject(context.Background(), req)
			require.Error(t, err)

			errorResponse, ok := err.(*models.ErrorResponse)
			require.True(t, ok)
			assert.Equal(t, http.StatusBadRequest, errorResponse.StatusCode)
			assert.Empty(t, repo.Created, "nothing must be persisted on validation failure")
		})
	}
}

func TestCreateProject_InvalidEmail(t *testing.T) {
	service := newProjectService(testutil.NewFakeProjectRepo(), testutil.NewFakeCategoryRepo(), &testutil.FakeCommentRepo{}, &testutil.FakeLogRepo{}, &testutil.FakeMailer{})

	req := validProjectRequest()
	req.ContactEmail = "not-an-email"

	_, err := service.CreateProject(context.Background(), req)
	require.Error(t, err)

	errorResponse, ok := err.(*models.ErrorResponse)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, errorResponse.StatusCode)
}

func TestCreateProject_PastDeadline(t *testing.T) {
	service := newProjectService(testutil.NewFakeProjectRepo(), testutil.NewFakeCategoryRepo(), &testutil.FakeCommentRepo{}, &testutil.FakeLogRepo{}, &testutil.FakeMailer{})

	yesterday := time.Now().UTC().AddDate(0, 0, -1)
	req := validProjectRequest()
	req.Deadline = &models.Date{Time: time.Date(yesterday.Year(), yesterday.Month(), yesterday.Day(), 0, 0, 0, 0, time.UTC)}

	_, err := service.CreateProject(context.Background(), req)
	require.Error(t, err)

	errorResponse, ok := err.(*models.ErrorResponse)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, errorResponse.StatusCode)
	assert.Contains(t, errorResponse.Message, "deadline")
}

func TestCreateProject_UnknownCategory(t *testing.T) {
	service := newProjectService(testutil.NewFakeProjectRepo(), testutil.NewFakeCategoryRepo(), &testutil.FakeCommentRepo{}, &testutil.FakeLogRepo{}, &testutil.FakeMailer{})

	req := validProjectRequest()
	req.Category = "missing-category-id"

	_, err := service.CreateProject(context.Background(), req)
	require.Error(t, err)

	errorResponse, ok := err.(*models.ErrorResponse)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, errorResponse.StatusCode)
}

func TestCreateProject_Success(t *testing.T) {
	category := models.Category{ID: "cat-1", Name: "Web Development"}
	repo := testutil.NewFakeProjectRepo()
	logs := &testutil.FakeLogRepo{}
	mailer := &testutil.FakeMailer{}
	service := newProjectService(repo, testutil.NewFakeCategoryRepo(category), &testutil.FakeCommentRepo{}, logs, mailer)

	req := validProjectRequest()
	req.Category = category.ID

	project, err := service.CreateProject(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, models.NewProject, project.Status)
	assert.NotEmpty(t, project.ID)
	assert.Empty(t, project.Attachments)
	assert.Empty(t, project.Comments)
	require.NotNil(t, project.Category)
	assert.Equal(t, "Web Development", project.Category.Name)

	require.Len(t, logs.Entries, 1)
	assert.Equal(t, "INFO", logs.Entries[0].Level)
	assert.Equal(t, "Create project", logs.Entries[0].LoggerName)

	require.Len(t, mailer.Sent, 1)
	assert.Equal(t, "jane@example.com", mailer.Sent[0].To)
	assert.Equal(t, "Thank you for your project proposal", mailer.Sent[0].Subject)
}

func TestAcceptProject_Success(t *testing.T) {
	repo := testutil.NewFakeProjectRepo()
	repo.Add(&models.Project{
		ID:           "proj-1",
		Title:        "CRM integration",
		ContactEmail: "client@example.com",
		Status:       models.NewProject,
	})
	comments := &testutil.FakeCommentRepo{}
	logs := &testutil.FakeLogRepo{}
	mailer := &testutil.FakeMailer{}
	service := newProjectService(repo, testutil.NewFakeCategoryRepo(), comments, logs, mailer)

	decision, err := service.AcceptProject(context.Background(), "proj-1", models.DecisionRequest{}, "admin")
	require.NoError(t, err)

	assert.Equal(t, "Project accepted", decision.Detail)
	assert.Equal(t, models.AcceptedProject, decision.Status)
	assert.Equal(t, "Project 'CRM integration' was accepted.", decision.CommentText)
	assert.Equal(t, models.AcceptedProject, repo.Projects["proj-1"].Status)

	require.Len(t, comments.Comments, 1)
	assert.Equal(t, "admin", comments.Comments[0].AuthorName)
	assert.Equal(t, decision.CommentText, comments.Comments[0].CommentText)

	require.Len(t, logs.Entries, 1)
	assert.Equal(t, "Accept project", logs.Entries[0].LoggerName)

	require.Len(t, mailer.Sent, 1)
	assert.Equal(t, "client@example.com", mailer.Sent[0].To)
	assert.Equal(t, "Project 'CRM integration' Accepted", mailer.Sent[0].Subject)
}

func TestRejectProject_CustomComment(t *testing.T) {
	repo := testutil.NewFakeProjectRepo()
	repo.Add(&models.Project{
		ID:           "proj-1",
		Title:        "CRM integration",
		ContactEmail: "client@example.com",
		Status:       models.NewProject,
	})
	comments := &testutil.FakeCommentRepo{}
	service := newProjectService(repo, testutil.NewFakeCategoryRepo(), comments, &testutil.FakeLogRepo{}, &testutil.FakeMailer{})

	decision, err := service.RejectProject(context.Background(), "proj-1",
		models.DecisionRequest{CommentText: "Budget is out of range."}, "admin")
	require.NoError(t, err)

	assert.Equal(t, "Project rejected", decision.Detail)
	assert.Equal(t, models.RejectedProject, decision.Status)
	assert.Equal(t, "Budget is out of range.", decision.CommentText)
	require.Len(t, comments.Comments, 1)
	assert.Equal(t, "Budget is out of range.", comments.Comments[0].CommentText)
}

func TestAcceptProject_AlreadyDecided(t *testing.T) {
	repo := testutil.NewFakeProjectRepo()
	repo.Add(&models.Project{
		ID:     "proj-1",
		Title:  "CRM integration",
		Status: models.RejectedProject,
	})
	service := newProjectService(repo, testutil.NewFakeCategoryRepo(), &testutil.FakeCommentRepo{}, &testutil.FakeLogRepo{}, &testutil.FakeMailer{})

	_, err := service.AcceptProject(context.Background(), "proj-1", models.DecisionRequest{}, "admin")
	require.Error(t, err)

	errorResponse, ok := err.(*models.ErrorResponse)
	require.True(t, ok)
	assert.Equal(t, http.StatusConflict, errorResponse.StatusCode)
	assert.Equal(t, models.RejectedProject, repo.Projects["proj-1"].Status, "terminal status must not change")
}

// decidedElsewhereRepo имитирует конкурирующее решение, прошедшее между
// чтением заявки и условным UPDATE.
type decidedElsewhereRepo struct {
	*testutil.FakeProjectRepo
	winner models.ProjectStatus
}

func (r *decidedElsewhereRepo) UpdateProjectStatus(ctx context.Context, projectID string, status models.ProjectStatus) (bool, error) {
	r.Projects[projectID].Status = r.winner
	return false, nil
}

func TestAcceptProject_LosesRaceToReject(t *testing.T) {
	base := testutil.NewFakeProjectRepo()
	base.Add(&models.Project{ID: "proj-1", Title: "CRM integration", Status: models.NewProject})
	repo := &decidedElsewhereRepo{FakeProjectRepo: base, winner: models.RejectedProject}
	service := NewProjectService(repo, testutil.NewFakeCategoryRepo(), &testutil.FakeCommentRepo{},
		&testutil.FakeLogRepo{}, &testutil.FakeMailer{}, log.New(io.Discard, "", 0))

	_, err := service.AcceptProject(context.Background(), "proj-1", models.DecisionRequest{}, "admin")
	require.Error(t, err)

	errorResponse, ok := err.(*models.ErrorResponse)
	require.True(t, ok)
	assert.Equal(t, http.StatusConflict, errorResponse.StatusCode)
	assert.Contains(t, errorResponse.Message, "REJECTED", "conflict message must carry the winning status")
}

func TestAcceptProject_NotFound(t *testing.T) {
	service := newProjectService(testutil.NewFakeProjectRepo(), testutil.NewFakeCategoryRepo(), &testutil.FakeCommentRepo{}, &testutil.FakeLogRepo{}, &testutil.FakeMailer{})

	_, err := service.AcceptProject(context.Background(), "missing", models.DecisionRequest{}, "admin")
	require.Error(t, err)

	errorResponse, ok := err.(*models.ErrorResponse)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, errorResponse.StatusCode)
}

func TestFetchProjects_InvalidStatusFilter(t *testing.T) {
	service := newProjectService(testutil.NewFakeProjectRepo(), testutil.NewFakeCategoryRepo(), &testutil.FakeCommentRepo{}, &testutil.FakeLogRepo{}, &testutil.FakeMailer{})

	_, err := service.FetchProjects(context.Background(), models.ProjectFilter{Statuses: []string{"PENDING"}})
	require.Error(t, err)

	errorResponse, ok := err.(*models.ErrorResponse)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, errorResponse.StatusCode)
}

func TestFetchProjects_InvalidOrdering(t *testing.T) {
	service := newProjectService(testutil.NewFakeProjectRepo(), testutil.NewFakeCategoryRepo(), &testutil.FakeCommentRepo{}, &testutil.FakeLogRepo{}, &testutil.FakeMailer{})

	_, err := service.FetchProjects(context.Background(), models.ProjectFilter{Ordering: "title"})
	require.Error(t, err)

	errorResponse, ok := err.(*models.ErrorResponse)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, errorResponse.StatusCode)
}

func TestGetProject_NotFound(t *testing.T) {
	service := newProjectService(testutil.NewFakeProjectRepo(), testutil.NewFakeCategoryRepo(), &testutil.FakeCommentRepo{}, &testutil.FakeLogRepo{}, &testutil.FakeMailer{})

	_, err := service.GetProject(context.Background(), "missing")
	require.Error(t, err)

	errorResponse, ok := err.(*models.ErrorResponse)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, errorResponse.StatusCode)
}
