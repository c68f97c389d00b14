package services

import (
	"context"
	"io"
	"log"
	"net/http"
	"testing"

	"github.com/l9kk/CRM-backend/internal/models"
	"github.com/l9kk/CRM-backend/internal/storage"
	"github.com/l9kk/CRM-backend/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAttachmentService(t *testing.T, repo *testutil.FakeAttachmentRepo, projects *testutil.FakeProjectRepo, logs *testutil.FakeLogRepo) *AttachmentService {
	t.Helper()
	return NewAttachmentService(repo, projects, logs, storage.New(t.TempDir()), log.New(io.Discard, "", 0))
}

func TestUploadAttachment_UnknownProject(t *testing.T) {
	service := newAttachmentService(t, testutil.NewFakeAttachmentRepo(), testutil.NewFakeProjectRepo(), &testutil.FakeLogRepo{})

	header := testutil.MakeFileHeader(t, "brief.pdf", "application/pdf", []byte("%PDF-1.4"))
	_, err := service.UploadAttachment(context.Background(), "missing", header)
	require.Error(t, err)

	errorResponse, ok := err.(*models.ErrorResponse)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, errorResponse.StatusCode)
}

func TestUploadAttachment_MissingProject(t *testing.T) {
	service := newAttachmentService(t, testutil.NewFakeAttachmentRepo(), testutil.NewFakeProjectRepo(), &testutil.FakeLogRepo{})

	header := testutil.MakeFileHeader(t, "brief.pdf", "application/pdf", []byte("%PDF-1.4"))
	_, err := service.UploadAttachment(context.Background(), "", header)
	require.Error(t, err)

	errorResponse, ok := err.(*models.ErrorResponse)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, errorResponse.StatusCode)
}

func TestUploadAttachment_InvalidType(t *testing.T) {
	projects := testutil.NewFakeProjectRepo()
	projects.Add(&models.Project{ID: "proj-1", Status: models.NewProject})
	service := newAttachmentService(t, testutil.NewFakeAttachmentRepo(), projects, &testutil.FakeLogRepo{})

	header := testutil.MakeFileHeader(t, "malware.exe", "application/octet-stream", []byte{0x4d, 0x5a})
	_, err := service.UploadAttachment(context.Background(), "proj-1", header)
	require.Error(t, err)

	errorResponse, ok := err.(*models.ErrorResponse)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, errorResponse.StatusCode)
}

func TestUploadAndDownloadAttachment(t *testing.T) {
	projects := testutil.NewFakeProjectRepo()
	projects.Add(&models.Project{ID: "proj-1", Status: models.NewProject})
	repo := testutil.NewFakeAttachmentRepo()
	logs := &testutil.FakeLogRepo{}
	service := newAttachmentService(t, repo, projects, logs)

	content := []byte("%PDF-1.4 project brief")
	header := testutil.MakeFileHeader(t, "brief.pdf", "application/pdf", content)

	attachment, err := service.UploadAttachment(context.Background(), "proj-1", header)
	require.NoError(t, err)

	assert.Equal(t, "proj-1", attachment.ProjectID)
	assert.Equal(t, "brief.pdf", attachment.FileName)
	assert.Equal(t, "application/pdf", attachment.ContentType)
	assert.Equal(t, models.DownloadURL(attachment.ID), attachment.File)

	downloaded, file, err := service.DownloadAttachment(context.Background(), attachment.ID, "admin")
	require.NoError(t, err)
	defer file.Close()

	data, err := io.ReadAll(file)
	require.NoError(t, err)
	assert.Equal(t, content, data, "downloaded bytes must match the upload")
	assert.Equal(t, attachment.ID, downloaded.ID)

	require.Len(t, logs.Entries, 1)
	assert.Equal(t, "Attachment download", logs.Entries[0].LoggerName)
	assert.Contains(t, logs.Entries[0].Message, "admin")
}

func TestDownloadAttachment_NotFound(t *testing.T) {
	service := newAttachmentService(t, testutil.NewFakeAttachmentRepo(), testutil.NewFakeProjectRepo(), &testutil.FakeLogRepo{})

	_, _, err := service.DownloadAttachment(context.Background(), "missing", "admin")
	require.Error(t, err)

	errorResponse, ok := err.(*models.ErrorResponse)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, errorResponse.StatusCode)
}
