package storage_test

import (
	"io"
	"mime/multipart"
	"path/filepath"
	"testing"

	"github.com/l9kk/CRM-backend/internal/storage"
	"github.com/l9kk/CRM-backend/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name        string
		filename    string
		contentType string
		wantType    string
		wantErr     bool
	}{
		{name: "pdf by content type", filename: "brief.pdf", contentType: "application/pdf", wantType: "application/pdf"},
		{name: "jpeg by content type", filename: "photo.jpg", contentType: "image/jpeg", wantType: "image/jpeg"},
		{name: "png by extension", filename: "mockup.png", contentType: "application/octet-stream", wantType: "image/png"},
		{name: "jpeg by uppercase extension", filename: "PHOTO.JPG", contentType: "", wantType: "image/jpeg"},
		{name: "executable rejected", filename: "malware.exe", contentType: "application/octet-stream", wantErr: true},
		{name: "text rejected", filename: "notes.txt", contentType: "text/plain", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			header := testutil.MakeFileHeader(t, tt.filename, tt.contentType, []byte("content"))
			contentType, err := storage.Validate(header)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantType, contentType)
		})
	}
}

func TestValidate_TooLarge(t *testing.T) {
	header := &multipart.FileHeader{
		Filename: "huge.pdf",
		Size:     storage.MaxFileSize + 1,
	}

	_, err := storage.Validate(header)
	assert.ErrorContains(t, err, "5MB")
}

func TestSaveAndOpen(t *testing.T) {
	store := storage.New(t.TempDir())

	content := []byte("%PDF-1.4 attachment body")
	header := testutil.MakeFileHeader(t, "brief.pdf", "application/pdf", content)

	relPath, err := store.Save("att-1", header)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("att-1", "brief.pdf"), relPath)

	file, err := store.Open(relPath)
	require.NoError(t, err)
	defer file.Close()

	data, err := io.ReadAll(file)
	require.NoError(t, err)
	assert.Equal(t, content, data)
}

func TestSave_StripsDirectoryFromFilename(t *testing.T) {
	store := storage.New(t.TempDir())

	header := testutil.MakeFileHeader(t, "../../etc/passwd", "application/pdf", []byte("data"))

	relPath, err := store.Save("att-1", header)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("att-1", "passwd"), relPath)
}

func TestOpen_Missing(t *testing.T) {
	store := storage.New(t.TempDir())

	_, err := store.Open("nope/missing.pdf")
	assert.Error(t, err)
}
