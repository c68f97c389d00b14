package storage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
)

const MaxFileSize = 5 * 1024 * 1024

var allowedContentTypes = map[string]bool{
	"image/jpeg":      true,
	"image/png":       true,
	"application/pdf": true,
}

var allowedExtensions = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".pdf":  "application/pdf",
}

// Storage сохраняет и отдаёт файлы вложений на локальном диске.
type Storage struct {
	BaseDir string
}

// New создаёт новый экземпляр Storage.
func New(baseDir string) *Storage {
	return &Storage{BaseDir: baseDir}
}

// Validate проверяет размер и тип загружаемого файла.
// Возвращает определённый content type файла.
func Validate(header *multipart.FileHeader) (string, error) {
	if header.Size > MaxFileSize {
		return "", fmt.Errorf("file size must not exceed 5MB")
	}

	contentType := header.Header.Get("Content-Type")
	if allowedContentTypes[contentType] {
		return contentType, nil
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if detected, ok := allowedExtensions[ext]; ok {
		return detected, nil
	}
	return "", fmt.Errorf("invalid file type, allowed types: JPEG, PNG, PDF")
}

// Save записывает файл вложения в каталог attachmentID и возвращает
// относительный путь к сохранённому файлу.
func (s *Storage) Save(attachmentID string, header *multipart.FileHeader) (string, error) {
	file, err := header.Open()
	if err != nil {
		return "", err
	}
	defer file.Close()

	dir := filepath.Join(s.BaseDir, attachmentID)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}

	filename := filepath.Base(header.Filename)
	dst, err := os.Create(filepath.Join(dir, filename))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		return "", err
	}

	return filepath.Join(attachmentID, filename), nil
}

// Open открывает ранее сохранённый файл по относительному пути.
func (s *Storage) Open(relPath string) (io.ReadCloser, error) {
	return os.Open(filepath.Join(s.BaseDir, relPath))
}
