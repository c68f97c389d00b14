package models

import "time"

// Attachment представляет файл, приложенный к заявке.
type Attachment struct {
	ID          string    `json:"id"`
	File        string    `json:"file"` // URL для скачивания файла
	FileName    string    `json:"-"`
	FilePath    string    `json:"-"`
	ContentType string    `json:"-"`
	SizeBytes   int64     `json:"-"`
	UploadedAt  time.Time `json:"uploaded_at"`
	ProjectID   string    `json:"project"`
}

// DownloadURL возвращает путь для скачивания вложения по его id.
func DownloadURL(attachmentID string) string {
	return "/api/attachments/" + attachmentID + "/download/"
}
