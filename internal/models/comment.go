package models

import "time"

// Comment представляет комментарий администратора к заявке.
type Comment struct {
	ID          string    `json:"id"`
	ProjectID   string    `json:"project"`
	CommentText string    `json:"comment_text"`
	AuthorName  string    `json:"author_name"`
	CreatedAt   time.Time `json:"created_at"`
}

// CommentRequest представляет структуру запроса для создания комментария.
type CommentRequest struct {
	Project     string `json:"project"`
	CommentText string `json:"comment_text"`
}
