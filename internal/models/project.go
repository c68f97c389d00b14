package models

import "time"

type ProjectStatus string // Статус заявки на проект

const (
	NewProject      ProjectStatus = "NEW"      // Заявка создана и ожидает решения
	AcceptedProject ProjectStatus = "ACCEPTED" // Заявка принята администратором
	RejectedProject ProjectStatus = "REJECTED" // Заявка отклонена администратором
)

// Project представляет модель заявки на проект.
type Project struct {
	ID           string        `json:"id"`
	Title        string        `json:"title"`
	Description  string        `json:"description"`
	Budget       *float64      `json:"budget"`
	Deadline     *Date         `json:"deadline"`
	SenderName   string        `json:"sender_name"`
	ContactEmail string        `json:"contact_email"`
	Category     *Category     `json:"category"`
	Status       ProjectStatus `json:"status"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
	Attachments  []Attachment  `json:"attachments"`
	Comments     []Comment     `json:"comments"`
}

// ProjectRequest представляет структуру запроса для создания заявки.
type ProjectRequest struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Budget       *float64 `json:"budget"`
	Deadline     *Date    `json:"deadline"`
	SenderName   string   `json:"sender_name"`
	ContactEmail string   `json:"contact_email"`
	Category     string   `json:"category"`
}

// ProjectFilter описывает параметры фильтрации списка заявок.
type ProjectFilter struct {
	Statuses  []string
	Category  string
	BudgetGte *float64
	BudgetLte *float64
	Search    string
	Ordering  string
	Limit     int
	Offset    int
}

// DecisionRequest представляет тело запроса для принятия или отклонения заявки.
type DecisionRequest struct {
	CommentText string `json:"comment_text"`
}

// DecisionResponse представляет результат принятия или отклонения заявки.
type DecisionResponse struct {
	Detail      string        `json:"detail"`
	Status      ProjectStatus `json:"status"`
	CommentText string        `json:"comment_text"`
}
