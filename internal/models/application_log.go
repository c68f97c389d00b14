package models

import "time"

// ApplicationLog представляет запись журнала действий в системе.
type ApplicationLog struct {
	ID         string    `json:"id"`
	Level      string    `json:"level"`
	Message    string    `json:"message"`
	LoggerName string    `json:"logger_name"`
	CreatedAt  time.Time `json:"created_at"`
}
