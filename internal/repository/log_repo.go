package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/l9kk/CRM-backend/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// LogRepository - интерфейс для работы с журналом действий.
type LogRepository interface {
	InsertLog(ctx context.Context, level, message, loggerName string) error
	GetLogs(ctx context.Context, level, search string, limit, offset int) ([]models.ApplicationLog, error)
}

// PostgresLogRepository - реализация LogRepository для базы данных.
type PostgresLogRepository struct {
	DB *pgxpool.Pool
}

// NewPostgresLogRepository создаёт новый экземпляр PostgresLogRepository.
func NewPostgresLogRepository(db *pgxpool.Pool) *PostgresLogRepository {
	return &PostgresLogRepository{DB: db}
}

// InsertLog добавляет запись в журнал действий.
func (r *PostgresLogRepository) InsertLog(ctx context.Context, level, message, loggerName string) error {
	_, err := r.DB.Exec(ctx, `
       INSERT INTO application_log (id, level, message, logger_name, created_at)
       VALUES ($1, $2, $3, $4, $5)
   `,
		uuid.New().String(), level, message, loggerName, time.Now().UTC())
	return err
}

// buildLogQuery собирает SELECT по фильтрам журнала, новые записи первыми.
func buildLogQuery(level, search string, limit, offset int) (string, []interface{}) {
	query := `SELECT id, level, message, logger_name, created_at FROM application_log`
	var filters []string
	var args []interface{}
	argIndex := 1

	if level != "" {
		filters = append(filters, fmt.Sprintf("LOWER(level) = LOWER($%d)", argIndex))
		args = append(args, level)
		argIndex++
	}

	if search != "" {
		filters = append(filters, fmt.Sprintf("message ILIKE '%%' || $%d || '%%'", argIndex))
		args = append(args, search)
		argIndex++
	}

	if len(filters) > 0 {
		query += " WHERE " + strings.Join(filters, " AND ")
	}

	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", argIndex, argIndex+1)
	args = append(args, limit, offset)

	return query, args
}

// GetLogs возвращает записи журнала с учётом фильтров.
func (r *PostgresLogRepository) GetLogs(ctx context.Context, level, search string, limit, offset int) ([]models.ApplicationLog, error) {
	query, args := buildLogQuery(level, search, limit, offset)

	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	logs := []models.ApplicationLog{}
	for rows.Next() {
		var entry models.ApplicationLog
		if err := rows.Scan(
			&entry.ID,
			&entry.Level,
			&entry.Message,
			&entry.LoggerName,
			&entry.CreatedAt); err != nil {
			return nil, err
		}
		logs = append(logs, entry)
	}
	return logs, rows.Err()
}
