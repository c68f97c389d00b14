package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/l9kk/CRM-backend/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// EmployeeRepository - интерфейс для работы с учётными записями сотрудников.
type EmployeeRepository interface {
	GetEmployeeByUsername(ctx context.Context, username string) (*models.Employee, error)
	CreateEmployee(ctx context.Context, username, passwordHash string, isAdmin bool) (*models.Employee, error)
}

// PostgresEmployeeRepository - реализация EmployeeRepository для базы данных.
type PostgresEmployeeRepository struct {
	DB *pgxpool.Pool
}

// NewPostgresEmployeeRepository создаёт новый экземпляр PostgresEmployeeRepository.
func NewPostgresEmployeeRepository(db *pgxpool.Pool) *PostgresEmployeeRepository {
	return &PostgresEmployeeRepository{DB: db}
}

// GetEmployeeByUsername возвращает сотрудника по имени пользователя.
func (r *PostgresEmployeeRepository) GetEmployeeByUsername(ctx context.Context, username string) (*models.Employee, error) {
	var employee models.Employee
	query := `SELECT id, username, password_hash, is_admin, created_at FROM employee WHERE username = $1`
	err := r.DB.QueryRow(ctx, query, username).Scan(
		&employee.ID,
		&employee.Username,
		&employee.PasswordHash,
		&employee.IsAdmin,
		&employee.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &employee, nil
}

// CreateEmployee создаёт учётную запись сотрудника.
func (r *PostgresEmployeeRepository) CreateEmployee(ctx context.Context, username, passwordHash string, isAdmin bool) (*models.Employee, error) {
	newEmployee := models.Employee{
		ID:           uuid.New().String(),
		Username:     username,
		PasswordHash: passwordHash,
		IsAdmin:      isAdmin,
		CreatedAt:    time.Now().UTC(),
	}
	_, err := r.DB.Exec(ctx, `
       INSERT INTO employee (id, username, password_hash, is_admin, created_at)
       VALUES ($1, $2, $3, $4, $5)
   `,
		newEmployee.ID,
		newEmployee.Username,
		newEmployee.PasswordHash,
		newEmployee.IsAdmin,
		newEmployee.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert employee: %w", err)
	}
	return &newEmployee, nil
}
