package services

import (
	"context"
	"errors"
	"net/http"

	"github.com/l9kk/CRM-backend/internal/auth"
	"github.com/l9kk/CRM-backend/internal/models"
	"github.com/l9kk/CRM-backend/internal/repository"

	"github.com/jackc/pgx/v5"
)

type AuthService struct {
	Employees repository.EmployeeRepository
	Tokens    *auth.TokenManager
}

// NewAuthService создаёт новый экземпляр AuthService.
func NewAuthService(employees repository.EmployeeRepository, tokens *auth.TokenManager) *AuthService {
	return &AuthService{Employees: employees, Tokens: tokens}
}

// IssueTokens проверяет учётные данные и выпускает пару access/refresh токенов.
func (s *AuthService) IssueTokens(ctx context.Context, req models.TokenRequest) (*models.TokenPair, error) {
	if req.Username == "" || req.Password == "" {
		return nil, models.NewErrorResponse(http.StatusBadRequest, "missing required fields: username and password")
	}

	employee, err := s.Employees.GetEmployeeByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.NewErrorResponse(http.StatusUnauthorized, "invalid username or password")
		}
		return nil, models.NewErrorResponse(http.StatusInternalServerError, "internal server error")
	}

	if err := auth.CheckPassword(req.Password, employee.PasswordHash); err != nil {
		return nil, models.NewErrorResponse(http.StatusUnauthorized, "invalid username or password")
	}

	pair, err := s.Tokens.IssuePair(employee.Username, employee.IsAdmin)
	if err != nil {
		return nil, models.NewErrorResponse(http.StatusInternalServerError, "internal server error")
	}
	return pair, nil
}

// RefreshAccess выпускает новый access-токен по refresh-токену.
func (s *AuthService) RefreshAccess(req models.RefreshRequest) (*models.AccessResponse, error) {
	if req.Refresh == "" {
		return nil, models.NewErrorResponse(http.StatusBadRequest, "missing required field: refresh")
	}

	claims, err := s.Tokens.Verify(req.Refresh, auth.TokenTypeRefresh)
	if err != nil {
		return nil, models.NewErrorResponse(http.StatusUnauthorized, "token is invalid or expired")
	}

	access, err := s.Tokens.IssueAccess(claims.Subject, claims.Admin)
	if err != nil {
		return nil, models.NewErrorResponse(http.StatusInternalServerError, "internal server error")
	}
	return &models.AccessResponse{Access: access}, nil
}
