package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/l9kk/CRM-backend/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

var ErrInvalidToken = errors.New("invalid or expired token")

// Claims - полезная нагрузка access/refresh токенов.
type Claims struct {
	Admin     bool   `json:"admin"`
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

// TokenManager выпускает и проверяет JWT-токены, подписанные HS256.
type TokenManager struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewTokenManager создаёт новый экземпляр TokenManager.
func NewTokenManager(secret string, accessTTL, refreshTTL time.Duration) *TokenManager {
	return &TokenManager{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

// IssuePair выпускает пару access/refresh токенов для пользователя.
func (m *TokenManager) IssuePair(username string, isAdmin bool) (*models.TokenPair, error) {
	access, err := m.issue(username, isAdmin, TokenTypeAccess, m.accessTTL)
	if err != nil {
		return nil, err
	}
	refresh, err := m.issue(username, isAdmin, TokenTypeRefresh, m.refreshTTL)
	if err != nil {
		return nil, err
	}
	return &models.TokenPair{Access: access, Refresh: refresh}, nil
}

// IssueAccess выпускает одиночный access-токен.
func (m *TokenManager) IssueAccess(username string, isAdmin bool) (string, error) {
	return m.issue(username, isAdmin, TokenTypeAccess, m.accessTTL)
}

func (m *TokenManager) issue(username string, isAdmin bool, tokenType string, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	claims := Claims{
		Admin:     isAdmin,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify проверяет подпись и срок действия токена и требует указанный тип.
func (m *TokenManager) Verify(tokenString, wantType string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.TokenType != wantType {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
