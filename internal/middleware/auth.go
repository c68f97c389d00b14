package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/l9kk/CRM-backend/internal/auth"
	"github.com/l9kk/CRM-backend/internal/utils"
)

type contextKey string

const identityKey contextKey = "identity"

// Identity - личность аутентифицированного пользователя из токена.
type Identity struct {
	Username string
	IsAdmin  bool
}

// IdentityFrom извлекает личность пользователя из контекста запроса.
func IdentityFrom(ctx context.Context) (Identity, bool) {
	identity, ok := ctx.Value(identityKey).(Identity)
	return identity, ok
}

// RequireAdmin проверяет Bearer-токен и допускает только администраторов.
// Отсутствующий или невалидный токен - 401, валидный без прав - 403.
func RequireAdmin(tokens *auth.TokenManager, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			utils.SendErrorResponse(w, http.StatusUnauthorized, "authentication credentials were not provided")
			return
		}

		tokenString, found := strings.CutPrefix(header, "Bearer ")
		if !found || tokenString == "" {
			utils.SendErrorResponse(w, http.StatusUnauthorized, "invalid authorization header, expected 'Bearer <token>'")
			return
		}

		claims, err := tokens.Verify(tokenString, auth.TokenTypeAccess)
		if err != nil {
			utils.SendErrorResponse(w, http.StatusUnauthorized, "token is invalid or expired")
			return
		}

		if !claims.Admin {
			utils.SendErrorResponse(w, http.StatusForbidden, "you do not have permission to perform this action")
			return
		}

		identity := Identity{Username: claims.Subject, IsAdmin: claims.Admin}
		next(w, r.WithContext(context.WithValue(r.Context(), identityKey, identity)))
	}
}
