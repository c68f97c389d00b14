package router

import (
	"net/http"

	"github.com/l9kk/CRM-backend/internal/auth"
	"github.com/l9kk/CRM-backend/internal/handlers"
	"github.com/l9kk/CRM-backend/internal/middleware"
)

// InitRoutes собирает таблицу маршрутов API. Маршруты только для
// администраторов обёрнуты в middleware.RequireAdmin.
func InitRoutes(
	authHandler *handlers.AuthHandler,
	projectHandler *handlers.ProjectHandler,
	attachmentHandler *handlers.AttachmentHandler,
	commentHandler *handlers.CommentHandler,
	categoryHandler *handlers.CategoryHandler,
	logHandler *handlers.LogHandler,
	tokens *auth.TokenManager,
) http.Handler {
	mux := http.NewServeMux()

	adminOnly := func(next http.HandlerFunc) http.HandlerFunc {
		return middleware.RequireAdmin(tokens, next)
	}

	mux.HandleFunc("/api/ping", handlers.PingHandler)

	mux.HandleFunc("POST /api/token/{$}", authHandler.IssueToken)
	mux.HandleFunc("POST /api/token/refresh/{$}", authHandler.RefreshToken)

	mux.HandleFunc("GET /api/projects/{$}", adminOnly(projectHandler.GetProjects))
	mux.HandleFunc("POST /api/projects/{$}", projectHandler.CreateProject)
	mux.HandleFunc("GET /api/projects/{projectId}/{$}", adminOnly(projectHandler.GetProject))
	mux.HandleFunc("POST /api/projects/{projectId}/accept/{$}", adminOnly(projectHandler.AcceptProject))
	mux.HandleFunc("POST /api/projects/{projectId}/reject/{$}", adminOnly(projectHandler.RejectProject))

	mux.HandleFunc("POST /api/attachments/{$}", attachmentHandler.UploadAttachment)
	mux.HandleFunc("GET /api/attachments/{attachmentId}/download/{$}", adminOnly(attachmentHandler.DownloadAttachment))

	mux.HandleFunc("POST /api/comments/{$}", adminOnly(commentHandler.CreateComment))

	mux.HandleFunc("GET /api/categories/{$}", categoryHandler.GetCategories)

	mux.HandleFunc("GET /api/logs/{$}", adminOnly(logHandler.GetLogs))

	return mux
}
