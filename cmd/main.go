package main

import (
	"log"
	"net/http"
	"os"
	"time"

	"github.com/l9kk/CRM-backend/internal/auth"
	"github.com/l9kk/CRM-backend/internal/db"
	"github.com/l9kk/CRM-backend/internal/handlers"
	"github.com/l9kk/CRM-backend/internal/notify"
	"github.com/l9kk/CRM-backend/internal/repository"
	"github.com/l9kk/CRM-backend/internal/router"
	"github.com/l9kk/CRM-backend/internal/router/config"
	"github.com/l9kk/CRM-backend/internal/services"
	"github.com/l9kk/CRM-backend/internal/storage"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

func main() {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatal("cannot load config:", err)
	}

	runDBMigration(cfg.MigrationURL, cfg.PostgresConn)

	dbPool, err := db.InitDb(cfg)
	if err != nil {
		log.Fatalf("error initializing database: %v", err)
	}
	defer dbPool.Close()

	logger := log.New(os.Stdout, "INFO: ", log.LstdFlags)

	accessTTL := parseDuration(cfg.AccessTokenDuration, 15*time.Minute)
	refreshTTL := parseDuration(cfg.RefreshTokenDuration, 24*time.Hour)
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET is not set")
	}
	tokens := auth.NewTokenManager(cfg.JWTSecret, accessTTL, refreshTTL)

	uploadDir := cfg.UploadDir
	if uploadDir == "" {
		uploadDir = "uploads"
	}
	fileStorage := storage.New(uploadDir)
	mailer := notify.NewMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword)

	projectRepo := repository.NewPostgresProjectRepository(dbPool)
	attachmentRepo := repository.NewPostgresAttachmentRepository(dbPool)
	commentRepo := repository.NewPostgresCommentRepository(dbPool)
	categoryRepo := repository.NewPostgresCategoryRepository(dbPool)
	employeeRepo := repository.NewPostgresEmployeeRepository(dbPool)
	logRepo := repository.NewPostgresLogRepository(dbPool)

	authService := services.NewAuthService(employeeRepo, tokens)
	projectService := services.NewProjectService(projectRepo, categoryRepo, commentRepo, logRepo, mailer, logger)
	attachmentService := services.NewAttachmentService(attachmentRepo, projectRepo, logRepo, fileStorage, logger)
	commentService := services.NewCommentService(commentRepo, projectRepo, logRepo, mailer, logger)
	categoryService := services.NewCategoryService(categoryRepo)
	logService := services.NewLogService(logRepo)

	authHandler := handlers.NewAuthHandler(authService, logger, 5*time.Second)
	projectHandler := handlers.NewProjectHandler(projectService, logger, 5*time.Second)
	attachmentHandler := handlers.NewAttachmentHandler(attachmentService, logger, 30*time.Second)
	commentHandler := handlers.NewCommentHandler(commentService, logger, 5*time.Second)
	categoryHandler := handlers.NewCategoryHandler(categoryService, logger, 5*time.Second)
	logHandler := handlers.NewLogHandler(logService, logger, 5*time.Second)

	routes := router.InitRoutes(authHandler, projectHandler, attachmentHandler, commentHandler, categoryHandler, logHandler, tokens)

	log.Printf("server is listening on %s...", cfg.ServerAddress)
	if err := http.ListenAndServe(cfg.ServerAddress, routes); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}

func parseDuration(value string, fallback time.Duration) time.Duration {
	if value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		log.Fatalf("invalid duration %q: %v", value, err)
	}
	return d
}

func runDBMigration(migrationURL string, dbSource string) {
	migration, err := migrate.New(migrationURL, dbSource)
	if err != nil {
		log.Fatal("cannot create a new migrate instance", err)
	}

	if err = migration.Up(); err != nil && err != migrate.ErrNoChange {
		log.Fatal("failed to run migrate up:", err)
	}
	log.Println("db migrated successfully")
}
