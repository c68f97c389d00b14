package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/l9kk/CRM-backend/internal/auth"
	"github.com/l9kk/CRM-backend/internal/db"
	"github.com/l9kk/CRM-backend/internal/repository"
	"github.com/l9kk/CRM-backend/internal/router/config"
)

func main() {
	username := flag.String("username", "", "имя учётной записи администратора")
	password := flag.String("password", "", "пароль учётной записи администратора")
	flag.Parse()

	if *username == "" || *password == "" {
		log.Fatal("both -username and -password are required")
	}
	if len(*password) < 8 {
		log.Fatal("password must be at least 8 characters long")
	}

	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatal("cannot load config:", err)
	}

	dbPool, err := db.InitDb(cfg)
	if err != nil {
		log.Fatalf("error initializing database: %v", err)
	}
	defer dbPool.Close()

	hash, err := auth.HashPassword(*password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	employeeRepo := repository.NewPostgresEmployeeRepository(dbPool)
	admin, err := employeeRepo.CreateEmployee(context.Background(), *username, hash, true)
	if err != nil {
		log.Fatalf("failed to create admin: %v", err)
	}

	fmt.Printf("admin account created: id=%s username=%s\n", admin.ID, admin.Username)
}
