// Creates the first administrator account. Self-registration only creates
// students, so a fresh install needs one admin to bootstrap everything else.
//
// Usage: go run scripts/create_admin.go -username admin -password secret123 -name "School Admin"

package main

import (
	"cbt_portal_backend/internal/config"
	"cbt_portal_backend/internal/repository"
	"cbt_portal_backend/internal/service"
	"cbt_portal_backend/pkg/database"
	"cbt_portal_backend/pkg/logger"
	"context"
	"flag"
	"log"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	username := flag.String("username", "admin", "admin username")
	password := flag.String("password", "", "admin password, at least 6 characters")
	fullName := flag.String("name", "Administrator", "admin full name")
	email := flag.String("email", "", "optional admin email")
	flag.Parse()

	if *password == "" {
		log.Fatal("-password is required")
	}

	_ = godotenv.Load()

	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.InitLogger(cfg)
	defer logger.Log.Sync()

	db, err := database.InitDB(&cfg.Database, true)
	if err != nil {
		logger.Log.Fatal("Failed to connect database", zap.Error(err))
	}

	users := service.NewUserService(repository.NewUserRepository(db), cfg)
	admin, err := users.Create(context.Background(), &service.CreateUserRequest{
		Username: *username,
		Password: *password,
		Role:     "admin",
		FullName: *fullName,
		Email:    *email,
	})
	if err != nil {
		logger.Log.Fatal("Failed to create admin", zap.Error(err))
	}

	logger.Log.Info("Admin created", zap.Uint("id", admin.ID), zap.String("username", admin.Username))
}
