package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	authsvc "github.com/Areandra/Kelvin/internal/auth"
	"github.com/Areandra/Kelvin/pkg/config"
	"github.com/Areandra/Kelvin/pkg/db"
	"github.com/Areandra/Kelvin/pkg/db/models"
	"github.com/Areandra/Kelvin/pkg/logger"
	"github.com/Areandra/Kelvin/pkg/security"
)

// Provisions (or refreshes) the single admin login account.
func main() {
	ctx := context.Background()
	logg := logger.New(logger.Options{ServiceName: "seed-admin"})

	_ = godotenv.Load()

	fullName := flag.String("name", "Administrator", "admin display name")
	password := flag.String("password", "", "admin password (falls back to KELVIN_ADMIN_PASSWORD)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		logg.Error(ctx, "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "seed-admin",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	secret := *password
	if secret == "" {
		secret = os.Getenv("KELVIN_ADMIN_PASSWORD")
	}
	generated := false
	if secret == "" {
		secret, err = security.GenerateTempPassword(16)
		if err != nil {
			logg.Error(ctx, "failed to generate password", err)
			os.Exit(1)
		}
		generated = true
	}

	hash, err := security.HashPassword(secret, cfg.Password)
	if err != nil {
		logg.Error(ctx, "failed to hash password", err)
		os.Exit(1)
	}

	dbClient, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer dbClient.Close()

	repo := authsvc.NewRepository(dbClient.DB())
	user := &models.User{
		ID:           uuid.New(),
		FullName:     *fullName,
		Email:        cfg.Auth.AdminEmail,
		PasswordHash: hash,
	}
	if err := repo.UpsertUser(ctx, user); err != nil {
		logg.Error(ctx, "failed to upsert admin account", err)
		os.Exit(1)
	}

	ctx = logg.WithFields(ctx, map[string]any{"email": cfg.Auth.AdminEmail})
	logg.Info(ctx, "admin account provisioned")
	if generated {
		fmt.Println("generated admin password:", secret)
	}
}
