package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/schoolkart/backend/internal/domain/identity"
	"github.com/schoolkart/backend/internal/infrastructure/auth"
	"github.com/schoolkart/backend/internal/infrastructure/config"
	"github.com/schoolkart/backend/internal/infrastructure/logger"
	"github.com/schoolkart/backend/internal/infrastructure/persistence"
	"go.uber.org/zap"
)

func main() {
	var (
		logLevel string
		username string
		email    string
		password string
	)

	flag.StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.StringVar(&username, "username", "superadmin", "Superadmin username (seed command)")
	flag.StringVar(&email, "email", "", "Superadmin email (seed command)")
	flag.StringVar(&password, "password", "", "Superadmin password (seed command)")
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(1)
	}
	command := args[0]

	log, err := logger.New(&logger.Config{
		Level:  logLevel,
		Format: "console",
		Output: "stdout",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}

	db, err := persistence.NewDatabase(&cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()

	switch command {
	case "up":
		if err := persistence.AutoMigrate(db.DB); err != nil {
			log.Fatal("Migration failed", zap.Error(err))
		}
		log.Info("Schema migrated")

	case "seed-superadmin":
		if email == "" || password == "" {
			log.Fatal("Both -email and -password are required for seed-superadmin")
		}
		if err := seedSuperadmin(context.Background(), db, username, email, password); err != nil {
			log.Fatal("Seeding failed", zap.Error(err))
		}
		log.Info("Superadmin ready", zap.String("email", email))

	default:
		printUsage()
		os.Exit(1)
	}
}

// seedSuperadmin creates the bootstrap superadmin account if no admin
// with the given email exists
func seedSuperadmin(ctx context.Context, db *persistence.Database, username, email, password string) error {
	adminRepo := persistence.NewGormAdminRepository(db.DB)

	exists, err := adminRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	admin, err := identity.NewAdmin(username, email, hash, identity.RoleSuperadmin)
	if err != nil {
		return err
	}
	return adminRepo.Save(ctx, admin)
}

func printUsage() {
	fmt.Println(`Usage: migrate [flags] <command>

Commands:
  up                Create or update the database schema
  seed-superadmin   Create the bootstrap superadmin account

Flags:
  -log-level  Log level (default: info)
  -username   Superadmin username (default: superadmin)
  -email      Superadmin email
  -password   Superadmin password`)
}
