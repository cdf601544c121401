package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/Skotchmaster/flogin/internal/config"
	"github.com/Skotchmaster/flogin/internal/logging"
	"github.com/Skotchmaster/flogin/internal/repo"
	"github.com/Skotchmaster/flogin/internal/service"
)

const bootTimeout = 10 * time.Second

// boot loads config, installs the default logger and opens the migrated
// database.
func boot() (config.Config, *slog.Logger, *gorm.DB, error) {
	cfg := config.Load()

	logger := logging.New(cfg.LogLevel).With("service", cfg.ServiceName)
	slog.SetDefault(logger)

	ctx, cancel := context.WithTimeout(context.Background(), bootTimeout)
	defer cancel()

	db, err := config.OpenDB(ctx, cfg)
	if err != nil {
		return cfg, logger, nil, fmt.Errorf("db open: %w", err)
	}
	return cfg, logger, db, nil
}

func closeDB(db *gorm.DB, logger *slog.Logger) {
	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			logger.Error("db close", "error", err)
		}
	}
}

func seedAdmin(cfg config.Config, logger *slog.Logger, users service.UserSeeder) error {
	ctx, cancel := context.WithTimeout(logging.IntoContext(context.Background(), logger), bootTimeout)
	defer cancel()

	if _, err := service.SeedAdmin(ctx, users, cfg.AdminUsername, cfg.AdminPassword, cfg.AdminRole); err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	return nil
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the users and products tables",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, logger, db, err := boot()
		if err != nil {
			return err
		}
		defer closeDB(db, logger)

		logger.Info("migrations applied")
		return nil
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create the admin account if it does not exist",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, db, err := boot()
		if err != nil {
			return err
		}
		defer closeDB(db, logger)

		return seedAdmin(cfg, logger, &repo.GormRepo{DB: db})
	},
}
