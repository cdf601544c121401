package service

import (
	"context"
	"fmt"

	"github.com/Skotchmaster/flogin/internal/hash"
	"github.com/Skotchmaster/flogin/internal/logging"
	"github.com/Skotchmaster/flogin/internal/models"
)

type UserSeeder interface {
	UserExists(ctx context.Context, username string) (bool, error)
	CreateUser(ctx context.Context, user *models.User) error
}

// SeedAdmin inserts the reserved admin account unless a user with that name
// already exists. It is safe to call on every start.
func SeedAdmin(ctx context.Context, users UserSeeder, username, password, role string) (bool, error) {
	l := logging.FromContext(ctx).With("svc", "seed.admin", "username", username)

	exists, err := users.UserExists(ctx, username)
	if err != nil {
		return false, fmt.Errorf("check admin: %w", err)
	}
	if exists {
		l.Debug("seed_skipped", "reason", "user exists")
		return false, nil
	}

	pwHash, err := hash.HashPassword(password)
	if err != nil {
		return false, fmt.Errorf("hash admin password: %w", err)
	}

	if err := users.CreateUser(ctx, &models.User{Username: username, PasswordHash: pwHash, Role: role}); err != nil {
		return false, fmt.Errorf("create admin: %w", err)
	}

	l.Info("seed_admin_created")
	return true, nil
}
