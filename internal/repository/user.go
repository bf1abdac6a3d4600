package repository

import (
	"context"

	"github.com/almasbek/auth-gateway/internal/domain"
)

type UserRepository interface {
	// Create persists a new user. Returns domain.ErrEmailTaken when the
	// email is already registered; existing rows are never touched.
	Create(ctx context.Context, email, passwordHash, role string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
}
