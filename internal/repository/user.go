package repository

import (
	"context"
	"time"

	"messagely/internal/domain"
)

// UserRepository defines persistence operations for User entities.
type UserRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, user *domain.User) error
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	TouchLogin(ctx context.Context, username string, at time.Time) error
	Exists(ctx context.Context, username string) (bool, error)
}
