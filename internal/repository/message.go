package repository

import (
	"context"
	"time"

	"messagely/internal/domain"
)

// MessageRepository exposes persistence operations for Message rows,
// including the joined counterpart-profile queries the directory needs.
type MessageRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, msg *domain.Message) (int64, error)
	Get(ctx context.Context, id int64) (*domain.Message, error)
	MarkRead(ctx context.Context, id int64, at time.Time) error
	// ListTo returns messages addressed to username, each with FromUser joined.
	ListTo(ctx context.Context, username string) ([]domain.Message, error)
	// ListFrom returns messages sent by username, each with ToUser joined.
	ListFrom(ctx context.Context, username string) ([]domain.Message, error)
}
