package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"messagely/internal/domain"
	"messagely/internal/repository"
)

func newTestDB(t *testing.T) (repository.UserRepository, repository.MessageRepository) {
	t.Helper()

	db, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	users := NewUserRepository(db)
	messages := NewMessageRepository(db)
	require.NoError(t, users.Init(context.Background()))
	require.NoError(t, messages.Init(context.Background()))

	return users, messages
}

func seedUser(t *testing.T, users repository.UserRepository, username string) *domain.User {
	t.Helper()

	now := time.Now().UTC()
	user := &domain.User{
		Username:     username,
		PasswordHash: "x",
		FirstName:    "First-" + username,
		LastName:     "Last-" + username,
		Phone:        "+14155550000",
		JoinAt:       now,
		LastLoginAt:  now,
	}
	require.NoError(t, users.Create(context.Background(), user))
	return user
}

func seedMessage(t *testing.T, messages repository.MessageRepository, from, to, body string) *domain.Message {
	t.Helper()

	msg := &domain.Message{
		FromUsername: from,
		ToUsername:   to,
		Body:         body,
		SentAt:       time.Now().UTC(),
	}
	_, err := messages.Create(context.Background(), msg)
	require.NoError(t, err)
	return msg
}
