package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"messagely/internal/domain"
	"messagely/internal/repository/sqlite"
)

func newTestServices(t *testing.T) (UserService, MessageService) {
	t.Helper()

	db, err := sqlite.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	users := sqlite.NewUserRepository(db)
	messages := sqlite.NewMessageRepository(db)
	require.NoError(t, users.Init(context.Background()))
	require.NoError(t, messages.Init(context.Background()))

	return NewUserService(users), NewMessageService(messages, users)
}

func registerUser(t *testing.T, users UserService, username string) *domain.User {
	t.Helper()

	user, err := users.Register(context.Background(), RegisterInput{
		Username:  username,
		Password:  "password-" + username,
		FirstName: "First-" + username,
		LastName:  "Last-" + username,
		Phone:     "+14155550000",
	})
	require.NoError(t, err)
	return user
}
