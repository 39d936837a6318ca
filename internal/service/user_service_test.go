package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"messagely/internal/domain"
)

func TestUserService_Register(t *testing.T) {
	users, _ := newTestServices(t)

	user := registerUser(t, users, "alice")
	assert.Equal(t, "alice", user.Username)
	assert.NotEqual(t, "password-alice", user.PasswordHash)
	assert.NotEmpty(t, user.PasswordHash)
	assert.False(t, user.JoinAt.IsZero())
	assert.Equal(t, user.JoinAt, user.LastLoginAt)
}

func TestUserService_RegisterValidation(t *testing.T) {
	users, _ := newTestServices(t)
	ctx := context.Background()

	_, err := users.Register(ctx, RegisterInput{Password: "secret"})
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = users.Register(ctx, RegisterInput{Username: "alice"})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUserService_RegisterDuplicate(t *testing.T) {
	users, _ := newTestServices(t)
	ctx := context.Background()

	registerUser(t, users, "alice")

	_, err := users.Register(ctx, RegisterInput{Username: "alice", Password: "other"})
	require.ErrorIs(t, err, domain.ErrUserAlreadyExists)

	// first registration still authenticates
	ok, err := users.Authenticate(ctx, "alice", "password-alice")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestUserService_Authenticate(t *testing.T) {
	users, _ := newTestServices(t)
	ctx := context.Background()

	registerUser(t, users, "alice")

	ok, err := users.Authenticate(ctx, "alice", "password-alice")
	require.NoError(t, err)
	assert.True(t, ok)

	// wrong password and unknown user are indistinguishable
	ok, err = users.Authenticate(ctx, "alice", "wrong")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = users.Authenticate(ctx, "nobody", "whatever")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestUserService_AuthenticateValidation(t *testing.T) {
	users, _ := newTestServices(t)

	_, err := users.Authenticate(context.Background(), "", "secret")
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = users.Authenticate(context.Background(), "alice", "")
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUserService_TouchLogin(t *testing.T) {
	users, _ := newTestServices(t)
	ctx := context.Background()

	before := registerUser(t, users, "alice").LastLoginAt

	time.Sleep(10 * time.Millisecond)
	stamped, err := users.TouchLogin(ctx, "alice")
	require.NoError(t, err)
	assert.True(t, stamped.After(before))

	got, err := users.Get(ctx, "alice")
	require.NoError(t, err)
	assert.True(t, got.LastLoginAt.After(before))
}

func TestUserService_TouchLoginUnknown(t *testing.T) {
	users, _ := newTestServices(t)

	_, err := users.TouchLogin(context.Background(), "nobody")
	require.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestUserService_GetUnknown(t *testing.T) {
	users, _ := newTestServices(t)

	_, err := users.Get(context.Background(), "nobody")
	require.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestUserService_List(t *testing.T) {
	users, _ := newTestServices(t)

	registerUser(t, users, "bob")
	registerUser(t, users, "alice")

	list, err := users.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "alice", list[0].Username)
	assert.Equal(t, "bob", list[1].Username)
}
