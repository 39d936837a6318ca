package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"messagely/internal/domain"
	"messagely/internal/repository"
)

// MessageService coordinates message creation, lookup and read receipts,
// enforcing sender/recipient ownership on every read or mutation.
type MessageService interface {
	Send(ctx context.Context, from, to, body string) (*domain.Message, error)
	Get(ctx context.Context, id int64, caller string) (*domain.Message, error)
	MarkRead(ctx context.Context, id int64, caller string) (*domain.Message, error)
	Inbox(ctx context.Context, username string) ([]domain.Message, error)
	Outbox(ctx context.Context, username string) ([]domain.Message, error)
}

type messageService struct {
	messages repository.MessageRepository
	users    repository.UserRepository
}

func NewMessageService(messages repository.MessageRepository, users repository.UserRepository) MessageService {
	return &messageService{
		messages: messages,
		users:    users,
	}
}

func (s *messageService) Send(ctx context.Context, from, to, body string) (*domain.Message, error) {
	to = strings.TrimSpace(to)
	if to == "" {
		return nil, fmt.Errorf("%w: to_username is required", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(body) == "" {
		return nil, fmt.Errorf("%w: body is required", domain.ErrInvalidInput)
	}

	// The schema carries FK constraints on both usernames; checking here
	// turns an unknown recipient into a 404 instead of a raw constraint error.
	exists, err := s.users.Exists(ctx, to)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.ErrUserNotFound
	}

	msg := &domain.Message{
		FromUsername: from,
		ToUsername:   to,
		Body:         body,
		SentAt:       time.Now().UTC(),
	}
	if _, err := s.messages.Create(ctx, msg); err != nil {
		return nil, err
	}
	return msg, nil
}

func (s *messageService) Get(ctx context.Context, id int64, caller string) (*domain.Message, error) {
	msg, err := s.messages.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if caller != msg.FromUsername && caller != msg.ToUsername {
		return nil, domain.ErrUnauthorized
	}
	return msg, nil
}

// MarkRead stamps read_at and returns the updated message. Only the
// recipient may mark a message read; a repeat call re-stamps the timestamp.
func (s *messageService) MarkRead(ctx context.Context, id int64, caller string) (*domain.Message, error) {
	msg, err := s.messages.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if caller != msg.ToUsername {
		return nil, domain.ErrUnauthorized
	}

	now := time.Now().UTC()
	if err := s.messages.MarkRead(ctx, id, now); err != nil {
		return nil, err
	}
	msg.ReadAt = &now
	return msg, nil
}

func (s *messageService) Inbox(ctx context.Context, username string) ([]domain.Message, error) {
	if err := s.requireUser(ctx, username); err != nil {
		return nil, err
	}
	return s.messages.ListTo(ctx, username)
}

func (s *messageService) Outbox(ctx context.Context, username string) ([]domain.Message, error) {
	if err := s.requireUser(ctx, username); err != nil {
		return nil, err
	}
	return s.messages.ListFrom(ctx, username)
}

// requireUser distinguishes "user has no messages" (empty list) from
// "user does not exist" (not found).
func (s *messageService) requireUser(ctx context.Context, username string) error {
	exists, err := s.users.Exists(ctx, username)
	if err != nil {
		return err
	}
	if !exists {
		return domain.ErrUserNotFound
	}
	return nil
}
