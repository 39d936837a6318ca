package http

import (
	"time"

	"messagely/internal/domain"
)

type UserSummaryResponse struct {
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
}

type UserProfileResponse struct {
	Username    string `json:"username"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Phone       string `json:"phone"`
	JoinAt      string `json:"join_at"`
	LastLoginAt string `json:"last_login_at"`
}

// MessageResponse is the shape used for inbox/outbox listings and the
// single-message detail. Exactly one of FromUser/ToUser is set in listings;
// both are set on detail.
type MessageResponse struct {
	ID       int64                `json:"id"`
	Body     string               `json:"body"`
	SentAt   string               `json:"sent_at"`
	ReadAt   *string              `json:"read_at"`
	FromUser *UserSummaryResponse `json:"from_user,omitempty"`
	ToUser   *UserSummaryResponse `json:"to_user,omitempty"`
}

type SentMessageResponse struct {
	ID           int64  `json:"id"`
	FromUsername string `json:"from_username"`
	ToUsername   string `json:"to_username"`
	Body         string `json:"body"`
	SentAt       string `json:"sent_at"`
}

type ReadReceiptResponse struct {
	ID     int64   `json:"id"`
	ReadAt *string `json:"read_at"`
}

func userToSummary(user *domain.User) UserSummaryResponse {
	return UserSummaryResponse{
		Username:  user.Username,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Phone:     user.Phone,
	}
}

func userToProfile(user *domain.User) UserProfileResponse {
	return UserProfileResponse{
		Username:    user.Username,
		FirstName:   user.FirstName,
		LastName:    user.LastName,
		Phone:       user.Phone,
		JoinAt:      user.JoinAt.Format(time.RFC3339),
		LastLoginAt: user.LastLoginAt.Format(time.RFC3339),
	}
}

func messageToDetail(msg *domain.Message) MessageResponse {
	resp := MessageResponse{
		ID:     msg.ID,
		Body:   msg.Body,
		SentAt: msg.SentAt.Format(time.RFC3339),
		ReadAt: formatTimePtr(msg.ReadAt),
	}
	if msg.FromUser != nil {
		v := userToSummary(msg.FromUser)
		resp.FromUser = &v
	}
	if msg.ToUser != nil {
		v := userToSummary(msg.ToUser)
		resp.ToUser = &v
	}
	return resp
}

func messagesToResponses(msgs []domain.Message) []MessageResponse {
	resp := make([]MessageResponse, len(msgs))
	for i := range msgs {
		resp[i] = messageToDetail(&msgs[i])
	}
	return resp
}

func formatTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	v := t.Format(time.RFC3339)
	return &v
}
