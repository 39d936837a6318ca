package domain

import "time"

// Message is a short text note sent from one user to another. ReadAt stays
// nil until the recipient marks the message read.
type Message struct {
	ID           int64
	FromUsername string
	ToUsername   string
	Body         string
	SentAt       time.Time
	ReadAt       *time.Time

	// FromUser and ToUser carry the counterpart profiles when a query
	// joins them in; nil otherwise.
	FromUser *User
	ToUser   *User
}
