package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"messagely/internal/domain"
	"messagely/internal/repository"
)

const createMessagesTable = `
CREATE TABLE IF NOT EXISTS messages (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	from_username TEXT NOT NULL REFERENCES users(username),
	to_username TEXT NOT NULL REFERENCES users(username),
	body TEXT NOT NULL,
	sent_at DATETIME NOT NULL,
	read_at DATETIME NULL
);
`

type MessageRepository struct {
	db *sql.DB
}

func NewMessageRepository(db *sql.DB) repository.MessageRepository {
	return &MessageRepository{db: db}
}

func (r *MessageRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createMessagesTable); err != nil {
		return fmt.Errorf("create messages table: %w", err)
	}
	return nil
}

func (r *MessageRepository) Create(ctx context.Context, msg *domain.Message) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
INSERT INTO messages (from_username, to_username, body, sent_at)
VALUES (?, ?, ?, ?)`,
		msg.FromUsername,
		msg.ToUsername,
		msg.Body,
		msg.SentAt,
	)
	if err != nil {
		return 0, fmt.Errorf("insert message: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("message last insert id: %w", err)
	}
	msg.ID = id
	return id, nil
}

// Get loads a message with both counterpart profiles joined in.
func (r *MessageRepository) Get(ctx context.Context, id int64) (*domain.Message, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT m.id, m.from_username, m.to_username, m.body, m.sent_at, m.read_at,
	f.first_name, f.last_name, f.phone,
	t.first_name, t.last_name, t.phone
FROM messages m
JOIN users f ON f.username = m.from_username
JOIN users t ON t.username = m.to_username
WHERE m.id = ?`,
		id,
	)

	var (
		msg    domain.Message
		from   domain.User
		to     domain.User
		readAt sql.NullTime
	)
	if err := row.Scan(
		&msg.ID,
		&msg.FromUsername,
		&msg.ToUsername,
		&msg.Body,
		&msg.SentAt,
		&readAt,
		&from.FirstName,
		&from.LastName,
		&from.Phone,
		&to.FirstName,
		&to.LastName,
		&to.Phone,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrMessageNotFound
		}
		return nil, fmt.Errorf("scan message: %w", err)
	}
	if readAt.Valid {
		v := readAt.Time
		msg.ReadAt = &v
	}
	from.Username = msg.FromUsername
	to.Username = msg.ToUsername
	msg.FromUser = &from
	msg.ToUser = &to
	return &msg, nil
}

func (r *MessageRepository) MarkRead(ctx context.Context, id int64, at time.Time) error {
	res, err := r.db.ExecContext(ctx, `
UPDATE messages SET read_at = ? WHERE id = ?`,
		at,
		id,
	)
	if err != nil {
		return fmt.Errorf("mark message read: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("mark read rows affected: %w", err)
	}
	if affected == 0 {
		return domain.ErrMessageNotFound
	}
	return nil
}

func (r *MessageRepository) ListTo(ctx context.Context, username string) ([]domain.Message, error) {
	return r.list(ctx, `
SELECT m.id, m.from_username, m.to_username, m.body, m.sent_at, m.read_at,
	u.first_name, u.last_name, u.phone
FROM messages m
JOIN users u ON u.username = m.from_username
WHERE m.to_username = ?
ORDER BY m.id`,
		username, true)
}

func (r *MessageRepository) ListFrom(ctx context.Context, username string) ([]domain.Message, error) {
	return r.list(ctx, `
SELECT m.id, m.from_username, m.to_username, m.body, m.sent_at, m.read_at,
	u.first_name, u.last_name, u.phone
FROM messages m
JOIN users u ON u.username = m.to_username
WHERE m.from_username = ?
ORDER BY m.id`,
		username, false)
}

func (r *MessageRepository) list(ctx context.Context, query, username string, joinSender bool) ([]domain.Message, error) {
	rows, err := r.db.QueryContext(ctx, query, username)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	defer rows.Close()

	var msgs []domain.Message
	for rows.Next() {
		var (
			msg         domain.Message
			counterpart domain.User
			readAt      sql.NullTime
		)
		if err := rows.Scan(
			&msg.ID,
			&msg.FromUsername,
			&msg.ToUsername,
			&msg.Body,
			&msg.SentAt,
			&readAt,
			&counterpart.FirstName,
			&counterpart.LastName,
			&counterpart.Phone,
		); err != nil {
			return nil, fmt.Errorf("scan message row: %w", err)
		}
		if readAt.Valid {
			v := readAt.Time
			msg.ReadAt = &v
		}
		if joinSender {
			counterpart.Username = msg.FromUsername
			msg.FromUser = &counterpart
		} else {
			counterpart.Username = msg.ToUsername
			msg.ToUser = &counterpart
		}
		msgs = append(msgs, msg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate messages: %w", err)
	}
	return msgs, nil
}
