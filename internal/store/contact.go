package store

import (
	"context"
	"database/sql"
	"time"
)

// CreateContactMessageParams holds the fields for persisting a contact-form
// submission.
type CreateContactMessageParams struct {
	Reference string
	UserID    int64
	Name      string
	Email     string
	Phone     string
	Message   string
	CreatedAt time.Time
}

const createContactMessage = `
INSERT INTO contact_messages (reference, user_id, name, email, phone, message, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?)
RETURNING id, reference, user_id, name, email, phone, message, created_at
`

// CreateContactMessage persists a contact-form submission and returns the
// stored row.
func (q *Queries) CreateContactMessage(ctx context.Context, arg CreateContactMessageParams) (ContactMessage, error) {
	row := q.db.QueryRowContext(ctx, createContactMessage,
		arg.Reference, arg.UserID, arg.Name, arg.Email, arg.Phone, arg.Message, arg.CreatedAt)
	return scanContactMessage(row)
}

const getContactMessageByReference = `
SELECT id, reference, user_id, name, email, phone, message, created_at
FROM contact_messages WHERE reference = ?
`

// GetContactMessageByReference returns the submission with the given
// reference id, or sql.ErrNoRows.
func (q *Queries) GetContactMessageByReference(ctx context.Context, reference string) (ContactMessage, error) {
	return scanContactMessage(q.db.QueryRowContext(ctx, getContactMessageByReference, reference))
}

const countContactMessages = `SELECT COUNT(*) FROM contact_messages`

// CountContactMessages returns the total number of stored submissions.
func (q *Queries) CountContactMessages(ctx context.Context) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, countContactMessages).Scan(&count)
	return count, err
}

func scanContactMessage(row *sql.Row) (ContactMessage, error) {
	var m ContactMessage
	err := row.Scan(&m.ID, &m.Reference, &m.UserID, &m.Name, &m.Email,
		&m.Phone, &m.Message, &m.CreatedAt)
	return m, err
}
