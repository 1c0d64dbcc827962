package store

import (
	"database/sql"
	"time"
)

// User is a registered account. The password hash is an encoded argon2id
// string; the plaintext secret is never stored.
type User struct {
	ID           int64
	Email        string
	PasswordHash string
	Name         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
	LastLoginAt  sql.NullTime
}

// Post is a blog entry owned by one user. Date is the human-readable publish
// date string shown on the frontend, not a timestamp.
type Post struct {
	ID        int64
	AuthorID  int64
	Title     string
	Subtitle  string
	Date      string
	Body      string
	ImgURL    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Comment is a reply to a post, linking one user and one post by id.
type Comment struct {
	ID        int64
	AuthorID  int64
	PostID    int64
	Text      string
	CreatedAt time.Time
}

// ContactMessage is a persisted contact-form submission.
type ContactMessage struct {
	ID        int64
	Reference string
	UserID    int64
	Name      string
	Email     string
	Phone     string
	Message   string
	CreatedAt time.Time
}

// Event is an operational log entry (auth events, warnings, errors).
type Event struct {
	ID        int64
	Level     string
	Category  string
	Message   string
	UserID    sql.NullInt64
	Metadata  string
	CreatedAt time.Time
}
