package store

import (
	"context"
	"database/sql"
	"time"
)

// CreateCommentParams holds the fields for inserting a new comment.
type CreateCommentParams struct {
	AuthorID  int64
	PostID    int64
	Text      string
	CreatedAt time.Time
}

const createComment = `
INSERT INTO comments (author_id, post_id, text, created_at)
VALUES (?, ?, ?, ?)
RETURNING id, author_id, post_id, text, created_at
`

// CreateComment inserts a new comment and returns the stored row. Foreign
// keys guarantee the author and post exist.
func (q *Queries) CreateComment(ctx context.Context, arg CreateCommentParams) (Comment, error) {
	row := q.db.QueryRowContext(ctx, createComment,
		arg.AuthorID, arg.PostID, arg.Text, arg.CreatedAt)
	return scanComment(row)
}

const getCommentByID = `
SELECT id, author_id, post_id, text, created_at
FROM comments WHERE id = ?
`

// GetCommentByID returns the comment with the given id, or sql.ErrNoRows.
func (q *Queries) GetCommentByID(ctx context.Context, id int64) (Comment, error) {
	return scanComment(q.db.QueryRowContext(ctx, getCommentByID, id))
}

// ListCommentsForPostRow is a comment joined with its author's display
// details for rendering.
type ListCommentsForPostRow struct {
	Comment
	AuthorName  string
	AuthorEmail string
}

const listCommentsForPost = `
SELECT c.id, c.author_id, c.post_id, c.text, c.created_at, u.name, u.email
FROM comments c
JOIN users u ON u.id = c.author_id
WHERE c.post_id = ?
ORDER BY c.id
`

// ListCommentsForPost returns all comments on a post with author details,
// ordered by id.
func (q *Queries) ListCommentsForPost(ctx context.Context, postID int64) ([]ListCommentsForPostRow, error) {
	rows, err := q.db.QueryContext(ctx, listCommentsForPost, postID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var comments []ListCommentsForPostRow
	for rows.Next() {
		var c ListCommentsForPostRow
		if err := rows.Scan(&c.ID, &c.AuthorID, &c.PostID, &c.Text, &c.CreatedAt,
			&c.AuthorName, &c.AuthorEmail); err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}

const countCommentsForPost = `SELECT COUNT(*) FROM comments WHERE post_id = ?`

// CountCommentsForPost returns the number of comments on a post.
func (q *Queries) CountCommentsForPost(ctx context.Context, postID int64) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, countCommentsForPost, postID).Scan(&count)
	return count, err
}

func scanComment(row *sql.Row) (Comment, error) {
	var c Comment
	err := row.Scan(&c.ID, &c.AuthorID, &c.PostID, &c.Text, &c.CreatedAt)
	return c, err
}
