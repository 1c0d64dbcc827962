package store

import (
	"context"
	"database/sql"
	"time"
)

// CreatePostParams holds the fields for inserting a new post.
type CreatePostParams struct {
	AuthorID  int64
	Title     string
	Subtitle  string
	Date      string
	Body      string
	ImgURL    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

const createPost = `
INSERT INTO posts (author_id, title, subtitle, date, body, img_url, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
RETURNING id, author_id, title, subtitle, date, body, img_url, created_at, updated_at
`

// CreatePost inserts a new post and returns the stored row. The UNIQUE
// constraint on title surfaces as a constraint error.
func (q *Queries) CreatePost(ctx context.Context, arg CreatePostParams) (Post, error) {
	row := q.db.QueryRowContext(ctx, createPost,
		arg.AuthorID, arg.Title, arg.Subtitle, arg.Date, arg.Body, arg.ImgURL,
		arg.CreatedAt, arg.UpdatedAt)
	return scanPost(row)
}

const getPostByID = `
SELECT id, author_id, title, subtitle, date, body, img_url, created_at, updated_at
FROM posts WHERE id = ?
`

// GetPostByID returns the post with the given id, or sql.ErrNoRows.
func (q *Queries) GetPostByID(ctx context.Context, id int64) (Post, error) {
	return scanPost(q.db.QueryRowContext(ctx, getPostByID, id))
}

const getPostByTitle = `
SELECT id, author_id, title, subtitle, date, body, img_url, created_at, updated_at
FROM posts WHERE title = ?
`

// GetPostByTitle returns the post with the given title, or sql.ErrNoRows.
func (q *Queries) GetPostByTitle(ctx context.Context, title string) (Post, error) {
	return scanPost(q.db.QueryRowContext(ctx, getPostByTitle, title))
}

// ListPostsRow is a post joined with its author's display name.
type ListPostsRow struct {
	Post
	AuthorName string
}

const listPosts = `
SELECT p.id, p.author_id, p.title, p.subtitle, p.date, p.body, p.img_url,
       p.created_at, p.updated_at, u.name
FROM posts p
JOIN users u ON u.id = p.author_id
ORDER BY p.id
`

// ListPosts returns all posts with author names, ordered by id.
func (q *Queries) ListPosts(ctx context.Context) ([]ListPostsRow, error) {
	rows, err := q.db.QueryContext(ctx, listPosts)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []ListPostsRow
	for rows.Next() {
		var p ListPostsRow
		if err := rows.Scan(&p.ID, &p.AuthorID, &p.Title, &p.Subtitle, &p.Date,
			&p.Body, &p.ImgURL, &p.CreatedAt, &p.UpdatedAt, &p.AuthorName); err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

const countPosts = `SELECT COUNT(*) FROM posts`

// CountPosts returns the total number of posts.
func (q *Queries) CountPosts(ctx context.Context) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, countPosts).Scan(&count)
	return count, err
}

// UpdatePostParams holds the fields for updating a post.
type UpdatePostParams struct {
	ID        int64
	Title     string
	Subtitle  string
	Body      string
	ImgURL    string
	UpdatedAt time.Time
}

const updatePost = `
UPDATE posts SET title = ?, subtitle = ?, body = ?, img_url = ?, updated_at = ?
WHERE id = ?
RETURNING id, author_id, title, subtitle, date, body, img_url, created_at, updated_at
`

// UpdatePost updates the mutable fields of a post and returns the stored row.
func (q *Queries) UpdatePost(ctx context.Context, arg UpdatePostParams) (Post, error) {
	row := q.db.QueryRowContext(ctx, updatePost,
		arg.Title, arg.Subtitle, arg.Body, arg.ImgURL, arg.UpdatedAt, arg.ID)
	return scanPost(row)
}

const deletePost = `DELETE FROM posts WHERE id = ?`

// DeletePost removes a post. Its comments are removed by the ON DELETE
// CASCADE constraint in the same statement.
func (q *Queries) DeletePost(ctx context.Context, id int64) error {
	result, err := q.db.ExecContext(ctx, deletePost, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func scanPost(row *sql.Row) (Post, error) {
	var p Post
	err := row.Scan(&p.ID, &p.AuthorID, &p.Title, &p.Subtitle, &p.Date,
		&p.Body, &p.ImgURL, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}
