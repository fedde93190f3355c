package projects

import (
	"context"
	"database/sql"
	"errors"
)

// Repo provides persistence operations against the hosted Postgres store.
type Repo struct {
	db *sql.DB
}

func NewRepo(db *sql.DB) *Repo {
	return &Repo{db: db}
}

// Insert creates a new project row. id and created_at are server-assigned.
func (r *Repo) Insert(ctx context.Context, userID, prompt, htmlContent, title string) (*Project, error) {
	const q = `
INSERT INTO website_projects (user_id, prompt, html_content, title)
VALUES ($1, $2, $3, $4)
RETURNING id, user_id, prompt, html_content, title, created_at;
`
	var p Project
	err := r.db.QueryRowContext(ctx, q, userID, prompt, htmlContent, title).
		Scan(&p.ID, &p.UserID, &p.Prompt, &p.HTMLContent, &p.Title, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// ListByUser returns the user's projects, newest first.
func (r *Repo) ListByUser(ctx context.Context, userID string) ([]Project, error) {
	const q = `
SELECT id, user_id, prompt, html_content, title, created_at
FROM website_projects
WHERE user_id = $1
ORDER BY created_at DESC;
`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Project, 0, 16)
	for rows.Next() {
		var p Project
		if err := rows.Scan(&p.ID, &p.UserID, &p.Prompt, &p.HTMLContent, &p.Title, &p.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID fetches a single project row.
func (r *Repo) GetByID(ctx context.Context, id string) (*Project, error) {
	const q = `
SELECT id, user_id, prompt, html_content, title, created_at
FROM website_projects
WHERE id = $1;
`
	var p Project
	err := r.db.QueryRowContext(ctx, q, id).
		Scan(&p.ID, &p.UserID, &p.Prompt, &p.HTMLContent, &p.Title, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}
