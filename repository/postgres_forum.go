package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/LovationAdmin/pcease-api/models"
)

type PostgresThreads struct {
	db *sql.DB
}

func NewPostgresThreads(db *sql.DB) *PostgresThreads {
	return &PostgresThreads{db: db}
}

func (r *PostgresThreads) List(ctx context.Context, filter models.ThreadFilter) ([]models.Thread, error) {
	var where []string
	var args []interface{}
	if filter.Category != "" {
		args = append(args, filter.Category)
		where = append(where, "LOWER(t.category) = LOWER($"+strconv.Itoa(len(args))+")")
	}
	if filter.Search != "" {
		args = append(args, containsPattern(filter.Search))
		n := strconv.Itoa(len(args))
		where = append(where, "(t.title ILIKE $"+n+" OR t.content ILIKE $"+n+")")
	}

	query := `
		SELECT t.id, t.user_name, t.title, t.category, t.content, t.created_at,
		       (SELECT COUNT(*) FROM replies r WHERE r.thread_id = t.id) AS reply_count
		FROM threads t`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY t.created_at DESC"
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += " LIMIT $" + strconv.Itoa(len(args))
	}
	if filter.Skip > 0 {
		args = append(args, filter.Skip)
		query += " OFFSET $" + strconv.Itoa(len(args))
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list threads: %w", err)
	}
	defer rows.Close()

	threads := []models.Thread{}
	for rows.Next() {
		var t models.Thread
		if err := rows.Scan(&t.ID, &t.User, &t.Title, &t.Category, &t.Content, &t.CreatedAt, &t.ReplyCount); err != nil {
			return nil, err
		}
		threads = append(threads, t)
	}
	return threads, rows.Err()
}

func (r *PostgresThreads) Get(ctx context.Context, id string) (*models.Thread, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrNotFound
	}
	var t models.Thread
	err := r.db.QueryRowContext(ctx, `
		SELECT id, user_name, title, category, content, created_at
		FROM threads WHERE id = $1
	`, id).Scan(&t.ID, &t.User, &t.Title, &t.Category, &t.Content, &t.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get thread: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, thread_id, user_name, content, created_at
		FROM replies WHERE thread_id = $1
		ORDER BY created_at ASC
	`, id)
	if err != nil {
		return nil, fmt.Errorf("list replies: %w", err)
	}
	defer rows.Close()

	t.Replies = []models.Reply{}
	for rows.Next() {
		var rep models.Reply
		if err := rows.Scan(&rep.ID, &rep.ThreadID, &rep.User, &rep.Content, &rep.CreatedAt); err != nil {
			return nil, err
		}
		t.Replies = append(t.Replies, rep)
	}
	t.ReplyCount = len(t.Replies)
	return &t, rows.Err()
}

func (r *PostgresThreads) Create(ctx context.Context, t *models.Thread) error {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now()
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO threads (id, user_name, title, category, content, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, t.ID, t.User, t.Title, t.Category, t.Content, t.CreatedAt)
	if err != nil {
		return fmt.Errorf("create thread: %w", err)
	}
	return nil
}

// Delete removes a thread; replies go with it through ON DELETE CASCADE.
func (r *PostgresThreads) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrNotFound
	}
	res, err := r.db.ExecContext(ctx, "DELETE FROM threads WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete thread: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresThreads) AddReply(ctx context.Context, rep *models.Reply) error {
	if _, err := uuid.Parse(rep.ThreadID); err != nil {
		return ErrNotFound
	}
	if rep.ID == "" {
		rep.ID = uuid.New().String()
	}
	if rep.CreatedAt.IsZero() {
		rep.CreatedAt = time.Now()
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO replies (id, thread_id, user_name, content, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, rep.ID, rep.ThreadID, rep.User, rep.Content, rep.CreatedAt)
	if isForeignKeyViolation(err) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("add reply: %w", err)
	}
	return nil
}
