package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/LovationAdmin/pcease-api/models"
)

type PostgresSavedBuilds struct {
	db *sql.DB
}

func NewPostgresSavedBuilds(db *sql.DB) *PostgresSavedBuilds {
	return &PostgresSavedBuilds{db: db}
}

const savedBuildColumns = `id, user_id, name, items, total_price, created_at, updated_at`

func scanSavedBuild(row rowScanner) (models.SavedBuild, error) {
	var b models.SavedBuild
	var items []byte
	err := row.Scan(&b.ID, &b.UserID, &b.Name, &items, &b.TotalPrice, &b.CreatedAt, &b.UpdatedAt)
	b.Items = items
	return b, err
}

func (r *PostgresSavedBuilds) ListByUser(ctx context.Context, userID string) ([]models.SavedBuild, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+savedBuildColumns+`
		FROM saved_builds WHERE user_id = $1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("list saved builds: %w", err)
	}
	defer rows.Close()

	builds := []models.SavedBuild{}
	for rows.Next() {
		b, err := scanSavedBuild(rows)
		if err != nil {
			return nil, err
		}
		builds = append(builds, b)
	}
	return builds, rows.Err()
}

func (r *PostgresSavedBuilds) Get(ctx context.Context, id, userID string) (*models.SavedBuild, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrNotFound
	}
	row := r.db.QueryRowContext(ctx,
		"SELECT "+savedBuildColumns+" FROM saved_builds WHERE id = $1 AND user_id = $2", id, userID)
	b, err := scanSavedBuild(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get saved build: %w", err)
	}
	return &b, nil
}

func (r *PostgresSavedBuilds) Create(ctx context.Context, b *models.SavedBuild) error {
	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	now := time.Now()
	b.CreatedAt, b.UpdatedAt = now, now
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO saved_builds (`+savedBuildColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $6)
	`, b.ID, b.UserID, b.Name, []byte(b.Items), b.TotalPrice, now)
	if err != nil {
		return fmt.Errorf("create saved build: %w", err)
	}
	return nil
}

func (r *PostgresSavedBuilds) Update(ctx context.Context, b *models.SavedBuild) error {
	if _, err := uuid.Parse(b.ID); err != nil {
		return ErrNotFound
	}
	b.UpdatedAt = time.Now()
	err := r.db.QueryRowContext(ctx, `
		UPDATE saved_builds
		SET name = $1, items = $2, total_price = $3, updated_at = $4
		WHERE id = $5 AND user_id = $6
		RETURNING created_at
	`, b.Name, []byte(b.Items), b.TotalPrice, b.UpdatedAt, b.ID, b.UserID).Scan(&b.CreatedAt)
	if err == sql.ErrNoRows {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("update saved build: %w", err)
	}
	return nil
}

func (r *PostgresSavedBuilds) Delete(ctx context.Context, id, userID string) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrNotFound
	}
	res, err := r.db.ExecContext(ctx, "DELETE FROM saved_builds WHERE id = $1 AND user_id = $2", id, userID)
	if err != nil {
		return fmt.Errorf("delete saved build: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
