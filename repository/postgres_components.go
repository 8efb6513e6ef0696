package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/LovationAdmin/pcease-api/models"
	"github.com/LovationAdmin/pcease-api/utils"
)

type PostgresComponents struct {
	db *sql.DB
}

func NewPostgresComponents(db *sql.DB) *PostgresComponents {
	return &PostgresComponents{db: db}
}

const componentColumns = `category, id, name, brand, ram_type, form_factor, cores, memory, capacity, wattage, vendors, specs, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanComponent(row rowScanner) (models.Component, error) {
	var c models.Component
	var category string
	var vendors, specs []byte
	err := row.Scan(&category, &c.ID, &c.Name, &c.Brand, &c.RAMType, &c.FormFactor,
		&c.Cores, &c.Memory, &c.Capacity, &c.Wattage, &vendors, &specs, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return c, err
	}
	c.Category = models.Category(category)
	if len(vendors) > 0 {
		if err := json.Unmarshal(vendors, &c.Vendors); err != nil {
			return c, fmt.Errorf("decode vendors for %s/%d: %w", category, c.ID, err)
		}
	}
	if len(specs) > 0 && string(specs) != "null" {
		if err := json.Unmarshal(specs, &c.Specs); err != nil {
			return c, fmt.Errorf("decode specs for %s/%d: %w", category, c.ID, err)
		}
	}
	return c, nil
}

// List pushes the category, brand and search predicates into SQL. Sorting by
// effective price needs the decoded vendor list, so ordering and paging run
// in Go.
func (r *PostgresComponents) List(ctx context.Context, filter models.ComponentFilter) ([]models.Component, int, error) {
	var where []string
	var args []interface{}
	if filter.Category != "" {
		args = append(args, string(filter.Category))
		where = append(where, "category = $"+strconv.Itoa(len(args)))
	}
	if filter.Brand != "" {
		args = append(args, filter.Brand)
		where = append(where, "LOWER(brand) = LOWER($"+strconv.Itoa(len(args))+")")
	}
	if filter.Search != "" {
		args = append(args, containsPattern(filter.Search))
		where = append(where, "name ILIKE $"+strconv.Itoa(len(args)))
	}

	query := "SELECT " + componentColumns + " FROM components"
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list components: %w", err)
	}
	defer rows.Close()

	var items []models.Component
	for rows.Next() {
		c, err := scanComponent(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	total := len(items)
	return SortAndPage(items, filter), total, nil
}

func (r *PostgresComponents) All(ctx context.Context) ([]models.Component, error) {
	items, _, err := r.List(ctx, models.ComponentFilter{})
	if err != nil {
		return nil, err
	}
	SortCatalog(items)
	return items, nil
}

func (r *PostgresComponents) Get(ctx context.Context, category models.Category, id int) (*models.Component, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+componentColumns+" FROM components WHERE category = $1 AND id = $2",
		string(category), id)
	c, err := scanComponent(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get component: %w", err)
	}
	return &c, nil
}

func (r *PostgresComponents) Create(ctx context.Context, c *models.Component) error {
	vendors, err := json.Marshal(c.Vendors)
	if err != nil {
		return err
	}
	specs, err := json.Marshal(c.Specs)
	if err != nil {
		return err
	}
	now := time.Now()
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO components (`+componentColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $13)
	`, string(c.Category), c.ID, c.Name, c.Brand, c.RAMType, c.FormFactor,
		c.Cores, c.Memory, c.Capacity, c.Wattage, vendors, specs, now)
	if isUniqueViolation(err) {
		return ErrConflict
	}
	if err != nil {
		return fmt.Errorf("create component: %w", err)
	}
	c.CreatedAt, c.UpdatedAt = now, now
	return nil
}

func (r *PostgresComponents) Upsert(ctx context.Context, items []models.Component) (int, error) {
	written := 0
	err := utils.WithTransaction(ctx, r.db, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, `
			INSERT INTO components (`+componentColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $13)
			ON CONFLICT (category, id) DO UPDATE SET
				name = EXCLUDED.name,
				brand = EXCLUDED.brand,
				ram_type = EXCLUDED.ram_type,
				form_factor = EXCLUDED.form_factor,
				cores = EXCLUDED.cores,
				memory = EXCLUDED.memory,
				capacity = EXCLUDED.capacity,
				wattage = EXCLUDED.wattage,
				vendors = EXCLUDED.vendors,
				specs = EXCLUDED.specs,
				updated_at = EXCLUDED.updated_at
		`)
		if err != nil {
			return err
		}
		defer stmt.Close()

		now := time.Now()
		for _, c := range items {
			vendors, err := json.Marshal(c.Vendors)
			if err != nil {
				return err
			}
			specs, err := json.Marshal(c.Specs)
			if err != nil {
				return err
			}
			if _, err := stmt.ExecContext(ctx, string(c.Category), c.ID, c.Name, c.Brand, c.RAMType, c.FormFactor,
				c.Cores, c.Memory, c.Capacity, c.Wattage, vendors, specs, now); err != nil {
				return fmt.Errorf("upsert %s/%d: %w", c.Category, c.ID, err)
			}
			written++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return written, nil
}

func (r *PostgresComponents) UpdateSpecs(ctx context.Context, category models.Category, id int, specs map[string]interface{}) error {
	payload, err := json.Marshal(specs)
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx,
		"UPDATE components SET specs = $1, updated_at = NOW() WHERE category = $2 AND id = $3",
		payload, string(category), id)
	if err != nil {
		return fmt.Errorf("update specs: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
