package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/driftlab/pulseboard/internal/layout"
	"github.com/driftlab/pulseboard/internal/repository"
)

// LayoutRepository implements layout.Repository for SQLite
type LayoutRepository struct {
	db *DB
}

// NewLayoutRepository creates a new LayoutRepository
func NewLayoutRepository(db *DB) *LayoutRepository {
	return &LayoutRepository{db: db}
}

// Save persists a layout snapshot
func (r *LayoutRepository) Save(ctx context.Context, l *layout.Layout) error {
	modules, err := json.Marshal(l.Modules)
	if err != nil {
		return fmt.Errorf("failed to encode modules: %w", err)
	}
	connections, err := json.Marshal(l.Connections)
	if err != nil {
		return fmt.Errorf("failed to encode connections: %w", err)
	}

	query := `
		INSERT INTO layouts (id, name, description, modules, connections, module_count, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.ExecContext(ctx, query,
		l.ID,
		l.Name,
		l.Description,
		string(modules),
		string(connections),
		len(l.Modules),
		l.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to save layout: %w", err)
	}

	return nil
}

// Get retrieves a layout by ID
func (r *LayoutRepository) Get(ctx context.Context, id string) (*layout.Layout, error) {
	query := `
		SELECT id, name, description, modules, connections, created_at
		FROM layouts
		WHERE id = ?
	`
	return r.scanLayout(r.db.QueryRowContext(ctx, query, id))
}

// GetByName retrieves the most recently saved layout with the given name
func (r *LayoutRepository) GetByName(ctx context.Context, name string) (*layout.Layout, error) {
	query := `
		SELECT id, name, description, modules, connections, created_at
		FROM layouts
		WHERE name = ?
		ORDER BY created_at DESC
		LIMIT 1
	`
	return r.scanLayout(r.db.QueryRowContext(ctx, query, name))
}

func (r *LayoutRepository) scanLayout(row *sql.Row) (*layout.Layout, error) {
	var l layout.Layout
	var description sql.NullString
	var modules, connections string

	err := row.Scan(
		&l.ID,
		&l.Name,
		&description,
		&modules,
		&connections,
		&l.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get layout: %w", err)
	}

	l.Description = description.String
	if err := json.Unmarshal([]byte(modules), &l.Modules); err != nil {
		return nil, fmt.Errorf("failed to decode modules: %w", err)
	}
	if err := json.Unmarshal([]byte(connections), &l.Connections); err != nil {
		return nil, fmt.Errorf("failed to decode connections: %w", err)
	}

	return &l, nil
}

// List returns all layouts with summary information, newest first
func (r *LayoutRepository) List(ctx context.Context) ([]layout.Summary, error) {
	query := `
		SELECT id, name, description, module_count, created_at
		FROM layouts
		ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list layouts: %w", err)
	}
	defer rows.Close()

	var summaries []layout.Summary
	for rows.Next() {
		var summary layout.Summary
		var description sql.NullString
		err := rows.Scan(
			&summary.ID,
			&summary.Name,
			&description,
			&summary.ModuleCount,
			&summary.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan layout summary: %w", err)
		}
		summary.Description = description.String
		summaries = append(summaries, summary)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating layout rows: %w", err)
	}

	return summaries, nil
}

// Delete removes a layout by ID
func (r *LayoutRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM layouts WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete layout: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return repository.ErrNotFound
	}

	return nil
}
