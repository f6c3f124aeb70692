package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/buildcanada/trade-tracker/internal/model"
)

// ErrThemeInUse is returned when deleting a theme still referenced by agreements.
var ErrThemeInUse = errors.New("theme is referenced by existing agreements")

// ThemeStore handles database operations for themes. Agreements reference
// themes by name, so renames cascade through the agreements table.
type ThemeStore struct {
	db              *sql.DB
	table           string
	agreementsTable string
}

// NewThemeStore creates a new ThemeStore.
func NewThemeStore(db *sql.DB, table, agreementsTable string) *ThemeStore {
	return &ThemeStore{db: db, table: table, agreementsTable: agreementsTable}
}

// GetAll retrieves all themes ordered by name.
func (s *ThemeStore) GetAll(ctx context.Context) ([]model.Theme, error) {
	query := fmt.Sprintf(`SELECT id, name, created_at FROM %s ORDER BY name`, s.table)

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get themes: %w", err)
	}
	defer rows.Close()

	var themes []model.Theme
	for rows.Next() {
		var t model.Theme
		if err := rows.Scan(&t.ID, &t.Name, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan theme: %w", err)
		}
		themes = append(themes, t)
	}

	return themes, rows.Err()
}

// GetByID retrieves a theme by id, nil when it does not exist.
func (s *ThemeStore) GetByID(ctx context.Context, id string) (*model.Theme, error) {
	query := fmt.Sprintf(`SELECT id, name, created_at FROM %s WHERE id = $1`, s.table)

	var t model.Theme
	err := s.db.QueryRowContext(ctx, query, id).Scan(&t.ID, &t.Name, &t.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get theme %s: %w", id, err)
	}

	return &t, nil
}

// Create inserts a new theme.
func (s *ThemeStore) Create(ctx context.Context, name string) (*model.Theme, error) {
	t := model.Theme{
		ID:        uuid.NewString(),
		Name:      name,
		CreatedAt: time.Now(),
	}

	query := fmt.Sprintf(`INSERT INTO %s (id, name, created_at) VALUES ($1, $2, $3)`, s.table)
	if _, err := s.db.ExecContext(ctx, query, t.ID, t.Name, t.CreatedAt); err != nil {
		return nil, fmt.Errorf("failed to create theme %s: %w", name, err)
	}

	return &t, nil
}

// Rename updates a theme's name and bulk-updates every agreement that
// references the old name, in one transaction. Returns the updated theme,
// nil when the id does not exist.
func (s *ThemeStore) Rename(ctx context.Context, id, newName string) (*model.Theme, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin rename: %w", err)
	}
	defer tx.Rollback()

	var oldName string
	selectQuery := fmt.Sprintf(`SELECT name FROM %s WHERE id = $1`, s.table)
	err = tx.QueryRowContext(ctx, selectQuery, id).Scan(&oldName)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get theme %s: %w", id, err)
	}

	updateQuery := fmt.Sprintf(`UPDATE %s SET name = $2 WHERE id = $1`, s.table)
	if _, err := tx.ExecContext(ctx, updateQuery, id, newName); err != nil {
		return nil, fmt.Errorf("failed to rename theme %s: %w", id, err)
	}

	cascadeQuery := fmt.Sprintf(`UPDATE %s SET theme = $1 WHERE theme = $2`, s.agreementsTable)
	if _, err := tx.ExecContext(ctx, cascadeQuery, newName, oldName); err != nil {
		return nil, fmt.Errorf("failed to cascade theme rename to agreements: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit rename: %w", err)
	}

	return s.GetByID(ctx, id)
}

// Delete removes a theme. Returns ErrThemeInUse if any agreement still
// references it by name, and false when the id does not exist.
func (s *ThemeStore) Delete(ctx context.Context, id string) (bool, error) {
	theme, err := s.GetByID(ctx, id)
	if err != nil {
		return false, err
	}
	if theme == nil {
		return false, nil
	}

	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE theme = $1`, s.agreementsTable)
	var count int
	if err := s.db.QueryRowContext(ctx, countQuery, theme.Name).Scan(&count); err != nil {
		return false, fmt.Errorf("failed to check theme references: %w", err)
	}
	if count > 0 {
		return false, ErrThemeInUse
	}

	deleteQuery := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, s.table)
	if _, err := s.db.ExecContext(ctx, deleteQuery, id); err != nil {
		return false, fmt.Errorf("failed to delete theme %s: %w", id, err)
	}

	return true, nil
}
