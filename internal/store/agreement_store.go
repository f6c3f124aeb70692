package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/buildcanada/trade-tracker/internal/model"
)

// AgreementStore handles database operations for agreements. The table name
// is configurable because deployments point it at different environments.
type AgreementStore struct {
	db    *sql.DB
	table string
}

// NewAgreementStore creates a new AgreementStore against the given table.
func NewAgreementStore(db *sql.DB, table string) *AgreementStore {
	return &AgreementStore{db: db, table: table}
}

const agreementColumns = `id, title, summary, description, status,
	to_char(deadline, 'YYYY-MM-DD'), source_url, to_char(launch_date, 'YYYY-MM-DD'),
	theme, jurisdictions, agreement_history, created_at, updated_at`

// GetAll retrieves all agreements, newest first.
func (s *AgreementStore) GetAll(ctx context.Context) ([]model.Agreement, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s ORDER BY created_at DESC`, agreementColumns, s.table)

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get agreements: %w", err)
	}
	defer rows.Close()

	var agreements []model.Agreement
	for rows.Next() {
		a, err := scanAgreement(rows)
		if err != nil {
			return nil, err
		}
		agreements = append(agreements, a)
	}

	return agreements, rows.Err()
}

// GetByID retrieves a single agreement, nil when it does not exist.
func (s *AgreementStore) GetByID(ctx context.Context, id string) (*model.Agreement, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1`, agreementColumns, s.table)

	a, err := scanAgreement(s.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get agreement %s: %w", id, err)
	}

	return &a, nil
}

// Create inserts a new agreement and fills in its generated fields.
func (s *AgreementStore) Create(ctx context.Context, a *model.Agreement) error {
	jurisdictions, history, err := marshalEmbedded(a)
	if err != nil {
		return err
	}

	a.ID = uuid.NewString()
	now := time.Now()
	a.CreatedAt = now
	a.UpdatedAt = now

	query := fmt.Sprintf(`
		INSERT INTO %s (id, title, summary, description, status, deadline, source_url,
		                launch_date, theme, jurisdictions, agreement_history, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`, s.table)

	_, err = s.db.ExecContext(ctx, query,
		a.ID,
		a.Title,
		a.Summary,
		a.Description,
		string(a.Status),
		a.Deadline,
		a.SourceURL,
		a.LaunchDate,
		a.Theme,
		jurisdictions,
		history,
		a.CreatedAt,
		a.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create agreement: %w", err)
	}

	return nil
}

// Update replaces every stored field of an agreement. Last writer wins; there
// is no version check. Returns false when the id does not exist.
func (s *AgreementStore) Update(ctx context.Context, id string, a *model.Agreement) (bool, error) {
	jurisdictions, history, err := marshalEmbedded(a)
	if err != nil {
		return false, err
	}

	a.UpdatedAt = time.Now()

	query := fmt.Sprintf(`
		UPDATE %s
		SET title = $2, summary = $3, description = $4, status = $5, deadline = $6,
		    source_url = $7, launch_date = $8, theme = $9, jurisdictions = $10,
		    agreement_history = $11, updated_at = $12
		WHERE id = $1
	`, s.table)

	res, err := s.db.ExecContext(ctx, query,
		id,
		a.Title,
		a.Summary,
		a.Description,
		string(a.Status),
		a.Deadline,
		a.SourceURL,
		a.LaunchDate,
		a.Theme,
		jurisdictions,
		history,
		a.UpdatedAt,
	)
	if err != nil {
		return false, fmt.Errorf("failed to update agreement %s: %w", id, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to update agreement %s: %w", id, err)
	}
	return n > 0, nil
}

// Delete removes an agreement by id. Returns false when it did not exist.
func (s *AgreementStore) Delete(ctx context.Context, id string) (bool, error) {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, s.table)

	res, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete agreement %s: %w", id, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to delete agreement %s: %w", id, err)
	}
	return n > 0, nil
}

// CountByTheme returns how many agreements reference a theme by name.
func (s *AgreementStore) CountByTheme(ctx context.Context, themeName string) (int, error) {
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE theme = $1`, s.table)

	var count int
	if err := s.db.QueryRowContext(ctx, query, themeName).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count agreements for theme %s: %w", themeName, err)
	}
	return count, nil
}

func marshalEmbedded(a *model.Agreement) ([]byte, []byte, error) {
	if a.Jurisdictions == nil {
		a.Jurisdictions = []model.Jurisdiction{}
	}
	if a.History == nil {
		a.History = []model.HistoryEntry{}
	}

	jurisdictions, err := json.Marshal(a.Jurisdictions)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to marshal jurisdictions: %w", err)
	}
	history, err := json.Marshal(a.History)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to marshal history: %w", err)
	}
	return jurisdictions, history, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAgreement(row rowScanner) (model.Agreement, error) {
	var (
		a             model.Agreement
		status        string
		jurisdictions []byte
		history       []byte
	)

	err := row.Scan(
		&a.ID,
		&a.Title,
		&a.Summary,
		&a.Description,
		&status,
		&a.Deadline,
		&a.SourceURL,
		&a.LaunchDate,
		&a.Theme,
		&jurisdictions,
		&history,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return a, err
	}
	if err != nil {
		return a, fmt.Errorf("failed to scan agreement: %w", err)
	}

	a.Status = model.AgreementStatus(status)
	if err := json.Unmarshal(jurisdictions, &a.Jurisdictions); err != nil {
		return a, fmt.Errorf("failed to unmarshal jurisdictions: %w", err)
	}
	if err := json.Unmarshal(history, &a.History); err != nil {
		return a, fmt.Errorf("failed to unmarshal history: %w", err)
	}

	return a, nil
}
