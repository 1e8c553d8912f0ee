package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"tokenlease-backend/internal/domain"
	"tokenlease-backend/internal/repository"
)

type settingsRepository struct {
	db *sql.DB
}

func NewSettingsRepository(db *sql.DB) repository.SettingsRepository {
	return &settingsRepository{db: db}
}

// The table carries a CHECK (id = 1) constraint so at most one row can
// ever exist; a second insert fails at the database.
func (r *settingsRepository) Create(ctx context.Context, s *domain.Settings) error {
	query := `INSERT INTO escrow_settings (id, admin, payment_token, created_on) VALUES (1, $1, $2, $3)`
	now := time.Now()
	_, err := r.db.ExecContext(ctx, query, s.Admin, s.PaymentToken, now)
	if err != nil {
		return err
	}
	s.CreatedOn = now
	return nil
}

func (r *settingsRepository) Get(ctx context.Context) (*domain.Settings, error) {
	s := &domain.Settings{}
	query := `SELECT admin, payment_token, created_on FROM escrow_settings WHERE id = 1`
	err := r.db.QueryRowContext(ctx, query).Scan(&s.Admin, &s.PaymentToken, &s.CreatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}
