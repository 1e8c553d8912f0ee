package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"tokenlease-backend/internal/domain"
	"tokenlease-backend/internal/repository"
)

type leaseRepository struct {
	db *sql.DB
}

func NewLeaseRepository(db *sql.DB) repository.LeaseRepository {
	return &leaseRepository{db: db}
}

func (r *leaseRepository) Create(ctx context.Context, l *domain.Lease) error {
	query := `INSERT INTO leases (asset, state, leaser, price_units, max_duration_seconds, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)`
	now := time.Now()
	_, err := r.db.ExecContext(ctx, query, l.Asset, l.State, l.Leasing.Leaser, l.Leasing.PriceUnits, l.Leasing.MaxDuration, now, now)
	if err != nil {
		return err
	}
	l.CreatedOn = now
	l.UpdatedOn = now
	return nil
}

func (r *leaseRepository) Get(ctx context.Context, asset string) (*domain.Lease, error) {
	l := &domain.Lease{}
	var renter sql.NullString
	var rentDuration, startTime sql.NullInt64
	query := `SELECT asset, state, leaser, price_units, max_duration_seconds, renter, rent_duration_seconds, start_time, created_on, updated_on
	          FROM leases WHERE asset = $1`
	err := r.db.QueryRowContext(ctx, query, asset).Scan(&l.Asset, &l.State, &l.Leasing.Leaser, &l.Leasing.PriceUnits, &l.Leasing.MaxDuration, &renter, &rentDuration, &startTime, &l.CreatedOn, &l.UpdatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if renter.Valid {
		l.Renting = &domain.Renting{
			Renter:       renter.String,
			RentDuration: rentDuration.Int64,
			StartTime:    startTime.Int64,
		}
	}
	return l, nil
}

func (r *leaseRepository) Update(ctx context.Context, l *domain.Lease) error {
	var renter sql.NullString
	var rentDuration, startTime sql.NullInt64
	if l.Renting != nil {
		renter = sql.NullString{String: l.Renting.Renter, Valid: true}
		rentDuration = sql.NullInt64{Int64: l.Renting.RentDuration, Valid: true}
		startTime = sql.NullInt64{Int64: l.Renting.StartTime, Valid: true}
	}
	query := `UPDATE leases SET state=$1, renter=$2, rent_duration_seconds=$3, start_time=$4, updated_on=$5 WHERE asset=$6`
	_, err := r.db.ExecContext(ctx, query, l.State, renter, rentDuration, startTime, time.Now(), l.Asset)
	return err
}

func (r *leaseRepository) Delete(ctx context.Context, asset string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM leases WHERE asset = $1`, asset)
	return err
}

func (r *leaseRepository) ListByState(ctx context.Context, state domain.LeaseState) ([]domain.Lease, error) {
	query := `SELECT asset, state, leaser, price_units, max_duration_seconds, renter, rent_duration_seconds, start_time, created_on, updated_on
	          FROM leases WHERE state = $1`
	rows, err := r.db.QueryContext(ctx, query, state)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var leases []domain.Lease
	for rows.Next() {
		var l domain.Lease
		var renter sql.NullString
		var rentDuration, startTime sql.NullInt64
		if err := rows.Scan(&l.Asset, &l.State, &l.Leasing.Leaser, &l.Leasing.PriceUnits, &l.Leasing.MaxDuration, &renter, &rentDuration, &startTime, &l.CreatedOn, &l.UpdatedOn); err != nil {
			return nil, err
		}
		if renter.Valid {
			l.Renting = &domain.Renting{
				Renter:       renter.String,
				RentDuration: rentDuration.Int64,
				StartTime:    startTime.Int64,
			}
		}
		leases = append(leases, l)
	}
	return leases, rows.Err()
}
