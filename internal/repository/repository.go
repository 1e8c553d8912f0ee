package repository

import (
	"context"

	"tokenlease-backend/internal/domain"
)

// LeaseRepository is the persistent lease ledger: one record per asset
// identifier. Get returns (nil, nil) when no record exists for the asset.
type LeaseRepository interface {
	Create(ctx context.Context, lease *domain.Lease) error
	Get(ctx context.Context, asset string) (*domain.Lease, error)
	Update(ctx context.Context, lease *domain.Lease) error
	Delete(ctx context.Context, asset string) error
	ListByState(ctx context.Context, state domain.LeaseState) ([]domain.Lease, error)
}

// SettingsRepository stores the one-time initialization record.
// Get returns (nil, nil) before initialize has run.
type SettingsRepository interface {
	Create(ctx context.Context, settings *domain.Settings) error
	Get(ctx context.Context) (*domain.Settings, error)
}
