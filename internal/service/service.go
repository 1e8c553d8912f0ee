package service

import (
	"context"

	"tokenlease-backend/internal/domain"
)

// LeaseService is the escrow's contract surface: the mutating state
// machine plus the read-only query operations.
type LeaseService interface {
	Initialize(ctx context.Context, admin, paymentToken string) error
	Lease(ctx context.Context, leaser, asset string, price, maxDuration int64) (*domain.Lease, error)
	Rent(ctx context.Context, renter, asset string, duration int64) (*domain.Lease, error)
	EndLease(ctx context.Context, leaser, asset string) error
	EndRent(ctx context.Context, renter, asset string) error
	ClaimToken(ctx context.Context, caller, asset string, useAdminOverride bool) error

	GetLease(ctx context.Context, asset string) (*domain.Lease, error)
	HasLease(ctx context.Context, asset string) (bool, error)
	GetAllListed(ctx context.Context) ([]domain.Lease, error)
	GetPaymentToken(ctx context.Context) (string, error)
}
