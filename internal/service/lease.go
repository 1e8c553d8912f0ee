package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"tokenlease-backend/internal/domain"
	"tokenlease-backend/internal/logger"
	"tokenlease-backend/internal/repository"
	"tokenlease-backend/internal/security"
	"tokenlease-backend/internal/token"
)

var (
	ErrNotInitialized     = errors.New("escrow has not been initialized")
	ErrAlreadyInitialized = errors.New("escrow is already initialized")
	ErrLeaseNotFound      = errors.New("no lease exists for this asset")
	ErrLeaseAlreadyExists = errors.New("a lease already exists for this asset")
	ErrInvalidState       = errors.New("operation is not valid in the lease's current state")
	ErrInvalidDuration    = errors.New("duration must be positive and within the listing's maximum")
	ErrInvalidPrice       = errors.New("price must not be negative")
	ErrNotExpired         = errors.New("rental period has not expired yet")
	ErrUnauthorized       = errors.New("caller is not authorized as the required principal")
)

type leaseService struct {
	// Operations run serially, mirroring the one-transaction-at-a-time
	// execution of the ledger the record model is designed for.
	mu sync.Mutex

	leaseRepo    repository.LeaseRepository
	settingsRepo repository.SettingsRepository
	tokens       token.Interface
	escrowAcct   string
	now          func() time.Time
}

func NewLeaseService(
	leaseRepo repository.LeaseRepository,
	settingsRepo repository.SettingsRepository,
	tokens token.Interface,
	escrowAccount string,
) LeaseService {
	return NewLeaseServiceWithClock(leaseRepo, settingsRepo, tokens, escrowAccount, time.Now)
}

// NewLeaseServiceWithClock injects the time source; expiry tests pin it.
func NewLeaseServiceWithClock(
	leaseRepo repository.LeaseRepository,
	settingsRepo repository.SettingsRepository,
	tokens token.Interface,
	escrowAccount string,
	clock func() time.Time,
) LeaseService {
	return &leaseService{
		leaseRepo:    leaseRepo,
		settingsRepo: settingsRepo,
		tokens:       tokens,
		escrowAcct:   escrowAccount,
		now:          clock,
	}
}

// requireAuth verifies that the request's authenticated account is the
// principal the operation names. Identity is never inferred from call
// context alone; every operation receives its principal explicitly.
func requireAuth(ctx context.Context, principal string) error {
	account, ok := security.AccountFromContext(ctx)
	if !ok || account != principal {
		return ErrUnauthorized
	}
	return nil
}

func (s *leaseService) Initialize(ctx context.Context, admin, paymentToken string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return err
	}
	if existing != nil {
		return ErrAlreadyInitialized
	}

	settings := &domain.Settings{Admin: admin, PaymentToken: paymentToken}
	if err := s.settingsRepo.Create(ctx, settings); err != nil {
		return err
	}
	logger.Info("Escrow initialized", "admin", admin, "payment_token", paymentToken)
	return nil
}

func (s *leaseService) Lease(ctx context.Context, leaser, asset string, price, maxDuration int64) (*domain.Lease, error) {
	if err := requireAuth(ctx, leaser); err != nil {
		return nil, err
	}
	if price < 0 {
		return nil, ErrInvalidPrice
	}
	if maxDuration <= 0 {
		return nil, ErrInvalidDuration
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.leaseRepo.Get(ctx, asset)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrLeaseAlreadyExists
	}

	lease := &domain.Lease{
		Asset: asset,
		State: domain.LeaseStateListed,
		Leasing: domain.Leasing{
			Leaser:      leaser,
			PriceUnits:  price,
			MaxDuration: maxDuration,
		},
	}
	if err := s.leaseRepo.Create(ctx, lease); err != nil {
		return nil, err
	}

	// Freeze the listed asset in the leaser's account so it cannot be
	// moved out from under the listing. Needs the escrow to be the
	// asset's admin; a listing without the freeze is still valid.
	if err := s.tokens.SetAuthorized(ctx, asset, leaser, false); err != nil {
		logger.Warn("Could not freeze listed asset", "asset", asset, "leaser", leaser, "error", err)
	}

	logger.Info("Asset listed", "asset", asset, "leaser", leaser, "price", price, "max_duration", maxDuration)
	return lease, nil
}

func (s *leaseService) Rent(ctx context.Context, renter, asset string, duration int64) (*domain.Lease, error) {
	if err := requireAuth(ctx, renter); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	lease, err := s.leaseRepo.Get(ctx, asset)
	if err != nil {
		return nil, err
	}
	if lease == nil {
		return nil, ErrLeaseNotFound
	}
	if lease.State != domain.LeaseStateListed {
		return nil, ErrInvalidState
	}
	if duration <= 0 || duration > lease.Leasing.MaxDuration {
		return nil, ErrInvalidDuration
	}

	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, err
	}
	if settings == nil {
		return nil, ErrNotInitialized
	}

	leaser := lease.Leasing.Leaser

	// The freeze stays on until the price is in hand; a rent that fails
	// at payment must leave the listing exactly as it found it.
	if err := token.Pull(ctx, s.tokens, settings.PaymentToken, s.escrowAcct, renter, leaser, lease.Leasing.PriceUnits); err != nil {
		return nil, err
	}
	if err := s.tokens.SetAuthorized(ctx, asset, leaser, true); err != nil {
		logger.Warn("Could not unfreeze listed asset", "asset", asset, "leaser", leaser, "error", err)
	}
	if err := s.tokens.Transfer(ctx, asset, leaser, renter, 1); err != nil {
		s.unwindRent(ctx, settings.PaymentToken, asset, leaser, renter, lease.Leasing.PriceUnits, false)
		return nil, err
	}

	lease.State = domain.LeaseStateRented
	lease.Renting = &domain.Renting{
		Renter:       renter,
		RentDuration: duration,
		StartTime:    s.now().Unix(),
	}
	if err := s.leaseRepo.Update(ctx, lease); err != nil {
		s.unwindRent(ctx, settings.PaymentToken, asset, leaser, renter, lease.Leasing.PriceUnits, true)
		return nil, err
	}

	logger.Info("Asset rented", "asset", asset, "renter", renter, "duration", duration)
	return lease, nil
}

// unwindRent reverses the token movements of a rent that failed after
// the payment was collected, so the record and the ledger agree again:
// custody (when it moved) back with the leaser, the price back with the
// renter, and the listing freeze re-applied.
func (s *leaseService) unwindRent(ctx context.Context, paymentToken, asset, leaser, renter string, price int64, custodyMoved bool) {
	if custodyMoved {
		if err := s.tokens.Transfer(ctx, asset, renter, leaser, 1); err != nil {
			logger.Error("Custody return failed while unwinding rent", "asset", asset, "renter", renter, "error", err)
		}
	}
	if err := s.tokens.Transfer(ctx, paymentToken, leaser, renter, price); err != nil {
		logger.Error("Payment refund failed while unwinding rent", "asset", asset, "renter", renter, "error", err)
	}
	if err := s.tokens.SetAuthorized(ctx, asset, leaser, false); err != nil {
		logger.Warn("Could not re-freeze listed asset", "asset", asset, "leaser", leaser, "error", err)
	}
}

func (s *leaseService) EndLease(ctx context.Context, leaser, asset string) error {
	if err := requireAuth(ctx, leaser); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	lease, err := s.leaseRepo.Get(ctx, asset)
	if err != nil {
		return err
	}
	if lease == nil {
		return ErrLeaseNotFound
	}
	if lease.State != domain.LeaseStateListed {
		return ErrInvalidState
	}
	if lease.Leasing.Leaser != leaser {
		return ErrUnauthorized
	}

	// Nothing moved at listing time, so there is nothing to reverse;
	// just lift the listing freeze.
	if err := s.tokens.SetAuthorized(ctx, asset, leaser, true); err != nil {
		logger.Warn("Could not unfreeze delisted asset", "asset", asset, "leaser", leaser, "error", err)
	}

	if err := s.leaseRepo.Delete(ctx, asset); err != nil {
		return err
	}
	logger.Info("Listing cancelled", "asset", asset, "leaser", leaser)
	return nil
}

func (s *leaseService) EndRent(ctx context.Context, renter, asset string) error {
	if err := requireAuth(ctx, renter); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	lease, err := s.leaseRepo.Get(ctx, asset)
	if err != nil {
		return err
	}
	if lease == nil {
		return ErrLeaseNotFound
	}
	if lease.State != domain.LeaseStateRented {
		return ErrInvalidState
	}
	if lease.Renting.Renter != renter {
		return ErrUnauthorized
	}

	// The price is a flat fee for the right to rent; an early return
	// earns no refund.
	if err := s.tokens.Transfer(ctx, asset, renter, lease.Leasing.Leaser, 1); err != nil {
		return err
	}
	if err := s.leaseRepo.Delete(ctx, asset); err != nil {
		return err
	}
	logger.Info("Rental returned", "asset", asset, "renter", renter)
	return nil
}

func (s *leaseService) ClaimToken(ctx context.Context, caller, asset string, useAdminOverride bool) error {
	if err := requireAuth(ctx, caller); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	lease, err := s.leaseRepo.Get(ctx, asset)
	if err != nil {
		return err
	}
	if lease == nil {
		return ErrLeaseNotFound
	}
	if lease.State != domain.LeaseStateRented {
		return ErrInvalidState
	}
	if lease.Leasing.Leaser != caller {
		return ErrUnauthorized
	}
	if s.now().Unix() < lease.Deadline() {
		return ErrNotExpired
	}

	renter := lease.Renting.Renter
	if useAdminOverride {
		// Issuer-level clawback: force the renter's holding transferable
		// before moving it. Requires the escrow to hold adminship of the
		// asset contract.
		if err := s.tokens.SetAuthorized(ctx, asset, renter, true); err != nil {
			return err
		}
	}
	if err := s.tokens.Transfer(ctx, asset, renter, caller, 1); err != nil {
		return err
	}

	if err := s.leaseRepo.Delete(ctx, asset); err != nil {
		return err
	}
	logger.Info("Expired rental claimed", "asset", asset, "leaser", caller, "admin_override", useAdminOverride)
	return nil
}

func (s *leaseService) GetLease(ctx context.Context, asset string) (*domain.Lease, error) {
	return s.leaseRepo.Get(ctx, asset)
}

func (s *leaseService) HasLease(ctx context.Context, asset string) (bool, error) {
	lease, err := s.leaseRepo.Get(ctx, asset)
	if err != nil {
		return false, err
	}
	return lease != nil, nil
}

func (s *leaseService) GetAllListed(ctx context.Context) ([]domain.Lease, error) {
	return s.leaseRepo.ListByState(ctx, domain.LeaseStateListed)
}

func (s *leaseService) GetPaymentToken(ctx context.Context) (string, error) {
	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return "", err
	}
	if settings == nil {
		return "", ErrNotInitialized
	}
	return settings.PaymentToken, nil
}
