package service_test

import (
	"context"
	"sync"

	"github.com/stretchr/testify/mock"

	"tokenlease-backend/internal/domain"
)

type MockLeaseRepo struct {
	mock.Mock
}

func (m *MockLeaseRepo) Create(ctx context.Context, lease *domain.Lease) error {
	args := m.Called(ctx, lease)
	return args.Error(0)
}

func (m *MockLeaseRepo) Get(ctx context.Context, asset string) (*domain.Lease, error) {
	args := m.Called(ctx, asset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Lease), args.Error(1)
}

func (m *MockLeaseRepo) Update(ctx context.Context, lease *domain.Lease) error {
	args := m.Called(ctx, lease)
	return args.Error(0)
}

func (m *MockLeaseRepo) Delete(ctx context.Context, asset string) error {
	args := m.Called(ctx, asset)
	return args.Error(0)
}

func (m *MockLeaseRepo) ListByState(ctx context.Context, state domain.LeaseState) ([]domain.Lease, error) {
	args := m.Called(ctx, state)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Lease), args.Error(1)
}

type MockSettingsRepo struct {
	mock.Mock
}

func (m *MockSettingsRepo) Create(ctx context.Context, settings *domain.Settings) error {
	args := m.Called(ctx, settings)
	return args.Error(0)
}

func (m *MockSettingsRepo) Get(ctx context.Context) (*domain.Settings, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Settings), args.Error(1)
}

// memLeaseRepo and memSettingsRepo are stateful in-memory doubles for
// end-to-end scenario tests that walk a lease through its whole life.

type memLeaseRepo struct {
	mu     sync.Mutex
	leases map[string]domain.Lease
}

func newMemLeaseRepo() *memLeaseRepo {
	return &memLeaseRepo{leases: map[string]domain.Lease{}}
}

func (m *memLeaseRepo) Create(ctx context.Context, lease *domain.Lease) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.leases[lease.Asset] = *lease
	return nil
}

func (m *memLeaseRepo) Get(ctx context.Context, asset string) (*domain.Lease, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	l, ok := m.leases[asset]
	if !ok {
		return nil, nil
	}
	cp := l
	return &cp, nil
}

func (m *memLeaseRepo) Update(ctx context.Context, lease *domain.Lease) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.leases[lease.Asset] = *lease
	return nil
}

func (m *memLeaseRepo) Delete(ctx context.Context, asset string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.leases, asset)
	return nil
}

func (m *memLeaseRepo) ListByState(ctx context.Context, state domain.LeaseState) ([]domain.Lease, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Lease
	for _, l := range m.leases {
		if l.State == state {
			out = append(out, l)
		}
	}
	return out, nil
}

type memSettingsRepo struct {
	mu       sync.Mutex
	settings *domain.Settings
}

func (m *memSettingsRepo) Create(ctx context.Context, settings *domain.Settings) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *settings
	m.settings = &cp
	return nil
}

func (m *memSettingsRepo) Get(ctx context.Context) (*domain.Settings, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.settings == nil {
		return nil, nil
	}
	cp := *m.settings
	return &cp, nil
}
