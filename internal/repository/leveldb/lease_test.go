package leveldb_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tokenlease-backend/internal/domain"
	"tokenlease-backend/internal/repository/leveldb"
)

func newStore(t *testing.T) *leveldb.Store {
	t.Helper()
	store, err := leveldb.NewStore(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func sampleLease(asset string, state domain.LeaseState) *domain.Lease {
	l := &domain.Lease{
		Asset: asset,
		State: state,
		Leasing: domain.Leasing{
			Leaser:      "LEASER",
			PriceUnits:  10,
			MaxDuration: 2592000,
		},
	}
	if state == domain.LeaseStateRented {
		l.Renting = &domain.Renting{Renter: "RENTER", RentDuration: 86400, StartTime: 1700000000}
	}
	return l
}

func TestLeaseStore_RoundTrip(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	require.NoError(t, store.LeaseRepository.Create(ctx, sampleLease("ASSET_T", domain.LeaseStateListed)))

	got, err := store.LeaseRepository.Get(ctx, "ASSET_T")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, domain.LeaseStateListed, got.State)
	assert.Equal(t, "LEASER", got.Leasing.Leaser)
	assert.Nil(t, got.Renting)

	got.State = domain.LeaseStateRented
	got.Renting = &domain.Renting{Renter: "RENTER", RentDuration: 86400, StartTime: 1700000000}
	require.NoError(t, store.LeaseRepository.Update(ctx, got))

	got, err = store.LeaseRepository.Get(ctx, "ASSET_T")
	require.NoError(t, err)
	require.NotNil(t, got.Renting)
	assert.Equal(t, "RENTER", got.Renting.Renter)

	require.NoError(t, store.LeaseRepository.Delete(ctx, "ASSET_T"))
	got, err = store.LeaseRepository.Get(ctx, "ASSET_T")
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestLeaseStore_GetAbsent(t *testing.T) {
	store := newStore(t)

	got, err := store.LeaseRepository.Get(context.Background(), "MISSING")
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestLeaseStore_ListByState(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	require.NoError(t, store.LeaseRepository.Create(ctx, sampleLease("ASSET_A", domain.LeaseStateListed)))
	require.NoError(t, store.LeaseRepository.Create(ctx, sampleLease("ASSET_B", domain.LeaseStateRented)))
	require.NoError(t, store.LeaseRepository.Create(ctx, sampleLease("ASSET_C", domain.LeaseStateListed)))

	listed, err := store.LeaseRepository.ListByState(ctx, domain.LeaseStateListed)
	require.NoError(t, err)
	assert.Len(t, listed, 2)

	rented, err := store.LeaseRepository.ListByState(ctx, domain.LeaseStateRented)
	require.NoError(t, err)
	require.Len(t, rented, 1)
	assert.Equal(t, "ASSET_B", rented[0].Asset)
}

func TestSettingsStore(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	settings, err := store.SettingsRepository.Get(ctx)
	require.NoError(t, err)
	assert.Nil(t, settings)

	require.NoError(t, store.SettingsRepository.Create(ctx, &domain.Settings{Admin: "ADMIN", PaymentToken: "PAY"}))

	settings, err = store.SettingsRepository.Get(ctx)
	require.NoError(t, err)
	require.NotNil(t, settings)
	assert.Equal(t, "ADMIN", settings.Admin)
	assert.Equal(t, "PAY", settings.PaymentToken)
}
