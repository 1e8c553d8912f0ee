package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tokenlease-backend/internal/domain"
	"tokenlease-backend/internal/repository/postgres"
)

func leaseColumns() []string {
	return []string{"asset", "state", "leaser", "price_units", "max_duration_seconds", "renter", "rent_duration_seconds", "start_time", "created_on", "updated_on"}
}

func TestLeaseRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewLeaseRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		lease := &domain.Lease{
			Asset: "ASSET_T",
			State: domain.LeaseStateListed,
			Leasing: domain.Leasing{
				Leaser:      "LEASER",
				PriceUnits:  10,
				MaxDuration: 2592000,
			},
		}

		mock.ExpectExec("INSERT INTO leases").
			WithArgs(lease.Asset, lease.State, "LEASER", int64(10), int64(2592000), sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Create(ctx, lease)
		assert.NoError(t, err)
		assert.False(t, lease.CreatedOn.IsZero())
	})
}

func TestLeaseRepository_Get(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewLeaseRepository(db)
	ctx := context.Background()

	t.Run("Listed lease has no renting", func(t *testing.T) {
		rows := sqlmock.NewRows(leaseColumns()).
			AddRow("ASSET_T", "LISTED", "LEASER", 10, 2592000, nil, nil, nil, time.Now(), time.Now())

		mock.ExpectQuery("SELECT (.+) FROM leases WHERE asset").
			WithArgs("ASSET_T").
			WillReturnRows(rows)

		lease, err := repo.Get(ctx, "ASSET_T")
		require.NoError(t, err)
		require.NotNil(t, lease)
		assert.Equal(t, domain.LeaseStateListed, lease.State)
		assert.Equal(t, "LEASER", lease.Leasing.Leaser)
		assert.Nil(t, lease.Renting)
	})

	t.Run("Rented lease populates renting", func(t *testing.T) {
		rows := sqlmock.NewRows(leaseColumns()).
			AddRow("ASSET_T", "RENTED", "LEASER", 10, 2592000, "RENTER", 86400, 1700000000, time.Now(), time.Now())

		mock.ExpectQuery("SELECT (.+) FROM leases WHERE asset").
			WithArgs("ASSET_T").
			WillReturnRows(rows)

		lease, err := repo.Get(ctx, "ASSET_T")
		require.NoError(t, err)
		require.NotNil(t, lease.Renting)
		assert.Equal(t, "RENTER", lease.Renting.Renter)
		assert.Equal(t, int64(86400), lease.Renting.RentDuration)
		assert.Equal(t, int64(1700000000), lease.Renting.StartTime)
	})

	t.Run("Absent lease returns nil", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM leases WHERE asset").
			WithArgs("MISSING").
			WillReturnRows(sqlmock.NewRows(leaseColumns()))

		lease, err := repo.Get(ctx, "MISSING")
		assert.NoError(t, err)
		assert.Nil(t, lease)
	})
}

func TestLeaseRepository_Update(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewLeaseRepository(db)
	ctx := context.Background()

	lease := &domain.Lease{
		Asset: "ASSET_T",
		State: domain.LeaseStateRented,
		Leasing: domain.Leasing{
			Leaser:      "LEASER",
			PriceUnits:  10,
			MaxDuration: 2592000,
		},
		Renting: &domain.Renting{
			Renter:       "RENTER",
			RentDuration: 86400,
			StartTime:    1700000000,
		},
	}

	mock.ExpectExec("UPDATE leases SET").
		WithArgs(lease.State, "RENTER", int64(86400), int64(1700000000), sqlmock.AnyArg(), "ASSET_T").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = repo.Update(ctx, lease)
	assert.NoError(t, err)
}

func TestLeaseRepository_Delete(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewLeaseRepository(db)

	mock.ExpectExec("DELETE FROM leases").
		WithArgs("ASSET_T").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = repo.Delete(context.Background(), "ASSET_T")
	assert.NoError(t, err)
}

func TestLeaseRepository_ListByState(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewLeaseRepository(db)

	rows := sqlmock.NewRows(leaseColumns()).
		AddRow("ASSET_A", "LISTED", "LEASER", 10, 2592000, nil, nil, nil, time.Now(), time.Now()).
		AddRow("ASSET_B", "LISTED", "OTHER", 25, 86400, nil, nil, nil, time.Now(), time.Now())

	mock.ExpectQuery("SELECT (.+) FROM leases WHERE state").
		WithArgs(domain.LeaseStateListed).
		WillReturnRows(rows)

	leases, err := repo.ListByState(context.Background(), domain.LeaseStateListed)
	require.NoError(t, err)
	require.Len(t, leases, 2)
	assert.Equal(t, "ASSET_A", leases[0].Asset)
	assert.Equal(t, int64(25), leases[1].Leasing.PriceUnits)
}
