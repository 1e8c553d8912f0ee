package leveldb

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	ds "github.com/ipfs/go-datastore"
	dsq "github.com/ipfs/go-datastore/query"
	dslvl "github.com/ipfs/go-ds-leveldb"

	"tokenlease-backend/internal/domain"
	"tokenlease-backend/internal/repository"
)

const leasePrefix = "/leases/"

type leaseRepository struct {
	ds *dslvl.Datastore
}

func NewLeaseRepository(d *dslvl.Datastore) repository.LeaseRepository {
	return &leaseRepository{ds: d}
}

func leaseKey(asset string) ds.Key {
	return ds.NewKey(leasePrefix + asset)
}

func (r *leaseRepository) put(ctx context.Context, l *domain.Lease) error {
	b, err := json.Marshal(l)
	if err != nil {
		return err
	}
	return r.ds.Put(ctx, leaseKey(l.Asset), b)
}

func (r *leaseRepository) Create(ctx context.Context, l *domain.Lease) error {
	now := time.Now()
	l.CreatedOn = now
	l.UpdatedOn = now
	return r.put(ctx, l)
}

func (r *leaseRepository) Get(ctx context.Context, asset string) (*domain.Lease, error) {
	b, err := r.ds.Get(ctx, leaseKey(asset))
	if errors.Is(err, ds.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var l domain.Lease
	if err := json.Unmarshal(b, &l); err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *leaseRepository) Update(ctx context.Context, l *domain.Lease) error {
	l.UpdatedOn = time.Now()
	return r.put(ctx, l)
}

func (r *leaseRepository) Delete(ctx context.Context, asset string) error {
	return r.ds.Delete(ctx, leaseKey(asset))
}

func (r *leaseRepository) ListByState(ctx context.Context, state domain.LeaseState) ([]domain.Lease, error) {
	res, err := r.ds.Query(ctx, dsq.Query{Prefix: leasePrefix})
	if err != nil {
		return nil, err
	}
	defer res.Close()

	var leases []domain.Lease
	for {
		e, ok := res.NextSync()
		if !ok {
			break
		}
		if e.Error != nil {
			return nil, e.Error
		}
		var l domain.Lease
		if err := json.Unmarshal(e.Value, &l); err != nil {
			return nil, err
		}
		if l.State == state {
			leases = append(leases, l)
		}
	}
	return leases, nil
}
