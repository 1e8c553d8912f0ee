// Package leveldb backs the lease ledger with an embedded LevelDB
// key/value store, for deployments that run without PostgreSQL.
package leveldb

import (
	dslvl "github.com/ipfs/go-ds-leveldb"

	"tokenlease-backend/internal/repository"
)

type Store struct {
	ds *dslvl.Datastore
	repository.LeaseRepository
	repository.SettingsRepository
}

func NewStore(path string) (*Store, error) {
	ds, err := dslvl.NewDatastore(path, nil)
	if err != nil {
		return nil, err
	}
	return &Store{
		ds:                 ds,
		LeaseRepository:    NewLeaseRepository(ds),
		SettingsRepository: NewSettingsRepository(ds),
	}, nil
}

func (s *Store) Close() error {
	return s.ds.Close()
}
