package leveldb

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	ds "github.com/ipfs/go-datastore"
	dslvl "github.com/ipfs/go-ds-leveldb"

	"tokenlease-backend/internal/domain"
	"tokenlease-backend/internal/repository"
)

var settingsKey = ds.NewKey("/settings")

type settingsRepository struct {
	ds *dslvl.Datastore
}

func NewSettingsRepository(d *dslvl.Datastore) repository.SettingsRepository {
	return &settingsRepository{ds: d}
}

func (r *settingsRepository) Create(ctx context.Context, s *domain.Settings) error {
	s.CreatedOn = time.Now()
	b, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return r.ds.Put(ctx, settingsKey, b)
}

func (r *settingsRepository) Get(ctx context.Context) (*domain.Settings, error) {
	b, err := r.ds.Get(ctx, settingsKey)
	if errors.Is(err, ds.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var s domain.Settings
	if err := json.Unmarshal(b, &s); err != nil {
		return nil, err
	}
	return &s, nil
}
