package postgres

import (
	"database/sql"

	"tokenlease-backend/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.LeaseRepository
	repository.SettingsRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                 db,
		LeaseRepository:    NewLeaseRepository(db),
		SettingsRepository: NewSettingsRepository(db),
	}
}
