package main

import (
	"database/sql"
	"flag"
	"log"
	"net/http"

	_ "github.com/lib/pq"

	api "tokenlease-backend/internal/api/http"
	"tokenlease-backend/internal/config"
	"tokenlease-backend/internal/logger"
	"tokenlease-backend/internal/repository"
	"tokenlease-backend/internal/repository/leveldb"
	"tokenlease-backend/internal/repository/postgres"
	"tokenlease-backend/internal/security"
	"tokenlease-backend/internal/service"
	"tokenlease-backend/internal/token"
)

func main() {
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Token Lease Escrow Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Escrow account", "account", cfg.Escrow.Account)

	leaseRepo, settingsRepo, closeStore := openLedger(cfg)
	defer closeStore()

	// Token engine
	var tokens token.Interface
	switch cfg.Token.Backend {
	case "", "mock":
		logger.Info("Using in-process token ledger", "operator", cfg.Escrow.Account)
		tokens = token.NewMockLedger(cfg.Escrow.Account)
	default:
		logger.Error("Unsupported token backend", "backend", cfg.Token.Backend)
		log.Fatalf("Token backend '%s' not yet implemented", cfg.Token.Backend)
	}

	tokenManager := security.NewTokenManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry)
	leaseSvc := service.NewLeaseService(leaseRepo, settingsRepo, tokens, cfg.Escrow.Account)

	handler := api.NewLeaseHandler(leaseSvc)
	router := api.NewRouter(handler, tokenManager)

	logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
	if err := http.ListenAndServe(cfg.GetServerAddress(), router); err != nil {
		logger.Error("HTTP server stopped", "error", err)
		log.Fatalf("HTTP server stopped: %v", err)
	}
}

// openLedger selects the lease-ledger backend from config.
func openLedger(cfg *config.Config) (repository.LeaseRepository, repository.SettingsRepository, func()) {
	switch cfg.Ledger.Backend {
	case "", "postgres":
		logger.Info("Connecting to database...", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database)
		db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
		if err != nil {
			logger.Error("Failed to connect to database", "error", err)
			log.Fatalf("Failed to connect to database: %v", err)
		}
		if err := db.Ping(); err != nil {
			logger.Error("Failed to ping database", "error", err)
			log.Fatalf("Failed to ping database: %v", err)
		}
		logger.Info("Database connection established")
		store := postgres.NewStore(db)
		return store.LeaseRepository, store.SettingsRepository, func() { _ = db.Close() }
	case "leveldb":
		logger.Info("Opening LevelDB ledger", "path", cfg.Ledger.Path)
		store, err := leveldb.NewStore(cfg.Ledger.Path)
		if err != nil {
			logger.Error("Failed to open LevelDB ledger", "error", err)
			log.Fatalf("Failed to open LevelDB ledger: %v", err)
		}
		return store.LeaseRepository, store.SettingsRepository, func() { _ = store.Close() }
	default:
		log.Fatalf("Unknown ledger backend '%s'", cfg.Ledger.Backend)
		return nil, nil, nil
	}
}
