package main

import (
	"database/sql"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/lib/pq"

	"tokenlease-backend/internal/config"
	"tokenlease-backend/internal/jobs"
	"tokenlease-backend/internal/logger"
	"tokenlease-backend/internal/repository"
	"tokenlease-backend/internal/repository/leveldb"
	"tokenlease-backend/internal/repository/postgres"
	"tokenlease-backend/internal/scheduler"
)

func main() {
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	runOnce := flag.String("run-once", "", "Run a specific job once and exit (e.g., 'report-expired-rentals')")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Escrow Cronjob Runner...", "log_level", cfg.Log.Level)

	leaseRepo, closeStore := openLedger(cfg)
	defer closeStore()

	jobRunner := jobs.NewJobRunner(leaseRepo, cfg)

	if *runOnce != "" {
		switch *runOnce {
		case "report-expired-rentals":
			jobRunner.ReportExpiredRentals()
		default:
			log.Fatalf("Unknown job '%s'", *runOnce)
		}
		return
	}

	sched := scheduler.NewScheduler(jobRunner)
	sched.Start()
	defer sched.Stop()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutdown signal received")
}

func openLedger(cfg *config.Config) (repository.LeaseRepository, func()) {
	switch cfg.Ledger.Backend {
	case "", "postgres":
		db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		if err := db.Ping(); err != nil {
			log.Fatalf("Failed to ping database: %v", err)
		}
		return postgres.NewLeaseRepository(db), func() { _ = db.Close() }
	case "leveldb":
		store, err := leveldb.NewStore(cfg.Ledger.Path)
		if err != nil {
			log.Fatalf("Failed to open LevelDB ledger: %v", err)
		}
		return store.LeaseRepository, func() { _ = store.Close() }
	default:
		log.Fatalf("Unknown ledger backend '%s'", cfg.Ledger.Backend)
		return nil, nil
	}
}
