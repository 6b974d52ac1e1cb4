package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	royaltyledger "chorus/contexts/finance-core/royalty-ledger"
	postgresadapter "chorus/contexts/finance-core/royalty-ledger/adapters/postgres"
	workerapp "chorus/contexts/finance-core/royalty-ledger/application/workers"
	"chorus/contexts/finance-core/royalty-ledger/domain/entities"
	royaltyerrors "chorus/contexts/finance-core/royalty-ledger/domain/errors"
	"chorus/internal/platform/config"
	"chorus/internal/platform/db"
	"chorus/internal/platform/httpserver"
	"chorus/internal/platform/messaging"
)

// Package bootstrap is the composition root.
// Keep construction/wiring here so module code stays framework-agnostic.

type APIApp struct {
	server   *httpserver.Server
	postgres *db.Postgres
	logger   *slog.Logger
}

type WorkerApp struct {
	postgres     *db.Postgres
	outboxRelay  workerapp.OutboxRelay
	relayEnabled bool
	pollInterval time.Duration
	logger       *slog.Logger
}

// BuildAPI wires the royalty ledger onto Postgres when POSTGRES_DSN is set,
// or onto the in-memory store otherwise (local/demo runs).
func BuildAPI() (*APIApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "api")

	var (
		module royaltyledger.Module
		pg     *db.Postgres
	)
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		var seed []entities.Song
		if cfg.EnableSeedCatalog {
			seed = []entities.Song{seedCatalogSong(cfg.LedgerAdmin)}
		}
		module = royaltyledger.NewInMemoryModule(cfg.LedgerAdmin, seed, logger)
	} else {
		pg, err = db.Connect(cfg.PostgresDSN)
		if err != nil {
			return nil, err
		}

		repo := postgresadapter.NewRepository(pg.DB, logger)
		ctx := context.Background()
		if err := repo.Migrate(ctx); err != nil {
			return nil, err
		}
		if err := repo.EnsureLedgerState(ctx, cfg.LedgerAdmin); err != nil {
			return nil, err
		}
		if cfg.EnableSeedCatalog {
			if err := seedCatalog(ctx, repo, cfg.LedgerAdmin); err != nil {
				return nil, err
			}
		}

		module = royaltyledger.NewModule(royaltyledger.Dependencies{
			Repository: repo,
			Outbox:     repo,
			Clock:      postgresadapter.SystemClock{},
			IDGen:      postgresadapter.UUIDGenerator{},
			Logger:     logger,
		})
	}

	server := httpserver.New(module, logger, normalizeAddr(cfg.HTTPPort))
	return &APIApp{
		server:   server,
		postgres: pg,
		logger:   logger,
	}, nil
}

func BuildWorker() (*WorkerApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "worker")
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		return nil, errors.New("POSTGRES_DSN is required")
	}

	pg, err := db.Connect(cfg.PostgresDSN)
	if err != nil {
		return nil, err
	}

	kafka, err := messaging.NewKafka(cfg.KafkaBrokers, logger)
	if err != nil {
		return nil, err
	}

	repo := postgresadapter.NewRepository(pg.DB, logger)
	return &WorkerApp{
		postgres: pg,
		outboxRelay: workerapp.OutboxRelay{
			Outbox:    repo,
			Publisher: kafka,
			Clock:     postgresadapter.SystemClock{},
			BatchSize: 100,
			Logger:    logger,
		},
		relayEnabled: cfg.EnableOutboxRelay,
		pollInterval: 2 * time.Second,
		logger:       logger,
	}, nil
}

func (a *APIApp) Run(_ context.Context) error {
	if a.logger != nil {
		a.logger.Info("api app started",
			"event", "bootstrap_api_started",
			"module", "internal/app/bootstrap",
			"layer", "platform",
		)
	}
	return a.server.Start()
}

func (a *APIApp) Close() error {
	if a.postgres != nil {
		return a.postgres.Close()
	}
	return nil
}

func (w *WorkerApp) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	w.logger.Info("worker app started",
		"event", "bootstrap_worker_started",
		"module", "internal/app/bootstrap",
		"layer", "platform",
		"poll_interval", w.pollInterval.String(),
		"outbox_relay_enabled", w.relayEnabled,
	)

	for {
		if w.relayEnabled {
			if err := w.outboxRelay.RunOnce(ctx); err != nil {
				return err
			}
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

func (w *WorkerApp) Close() error {
	if w.postgres != nil {
		return w.postgres.Close()
	}
	return nil
}

// seedCatalog registers the demo song once. A second boot finds song 1 and
// leaves the catalog alone.
func seedCatalog(ctx context.Context, repo *postgresadapter.Repository, admin string) error {
	_, err := repo.GetSong(ctx, 1)
	if err == nil {
		return nil
	}
	if !errors.Is(err, royaltyerrors.ErrInvalidSong) {
		return err
	}
	_, err = repo.CreateSong(ctx, seedCatalogSong(admin))
	return err
}

func seedCatalogSong(admin string) entities.Song {
	return entities.Song{
		ID:       1,
		Title:    "Test Song",
		Artist:   admin,
		IPFSHash: "QmTestHash1234567890123456789012345678901234",
		Contributors: []entities.Contributor{
			{Account: "wallet_1", Percentage: 60},
			{Account: "wallet_2", Percentage: 40},
		},
	}
}

func normalizeAddr(port string) string {
	value := strings.TrimSpace(port)
	if value == "" {
		return ":8080"
	}
	if strings.HasPrefix(value, ":") {
		return value
	}
	return ":" + value
}
