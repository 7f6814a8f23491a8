package main

import (
	"context"
	"database/sql"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/valkey-io/valkey-go"

	"github.com/yanqian/policy-advisor/internal/domain/catalog"
	"github.com/yanqian/policy-advisor/internal/domain/recommendation"
	"github.com/yanqian/policy-advisor/internal/infra/catalogrepo"
	"github.com/yanqian/policy-advisor/internal/infra/catalogstore"
	"github.com/yanqian/policy-advisor/internal/infra/config"
	"github.com/yanqian/policy-advisor/internal/infra/postgres"
	"github.com/yanqian/policy-advisor/internal/infra/recommendationrepo"
	httpiface "github.com/yanqian/policy-advisor/internal/interface/http"
	"github.com/yanqian/policy-advisor/pkg/logger"
)

// storage holds the optional Postgres handle. A nil db means the
// in-memory repositories are in use.
type storage struct {
	db *sql.DB
}

func provideLogger(cfg *config.Config) *slog.Logger {
	return logger.New(logger.Options{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: os.Stdout,
	})
}

func provideRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

func provideEngineConfig(cfg *config.Config) recommendation.Config {
	return cfg.Recommendation.EngineConfig()
}

func provideCatalogConfig(cfg *config.Config) catalog.Config {
	return catalog.Config{CacheTTL: cfg.Cache.CatalogTTL}
}

func provideStorage(cfg *config.Config, logger *slog.Logger) (*storage, func()) {
	dsn := strings.TrimSpace(cfg.Database.DSN)
	if dsn == "" {
		logger.Info("database dsn not set, using memory repositories")
		return &storage{}, func() {}
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	db, err := postgres.Open(ctx, postgres.PoolConfig{
		DSN:      dsn,
		MaxConns: cfg.Database.MaxConns,
		MinConns: cfg.Database.MinConns,
	})
	if err != nil {
		logger.Error("postgres unavailable, using memory repositories", "error", err)
		return &storage{}, func() {}
	}
	if cfg.Database.AutoMigrate {
		if err := postgres.Migrate(ctx, db); err != nil {
			logger.Error("schema migration failed, using memory repositories", "error", err)
			_ = db.Close()
			return &storage{}, func() {}
		}
		logger.Info("schema migrated")
	}
	logger.Info("postgres repositories enabled")
	return &storage{db: db}, func() {
		if err := db.Close(); err != nil {
			logger.Error("close database", "error", err)
		}
	}
}

func provideRecommendationRepository(st *storage) recommendation.Repository {
	if st.db == nil {
		return recommendationrepo.NewMemoryRepository()
	}
	return recommendationrepo.NewPostgresRepository(st.db)
}

func provideCatalogRepository(st *storage) catalog.Repository {
	if st.db == nil {
		return catalogrepo.NewMemoryRepository(catalog.DefaultProducts()...)
	}
	return catalogrepo.NewPostgresRepository(st.db)
}

func provideHealthChecker(st *storage) httpiface.HealthChecker {
	if st.db == nil {
		return httpiface.StaticHealthChecker{Name: "memory", Tables: postgres.Tables}
	}
	return postgres.NewChecker(st.db)
}

func provideCatalogStore(cfg *config.Config, logger *slog.Logger) (catalog.Store, func()) {
	if !cfg.Cache.Enabled {
		return catalogstore.NewMemoryStore(), func() {}
	}
	opt, err := catalogstore.ClientOptions(cfg.Cache.Addr)
	if err != nil {
		logger.Error("invalid valkey configuration, falling back to memory store", "error", err)
		return catalogstore.NewMemoryStore(), func() {}
	}
	client, err := valkey.NewClient(opt)
	if err != nil {
		logger.Error("failed to create valkey client, falling back to memory store", "error", err)
		return catalogstore.NewMemoryStore(), func() {}
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
		logger.Error("valkey ping failed, falling back to memory store", "error", err)
		client.Close()
		return catalogstore.NewMemoryStore(), func() {}
	}
	logger.Info("catalog valkey store enabled", "addr", cfg.Cache.Addr)
	return catalogstore.NewValkeyStore(client, cfg.Cache.Prefix), client.Close
}
