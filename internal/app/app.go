package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"

	"github.com/dfstools/poolimport/internal/config"
	"github.com/dfstools/poolimport/internal/domain/identity"
	"github.com/dfstools/poolimport/internal/domain/importrun"
	"github.com/dfstools/poolimport/internal/domain/pool"
	"github.com/dfstools/poolimport/internal/infrastructure/repository/cache"
	"github.com/dfstools/poolimport/internal/infrastructure/repository/memory"
	"github.com/dfstools/poolimport/internal/infrastructure/repository/postgres"
	"github.com/dfstools/poolimport/internal/infrastructure/spreadsheet"
	"github.com/dfstools/poolimport/internal/interfaces/httpapi"
	basecache "github.com/dfstools/poolimport/internal/platform/cache"
	idgen "github.com/dfstools/poolimport/internal/platform/id"
	"github.com/dfstools/poolimport/internal/platform/logging"
	"github.com/dfstools/poolimport/internal/usecase"
)

// NewHTTPServer assembles the full service. The returned cleanup closes
// the database pool and must run after the HTTP server has shut down.
func NewHTTPServer(cfg config.Config, logger *slog.Logger) (*http.Server, func(context.Context) error, error) {
	appLogger := logging.Default()

	var (
		importRepo    importrun.Repository
		poolRepo      pool.Repository
		aliasRepo     identity.AliasRepository
		candidateRepo identity.CandidateRepository
		cleanup       = func(context.Context) error { return nil }
	)

	if cfg.DBURL != "" {
		db, err := openDB(cfg)
		if err != nil {
			return nil, nil, fmt.Errorf("open db: %w", err)
		}
		importRepo = postgres.NewImportRepository(db)
		poolRepo = postgres.NewPoolRepository(db)
		aliasRepo = postgres.NewAliasRepository(db)
		candidateRepo = postgres.NewCandidateRepository(db)
		cleanup = func(context.Context) error { return db.Close() }
		appLogger.Info("storage ready", "backend", "postgres", "database", dbNameFromURL(cfg.DBURL))
	} else {
		store := memory.NewStore()
		importRepo = store
		poolRepo = store
		aliasRepo = store
		candidateRepo = store
		appLogger.Info("storage ready", "backend", "memory")
	}

	var invalidator usecase.AliasInvalidator
	if cfg.CacheEnabled {
		cached := cache.NewAliasRepository(aliasRepo, basecache.NewStore(cfg.CacheTTL))
		aliasRepo = cached
		invalidator = cached
	}

	parsers := usecase.Parsers{
		Roster: spreadsheet.NewRosterAdapter(),
		Salary: func(sheet pool.ProjectionSheet) (usecase.RecordParser, error) {
			adapter, err := spreadsheet.NewSalaryAdapter(sheet)
			if err != nil {
				return nil, err
			}
			return adapter, nil
		},
		History: spreadsheet.NewHistoryAdapter(),
	}

	generator := idgen.NewRandomGenerator()

	importSvc := usecase.NewImportService(
		importRepo,
		poolRepo,
		aliasRepo,
		parsers,
		pool.NewRules(cfg.ImportSalaryMin, cfg.ImportSalaryMax, cfg.ImportPositions),
		identity.NewMatcher(cfg.ImportFuzzyThreshold),
		generator,
		appLogger,
	)
	historySvc := usecase.NewHistoryService(importRepo, poolRepo, candidateRepo, cfg.HistoryDeltaWorkers)
	reviewSvc := usecase.NewReviewService(candidateRepo, importRepo, poolRepo, invalidator, generator, appLogger)

	handler := httpapi.NewHandler(importSvc, historySvc, reviewSvc, logger, cfg.ImportMaxFileBytes)
	router := httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		cleanupErr := cleanup(context.Background())
		if cleanupErr != nil {
			appLogger.Warn("close storage", "error", cleanupErr)
		}
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, cleanup, nil
}

func openDB(cfg config.Config) (*sqlx.DB, error) {
	dsn := normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary)

	db, err := otelsqlx.Connect("postgres", dsn,
		otelsql.WithDBName(dbNameFromURL(dsn)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(16)
	db.SetMaxIdleConns(8)
	db.SetConnMaxLifetime(30 * time.Minute)
	otelsql.ReportDBStatsMetrics(db.DB)

	return db, nil
}
