package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/itm-analitica/concurso/internal/adapters/http/api"
	"github.com/itm-analitica/concurso/internal/adapters/tabular"
	app "github.com/itm-analitica/concurso/internal/app"
	"github.com/itm-analitica/concurso/internal/config"
	"github.com/itm-analitica/concurso/internal/domain/rubric"
	"github.com/itm-analitica/concurso/pkg/logger"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// HTTP server timeout constants.
const (
	readTimeout       = 10 * time.Second
	writeTimeout      = 10 * time.Second
	idleTimeout       = 60 * time.Second
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 30 * time.Second
)

func main() {
	// Disable default Go metrics collection; the service registers its own
	// custom registry.
	prometheus.Unregister(collectors.NewGoCollector())
	prometheus.Unregister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}
	log := logger.Get()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env).
	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		return
	}

	// Apply configured log level (fallback to info on invalid input).
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	// Open the tabular store backing all three worksheets.
	var store tabular.Client
	if cfg.StorePath != "" {
		sqliteStore, err := tabular.OpenSQLite(cfg.StorePath)
		if err != nil {
			log.Error(ctx, "failed to open tabular store", logger.Error(err))
			return
		}
		store = sqliteStore
		log.Info(ctx, "using sqlite tabular store", logger.String("path", cfg.StorePath))
	} else {
		store = tabular.NewMemoryClient()
		log.Warn(ctx, "no store_path configured; ballots will not survive restarts")
	}

	weights := make(map[rubric.Role]float64, len(cfg.RoleWeights))
	for name, w := range cfg.RoleWeights {
		role, err := rubric.ParseRole(name)
		if err != nil {
			log.Warn(ctx, "ignoring weight for unknown role", logger.String("role", name))
			continue
		}
		weights[role] = w
	}

	svc := app.New(
		app.WithLogger(log),
		app.WithStore(store),
		app.WithWorksheets(cfg.RegistrationsWorksheet, cfg.JuryWorksheet, cfg.BallotsWorksheet),
		app.WithRoleWeights(weights),
	)
	if err := svc.Start(ctx); err != nil {
		log.Error(ctx, "failed to start service", logger.Error(err))
		return
	}
	defer svc.Stop()

	// HTTP mux and routes.
	mux := http.NewServeMux()
	apiServer := api.NewServer(svc, svc, cfg.MaxLeaderboardLimit)
	apiServer.Register(ctx, mux)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		log.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			os.Stderr.WriteString("HTTP server failed: " + err.Error() + "\n")
		}
	}()

	<-ctx.Done()
	log.Info(ctx, "shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "server shutdown failed", logger.Error(err))
	}
	log.Info(ctx, "server stopped")
}
