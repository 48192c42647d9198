package daemon

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/abayate/earthwise/internal/api"
	"github.com/abayate/earthwise/internal/app/engine"
	"github.com/abayate/earthwise/internal/app/notify"
	"github.com/abayate/earthwise/internal/infra/bus"
	_ "github.com/abayate/earthwise/internal/infra/metrics" // register collectors
	"github.com/abayate/earthwise/internal/infra/remote"
	"github.com/abayate/earthwise/internal/infra/sqlite"
)

// Daemon is the long-running EarthWise process: SQLite store, points
// engine, event bus, and HTTP API bundled together.
type Daemon struct {
	cfg     Config
	db      *sqlite.DB
	bus     *bus.Bus
	notices *notify.Service
	engine  *engine.Service
	server  *api.Server
}

// New creates a daemon from the on-disk config.
func New() (*Daemon, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, err
	}
	return NewWithConfig(cfg)
}

// NewWithConfig creates a daemon from an explicit config.
func NewWithConfig(cfg Config) (*Daemon, error) {
	homeDir := earthwiseHome()
	if err := os.MkdirAll(homeDir, 0700); err != nil {
		return nil, fmt.Errorf("create home dir: %w", err)
	}

	db, err := sqlite.Open(homeDir)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	b := bus.New()
	notices := notify.NewService(db)

	var rc *remote.Client
	if cfg.Remote.Enabled && cfg.Remote.BaseURL != "" {
		rc = remote.NewClient(remote.Config{
			BaseURL: cfg.Remote.BaseURL,
			UserID:  cfg.User.ID,
			Timeout: cfg.Remote.RemoteTimeout(),
			Retries: cfg.Remote.Retries,
		})
		log.Printf("[daemon] remote sync enabled: %s", cfg.Remote.BaseURL)
	}

	eng, err := engine.Open(db, engine.Options{
		Bus:     b,
		Notices: notices,
		Remote:  rc,
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("open engine: %w", err)
	}

	server := api.NewServer(eng, notices, b)
	if cfg.Telemetry.Prometheus {
		server.EnableMetrics()
	}

	return &Daemon{
		cfg:     cfg,
		db:      db,
		bus:     b,
		notices: notices,
		engine:  eng,
		server:  server,
	}, nil
}

// Engine exposes the points engine for in-process callers (CLI).
func (d *Daemon) Engine() *engine.Service { return d.engine }

// Notices exposes the notice service for in-process callers.
func (d *Daemon) Notices() *notify.Service { return d.notices }

// Serve runs the HTTP API until SIGINT/SIGTERM, then shuts down
// gracefully.
func (d *Daemon) Serve() error {
	addr := fmt.Sprintf("%s:%d", d.cfg.API.Host, d.cfg.API.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: d.server.Handler(),
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("[daemon] API listening on http://%s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("serve: %w", err)
	case sig := <-sigCh:
		log.Printf("[daemon] received %s, shutting down", sig)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("[daemon] shutdown: %v", err)
	}
	return d.Close()
}

// Close releases daemon resources.
func (d *Daemon) Close() error {
	if d.db != nil {
		return d.db.Close()
	}
	return nil
}
