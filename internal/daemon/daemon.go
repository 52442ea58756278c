package daemon

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lmittmann/tint"

	"github.com/dig-network/digd/internal/api"
	"github.com/dig-network/digd/internal/app/governor"
	"github.com/dig-network/digd/internal/app/scheduler"
	"github.com/dig-network/digd/internal/domain"
	"github.com/dig-network/digd/internal/health"
	"github.com/dig-network/digd/internal/infra/catalog"
	"github.com/dig-network/digd/internal/infra/cgroups"
	"github.com/dig-network/digd/internal/infra/telemetry"
)

// Daemon is the digd runtime. It wires the governor, telemetry
// sampler, resource enforcer, and HTTP API together.
type Daemon struct {
	Config   Config
	Governor *governor.Governor
	Store    *governor.Store
	Server   *api.Server
	Health   *health.Checker

	log    *slog.Logger
	cancel context.CancelFunc
}

// New creates and initializes a Daemon from the loaded configuration.
func New() (*Daemon, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return NewWithConfig(cfg)
}

// NewWithConfig creates a Daemon with the given configuration.
func NewWithConfig(cfg Config) (*Daemon, error) {
	logger := newLogger(cfg.Logging.Level)
	slog.SetDefault(logger)

	enforcer := cgroups.NewEnforcer(logger)
	sampler := telemetry.NewSampler()

	govCfg := governor.Config{
		PollInterval:         time.Duration(cfg.Scheduler.PollIntervalMS) * time.Millisecond,
		ThermalLimitC:        cfg.Scheduler.ThermalLimitC,
		UIReservedCPUPercent: cfg.Scheduler.UIReservedCPUPercent,
		UIReservedGPUPercent: cfg.Scheduler.UIReservedGPUPercent,
	}

	// Boot in Balanced and enforce it right away. A failed apply only
	// warns; the in-memory allocation still stands.
	initialMode := domain.ModeBalanced
	alloc := scheduler.AllocationForMode(initialMode, scheduler.Floors{
		UICPUPercent: govCfg.UIReservedCPUPercent,
		UIGPUPercent: govCfg.UIReservedGPUPercent,
	})
	if err := enforcer.Apply(alloc); err != nil {
		logger.Warn("initial cgroup apply failed", "error", err)
	}

	store := governor.NewStore(governor.State{
		Mode:          initialMode,
		Allocation:    alloc,
		Telemetry:     sampler.Collect(initialMode),
		ActiveMission: catalog.Default().ID,
	})

	gov := governor.New(govCfg, store, sampler, enforcer, logger)

	srv := api.NewServer(gov)
	if cfg.Telemetry.Prometheus {
		srv.EnableMetrics()
	}

	hc := health.NewChecker(store, govCfg.PollInterval)
	srv.SetHealth(hc)

	return &Daemon{
		Config:   cfg,
		Governor: gov,
		Store:    store,
		Server:   srv,
		Health:   hc,
		log:      logger,
	}, nil
}

// Serve starts the control loop and HTTP server and blocks until
// shutdown.
func (d *Daemon) Serve(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	d.cancel = cancel

	go d.Governor.Run(ctx)
	go d.Health.Run(ctx)

	httpServer := &http.Server{
		Addr:         d.Config.Daemon.Addr,
		Handler:      d.Server.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  2 * time.Minute,
	}

	// Graceful shutdown on signal or ctx cancellation.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		select {
		case <-sigCh:
			cancel()
		case <-ctx.Done():
		}

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		_ = httpServer.Shutdown(shutdownCtx)
	}()

	d.log.Info("digd listening", "addr", d.Config.Daemon.Addr)
	if d.Config.Telemetry.Prometheus {
		d.log.Info("metrics enabled", "url", "http://"+d.Config.Daemon.Addr+"/metrics")
	}

	if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Close stops the control loop and background services.
func (d *Daemon) Close() {
	if d.cancel != nil {
		d.cancel()
	}
}

// newLogger builds the daemon's slog logger with a tint handler.
func newLogger(level string) *slog.Logger {
	return slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      parseLevel(level),
		TimeFormat: time.Kitchen,
	}))
}

func parseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
