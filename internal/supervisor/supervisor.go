package supervisor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/gofrs/flock"

	"bilrost/internal/config"
	"bilrost/internal/logging"
)

const (
	defaultTimeout      = 20 * time.Second
	defaultPollInterval = 200 * time.Millisecond
)

// Prober reports whether the service currently accepts connections.
type Prober interface {
	Probe(ctx context.Context) bool
}

// Launcher starts the service process without waiting for it.
type Launcher interface {
	Launch(ctx context.Context) error
}

// Locker guards the launch step across concurrent invocations.
// *flock.Flock satisfies it.
type Locker interface {
	TryLock() (bool, error)
	Unlock() error
}

// Supervisor brings the service up at most once per value.
type Supervisor struct {
	Addr         string
	Prober       Prober
	Launcher     Launcher
	Lock         Locker
	Timeout      time.Duration
	PollInterval time.Duration
	Logger       *slog.Logger

	once sync.Once
	err  error
}

// LaunchOptions controls where the launched service writes its output.
type LaunchOptions struct {
	// Terminal routes service stdout/stderr to the current terminal instead
	// of the service log file.
	Terminal bool
}

// New wires a Supervisor from configuration.
func New(cfg *config.Config, opts LaunchOptions, logger *slog.Logger) (*Supervisor, error) {
	if cfg == nil {
		return nil, errors.New("configuration not available")
	}
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}
	addr := cfg.ServiceAddr()
	launcher := &ExecLauncher{
		Command: cfg.Service.Command,
		Args:    cfg.Service.Args,
		LogPath: cfg.Service.LogPath,
	}
	if opts.Terminal {
		launcher.LogPath = ""
	}
	return &Supervisor{
		Addr:         addr,
		Prober:       &TCPProber{Addr: addr},
		Launcher:     launcher,
		Lock:         flock.New(cfg.SpawnLockPath()),
		Timeout:      cfg.StartTimeout(),
		PollInterval: cfg.PollInterval(),
		Logger:       logging.NewComponentLogger(logger, "supervisor"),
	}, nil
}

// EnsureRunning makes the service reachable and then runs onReady. The
// error from onReady is returned unchanged. When the service cannot be
// started onReady is never called and a *SpawnError is returned.
func (s *Supervisor) EnsureRunning(ctx context.Context, onReady func(context.Context) error) error {
	s.once.Do(func() {
		s.err = s.ensure(ctx)
	})
	if s.err != nil {
		return s.err
	}
	if onReady == nil {
		return nil
	}
	return onReady(ctx)
}

func (s *Supervisor) ensure(ctx context.Context) error {
	logger := s.logger()
	if s.Prober.Probe(ctx) {
		logger.Debug("service reachable", logging.String("addr", s.Addr))
		return nil
	}

	locked, release := s.acquire(logger)
	if locked {
		defer release()
		logger.Info("starting bilrost service",
			logging.String(logging.FieldEventType, "service_launch"),
			logging.String("addr", s.Addr),
		)
		if err := s.Launcher.Launch(ctx); err != nil {
			logger.Error("service launch failed",
				logging.String(logging.FieldEventType, "service_launch_failed"),
				logging.String(logging.FieldErrorHint, "check service.command in the config file"),
				logging.Error(err),
			)
			return &SpawnError{Addr: s.Addr, Err: err}
		}
	} else {
		logger.Info("service launch in progress elsewhere; waiting",
			logging.String(logging.FieldEventType, "service_wait"),
			logging.String("addr", s.Addr),
		)
	}
	return s.waitReachable(ctx)
}

func (s *Supervisor) acquire(logger *slog.Logger) (bool, func()) {
	if s.Lock == nil {
		return true, func() {}
	}
	locked, err := s.Lock.TryLock()
	if err != nil {
		// An unusable lock file must not block the launch itself.
		logger.Warn("spawn lock unavailable",
			logging.String(logging.FieldEventType, "spawn_lock_error"),
			logging.Error(err),
		)
		return true, func() {}
	}
	if !locked {
		return false, func() {}
	}
	return true, func() { _ = s.Lock.Unlock() }
}

func (s *Supervisor) waitReachable(ctx context.Context) error {
	timeout := s.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	interval := s.PollInterval
	if interval <= 0 {
		interval = defaultPollInterval
	}

	deadline := time.NewTimer(timeout)
	defer deadline.Stop()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if s.Prober.Probe(ctx) {
			s.logger().Info("bilrost service ready",
				logging.String(logging.FieldEventType, "service_ready"),
				logging.String("addr", s.Addr),
			)
			return nil
		}
		select {
		case <-ctx.Done():
			return &SpawnError{Addr: s.Addr, Err: ctx.Err()}
		case <-deadline.C:
			return &SpawnError{Addr: s.Addr, Timeout: true, Err: fmt.Errorf("no answer after %s", timeout)}
		case <-ticker.C:
		}
	}
}

func (s *Supervisor) logger() *slog.Logger {
	if s.Logger == nil {
		return logging.NewNop()
	}
	return s.Logger
}
