package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"bilrost/internal/backend"
	"bilrost/internal/config"
	"bilrost/internal/favorites"
	"bilrost/internal/logging"
	"bilrost/internal/refs"
	"bilrost/internal/supervisor"
	"bilrost/internal/workspace"
)

// Options are the global flags, resolved once per invocation.
type Options struct {
	// Pwd is the directory workspace lookups start from.
	Pwd string
	// Output, when set, redirects console output to "<Output>.log".
	Output string
	// ServiceOutput shows the launched service's output in the terminal.
	ServiceOutput bool
	ConfigPath    string
}

type serviceSupervisor interface {
	EnsureRunning(ctx context.Context, onReady func(context.Context) error) error
}

type workspaceRegistry interface {
	workspace.Registry
	Add(ctx context.Context, name, dir string) (*favorites.Workspace, error)
	Get(ctx context.Context, identifier string) (*favorites.Workspace, error)
	Remove(ctx context.Context, identifier string) error
	RemoveAll(ctx context.Context) (int64, error)
	Close() error
}

// dependencies are the collaborators a command context builds lazily.
// Tests replace them with fakes.
type dependencies struct {
	newSupervisor func(cfg *config.Config, opts supervisor.LaunchOptions, logger *slog.Logger) (serviceSupervisor, error)
	newActions    func(cfg *config.Config, logger *slog.Logger) backend.Actions
	openRegistry  func(cfg *config.Config) (workspaceRegistry, error)
	getwd         func() (string, error)
}

func defaultDependencies() dependencies {
	return dependencies{
		newSupervisor: func(cfg *config.Config, opts supervisor.LaunchOptions, logger *slog.Logger) (serviceSupervisor, error) {
			return supervisor.New(cfg, opts, logger)
		},
		newActions: func(cfg *config.Config, logger *slog.Logger) backend.Actions {
			return backend.NewFromConfig(cfg, logger)
		},
		openRegistry: func(cfg *config.Config) (workspaceRegistry, error) {
			return favorites.Open(cfg)
		},
		getwd: os.Getwd,
	}
}

type commandContext struct {
	deps   dependencies
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	opts    Options
	pwdFlag string
	console *logging.Console

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger

	supervisorOnce sync.Once
	sup            serviceSupervisor
	supErr         error

	actionsOnce sync.Once
	actions     backend.Actions

	registryOnce sync.Once
	registry     workspaceRegistry
	registryErr  error
}

func newCommandContext(deps dependencies, stdin io.Reader, stdout, stderr io.Writer) *commandContext {
	return &commandContext{
		deps:    deps,
		stdin:   stdin,
		stdout:  stdout,
		stderr:  stderr,
		console: logging.NewConsole(stdout, stderr, shouldColorize(stderr)),
	}
}

// resolveOptions finalizes the global flags after parsing.
func (c *commandContext) resolveOptions() error {
	cwd, err := c.deps.getwd()
	if err != nil {
		return fmt.Errorf("determine working directory: %w", err)
	}
	c.opts.Pwd = cwd
	if pwd := strings.TrimSpace(c.pwdFlag); pwd != "" {
		c.opts.Pwd = refs.ResolvePath(cwd, pwd)
	}
	if c.opts.Output != "" {
		if err := c.console.RedirectToFile(c.opts.Output); err != nil {
			return fmt.Errorf("redirect output: %w", err)
		}
	}
	return nil
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		cfg, _, _, err := config.Load(strings.TrimSpace(c.opts.ConfigPath))
		if err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) diagnostics() *slog.Logger {
	c.loggerOnce.Do(func() {
		cfg, _ := c.ensureConfig()
		logger, err := logging.NewFromConfig(cfg, c.stderr)
		if err != nil {
			logger, _ = logging.NewFromConfig(nil, c.stderr)
		}
		c.logger = logger
	})
	return c.logger
}

func (c *commandContext) supervisor() (serviceSupervisor, error) {
	c.supervisorOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.supErr = err
			return
		}
		c.sup, c.supErr = c.deps.newSupervisor(cfg, supervisor.LaunchOptions{Terminal: c.opts.ServiceOutput}, c.diagnostics())
	})
	return c.sup, c.supErr
}

func (c *commandContext) backend() (backend.Actions, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	c.actionsOnce.Do(func() {
		c.actions = c.deps.newActions(cfg, c.diagnostics())
	})
	return c.actions, nil
}

func (c *commandContext) workspaces() (workspaceRegistry, error) {
	c.registryOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.registryErr = err
			return
		}
		c.registry, c.registryErr = c.deps.openRegistry(cfg)
	})
	return c.registry, c.registryErr
}

func (c *commandContext) locator() (*workspace.Locator, error) {
	reg, err := c.workspaces()
	if err != nil {
		return nil, err
	}
	return workspace.NewLocator(reg), nil
}

// identifier returns explicit or the workspace enclosing dir (default --pwd).
func (c *commandContext) identifier(ctx context.Context, explicit, dir string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	if dir == "" {
		dir = c.opts.Pwd
	}
	loc, err := c.locator()
	if err != nil {
		return "", err
	}
	return loc.Resolve(ctx, "", dir)
}

// withBackend resolves the workspace identifier and the action client.
func (c *commandContext) withBackend(ctx context.Context, inv *invocation, fn func(backend.Actions, string) (any, error)) error {
	id, err := c.identifier(ctx, inv.String("identifier"), "")
	if err != nil {
		return err
	}
	actions, err := c.backend()
	if err != nil {
		return err
	}
	result, err := fn(actions, id)
	if err != nil {
		return err
	}
	return c.print(result)
}

// call runs a workspace-independent remote action and prints its result.
func (c *commandContext) call(fn func(backend.Actions) (any, error)) error {
	actions, err := c.backend()
	if err != nil {
		return err
	}
	result, err := fn(actions)
	if err != nil {
		return err
	}
	return c.print(result)
}

func (c *commandContext) print(result any) error {
	switch v := result.(type) {
	case nil:
		return nil
	case string:
		c.console.Info("%s", v)
		return nil
	default:
		return writeJSON(c.console.Out(), v)
	}
}

func (c *commandContext) close() {
	if c.registry != nil {
		_ = c.registry.Close()
	}
	_ = c.console.Close()
}
