package main

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"bilrost/internal/backend"
	"bilrost/internal/config"
	"bilrost/internal/favorites"
	"bilrost/internal/supervisor"
	"bilrost/internal/testsupport"
)

type fakeSupervisor struct {
	calls int
	err   error
}

func (f *fakeSupervisor) EnsureRunning(ctx context.Context, onReady func(context.Context) error) error {
	f.calls++
	if f.err != nil {
		return f.err
	}
	return onReady(ctx)
}

type cliTestEnv struct {
	cfg        *config.Config
	configPath string
	baseDir    string
	// workspaceDir is registered as "game".
	workspaceDir string
	cwd          string
	store        *favorites.Store
	actions      *testsupport.FakeActions
	sup          *fakeSupervisor
	// launch records the options the supervisor was built with.
	launch supervisor.LaunchOptions
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	cfg := testsupport.NewConfig(t)
	base := testsupport.BaseDir(cfg)
	t.Setenv("HOME", filepath.Join(base, "home"))

	configPath := filepath.Join(base, "bilrost.toml")
	writeTestConfig(t, configPath, cfg)

	store := testsupport.MustOpenFavorites(t, cfg)
	wsDir := filepath.Join(base, "game")
	testsupport.AddWorkspace(t, store, "game", wsDir)

	return &cliTestEnv{
		cfg:          cfg,
		configPath:   configPath,
		baseDir:      base,
		workspaceDir: wsDir,
		cwd:          wsDir,
		store:        store,
		actions:      testsupport.NewFakeActions(),
		sup:          &fakeSupervisor{},
	}
}

func (e *cliTestEnv) deps() dependencies {
	return dependencies{
		newSupervisor: func(_ *config.Config, opts supervisor.LaunchOptions, _ *slog.Logger) (serviceSupervisor, error) {
			e.launch = opts
			return e.sup, nil
		},
		newActions: func(*config.Config, *slog.Logger) backend.Actions {
			return e.actions
		},
		openRegistry: func(cfg *config.Config) (workspaceRegistry, error) {
			return favorites.Open(cfg)
		},
		getwd: func() (string, error) { return e.cwd, nil },
	}
}

// runCLI executes one invocation with stdin as the terminal input.
func runCLI(t *testing.T, env *cliTestEnv, stdin string, args ...string) (string, string, int) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	app := newCommandContext(env.deps(), strings.NewReader(stdin), &stdout, &stderr)
	code := app.execute(context.Background(), append([]string{"--config", env.configPath}, args...))
	return stdout.String(), stderr.String(), code
}

func writeTestConfig(t *testing.T, path string, cfg *config.Config) {
	t.Helper()
	data, err := toml.Marshal(cfg)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}

func requireCall(t *testing.T, actions *testsupport.FakeActions, method string, args ...any) {
	t.Helper()
	call, ok := actions.Last(method)
	if !ok {
		t.Fatalf("expected %s call, got %v", method, actions.Methods())
	}
	if len(call.Args) < len(args) {
		t.Fatalf("%s called with %v, want prefix %v", method, call.Args, args)
	}
	for i, want := range args {
		if call.Args[i] != want {
			t.Fatalf("%s arg %d = %#v, want %#v", method, i, call.Args[i], want)
		}
	}
}
