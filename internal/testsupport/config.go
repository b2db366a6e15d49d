package testsupport

import (
	"path/filepath"
	"testing"

	"bilrost/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// The service port is left at the default; tests that probe a real listener
// override it with WithServiceAddr.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.StateDir = filepath.Join(base, "state")
	cfgVal.Service.LogPath = filepath.Join(base, "state", "service.log")
	cfgVal.Service.Command = "/bin/true"
	cfgVal.Service.StartTimeout = 1
	cfgVal.Service.PollIntervalMS = 10

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}
	for _, opt := range opts {
		opt(builder)
	}
	return builder.cfg
}

// WithServiceAddr points the service section at host:port.
func WithServiceAddr(host string, port int) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Service.Host = host
		b.cfg.Service.Port = port
	}
}

// WithServiceCommand overrides the launched service command.
func WithServiceCommand(command string, args ...string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Service.Command = command
		b.cfg.Service.Args = args
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.StateDir)
}
