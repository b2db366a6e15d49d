package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"golang.org/x/sys/unix"
)

// Service describes the background service the CLI depends on.
type Service struct {
	Host           string   `toml:"host"`
	Port           int      `toml:"port"`
	Command        string   `toml:"command"`
	Args           []string `toml:"args"`
	StartTimeout   int      `toml:"start_timeout"`
	PollIntervalMS int      `toml:"poll_interval_ms"`
	LogPath        string   `toml:"log_path"`
}

// Paths contains local state locations.
type Paths struct {
	StateDir string `toml:"state_dir"`
}

// Backend contains request settings for the remote action client.
type Backend struct {
	RequestTimeout int `toml:"request_timeout"`
}

// Logging contains configuration for diagnostic log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
	// File, when set, receives diagnostics instead of stderr. "stdout" and
	// "stderr" name the standard streams.
	File string `toml:"file"`
}

// Config encapsulates all configuration values for the Bilrost CLI.
//
// Configuration sections:
//   - Service: address and launch command of the background service
//   - Paths: local state (favorites registry, spawn lock)
//   - Backend: request timeouts
//   - Logging: diagnostic log format, level and destination
type Config struct {
	Service Service `toml:"service"`
	Paths   Paths   `toml:"paths"`
	Backend Backend `toml:"backend"`
	Logging Logging `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigPath)
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := expandPath(defaultConfigPath)
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("bilrost.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the state directory and checks that it is writable.
func (c *Config) EnsureDirectories() error {
	dirs := []string{c.Paths.StateDir}
	if logDir := filepath.Dir(c.Service.LogPath); c.Service.LogPath != "" && logDir != "." {
		dirs = append(dirs, logDir)
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	if err := unix.Access(c.Paths.StateDir, unix.W_OK|unix.X_OK); err != nil {
		return fmt.Errorf("state directory %q is not writable: %w", c.Paths.StateDir, err)
	}
	return nil
}

// ServiceAddr returns the host:port the background service listens on.
func (c *Config) ServiceAddr() string {
	return net.JoinHostPort(c.Service.Host, strconv.Itoa(c.Service.Port))
}

// BackendURL returns the base URL of the backend HTTP API.
func (c *Config) BackendURL() string {
	return "http://" + c.ServiceAddr()
}

// StartTimeout returns how long the CLI waits for a freshly launched service.
func (c *Config) StartTimeout() time.Duration {
	return time.Duration(c.Service.StartTimeout) * time.Second
}

// PollInterval returns the delay between service reachability probes.
func (c *Config) PollInterval() time.Duration {
	return time.Duration(c.Service.PollIntervalMS) * time.Millisecond
}

// RequestTimeout returns the per-request timeout for backend calls.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.Backend.RequestTimeout) * time.Second
}

// FavoritesPath returns the favorites registry database location.
func (c *Config) FavoritesPath() string {
	return filepath.Join(c.Paths.StateDir, "favorites.db")
}

// SpawnLockPath returns the lock file guarding service launches.
func (c *Config) SpawnLockPath() string {
	return filepath.Join(c.Paths.StateDir, "service.lock")
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}
