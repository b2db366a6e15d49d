package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizeService(); err != nil {
		return err
	}
	if err := c.normalizePaths(); err != nil {
		return err
	}
	return c.normalizeLogging()
}

func (c *Config) normalizeService() error {
	if value, ok := os.LookupEnv(envServiceCommand); ok && strings.TrimSpace(value) != "" {
		c.Service.Command = strings.TrimSpace(value)
	}
	if value, ok := os.LookupEnv(envServicePort); ok && strings.TrimSpace(value) != "" {
		port, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("%s: invalid port %q", envServicePort, value)
		}
		c.Service.Port = port
	}
	c.Service.Host = strings.TrimSpace(c.Service.Host)
	if c.Service.Host == "" {
		c.Service.Host = defaultServiceHost
	}
	c.Service.Command = strings.TrimSpace(c.Service.Command)
	if c.Service.PollIntervalMS <= 0 {
		c.Service.PollIntervalMS = defaultPollIntervalMS
	}
	var err error
	if strings.TrimSpace(c.Service.LogPath) == "" {
		c.Service.LogPath = defaultServiceLogPath
	}
	if c.Service.LogPath, err = expandPath(c.Service.LogPath); err != nil {
		return fmt.Errorf("service.log_path: %w", err)
	}
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.StateDir) == "" {
		c.Paths.StateDir = defaultStateDir
	}
	if c.Paths.StateDir, err = expandPath(c.Paths.StateDir); err != nil {
		return fmt.Errorf("paths.state_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeLogging() error {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	c.Logging.File = strings.TrimSpace(c.Logging.File)
	switch c.Logging.File {
	case "", "stdout", "stderr":
		return nil
	}
	var err error
	if c.Logging.File, err = expandPath(c.Logging.File); err != nil {
		return fmt.Errorf("logging.file: %w", err)
	}
	return nil
}
