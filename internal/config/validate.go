package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateService(); err != nil {
		return err
	}
	if err := c.validateBackend(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateService() error {
	if c.Service.Port <= 0 || c.Service.Port > 65535 {
		return fmt.Errorf("service.port must be between 1 and 65535, got %d", c.Service.Port)
	}
	if c.Service.Command == "" {
		return fmt.Errorf("service.command must be set (or export %s)", envServiceCommand)
	}
	if c.Service.StartTimeout <= 0 {
		return errors.New("service.start_timeout must be positive (seconds)")
	}
	if c.Service.PollIntervalMS > maxPollIntervalMS {
		return fmt.Errorf("service.poll_interval_ms must be at most %d", maxPollIntervalMS)
	}
	return nil
}

func (c *Config) validateBackend() error {
	if c.Backend.RequestTimeout <= 0 {
		return errors.New("backend.request_timeout must be positive (seconds)")
	}
	return nil
}
