package config

import (
	"errors"
	"fmt"
)

func (m *Manager) validate(cfg *Config) error {
	// app
	validLevels := map[string]bool{"trace": true, "debug": true, "info": true, "warn": true, "error": true}
	if cfg.App.LogLevel != "" && !validLevels[cfg.App.LogLevel] {
		return fmt.Errorf("app.log_level must be one of trace, debug, info, warn, error; got %s", cfg.App.LogLevel)
	}
	validModes := map[string]bool{"debug": true, "release": true, "test": true}
	if cfg.App.GinMode != "" && !validModes[cfg.App.GinMode] {
		return fmt.Errorf("app.gin_mode must be one of debug, release, test; got %s", cfg.App.GinMode)
	}

	// dictionaries
	if cfg.Dictionaries == nil {
		cfg.Dictionaries = make(map[string]string)
	}
	for name, path := range cfg.Dictionaries {
		if name == "" {
			return errors.New("dictionaries: name is required")
		}
		if path == "" {
			return fmt.Errorf("dictionaries.%s: path is required", name)
		}
	}

	// server
	if cfg.Server.Addr == "" {
		return errors.New("server.addr is required")
	}
	if cfg.Server.RateLimit < 0 {
		return errors.New("server.rate_limit must be >= 0")
	}
	if cfg.Server.RateLimit > 0 && cfg.Server.Burst < 1 {
		return errors.New("server.burst must be >= 1 when server.rate_limit is set")
	}
	if cfg.Server.MaxBody < 0 {
		return errors.New("server.max_body must be >= 0")
	}

	// cache
	if cfg.Cache.Capacity < 0 {
		return errors.New("cache.capacity must be >= 0")
	}
	if cfg.Cache.TTLSecs < 0 {
		return errors.New("cache.ttl_secs must be >= 0")
	}

	return nil
}
