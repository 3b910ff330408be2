package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"
)

// Sentinel validation errors. Callers can match with errors.Is.
var (
	ErrInvalidBaseURL  = errors.New("invalid base_url")
	ErrInvalidDuration = errors.New("invalid duration")
	ErrInvalidDirs     = errors.New("invalid dirs")
)

// Validate checks the configuration for values that would make a build
// impossible or produce a broken site.
func Validate(cfg *Config) error {
	if cfg.Site.BaseURL != "" {
		u, err := url.Parse(cfg.Site.BaseURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("%w: %q (expected absolute URL like https://example.com)", ErrInvalidBaseURL, cfg.Site.BaseURL)
		}
	}

	if cfg.Dirs.Output == cfg.Dirs.Content {
		return fmt.Errorf("%w: output directory must differ from content directory", ErrInvalidDirs)
	}
	if strings.HasPrefix(cfg.Dirs.Content, cfg.Dirs.Output+"/") {
		return fmt.Errorf("%w: content directory cannot live inside the output directory", ErrInvalidDirs)
	}

	for _, field := range []struct {
		name  string
		value string
	}{
		{"server.quiet_window", cfg.Server.QuietWindow},
		{"server.max_delay", cfg.Server.MaxDelay},
		{"server.rebuild_every", cfg.Server.RebuildEvery},
	} {
		if field.value == "" {
			continue
		}
		if _, err := time.ParseDuration(field.value); err != nil {
			return fmt.Errorf("%w: %s=%q", ErrInvalidDuration, field.name, field.value)
		}
	}

	return nil
}

// Duration parses a duration config field that has already passed Validate.
func Duration(value string, fallback time.Duration) time.Duration {
	if value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return d
}
