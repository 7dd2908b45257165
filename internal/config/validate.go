package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateSonarr(); err != nil {
		return err
	}
	if err := c.validateSelection(); err != nil {
		return err
	}
	if err := c.validateOutput(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateSonarr() error {
	if c.Sonarr.URL == "" {
		return errors.New("sonarr.url is required")
	}
	parsed, err := url.Parse(c.Sonarr.URL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("sonarr.url %q must be an absolute http(s) URL", c.Sonarr.URL)
	}
	if c.Sonarr.APIKey == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			defaultPath = defaultConfigPath
		}
		return fmt.Errorf("sonarr.api_key is required. Set SONARR_API_KEY env var or edit %s (create with 'nssk config init')", defaultPath)
	}
	if c.Sonarr.TimeoutSeconds < 0 {
		return errors.New("sonarr.timeout_seconds must be positive")
	}
	if c.Sonarr.RequestsPerSecond < 0 {
		return errors.New("sonarr.requests_per_second must not be negative")
	}
	return nil
}

func (c *Config) validateSelection() error {
	if c.Selection.FutureDays < 0 {
		return errors.New("selection.future_days must be zero or greater")
	}
	return nil
}

func (c *Config) validateOutput() error {
	if strings.ContainsAny(c.Output.OverlayFile, `/\`) {
		return errors.New("output.overlay_file must be a file name, not a path")
	}
	if strings.ContainsAny(c.Output.CollectionFile, `/\`) {
		return errors.New("output.collection_file must be a file name, not a path")
	}
	if c.Output.OverlayFile == c.Output.CollectionFile {
		return errors.New("output.overlay_file and output.collection_file must differ")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}
