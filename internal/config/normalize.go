package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	c.normalizeSonarr()
	c.normalizeSelection()
	if err := c.normalizeOutput(); err != nil {
		return err
	}
	c.normalizeCollection()
	c.normalizeLogging()
	c.Notifications.NtfyTopic = strings.TrimSpace(c.Notifications.NtfyTopic)
	if c.Notifications.RequestTimeout <= 0 {
		c.Notifications.RequestTimeout = defaultNotifyTimeout
	}
	if c.Backdrop == nil {
		c.Backdrop = map[string]any{}
	}
	if c.Text == nil {
		c.Text = map[string]any{}
	}
	return nil
}

func (c *Config) normalizeSonarr() {
	if strings.TrimSpace(c.Sonarr.APIKey) == "" {
		if value, ok := os.LookupEnv("SONARR_API_KEY"); ok {
			c.Sonarr.APIKey = value
		}
	}
	c.Sonarr.APIKey = strings.TrimSpace(c.Sonarr.APIKey)
	c.Sonarr.URL = strings.TrimRight(strings.TrimSpace(c.Sonarr.URL), "/")
	if c.Sonarr.TimeoutSeconds == 0 {
		c.Sonarr.TimeoutSeconds = defaultSonarrTimeout
	}
}

func (c *Config) normalizeSelection() {
	c.Selection.skipUnmonitored = ParseFlag(c.Selection.SkipUnmonitored)
}

// ParseFlag interprets a loosely typed boolean: only a value whose string form
// is "true" (case-insensitive) counts as enabled. Nil means false.
func ParseFlag(value any) bool {
	if value == nil {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(fmt.Sprint(value)), "true")
}

func (c *Config) normalizeOutput() error {
	if strings.TrimSpace(c.Output.Dir) == "" {
		c.Output.Dir = defaultOutputDir
	}
	var err error
	if c.Output.Dir, err = expandPath(c.Output.Dir); err != nil {
		return fmt.Errorf("output.dir: %w", err)
	}
	c.Output.OverlayFile = strings.TrimSpace(c.Output.OverlayFile)
	if c.Output.OverlayFile == "" {
		c.Output.OverlayFile = defaultOverlayFile
	}
	c.Output.CollectionFile = strings.TrimSpace(c.Output.CollectionFile)
	if c.Output.CollectionFile == "" {
		c.Output.CollectionFile = defaultCollectionFile
	}
	return nil
}

func (c *Config) normalizeCollection() {
	if strings.TrimSpace(c.Collection.Name) == "" {
		c.Collection.Name = defaultCollectionName
	}
	if c.Collection.SortTitle == "" {
		c.Collection.SortTitle = defaultSortTitle
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	c.Logging.File = strings.TrimSpace(c.Logging.File)
}
