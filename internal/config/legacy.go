package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// legacyConfig mirrors the flat config.yml layout of earlier releases.
type legacyConfig struct {
	SonarrURL       string         `yaml:"sonarr_url"`
	SonarrAPIKey    string         `yaml:"sonarr_api_key"`
	FutureDays      *int           `yaml:"future_days"`
	SkipUnmonitored any            `yaml:"skip_unmonitored"`
	CollectionName  string         `yaml:"collection_name"`
	SortTitle       string         `yaml:"sort_title"`
	Backdrop        yaml.Node      `yaml:"backdrop"`
	Text            yaml.Node      `yaml:"text"`
}

func isLegacyPath(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yml", ".yaml":
		return true
	default:
		return false
	}
}

func decodeLegacy(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("open config: %w", err)
	}
	var legacy legacyConfig
	if err := yaml.Unmarshal(data, &legacy); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}
	if strings.TrimSpace(legacy.SonarrURL) == "" {
		return fmt.Errorf("parse config: missing required key sonarr_url")
	}
	if strings.TrimSpace(legacy.SonarrAPIKey) == "" {
		return fmt.Errorf("parse config: missing required key sonarr_api_key")
	}
	if legacy.FutureDays == nil {
		return fmt.Errorf("parse config: missing required key future_days")
	}

	cfg.Sonarr.URL = legacy.SonarrURL
	cfg.Sonarr.APIKey = legacy.SonarrAPIKey
	cfg.Selection.FutureDays = *legacy.FutureDays
	if legacy.SkipUnmonitored != nil {
		cfg.Selection.SkipUnmonitored = legacy.SkipUnmonitored
	}
	if legacy.CollectionName != "" {
		cfg.Collection.Name = legacy.CollectionName
	}
	if legacy.SortTitle != "" {
		cfg.Collection.SortTitle = legacy.SortTitle
	}
	if cfg.Backdrop, cfg.BackdropKeys, err = decodeFragment(&legacy.Backdrop, "backdrop"); err != nil {
		return err
	}
	if cfg.Text, cfg.TextKeys, err = decodeFragment(&legacy.Text, "text"); err != nil {
		return err
	}
	// Legacy runs wrote next to the config file.
	cfg.Output.Dir = filepath.Dir(path)
	return nil
}

// decodeFragment decodes a free-form mapping and returns its keys in document
// order.
func decodeFragment(node *yaml.Node, key string) (map[string]any, []string, error) {
	switch {
	case node.Kind == 0:
		return nil, nil, nil
	case node.Kind == yaml.ScalarNode && node.Tag == "!!null":
		return nil, nil, nil
	case node.Kind != yaml.MappingNode:
		return nil, nil, fmt.Errorf("parse config: %s must be a mapping", key)
	}
	var values map[string]any
	if err := node.Decode(&values); err != nil {
		return nil, nil, fmt.Errorf("parse config: %s: %w", key, err)
	}
	keys := make([]string, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		keys = append(keys, node.Content[i].Value)
	}
	return values, keys, nil
}
