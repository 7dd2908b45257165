package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Sonarr contains connection settings for the Sonarr API.
type Sonarr struct {
	URL               string  `toml:"url"`
	APIKey            string  `toml:"api_key"`
	TimeoutSeconds    int     `toml:"timeout_seconds"`
	RequestsPerSecond float64 `toml:"requests_per_second"`
}

// Selection contains the premiere matching knobs.
type Selection struct {
	FutureDays int `toml:"future_days"`
	// SkipUnmonitored accepts a TOML bool or a "true"/"false" string.
	SkipUnmonitored any `toml:"skip_unmonitored"`

	skipUnmonitored bool
}

// SkipUnmonitoredEnabled reports the normalized skip_unmonitored value.
func (s Selection) SkipUnmonitoredEnabled() bool {
	return s.skipUnmonitored
}

// SetSkipUnmonitored overrides the normalized skip_unmonitored value.
func (s *Selection) SetSkipUnmonitored(value bool) {
	s.skipUnmonitored = value
	s.SkipUnmonitored = value
}

// Output contains destination paths for generated Kometa files.
type Output struct {
	Dir            string `toml:"dir"`
	OverlayFile    string `toml:"overlay_file"`
	CollectionFile string `toml:"collection_file"`
}

// Collection contains the collection document settings.
type Collection struct {
	Name      string `toml:"name"`
	SortTitle string `toml:"sort_title"`
}

// Notifications contains configuration for ntfy push notifications.
type Notifications struct {
	NtfyTopic      string `toml:"ntfy_topic"`
	RequestTimeout int    `toml:"request_timeout"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
	File   string `toml:"file"`
}

// Config encapsulates all configuration values for NSSK.
//
// Configuration sections by subsystem:
//   - Sonarr: API root, credential, request timeout and pacing
//   - Selection: look-ahead window and unmonitored handling
//   - Output: where the overlay and collection files are written
//   - Collection: collection name and sort title
//   - Backdrop/Text: free-form overlay fragments passed through to Kometa
//   - Notifications: optional ntfy push after a run
//   - Logging: log format, level, and optional file
type Config struct {
	Sonarr        Sonarr         `toml:"sonarr"`
	Selection     Selection      `toml:"selection"`
	Output        Output         `toml:"output"`
	Collection    Collection     `toml:"collection"`
	Backdrop      map[string]any `toml:"backdrop"`
	Text          map[string]any `toml:"text"`
	Notifications Notifications  `toml:"notifications"`
	Logging       Logging        `toml:"logging"`

	// BackdropKeys and TextKeys keep the fragments' key order when the file
	// format records one. TOML tables leave them empty.
	BackdropKeys []string `toml:"-"`
	TextKeys     []string `toml:"-"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigPath)
}

// Load locates, parses, and validates a configuration file. A missing file is
// an error; NSSK cannot run without Sonarr credentials.
func Load(path string) (*Config, string, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", err
	}
	if !exists {
		return nil, resolvedPath, fmt.Errorf("config file %s not found (create one with 'nssk config init')", resolvedPath)
	}

	if isLegacyPath(resolvedPath) {
		if err := decodeLegacy(resolvedPath, &cfg); err != nil {
			return nil, resolvedPath, err
		}
	} else if err := decodeTOML(resolvedPath, &cfg); err != nil {
		return nil, resolvedPath, err
	}

	if err := cfg.normalize(); err != nil {
		return nil, resolvedPath, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, resolvedPath, err
	}
	return &cfg, resolvedPath, nil
}

func decodeTOML(path string, cfg *Config) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	decoder := toml.NewDecoder(file)
	if err := decoder.Decode(cfg); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}
	return nil
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
	candidates := []string{defaultPath}
	for _, name := range []string{projectConfigName, legacyConfigName} {
		abs, err := filepath.Abs(name)
		if err != nil {
			return "", false, err
		}
		candidates = append(candidates, abs)
	}
	for _, candidate := range candidates {
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, true, nil
		}
	}
	return defaultPath, false, nil
}

// OverlayPath returns the absolute path of the overlay document.
func (c *Config) OverlayPath() string {
	return filepath.Join(c.Output.Dir, c.Output.OverlayFile)
}

// CollectionPath returns the absolute path of the collection document.
func (c *Config) CollectionPath() string {
	return filepath.Join(c.Output.Dir, c.Output.CollectionFile)
}

// LockPath returns the run lock location inside the output directory.
func (c *Config) LockPath() string {
	return filepath.Join(c.Output.Dir, ".nssk.lock")
}

// EnsureDirectories creates the output directory.
func (c *Config) EnsureDirectories() error {
	if err := os.MkdirAll(c.Output.Dir, 0o755); err != nil {
		return fmt.Errorf("create directory %q: %w", c.Output.Dir, err)
	}
	return nil
}

// Encode renders the effective configuration as TOML. The API key is masked.
func (c *Config) Encode() ([]byte, error) {
	clone := *c
	if clone.Sonarr.APIKey != "" {
		clone.Sonarr.APIKey = "********"
	}
	clone.Selection.SkipUnmonitored = clone.Selection.skipUnmonitored
	data, err := toml.Marshal(clone)
	if err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	return data, nil
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

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
