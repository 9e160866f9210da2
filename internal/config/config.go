package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"pickgrip/internal/domain"
	"pickgrip/internal/eventbus"
	"pickgrip/internal/selection"
)

// FileName is the per-directory configuration file
const FileName = ".pickgrip.toml"

// Config represents the application configuration
type Config struct {
	Version   int             `toml:"version"`
	Source    SourceSettings  `toml:"source"`
	Selection SelectionConfig `toml:"selection"`
	UI        UISettings      `toml:"ui"`
}

// SourceSettings controls which entries become selectable items
type SourceSettings struct {
	Dir        string   `toml:"dir"`
	Pattern    string   `toml:"pattern"`
	Exclude    []string `toml:"exclude"`
	MaxDepth   int      `toml:"max_depth"`
	ShowHidden bool     `toml:"show_hidden"`
}

// SelectionConfig controls how items are addressed and reflected
type SelectionConfig struct {
	AttrForSelected   string `toml:"attr_for_selected"`
	Selected          any    `toml:"selected,omitempty"`
	Fallback          any    `toml:"fallback,omitempty"`
	SelectedClass     string `toml:"selected_class"`
	SelectedAttribute string `toml:"selected_attribute"`
	DisabledAttribute string `toml:"disabled_attribute"`
}

// UISettings represents UI-related configuration
type UISettings struct {
	ShowIndex         bool `toml:"show_index"`
	RememberSelection bool `toml:"remember_selection"`
}

// Mapper returns the settings for the selection mapper
func (c *Config) Mapper() selection.Config {
	return selection.Config{
		AttrForSelected:   c.Selection.AttrForSelected,
		Fallback:          c.Selection.Fallback,
		SelectedClass:     c.Selection.SelectedClass,
		SelectedAttribute: c.Selection.SelectedAttribute,
	}
}

// ScanRoot resolves the source directory against the directory holding
// the configuration file
func (c *Config) ScanRoot(base string) string {
	if c.Source.Dir == "" {
		return base
	}
	if filepath.IsAbs(c.Source.Dir) {
		return c.Source.Dir
	}
	return filepath.Join(base, c.Source.Dir)
}

// Validate checks the values a scan or the mapper cannot work with
func (c *Config) Validate() error {
	var errs []error
	if c.Version != 1 {
		errs = append(errs, fmt.Errorf("unsupported config version %d", c.Version))
	}
	if c.Source.MaxDepth < 0 {
		errs = append(errs, fmt.Errorf("max_depth must not be negative, got %d", c.Source.MaxDepth))
	}
	if c.Source.Pattern != "" {
		if _, err := filepath.Match(c.Source.Pattern, ""); err != nil {
			errs = append(errs, fmt.Errorf("invalid pattern %q: %w", c.Source.Pattern, err))
		}
	}
	return errors.Join(errs...)
}

// ConfigService handles configuration management
type ConfigService interface {
	Load(dir string) (*Config, error)
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
}

// configService is the concrete implementation
type configService struct {
	bus eventbus.EventBus
}

// NewConfigService creates a new config service
func NewConfigService() ConfigService {
	return &configService{}
}

// NewConfigServiceWithBus creates a config service with event bus support
func NewConfigServiceWithBus(bus eventbus.EventBus) ConfigService {
	return &configService{bus: bus}
}

// Load loads the configuration file of dir, or the defaults for dir when
// there is none
func (cs *configService) Load(dir string) (*Config, error) {
	path := filepath.Join(dir, FileName)
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return DefaultConfig(), nil
	}
	return cs.LoadFromPath(path)
}

// LoadFromPath loads configuration from a specific path. Keys missing from
// the file keep their default values
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	if cs.bus != nil {
		cs.bus.Publish(domain.ConfigLoadedEvent{Path: path})
	}
	return cfg, nil
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	if cs.bus != nil {
		cs.bus.Publish(domain.ConfigSavedEvent{Path: path})
	}
	return nil
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		Source: SourceSettings{
			Dir:      ".",
			Pattern:  "*",
			Exclude:  []string{".git", "node_modules", "vendor"},
			MaxDepth: 1,
		},
		Selection: SelectionConfig{
			AttrForSelected:   "name",
			SelectedClass:     "selected",
			SelectedAttribute: "aria-selected",
			DisabledAttribute: "disabled",
		},
		UI: UISettings{
			ShowIndex:         true,
			RememberSelection: true,
		},
	}
}
