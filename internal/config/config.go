// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/jeranaias/labdeck/internal/util"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete labdeck configuration.
type Config struct {
	// Enhance controls candidate selection and decoration.
	Enhance EnhanceConfig `toml:"enhance"`

	// Observe controls mutation debouncing.
	Observe ObserveConfig `toml:"observe"`

	// Bootstrap controls the root-element poll.
	Bootstrap BootstrapConfig `toml:"bootstrap"`

	// UI configuration for hosts.
	UI UIConfig `toml:"ui"`

	// Storage configuration.
	Storage StorageConfig `toml:"storage"`
}

// EnhanceConfig contains enhancement engine settings.
type EnhanceConfig struct {
	// Selector matches candidate elements. Candidates are opaque; only
	// this selector decides membership.
	Selector string `toml:"selector"`
	// ReducedMotion renders decorations in their final state immediately.
	ReducedMotion bool `toml:"reduced_motion"`
}

// ObserveConfig contains observation loop settings.
type ObserveConfig struct {
	// DebounceMS is the trailing-edge debounce window in milliseconds.
	DebounceMS int `toml:"debounce_ms"`
}

// BootstrapConfig contains startup poll settings.
type BootstrapConfig struct {
	// PollIntervalMS is the delay between root-element checks.
	PollIntervalMS int `toml:"poll_interval_ms"`
	// PollTimeoutMS is the hard deadline after which polling abandons.
	PollTimeoutMS int `toml:"poll_timeout_ms"`
	// MobileWidth is the viewport width below which the mobile class is
	// applied.
	MobileWidth int `toml:"mobile_width"`
}

// UIConfig contains host UI settings.
type UIConfig struct {
	// Theme is the initial theme name when no preference is persisted.
	Theme string `toml:"theme"`
	// DashboardPath is the HTML snapshot the demo host loads and watches.
	DashboardPath string `toml:"dashboard_path"`
}

// StorageConfig contains persistence settings.
type StorageConfig struct {
	// DBPath is the preference database location
	// (empty = ~/.labdeck/prefs.db).
	DBPath string `toml:"db_path"`
}

// =============================================================================
// DEFAULT CONFIGURATION
// =============================================================================

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Enhance: EnhanceConfig{
			Selector:      ".research-card",
			ReducedMotion: false,
		},
		Observe: ObserveConfig{
			DebounceMS: 250,
		},
		Bootstrap: BootstrapConfig{
			PollIntervalMS: 500,
			PollTimeoutMS:  10000,
			MobileWidth:    768,
		},
		UI: UIConfig{
			Theme:         "",
			DashboardPath: "dashboard.html",
		},
		Storage: StorageConfig{
			DBPath: "",
		},
	}
}

// DebounceWindow returns the debounce setting as a duration.
func (c *Config) DebounceWindow() time.Duration {
	return time.Duration(c.Observe.DebounceMS) * time.Millisecond
}

// PollInterval returns the poll interval as a duration.
func (c *Config) PollInterval() time.Duration {
	return time.Duration(c.Bootstrap.PollIntervalMS) * time.Millisecond
}

// PollTimeout returns the poll timeout as a duration.
func (c *Config) PollTimeout() time.Duration {
	return time.Duration(c.Bootstrap.PollTimeoutMS) * time.Millisecond
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// ConfigDir returns the labdeck configuration directory path.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".labdeck"), nil
}

// ConfigPath returns the path to the TOML config file.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// DBPath resolves the preference database location, honoring the config
// override.
func (c *Config) DBPath() (string, error) {
	if c.Storage.DBPath != "" {
		return c.Storage.DBPath, nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "prefs.db"), nil
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load loads configuration from ~/.labdeck/config.toml, falling back to
// defaults when the file is absent. Environment overrides are applied last.
func Load() (*Config, error) {
	cfg := Default()

	path, err := ConfigPath()
	if err == nil {
		if _, statErr := os.Stat(path); statErr == nil {
			if err := LoadTOML(cfg, path); err != nil {
				return nil, fmt.Errorf("failed to load config: %w", err)
			}
		}
	}

	cfg.ApplyEnvOverrides()
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadTOML loads configuration from a TOML file into cfg.
func LoadTOML(cfg *Config, path string) error {
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return fmt.Errorf("failed to decode TOML file: %w", err)
	}
	return nil
}

// LoadFromPath loads configuration from a specific file with full
// validation, for hosts that keep their config outside the home directory.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()
	if err := LoadTOML(cfg, path); err != nil {
		return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
	}
	cfg.ApplyEnvOverrides()
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// =============================================================================
// SAVE FUNCTIONS
// =============================================================================

// Save saves the configuration to the default TOML file.
func Save(cfg *Config) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return SaveTOML(cfg, path)
}

// SaveTOML saves the configuration to a TOML file. The write is atomic so
// a crash mid-save cannot leave a truncated config behind.
func SaveTOML(cfg *Config, path string) error {
	var buf bytes.Buffer
	fmt.Fprintln(&buf, "# labdeck configuration file")
	fmt.Fprintln(&buf, "# Generated by labdeck - edit with care")
	fmt.Fprintln(&buf, "")

	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if err := util.AtomicWriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors is a collection of validation errors.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// Validate validates the configuration and returns any errors.
func (c *Config) Validate() error {
	var errs ValidateErrors

	if strings.TrimSpace(c.Enhance.Selector) == "" {
		errs = append(errs, ValidationError{
			Field:   "enhance.selector",
			Message: "selector cannot be empty",
		})
	}

	if c.Observe.DebounceMS < 0 {
		errs = append(errs, ValidationError{
			Field:   "observe.debounce_ms",
			Message: "must be non-negative",
		})
	}

	if c.Bootstrap.PollIntervalMS <= 0 {
		errs = append(errs, ValidationError{
			Field:   "bootstrap.poll_interval_ms",
			Message: fmt.Sprintf("must be positive, got %d", c.Bootstrap.PollIntervalMS),
		})
	}
	if c.Bootstrap.PollTimeoutMS < c.Bootstrap.PollIntervalMS {
		errs = append(errs, ValidationError{
			Field:   "bootstrap.poll_timeout_ms",
			Message: "must be at least the poll interval",
		})
	}
	if c.Bootstrap.MobileWidth <= 0 {
		errs = append(errs, ValidationError{
			Field:   "bootstrap.mobile_width",
			Message: fmt.Sprintf("must be positive, got %d", c.Bootstrap.MobileWidth),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// SetDefaults fills zero-value fields with defaults, so partial config
// files keep the built-in behavior for everything they omit.
func (c *Config) SetDefaults() {
	defaults := Default()

	if c.Enhance.Selector == "" {
		c.Enhance.Selector = defaults.Enhance.Selector
	}
	if c.Observe.DebounceMS == 0 {
		c.Observe.DebounceMS = defaults.Observe.DebounceMS
	}
	if c.Bootstrap.PollIntervalMS == 0 {
		c.Bootstrap.PollIntervalMS = defaults.Bootstrap.PollIntervalMS
	}
	if c.Bootstrap.PollTimeoutMS == 0 {
		c.Bootstrap.PollTimeoutMS = defaults.Bootstrap.PollTimeoutMS
	}
	if c.Bootstrap.MobileWidth == 0 {
		c.Bootstrap.MobileWidth = defaults.Bootstrap.MobileWidth
	}
	if c.UI.DashboardPath == "" {
		c.UI.DashboardPath = defaults.UI.DashboardPath
	}
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies environment variable overrides to the config.
//
// Supported environment variables:
//   - LABDECK_THEME: overrides ui.theme
//   - LABDECK_REDUCED_MOTION: set to "1" or "true" to disable animation
//   - LABDECK_DB: overrides storage.db_path
//   - LABDECK_DASHBOARD: overrides ui.dashboard_path
//   - LABDECK_SELECTOR: overrides enhance.selector
//   - LABDECK_DEBOUNCE_MS: overrides observe.debounce_ms
func (c *Config) ApplyEnvOverrides() {
	if theme := os.Getenv("LABDECK_THEME"); theme != "" {
		c.UI.Theme = theme
	}

	if rm := os.Getenv("LABDECK_REDUCED_MOTION"); rm != "" {
		c.Enhance.ReducedMotion = rm == "1" || strings.ToLower(rm) == "true"
	}

	if db := os.Getenv("LABDECK_DB"); db != "" {
		c.Storage.DBPath = db
	}

	if dash := os.Getenv("LABDECK_DASHBOARD"); dash != "" {
		c.UI.DashboardPath = dash
	}

	if sel := os.Getenv("LABDECK_SELECTOR"); sel != "" {
		c.Enhance.Selector = sel
	}

	if ms := os.Getenv("LABDECK_DEBOUNCE_MS"); ms != "" {
		if v, err := strconv.Atoi(ms); err == nil && v >= 0 {
			c.Observe.DebounceMS = v
		}
	}
}

// =============================================================================
// SINGLETON PATTERN (THREAD-SAFE)
// =============================================================================

var (
	globalConfig     *Config
	globalConfigOnce sync.Once
	globalConfigMu   sync.RWMutex
)

// Global returns the global configuration instance.
// Loads configuration on first access. Thread-safe.
func Global() *Config {
	globalConfigOnce.Do(func() {
		cfg, err := Load()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v (using defaults)\n", err)
			cfg = Default()
			cfg.ApplyEnvOverrides()
		}
		globalConfig = cfg
	})

	globalConfigMu.RLock()
	defer globalConfigMu.RUnlock()
	return globalConfig
}

// SetGlobal sets the global configuration instance. Thread-safe.
func SetGlobal(cfg *Config) {
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = cfg
}

// ResetGlobalForTesting resets the global config state for testing.
func ResetGlobalForTesting() {
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = nil
	globalConfigOnce = sync.Once{}
}
