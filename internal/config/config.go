// Package config loads and validates the style-guide build configuration.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	ferrors "git.home.luguber.info/inful/styleguide/internal/foundation/errors"
)

// DefaultFileName is the configuration file looked up when none is given.
const DefaultFileName = "styleguide.yml"

// Config is the on-disk build configuration.
type Config struct {
	Source              string   `yaml:"source"`               // Directory scanned for documentation comments
	Destination         string   `yaml:"destination"`          // Output directory for rendered pages
	DocumentationAssets string   `yaml:"documentation_assets"` // Header/footer templates and static assets
	Dependencies        []string `yaml:"dependencies,omitempty"`
	Index               string   `yaml:"index,omitempty"` // Category aliased to index.html

	ParentHeadingTag string `yaml:"parent_heading_tag,omitempty"`
	ChildHeadingTag  string `yaml:"child_heading_tag,omitempty"`

	MarkdownRenderer  string `yaml:"markdown_renderer,omitempty"`
	RenderConcurrency int    `yaml:"render_concurrency,omitempty"`
	VerifyAnchors     bool   `yaml:"verify_anchors,omitempty"`

	Manifest    string `yaml:"manifest,omitempty"` // Relative to destination
	HistoryDB   string `yaml:"history_db,omitempty"`
	MetricsFile string `yaml:"metrics_file,omitempty"`

	Watch WatchConfig `yaml:"watch,omitempty"`

	// Legacy key that pointed at a renderer plugin file. Ignored.
	CustomMarkdown string `yaml:"custom_markdown,omitempty"`

	// Directory of the loaded file; relative paths were resolved against it.
	baseDir string
	// Content the configuration was parsed from, after env expansion.
	raw []byte
}

// WatchConfig controls the watch command.
type WatchConfig struct {
	Debounce        string `yaml:"debounce,omitempty"`
	RebuildInterval string `yaml:"rebuild_interval,omitempty"`
}

// DebounceDuration returns the parsed debounce window.
func (w WatchConfig) DebounceDuration() time.Duration {
	d, err := time.ParseDuration(w.Debounce)
	if err != nil || d <= 0 {
		return defaultDebounce
	}
	return d
}

// RebuildEvery returns the periodic rebuild interval, zero when disabled.
func (w WatchConfig) RebuildEvery() time.Duration {
	if w.RebuildInterval == "" {
		return 0
	}
	d, err := time.ParseDuration(w.RebuildInterval)
	if err != nil {
		return 0
	}
	return d
}

// Raw returns the configuration content as parsed, after env expansion.
func (c *Config) Raw() []byte { return c.raw }

// BaseDir is the directory relative paths were resolved against.
func (c *Config) BaseDir() string { return c.baseDir }

// ManifestPath is the absolute manifest location, empty when disabled.
func (c *Config) ManifestPath() string {
	if c.Manifest == "" {
		return ""
	}
	if filepath.IsAbs(c.Manifest) {
		return c.Manifest
	}
	return filepath.Join(c.Destination, c.Manifest)
}

// Load reads, expands, defaults, validates and resolves the configuration at path.
func Load(path string) (*Config, error) {
	if err := loadEnvFiles(filepath.Dir(path)); err != nil {
		slog.Debug("No .env file loaded", "error", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryConfig, "Could not read config file").
			Fatal().
			WithContext("path", path).
			Build()
	}

	cfg, err := Parse([]byte(os.ExpandEnv(string(data))))
	if err != nil {
		if ce, ok := ferrors.AsClassified(err); ok {
			return nil, ce.WithContext("path", path)
		}
		return nil, err
	}

	abs, err := filepath.Abs(filepath.Dir(path))
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryConfig, "Could not resolve config directory").
			Fatal().
			WithContext("path", path).
			Build()
	}
	cfg.ResolvePaths(abs)
	return cfg, nil
}

// Parse decodes YAML content, applies defaults and validates the result.
// Paths are left as written.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryConfig, "Could not parse config file").
			Fatal().
			Build()
	}

	if cfg.CustomMarkdown != "" {
		slog.Warn("custom_markdown is no longer supported, use markdown_renderer",
			"custom_markdown", cfg.CustomMarkdown)
	}

	if err := NewDefaultApplier().ApplyDefaults(&cfg); err != nil {
		return nil, err
	}
	if err := ValidateConfig(&cfg); err != nil {
		return nil, err
	}
	cfg.raw = append([]byte(nil), data...)
	return &cfg, nil
}

// ResolvePaths makes every path-valued key absolute relative to baseDir.
func (c *Config) ResolvePaths(baseDir string) {
	c.baseDir = baseDir
	resolve := func(p string) string {
		if p == "" || filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(baseDir, p)
	}

	c.Source = resolve(c.Source)
	c.Destination = resolve(c.Destination)
	c.DocumentationAssets = resolve(c.DocumentationAssets)
	for i, dep := range c.Dependencies {
		c.Dependencies[i] = resolve(dep)
	}
	c.HistoryDB = resolve(c.HistoryDB)
	c.MetricsFile = resolve(c.MetricsFile)
}

func (c *Config) String() string {
	return fmt.Sprintf("source=%s destination=%s assets=%s", c.Source, c.Destination, c.DocumentationAssets)
}
