package config

import (
	"regexp"
	"time"

	ferrors "git.home.luguber.info/inful/styleguide/internal/foundation/errors"
)

var tagNamePattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9]*$`)

// ValidateConfig checks a defaulted configuration.
func ValidateConfig(cfg *Config) error {
	validators := []func(*Config) error{
		validateRequired,
		validateHeadings,
		validateRender,
		validateWatch,
	}
	for _, v := range validators {
		if err := v(cfg); err != nil {
			return err
		}
	}
	return nil
}

func validateRequired(cfg *Config) error {
	required := []struct {
		key   string
		value string
	}{
		{"source", cfg.Source},
		{"destination", cfg.Destination},
		{"documentation_assets", cfg.DocumentationAssets},
	}
	for _, r := range required {
		if r.value == "" {
			return ferrors.ConfigError("Configuration is missing a required key").
				WithContext("key", r.key).
				Build()
		}
	}
	return nil
}

func validateHeadings(cfg *Config) error {
	tags := []struct {
		key   string
		value string
	}{
		{"parent_heading_tag", cfg.ParentHeadingTag},
		{"child_heading_tag", cfg.ChildHeadingTag},
	}
	for _, tag := range tags {
		if !tagNamePattern.MatchString(tag.value) {
			return ferrors.ConfigError("Heading tag is not a valid element name").
				WithContext("key", tag.key).
				WithContext("value", tag.value).
				Build()
		}
	}
	return nil
}

func validateRender(cfg *Config) error {
	if cfg.RenderConcurrency < 1 {
		return ferrors.ConfigError("render_concurrency must be at least 1").
			WithContext("value", cfg.RenderConcurrency).
			Build()
	}
	return nil
}

func validateWatch(cfg *Config) error {
	if d, err := time.ParseDuration(cfg.Watch.Debounce); err != nil || d <= 0 {
		return ferrors.ConfigError("watch.debounce must be a positive duration").
			WithContext("value", cfg.Watch.Debounce).
			Build()
	}
	if cfg.Watch.RebuildInterval != "" {
		if d, err := time.ParseDuration(cfg.Watch.RebuildInterval); err != nil || d <= 0 {
			return ferrors.ConfigError("watch.rebuild_interval must be a positive duration").
				WithContext("value", cfg.Watch.RebuildInterval).
				Build()
		}
	}
	return nil
}
