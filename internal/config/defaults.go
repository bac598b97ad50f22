package config

import (
	"fmt"
	"time"
)

const (
	DefaultParentHeadingTag  = "h1"
	DefaultChildHeadingTag   = "h2"
	DefaultMarkdownRenderer  = "goldmark"
	DefaultRenderConcurrency = 4

	defaultDebounce = 300 * time.Millisecond
)

// DefaultApplier applies defaults for one configuration domain.
type DefaultApplier interface {
	ApplyDefaults(cfg *Config) error
	Domain() string
}

type headingDefaults struct{}

func (headingDefaults) Domain() string { return "headings" }

func (headingDefaults) ApplyDefaults(cfg *Config) error {
	if cfg.ParentHeadingTag == "" {
		cfg.ParentHeadingTag = DefaultParentHeadingTag
	}
	if cfg.ChildHeadingTag == "" {
		cfg.ChildHeadingTag = DefaultChildHeadingTag
	}
	return nil
}

type renderDefaults struct{}

func (renderDefaults) Domain() string { return "render" }

func (renderDefaults) ApplyDefaults(cfg *Config) error {
	if cfg.MarkdownRenderer == "" {
		cfg.MarkdownRenderer = DefaultMarkdownRenderer
	}
	if cfg.RenderConcurrency <= 0 {
		cfg.RenderConcurrency = DefaultRenderConcurrency
	}
	return nil
}

type watchDefaults struct{}

func (watchDefaults) Domain() string { return "watch" }

func (watchDefaults) ApplyDefaults(cfg *Config) error {
	if cfg.Watch.Debounce == "" {
		cfg.Watch.Debounce = defaultDebounce.String()
	}
	return nil
}

// CompositeDefaultApplier runs every domain applier in order.
type CompositeDefaultApplier struct {
	appliers []DefaultApplier
}

// NewDefaultApplier returns the applier set used by Load.
func NewDefaultApplier() *CompositeDefaultApplier {
	return &CompositeDefaultApplier{
		appliers: []DefaultApplier{
			headingDefaults{},
			renderDefaults{},
			watchDefaults{},
		},
	}
}

func (c *CompositeDefaultApplier) ApplyDefaults(cfg *Config) error {
	for _, applier := range c.appliers {
		if err := applier.ApplyDefaults(cfg); err != nil {
			return fmt.Errorf("applying defaults for %s: %w", applier.Domain(), err)
		}
	}
	return nil
}
