// Package config holds the per-chart configuration. Defaults are produced
// fresh by Default, so instances never share mutable option state.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/olehluchkiv/svgpie/internal/dataset"
	"github.com/olehluchkiv/svgpie/internal/palette"
	"github.com/olehluchkiv/svgpie/internal/transition"
)

// ErrInvalid is returned by Validate.
var ErrInvalid = errors.New("invalid configuration")

// DefaultTransition is the tween length when none is configured.
const DefaultTransition = 250 * time.Millisecond

// Config is the chart configuration.
type Config struct {
	InnerRadiusSize   float64    `yaml:"innerRadiusSize" json:"innerRadiusSize"`     // fraction of the outer radius
	ShowTooltip       bool       `yaml:"showTooltip" json:"showTooltip"`
	ShowLabels        bool       `yaml:"showLabels" json:"showLabels"`
	ShowTotal         bool       `yaml:"showTotal" json:"showTotal"`
	Sort              bool       `yaml:"sort" json:"sort"`
	Colors            []string   `yaml:"colors" json:"colors"`
	Transition        Transition `yaml:"transition" json:"transition"`
	InitialTransition bool       `yaml:"initialTransition" json:"initialTransition"`
	Percents          bool       `yaml:"percents" json:"percents"`
	ShowOtherTooltip  bool       `yaml:"showOtherTooltip" json:"showOtherTooltip"`
	OtherSize         float64    `yaml:"otherSize" json:"otherSize"` // 1 keeps Other at full thickness
	Group             bool       `yaml:"group" json:"group"`
	GroupThreshold    float64    `yaml:"groupThreshold" json:"groupThreshold"`
	Easing            string     `yaml:"easing" json:"easing"`
}

// Default returns the default configuration.
func Default() Config {
	colors := make([]string, len(palette.Default))
	copy(colors, palette.Default)
	return Config{
		InnerRadiusSize: 0.7,
		ShowTooltip:     true,
		Colors:          colors,
		Transition:      Transition(DefaultTransition),
		OtherSize:       1,
		GroupThreshold:  dataset.DefaultGroupThreshold,
	}
}

// Option overrides one setting.
type Option func(*Config)

// New returns the defaults with opts applied.
func New(opts ...Option) Config {
	c := Default()
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

func WithInnerRadiusSize(v float64) Option { return func(c *Config) { c.InnerRadiusSize = v } }
func WithTooltip(on bool) Option           { return func(c *Config) { c.ShowTooltip = on } }
func WithLabels(on bool) Option            { return func(c *Config) { c.ShowLabels = on } }
func WithTotal(on bool) Option             { return func(c *Config) { c.ShowTotal = on } }
func WithSort(on bool) Option              { return func(c *Config) { c.Sort = on } }
func WithPercents(on bool) Option          { return func(c *Config) { c.Percents = on } }
func WithOtherTooltip(on bool) Option      { return func(c *Config) { c.ShowOtherTooltip = on } }
func WithOtherSize(v float64) Option       { return func(c *Config) { c.OtherSize = v } }
func WithGroup(on bool) Option             { return func(c *Config) { c.Group = on } }
func WithEasing(name string) Option        { return func(c *Config) { c.Easing = name } }

func WithColors(colors ...string) Option {
	return func(c *Config) {
		c.Colors = append([]string(nil), colors...)
	}
}

// WithTransition sets the tween length; 0 disables animation.
func WithTransition(d time.Duration) Option {
	return func(c *Config) { c.Transition = Transition(d) }
}

func WithInitialTransition(on bool) Option {
	return func(c *Config) { c.InitialTransition = on }
}

// Validate checks ranges and the palette.
func (c Config) Validate() error {
	if c.InnerRadiusSize < 0 || c.InnerRadiusSize >= 1 {
		return fmt.Errorf("%w: innerRadiusSize %v outside [0, 1)", ErrInvalid, c.InnerRadiusSize)
	}
	if c.OtherSize < 0 || c.OtherSize > 1 {
		return fmt.Errorf("%w: otherSize %v outside [0, 1]", ErrInvalid, c.OtherSize)
	}
	if c.GroupThreshold < 0 || c.GroupThreshold >= 1 {
		return fmt.Errorf("%w: groupThreshold %v outside [0, 1)", ErrInvalid, c.GroupThreshold)
	}
	if c.Transition < 0 {
		return fmt.Errorf("%w: negative transition", ErrInvalid)
	}
	if _, err := palette.Parse(c.Colors); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if _, err := transition.ParseEasing(c.Easing); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return nil
}

// DatasetOptions returns the normalizer settings.
func (c Config) DatasetOptions() dataset.Options {
	return dataset.Options{
		Percents:       c.Percents,
		Group:          c.Group,
		GroupThreshold: c.GroupThreshold,
	}
}

// LogValue keeps log lines short.
func (c Config) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Float64("inner_radius_size", c.InnerRadiusSize),
		slog.Duration("transition", c.Transition.Duration()),
		slog.Bool("percents", c.Percents),
		slog.Bool("group", c.Group),
		slog.Bool("sort", c.Sort),
		slog.Int("colors", len(c.Colors)),
	)
}
