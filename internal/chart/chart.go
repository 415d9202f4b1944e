// Package chart ties the dataset pipeline, layout, tweens and tooltip into
// a single retained pie chart bound to a container.
package chart

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/olehluchkiv/svgpie/internal/config"
	"github.com/olehluchkiv/svgpie/internal/dataset"
	"github.com/olehluchkiv/svgpie/internal/geometry"
	"github.com/olehluchkiv/svgpie/internal/palette"
	"github.com/olehluchkiv/svgpie/internal/tooltip"
	"github.com/olehluchkiv/svgpie/internal/transition"
)

// Chart is one pie chart instance. It owns its dataset, segments and
// tooltip exclusively and is not safe for concurrent use.
type Chart struct {
	selector string
	cfg      config.Config
	logger   *slog.Logger
	now      func() time.Time

	size    geometry.Size
	records []dataset.Record
	colors  map[string]string
	arcs    []geometry.Arc

	recon   *geometry.Reconciler
	driver  *transition.Driver
	tooltip *tooltip.Tooltip

	normalized int // number of successful Update calls
}

// Option customises a Chart.
type Option func(*Chart)

// WithClock replaces time.Now, for deterministic tweens.
func WithClock(now func() time.Time) Option {
	return func(c *Chart) { c.now = now }
}

// WithSize sets the initial container size.
func WithSize(size geometry.Size) Option {
	return func(c *Chart) { c.size = size }
}

// New creates a chart bound to selector. The configuration is validated and
// copied; later changes to cfg do not affect the chart.
func New(selector string, cfg config.Config, logger *slog.Logger, opts ...Option) (*Chart, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	easing, err := transition.ParseEasing(cfg.Easing)
	if err != nil {
		return nil, err
	}
	cfg.Colors = append([]string(nil), cfg.Colors...)

	c := &Chart{
		selector: selector,
		cfg:      cfg,
		logger:   logger.With("component", "chart", "selector", selector),
		now:      time.Now,
		size:     geometry.ContainerSize(400, 0),
		colors:   make(map[string]string),
		recon:    geometry.NewReconciler(),
		driver: transition.NewDriver(transition.Options{
			Duration: cfg.Transition.Duration(),
			Initial:  cfg.InitialTransition,
			Easing:   easing,
		}),
		tooltip: tooltip.New(tooltip.Options{
			Enabled:   cfg.ShowTooltip,
			Percents:  cfg.Percents,
			ShowOther: cfg.ShowOtherTooltip,
			OtherSize: cfg.OtherSize,
		}),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger.Debug("chart created", "config", cfg)
	return c, nil
}

// Selector returns the container locator the chart is bound to.
func (c *Chart) Selector() string {
	return c.selector
}

// Config returns a copy of the chart configuration.
func (c *Chart) Config() config.Config {
	out := c.cfg
	out.Colors = append([]string(nil), c.cfg.Colors...)
	return out
}

// Size returns the current container size.
func (c *Chart) Size() geometry.Size {
	return c.size
}

// Update replaces the dataset: it normalizes and orders p, assigns colors
// and renders. On error the chart keeps its previous dataset.
func (c *Chart) Update(p dataset.Payload) error {
	records, err := dataset.Normalize(p, c.cfg.DatasetOptions())
	if err != nil {
		return fmt.Errorf("update %s: %w", c.selector, err)
	}
	records = dataset.Order(records, c.cfg.Sort)

	colors, err := palette.Assign(len(records), c.cfg.Colors)
	if err != nil {
		return fmt.Errorf("update %s: %w", c.selector, err)
	}

	c.records = records
	c.colors = make(map[string]string, len(records))
	for i, r := range records {
		if _, ok := c.colors[r.Label]; !ok {
			c.colors[r.Label] = colors[i]
		}
	}
	c.normalized++

	diff := c.recon.Reconcile(records)
	c.logger.Debug("dataset updated",
		"records", len(records),
		"enter", len(diff.Enter),
		"update", len(diff.Update),
		"exit", len(diff.Exit))

	c.layout()
	c.driver.Apply(c.now(), c.arcs, diff)
	if c.tooltip.Visible && !c.has(c.tooltip.Label) {
		c.tooltip.Leave()
	}
	return nil
}

// Resize changes the container size and recomputes geometry. The dataset is
// not normalized again and running tweens are left alone.
func (c *Chart) Resize(size geometry.Size) {
	if size == c.size {
		return
	}
	c.size = size
	c.layout()
	c.logger.Debug("chart resized", "width", size.Width, "height", size.Height)
}

// layout recomputes the target arcs, keeping the first arc of any
// duplicated label.
func (c *Chart) layout() {
	arcs := geometry.Layout(c.records, c.size, geometry.LayoutOptions{
		InnerRadiusSize: c.cfg.InnerRadiusSize,
		OtherSize:       c.cfg.OtherSize,
	})
	seen := make(map[string]bool, len(arcs))
	c.arcs = arcs[:0]
	for _, a := range arcs {
		if seen[a.Label] {
			continue
		}
		seen[a.Label] = true
		c.arcs = append(c.arcs, a)
	}
}

// Dataset returns a copy of the current ordered dataset.
func (c *Chart) Dataset() []dataset.Record {
	out := make([]dataset.Record, len(c.records))
	copy(out, c.records)
	return out
}

// Transitioned reports whether the first transition has completed.
func (c *Chart) Transitioned() bool {
	return c.driver.Transitioned()
}

func (c *Chart) has(label string) bool {
	_, ok := c.arc(label)
	return ok
}

func (c *Chart) arc(label string) (geometry.Arc, bool) {
	for _, a := range c.arcs {
		if a.Label == label {
			return a, true
		}
	}
	return geometry.Arc{}, false
}
