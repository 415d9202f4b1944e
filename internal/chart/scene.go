package chart

import (
	"github.com/olehluchkiv/svgpie/internal/dataset"
	"github.com/olehluchkiv/svgpie/internal/geometry"
	"github.com/olehluchkiv/svgpie/internal/tooltip"
	"github.com/olehluchkiv/svgpie/internal/transition"
)

// Segment is the rendered state of one slice at a point in time.
type Segment struct {
	Label     string          `json:"label"`
	Value     float64         `json:"value"`
	Color     string          `json:"color"`
	Angles    geometry.Angles `json:"angles"`
	Radii     geometry.Radii  `json:"radii"`
	CentroidX float64         `json:"centroidX"`
	CentroidY float64         `json:"centroidY"`
	State     string          `json:"state"`
	Other     bool            `json:"other"`
}

// Scene is everything needed to draw one frame.
type Scene struct {
	Selector   string          `json:"selector"`
	Size       geometry.Size   `json:"size"`
	Segments   []Segment       `json:"segments"`
	Total      float64         `json:"total"`
	Percents   bool            `json:"percents"`
	ShowLabels bool            `json:"showLabels"`
	ShowTotal  bool            `json:"showTotal"`
	Tooltip    tooltip.Tooltip `json:"tooltip"`
	Animating  bool            `json:"animating"`
}

// Frame returns the scene at the current time, completing any tweens that
// have run their course.
func (c *Chart) Frame() Scene {
	now := c.now()
	animating := c.driver.Advance(now)

	scene := Scene{
		Selector:   c.selector,
		Size:       c.size,
		Segments:   make([]Segment, 0, len(c.arcs)),
		Total:      c.total(),
		Percents:   c.cfg.Percents,
		ShowLabels: c.cfg.ShowLabels,
		ShowTotal:  c.cfg.ShowTotal,
		Tooltip:    *c.tooltip,
		Animating:  animating,
	}
	for _, a := range c.arcs {
		angles, ok := c.driver.At(a.Label, now)
		if !ok {
			continue
		}
		x, y := geometry.Point(angles, a.Radii)
		scene.Segments = append(scene.Segments, Segment{
			Label:     a.Label,
			Value:     a.Value,
			Color:     c.colors[a.Label],
			Angles:    angles,
			Radii:     a.Radii,
			CentroidX: x,
			CentroidY: y,
			State:     c.driver.State(a.Label).String(),
			Other:     a.IsOther(),
		})
	}
	return scene
}

// total is the sum shown in the middle of the chart. In percent mode the
// Other remainder is not part of it.
func (c *Chart) total() float64 {
	var sum float64
	for _, r := range c.records {
		if c.cfg.Percents && r.IsOther() {
			continue
		}
		sum += r.Value
	}
	return sum
}

// PointerEnter shows the tooltip for the slice labelled label. It reports
// whether a tooltip is now visible.
func (c *Chart) PointerEnter(label string) bool {
	a, ok := c.arc(label)
	if !ok {
		return false
	}
	return c.tooltip.Enter(tooltip.Target{Label: a.Label, Value: a.Value, Other: a.IsOther()})
}

// PointerMove repositions the tooltip for a pointer at p, given the rendered
// tooltip box and its padding.
func (c *Chart) PointerMove(p tooltip.Point, box tooltip.Box, padding float64) {
	container := tooltip.Box{Width: c.size.Width, Height: c.size.Height}
	c.tooltip.Move(p, container, box, padding)
}

// PointerLeave hides the tooltip.
func (c *Chart) PointerLeave() {
	c.tooltip.Leave()
}

// Tooltip returns the tooltip state.
func (c *Chart) Tooltip() tooltip.Tooltip {
	return *c.tooltip
}

// State returns the lifecycle state of the slice labelled label.
func (c *Chart) State(label string) transition.State {
	return c.driver.State(label)
}

// Records is a helper for callers holding records rather than a payload.
func Records(records ...dataset.Record) dataset.Payload {
	return dataset.RecordArray(records)
}
