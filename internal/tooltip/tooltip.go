// Package tooltip places the floating slice tooltip next to the pointer and
// keeps it inside the chart container.
package tooltip

import "strconv"

// Margin is the gap between the pointer and the tooltip box.
const Margin = 20

// Point is a position in container pixels, origin at the top-left corner.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Box is a width/height pair in pixels.
type Box struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Position returns the top-left corner of the tooltip for a pointer at p.
// The box goes below and right of the pointer while the pointer is in the
// upper and left halves of the container, and flips above or left of it
// otherwise, accounting for its own size and padding.
func Position(p Point, container, box Box, padding float64) Point {
	var pos Point
	if p.Y < container.Height/2 {
		pos.Y = p.Y + Margin
	} else {
		pos.Y = p.Y - box.Height - padding - Margin
	}
	if p.X < container.Width/2 {
		pos.X = p.X + Margin
	} else {
		pos.X = p.X - box.Width - padding - Margin
	}
	return pos
}

// Target is the slice under the pointer.
type Target struct {
	Label string
	Value float64
	Other bool
}

// Options mirrors the chart configuration relevant to tooltips.
type Options struct {
	Enabled   bool
	Percents  bool
	ShowOther bool
	OtherSize float64
}

// Tooltip is the visible state of the tooltip.
type Tooltip struct {
	Visible bool    `json:"visible"`
	Label   string  `json:"label,omitempty"`
	Text    string  `json:"text,omitempty"`
	Left    float64 `json:"left"`
	Top     float64 `json:"top"`

	opts Options
}

func New(opts Options) *Tooltip {
	return &Tooltip{opts: opts}
}

// Enter shows the tooltip for t. It reports false when the target does not
// get a tooltip.
func (tt *Tooltip) Enter(t Target) bool {
	if !tt.opts.Enabled {
		return false
	}
	if t.Other && !tt.opts.ShowOther && tt.opts.OtherSize != 1 {
		return false
	}
	tt.Visible = true
	tt.Label = t.Label
	tt.Text = FormatValue(t.Value, tt.opts.Percents)
	return true
}

// Move repositions a visible tooltip.
func (tt *Tooltip) Move(p Point, container, box Box, padding float64) {
	if !tt.Visible {
		return
	}
	pos := Position(p, container, box, padding)
	tt.Left, tt.Top = pos.X, pos.Y
}

// Leave hides the tooltip.
func (tt *Tooltip) Leave() {
	tt.Visible = false
	tt.Label = ""
	tt.Text = ""
}

// FormatValue renders a slice value, with a percent sign in percent mode.
func FormatValue(v float64, percents bool) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if percents {
		s += "%"
	}
	return s
}
