// Package geometry lays a dataset out as a pie: container radii, the
// cumulative angle sweep, and the keyed diff between consecutive datasets.
package geometry

import (
	"math"

	"github.com/olehluchkiv/svgpie/internal/dataset"
)

// FullCircle is the angular span of the whole pie.
const FullCircle = 2 * math.Pi

// wideContainer is the width above which an auto-sized container gets a
// landscape aspect ratio.
const wideContainer = 600

// Size is the pixel geometry of the chart container.
type Size struct {
	Width   float64 `json:"width"`
	Height  float64 `json:"height"`
	Padding float64 `json:"padding"`
}

// ContainerSize fills in a missing height from the width: wide containers
// are 3:2, narrow ones square.
func ContainerSize(width, height float64) Size {
	if height <= 0 {
		height = width
		if width > wideContainer {
			height = width / 1.5
		}
	}
	return Size{Width: width, Height: height}
}

// Center is the pie origin within the container.
func (s Size) Center() (x, y float64) {
	return s.Width / 2, s.Height / 2
}

// Radii bounds an annular slice.
type Radii struct {
	Inner float64 `json:"inner"`
	Outer float64 `json:"outer"`
}

// Angles is a clockwise span in radians, 0 at twelve o'clock.
type Angles struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// Span returns End - Start.
func (a Angles) Span() float64 {
	return a.End - a.Start
}

// Lerp interpolates between a and b at t in [0, 1].
func (a Angles) Lerp(b Angles, t float64) Angles {
	return Angles{
		Start: a.Start + (b.Start-a.Start)*t,
		End:   a.End + (b.End-a.End)*t,
	}
}

// RadiiFor sizes the pie to the smaller container side.
func RadiiFor(size Size, innerRadiusSize float64) Radii {
	outer := math.Max(0, math.Min(size.Width, size.Height)/2)
	return Radii{Inner: outer * innerRadiusSize, Outer: outer}
}

// Shrink insets both radii by half of the dropped thickness so the slice
// keeps its centroid. otherSize of 1 leaves r unchanged.
func Shrink(r Radii, otherSize float64) Radii {
	if otherSize >= 1 {
		return r
	}
	inset := (r.Outer - r.Inner) * (1 - otherSize) / 2
	return Radii{Inner: r.Inner + inset, Outer: r.Outer - inset}
}

// Sweep lays records out clockwise from 0, each span proportional to its
// share of the total. A zero total yields zero spans.
func Sweep(records []dataset.Record) []Angles {
	out := make([]Angles, len(records))
	sum := dataset.Sum(records)
	if sum <= 0 {
		return out
	}
	var angle float64
	for i, r := range records {
		end := angle + r.Value/sum*FullCircle
		if i == len(records)-1 {
			end = FullCircle
		}
		out[i] = Angles{Start: angle, End: end}
		angle = end
	}
	return out
}

// Arc is the target geometry of one record.
type Arc struct {
	Label string
	Value float64
	Index int
	Angles
	Radii
}

// IsOther reports whether the arc belongs to the aggregate slice.
func (a Arc) IsOther() bool {
	return a.Label == dataset.OtherLabel
}

// Centroid is the label anchor: mid angle at mid radius, relative to the
// pie origin with y growing downwards.
func (a Arc) Centroid() (x, y float64) {
	return Point(a.Angles, a.Radii)
}

// Point returns the mid point of the given span and radii.
func Point(a Angles, r Radii) (x, y float64) {
	mid := (a.Start + a.End) / 2
	radius := (r.Inner + r.Outer) / 2
	return radius * math.Sin(mid), -radius * math.Cos(mid)
}

// LayoutOptions holds the configuration that shapes the layout.
type LayoutOptions struct {
	InnerRadiusSize float64
	OtherSize       float64
}

// Layout computes the target arc of every record.
func Layout(records []dataset.Record, size Size, opts LayoutOptions) []Arc {
	radii := RadiiFor(size, opts.InnerRadiusSize)
	angles := Sweep(records)
	out := make([]Arc, len(records))
	for i, r := range records {
		arc := Arc{Label: r.Label, Value: r.Value, Index: i, Angles: angles[i], Radii: radii}
		if r.IsOther() {
			arc.Radii = Shrink(radii, opts.OtherSize)
		}
		out[i] = arc
	}
	return out
}
