// Package transition tweens segment angles between layouts. Every segment
// runs through an explicit state machine (see State) and the driver tracks
// whether the chart has completed its first transition.
package transition

import (
	"time"

	"github.com/olehluchkiv/svgpie/internal/geometry"
)

// Options configures a Driver.
type Options struct {
	Duration time.Duration // 0 disables animation
	Initial  bool          // animate the first paint out of a collapsed pie
	Easing   Easing        // nil means Linear
}

// segment is the tween state of one label.
type segment struct {
	state State
	from  geometry.Angles
	to    geometry.Angles
	start time.Time
}

// Driver owns the tween state of every rendered segment. It is not safe for
// concurrent use.
type Driver struct {
	opts         Options
	segments     map[string]*segment
	painted      bool
	transitioned bool
}

func NewDriver(opts Options) *Driver {
	if opts.Easing == nil {
		opts.Easing = Linear
	}
	if opts.Duration < 0 {
		opts.Duration = 0
	}
	return &Driver{opts: opts, segments: make(map[string]*segment)}
}

// Apply retargets segments to arcs, which must be in sweep order. Labels in
// diff.Exit are dropped, labels in diff.Enter start from their entering
// state and retained labels tween from wherever they are at now.
func (d *Driver) Apply(now time.Time, arcs []geometry.Arc, diff geometry.Diff) {
	for _, label := range diff.Exit {
		if s, ok := d.segments[label]; ok {
			s.state = Exiting
			delete(d.segments, label)
		}
	}

	if d.opts.Duration == 0 || (!d.painted && !d.opts.Initial) {
		d.applyDirect(arcs)
		return
	}

	// Only the first paint grows out of the collapsed chart. Later entries
	// grow from their neighbour even while that intro is still running.
	initial := d.opts.Initial && !d.painted
	var prevEnd float64
	for i, arc := range arcs {
		s, ok := d.segments[arc.Label]
		switch {
		case ok:
			s.from = d.at(s, now)
			s.to = arc.Angles
			s.start = now
			if !s.state.Entering() {
				s.state = Steady
			}
		case initial:
			s = &segment{state: EnteringInitial, to: arc.Angles, start: now}
			if i == len(arcs)-1 {
				s.from = geometry.Angles{Start: 0, End: geometry.FullCircle}
			}
			d.segments[arc.Label] = s
		default:
			s = &segment{
				state: EnteringLive,
				from:  geometry.Angles{Start: prevEnd, End: prevEnd},
				to:    arc.Angles,
				start: now,
			}
			d.segments[arc.Label] = s
		}
		prevEnd = s.from.End
	}
	d.painted = true
}

// applyDirect sets every segment to its target with no tween.
func (d *Driver) applyDirect(arcs []geometry.Arc) {
	for _, arc := range arcs {
		s, ok := d.segments[arc.Label]
		if !ok {
			s = &segment{}
			d.segments[arc.Label] = s
		}
		s.state = Steady
		s.from = arc.Angles
		s.to = arc.Angles
	}
	d.painted = true
	d.transitioned = true
}

// Advance finishes tweens that are complete at now and reports whether any
// tween is still running.
func (d *Driver) Advance(now time.Time) bool {
	animating := false
	for _, s := range d.segments {
		if d.progress(s, now) < 1 {
			animating = true
			continue
		}
		if s.from != s.to || s.state.Entering() {
			d.transitioned = true
		}
		s.from = s.to
		s.state = Steady
	}
	return animating
}

// At returns the interpolated angles of label at now.
func (d *Driver) At(label string, now time.Time) (geometry.Angles, bool) {
	s, ok := d.segments[label]
	if !ok {
		return geometry.Angles{}, false
	}
	return d.at(s, now), true
}

// State returns the lifecycle state of label.
func (d *Driver) State(label string) State {
	s, ok := d.segments[label]
	if !ok {
		return Absent
	}
	return s.state
}

// Transitioned reports whether the chart has completed its first transition.
func (d *Driver) Transitioned() bool {
	return d.transitioned
}

// Duration returns the configured tween length.
func (d *Driver) Duration() time.Duration {
	return d.opts.Duration
}

func (d *Driver) at(s *segment, now time.Time) geometry.Angles {
	p := d.progress(s, now)
	if p >= 1 {
		return s.to
	}
	return s.from.Lerp(s.to, d.opts.Easing(p))
}

func (d *Driver) progress(s *segment, now time.Time) float64 {
	if s.from == s.to || d.opts.Duration == 0 {
		return 1
	}
	p := float64(now.Sub(s.start)) / float64(d.opts.Duration)
	switch {
	case p < 0:
		return 0
	case p > 1:
		return 1
	}
	return p
}
