package render

import (
	"math"
	"strconv"
	"strings"

	"github.com/olehluchkiv/svgpie/internal/geometry"
)

// epsilon below which a span is treated as empty or as a full turn.
const epsilon = 1e-6

// ArcPath returns the SVG path data of an annular sector centred on the
// origin. Angles run clockwise from twelve o'clock. A zero inner radius
// gives a pie wedge; an empty span gives an empty string.
func ArcPath(r geometry.Radii, a geometry.Angles) string {
	span := a.End - a.Start
	if span <= epsilon || r.Outer <= 0 {
		return ""
	}
	if span >= geometry.FullCircle-epsilon {
		return ringPath(r)
	}

	large := span > math.Pi
	var b pathBuilder
	b.move(polar(r.Outer, a.Start))
	x, y := polar(r.Outer, a.End)
	b.arc(r.Outer, large, true, x, y)
	if r.Inner > 0 {
		b.line(polar(r.Inner, a.End))
		x, y = polar(r.Inner, a.Start)
		b.arc(r.Inner, large, false, x, y)
	} else {
		b.line(0, 0)
	}
	b.close()
	return b.String()
}

// ringPath draws a full circle, or a ring for a positive inner radius. The
// ring is two opposite-winding circles so it fills under both fill rules.
func ringPath(r geometry.Radii) string {
	var b pathBuilder
	b.move(0, -r.Outer)
	b.arc(r.Outer, true, true, 0, r.Outer)
	b.arc(r.Outer, true, true, 0, -r.Outer)
	b.close()
	if r.Inner > 0 {
		b.move(0, -r.Inner)
		b.arc(r.Inner, true, false, 0, r.Inner)
		b.arc(r.Inner, true, false, 0, -r.Inner)
		b.close()
	}
	return b.String()
}

func polar(radius, angle float64) (x, y float64) {
	return radius * math.Sin(angle), -radius * math.Cos(angle)
}

type pathBuilder struct {
	strings.Builder
}

func (b *pathBuilder) move(x, y float64) {
	b.WriteString("M")
	b.point(x, y)
}

func (b *pathBuilder) line(x, y float64) {
	b.WriteString("L")
	b.point(x, y)
}

func (b *pathBuilder) arc(radius float64, large, sweep bool, x, y float64) {
	b.WriteString("A")
	b.WriteString(num(radius))
	b.WriteString(",")
	b.WriteString(num(radius))
	b.WriteString(",0,")
	b.WriteString(flag(large))
	b.WriteString(",")
	b.WriteString(flag(sweep))
	b.WriteString(",")
	b.point(x, y)
}

func (b *pathBuilder) close() {
	b.WriteString("Z")
}

func (b *pathBuilder) point(x, y float64) {
	b.WriteString(num(x))
	b.WriteString(",")
	b.WriteString(num(y))
}

func flag(v bool) string {
	if v {
		return "1"
	}
	return "0"
}

// num formats a coordinate with three decimals and no trailing zeros.
func num(v float64) string {
	s := strconv.FormatFloat(v, 'f', 3, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	if s == "-0" {
		return "0"
	}
	return s
}
