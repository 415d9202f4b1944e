// Package palette assigns slice colors by interpolating an ordered list of
// colors across the length of a dataset.
package palette

import (
	"errors"
	"fmt"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// ErrPalette is returned for palettes that cannot be interpolated.
var ErrPalette = errors.New("invalid palette")

// Default is used when no palette is configured.
var Default = []string{"#1f77b4", "#ff7f0e", "#2ca02c"}

// Assign returns n colors spread over the palette. Palette entry j sits at
// domain point j*(n-1)/(m-1); index i takes the color at domain point i,
// blended in CIE LCh between its two neighbouring entries. Indices that land
// exactly on an entry get that entry verbatim.
func Assign(n int, colors []string) ([]string, error) {
	parsed, err := Parse(colors)
	if err != nil {
		return nil, err
	}
	if n <= 0 {
		return nil, nil
	}

	out := make([]string, n)
	if n == 1 {
		out[0] = colors[0]
		return out, nil
	}

	steps := float64(len(colors) - 1)
	for i := range out {
		pos := float64(i) * steps / float64(n-1)
		j := math.Floor(pos)
		if pos == j {
			out[i] = colors[int(j)]
			continue
		}
		from, to := parsed[int(j)], parsed[int(j)+1]
		out[i] = from.BlendHcl(to, pos-j).Clamped().Hex()
	}
	return out, nil
}

// Parse validates a palette: at least two hex colors.
func Parse(colors []string) ([]colorful.Color, error) {
	if len(colors) < 2 {
		return nil, fmt.Errorf("%w: need at least 2 colors, got %d", ErrPalette, len(colors))
	}
	parsed := make([]colorful.Color, len(colors))
	for i, s := range colors {
		c, err := colorful.Hex(s)
		if err != nil {
			return nil, fmt.Errorf("%w: color %d: %v", ErrPalette, i, err)
		}
		parsed[i] = c
	}
	return parsed, nil
}
