package transition

import (
	"fmt"
	"strings"
)

// Easing maps linear progress in [0, 1] onto eased progress. It must be
// monotonic with Easing(0) = 0 and Easing(1) = 1.
type Easing func(t float64) float64

// Linear is the default easing.
func Linear(t float64) float64 { return t }

// CubicInOut accelerates through the first half and decelerates through the
// second.
func CubicInOut(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	u := 2*t - 2
	return 1 + u*u*u/2
}

// ParseEasing resolves an easing by name. The empty name is Linear.
func ParseEasing(name string) (Easing, error) {
	switch strings.ToLower(name) {
	case "", "linear":
		return Linear, nil
	case "cubic", "cubic-in-out":
		return CubicInOut, nil
	default:
		return nil, fmt.Errorf("unknown easing: %s (valid: linear, cubic-in-out)", name)
	}
}
