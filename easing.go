package funtext

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/tanema/gween/ease"
)

// Easing is an animation timing function: either a named smooth curve or a
// stepped curve with a fixed number of jumps.
type Easing struct {
	Name  string // smooth curve name; ignored when Steps > 0
	Steps int    // > 0 for steps(n)
}

// Named smooth curves.
var (
	EaseLinear    = Easing{Name: "linear"}
	Ease          = Easing{Name: "ease"}
	EaseIn        = Easing{Name: "ease-in"}
	EaseOut       = Easing{Name: "ease-out"}
	EaseInOut     = Easing{Name: "ease-in-out"}
	smoothEasings = map[string]ease.TweenFunc{
		"linear":      ease.Linear,
		"ease":        ease.OutQuad,
		"ease-in":     ease.InQuad,
		"ease-out":    ease.OutQuad,
		"ease-in-out": ease.InOutSine,
	}
)

// Steps returns a stepped easing with n jumps at the end of each interval.
func Steps(n int) Easing {
	return Easing{Steps: n}
}

// SmoothnessEasing maps a smoothness level to its stepped easing: level 0 is
// the coarsest (1 step), level 1 has 2 steps and level N>1 has 2*N steps.
func SmoothnessEasing(level int) Easing {
	switch {
	case level <= 0:
		return Steps(1)
	case level == 1:
		return Steps(2)
	default:
		return Steps(2 * level)
	}
}

// ParseEasing parses a CSS timing function such as "ease-in-out" or "steps(4)".
// Unknown names are kept verbatim and evaluate as linear.
func ParseEasing(s string) (Easing, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Easing{}, fmt.Errorf("funtext: empty easing")
	}
	if rest, ok := strings.CutPrefix(s, "steps("); ok {
		body, ok := strings.CutSuffix(rest, ")")
		if !ok {
			return Easing{}, fmt.Errorf("funtext: malformed easing %q", s)
		}
		count, _, _ := strings.Cut(body, ",")
		n, err := strconv.Atoi(strings.TrimSpace(count))
		if err != nil || n <= 0 {
			return Easing{}, fmt.Errorf("funtext: malformed easing %q", s)
		}
		return Steps(n), nil
	}
	return Easing{Name: s}, nil
}

// IsStepped reports whether the easing is a steps(n) curve.
func (e Easing) IsStepped() bool {
	return e.Steps > 0
}

// String returns the CSS form of the easing.
func (e Easing) String() string {
	if e.Steps > 0 {
		return fmt.Sprintf("steps(%d)", e.Steps)
	}
	return e.Name
}

// Func returns a gween easing function for this curve.
func (e Easing) Func() ease.TweenFunc {
	if e.Steps > 0 {
		return stepped(e.Steps)
	}
	if fn, ok := smoothEasings[e.Name]; ok {
		return fn
	}
	return ease.Linear
}

// stepped quantizes progress into n jumps, each taken at the end of its
// interval (CSS jump-end).
func stepped(n int) ease.TweenFunc {
	steps := float32(n)
	return func(t, b, c, d float32) float32 {
		if d <= 0 {
			return b + c
		}
		p := float32(math.Floor(float64(t / d * steps)))
		return b + c*p/steps
	}
}
