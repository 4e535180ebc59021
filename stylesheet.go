package funtext

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
)

// ErrUnknownEffect is returned when an animation name has no registered effect.
var ErrUnknownEffect = errors.New("funtext: unknown effect")

// Stylesheet is the companion to the engine: it defines the named effects the
// engine assigns and the base styling that keeps letter-mode units hidden
// until their appear animation starts.
type Stylesheet struct {
	cfg     Config
	effects map[string]Effect
}

// NewStylesheet creates a stylesheet for cfg with the built-in effects.
func NewStylesheet(cfg Config) *Stylesheet {
	s := &Stylesheet{cfg: cfg, effects: make(map[string]Effect)}
	s.Register(newLetterAppearEffect())
	s.Register(newWiggleEffect())
	return s
}

// NewEmptyStylesheet creates a stylesheet with no effects registered.
func NewEmptyStylesheet(cfg Config) *Stylesheet {
	return &Stylesheet{cfg: cfg, effects: make(map[string]Effect)}
}

// DefaultStylesheet returns NewStylesheet(DefaultConfig()).
func DefaultStylesheet() *Stylesheet {
	return NewStylesheet(DefaultConfig())
}

// Register adds or replaces an effect.
func (s *Stylesheet) Register(e Effect) {
	s.effects[e.Name()] = e
}

// Lookup returns the effect registered under name.
func (s *Stylesheet) Lookup(name string) (Effect, bool) {
	e, ok := s.effects[name]
	return e, ok
}

// Require returns an error wrapping ErrUnknownEffect naming the first missing
// effect, or nil if all names are registered.
func (s *Stylesheet) Require(names ...string) error {
	for _, name := range names {
		if _, ok := s.effects[name]; !ok {
			return fmt.Errorf("%w: %q", ErrUnknownEffect, name)
		}
	}
	return nil
}

// baseOpacity returns the opacity a unit has before or without animation:
// its inline opacity if set, zero for units of letter-mode containers, else 1.
func (s *Stylesheet) baseOpacity(n *Node) float64 {
	if n.Style.OpacitySet {
		return n.Style.Opacity
	}
	if n.HasClass(s.cfg.UnitClass()) {
		for p := n.Parent; p != nil; p = p.Parent {
			if p.HasClass(s.cfg.TargetClass) && p.HasClass(s.cfg.LetterModeClass) {
				return 0
			}
		}
	}
	return 1
}

// Sample evaluates n's inline animation at document time now, honoring
// delay, duration, iteration count and fill mode. Nodes whose animation
// name is not registered render at their base pose.
func (s *Stylesheet) Sample(n *Node, now float64) Pose {
	base := IdentityPose
	base.Alpha = s.baseOpacity(n)

	st := &n.Style
	if !st.HasAnimation() {
		return base
	}
	effect, ok := s.effects[st.AnimationName]
	if !ok {
		return base
	}

	local := now - n.animStart - st.AnimationDelay
	if local < 0 {
		return base
	}
	d := st.AnimationDuration
	if d <= 0 {
		if st.FillMode == FillForwards {
			return effect.Sample(1, st.TimingFunction, base)
		}
		return base
	}

	if st.IterationCount != IterationInfinite {
		count := st.IterationCount
		if count <= 0 {
			count = 1
		}
		if local >= d*float64(count) {
			if st.FillMode == FillForwards {
				return effect.Sample(1, st.TimingFunction, base)
			}
			return base
		}
	}
	p := math.Mod(local, d) / d
	return effect.Sample(p, st.TimingFunction, base)
}

// CSS returns the stylesheet as CSS: unit and letter-mode rules followed by
// the @keyframes of every effect, sorted by name.
func (s *Stylesheet) CSS() string {
	var sb strings.Builder
	unit := "." + s.cfg.UnitClass()
	fmt.Fprintf(&sb, "%s {\n  display: inline-block;\n  white-space: pre;\n}\n", unit)
	fmt.Fprintf(&sb, ".%s.%s %s {\n  opacity: 0;\n}\n",
		s.cfg.TargetClass, s.cfg.LetterModeClass, unit)
	fmt.Fprintf(&sb, ".%s {\n  display: inline-block;\n}\n", s.cfg.LabelClass)

	names := make([]string, 0, len(s.effects))
	for name := range s.effects {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		sb.WriteString(s.effects[name].CSS())
	}
	return sb.String()
}
