package funtext

import (
	"fmt"
	"strconv"
	"strings"
)

// Style is a node's inline style. The animation fields mirror the CSS
// animation longhands; Extra holds any other declarations, in order.
type Style struct {
	FontFamily string

	Opacity    float64
	OpacitySet bool

	AnimationName     string
	AnimationDuration float64 // seconds
	AnimationDelay    float64 // seconds
	TimingFunction    Easing
	IterationCount    int // IterationInfinite for infinite; 0 means unset
	FillMode          FillMode

	Extra []Declaration
}

// Declaration is a single "property: value" pair.
type Declaration struct {
	Property, Value string
}

// SetOpacity sets an explicit opacity.
func (s *Style) SetOpacity(v float64) {
	s.Opacity = v
	s.OpacitySet = true
}

// HasAnimation reports whether an animation is assigned.
func (s *Style) HasAnimation() bool {
	return s.AnimationName != ""
}

// CSS serializes the style as an inline declaration list.
func (s *Style) CSS() string {
	var parts []string
	if s.FontFamily != "" {
		parts = append(parts, "font-family: "+s.FontFamily)
	}
	if s.OpacitySet {
		parts = append(parts, "opacity: "+formatFloat(s.Opacity))
	}
	if s.AnimationName != "" {
		parts = append(parts,
			"animation-name: "+s.AnimationName,
			"animation-duration: "+formatSeconds(s.AnimationDuration),
			"animation-delay: "+formatSeconds(s.AnimationDelay),
		)
		if tf := s.TimingFunction.String(); tf != "" {
			parts = append(parts, "animation-timing-function: "+tf)
		}
		if s.IterationCount == IterationInfinite {
			parts = append(parts, "animation-iteration-count: infinite")
		} else if s.IterationCount > 0 {
			parts = append(parts, "animation-iteration-count: "+strconv.Itoa(s.IterationCount))
		}
		parts = append(parts, "animation-fill-mode: "+s.FillMode.String())
	}
	for _, d := range s.Extra {
		parts = append(parts, d.Property+": "+d.Value)
	}
	return strings.Join(parts, "; ")
}

// ParseStyle parses an inline style attribute. Recognized properties populate
// typed fields; everything else is kept in Extra. Malformed values are kept
// in Extra rather than rejected.
func ParseStyle(css string) Style {
	var s Style
	for _, decl := range strings.Split(css, ";") {
		prop, val, ok := strings.Cut(decl, ":")
		if !ok {
			continue
		}
		prop = strings.ToLower(strings.TrimSpace(prop))
		val = strings.TrimSpace(val)
		if prop == "" {
			continue
		}
		if !s.apply(prop, val) {
			s.Extra = append(s.Extra, Declaration{Property: prop, Value: val})
		}
	}
	return s
}

func (s *Style) apply(prop, val string) bool {
	switch prop {
	case "font-family":
		s.FontFamily = val
	case "opacity":
		v, err := strconv.ParseFloat(val, 64)
		if err != nil {
			return false
		}
		s.SetOpacity(v)
	case "animation-name":
		s.AnimationName = val
	case "animation-duration":
		v, err := parseSeconds(val)
		if err != nil {
			return false
		}
		s.AnimationDuration = v
	case "animation-delay":
		v, err := parseSeconds(val)
		if err != nil {
			return false
		}
		s.AnimationDelay = v
	case "animation-timing-function":
		e, err := ParseEasing(val)
		if err != nil {
			return false
		}
		s.TimingFunction = e
	case "animation-iteration-count":
		if val == "infinite" {
			s.IterationCount = IterationInfinite
			return true
		}
		v, err := strconv.Atoi(val)
		if err != nil {
			return false
		}
		s.IterationCount = v
	case "animation-fill-mode":
		switch val {
		case "forwards":
			s.FillMode = FillForwards
		case "none":
			s.FillMode = FillNone
		default:
			return false
		}
	default:
		return false
	}
	return true
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatSeconds(v float64) string {
	return formatFloat(v) + "s"
}

// parseSeconds accepts "1.5s" and "1500ms".
func parseSeconds(val string) (float64, error) {
	if ms, ok := strings.CutSuffix(val, "ms"); ok {
		v, err := strconv.ParseFloat(ms, 64)
		if err != nil {
			return 0, fmt.Errorf("funtext: bad time %q: %w", val, err)
		}
		return v / 1000, nil
	}
	v, err := strconv.ParseFloat(strings.TrimSuffix(val, "s"), 64)
	if err != nil {
		return 0, fmt.Errorf("funtext: bad time %q: %w", val, err)
	}
	return v, nil
}
