package funtext

import (
	"fmt"
	"math"
	"strings"

	"github.com/tanema/gween"
)

// Names of the two effects the engine assigns.
const (
	EffectLetterAppear = "fun-letter-appear"
	EffectWiggle       = "fun-wiggle"
)

// Pose is the visual transform of a unit at one instant. Offsets are in em
// (multiples of the font size); Rotation is in radians.
type Pose struct {
	OffsetX, OffsetY float64
	Rotation         float64
	Scale            float64
	Alpha            float64
}

// IdentityPose is the untransformed, fully visible pose.
var IdentityPose = Pose{Scale: 1, Alpha: 1}

// Effect is a named visual effect that can be sampled over one iteration.
type Effect interface {
	Name() string
	// Sample returns the pose at progress p in [0, 1] of a single iteration.
	// base supplies values for properties the effect does not animate.
	Sample(p float64, easing Easing, base Pose) Pose
	// CSS returns the @keyframes block for this effect.
	CSS() string
}

// Keyframe is one stop of a KeyframeEffect.
type Keyframe struct {
	Offset float64 // in [0, 1]
	Pose
}

// KeyframeEffect interpolates between keyframes with gween tweens, applying
// the timing function per segment.
type KeyframeEffect struct {
	name          string
	frames        []Keyframe
	defaultEasing Easing
	animatesAlpha bool
}

// NewKeyframeEffect creates an effect. Frames must be sorted by offset and
// start at 0 and end at 1. defaultEasing is used when the unit sets none.
func NewKeyframeEffect(name string, defaultEasing Easing, animatesAlpha bool, frames ...Keyframe) *KeyframeEffect {
	if len(frames) < 2 {
		panic("funtext: keyframe effect needs at least two frames")
	}
	return &KeyframeEffect{
		name:          name,
		frames:        frames,
		defaultEasing: defaultEasing,
		animatesAlpha: animatesAlpha,
	}
}

// Name returns the effect name.
func (e *KeyframeEffect) Name() string {
	return e.name
}

// Sample implements Effect.
func (e *KeyframeEffect) Sample(p float64, easing Easing, base Pose) Pose {
	if easing == (Easing{}) {
		easing = e.defaultEasing
	}
	p = clamp01(p)

	i := 0
	for i < len(e.frames)-2 && p >= e.frames[i+1].Offset {
		i++
	}
	from, to := e.frames[i], e.frames[i+1]
	span := float32(to.Offset - from.Offset)
	t := float32(p - from.Offset)
	fn := easing.Func()

	lerp := func(a, b float64) float64 {
		if span <= 0 {
			return b
		}
		v, _ := gween.New(float32(a), float32(b), span, fn).Set(t)
		return float64(v)
	}

	out := Pose{
		OffsetX:  lerp(from.OffsetX, to.OffsetX),
		OffsetY:  lerp(from.OffsetY, to.OffsetY),
		Rotation: lerp(from.Rotation, to.Rotation),
		Scale:    lerp(from.Scale, to.Scale),
		Alpha:    base.Alpha,
	}
	if e.animatesAlpha {
		out.Alpha = lerp(from.Alpha, to.Alpha)
	}
	return out
}

// CSS implements Effect.
func (e *KeyframeEffect) CSS() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "@keyframes %s {\n", e.name)
	for _, f := range e.frames {
		fmt.Fprintf(&sb, "  %s%% { ", formatFloat(math.Round(f.Offset*1000)/10))
		if e.animatesAlpha {
			fmt.Fprintf(&sb, "opacity: %s; ", formatFloat(f.Alpha))
		}
		fmt.Fprintf(&sb, "transform: translate(%sem, %sem) rotate(%sdeg) scale(%s); }\n",
			formatFloat(f.OffsetX), formatFloat(f.OffsetY),
			formatFloat(math.Round(f.Rotation*180/math.Pi*100)/100), formatFloat(f.Scale))
	}
	sb.WriteString("}\n")
	return sb.String()
}

func deg(d float64) float64 {
	return d * math.Pi / 180
}

// newLetterAppearEffect is a one-shot bounce-in: the unit rises, overshoots
// and settles while fading in.
func newLetterAppearEffect() *KeyframeEffect {
	return NewKeyframeEffect(EffectLetterAppear, EaseOut, true,
		Keyframe{Offset: 0, Pose: Pose{OffsetY: 0.6, Scale: 0.3, Alpha: 0}},
		Keyframe{Offset: 0.6, Pose: Pose{OffsetY: -0.1, Scale: 1.15, Alpha: 1}},
		Keyframe{Offset: 1, Pose: Pose{Scale: 1, Alpha: 1}},
	)
}

// newWiggleEffect is the continuous idle wobble. It does not touch opacity.
func newWiggleEffect() *KeyframeEffect {
	return NewKeyframeEffect(EffectWiggle, EaseInOut, false,
		Keyframe{Offset: 0, Pose: Pose{Scale: 1}},
		Keyframe{Offset: 0.25, Pose: Pose{OffsetY: -0.04, Rotation: deg(-4), Scale: 1}},
		Keyframe{Offset: 0.5, Pose: Pose{OffsetY: 0.03, Rotation: deg(3), Scale: 1}},
		Keyframe{Offset: 0.75, Pose: Pose{OffsetY: -0.02, Rotation: deg(-2), Scale: 1}},
		Keyframe{Offset: 1, Pose: Pose{Scale: 1}},
	)
}
