package funtext

import "image/color"

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication occurs at draw time.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default text color.
var ColorWhite = Color{1, 1, 1, 1}

// toRGBA converts to a premultiplied color.RGBA.
func (c Color) toRGBA() color.RGBA {
	return color.RGBA{
		R: uint8(clamp01(c.R*c.A) * 255),
		G: uint8(clamp01(c.G*c.A) * 255),
		B: uint8(clamp01(c.B*c.A) * 255),
		A: uint8(clamp01(c.A) * 255),
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// NodeType distinguishes element nodes from text nodes.
type NodeType uint8

const (
	NodeTypeElement NodeType = iota // tagged node with classes, attributes and children
	NodeTypeText                    // leaf carrying literal text content
)

// String returns "element" or "text".
func (t NodeType) String() string {
	switch t {
	case NodeTypeElement:
		return "element"
	case NodeTypeText:
		return "text"
	default:
		return "unknown"
	}
}

// FillMode controls whether an animation's final state persists after it ends.
type FillMode uint8

const (
	FillNone     FillMode = iota // no persistent end state
	FillForwards                 // hold the final keyframe once finished
)

// String returns the CSS keyword for the fill mode.
func (f FillMode) String() string {
	if f == FillForwards {
		return "forwards"
	}
	return "none"
}

// IterationInfinite marks an animation that repeats forever.
const IterationInfinite = -1
