package funtext

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// blockTags start and end a line when laid out.
var blockTags = map[string]bool{
	"body": true, "div": true, "p": true, "section": true, "article": true,
	"header": true, "footer": true, "li": true, "ul": true, "ol": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
}

// DrawOptions controls DrawDocument.
type DrawOptions struct {
	Face  *text.GoTextFace            // default face
	Faces map[string]*text.GoTextFace // faces by inline font-family, optional
	X, Y  float64                     // top-left of the text area
	Width float64                     // wrap width; 0 disables wrapping
	Color Color                       // text color; zero value means white
}

// LoadFace loads a TrueType face from raw TTF/OTF data at the given size.
func LoadFace(ttfData []byte, size float64) (*text.GoTextFace, error) {
	source, err := text.NewGoTextFaceSource(bytes.NewReader(ttfData))
	if err != nil {
		return nil, fmt.Errorf("funtext: failed to parse TTF data: %w", err)
	}
	return &text.GoTextFace{Source: source, Size: size}, nil
}

// placement is one laid-out run of text. unit is set for character units.
type placement struct {
	unit   *Node
	text   string
	family string
	x, y   float64
	w      float64
}

// layoutState is the cursor carried through layoutDocument.
type layoutState struct {
	left, right float64
	x, y        float64
	lineHeight  float64
	measure     func(s, family string) float64
	out         []placement
}

func (l *layoutState) newline() {
	l.x = l.left
	l.y += l.lineHeight
}

// layoutDocument flows the document into placements. Block elements break
// lines; everything else is inline. Plain text is placed per rune so it can
// wrap at any character.
func layoutDocument(root *Node, left, top, width, lineHeight float64, measure func(s, family string) float64) []placement {
	l := &layoutState{left: left, x: left, y: top, lineHeight: lineHeight, measure: measure}
	if width > 0 {
		l.right = left + width
	}
	l.layout(root, "")
	return l.out
}

func (l *layoutState) layout(n *Node, family string) {
	if n.Style.FontFamily != "" {
		family = n.Style.FontFamily
	}
	if n.Type == NodeTypeText {
		for _, r := range n.Text {
			l.place(nil, string(r), family)
		}
		return
	}
	if n.Tag == "br" {
		l.newline()
		return
	}
	block := blockTags[n.Tag]
	if block && l.x > l.left {
		l.newline()
	}
	if n.Style.HasAnimation() {
		l.place(n, n.TextContent(), family)
	} else {
		for _, c := range n.children {
			l.layout(c, family)
		}
	}
	if block && l.x > l.left {
		l.newline()
	}
}

func (l *layoutState) place(unit *Node, s, family string) {
	if unit == nil && strings.TrimSpace(s) == "" {
		// Whitespace collapses to a single space and is dropped at line start.
		if l.x == l.left {
			return
		}
		s = " "
	}
	w := l.measure(s, family)
	if l.right > 0 && l.x > l.left && l.x+w > l.right {
		l.newline()
	}
	l.out = append(l.out, placement{unit: unit, text: s, family: family, x: l.x, y: l.y, w: w})
	l.x += w
}

// DrawDocument paints doc onto dst, sampling every animated unit at the
// current document time.
func DrawDocument(dst *ebiten.Image, doc *Document, sheet *Stylesheet, opts DrawOptions) {
	if opts.Face == nil {
		return
	}
	faceFor := func(family string) *text.GoTextFace {
		if f, ok := opts.Faces[family]; ok && f != nil {
			return f
		}
		return opts.Face
	}
	m := opts.Face.Metrics()
	lineHeight := m.HAscent + m.HDescent + m.HLineGap

	measure := func(s, family string) float64 {
		return text.Advance(s, faceFor(family))
	}
	clr := opts.Color
	if clr == (Color{}) {
		clr = ColorWhite
	}

	now := doc.Time()
	for _, p := range layoutDocument(doc.Root(), opts.X, opts.Y, opts.Width, lineHeight, measure) {
		pose := IdentityPose
		if p.unit != nil {
			pose = sheet.Sample(p.unit, now)
		}
		if pose.Alpha <= 0 {
			continue
		}
		face := faceFor(p.family)
		op := &text.DrawOptions{}
		// Transform around the glyph center.
		op.GeoM.Translate(-p.w/2, -lineHeight/2)
		op.GeoM.Scale(pose.Scale, pose.Scale)
		op.GeoM.Rotate(pose.Rotation)
		op.GeoM.Translate(
			p.x+p.w/2+pose.OffsetX*face.Size,
			p.y+lineHeight/2+pose.OffsetY*face.Size,
		)
		op.ColorScale.ScaleWithColor(clr.toRGBA())
		op.ColorScale.ScaleAlpha(float32(pose.Alpha))
		text.Draw(dst, p.text, face, op)
	}
}
