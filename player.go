package funtext

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Player is an ebiten.Game that advances a document's clock every tick and
// paints it with DrawDocument.
type Player struct {
	Doc        *Document
	Sheet      *Stylesheet
	Options    DrawOptions
	Width      int
	Height     int
	Background Color

	// ShowFPS draws an FPS/TPS readout on top of the document.
	ShowFPS bool

	// UpdateFunc, if set, runs after the document clock advances.
	UpdateFunc func() error

	fps fpsOverlay
}

// Update advances the document by one tick.
func (p *Player) Update() error {
	dt := 1.0 / float64(ebiten.TPS())
	p.Doc.Update(dt)
	if p.ShowFPS {
		p.fps.update(dt)
	}
	if p.UpdateFunc != nil {
		return p.UpdateFunc()
	}
	return nil
}

// Draw clears the screen and paints the document.
func (p *Player) Draw(screen *ebiten.Image) {
	screen.Fill(p.Background.toRGBA())
	DrawDocument(screen, p.Doc, p.Sheet, p.Options)
	if p.ShowFPS {
		p.fps.draw(screen)
	}
}

// Layout returns the configured logical screen size.
func (p *Player) Layout(_, _ int) (int, int) {
	return p.Width, p.Height
}

// RunConfig configures Run.
type RunConfig struct {
	Title   string
	Width   int
	Height  int
	ShowFPS bool
}

// Run opens a window and plays p until the window is closed.
func Run(p *Player, cfg RunConfig) error {
	if cfg.Width > 0 && cfg.Height > 0 {
		p.Width, p.Height = cfg.Width, cfg.Height
	}
	if cfg.ShowFPS {
		p.ShowFPS = true
	}
	ebiten.SetWindowSize(p.Width, p.Height)
	ebiten.SetWindowTitle(cfg.Title)
	return ebiten.RunGame(p)
}
