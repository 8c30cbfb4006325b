//go:build ebiten

package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

// Overlay draws the status line and key help over the simulation view.
type Overlay struct {
	hidden bool
	pixel  *ebiten.Image
}

// NewOverlay constructs a new overlay instance.
func NewOverlay() *Overlay {
	o := &Overlay{pixel: ebiten.NewImage(1, 1)}
	o.pixel.Fill(color.White)
	return o
}

// Update toggles visibility on H.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		o.hidden = !o.hidden
	}
}

// Draw renders the overlay onto the provided screen.
func (o *Overlay) Draw(screen *ebiten.Image, s Status) {
	if o.hidden {
		return
	}
	face := basicfont.Face7x13
	height := screen.Bounds().Dy()

	lines := []string{s.Line(), KeyHelp}
	boxH := len(lines)*overlayLine + overlayPad
	boxW := 0
	for _, l := range lines {
		if w := text.BoundString(face, l).Dx(); w > boxW {
			boxW = w
		}
	}
	boxW += 2 * overlayPad

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(boxW), float64(boxH))
	op.GeoM.Translate(0, float64(height-boxH))
	op.ColorM.Scale(0, 0, 0, 0.6)
	screen.DrawImage(o.pixel, op)

	for i, l := range lines {
		y := height - boxH + (i+1)*overlayLine
		text.Draw(screen, l, face, overlayPad, y, color.RGBA{R: 230, G: 230, B: 240, A: 255})
	}
}

const (
	overlayPad  = 6
	overlayLine = 15
)
