//go:build ebiten

package ui

import (
	"fmt"
	"image"
	"image/color"
	"strconv"

	"ml-gol/internal/core"
	"ml-gol/pkg/rgb"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

type generationReporter interface {
	Generation() int
}

// HUD renders the layer legend and parameter panel to the right of the
// simulation view.
type HUD struct {
	sim        core.Sim
	width      int
	panel      *ebiten.Image
	lastHeight int

	tunable  core.Tunable
	controls []hudControlState
	layers   []core.LayerInfo

	panelOffsetX int
	title        string
	legendTop    int

	pixel *ebiten.Image
}

// NewHUD constructs a HUD for the provided simulation and panel width.
func NewHUD(sim core.Sim, width int) *HUD {
	if width < 0 {
		width = 0
	}
	h := &HUD{sim: sim, width: width, title: fmt.Sprintf("%s  %dx%d", sim.Name(), sim.Size().W, sim.Size().H)}
	if width > 0 {
		h.pixel = ebiten.NewImage(1, 1)
		h.pixel.Fill(color.White)
	}
	h.legendTop = panelPadding + headerBaseline + infoSpacing
	if reporter, ok := sim.(core.LayerReporter); ok {
		h.layers = reporter.LayerInfo()
	}
	if tunable, ok := sim.(core.Tunable); ok {
		h.tunable = tunable
		for _, p := range tunable.Params() {
			h.controls = append(h.controls, hudControlState{param: p})
		}
		h.layoutControls()
	}
	return h
}

// Update refreshes layer populations and parameter values and handles clicks
// on the adjustment buttons.
func (h *HUD) Update(panelOffsetX int) {
	if h == nil {
		return
	}
	h.panelOffsetX = panelOffsetX
	if reporter, ok := h.sim.(core.LayerReporter); ok {
		h.layers = reporter.LayerInfo()
	}
	if h.tunable != nil {
		for i, p := range h.tunable.Params() {
			if i < len(h.controls) {
				h.controls[i].param = p
			}
		}
	}
	h.handleInput()
}

// Draw paints the HUD panel anchored to the right edge of the simulation view.
func (h *HUD) Draw(screen *ebiten.Image, offsetX int, scale int) {
	if h == nil || h.width <= 0 {
		return
	}
	if scale <= 0 {
		scale = 1
	}
	height := h.sim.Size().H * scale
	if height <= 0 {
		return
	}
	if h.panel == nil || h.panel.Bounds().Dx() != h.width || h.lastHeight != height {
		h.panel = ebiten.NewImage(h.width, height)
		h.lastHeight = height
	}
	h.panel.Fill(color.RGBA{R: 16, G: 16, B: 20, A: 255})
	h.drawLegend()
	h.drawControls()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(offsetX), 0)
	screen.DrawImage(h.panel, op)
}

func (h *HUD) handleInput() {
	if len(h.controls) == 0 || h.tunable == nil {
		return
	}
	if !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return
	}
	mx, my := ebiten.CursorPosition()
	if mx < h.panelOffsetX {
		return
	}
	px := mx - h.panelOffsetX
	for i := range h.controls {
		state := &h.controls[i]
		switch {
		case pointInRect(px, my, state.minusRect):
			h.applyAdjustment(state, -1)
			return
		case pointInRect(px, my, state.plusRect):
			h.applyAdjustment(state, 1)
			return
		}
	}
}

func (h *HUD) applyAdjustment(state *hudControlState, direction int) {
	target, ok := state.param.Adjust(direction)
	if !ok {
		return
	}
	if h.tunable.SetParam(state.param.Key, target) {
		state.param.Value = target
	}
}

func (h *HUD) drawLegend() {
	face := basicfont.Face7x13
	headerY := panelPadding + headerBaseline
	text.Draw(h.panel, h.title, face, panelPadding, headerY, color.RGBA{R: 200, G: 200, B: 210, A: 255})
	if gen, ok := h.sim.(generationReporter); ok {
		text.Draw(h.panel, "generation "+strconv.Itoa(gen.Generation()), face, panelPadding, headerY+18, color.RGBA{R: 160, G: 160, B: 170, A: 255})
	}

	for i, layer := range h.layers {
		top := h.legendTop + i*legendLine
		h.fillRect(image.Rect(panelPadding, top, panelPadding+swatchSize, top+swatchSize), layer.Color)
		label := fmt.Sprintf("%d %s %6d", i, rgb.Hex(layer.Color), layer.Alive)
		text.Draw(h.panel, label, face, panelPadding+swatchSize+buttonGap, top+swatchSize-1, color.RGBA{R: 220, G: 220, B: 230, A: 255})
	}
}

func (h *HUD) drawControls() {
	if h.panel == nil {
		return
	}
	face := basicfont.Face7x13
	for i := range h.controls {
		state := &h.controls[i]
		labelY := state.top + labelBaseline
		text.Draw(h.panel, state.param.Label, face, panelPadding, labelY, color.RGBA{R: 220, G: 220, B: 230, A: 255})

		value := state.param.Format()
		bounds := text.BoundString(face, value)
		valueX := state.minusRect.Min.X - buttonGap - bounds.Dx()
		text.Draw(h.panel, value, face, valueX, labelY, color.RGBA{R: 220, G: 220, B: 230, A: 255})

		_, minusEnabled := state.param.Adjust(-1)
		_, plusEnabled := state.param.Adjust(1)
		h.drawButton(state.minusRect, "-", minusEnabled)
		h.drawButton(state.plusRect, "+", plusEnabled)
	}
}

func (h *HUD) fillRect(rect image.Rectangle, col color.Color) {
	if h.pixel == nil {
		return
	}
	r, g, b, a := col.RGBA()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(rect.Dx()), float64(rect.Dy()))
	op.GeoM.Translate(float64(rect.Min.X), float64(rect.Min.Y))
	op.ColorM.Scale(float64(r)/0xffff, float64(g)/0xffff, float64(b)/0xffff, float64(a)/0xffff)
	h.panel.DrawImage(h.pixel, op)
}

func (h *HUD) drawButton(rect image.Rectangle, label string, enabled bool) {
	bg := color.RGBA{R: 54, G: 56, B: 64, A: 255}
	fg := color.RGBA{R: 230, G: 230, B: 240, A: 255}
	if !enabled {
		bg = color.RGBA{R: 32, G: 34, B: 40, A: 255}
		fg = color.RGBA{R: 120, G: 120, B: 130, A: 255}
	}
	h.fillRect(rect, bg)

	face := basicfont.Face7x13
	bounds := text.BoundString(face, label)
	x := rect.Min.X + (rect.Dx()-bounds.Dx())/2
	y := rect.Min.Y + (rect.Dy()-bounds.Dy())/2 + bounds.Dy()
	text.Draw(h.panel, label, face, x, y, fg)
}

func (h *HUD) layoutControls() {
	if len(h.controls) == 0 || h.width <= 0 {
		return
	}
	controlsTop := h.legendTop + len(h.layers)*legendLine + infoSpacing/2
	for i := range h.controls {
		top := controlsTop + i*lineHeight
		buttonY := top + (lineHeight-buttonSize)/2
		plusRect := image.Rect(h.width-panelPadding-buttonSize, buttonY, h.width-panelPadding, buttonY+buttonSize)
		minusRect := image.Rect(plusRect.Min.X-buttonGap-buttonSize, buttonY, plusRect.Min.X-buttonGap, buttonY+buttonSize)
		h.controls[i].top = top
		h.controls[i].minusRect = minusRect
		h.controls[i].plusRect = plusRect
	}
}

func pointInRect(x, y int, rect image.Rectangle) bool {
	return x >= rect.Min.X && x < rect.Max.X && y >= rect.Min.Y && y < rect.Max.Y
}

type hudControlState struct {
	param core.Param

	top       int
	minusRect image.Rectangle
	plusRect  image.Rectangle
}

const (
	panelPadding   = 12
	lineHeight     = 36
	legendLine     = 18
	swatchSize     = 12
	buttonSize     = 24
	buttonGap      = 6
	headerBaseline = 18
	labelBaseline  = 24
	infoSpacing    = 36
)
