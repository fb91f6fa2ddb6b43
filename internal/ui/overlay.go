//go:build ebiten

package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"sandsim/internal/core"
)

var (
	overlayIdle  = color.RGBA{R: 60, G: 200, B: 90, A: 160}
	overlayReady = color.RGBA{R: 250, G: 220, B: 60, A: 220}
)

// Overlay draws source readiness markers on top of the grid.
type Overlay struct {
	sim   core.Sim
	scale int
	show  bool
	pixel *ebiten.Image
}

// NewOverlay constructs a new overlay instance.
func NewOverlay(sim core.Sim, scale int) *Overlay {
	if scale <= 0 {
		scale = 1
	}
	o := &Overlay{sim: sim, scale: scale}
	o.pixel = ebiten.NewImage(1, 1)
	o.pixel.Fill(color.White)
	return o
}

// Update toggles the overlay with the G key.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyG) {
		o.show = !o.show
	}
}

// Draw renders one bar per source whose height tracks its progress.
func (o *Overlay) Draw(screen *ebiten.Image) {
	if !o.show {
		return
	}
	provider, ok := o.sim.(core.SourceProvider)
	if !ok {
		return
	}
	maxHeight := float64(o.scale * 3)
	for _, m := range provider.Sources() {
		col := lerpRGBA(overlayIdle, overlayReady, m.Progress)
		height := maxHeight * clamp01(m.Progress)
		if height < 1 {
			height = 1
		}
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(float64(o.scale), height)
		op.GeoM.Translate(float64(m.X*o.scale), float64(m.Y*o.scale))
		op.ColorScale.ScaleWithColor(col)
		screen.DrawImage(o.pixel, op)
	}
}

func lerpRGBA(a, b color.RGBA, t float64) color.RGBA {
	t = clamp01(t)
	return color.RGBA{
		R: lerpComponent(a.R, b.R, t),
		G: lerpComponent(a.G, b.G, t),
		B: lerpComponent(a.B, b.B, t),
		A: lerpComponent(a.A, b.A, t),
	}
}

func lerpComponent(a, b uint8, t float64) uint8 {
	return uint8(float64(a) + (float64(b)-float64(a))*t + 0.5)
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
