//go:build ebiten

package app

import (
	"errors"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/sirupsen/logrus"

	"sandsim/internal/core"
	"sandsim/internal/render"
	"sandsim/internal/ui"
)

const hudWidth = 240

var brushKeys = []ebiten.Key{ebiten.KeyDigit0, ebiten.KeyDigit1, ebiten.KeyDigit2, ebiten.KeyDigit3}

// Game adapts a core simulation to the ebiten.Game interface.
type Game struct {
	session *Session
	painter *render.GridPainter
	hud     *ui.HUD
	overlay *ui.Overlay

	onColor  color.Color
	offColor color.Color

	scale int
}

// New constructs a Game for the provided simulation.
func New(sim core.Sim, scale int, seed int64, paused bool) *Game {
	if scale <= 0 {
		scale = 1
	}
	var palette []color.RGBA
	if pp, ok := sim.(core.PaletteProvider); ok {
		palette = pp.Palette()
	}
	session := NewSession(sim, seed, paused)
	return &Game{
		session:  session,
		painter:  render.NewGridPainter(sim.Size().W, sim.Size().H, palette),
		hud:      ui.NewHUD(sim, hudWidth, session.Status),
		overlay:  ui.NewOverlay(sim, scale),
		onColor:  color.White,
		offColor: color.Black,
		scale:    scale,
	}
}

// Reset reinitializes the simulation state with the provided seed.
func (g *Game) Reset(seed int64) {
	g.session.Reset(seed)
}

// Update handles per-frame logic and advances the simulation.
func (g *Game) Update() error {
	s := g.session
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		s.TogglePause()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		s.Play()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) || inpututil.IsKeyJustPressed(ebiten.KeyArrowRight) {
		s.StepOnce()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.Reset(s.Seed())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.Reset(time.Now().UnixNano())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		s.Clear()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) || inpututil.IsKeyJustPressed(ebiten.KeyArrowDown) {
		s.CycleBrush()
	}
	for i, key := range brushKeys {
		if inpututil.IsKeyJustPressed(key) {
			s.SelectBrush(i)
		}
	}

	g.paint()

	size := s.Sim().Size()
	g.hud.Update(size.W * g.scale)
	g.overlay.Update()

	s.Advance(true)
	return nil
}

func (g *Game) paint() {
	if !ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		return
	}
	size := g.session.Sim().Size()
	mx, my := ebiten.CursorPosition()
	x, y, ok := render.CellAt(mx, my, g.scale, size.W, size.H)
	if !ok {
		return
	}
	if err := g.session.PaintAt(x, y); err != nil && !errors.Is(err, ErrNotPaintable) {
		logrus.Warnf("paint (%d,%d): %v", x, y, err)
	}
}

// Draw renders the current simulation state.
func (g *Game) Draw(screen *ebiten.Image) {
	sim := g.session.Sim()
	g.painter.Blit(screen, sim.Cells(), g.onColor, g.offColor, g.scale)
	g.overlay.Draw(screen)
	g.hud.Draw(screen, sim.Size().W*g.scale, g.scale)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	s := g.session.Sim().Size()
	return s.W*g.scale + hudWidth, s.H * g.scale
}

// Run opens a window for sim and blocks until it is closed.
func Run(sim core.Sim, cfg *Config) error {
	game := New(sim, cfg.Scale, cfg.Seed, cfg.Paused)
	size := sim.Size()

	ebiten.SetWindowTitle("sandsim - " + sim.Name())
	ebiten.SetTPS(cfg.TPS)
	ebiten.SetWindowSize(size.W*game.scale+hudWidth, size.H*game.scale)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}
