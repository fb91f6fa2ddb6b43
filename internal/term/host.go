// Package term runs a simulation inside a terminal using tcell.
package term

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/sirupsen/logrus"

	"sandsim/internal/app"
	"sandsim/internal/core"
	"sandsim/internal/render"
)

const (
	frameInterval = 16 * time.Millisecond
	defaultTPS    = 60
	minTPS        = 1
	maxTPS        = 240
)

var (
	statusStyle = tcell.StyleDefault.Foreground(tcell.ColorSilver).Background(tcell.ColorBlack)
	sourceIdle  = color.RGBA{R: 60, G: 200, B: 90, A: 255}
	sourceReady = color.RGBA{R: 250, G: 220, B: 60, A: 255}
)

// Host draws one grid cell per terminal cell and maps keys and mouse clicks
// onto a session. Only the goroutine running Run touches the simulation.
type Host struct {
	session *app.Session
	screen  tcell.Screen
	step    *core.FixedStep
	tps     int

	palette []color.RGBA
	glyphs  []rune

	showSources bool
	message     string
}

// New wraps sim for display on screen. The screen is initialised by Run.
func New(sim core.Sim, screen tcell.Screen, cfg *app.Config) *Host {
	tps := cfg.TPS
	if tps <= 0 {
		tps = defaultTPS
	}
	tps = clampTPS(tps)
	h := &Host{
		session: app.NewSession(sim, cfg.Seed, cfg.Paused),
		screen:  screen,
		step:    core.NewFixedStep(tps),
		tps:     tps,
	}
	if pp, ok := sim.(core.PaletteProvider); ok {
		h.palette = pp.Palette()
	}
	if gp, ok := sim.(core.GlyphProvider); ok {
		h.glyphs = gp.Glyphs()
	}
	return h
}

// Session exposes the host-side session state.
func (h *Host) Session() *app.Session { return h.session }

// TPS returns the current tick rate.
func (h *Host) TPS() int { return h.tps }

// Run takes over the terminal until the user quits or ctx is cancelled.
func (h *Host) Run(ctx context.Context) error {
	if err := h.screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer h.screen.Fini()
	h.screen.EnableMouse()
	h.screen.HideCursor()

	events := make(chan tcell.Event, 64)
	done := make(chan struct{})
	defer close(done)
	go pumpEvents(h.screen.PollEvent, events, done)

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	logrus.WithField("tps", h.tps).Debug("terminal host started")
	h.draw()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if !h.handleEvent(ev) {
				return nil
			}
			h.draw()
		case now := <-ticker.C:
			if h.session.Advance(h.step.ShouldStepAt(now)) {
				h.draw()
			}
		}
	}
}

// pumpEvents forwards polled events until poll returns nil or done is closed.
// events is closed when the screen stops delivering.
func pumpEvents(poll func() tcell.Event, events chan<- tcell.Event, done <-chan struct{}) {
	for {
		ev := poll()
		if ev == nil {
			close(events)
			return
		}
		select {
		case events <- ev:
		case <-done:
			return
		}
	}
}

// handleEvent applies a single terminal event. It reports false when the user
// asked to quit.
func (h *Host) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return h.handleKey(ev.Key(), ev.Rune())
	case *tcell.EventMouse:
		if ev.Buttons()&tcell.Button1 != 0 {
			x, y := ev.Position()
			h.paint(x, y)
		}
	case *tcell.EventResize:
		h.screen.Sync()
	}
	return true
}

func (h *Host) handleKey(key tcell.Key, r rune) bool {
	s := h.session
	switch key {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyEnter:
		s.Play()
		h.step.Reset()
		return true
	case tcell.KeyRight:
		s.StepOnce()
		return true
	case tcell.KeyTab, tcell.KeyDown:
		s.CycleBrush()
		return true
	case tcell.KeyRune:
	default:
		return true
	}

	switch {
	case r == 'q':
		return false
	case r == ' ':
		s.TogglePause()
		h.step.Reset()
	case r == 'n':
		s.StepOnce()
	case r == 'r':
		s.Reset(s.Seed())
	case r == 's':
		s.Reset(time.Now().UnixNano())
	case r == 'c':
		s.Clear()
	case r == 'g':
		h.showSources = !h.showSources
	case r == '+' || r == '=':
		h.setTPS(h.tps * 2)
	case r == '-':
		h.setTPS(h.tps / 2)
	case r >= '0' && r <= '9':
		s.SelectBrush(int(r - '0'))
	}
	return true
}

func (h *Host) setTPS(tps int) {
	h.tps = clampTPS(tps)
	h.step.SetTPS(h.tps)
}

func (h *Host) paint(x, y int) {
	size := h.session.Sim().Size()
	if x < 0 || y < 0 || x >= size.W || y >= size.H {
		return
	}
	err := h.session.PaintAt(x, y)
	switch {
	case err == nil:
		h.message = ""
	case errors.Is(err, app.ErrNotPaintable):
		h.message = "no brush support"
	default:
		h.message = err.Error()
		logrus.Warnf("paint (%d,%d): %v", x, y, err)
	}
}

func (h *Host) draw() {
	h.screen.Clear()
	sim := h.session.Sim()
	size := sim.Size()
	cells := sim.Cells()
	sw, sh := h.screen.Size()
	rows := min(size.H, sh-1)
	cols := min(size.W, sw)

	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			r, style := h.cellStyle(cells[y*size.W+x])
			h.screen.SetContent(x, y, r, nil, style)
		}
	}
	if h.showSources {
		h.drawSources(cells, size.W, cols, rows)
	}

	line := fmt.Sprintf("%s | %d tps", h.session.Status(), h.tps)
	if h.message != "" {
		line += " | " + h.message
	}
	h.drawText(0, max(rows, 0), line, statusStyle)
	h.screen.Show()
}

func (h *Host) drawSources(cells []uint8, stride, cols, rows int) {
	provider, ok := h.session.Sim().(core.SourceProvider)
	if !ok {
		return
	}
	for _, m := range provider.Sources() {
		if m.X < 0 || m.Y < 0 || m.X >= cols || m.Y >= rows {
			continue
		}
		r, style := h.cellStyle(cells[m.Y*stride+m.X])
		h.screen.SetContent(m.X, m.Y, r, nil, style.Background(rgb(blend(sourceIdle, sourceReady, m.Progress))))
	}
}

func (h *Host) drawText(x, y int, s string, style tcell.Style) {
	sw, _ := h.screen.Size()
	for _, r := range s {
		if x >= sw {
			return
		}
		h.screen.SetContent(x, y, r, nil, style)
		x++
	}
}

// cellStyle picks the rune and colors for a cell value. Zero cells render
// blank.
func (h *Host) cellStyle(v uint8) (rune, tcell.Style) {
	style := tcell.StyleDefault.Background(tcell.ColorBlack)
	if v == 0 {
		return ' ', style
	}
	r := '█'
	if int(v) < len(h.glyphs) {
		r = h.glyphs[v]
	}
	if len(h.palette) > 0 {
		style = style.Foreground(rgb(render.PaletteColor(h.palette, v)))
	}
	return r, style
}

func rgb(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

func blend(a, b color.RGBA, t float64) color.RGBA {
	t = max(0, min(1, t))
	mix := func(x, y uint8) uint8 { return uint8(float64(x) + (float64(y)-float64(x))*t + 0.5) }
	return color.RGBA{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: 255}
}

func clampTPS(tps int) int {
	return max(minTPS, min(maxTPS, tps))
}
