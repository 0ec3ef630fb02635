// Package game hosts the slide rule in an ebiten window: it feeds mouse,
// touch, wheel and keyboard input to a slide.Controller and paints its frames.
package game

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/ncruces/zenity"

	"github.com/iburimskiy/circular-rule/internal/config"
	"github.com/iburimskiy/circular-rule/internal/gesture"
	"github.com/iburimskiy/circular-rule/internal/slide"
	"github.com/iburimskiy/circular-rule/internal/spin"
)

type Game struct {
	cfg config.Config
	log *slog.Logger

	ctrl    *slide.Controller
	queue   *spin.Queue
	input   *pointerInput
	surface *screenSurface
	click   *clicker
	prompts *prompter

	// input edge detection
	prevKey map[ebiten.Key]bool
	focused bool

	// diagnostics shown under the status line
	soundErr error
	lastErr  error
}

func New(cfg config.Config, log *slog.Logger) (*Game, error) {
	surface, err := newScreenSurface()
	if err != nil {
		return nil, err
	}

	click, err := newClicker(cfg, log.With("component", "sound"))
	if err != nil {
		log.Warn("click sound disabled", "err", err)
	}

	g := &Game{
		cfg:      cfg,
		log:      log,
		queue:    spin.NewQueue(time.Now()),
		input:    newPointerInput(),
		surface:  surface,
		click:    click,
		prompts:  newPrompter(),
		prevKey:  map[ebiten.Key]bool{},
		focused:  true,
		soundErr: err,
	}
	g.ctrl = slide.New(slide.Options{
		Width:        float64(cfg.Width),
		Height:       float64(cfg.Height),
		MaxZoom:      cfg.MaxZoom,
		MaxTickDepth: cfg.MaxTickDepth,
		SpinDelay:    cfg.SpinDelay,
		Scheduler:    g.queue,
		Capturer:     g.input,
		Logger:       log,
		OnSnap:       func(gesture.Ring) { g.click.play() },
	})
	return g, nil
}

func (g *Game) Update() error {

	justPressed := func(k ebiten.Key) bool {
		pressed := ebiten.IsKeyPressed(k)
		jp := pressed && !g.prevKey[k]
		g.prevKey[k] = pressed
		return jp
	}

	g.queue.Advance(time.Now())

	if r, ok := g.prompts.poll(); ok {
		g.applyPrompt(r)
	}

	// Losing focus mid-drag would otherwise leave a pointer captured forever.
	focused := ebiten.IsFocused()
	if g.focused && !focused {
		g.ctrl.Tracker().Cancel()
	}
	g.focused = focused

	if !g.prompts.open() {
		g.input.poll(g.ctrl)
		if _, yoff := ebiten.Wheel(); yoff != 0 {
			g.ctrl.Wheel(-yoff * g.cfg.WheelLineDelta)
		}
	}

	fields := g.ctrl.Fields()
	if justPressed(ebiten.Key1) {
		g.prompts.askField(slide.FieldTop, fields.Top)
	}
	if justPressed(ebiten.Key2) {
		g.prompts.askField(slide.FieldOffset, fields.Offset)
	}
	if justPressed(ebiten.Key3) {
		g.prompts.askField(slide.FieldProduct, fields.Product)
	}
	if justPressed(ebiten.KeyM) {
		g.prompts.askMode(g.ctrl.View().Mode())
	}
	if justPressed(ebiten.KeyTab) {
		g.ctrl.SetMode(-g.ctrl.View().Mode())
	}
	if justPressed(ebiten.KeyEscape) || justPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}

	return nil
}

func (g *Game) applyPrompt(r promptResult) {
	switch {
	case errors.Is(r.err, zenity.ErrCanceled):
		return
	case r.err != nil:
		g.log.Warn("dialog failed", "err", r.err)
		g.lastErr = r.err
	case r.isMode:
		g.ctrl.SetMode(r.mode)
		g.lastErr = nil
	default:
		g.ctrl.SetField(r.field, r.text)
		g.lastErr = nil
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.surface.dst = screen
	g.ctrl.Draw(g.surface)

	ebitenutil.DebugPrintAt(screen, g.status(), 12, g.cfg.Height-36)
	if diag := g.diagnostics(); diag != "" {
		ebitenutil.DebugPrintAt(screen, diag, 12, g.cfg.Height-20)
	}
}

func (g *Game) status() string {
	v := g.ctrl.View()
	f := g.ctrl.Fields()
	status := fmt.Sprintf("[1] %s %s [2] %s = [3] %s   zoom %.4g", f.Top, v.Mode().Symbol(), f.Offset, f.Product, v.Zoom())
	if g.prompts.open() {
		status += "   (dialog open)"
	} else if g.ctrl.Spinning() {
		status += "   (spinning)"
	}
	return status
}

func (g *Game) diagnostics() string {
	var parts []string
	if g.soundErr != nil {
		parts = append(parts, "Sound off: "+g.soundErr.Error())
	}
	if g.lastErr != nil {
		parts = append(parts, "Error: "+g.lastErr.Error())
	}
	return strings.Join(parts, " | ")
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.cfg.Width, g.cfg.Height
}

// Run opens the window and blocks until the user quits.
func Run(cfg config.Config, log *slog.Logger) error {
	g, err := New(cfg, log)
	if err != nil {
		return err
	}
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowTitle(cfg.Title)
	log.Info("starting", "width", cfg.Width, "height", cfg.Height, "max_zoom", cfg.MaxZoom)
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("game loop failed: %w", err)
	}
	return nil
}

var (
	_ slide.Surface    = (*screenSurface)(nil)
	_ gesture.Capturer = (*pointerInput)(nil)
)
