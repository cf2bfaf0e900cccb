package main

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/lixenwraith/flappy-term/audio"
	"github.com/lixenwraith/flappy-term/config"
	"github.com/lixenwraith/flappy-term/core"
	"github.com/lixenwraith/flappy-term/engine"
	"github.com/lixenwraith/flappy-term/render"
	"github.com/lixenwraith/flappy-term/scene"
	"github.com/lixenwraith/flappy-term/status"
	"github.com/lixenwraith/flappy-term/terminal"
)

// maxStep caps simulation dt so a stalled frame cannot tunnel the bird through pipes
const maxStep = 100 * time.Millisecond

var errQuit = errors.New("quit requested")

type command int

const (
	cmdFlap command = iota
	cmdToggleFPS
	cmdResize
	cmdQuit
)

// app wires the world, scene and render pipeline onto one screen
type app struct {
	cfg    *config.Config
	logger *zap.Logger

	screen       tcell.Screen
	surface      *terminal.Surface
	world        *engine.World
	scene        *scene.Scene
	clock        *engine.FrameClock
	orchestrator *render.RenderOrchestrator
	entities     *render.EntityRenderer
	overlay      *render.FPSOverlay
	cues         *audio.CuePlayer

	registry *status.Registry
	score    *atomic.Int64
	skipped  *atomic.Int64

	commands chan command
	frame    uint64
}

func newApp(cfg *config.Config, screen tcell.Screen, provider engine.TimeProvider, logger *zap.Logger) (*app, error) {
	filter, err := cfg.Display.Filter()
	if err != nil {
		return nil, err
	}

	a := &app{
		cfg:      cfg,
		logger:   logger,
		screen:   screen,
		surface:  terminal.NewSurface(screen, cfg.Display.VirtualWidth, cfg.Display.VirtualHeight),
		world:    engine.NewWorld(),
		clock:    engine.NewFrameClock(provider, cfg.Frame.FPSWindow),
		cues:     audio.NewCuePlayer(cfg.Audio.Volume),
		registry: status.NewRegistry(),
		commands: make(chan command, 16),
	}
	a.score = a.registry.Ints.Get("scene.score")
	a.skipped = a.registry.Ints.Get("frame.skipped")

	if cfg.Audio.Enabled {
		if err := a.cues.Initialize(); err != nil {
			logger.Warn("audio unavailable, continuing muted", zap.Error(err))
		}
	}

	fonts := a.surface.Fonts()

	// Render pipeline: entity view first so its reader sees every scene insertion
	a.entities = render.NewEntityRenderer(a.world, fonts, cfg.Display.VirtualWidth, logger.Named("render"))
	a.overlay = render.NewFPSOverlay(a.clock, fonts, cfg.Diagnostics.Overlay())
	a.overlay.SetVisible(cfg.Diagnostics.ShowFPS)

	a.orchestrator = render.NewRenderOrchestrator(a.surface, a.world, logger.Named("render"))
	a.orchestrator.SetClearColor(cfg.Display.ClearRGB())
	a.orchestrator.SetFilterMode(filter)
	a.orchestrator.Register(a.entities, render.PriorityEntities)
	a.orchestrator.Register(a.overlay, render.PriorityDebug)
	a.orchestrator.AttachMetrics(a.registry)

	sceneCfg := scene.DefaultConfig(cfg.Display.VirtualWidth, cfg.Display.VirtualHeight)
	a.scene = scene.New(a.world, sceneCfg, a.cues, logger.Named("scene"))

	logger.Info("bootstrap complete",
		zap.Float64("virtual_width", cfg.Display.VirtualWidth),
		zap.Float64("virtual_height", cfg.Display.VirtualHeight),
		zap.Int("target_fps", cfg.Frame.TargetFPS),
		zap.String("clear_color", cfg.Display.ClearRGB().Hex()),
		zap.Int("entities", a.world.EntityCount()))
	return a, nil
}

// run drives input and frames until quit, ctx cancellation, or a fatal frame error
func (a *app) run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(guard(func() error {
		return a.pumpInput(ctx)
	}))
	g.Go(guard(func() error {
		err := a.loop(ctx)
		// Wake the poller so it observes cancellation
		a.screen.PostEvent(tcell.NewEventInterrupt(nil))
		return err
	}))

	err := g.Wait()
	if errors.Is(err, errQuit) {
		return nil
	}
	return err
}

// guard routes goroutine panics through the crash handler
func guard(fn func() error) func() error {
	return func() error {
		defer func() {
			if r := recover(); r != nil {
				core.HandleCrash(r)
			}
		}()
		return fn()
	}
}

func (a *app) pumpInput(ctx context.Context) error {
	for {
		ev := a.screen.PollEvent()
		if ev == nil {
			// Screen finalized
			return nil
		}
		if ctx.Err() != nil {
			return nil
		}

		var cmd command
		switch ev := ev.(type) {
		case *tcell.EventKey:
			c, ok := keyCommand(ev)
			if !ok {
				continue
			}
			cmd = c
		case *tcell.EventResize:
			cmd = cmdResize
		default:
			continue
		}

		select {
		case a.commands <- cmd:
		case <-ctx.Done():
			return nil
		}
	}
}

// keyCommand maps a key press to a command
func keyCommand(ev *tcell.EventKey) (command, bool) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return cmdQuit, true
	case tcell.KeyUp, tcell.KeyEnter:
		return cmdFlap, true
	case tcell.KeyRune:
		switch ev.Rune() {
		case ' ', 'w', 'k':
			return cmdFlap, true
		case 'f', 'F':
			return cmdToggleFPS, true
		case 'q', 'Q':
			return cmdQuit, true
		}
	}
	return 0, false
}

func (a *app) loop(ctx context.Context) error {
	ticker := time.NewTicker(time.Second / time.Duration(a.cfg.Frame.TargetFPS))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case cmd := <-a.commands:
			if err := a.apply(cmd); err != nil {
				return err
			}
		case <-ticker.C:
			if err := a.step(); err != nil {
				return err
			}
		}
	}
}

// apply executes one input command on the frame goroutine
func (a *app) apply(cmd command) error {
	switch cmd {
	case cmdFlap:
		a.world.RunSafe(a.scene.Flap)
	case cmdToggleFPS:
		visible := a.overlay.Toggle()
		a.logger.Debug("fps overlay toggled", zap.Bool("visible", visible))
	case cmdResize:
		a.surface.Sync()
	case cmdQuit:
		return errQuit
	}
	return nil
}

// step runs one frame: update the scene, then render
// A ResourceError skips the frame; anything else is fatal
func (a *app) step() error {
	a.clock.Tick()
	dt := min(a.clock.Delta(), maxStep)

	a.world.RunSafe(func() {
		a.scene.Update(dt)
	})
	a.score.Store(int64(a.scene.Score()))

	a.frame++
	err := a.orchestrator.RenderFrame(render.RenderContext{Frame: a.frame, DeltaTime: dt})
	if err == nil {
		return nil
	}
	var re *render.ResourceError
	if errors.As(err, &re) {
		a.skipped.Add(1)
		a.logger.Warn("frame skipped", zap.Uint64("frame", a.frame), zap.Error(err))
		return nil
	}
	return fmt.Errorf("frame %d: %w", a.frame, err)
}

func (a *app) close() {
	a.entities.Close()
	a.cues.Close()
	a.surface.Fini()
}
