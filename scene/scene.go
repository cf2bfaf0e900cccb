// Package scene runs a small flappy game on top of the entity world.
// It exists to drive the render core: spawning pipes inserts renderables,
// scrolling them off screen removes them, and banner toggles modify them.
package scene

import (
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/lixenwraith/flappy-term/asset"
	"github.com/lixenwraith/flappy-term/audio"
	"github.com/lixenwraith/flappy-term/component"
	"github.com/lixenwraith/flappy-term/core"
	"github.com/lixenwraith/flappy-term/engine"
	"github.com/lixenwraith/flappy-term/vmath"
)

// Z layers, back to front
const (
	zBackground = -10
	zPipes      = 0
	zGround     = 5
	zBird       = 10
	zHUD        = 20
)

// CuePlayer receives game sound cues
type CuePlayer interface {
	Play(c audio.Cue)
}

// Config tunes the scene in virtual viewport units
type Config struct {
	Width, Height float64
	Seed          uint64

	Gravity      float64 // units/s^2
	FlapVelocity float64 // units/s, upward
	PipeSpeed    float64 // units/s, leftward
	PipeInterval time.Duration
	PipeGap      float64
	GroundHeight float64
}

// DefaultConfig fits a board of the given size
func DefaultConfig(width, height float64) Config {
	return Config{
		Width:        width,
		Height:       height,
		Seed:         uint64(time.Now().UnixNano()),
		Gravity:      60,
		FlapVelocity: 18,
		PipeSpeed:    20,
		PipeInterval: 2 * time.Second,
		PipeGap:      8,
		GroundHeight: 2,
	}
}

type pipePair struct {
	top, bottom core.Entity
	x           float64
	scored      bool
}

// Scene owns the game entities and advances them once per frame
// Not safe for concurrent use; the frame loop calls it under World.RunSafe
type Scene struct {
	world  *engine.World
	cfg    Config
	cues   CuePlayer
	rng    *vmath.FastRand
	logger *zap.Logger

	bird      core.Entity
	scoreText core.Entity
	banner    core.Entity

	birdX, birdY float64
	velocity     float64
	pipes        []pipePair
	spawnIn      time.Duration
	score        int
	over         bool
}

// New builds the static entities and the bird
func New(world *engine.World, cfg Config, cues CuePlayer, logger *zap.Logger) *Scene {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.PipeInterval <= 0 {
		cfg.PipeInterval = 2 * time.Second
	}
	s := &Scene{
		world:  world,
		cfg:    cfg,
		cues:   cues,
		rng:    vmath.NewFastRand(cfg.Seed),
		logger: logger,
		birdX:  math.Round(cfg.Width / 5),
	}
	s.buildStatic()
	s.Reset()
	return s
}

func (s *Scene) groundY() float64 {
	return s.cfg.Height - s.cfg.GroundHeight
}

func (s *Scene) buildStatic() {
	w := s.world

	for i, x := range []float64{s.cfg.Width * 0.1, s.cfg.Width * 0.55} {
		eb := w.NewEntity()
		engine.With(eb, w.Positions, component.PositionComponent{X: x, Y: float64(2 + 3*i), Z: zBackground})
		engine.With(eb, w.Images, component.ImageComponent{Sprite: cloudSprite})
		engine.With(eb, w.Renderables, component.RenderComponent{Visible: true})
		eb.Build()
	}

	ground := asset.Fill("ground", int(math.Ceil(s.cfg.Width)), int(math.Ceil(s.cfg.GroundHeight)), colorGround)
	eb := w.NewEntity()
	engine.With(eb, w.Positions, component.PositionComponent{Y: s.groundY(), Z: zGround})
	engine.With(eb, w.Images, component.ImageComponent{Sprite: ground})
	engine.With(eb, w.Renderables, component.RenderComponent{Visible: true})
	eb.Build()

	eb = w.NewEntity()
	engine.With(eb, w.Positions, component.PositionComponent{X: s.birdX, Y: s.cfg.Height / 3, Z: zBird})
	engine.With(eb, w.Rotations, component.RotationComponent{X: pivotX, Y: pivotY})
	engine.With(eb, w.Images, component.ImageComponent{Sprite: birdSprite})
	engine.With(eb, w.Renderables, component.RenderComponent{Visible: true})
	s.bird = eb.Build()

	eb = w.NewEntity()
	engine.With(eb, w.Positions, component.PositionComponent{Y: 1, Z: zHUD})
	engine.With(eb, w.Texts, component.TextComponent{
		Text:     "0",
		Font:     component.FontFlappy,
		FontSize: 16,
		Color:    colorScore,
		Align:    component.AlignCentered,
	})
	engine.With(eb, w.Renderables, component.RenderComponent{Visible: true})
	s.scoreText = eb.Build()

	eb = w.NewEntity()
	engine.With(eb, w.Positions, component.PositionComponent{Y: math.Round(s.cfg.Height/2) - 2, Z: zHUD})
	engine.With(eb, w.Texts, component.TextComponent{
		Text:     "game over - space to retry",
		Font:     component.FontFlappy,
		FontSize: 12,
		Color:    colorBanner,
		Align:    component.AlignCentered,
	})
	engine.With(eb, w.Renderables, component.RenderComponent{Visible: false})
	s.banner = eb.Build()
}

// Reset clears pipes and score and puts the bird back
func (s *Scene) Reset() {
	s.despawn(s.pipes)
	s.pipes = s.pipes[:0]
	s.score = 0
	s.over = false
	s.birdY = math.Round(s.cfg.Height / 3)
	s.velocity = 0
	s.spawnIn = s.cfg.PipeInterval

	s.placeBird()
	s.setScore(0)
	if r, ok := s.world.Renderables.Get(s.banner); ok && r.Visible {
		s.world.Renderables.Set(s.banner, component.RenderComponent{Visible: false})
	}
}

// Flap kicks the bird upward, or restarts after game over
func (s *Scene) Flap() {
	if s.over {
		s.logger.Info("round restarted")
		s.Reset()
		return
	}
	s.velocity = -s.cfg.FlapVelocity
	s.play(audio.CueJump)
}

// Update advances the simulation by dt
func (s *Scene) Update(dt time.Duration) {
	if s.over || dt <= 0 {
		return
	}
	sec := dt.Seconds()

	s.velocity += s.cfg.Gravity * sec
	s.birdY += s.velocity * sec
	if top := float64(pivotY); s.birdY < top {
		s.birdY = top
		s.velocity = 0
	}
	s.placeBird()

	s.spawnIn -= dt
	for s.spawnIn <= 0 {
		s.spawnPipe()
		s.spawnIn += s.cfg.PipeInterval
	}

	s.scrollPipes(sec)

	if s.collided() {
		s.gameOver()
	}
}

func (s *Scene) placeBird() {
	y := s.birdY
	s.world.Positions.Modify(s.bird, func(p *component.PositionComponent) {
		p.Y = y
	})
	deg := vmath.Clamp(s.velocity*3, -30, 90)
	s.world.Rotations.Modify(s.bird, func(r *component.RotationComponent) {
		r.Deg = deg
	})
}

func (s *Scene) spawnPipe() {
	ground := s.groundY()
	gapTop := math.Round(s.rng.Range(2, ground-s.cfg.PipeGap-2))
	bottomY := gapTop + s.cfg.PipeGap
	bottomH := max(ground-bottomY, 0)
	x := s.cfg.Width

	p := pipePair{x: x}
	p.top = s.buildPipe(component.PipeTop, x, 0, gapTop)
	p.bottom = s.buildPipe(component.PipeBottom, x, bottomY, bottomH)
	s.pipes = append(s.pipes, p)
}

func (s *Scene) buildPipe(side component.PipeSide, x, y, h float64) core.Entity {
	w := s.world
	eb := w.NewEntity()
	engine.With(eb, w.Positions, component.PositionComponent{X: x, Y: y, Z: zPipes})
	engine.With(eb, w.Sizes, component.SizeComponent{W: pipeW, H: h})
	engine.With(eb, w.Images, component.ImageComponent{Sprite: asset.Fill("pipe", pipeW, int(h), colorPipe)})
	engine.With(eb, w.Pipes, component.PipeComponent{Side: side})
	engine.With(eb, w.Renderables, component.RenderComponent{Visible: true})
	return eb.Build()
}

func (s *Scene) scrollPipes(sec float64) {
	dx := s.cfg.PipeSpeed * sec
	var expired []pipePair
	kept := s.pipes[:0]
	for _, p := range s.pipes {
		p.x -= dx
		if p.x+pipeW < 0 {
			expired = append(expired, p)
			continue
		}
		x := p.x
		move := func(pos *component.PositionComponent) { pos.X = x }
		s.world.Positions.Modify(p.top, move)
		s.world.Positions.Modify(p.bottom, move)

		if !p.scored && p.x+pipeW < s.birdX-pivotX {
			p.scored = true
			s.setScore(s.score + 1)
			s.play(audio.CueScore)
		}
		kept = append(kept, p)
	}
	clear(s.pipes[len(kept):])
	s.pipes = kept
	s.despawn(expired)
}

// despawn destroys both halves of every pair in one batch
func (s *Scene) despawn(pairs []pipePair) {
	if len(pairs) == 0 {
		return
	}
	es := make([]core.Entity, 0, 2*len(pairs))
	for _, p := range pairs {
		es = append(es, p.top, p.bottom)
	}
	s.world.DestroyEntities(es)
}

func (s *Scene) birdBox() vmath.Box {
	return vmath.Box{X: s.birdX - pivotX, Y: s.birdY - pivotY, W: birdW, H: birdH}
}

func (s *Scene) collided() bool {
	bird := s.birdBox()
	if bird.Y+bird.H >= s.groundY() {
		return true
	}
	for _, e := range s.world.Query().With(s.world.Pipes, s.world.Positions, s.world.Sizes).Execute() {
		pos, _ := s.world.Positions.Get(e)
		size, _ := s.world.Sizes.Get(e)
		if bird.Overlaps(vmath.Box{X: pos.X, Y: pos.Y, W: size.W, H: size.H}) {
			return true
		}
	}
	return false
}

func (s *Scene) gameOver() {
	s.over = true
	s.play(audio.CueHurt)
	s.play(audio.CueExplosion)
	s.world.Renderables.Set(s.banner, component.RenderComponent{Visible: true})
	s.logger.Info("round over", zap.Int("score", s.score))
}

func (s *Scene) setScore(n int) {
	s.score = n
	text := fmt.Sprintf("%d", n)
	s.world.Texts.Modify(s.scoreText, func(t *component.TextComponent) {
		t.Text = text
	})
}

func (s *Scene) play(c audio.Cue) {
	if s.cues != nil {
		s.cues.Play(c)
	}
}

// Score returns pipes passed this round
func (s *Scene) Score() int {
	return s.score
}

// Over reports whether the round ended
func (s *Scene) Over() bool {
	return s.over
}

// Bird returns the bird entity
func (s *Scene) Bird() core.Entity {
	return s.bird
}

// Banner returns the game over text entity
func (s *Scene) Banner() core.Entity {
	return s.banner
}

// Pipes returns the number of live pipe pairs
func (s *Scene) Pipes() int {
	return len(s.pipes)
}
