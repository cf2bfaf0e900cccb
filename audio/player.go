package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
)

// CuePlayer mixes cues onto the speaker
// All methods are safe before Initialize and after Close; they become no-ops
type CuePlayer struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	volume      float64
	initialized bool
	played      map[Cue]int
}

// NewCuePlayer creates a player with volume in [0,1]
func NewCuePlayer(volume float64) *CuePlayer {
	return &CuePlayer{
		mixer:  &beep.Mixer{},
		volume: min(max(volume, 0), 1),
		played: make(map[Cue]int),
	}
}

// Initialize opens the speaker; a second call is a no-op
func (p *CuePlayer) Initialize() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}
	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// Stream returns the finite, volume-scaled streamer for c
func (p *CuePlayer) Stream(c Cue) beep.Streamer {
	src := c.generator()
	if src == nil {
		return nil
	}
	return &effects.Gain{
		Streamer: beep.Take(c.Samples(), src),
		Gain:     p.volume - 1,
	}
}

// Play queues c on the mixer
func (p *CuePlayer) Play(c Cue) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	s := p.Stream(c)
	if s == nil {
		return
	}
	p.played[c]++

	// The speaker goroutine reads the mixer
	speaker.Lock()
	p.mixer.Add(s)
	speaker.Unlock()
}

// Played returns how many times c was queued
func (p *CuePlayer) Played(c Cue) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.played[c]
}

// Close silences the mixer
// beep has no speaker close that allows re-init, so the device stays open
func (p *CuePlayer) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	p.initialized = false
}
