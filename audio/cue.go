// Package audio synthesizes the game's sound cues with beep.
// Cues are generated rather than decoded, so the package needs no asset files.
package audio

import (
	"time"

	"github.com/gopxl/beep"
)

const sampleRate = beep.SampleRate(48000)

// Cue selects one of the game sounds
type Cue uint8

const (
	CueJump Cue = iota
	CueScore
	CueHurt
	CueExplosion
)

func (c Cue) String() string {
	switch c {
	case CueJump:
		return "jump"
	case CueScore:
		return "score"
	case CueHurt:
		return "hurt"
	case CueExplosion:
		return "explosion"
	default:
		return "unknown"
	}
}

// Duration is the playback length of the cue
func (c Cue) Duration() time.Duration {
	switch c {
	case CueJump:
		return 120 * time.Millisecond
	case CueScore:
		return 250 * time.Millisecond
	case CueHurt:
		return 150 * time.Millisecond
	case CueExplosion:
		return 400 * time.Millisecond
	default:
		return 0
	}
}

// Samples is the cue length in frames at the package sample rate
func (c Cue) Samples() int {
	return sampleRate.N(c.Duration())
}

// generator returns the unbounded source for c, nil for unknown cues
func (c Cue) generator() beep.Streamer {
	switch c {
	case CueJump:
		return newSweepGenerator(sampleRate, 300, 900, c.Duration())
	case CueScore:
		return newChimeGenerator(sampleRate, 880, 1320, c.Duration())
	case CueHurt:
		return newBuzzGenerator(sampleRate, 120)
	case CueExplosion:
		return newNoiseGenerator(sampleRate, 0x5eed)
	default:
		return nil
	}
}
