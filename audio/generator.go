package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
)

// sweepGenerator is a rising sine chirp with a linear fade
type sweepGenerator struct {
	sr       beep.SampleRate
	from, to float64
	length   int
	pos      int
	phase    float64
}

func newSweepGenerator(sr beep.SampleRate, from, to float64, d time.Duration) *sweepGenerator {
	return &sweepGenerator{sr: sr, from: from, to: to, length: max(sr.N(d), 1)}
}

func (g *sweepGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		progress := math.Min(float64(g.pos)/float64(g.length), 1)
		freq := g.from + (g.to-g.from)*progress

		// Phase accumulation keeps the sweep click-free
		g.phase += 2 * math.Pi * freq / float64(g.sr)
		sample := 0.25 * (1 - progress) * math.Sin(g.phase)

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *sweepGenerator) Err() error {
	return nil
}

// chimeGenerator plays two tones back to back, each with exponential decay
type chimeGenerator struct {
	sr            beep.SampleRate
	first, second float64
	half          int
	pos           int
}

func newChimeGenerator(sr beep.SampleRate, first, second float64, d time.Duration) *chimeGenerator {
	return &chimeGenerator{sr: sr, first: first, second: second, half: max(sr.N(d)/2, 1)}
}

func (g *chimeGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		freq := g.first
		local := g.pos
		if g.pos >= g.half {
			freq = g.second
			local = g.pos - g.half
		}
		t := float64(local) / float64(g.sr)
		sample := 0.3 * math.Exp(-t*12) * math.Sin(2*math.Pi*freq*t)

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *chimeGenerator) Err() error {
	return nil
}

// buzzGenerator is a harmonic-rich low buzz with a short fade-in
type buzzGenerator struct {
	sr   beep.SampleRate
	freq float64
	pos  int
}

func newBuzzGenerator(sr beep.SampleRate, freq float64) *buzzGenerator {
	return &buzzGenerator{sr: sr, freq: freq}
}

func (g *buzzGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)

		sample := 0.3*math.Sin(2*math.Pi*g.freq*t) +
			0.15*math.Sin(2*math.Pi*g.freq*2*t) +
			0.075*math.Sin(2*math.Pi*g.freq*3*t)

		envelope := math.Min(t/0.02, 1.0)
		sample *= envelope * 0.5

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *buzzGenerator) Err() error {
	return nil
}

// noiseGenerator is decaying LCG noise over a low rumble
// Seeded explicitly so a cue always sounds the same
type noiseGenerator struct {
	sr   beep.SampleRate
	pos  int
	seed int64
}

func newNoiseGenerator(sr beep.SampleRate, seed int64) *noiseGenerator {
	return &noiseGenerator{sr: sr, seed: seed}
}

func (g *noiseGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)
		envelope := math.Exp(-t * 6)

		g.seed = (g.seed*1103515245 + 12345) & 0x7fffffff
		noise := float64(g.seed)/float64(0x7fffffff)*2 - 1
		rumble := 0.3 * math.Sin(2*math.Pi*60*t)

		sample := envelope * (0.4*noise + rumble)

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *noiseGenerator) Err() error {
	return nil
}
