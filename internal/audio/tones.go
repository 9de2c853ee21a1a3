// Package audio turns game effects into short square-wave tone sequences,
// the way a piezo buzzer would play them.
package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/vovakirdan/maze-chase/internal/core"
)

// Tone is one note of an effect.
type Tone struct {
	Freq float64 // Hz; 0 is a rest
	Dur  time.Duration
}

// Pitches a 8 MHz timer produces with a 64 or 8 prescaler.
const (
	lowA  = 156.25
	lowB  = 178.57
	lowC  = 208.33
	highA = 1250.0
	highB = 1111.1
	highC = 1000.0
)

var patterns = map[core.Effect][]Tone{
	core.EffectDot: {
		{highA, 25 * time.Millisecond},
	},
	core.EffectPowerOn: {
		{lowA, 700 * time.Millisecond},
		{lowB, 300 * time.Millisecond},
		{lowC, 300 * time.Millisecond},
	},
	core.EffectCapture: {
		{lowA, 1700 * time.Millisecond},
	},
	core.EffectLifeLost: {
		{highA, 1200 * time.Millisecond},
		{highB, 500 * time.Millisecond},
		{highC, 500 * time.Millisecond},
	},
	core.EffectGameOver: {
		{highA, 600 * time.Millisecond},
		{highB, 600 * time.Millisecond},
		{highC, 600 * time.Millisecond},
		{0, 150 * time.Millisecond},
		{lowA, 1000 * time.Millisecond},
	},
	core.EffectLevelComplete: {
		{lowA * 4, 150 * time.Millisecond},
		{lowB * 4, 150 * time.Millisecond},
		{lowC * 4, 150 * time.Millisecond},
		{lowA * 8, 400 * time.Millisecond},
	},
}

// Pattern returns the tones played for e, or nil for a silent effect.
func Pattern(e core.Effect) []Tone {
	return patterns[e]
}

// square is a fixed-length square wave.
type square struct {
	freq     float64
	phase    float64
	length   int
	position int
	rate     beep.SampleRate
}

func newSquare(freq float64, d time.Duration, rate beep.SampleRate) *square {
	return &square{freq: freq, length: rate.N(d), rate: rate}
}

func (s *square) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if s.position >= s.length {
			return i, i > 0
		}
		val := 0.0
		if s.freq > 0 {
			val = 1.0
			if s.phase >= 0.5 {
				val = -1.0
			}
			s.phase += s.freq / float64(s.rate)
			s.phase -= math.Floor(s.phase)
		}
		// 2ms ramps at both ends avoid clicks.
		ramp := s.rate.N(2 * time.Millisecond)
		if ramp > 0 {
			edge := min(s.position, s.length-1-s.position)
			if edge < ramp {
				val *= float64(edge) / float64(ramp)
			}
		}
		samples[i][0] = val
		samples[i][1] = val
		s.position++
	}
	return len(samples), true
}

func (s *square) Err() error { return nil }

// Sequence renders tones into a single streamer at the given volume (0..1).
// It returns nil when there is nothing to play.
func Sequence(tones []Tone, rate beep.SampleRate, volume float64) beep.Streamer {
	if len(tones) == 0 || volume <= 0 {
		return nil
	}
	parts := make([]beep.Streamer, 0, len(tones))
	for _, t := range tones {
		parts = append(parts, newSquare(t.Freq, t.Dur, rate))
	}
	return &effects.Volume{
		Streamer: beep.Seq(parts...),
		Base:     2,
		Volume:   math.Log2(volume),
	}
}
