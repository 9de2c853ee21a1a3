package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/maze-chase/internal/core"
)

const sampleRate = beep.SampleRate(44100)

// Player plays effect tones on the default audio device. It implements
// core.EffectTrigger and never blocks the caller.
type Player struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	volume      float64
	muted       bool
	initialized bool
}

// NewPlayer creates a player at the given volume (0..1).
// Init must succeed before anything is heard.
func NewPlayer(volume float64) *Player {
	return &Player{
		mixer:  &beep.Mixer{},
		volume: min(max(volume, 0), 1),
	}
}

// Init opens the speaker.
func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(50*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// SetMuted silences or restores effects. Sounds already playing finish.
func (p *Player) SetMuted(muted bool) {
	p.mu.Lock()
	p.muted = muted
	p.mu.Unlock()
}

// Muted reports whether effects are silenced.
func (p *Player) Muted() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.muted
}

// TriggerEffect implements core.EffectTrigger.
func (p *Player) TriggerEffect(e core.Effect) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized || p.muted {
		return
	}
	s := Sequence(Pattern(e), sampleRate, p.volume)
	if s == nil {
		return
	}
	speaker.Lock()
	if e == core.EffectLifeLost || e == core.EffectGameOver {
		p.mixer.Clear()
	}
	p.mixer.Add(s)
	speaker.Unlock()
}

// Close stops all sounds.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	p.initialized = false
}
