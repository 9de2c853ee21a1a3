package core

// Effect is a fire-and-forget cue raised by the game for audio or visual feedback.
type Effect uint8

const (
	EffectNone Effect = iota
	EffectDot
	EffectPowerOn
	EffectPowerOff
	EffectCapture
	EffectLifeLost
	EffectLevelComplete
	EffectGameOver
)

// String returns a human-readable name for the effect.
func (e Effect) String() string {
	switch e {
	case EffectNone:
		return "none"
	case EffectDot:
		return "dot"
	case EffectPowerOn:
		return "power_on"
	case EffectPowerOff:
		return "power_off"
	case EffectCapture:
		return "capture"
	case EffectLifeLost:
		return "life_lost"
	case EffectLevelComplete:
		return "level_complete"
	case EffectGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// EffectTrigger receives effects. Implementations must not block.
type EffectTrigger interface {
	TriggerEffect(e Effect)
}

// EffectFunc adapts a function to EffectTrigger.
type EffectFunc func(e Effect)

// TriggerEffect implements EffectTrigger.
func (f EffectFunc) TriggerEffect(e Effect) { f(e) }

// Effects fans one effect out to several triggers. Nil entries are skipped.
type Effects []EffectTrigger

// TriggerEffect implements EffectTrigger.
func (fx Effects) TriggerEffect(e Effect) {
	for _, t := range fx {
		if t != nil {
			t.TriggerEffect(e)
		}
	}
}
