package core

// Effect names a sound effect the game can trigger.
type Effect int

const (
	EffectHit Effect = iota
	EffectMiss
	EffectDamage
	EffectStart
	EffectGameOver

	effectCount
)

// Effects returns every known effect in declaration order.
func Effects() []Effect {
	out := make([]Effect, 0, effectCount)
	for e := Effect(0); e < effectCount; e++ {
		out = append(out, e)
	}
	return out
}

// String returns the effect name used in logs and config.
func (e Effect) String() string {
	switch e {
	case EffectHit:
		return "hit"
	case EffectMiss:
		return "miss"
	case EffectDamage:
		return "damage"
	case EffectStart:
		return "start"
	case EffectGameOver:
		return "gameOver"
	default:
		return "unknown"
	}
}
