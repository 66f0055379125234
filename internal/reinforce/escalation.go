package reinforce

import (
	"log/slog"
	"time"
)

// CombatState is the per-strongpoint escalation bookkeeping, owned
// exclusively by the coordinator spawn point.
//
// Invariant: combatStart is set iff active; currentWave only grows while
// active and resets to 0 exactly when active flips to false.
type CombatState struct {
	active      bool
	combatStart time.Time
	lastWave    time.Time
	hasLastWave bool
	currentWave int32
}

// Active returns whether an engagement is being tracked.
func (s CombatState) Active() bool {
	return s.active
}

// CurrentWave returns the last fired wave number (0 = none).
func (s CombatState) CurrentWave() int32 {
	return s.currentWave
}

// CombatStart returns when the tracked engagement began.
// Only meaningful while Active.
func (s CombatState) CombatStart() time.Time {
	return s.combatStart
}

// Result reports what one escalation evaluation did.
type Result struct {
	Started bool      // engagement tracking began this tick
	Ended   bool      // engagement ended and state was reset this tick
	Fired   *WaveSpec // wave fired this tick, nil if none

	// Set when Ended: how far the engagement escalated and how long it ran.
	PeakWave int32
	Duration time.Duration
}

// Escalation is the wave-escalation state machine for one strongpoint.
// Not safe for concurrent use: only the coordinator's tick touches it.
type Escalation struct {
	waves    []WaveSpec // highest wave number first
	maxWave  int32
	cooldown time.Duration
	state    CombatState
}

// NewEscalation creates an escalation state machine over the given wave table.
func NewEscalation(waves []WaveSpec, cooldown time.Duration) *Escalation {
	sorted := sortWavesDescending(waves)
	var maxWave int32
	if len(sorted) > 0 {
		maxWave = sorted[0].Number
	}
	return &Escalation{
		waves:    sorted,
		maxWave:  maxWave,
		cooldown: cooldown,
	}
}

// State returns a copy of the current combat state.
func (e *Escalation) State() CombatState {
	return e.state
}

// Evaluate advances the state machine one tick with the detector verdict as
// input and returns what happened.
//
// Waves are evaluated highest-first so a long uninterrupted engagement jumps
// straight to the most advanced applicable wave; superseded lower waves never
// fire. At most one wave fires per tick. Disengagement is a full reset, not a
// pause: re-engagement restarts the timeline from zero.
func (e *Escalation) Evaluate(now time.Time, combatActive bool) Result {
	var res Result

	if combatActive && !e.state.active {
		e.state.active = true
		e.state.combatStart = now
		res.Started = true
	}

	if !combatActive && e.state.active {
		res.Ended = true
		res.PeakWave = e.state.currentWave
		res.Duration = now.Sub(e.state.combatStart)
		e.state = CombatState{}
		return res
	}

	if !e.state.active {
		return res
	}

	// Terminal: the engagement stays tracked but nothing more can fire.
	if e.state.currentWave >= e.maxWave {
		return res
	}

	if e.state.hasLastWave && now.Sub(e.state.lastWave) < e.cooldown {
		return res
	}

	elapsed := now.Sub(e.state.combatStart)
	for i := range e.waves {
		w := e.waves[i]
		if w.Number <= e.state.currentWave {
			break
		}
		if w.Threshold <= elapsed {
			e.state.currentWave = w.Number
			e.state.lastWave = now
			e.state.hasLastWave = true
			res.Fired = &w

			slog.Debug("wave threshold reached",
				"wave", w.Number,
				"elapsed", elapsed,
				"threshold", w.Threshold)
			break
		}
	}

	return res
}
