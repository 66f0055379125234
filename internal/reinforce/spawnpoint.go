package reinforce

import (
	"sync/atomic"
	"time"

	"github.com/veryipsum/IPC-AC-ExtendedCombat/internal/model"
	"github.com/veryipsum/IPC-AC-ExtendedCombat/internal/patrol"
)

// SpawnPoint is one coordination participant: it maintains standing defenders
// for a nearby strongpoint through its patrol cycle, and if elected
// coordinator it additionally drives the escalation timeline.
//
// The strongpoint reference is resolved lazily; election is deferred until
// after resolution plus a settling delay so sibling spawn points have time to
// register.
type SpawnPoint struct {
	id       uint32
	faction  *model.Faction
	position model.Position

	cycle *patrol.Cycle
	guard *LifecycleGuard

	strongpoint   atomic.Pointer[model.Strongpoint]
	isCoordinator atomic.Bool
	electionInit  atomic.Bool // coordinator selection has been scheduled
	dormant       atomic.Bool // lifecycle guard tore down standing defenders

	// Coordinator-owned state, created on promotion and discarded with the
	// spawn point. Never touched by non-coordinators.
	escalation *Escalation
	assets     *WaveAssets

	stopCoord chan struct{} // closes the coordinator ticker, nil when not running
}

// NewSpawnPoint creates a spawn point.
// The patrol cycle and lifecycle guard are owned by the spawn point; the
// strongpoint is bound later during preparation.
func NewSpawnPoint(id uint32, faction *model.Faction, position model.Position, cycle *patrol.Cycle, guard *LifecycleGuard) *SpawnPoint {
	return &SpawnPoint{
		id:       id,
		faction:  faction,
		position: position,
		cycle:    cycle,
		guard:    guard,
	}
}

// ID returns the spawn point's stable identity (the election tie-break).
func (s *SpawnPoint) ID() uint32 {
	return s.id
}

// Faction returns the defending faction this spawn point serves.
func (s *SpawnPoint) Faction() *model.Faction {
	return s.faction
}

// Position returns the spawn point's world position.
func (s *SpawnPoint) Position() model.Position {
	return s.position
}

// Strongpoint returns the bound strongpoint, nil before preparation.
func (s *SpawnPoint) Strongpoint() *model.Strongpoint {
	return s.strongpoint.Load()
}

// IsCoordinator returns whether this spawn point drives the escalation
// timeline for its strongpoint.
func (s *SpawnPoint) IsCoordinator() bool {
	return s.isCoordinator.Load()
}

// Cycle returns the spawn point's patrol cycle.
func (s *SpawnPoint) Cycle() *patrol.Cycle {
	return s.cycle
}

// Assets returns the coordinator's tracked wave assets, nil for
// non-coordinators.
func (s *SpawnPoint) Assets() *WaveAssets {
	return s.assets
}

// Escalation returns the coordinator's state machine, nil for
// non-coordinators.
func (s *SpawnPoint) Escalation() *Escalation {
	return s.escalation
}

// bindStrongpoint records the resolved strongpoint reference.
func (s *SpawnPoint) bindStrongpoint(sp *model.Strongpoint) {
	s.strongpoint.Store(sp)
}

// promote marks the spawn point coordinator and creates its owned state.
// Idempotent: promoting an already-promoted spawn point keeps its state.
func (s *SpawnPoint) promote(waves []WaveSpec, cooldown time.Duration) {
	if s.escalation == nil {
		s.escalation = NewEscalation(waves, cooldown)
		s.assets = NewWaveAssets()
	}
	s.isCoordinator.Store(true)
}

// demote clears the coordinator flag. Owned state stays allocated; it is
// only reachable through coordinator ticks, which stop with the flag.
func (s *SpawnPoint) demote() {
	s.isCoordinator.Store(false)
}
