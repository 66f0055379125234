package reinforce

import (
	"github.com/veryipsum/IPC-AC-ExtendedCombat/internal/model"
	"github.com/veryipsum/IPC-AC-ExtendedCombat/internal/world"
)

// Detector decides whether a strongpoint is under active hostile engagement.
// It is a pure sample of the world per call; debouncing happens in the
// escalation state machine at tick granularity.
type Detector struct {
	facade *world.Facade
	radius float64
}

// NewDetector creates a combat detector with the given detection radius.
func NewDetector(facade *world.Facade, radius float64) *Detector {
	return &Detector{facade: facade, radius: radius}
}

// UnderAttack returns true iff the strongpoint is still held by the defending
// faction and at least one alive hostile actor is within the detection
// radius. Fails closed: any unresolved collaborator yields false.
//
// Faction comparison is identity comparison, never key comparison.
func (d *Detector) UnderAttack(sp *model.Strongpoint, defending *model.Faction) bool {
	if d == nil || d.facade == nil || sp == nil || defending == nil {
		return false
	}

	// Strongpoint already lost (or contested) — nothing to reinforce.
	if sp.Faction() != defending {
		return false
	}

	center := sp.Position()
	attacked := false

	d.facade.ForEachActor(func(a *model.Actor) bool {
		if !a.IsAlive() {
			return true
		}
		if !defending.IsHostileTo(a.Faction()) {
			return true
		}
		if center.WithinRange(a.Position(), d.radius) {
			attacked = true
			return false
		}
		return true
	})

	return attacked
}
