package reinforce

import (
	"log/slog"
	"time"

	"github.com/veryipsum/IPC-AC-ExtendedCombat/internal/model"
	"github.com/veryipsum/IPC-AC-ExtendedCombat/internal/world"
)

// LifecycleGuard decides whether a strongpoint's standing defenders should
// continue to exist at all, independent of combat escalation. Rear-area
// garrisons thin out after a grace period; frontline ones never do.
//
// One guard instance per spawn point; not safe for concurrent use (only the
// owning spawn point's update tick touches it).
type LifecycleGuard struct {
	facade         *world.Facade
	frontlineRange float64
	grace          time.Duration

	inactiveSince time.Time
	tracking      bool
}

// NewLifecycleGuard creates a lifecycle guard.
func NewLifecycleGuard(facade *world.Facade, frontlineRange float64, grace time.Duration) *LifecycleGuard {
	return &LifecycleGuard{
		facade:         facade,
		frontlineRange: frontlineRange,
		grace:          grace,
	}
}

// ShouldRemainActive returns false only when the strongpoint is friendly-held,
// has had no enemy-held strongpoint within frontline range for longer than
// the grace period, and the timer was never reset in between.
//
// Fails open: missing collaborators must never cause premature teardown.
func (g *LifecycleGuard) ShouldRemainActive(now time.Time, sp *model.Strongpoint, defending *model.Faction) bool {
	if g == nil || g.facade == nil || sp == nil || defending == nil {
		return true
	}

	// Enemy-held strongpoints always keep their spawns running.
	if !sp.IsHeldBy(defending) {
		return true
	}

	if g.isFrontline(sp, defending) {
		g.tracking = false
		return true
	}

	if !g.tracking {
		g.tracking = true
		g.inactiveSince = now
		return true
	}

	if now.Sub(g.inactiveSince) > g.grace {
		slog.Info("rear-area strongpoint exceeded inactivity grace",
			"strongpoint", sp.Name(),
			"inactiveFor", now.Sub(g.inactiveSince))
		return false
	}

	return true
}

// isFrontline returns true if any enemy-held strongpoint lies within range.
func (g *LifecycleGuard) isFrontline(sp *model.Strongpoint, defending *model.Faction) bool {
	center := sp.Position()
	frontline := false

	g.facade.ForEachStrongpoint(func(other *model.Strongpoint) bool {
		if other == sp {
			return true
		}
		if !defending.IsHostileTo(other.Faction()) {
			return true
		}
		if center.WithinRange(other.Position(), g.frontlineRange) {
			frontline = true
			return false
		}
		return true
	})

	return frontline
}
