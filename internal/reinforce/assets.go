package reinforce

import (
	"log/slog"
	"sync"

	"github.com/veryipsum/IPC-AC-ExtendedCombat/internal/model"
	"github.com/veryipsum/IPC-AC-ExtendedCombat/internal/world"
)

// WaveAssets tracks the live entities created by the most recent wave
// trigger. Owned exclusively by the coordinator spawn point; waves do not
// stack, so a new trigger cleans these up first.
type WaveAssets struct {
	mu       sync.Mutex
	groups   []*model.UnitGroup
	vehicles []*model.Vehicle
}

// NewWaveAssets creates an empty asset tracker.
func NewWaveAssets() *WaveAssets {
	return &WaveAssets{}
}

// TrackGroup adds a spawned group to the tracked set.
func (a *WaveAssets) TrackGroup(g *model.UnitGroup) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.groups = append(a.groups, g)
}

// TrackVehicle adds a spawned vehicle to the tracked set.
func (a *WaveAssets) TrackVehicle(v *model.Vehicle) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.vehicles = append(a.vehicles, v)
}

// GroupCount returns the number of tracked groups.
func (a *WaveAssets) GroupCount() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.groups)
}

// VehicleCount returns the number of tracked vehicles.
func (a *WaveAssets) VehicleCount() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.vehicles)
}

// Sweep releases tracked entities that were destroyed or wiped out: their
// controllers are unregistered and wiped groups are despawned so dead
// members leave the actor registry. Stale handles are not an error.
func (a *WaveAssets) Sweep(facade *world.Facade, unregister func(groupID uint32)) {
	a.mu.Lock()
	defer a.mu.Unlock()

	liveGroups := a.groups[:0]
	for _, g := range a.groups {
		if g.IsRemoved() || g.AliveMemberCount() == 0 {
			if unregister != nil {
				unregister(g.ObjectID())
			}
			facade.DespawnGroup(g.ObjectID())
			continue
		}
		liveGroups = append(liveGroups, g)
	}
	a.groups = liveGroups

	liveVehicles := a.vehicles[:0]
	for _, v := range a.vehicles {
		if v.IsRemoved() {
			continue
		}
		liveVehicles = append(liveVehicles, v)
	}
	a.vehicles = liveVehicles
}

// Cleanup despawns every tracked entity and empties the tracked set.
// Best-effort and idempotent: missing or already-destroyed entities are
// skipped without error, and a second call on an empty set is a no-op.
func (a *WaveAssets) Cleanup(facade *world.Facade, unregister func(groupID uint32)) {
	a.mu.Lock()
	defer a.mu.Unlock()

	removed := 0
	for _, g := range a.groups {
		if unregister != nil {
			unregister(g.ObjectID())
		}
		if !g.IsRemoved() {
			facade.DespawnGroup(g.ObjectID())
			removed++
		}
	}
	for _, v := range a.vehicles {
		if !v.IsRemoved() {
			facade.DespawnVehicle(v.ObjectID())
			removed++
		}
	}

	if removed > 0 {
		slog.Debug("previous wave assets cleaned up", "despawned", removed)
	}

	a.groups = nil
	a.vehicles = nil
}
