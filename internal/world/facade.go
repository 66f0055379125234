package world

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand/v2"
	"sync"
	"sync/atomic"
	"time"

	"github.com/veryipsum/IPC-AC-ExtendedCombat/internal/model"
)

// Spawn errors.
var (
	ErrUnknownPrefab  = errors.New("prefab not registered")
	ErrMissingFaction = errors.New("faction not resolved")
)

// Facade is the in-memory world state the reinforcement core queries and
// spawns through: actor registry, strongpoint registry, spawned entities,
// simulation clock and connected-player count.
//
// Thread-safe: registries are sync.Map with atomically cached counts.
type Facade struct {
	clock Clock

	actors       sync.Map // map[uint32]*model.Actor — objectID → actor
	strongpoints sync.Map // map[uint32]*model.Strongpoint — id → strongpoint
	groups       sync.Map // map[uint32]*model.UnitGroup — objectID → group
	vehicles     sync.Map // map[uint32]*model.Vehicle — objectID → vehicle

	prefabs sync.Map // map[string]struct{} — registered prefab keys

	objectIDCounter atomic.Uint32
	playerCount     atomic.Int32 // cached count of player actors (O(1) access)
}

// NewFacade creates a new world facade with the given clock.
func NewFacade(clock Clock) *Facade {
	f := &Facade{clock: clock}

	// Spawned entities start above 100000, entity placement tools use lower IDs
	f.objectIDCounter.Store(100000)

	return f
}

// Now returns the current simulation timestamp.
func (f *Facade) Now() time.Time {
	return f.clock.Now()
}

// Clock returns the facade's clock.
func (f *Facade) Clock() Clock {
	return f.clock
}

// NextObjectID allocates a fresh unique object ID.
func (f *Facade) NextObjectID() uint32 {
	return f.objectIDCounter.Add(1)
}

// --- Actors ---

// AddActor registers an actor in the world.
func (f *Facade) AddActor(a *model.Actor) {
	f.actors.Store(a.ObjectID(), a)
	if a.IsPlayer() {
		f.playerCount.Add(1)
	}
}

// RemoveActor removes an actor from the world.
func (f *Facade) RemoveActor(objectID uint32) {
	value, ok := f.actors.LoadAndDelete(objectID)
	if !ok {
		return
	}
	if value.(*model.Actor).IsPlayer() {
		f.playerCount.Add(-1)
	}
}

// Actor returns an actor by object ID.
func (f *Facade) Actor(objectID uint32) (*model.Actor, bool) {
	value, ok := f.actors.Load(objectID)
	if !ok {
		return nil, false
	}
	return value.(*model.Actor), true
}

// ForEachActor calls fn for every registered actor until fn returns false.
func (f *Facade) ForEachActor(fn func(*model.Actor) bool) {
	f.actors.Range(func(_, value any) bool {
		return fn(value.(*model.Actor))
	})
}

// PlayerCount returns the number of connected player actors (O(1) cached count).
func (f *Facade) PlayerCount() int {
	return int(f.playerCount.Load())
}

// --- Strongpoints ---

// AddStrongpoint registers a strongpoint in the world.
func (f *Facade) AddStrongpoint(sp *model.Strongpoint) {
	f.strongpoints.Store(sp.ID(), sp)
}

// RemoveStrongpoint removes a strongpoint from the world.
func (f *Facade) RemoveStrongpoint(id uint32) {
	f.strongpoints.Delete(id)
}

// Strongpoint returns a strongpoint by ID.
func (f *Facade) Strongpoint(id uint32) (*model.Strongpoint, bool) {
	value, ok := f.strongpoints.Load(id)
	if !ok {
		return nil, false
	}
	return value.(*model.Strongpoint), true
}

// ForEachStrongpoint calls fn for every strongpoint until fn returns false.
func (f *Facade) ForEachStrongpoint(fn func(*model.Strongpoint) bool) {
	f.strongpoints.Range(func(_, value any) bool {
		return fn(value.(*model.Strongpoint))
	})
}

// --- Prefab catalog ---

// RegisterPrefab registers a loadable prefab key.
// Spawning a template whose prefab key is unknown fails with ErrUnknownPrefab.
func (f *Facade) RegisterPrefab(key string) {
	f.prefabs.Store(key, struct{}{})
}

// HasPrefab returns true if the prefab key is registered.
func (f *Facade) HasPrefab(key string) bool {
	_, ok := f.prefabs.Load(key)
	return ok
}

// --- Spawning ---

// SpawnGroup instantiates a unit group from a template at the given position
// and populates it with its configured member count. Each member is also
// registered as an actor so detection and sweeps see it.
func (f *Facade) SpawnGroup(template model.GroupTemplate, faction *model.Faction, position model.Position) (*model.UnitGroup, error) {
	if faction == nil {
		return nil, ErrMissingFaction
	}
	if !f.HasPrefab(template.PrefabKey()) {
		return nil, fmt.Errorf("spawning group %s: %w", template.PrefabKey(), ErrUnknownPrefab)
	}

	groupID := f.NextObjectID()
	group := model.NewUnitGroup(groupID, template, faction, position)

	for range template.MemberCount() {
		unit := model.NewUnit(f.NextObjectID(), faction, position)
		group.AddMember(unit)
		f.AddActor(unit.Actor)
	}

	f.groups.Store(groupID, group)

	slog.Info("unit group spawned",
		"objectID", groupID,
		"template", template.String(),
		"faction", faction.Key(),
		"members", group.MemberCount())

	return group, nil
}

// DespawnGroup removes a group and its members from the world.
// Best-effort: despawning an unknown or already-removed group is a no-op.
func (f *Facade) DespawnGroup(objectID uint32) {
	value, ok := f.groups.LoadAndDelete(objectID)
	if !ok {
		return
	}
	group := value.(*model.UnitGroup)
	for _, unit := range group.Members() {
		f.RemoveActor(unit.ObjectID())
	}
	group.MarkRemoved()

	slog.Info("unit group despawned",
		"objectID", objectID,
		"template", group.Template().String())
}

// Group returns a spawned group by object ID.
func (f *Facade) Group(objectID uint32) (*model.UnitGroup, bool) {
	value, ok := f.groups.Load(objectID)
	if !ok {
		return nil, false
	}
	return value.(*model.UnitGroup), true
}

// SpawnVehicle instantiates a vehicle asset at the given position.
func (f *Facade) SpawnVehicle(prefabKey string, kind model.VehicleKind, faction *model.Faction, position model.Position) (*model.Vehicle, error) {
	if faction == nil {
		return nil, ErrMissingFaction
	}
	if !f.HasPrefab(prefabKey) {
		return nil, fmt.Errorf("spawning vehicle %s: %w", prefabKey, ErrUnknownPrefab)
	}

	vehicleID := f.NextObjectID()
	vehicle := model.NewVehicle(vehicleID, prefabKey, kind, faction, position)
	f.vehicles.Store(vehicleID, vehicle)

	slog.Info("vehicle spawned",
		"objectID", vehicleID,
		"prefab", prefabKey,
		"kind", kind.String(),
		"faction", faction.Key())

	return vehicle, nil
}

// DespawnVehicle removes a vehicle from the world. Best-effort.
func (f *Facade) DespawnVehicle(objectID uint32) {
	value, ok := f.vehicles.LoadAndDelete(objectID)
	if !ok {
		return
	}
	vehicle := value.(*model.Vehicle)
	vehicle.MarkRemoved()

	slog.Info("vehicle despawned", "objectID", objectID, "prefab", vehicle.PrefabKey())
}

// Vehicle returns a spawned vehicle by object ID.
func (f *Facade) Vehicle(objectID uint32) (*model.Vehicle, bool) {
	value, ok := f.vehicles.Load(objectID)
	if !ok {
		return nil, false
	}
	return value.(*model.Vehicle), true
}

// --- Terrain queries ---

// FindEmptyPosition samples terrain around center for a spawn position inside
// [minRadius, maxRadius] that keeps at least minSeparation to every live
// actor. Candidates are drawn uniformly at random; the first valid one is
// returned. Returns ok=false after maxAttempts failed samples — callers fall
// back to the center position.
func (f *Facade) FindEmptyPosition(center model.Position, minRadius, maxRadius, minSeparation float64, maxAttempts int) (model.Position, bool) {
	for range maxAttempts {
		candidate := f.samplePosition(center, minRadius, maxRadius)
		if f.isPositionClear(candidate, minSeparation) {
			return candidate, true
		}
	}
	return model.Position{}, false
}

// samplePosition picks a uniformly random point in the ring around center.
func (f *Facade) samplePosition(center model.Position, minRadius, maxRadius float64) model.Position {
	angle := rand.Float64() * 2 * math.Pi
	radius := minRadius + rand.Float64()*(maxRadius-minRadius)

	dx := radius * math.Cos(angle)
	dz := radius * math.Sin(angle)
	return center.Offset(dx, 0, dz)
}

// isPositionClear returns true if no live actor is within minSeparation.
func (f *Facade) isPositionClear(p model.Position, minSeparation float64) bool {
	ok := true
	f.ForEachActor(func(a *model.Actor) bool {
		if a.IsAlive() && p.WithinRange(a.Position(), minSeparation) {
			ok = false
			return false
		}
		return true
	})
	return ok
}
