package model

import "sync/atomic"

// VehicleKind identifies the class of a spawned vehicle asset.
type VehicleKind int32

const (
	VehicleGround     VehicleKind = 0
	VehicleHelicopter VehicleKind = 1
)

// String returns a human-readable vehicle kind name.
func (k VehicleKind) String() string {
	switch k {
	case VehicleGround:
		return "GROUND"
	case VehicleHelicopter:
		return "HELICOPTER"
	default:
		return "UNKNOWN"
	}
}

// Vehicle represents a spawned vehicle asset (the optional aerial component
// of a late reinforcement wave).
type Vehicle struct {
	objectID  uint32
	prefabKey string
	kind      VehicleKind
	faction   *Faction
	position  Position

	removed atomic.Bool
}

// NewVehicle creates a new vehicle at the given position.
func NewVehicle(objectID uint32, prefabKey string, kind VehicleKind, faction *Faction, position Position) *Vehicle {
	return &Vehicle{
		objectID:  objectID,
		prefabKey: prefabKey,
		kind:      kind,
		faction:   faction,
		position:  position,
	}
}

// ObjectID returns the vehicle's unique object ID.
func (v *Vehicle) ObjectID() uint32 {
	return v.objectID
}

// PrefabKey returns the prefab resource key.
func (v *Vehicle) PrefabKey() string {
	return v.prefabKey
}

// Kind returns the vehicle class.
func (v *Vehicle) Kind() VehicleKind {
	return v.kind
}

// Faction returns the vehicle's faction.
func (v *Vehicle) Faction() *Faction {
	return v.faction
}

// Position returns the position the vehicle was spawned at.
func (v *Vehicle) Position() Position {
	return v.position
}

// IsRemoved returns true if the vehicle has been despawned (atomic read).
func (v *Vehicle) IsRemoved() bool {
	return v.removed.Load()
}

// MarkRemoved flags the vehicle as despawned (atomic write).
func (v *Vehicle) MarkRemoved() {
	v.removed.Store(true)
}
