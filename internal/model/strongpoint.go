package model

import "sync/atomic"

// Strongpoint represents a capturable base entity with a controlling faction.
// The reinforcement core only reads it; ownership changes come from outside
// (capture logic is not part of this module).
type Strongpoint struct {
	id       uint32
	name     string
	position Position

	faction atomic.Pointer[Faction] // controlling faction, nil while contested
}

// NewStrongpoint creates a new strongpoint.
func NewStrongpoint(id uint32, name string, position Position, faction *Faction) *Strongpoint {
	sp := &Strongpoint{
		id:       id,
		name:     name,
		position: position,
	}
	sp.faction.Store(faction)
	return sp
}

// ID returns the strongpoint ID.
func (s *Strongpoint) ID() uint32 {
	return s.id
}

// Name returns the strongpoint display name.
func (s *Strongpoint) Name() string {
	return s.name
}

// Position returns the strongpoint world position.
func (s *Strongpoint) Position() Position {
	return s.position
}

// Faction returns the controlling faction (atomic read). Nil if contested.
func (s *Strongpoint) Faction() *Faction {
	return s.faction.Load()
}

// SetFaction sets the controlling faction (atomic write).
// Called by the capture system when ownership changes.
func (s *Strongpoint) SetFaction(f *Faction) {
	s.faction.Store(f)
}

// IsHeldBy returns true if the strongpoint is controlled by exactly this faction.
// Identity comparison: a nil faction never holds anything.
func (s *Strongpoint) IsHeldBy(f *Faction) bool {
	return f != nil && s.Faction() == f
}
