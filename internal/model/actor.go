package model

import (
	"sync"
	"sync/atomic"
)

// Actor represents a live combatant in the world: a connected player's
// character or an AI-controlled unit. Position and aliveness change from
// outside the reinforcement core, so both are safe for concurrent reads.
type Actor struct {
	objectID uint32
	faction  *Faction
	isPlayer bool

	mu       sync.RWMutex
	position Position

	alive atomic.Bool
}

// NewActor creates a new actor. Actors start alive.
func NewActor(objectID uint32, faction *Faction, position Position, isPlayer bool) *Actor {
	a := &Actor{
		objectID: objectID,
		faction:  faction,
		isPlayer: isPlayer,
		position: position,
	}
	a.alive.Store(true)
	return a
}

// ObjectID returns the unique object ID (immutable after creation).
func (a *Actor) ObjectID() uint32 {
	return a.objectID
}

// Faction returns the actor's faction (immutable after creation).
func (a *Actor) Faction() *Faction {
	return a.faction
}

// IsPlayer returns true if the actor is player-controlled.
func (a *Actor) IsPlayer() bool {
	return a.isPlayer
}

// Position returns a copy of the actor's position (value type).
func (a *Actor) Position() Position {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.position
}

// SetPosition sets the actor's position.
func (a *Actor) SetPosition(p Position) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.position = p
}

// IsAlive returns whether the actor is alive (atomic read).
func (a *Actor) IsAlive() bool {
	return a.alive.Load()
}

// SetAlive sets the aliveness flag (atomic write).
func (a *Actor) SetAlive(alive bool) {
	a.alive.Store(alive)
}
