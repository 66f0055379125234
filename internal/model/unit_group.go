package model

import (
	"sync"
	"sync/atomic"
)

// Unit represents a single AI soldier inside a spawned group.
type Unit struct {
	*Actor // embedding Actor

	mu      sync.RWMutex
	profile CombatProfile
}

// NewUnit creates a new AI unit at the given position.
func NewUnit(objectID uint32, faction *Faction, position Position) *Unit {
	return &Unit{
		Actor: NewActor(objectID, faction, position, false),
	}
}

// Profile returns the unit's combat tuning profile.
func (u *Unit) Profile() CombatProfile {
	u.mu.RLock()
	defer u.mu.RUnlock()
	return u.profile
}

// SetProfile applies a combat tuning profile to the unit.
func (u *Unit) SetProfile(p CombatProfile) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.profile = p
}

// UnitGroup represents a spawned group of AI units sharing one directive.
type UnitGroup struct {
	objectID uint32
	template GroupTemplate
	faction  *Faction
	position Position

	mu        sync.RWMutex
	members   []*Unit
	directive Directive

	removed atomic.Bool // set when the group is despawned from the world
}

// NewUnitGroup creates an empty unit group at the given position.
// Members are populated separately by the spawn system.
func NewUnitGroup(objectID uint32, template GroupTemplate, faction *Faction, position Position) *UnitGroup {
	return &UnitGroup{
		objectID: objectID,
		template: template,
		faction:  faction,
		position: position,
	}
}

// ObjectID returns the group's unique object ID.
func (g *UnitGroup) ObjectID() uint32 {
	return g.objectID
}

// Template returns the template the group was spawned from.
func (g *UnitGroup) Template() GroupTemplate {
	return g.template
}

// Faction returns the group's faction.
func (g *UnitGroup) Faction() *Faction {
	return g.faction
}

// Position returns the position the group was spawned at.
func (g *UnitGroup) Position() Position {
	return g.position
}

// AddMember adds a unit to the group.
func (g *UnitGroup) AddMember(u *Unit) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.members = append(g.members, u)
}

// Members returns a copy of the member list.
func (g *UnitGroup) Members() []*Unit {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := make([]*Unit, len(g.members))
	copy(out, g.members)
	return out
}

// MemberCount returns the number of members in the group.
func (g *UnitGroup) MemberCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.members)
}

// AliveMemberCount returns the number of members still alive.
func (g *UnitGroup) AliveMemberCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	count := 0
	for _, u := range g.members {
		if u.IsAlive() {
			count++
		}
	}
	return count
}

// Directive returns the group's current standing order.
func (g *UnitGroup) Directive() Directive {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.directive
}

// SetDirective replaces the group's standing order.
// A group carries exactly one directive; the previous one is discarded.
func (g *UnitGroup) SetDirective(d Directive) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.directive = d
}

// IsRemoved returns true if the group has been despawned (atomic read).
func (g *UnitGroup) IsRemoved() bool {
	return g.removed.Load()
}

// MarkRemoved flags the group as despawned (atomic write).
func (g *UnitGroup) MarkRemoved() {
	g.removed.Store(true)
}
