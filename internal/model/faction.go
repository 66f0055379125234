package model

// Faction represents a combatant side.
// Faction comparison throughout the reinforcement core is identity comparison
// on the *Faction pointer, never value comparison on the key: two distinct
// Faction instances with the same key are different factions.
type Faction struct {
	key  string
	name string
}

// NewFaction creates a new faction.
func NewFaction(key, name string) *Faction {
	return &Faction{key: key, name: name}
}

// Key returns the faction key (e.g. "US", "USSR").
func (f *Faction) Key() string {
	return f.key
}

// Name returns the faction display name.
func (f *Faction) Name() string {
	return f.name
}

// IsHostileTo returns true if other is a different, non-nil faction.
func (f *Faction) IsHostileTo(other *Faction) bool {
	return other != nil && other != f
}
