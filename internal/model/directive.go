package model

// DirectiveKind identifies what a unit group has been ordered to do.
type DirectiveKind int32

const (
	DirectiveNone   DirectiveKind = 0 // no standing order
	DirectivePatrol DirectiveKind = 1 // patrol around spawn position
	DirectiveDefend DirectiveKind = 2 // hold a position
)

// String returns a human-readable directive kind name.
func (k DirectiveKind) String() string {
	switch k {
	case DirectiveNone:
		return "NONE"
	case DirectivePatrol:
		return "PATROL"
	case DirectiveDefend:
		return "DEFEND"
	default:
		return "UNKNOWN"
	}
}

// Directive is a standing order carried by a unit group.
// Value type; a group carries at most one directive at a time.
type Directive struct {
	Kind        DirectiveKind
	Target      Position
	Strongpoint *Strongpoint // set for DirectiveDefend, nil otherwise
}

// DefendDirective creates a defend order pointing at the given strongpoint.
func DefendDirective(sp *Strongpoint) Directive {
	return Directive{
		Kind:        DirectiveDefend,
		Target:      sp.Position(),
		Strongpoint: sp,
	}
}
