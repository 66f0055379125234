package model

import "math"

// Position represents a point in the simulation world, in meters.
// Value type, passed by value (immutable).
type Position struct {
	X float64
	Y float64
	Z float64
}

// NewPosition creates a Position with the given coordinates.
func NewPosition(x, y, z float64) Position {
	return Position{X: x, Y: y, Z: z}
}

// DistanceSquared returns the squared distance to another point (no sqrt for performance).
func (p Position) DistanceSquared(other Position) float64 {
	dx := p.X - other.X
	dy := p.Y - other.Y
	dz := p.Z - other.Z
	return dx*dx + dy*dy + dz*dz
}

// Distance returns the distance to another point in meters.
func (p Position) Distance(other Position) float64 {
	return math.Sqrt(p.DistanceSquared(other))
}

// WithinRange returns true if other lies within radius meters of p.
// Comparison uses squared distances to avoid the sqrt.
func (p Position) WithinRange(other Position, radius float64) bool {
	return p.DistanceSquared(other) < radius*radius
}

// Offset returns a new Position displaced by (dx, dy, dz).
func (p Position) Offset(dx, dy, dz float64) Position {
	return Position{X: p.X + dx, Y: p.Y + dy, Z: p.Z + dz}
}
