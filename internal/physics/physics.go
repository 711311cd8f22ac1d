// Package physics provides collision detection and distance utilities.
package physics

import "math"

// Vec3 is a point or extent in board space. Y is up; units advance along Z.
type Vec3 struct {
	X, Y, Z float64
}

// Box is an axis-aligned bounding box.
type Box struct {
	Min, Max Vec3
}

// FootBox builds the hitbox of an object standing at pos with the given size.
// The box is centred on pos in X and Z and rises from pos.Y.
func FootBox(pos, size Vec3) Box {
	return Box{
		Min: Vec3{pos.X - size.X/2, pos.Y, pos.Z - size.Z/2},
		Max: Vec3{pos.X + size.X/2, pos.Y + size.Y, pos.Z + size.Z/2},
	}
}

// BoxesOverlap reports whether two boxes intersect. Touching faces count.
func BoxesOverlap(a, b Box) bool {
	return a.Max.X >= b.Min.X && a.Min.X <= b.Max.X &&
		a.Max.Y >= b.Min.Y && a.Min.Y <= b.Max.Y &&
		a.Max.Z >= b.Min.Z && a.Min.Z <= b.Max.Z
}

// Distance calculates the Euclidean distance between two points.
func Distance(a, b Vec3) float64 {
	return math.Sqrt(DistanceSquared(a, b))
}

// DistanceSquared calculates the squared distance between two points.
// Use this when comparing distances to avoid the sqrt cost.
func DistanceSquared(a, b Vec3) float64 {
	dx := b.X - a.X
	dy := b.Y - a.Y
	dz := b.Z - a.Z
	return dx*dx + dy*dy + dz*dz
}

// Within reports whether b lies strictly closer than dist to a.
func Within(a, b Vec3, dist float64) bool {
	return DistanceSquared(a, b) < dist*dist
}
