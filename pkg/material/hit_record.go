package material

import (
	"math"

	"github.com/df07/go-rain-city-raytracer/pkg/core"
)

// HitRecord contains information about a ray-object intersection.
// A record with Hit == false is the "no hit" sentinel and carries T = +Inf.
type HitRecord struct {
	Point    core.Vec3 // Point of intersection
	Normal   core.Vec3 // Outward unit normal at the intersection
	T        float64   // Distance along the ray
	Material Material  // Copy of the hit surface's material
	Hit      bool
}

// NoHit returns the miss sentinel
func NoHit() HitRecord {
	return HitRecord{T: math.Inf(1)}
}

// NewHitRecord creates a record for a successful intersection
func NewHitRecord(point, normal core.Vec3, t float64, mat Material) HitRecord {
	return HitRecord{Point: point, Normal: normal, T: t, Material: mat, Hit: true}
}
