package geometry

import (
	"errors"
	"fmt"
	"math"

	"github.com/df07/go-rain-city-raytracer/pkg/core"
	"github.com/df07/go-rain-city-raytracer/pkg/material"
)

const (
	// boxHitEpsilon separates "ray starts outside" from "ray starts inside"
	boxHitEpsilon = 1e-6
	// faceEpsilon is the tolerance for matching a hit point to a face plane
	faceEpsilon = 1e-4
)

// ErrDegenerateBox is returned when a box's min corner exceeds its max corner
var ErrDegenerateBox = errors.New("degenerate box")

// Box represents an axis-aligned box
type Box struct {
	Min      core.Vec3         // Minimum corner
	Max      core.Vec3         // Maximum corner
	Material material.Material // Material for all faces
}

// NewBox creates a new axis-aligned box from its corners
func NewBox(min, max core.Vec3, mat material.Material) *Box {
	return &Box{Min: min, Max: max, Material: mat}
}

// NewBoxFromCenterSize creates a cube with the given center and edge length
func NewBoxFromCenterSize(center core.Vec3, size float64, mat material.Material) *Box {
	half := core.NewVec3(size*0.5, size*0.5, size*0.5)
	return NewBox(center.Subtract(half), center.Add(half), mat)
}

// Validate checks the corner ordering and the material
func (b *Box) Validate() error {
	if b.Min.X > b.Max.X || b.Min.Y > b.Max.Y || b.Min.Z > b.Max.Z {
		return fmt.Errorf("%w: min %v exceeds max %v", ErrDegenerateBox, b.Min, b.Max)
	}
	if err := b.Material.Validate(); err != nil {
		return fmt.Errorf("box %v-%v: %w", b.Min, b.Max, err)
	}
	return nil
}

// Hit intersects the ray with the box using the slab method.
// A ray starting inside the box hits its exit face.
func (b *Box) Hit(ray core.Ray) material.HitRecord {
	inv := core.NewVec3(inverse(ray.Direction.X), inverse(ray.Direction.Y), inverse(ray.Direction.Z))

	t0 := b.Min.Subtract(ray.Origin).MultiplyVec(inv)
	t1 := b.Max.Subtract(ray.Origin).MultiplyVec(inv)

	nearX, farX := fmin(t0.X, t1.X), fmax(t0.X, t1.X)
	nearY, farY := fmin(t0.Y, t1.Y), fmax(t0.Y, t1.Y)
	nearZ, farZ := fmin(t0.Z, t1.Z), fmax(t0.Z, t1.Z)

	tNear := fmax(fmax(nearX, nearY), nearZ)
	tFar := fmin(fmin(farX, farY), farZ)

	if tFar < 0 || tNear > tFar {
		return material.NoHit()
	}

	t := tFar
	if tNear > boxHitEpsilon {
		t = tNear
	}
	if t <= boxHitEpsilon {
		return material.NoHit()
	}

	point := ray.At(t)
	return material.NewHitRecord(point, b.faceNormal(point), t, b.Material)
}

// faceNormal returns the outward normal of the first face within tolerance of point.
// Faces are checked in the order -x, +x, -y, +y, -z, +z, so edges and corners
// resolve to the earliest face in that order.
func (b *Box) faceNormal(point core.Vec3) core.Vec3 {
	switch {
	case math.Abs(point.X-b.Min.X) < faceEpsilon:
		return core.NewVec3(-1, 0, 0)
	case math.Abs(point.X-b.Max.X) < faceEpsilon:
		return core.NewVec3(1, 0, 0)
	case math.Abs(point.Y-b.Min.Y) < faceEpsilon:
		return core.NewVec3(0, -1, 0)
	case math.Abs(point.Y-b.Max.Y) < faceEpsilon:
		return core.NewVec3(0, 1, 0)
	case math.Abs(point.Z-b.Min.Z) < faceEpsilon:
		return core.NewVec3(0, 0, -1)
	default:
		return core.NewVec3(0, 0, 1)
	}
}

// inverse maps a zero direction component to +Inf so that axis never limits the interval
func inverse(d float64) float64 {
	if d == 0 {
		return math.Inf(1)
	}
	return 1 / d
}

// fmin and fmax ignore a NaN operand. NaN appears when the origin lies exactly on
// a slab plane of an axis the ray is parallel to (0 * Inf).
func fmin(a, b float64) float64 {
	if math.IsNaN(a) {
		return b
	}
	if math.IsNaN(b) {
		return a
	}
	return math.Min(a, b)
}

func fmax(a, b float64) float64 {
	if math.IsNaN(a) {
		return b
	}
	if math.IsNaN(b) {
		return a
	}
	return math.Max(a, b)
}
