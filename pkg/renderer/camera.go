package renderer

import (
	"math"

	"github.com/df07/go-rain-city-raytracer/pkg/core"
)

// Camera is a look-at pinhole camera. Its basis is derived on demand.
type Camera struct {
	Eye    core.Vec3 // Camera position
	Center core.Vec3 // Point the camera looks at
	Up     core.Vec3 // Approximate up direction
}

// NewCamera creates a new look-at camera
func NewCamera(eye, center, up core.Vec3) Camera {
	return Camera{Eye: eye, Center: center, Up: up}
}

// Forward returns the unit view direction
func (c Camera) Forward() core.Vec3 {
	return c.Center.Subtract(c.Eye).Normalize()
}

// Basis returns the orthonormal forward, right and up vectors
func (c Camera) Basis() (forward, right, up core.Vec3) {
	forward = c.Forward()
	right = forward.Cross(c.Up).Normalize()
	up = right.Cross(forward)
	return forward, right, up
}

// Dolly moves eye and center together along the view direction.
// Positive distances move toward the look-at point.
func (c *Camera) Dolly(distance float64) {
	offset := c.Forward().Multiply(distance)
	c.Eye = c.Eye.Add(offset)
	c.Center = c.Center.Add(offset)
}

// GetRay returns the primary ray through the center of pixel (x, y)
func (c Camera) GetRay(x, y, width, height int, fov float64) core.Ray {
	return core.NewRay(c.Eye, PrimaryRay(x, y, width, height, fov, c.Eye, c.Center, c.Up))
}

// PrimaryRay maps a pixel to a unit view-space direction. Pixel (0,0) is the top-left
// corner; fov spans the image height and the aspect ratio widens the horizontal axis.
func PrimaryRay(x, y, width, height int, fov float64, eye, center, up core.Vec3) core.Vec3 {
	forward := center.Subtract(eye).Normalize()
	right := forward.Cross(up).Normalize()
	camUp := right.Cross(forward)

	aspect := float64(width) / float64(height)
	scale := math.Tan(fov * 0.5)
	px := (2.0*((float64(x)+0.5)/float64(width)) - 1.0) * scale * aspect
	py := (1.0 - 2.0*((float64(y)+0.5)/float64(height))) * scale

	return forward.Add(right.Multiply(px)).Add(camUp.Multiply(py)).Normalize()
}
