package lights

import "github.com/df07/go-rain-city-raytracer/pkg/core"

// PointLight is an omnidirectional light at a fixed position
type PointLight struct {
	Position  core.Vec3  // Light position
	Color     core.Color // Light tint
	Intensity float64    // Unitless multiplier on the diffuse term
}

// NewPointLight creates a new point light
func NewPointLight(position core.Vec3, color core.Color, intensity float64) PointLight {
	return PointLight{Position: position, Color: color, Intensity: intensity}
}

func (pl PointLight) Type() LightType {
	return LightTypePoint
}
