package material

import (
	"errors"
	"fmt"

	"github.com/df07/go-rain-city-raytracer/pkg/core"
)

// ErrInvalidMaterial is returned when a material's optical parameters are out of range
var ErrInvalidMaterial = errors.New("invalid material")

// Material holds the optical parameters of a surface.
// It is a value type: boxes share materials by copy.
type Material struct {
	Diffuse      core.Color // Diffuse color (0-255 channels)
	Specular     float64    // Specular exponent
	Albedo       [2]float64 // [diffuse weight, specular weight]
	IOR          float64    // Index of refraction
	Reflectivity float64    // Mirror contribution in [0,1]
	Transparency float64    // Refracted contribution in [0,1]
}

// New creates an opaque, non-reflective material with IOR 1
func New(diffuse core.Color, specular float64, albedo [2]float64) Material {
	return Material{
		Diffuse:  diffuse,
		Specular: specular,
		Albedo:   albedo,
		IOR:      1.0,
	}
}

// Validate checks that the parameters are physically meaningful
func (m Material) Validate() error {
	switch {
	case m.Specular < 0:
		return fmt.Errorf("%w: specular exponent %f is negative", ErrInvalidMaterial, m.Specular)
	case m.IOR < 1:
		return fmt.Errorf("%w: index of refraction %f is below 1", ErrInvalidMaterial, m.IOR)
	case m.Reflectivity < 0 || m.Reflectivity > 1:
		return fmt.Errorf("%w: reflectivity %f outside [0,1]", ErrInvalidMaterial, m.Reflectivity)
	case m.Transparency < 0 || m.Transparency > 1:
		return fmt.Errorf("%w: transparency %f outside [0,1]", ErrInvalidMaterial, m.Transparency)
	}
	return nil
}

// Black is a matte black surface
func Black() Material {
	return New(core.ColorFromHex(0x000000), 32.0, [2]float64{1.0, 0.0})
}

// Water is a light blue, mostly transparent medium
func Water() Material {
	m := New(core.ColorFromHex(0x4aa3ff), 32.0, [2]float64{0.1, 0.9})
	m.IOR = 1.333
	m.Transparency = 0.8
	m.Reflectivity = 0.02
	return m
}

// AsphaltWet is the dark, strongly reflective street surface
func AsphaltWet() Material {
	m := New(core.ColorFromHex(0x121316), 96.0, [2]float64{0.8, 0.2})
	m.Reflectivity = 0.55
	return m
}

// ConcreteMatte is the building shell material
func ConcreteMatte() Material {
	m := New(core.ColorFromHex(0x3a3f45), 32.0, [2]float64{0.9, 0.1})
	m.Reflectivity = 0.05
	return m
}

// GlassTinted is the blue window glass used for windows and neon panels
func GlassTinted() Material {
	m := New(core.ColorFromHex(0x98c9ff), 64.0, [2]float64{0.0, 1.0})
	m.Reflectivity = 0.06
	m.Transparency = 0.9
	m.IOR = 1.52
	return m
}

// BuildingPaint is a painted facade with a slight mirror component
func BuildingPaint(hex uint32) Material {
	m := New(core.ColorFromHex(hex), 48.0, [2]float64{0.85, 0.15})
	m.Reflectivity = 0.12
	return m
}

// GlassDay is a paler glass tuned for daylight scenes
func GlassDay() Material {
	m := New(core.ColorFromHex(0xb8d9ff), 64.0, [2]float64{0.0, 1.0})
	m.Reflectivity = 0.08
	m.Transparency = 0.88
	m.IOR = 1.52
	return m
}

// MetalDark is a dark, glossy metal
func MetalDark() Material {
	m := New(core.ColorFromHex(0x2a2f36), 96.0, [2]float64{0.1, 0.9})
	m.Reflectivity = 0.35
	return m
}
