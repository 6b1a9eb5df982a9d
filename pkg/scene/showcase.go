package scene

import (
	"github.com/df07/go-rain-city-raytracer/pkg/core"
	"github.com/df07/go-rain-city-raytracer/pkg/geometry"
	"github.com/df07/go-rain-city-raytracer/pkg/material"
	"github.com/df07/go-rain-city-raytracer/pkg/renderer"
)

// NewShowcaseScene lines up one box per material preset on the wet street,
// under warm and cool lights, so each preset can be compared side by side.
func NewShowcaseScene() *Scene {
	camera := renderer.NewCamera(
		core.NewVec3(0, 2.5, 9),
		core.NewVec3(0, 1.2, 0),
		core.NewVec3(0, 1, 0),
	)
	s := newScene("showcase", camera)

	s.AddBox(core.NewVec3(-500, -0.1, -500), core.NewVec3(500, 0, 500), material.AsphaltWet())

	presets := []material.Material{
		material.Water(),
		material.GlassDay(),
		material.MetalDark(),
		material.BuildingPaint(0xc0563b),
		material.ConcreteMatte(),
		material.Black(),
	}

	const spacing = 2.4
	x0 := -spacing * float64(len(presets)-1) / 2
	for i, mat := range presets {
		center := core.NewVec3(x0+spacing*float64(i), 0.8, 0)
		s.Shapes = append(s.Shapes, newPedestal(center, mat))
	}

	// Backdrop wall so glass and water have something to refract
	s.AddBox(core.NewVec3(-9, 0, -4.5), core.NewVec3(9, 5, -4), material.BuildingPaint(0x3b6fc0))

	s.AddPointLight(core.NewVec3(-5, 6, 5), core.ColorFromHex(0xffd8a8), 1.2)
	s.AddPointLight(core.NewVec3(5, 4, 3), core.ColorFromHex(0x9ad0ff), 0.8)

	return s
}

// newPedestal creates a 1.6 unit cube resting on the ground at center.X, center.Z
func newPedestal(center core.Vec3, mat material.Material) *geometry.Box {
	return geometry.NewBoxFromCenterSize(center, 1.6, mat)
}
