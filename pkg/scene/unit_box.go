package scene

import (
	"github.com/df07/go-rain-city-raytracer/pkg/core"
	"github.com/df07/go-rain-city-raytracer/pkg/material"
	"github.com/df07/go-rain-city-raytracer/pkg/renderer"
)

// NewUnitBoxScene creates a single white box lit from directly above, viewed from above.
// The box is opaque and matte, so the center pixel shows the diffuse term alone.
func NewUnitBoxScene() *Scene {
	camera := renderer.NewCamera(
		core.NewVec3(0, 5, 0),
		core.NewVec3(0, 0, 0),
		core.NewVec3(0, 0, -1),
	)
	s := newScene("unit-box", camera)

	white := material.New(core.NewColor(255, 255, 255), 0, [2]float64{1.0, 0.0})
	s.AddBox(core.NewVec3(-1, -1, -1), core.NewVec3(1, 1, 1), white)
	s.AddPointLight(core.NewVec3(0, 10, 0), core.NewColor(255, 255, 255), 1.0)

	return s
}
