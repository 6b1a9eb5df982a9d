package scene

import (
	"fmt"

	"github.com/df07/go-rain-city-raytracer/pkg/core"
	"github.com/df07/go-rain-city-raytracer/pkg/geometry"
	"github.com/df07/go-rain-city-raytracer/pkg/lights"
	"github.com/df07/go-rain-city-raytracer/pkg/material"
	"github.com/df07/go-rain-city-raytracer/pkg/renderer"
)

// Scene contains all the elements needed for rendering
type Scene struct {
	Name   string
	Camera renderer.Camera     // Initial camera; front-ends dolly their own copy
	Shapes []geometry.Shape    // Objects in the scene, in query order
	Lights []lights.PointLight // Lights in the scene
	Sky    *lights.Sky         // Background for rays that miss every shape
}

// newScene creates an empty scene with the default sky
func newScene(name string, camera renderer.Camera) *Scene {
	return &Scene{
		Name:   name,
		Camera: camera,
		Shapes: make([]geometry.Shape, 0),
		Lights: make([]lights.PointLight, 0),
		Sky:    lights.NewSky(lights.DefaultSunDirection()),
	}
}

func (s *Scene) GetShapes() []geometry.Shape {
	return s.Shapes
}

func (s *Scene) GetLights() []lights.PointLight {
	return s.Lights
}

func (s *Scene) GetEnvironment() lights.Environment {
	return s.Sky
}

// AddBox appends an axis-aligned box
func (s *Scene) AddBox(min, max core.Vec3, mat material.Material) {
	s.Shapes = append(s.Shapes, geometry.NewBox(min, max, mat))
}

// AddPointLight appends a point light
func (s *Scene) AddPointLight(position core.Vec3, color core.Color, intensity float64) {
	s.Lights = append(s.Lights, lights.NewPointLight(position, color, intensity))
}

// GetPrimitiveCount returns the number of shapes in the scene
func (s *Scene) GetPrimitiveCount() int {
	return len(s.Shapes)
}

// Validate checks every shape that can validate itself, and the camera
func (s *Scene) Validate() error {
	for i, shape := range s.Shapes {
		if v, ok := shape.(geometry.Validator); ok {
			if err := v.Validate(); err != nil {
				return fmt.Errorf("scene %q shape %d: %w", s.Name, i, err)
			}
		}
	}
	if s.Camera.Center.Subtract(s.Camera.Eye).LengthSquared() == 0 {
		return fmt.Errorf("scene %q: camera eye and center coincide", s.Name)
	}
	if s.Sky == nil {
		return fmt.Errorf("scene %q: missing sky", s.Name)
	}
	return nil
}
