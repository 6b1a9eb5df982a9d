package renderer

import (
	"math"
	"testing"

	"github.com/df07/go-rain-city-raytracer/pkg/core"
	"github.com/df07/go-rain-city-raytracer/pkg/lights"
	"github.com/df07/go-rain-city-raytracer/pkg/material"
)

func TestLocalShade(t *testing.T) {
	up := core.NewVec3(0, 1, 0)
	white := core.NewColor(255, 255, 255)
	overhead := lights.NewPointLight(core.NewVec3(0, 10, 0), white, 1.0)

	tests := []struct {
		name     string
		mat      material.Material
		lights   []lights.PointLight
		viewDir  core.Vec3
		expected core.Color
	}{
		{
			name:     "no lights is black",
			mat:      diffuseOnly(white),
			lights:   nil,
			viewDir:  up,
			expected: core.Black,
		},
		{
			name:     "diffuse scales with intensity",
			mat:      diffuseOnly(core.NewColor(100, 50, 25)),
			lights:   []lights.PointLight{lights.NewPointLight(core.NewVec3(0, 10, 0), white, 0.5)},
			viewDir:  up,
			expected: core.NewColor(50, 25, 12.5),
		},
		{
			name:     "light below the surface contributes nothing diffuse",
			mat:      diffuseOnly(white),
			lights:   []lights.PointLight{lights.NewPointLight(core.NewVec3(0, -10, 0), white, 1.0)},
			viewDir:  up,
			expected: core.Black,
		},
		{
			name:     "light color is ignored",
			mat:      diffuseOnly(core.NewColor(10, 20, 30)),
			lights:   []lights.PointLight{lights.NewPointLight(core.NewVec3(0, 10, 0), core.NewColor(255, 0, 0), 1.0)},
			viewDir:  up,
			expected: core.NewColor(10, 20, 30),
		},
		{
			name:     "specular highlight at mirror alignment",
			mat:      material.New(core.Black, 50, [2]float64{0, 0.5}),
			lights:   []lights.PointLight{overhead},
			viewDir:  up,
			expected: core.NewColor(127.5, 127.5, 127.5),
		},
		{
			name:     "two lights sum",
			mat:      diffuseOnly(core.NewColor(100, 100, 100)),
			lights:   []lights.PointLight{overhead, overhead},
			viewDir:  up,
			expected: core.NewColor(200, 200, 200),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit := material.NewHitRecord(core.NewVec3(0, 0, 0), up, 1, tt.mat)
			got := LocalShade(hit, tt.viewDir, tt.lights)
			if !colorsClose(got, tt.expected, 1e-9) {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestLocalShade_SpecularFalloff(t *testing.T) {
	up := core.NewVec3(0, 1, 0)
	mat := material.New(core.Black, 32, [2]float64{0, 1})
	hit := material.NewHitRecord(core.NewVec3(0, 0, 0), up, 1, mat)
	light := []lights.PointLight{lights.NewPointLight(core.NewVec3(0, 10, 0), core.NewColor(255, 255, 255), 1)}

	aligned := LocalShade(hit, up, light)
	oblique := LocalShade(hit, core.NewVec3(1, 1, 0).Normalize(), light)

	if oblique.R >= aligned.R {
		t.Errorf("Expected highlight to fall off away from alignment: aligned %v, oblique %v", aligned, oblique)
	}

	// Half vector sits 22.5 degrees from the normal
	expected := 255 * math.Pow(math.Cos(math.Pi/8), 32)
	if math.Abs(oblique.R-expected) > 1e-9 {
		t.Errorf("Expected %v, got %v", expected, oblique.R)
	}
}
