package renderer

import (
	"math"
	"testing"

	"github.com/df07/go-rain-city-raytracer/pkg/core"
	"github.com/df07/go-rain-city-raytracer/pkg/geometry"
	"github.com/df07/go-rain-city-raytracer/pkg/lights"
	"github.com/df07/go-rain-city-raytracer/pkg/material"
)

const colorTolerance = 1e-9

// MockShape implements geometry.Shape for testing
type MockShape struct {
	hitFn func(ray core.Ray) material.HitRecord
	calls int
}

func (m *MockShape) Hit(ray core.Ray) material.HitRecord {
	m.calls++
	return m.hitFn(ray)
}

// MockEnvironment implements lights.Environment with a constant color
type MockEnvironment struct {
	color core.Color
}

func (m MockEnvironment) Type() lights.LightType         { return lights.LightTypeInfinite }
func (m MockEnvironment) Color(dir core.Vec3) core.Color { return m.color }

// MockScene implements Scene for testing
type MockScene struct {
	shapes []geometry.Shape
	lights []lights.PointLight
	env    lights.Environment
}

func (m MockScene) GetShapes() []geometry.Shape        { return m.shapes }
func (m MockScene) GetLights() []lights.PointLight     { return m.lights }
func (m MockScene) GetEnvironment() lights.Environment { return m.env }

func colorsClose(a, b core.Color, tolerance float64) bool {
	return math.Abs(a.R-b.R) <= tolerance &&
		math.Abs(a.G-b.G) <= tolerance &&
		math.Abs(a.B-b.B) <= tolerance
}

// diffuseOnly is an opaque material whose local shading is exactly its diffuse term
func diffuseOnly(diffuse core.Color) material.Material {
	return material.New(diffuse, 0, [2]float64{1.0, 0.0})
}

func unitBox(mat material.Material) *geometry.Box {
	return geometry.NewBox(core.NewVec3(-1, -1, -1), core.NewVec3(1, 1, 1), mat)
}

func TestTrace_DepthZeroReturnsBlack(t *testing.T) {
	shape := &MockShape{hitFn: func(ray core.Ray) material.HitRecord {
		return material.NewHitRecord(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0), 1, diffuseOnly(core.NewColor(255, 255, 255)))
	}}
	env := MockEnvironment{color: core.NewColor(10, 20, 30)}
	ray := core.NewRay(core.NewVec3(0, 5, 0), core.NewVec3(0, -1, 0))

	for _, depth := range []int{0, -1, -10} {
		var stats TraceStats
		got := Trace(ray, []geometry.Shape{shape}, nil, env, depth, &stats)

		if got != core.Black {
			t.Errorf("depth %d: expected black, got %v", depth, got)
		}
		if stats.Rays != 0 {
			t.Errorf("depth %d: expected no rays cast, got %d", depth, stats.Rays)
		}
		if stats.DepthExhausted != 1 {
			t.Errorf("depth %d: expected DepthExhausted 1, got %d", depth, stats.DepthExhausted)
		}
	}

	if shape.calls != 0 {
		t.Errorf("Expected no intersection queries, got %d", shape.calls)
	}
}

func TestTrace_MissReturnsEnvironment(t *testing.T) {
	env := MockEnvironment{color: core.NewColor(12, 34, 56)}
	ray := core.NewRay(core.NewVec3(0, 5, 0), core.NewVec3(0, 1, 0))

	var stats TraceStats
	got := Trace(ray, []geometry.Shape{unitBox(material.Black())}, nil, env, 3, &stats)

	if got != env.color {
		t.Errorf("Expected environment color %v, got %v", env.color, got)
	}
	if stats.Rays != 1 || stats.Misses != 1 || stats.Hits != 0 {
		t.Errorf("Expected 1 ray and 1 miss, got %+v", stats)
	}
}

func TestTrace_UnitBoxDiffuseOnly(t *testing.T) {
	diffuse := core.NewColor(100, 150, 200)
	box := unitBox(diffuseOnly(diffuse))
	lightList := []lights.PointLight{
		lights.NewPointLight(core.NewVec3(0, 10, 0), core.NewColor(255, 255, 255), 1.0),
	}
	env := MockEnvironment{color: core.NewColor(255, 0, 0)}
	ray := core.NewRay(core.NewVec3(0, 5, 0), core.NewVec3(0, -1, 0))

	var stats TraceStats
	got := Trace(ray, []geometry.Shape{box}, lightList, env, 3, &stats)

	if !colorsClose(got, diffuse, colorTolerance) {
		t.Errorf("Expected diffuse term %v, got %v", diffuse, got)
	}
	if got.ToHex() != 0x6496C8 {
		t.Errorf("Expected packed 0x6496C8, got %#06x", got.ToHex())
	}
	if stats.SecondaryRays() != 0 {
		t.Errorf("Expected no recursive rays, got %d", stats.SecondaryRays())
	}
	if stats.Rays != 1 || stats.Hits != 1 {
		t.Errorf("Expected exactly one primary hit, got %+v", stats)
	}
}

func TestTrace_ReflectionBlend(t *testing.T) {
	diffuse := core.NewColor(100, 100, 100)
	mat := diffuseOnly(diffuse)
	mat.Reflectivity = 0.5

	lightList := []lights.PointLight{
		lights.NewPointLight(core.NewVec3(0, 10, 0), core.NewColor(255, 255, 255), 1.0),
	}
	env := MockEnvironment{color: core.NewColor(200, 0, 50)}
	ray := core.NewRay(core.NewVec3(0, 5, 0), core.NewVec3(0, -1, 0))

	var stats TraceStats
	got := Trace(ray, []geometry.Shape{unitBox(mat)}, lightList, env, 3, &stats)

	// Mirror bounce goes straight up into the environment
	expected := diffuse.Multiply(0.5).Add(env.color.Multiply(0.5))
	if !colorsClose(got, expected, colorTolerance) {
		t.Errorf("Expected %v, got %v", expected, got)
	}
	if stats.ReflectionRays != 1 || stats.RefractionRays != 0 {
		t.Errorf("Expected one reflection ray, got %+v", stats)
	}
	if stats.Misses != 1 {
		t.Errorf("Expected reflected ray to miss, got %d misses", stats.Misses)
	}
}

func TestTrace_ReflectionDepthExhausted(t *testing.T) {
	diffuse := core.NewColor(100, 100, 100)
	mat := diffuseOnly(diffuse)
	mat.Reflectivity = 0.5

	lightList := []lights.PointLight{
		lights.NewPointLight(core.NewVec3(0, 10, 0), core.NewColor(255, 255, 255), 1.0),
	}
	env := MockEnvironment{color: core.NewColor(200, 0, 50)}
	ray := core.NewRay(core.NewVec3(0, 5, 0), core.NewVec3(0, -1, 0))

	var stats TraceStats
	got := Trace(ray, []geometry.Shape{unitBox(mat)}, lightList, env, 1, &stats)

	expected := diffuse.Multiply(0.5)
	if !colorsClose(got, expected, colorTolerance) {
		t.Errorf("Expected %v, got %v", expected, got)
	}
	if stats.DepthExhausted != 1 {
		t.Errorf("Expected DepthExhausted 1, got %d", stats.DepthExhausted)
	}
}

func TestTrace_RefractionBlend(t *testing.T) {
	mat := diffuseOnly(core.NewColor(255, 255, 255))
	mat.IOR = 1.5
	mat.Transparency = 1.0

	// Only the downward primary ray from above hits
	shape := &MockShape{hitFn: func(ray core.Ray) material.HitRecord {
		if ray.Origin.Y > 2 {
			return material.NewHitRecord(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0), ray.Origin.Y, mat)
		}
		return material.NoHit()
	}}
	lightList := []lights.PointLight{
		lights.NewPointLight(core.NewVec3(0, 10, 0), core.NewColor(255, 255, 255), 1.0),
	}
	env := MockEnvironment{color: core.NewColor(100, 200, 50)}
	ray := core.NewRay(core.NewVec3(0, 5, 0), core.NewVec3(0, -1, 0))

	var stats TraceStats
	got := Trace(ray, []geometry.Shape{shape}, lightList, env, 3, &stats)

	// base weight is zero, reflection is black, refraction passes straight through
	r0 := math.Pow((1.0-1.5)/(1.0+1.5), 2)
	expected := env.color.Multiply(1 - r0)
	if !colorsClose(got, expected, 1e-6) {
		t.Errorf("Expected %v, got %v", expected, got)
	}
	if stats.RefractionRays != 1 || stats.ReflectionRays != 0 {
		t.Errorf("Expected one refraction ray, got %+v", stats)
	}
}

func TestTrace_TotalInternalReflectionFallback(t *testing.T) {
	diffuse := core.NewColor(80, 120, 160)
	mat := diffuseOnly(diffuse)
	mat.IOR = 1.5
	mat.Transparency = 0.9
	mat.Reflectivity = 0.25

	// Ray travels inside the glass at 60 degrees to a normal that faces along it
	normal := core.NewVec3(0, 1, 0)
	dir := core.NewVec3(math.Sin(math.Pi/3), math.Cos(math.Pi/3), 0)
	shape := &MockShape{hitFn: func(ray core.Ray) material.HitRecord {
		if ray.Direction.Y > 0 {
			return material.NewHitRecord(core.NewVec3(0, 0, 0), normal, 1, mat)
		}
		return material.NoHit()
	}}
	lightList := []lights.PointLight{
		lights.NewPointLight(core.NewVec3(0, 10, 0), core.NewColor(255, 255, 255), 1.0),
	}
	env := MockEnvironment{color: core.NewColor(0, 40, 240)}
	ray := core.NewRay(core.NewVec3(-1, -1, 0), dir)

	var stats TraceStats
	got := Trace(ray, []geometry.Shape{shape}, lightList, env, 3, &stats)

	expected := diffuse.Multiply(0.75).Add(env.color.Multiply(0.25))
	if !colorsClose(got, expected, 1e-6) {
		t.Errorf("Expected %v, got %v", expected, got)
	}
	if stats.TotalInternalReflections != 1 {
		t.Errorf("Expected one total internal reflection, got %d", stats.TotalInternalReflections)
	}
	if stats.RefractionRays != 0 {
		t.Errorf("Expected no refraction rays, got %d", stats.RefractionRays)
	}
}

func TestNearestHit(t *testing.T) {
	first := material.New(core.NewColor(255, 0, 0), 0, [2]float64{1, 0})
	second := material.New(core.NewColor(0, 255, 0), 0, [2]float64{1, 0})

	tests := []struct {
		name      string
		ray       core.Ray
		shapes    []geometry.Shape
		expectHit bool
		expectT   float64
		expectMat material.Material
	}{
		{
			name:      "no shapes",
			ray:       core.NewRay(core.NewVec3(0, 0, 5), core.NewVec3(0, 0, -1)),
			shapes:    nil,
			expectHit: false,
		},
		{
			name: "closer shape wins regardless of order",
			ray:  core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1)),
			shapes: []geometry.Shape{
				geometry.NewBox(core.NewVec3(-1, -1, -10), core.NewVec3(1, 1, -8), second),
				geometry.NewBox(core.NewVec3(-1, -1, -4), core.NewVec3(1, 1, -2), first),
			},
			expectHit: true,
			expectT:   2,
			expectMat: first,
		},
		{
			name: "exact tie keeps the earlier shape",
			ray:  core.NewRay(core.NewVec3(0, 0, 5), core.NewVec3(0, 0, -1)),
			shapes: []geometry.Shape{
				unitBox(first),
				unitBox(second),
			},
			expectHit: true,
			expectT:   4,
			expectMat: first,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit, ok := NearestHit(tt.ray, tt.shapes)
			if ok != tt.expectHit {
				t.Fatalf("Expected hit=%v, got %v", tt.expectHit, ok)
			}
			if !ok {
				return
			}
			if math.Abs(hit.T-tt.expectT) > 1e-9 {
				t.Errorf("Expected t=%v, got %v", tt.expectT, hit.T)
			}
			if hit.Material != tt.expectMat {
				t.Errorf("Expected material %v, got %v", tt.expectMat, hit.Material)
			}
		})
	}
}

func TestNearestHit_IgnoresSelfIntersection(t *testing.T) {
	shape := &MockShape{hitFn: func(ray core.Ray) material.HitRecord {
		return material.NewHitRecord(ray.At(1e-4), core.NewVec3(0, 1, 0), 1e-4, material.Black())
	}}
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0))

	if _, ok := NearestHit(ray, []geometry.Shape{shape}); ok {
		t.Error("Expected hits closer than the epsilon to be ignored")
	}
}

func TestRenderPixel_MatchesTrace(t *testing.T) {
	camera := NewCamera(core.NewVec3(0, 0, 5), core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0))
	diffuse := core.NewColor(40, 80, 120)
	shapes := []geometry.Shape{unitBox(diffuseOnly(diffuse))}
	lightList := []lights.PointLight{
		lights.NewPointLight(core.NewVec3(0, 0, 10), core.NewColor(255, 255, 255), 1.0),
	}
	env := MockEnvironment{color: core.NewColor(1, 2, 3)}

	// Center pixel of an odd-sized image looks straight down -Z
	got := RenderPixel(1, 1, 3, 3, math.Pi/3, camera, shapes, lightList, env, 3)
	if got != diffuse.ToHex() {
		t.Errorf("Expected %#06x, got %#06x", diffuse.ToHex(), got)
	}

	// Corner pixel misses the box entirely
	corner := RenderPixel(0, 0, 3, 3, math.Pi/2, camera, shapes, lightList, env, 3)
	if corner != env.color.ToHex() {
		t.Errorf("Expected environment %#06x at corner, got %#06x", env.color.ToHex(), corner)
	}
}
