package renderer

import (
	"math"

	"github.com/df07/go-rain-city-raytracer/pkg/core"
	"github.com/df07/go-rain-city-raytracer/pkg/geometry"
	"github.com/df07/go-rain-city-raytracer/pkg/lights"
	"github.com/df07/go-rain-city-raytracer/pkg/material"
)

// hitEpsilon rejects self-intersections and offsets secondary ray origins
const hitEpsilon = 1e-3

// RenderConfig contains rendering configuration
type RenderConfig struct {
	FOV        float64 // Field of view in radians; its half-angle tangent spans the image height, aspect widens x
	MaxDepth   int     // Maximum recursion depth (primary ray included)
	TileSize   int     // Tile edge length for parallel rendering
	NumWorkers int     // Number of parallel workers (0 = use CPU count, 1 = sequential)
	Rain       bool    // Draw the rain overlay after each frame
}

// DefaultRenderConfig returns the reference settings
func DefaultRenderConfig() RenderConfig {
	return RenderConfig{
		FOV:        math.Pi / 3.0,
		MaxDepth:   3,
		TileSize:   32,
		NumWorkers: 0,
		Rain:       true,
	}
}

// Scene interface to avoid circular imports
type Scene interface {
	GetShapes() []geometry.Shape
	GetLights() []lights.PointLight
	GetEnvironment() lights.Environment
}

// NearestHit returns the closest intersection beyond hitEpsilon.
// Exact distance ties keep the earliest shape.
func NearestHit(ray core.Ray, shapes []geometry.Shape) (material.HitRecord, bool) {
	closest := material.NoHit()

	for _, shape := range shapes {
		hit := shape.Hit(ray)
		if hit.Hit && hit.T < closest.T && hit.T > hitEpsilon {
			closest = hit
		}
	}

	return closest, closest.Hit
}

// Trace returns the color seen along ray, recursing into reflection and refraction
// until depth reaches zero. stats may be nil.
func Trace(ray core.Ray, shapes []geometry.Shape, lightList []lights.PointLight, env lights.Environment, depth int, stats *TraceStats) core.Color {
	if depth <= 0 {
		stats.addDepthExhausted()
		return core.Black
	}

	stats.addRay()
	hit, isHit := NearestHit(ray, shapes)
	if !isHit {
		stats.addMiss()
		return env.Color(ray.Direction)
	}
	stats.addHit()

	mat := hit.Material
	viewDir := ray.Direction.Negate().Normalize()
	local := LocalShade(hit, viewDir, lightList)

	reflected := core.Black
	if mat.Reflectivity > 0 {
		dir := material.Reflect(ray.Direction, hit.Normal).Normalize()
		stats.addReflection()
		reflected = Trace(secondaryRay(hit.Point, dir), shapes, lightList, env, depth-1, stats)
	}

	if mat.Transparency > 0 {
		etaI, etaT := 1.0, mat.IOR
		cosI := core.Clamp01(-ray.Direction.Dot(hit.Normal))
		fresnel := material.Fresnel(cosI, etaI, etaT)

		dir, ok := material.Refract(ray.Direction, hit.Normal, etaI, etaT)
		if !ok {
			stats.addTotalInternalReflection()
			return blendReflection(local, reflected, mat.Reflectivity)
		}

		dir = dir.Normalize()
		stats.addRefraction()
		refracted := Trace(secondaryRay(hit.Point, dir), shapes, lightList, env, depth-1, stats)

		// These weights do not sum to one
		baseWeight := math.Max(0, 1-mat.Reflectivity-mat.Transparency)
		reflectWeight := math.Max(fresnel, mat.Reflectivity)
		refractWeight := (1 - fresnel) * mat.Transparency

		return local.Multiply(baseWeight).
			Add(reflected.Multiply(reflectWeight)).
			Add(refracted.Multiply(refractWeight))
	}

	if mat.Reflectivity > 0 {
		return blendReflection(local, reflected, mat.Reflectivity)
	}

	return local
}

// RenderPixel traces the primary ray through pixel (x, y) and packs the result as 0xRRGGBB
func RenderPixel(x, y, width, height int, fov float64, camera Camera, shapes []geometry.Shape,
	lightList []lights.PointLight, env lights.Environment, maxDepth int) uint32 {
	return renderPixel(x, y, width, height, fov, camera, shapes, lightList, env, maxDepth, nil)
}

func renderPixel(x, y, width, height int, fov float64, camera Camera, shapes []geometry.Shape,
	lightList []lights.PointLight, env lights.Environment, maxDepth int, stats *TraceStats) uint32 {
	ray := camera.GetRay(x, y, width, height, fov)
	return Trace(ray, shapes, lightList, env, maxDepth, stats).ToHex()
}

func blendReflection(local, reflected core.Color, reflectivity float64) core.Color {
	return local.Multiply(math.Max(0, 1-reflectivity)).Add(reflected.Multiply(reflectivity))
}

// secondaryRay nudges the origin along dir so the ray does not re-hit its own surface
func secondaryRay(point, dir core.Vec3) core.Ray {
	return core.NewRay(point.Add(dir.Multiply(hitEpsilon)), dir)
}
