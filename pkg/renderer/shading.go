package renderer

import (
	"math"

	"github.com/df07/go-rain-city-raytracer/pkg/core"
	"github.com/df07/go-rain-city-raytracer/pkg/lights"
	"github.com/df07/go-rain-city-raytracer/pkg/material"
)

var specularWhite = core.NewColor(255, 255, 255)

// LocalShade computes direct diffuse and Blinn-Phong specular lighting at a hit.
// Contributions from all lights are summed without normalization; overexposure is
// resolved when the color is packed.
func LocalShade(hit material.HitRecord, viewDir core.Vec3, lightList []lights.PointLight) core.Color {
	accum := core.Black
	mat := hit.Material

	for _, light := range lightList {
		l := light.Position.Subtract(hit.Point).Normalize()
		nDotL := core.Clamp01(hit.Normal.Dot(l))
		diffuse := mat.Diffuse.Multiply(mat.Albedo[0] * nDotL * light.Intensity)

		h := l.Add(viewDir).Normalize()
		nDotH := core.Clamp01(hit.Normal.Dot(h))
		specular := specularWhite.Multiply(mat.Albedo[1] * math.Pow(nDotH, mat.Specular))

		accum = accum.Add(diffuse).Add(specular)
	}

	return accum
}
