package material

import (
	"math"

	"github.com/df07/go-rain-city-raytracer/pkg/core"
)

// Reflect calculates the reflection of i off a surface with normal n.
// The result is unit length only when both inputs are.
func Reflect(i, n core.Vec3) core.Vec3 {
	// r = i - 2*dot(i,n)*n
	return i.Subtract(n.Multiply(2 * i.Dot(n)))
}

// Refract bends i through a surface with normal n using Snell's law.
// When i leaves through the n-facing side the normal is flipped and the indices
// swapped. Returns false on total internal reflection. The result is not normalized.
func Refract(i, n core.Vec3, etaI, etaT float64) (core.Vec3, bool) {
	normal := n
	cosI := i.Dot(n)
	if cosI > 0 {
		normal = n.Negate()
		etaI, etaT = etaT, etaI
		cosI = -cosI
	}

	eta := etaI / etaT
	c := -cosI
	k := 1 - eta*eta*(1-c*c)
	if k < 0 {
		return core.Vec3{}, false
	}
	return i.Multiply(eta).Add(normal.Multiply(eta*c - math.Sqrt(k))), true
}

// Fresnel calculates the reflectance using Schlick's approximation.
// cosI must already be clamped to [0,1].
func Fresnel(cosI, etaI, etaT float64) float64 {
	r0 := (etaI - etaT) / (etaI + etaT)
	r0 = r0 * r0
	return r0 + (1-r0)*math.Pow(1-cosI, 5)
}
