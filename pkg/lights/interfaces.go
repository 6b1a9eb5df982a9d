package lights

import "github.com/df07/go-rain-city-raytracer/pkg/core"

type LightType string

const (
	LightTypePoint    LightType = "point"
	LightTypeInfinite LightType = "infinite"
)

// Environment provides the background color for rays that miss all geometry
type Environment interface {
	Type() LightType

	// Color evaluates the background for a unit direction
	Color(dir core.Vec3) core.Color
}
