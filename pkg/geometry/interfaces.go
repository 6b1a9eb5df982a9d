package geometry

import (
	"github.com/df07/go-rain-city-raytracer/pkg/core"
	"github.com/df07/go-rain-city-raytracer/pkg/material"
)

// Shape interface for objects that can be hit by rays.
// A miss is reported with material.NoHit().
type Shape interface {
	Hit(ray core.Ray) material.HitRecord
}

// Validator interface for shapes that can check their own construction
type Validator interface {
	Validate() error
}
