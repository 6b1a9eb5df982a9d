package scene

import (
	"math"

	"github.com/df07/go-rain-city-raytracer/pkg/core"
	"github.com/df07/go-rain-city-raytracer/pkg/material"
	"github.com/df07/go-rain-city-raytracer/pkg/renderer"
)

// City layout
const (
	citySeed        = 1234567
	streetHalfX     = 8.0   // Half width of the street between the rows
	buildingW       = 6.0   // Building extent along x
	buildingD       = 8.0   // Building extent along z
	blockStartZ     = -12.0 // Center z of the first block
	blockStepZ      = -12.0 // Spacing between blocks
	blocksPerSide   = 4
	rooftopLightPct = 0.4 // Buildings with a draw above this get a rooftop light
)

var neonPalette = [...]core.Color{
	core.ColorFromHex(0x00ffff),
	core.ColorFromHex(0xff00ff),
	core.ColorFromHex(0x66ccff),
	core.ColorFromHex(0xff66cc),
	core.ColorFromHex(0x00ffea),
}

// Window grid offsets on each street-facing facade
var (
	windowCols = [...]float64{-1.8, 0.0, 1.8} // z offsets from the block center
	windowRows = [...]float64{2.5, 5.0}       // window center heights
)

// NewCityScene creates the rainy street: a reflective asphalt slab flanked by two rows
// of concrete buildings with glass windows, neon panels and colored point lights.
// Building heights and light placement come from a fixed-seed generator, so the layout
// is identical on every run.
func NewCityScene() *Scene {
	camera := renderer.NewCamera(
		core.NewVec3(0, 3, 10),
		core.NewVec3(0, 4, -20),
		core.NewVec3(0, 1, 0),
	)
	s := newScene("city", camera)

	asphalt := material.AsphaltWet()
	concrete := material.ConcreteMatte()
	glass := material.GlassTinted()

	s.AddBox(core.NewVec3(-500, -0.1, -500), core.NewVec3(500, 0, 500), asphalt)

	rng := core.NewLCG(citySeed)

	for _, side := range []float64{-1, 1} {
		cxBase := side * (streetHalfX + buildingW*0.5)

		for i := 0; i < blocksPerSide; i++ {
			zc := blockStartZ + blockStepZ*float64(i)
			ytop := 8.0 + rng.Float01()*6.0

			lo := core.NewVec3(cxBase-buildingW*0.5, 0, zc-buildingD*0.5)
			hi := core.NewVec3(cxBase+buildingW*0.5, ytop, zc+buildingD*0.5)
			s.AddBox(lo, hi, concrete)

			// Everything below hangs off the facade facing the street
			innerX := lo.X
			if side < 0 {
				innerX = hi.X
			}
			out := -side // Unit step from the facade toward the street

			wx0, wx1 := ordered(innerX+out*0.02, innerX+out*0.06)
			for _, cz := range windowCols {
				for _, cy := range windowRows {
					wz := zc + cz
					wy := math.Min(cy, ytop-0.7)
					s.AddBox(
						core.NewVec3(wx0, wy-0.45, wz-0.65),
						core.NewVec3(wx1, wy+0.45, wz+0.65),
						glass,
					)
				}
			}

			panelY := math.Min(3.0+rng.Float01()*3.0, ytop-1.0)
			panelZ := zc + 1.5
			if rng.Float01() < 0.5 {
				panelZ = zc - 1.5
			}
			px0, px1 := ordered(innerX+out*0.03, innerX+out*0.12)
			s.AddBox(
				core.NewVec3(px0, panelY-0.9, panelZ-1.2),
				core.NewVec3(px1, panelY+0.9, panelZ+1.2),
				glass,
			)

			colorIndex := i
			if side > 0 {
				colorIndex += 3
			}
			intensity := 2.2 + rng.Float01()*1.0
			s.AddPointLight(
				core.NewVec3(innerX+out*0.35, panelY+0.1, panelZ),
				neonPalette[colorIndex%len(neonPalette)],
				intensity,
			)

			if rng.Float01() > rooftopLightPct {
				topY := math.Max(ytop-0.5, 3.5)
				lz := zc + 0.8
				if rng.Float01() < 0.5 {
					lz = zc - 0.8
				}
				s.AddPointLight(
					core.NewVec3(innerX+out*0.6, topY, lz),
					neonPalette[(i*2+1)%len(neonPalette)],
					1.8,
				)
			}
		}
	}

	return s
}

func ordered(a, b float64) (float64, float64) {
	if a > b {
		return b, a
	}
	return a, b
}
