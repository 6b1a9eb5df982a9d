package lights

import (
	"math"

	"github.com/df07/go-rain-city-raytracer/pkg/core"
)

// Sky gradient stops
var (
	skyZenith  = core.ColorFromHex(0x7fb6ff)
	skyMid     = core.ColorFromHex(0xaed1ff)
	skyHorizon = core.ColorFromHex(0xd9e7ff)
	sunTint    = core.ColorFromHex(0xfff2c6)
)

const skyKnee = 0.6

// rainbowBand describes one Gaussian bow around the anti-solar point
type rainbowBand struct {
	center    float64 // Angular radius of the band center (radians)
	sigma     float64 // Gaussian standard deviation (radians)
	intensity float64 // Scale applied to the spectrum color
	inward    bool    // Spectrum runs red-inside (secondary bow)
}

var (
	primaryBow   = rainbowBand{center: radians(42), sigma: radians(1.8), intensity: 0.60}
	secondaryBow = rainbowBand{center: radians(51), sigma: radians(2.2), intensity: 0.35, inward: true}
	bowSpread    = radians(4) // Angular width mapped onto the spectrum
)

// Sky is the analytic background: gradient, sun disc and halo, and a double rainbow
type Sky struct {
	SunDirection core.Vec3 // Unit vector toward the sun
}

// NewSky creates a sky with the given sun direction (normalized here)
func NewSky(sunDirection core.Vec3) *Sky {
	return &Sky{SunDirection: sunDirection.Normalize()}
}

// DefaultSunDirection places the sun behind the default camera so the rainbow is in view
func DefaultSunDirection() core.Vec3 {
	return core.NewVec3(-0.25, 0.35, 1.0).Normalize()
}

// SunFacingDirection places the sun in front of the default camera
func SunFacingDirection() core.Vec3 {
	return core.NewVec3(-0.25, 0.35, -1.0).Normalize()
}

func (s *Sky) Type() LightType {
	return LightTypeInfinite
}

// Color returns the unclamped sky color for a unit direction
func (s *Sky) Color(dir core.Vec3) core.Color {
	return s.base(dir).Add(s.sun(dir)).Add(s.rainbow(dir))
}

// base is the three-stop vertical gradient
func (s *Sky) base(dir core.Vec3) core.Color {
	t := core.Clamp01((dir.Y + 1.0) * 0.5)
	if t > skyKnee {
		return skyZenith.Lerp(skyMid, (t-skyKnee)/(1-skyKnee))
	}
	return skyMid.Lerp(skyHorizon, t/skyKnee)
}

// sun is the disc plus halo, tinted warm
func (s *Sky) sun(dir core.Vec3) core.Color {
	cosAngle := clamp(dir.Dot(s.SunDirection), -1, 1)
	sunCore := core.Clamp01(cosAngle)

	disc := math.Pow(sunCore, 32)
	halo := math.Pow(sunCore, 8) * 0.45
	return sunTint.Multiply(2.2*disc + 0.9*halo)
}

// rainbow sums both bows keyed to the angle from the anti-solar point
func (s *Sky) rainbow(dir core.Vec3) core.Color {
	theta := math.Acos(clamp(dir.Dot(s.SunDirection.Negate()), -1, 1))
	return primaryBow.color(theta).Add(secondaryBow.color(theta))
}

func (b rainbowBand) color(theta float64) core.Color {
	offset := theta - b.center
	weight := math.Exp(-(offset * offset) / (2 * b.sigma * b.sigma))

	phase := core.Clamp01((theta - (b.center - bowSpread/2)) / bowSpread)
	if b.inward {
		phase = 1 - phase
	}
	return Spectrum(phase).Multiply(b.intensity * weight)
}

// spectrumStops run violet to red
var spectrumStops = [...]core.Color{
	core.ColorFromHex(0x6a00ff), // violet
	core.ColorFromHex(0x4b00ff), // indigo
	core.ColorFromHex(0x0066ff), // blue
	core.ColorFromHex(0x00cc66), // green
	core.ColorFromHex(0xffdd00), // yellow
	core.ColorFromHex(0xff8800), // orange
	core.ColorFromHex(0xff0033), // red
}

// Spectrum maps t in [0,1] onto the visible spectrum gradient
func Spectrum(t float64) core.Color {
	last := len(spectrumStops) - 1
	x := core.Clamp01(t) * float64(last)
	i := int(math.Floor(x))
	if i >= last {
		return spectrumStops[last]
	}
	return spectrumStops[i].Lerp(spectrumStops[i+1], x-float64(i))
}

func radians(degrees float64) float64 {
	return degrees * math.Pi / 180
}

func clamp(x, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, x))
}
