package core

import "image/color"

// Color is an RGB color with channels nominally in [0, 255].
// Channels are not clamped by arithmetic; ToHex is the only clamping point.
type Color struct {
	R, G, B float64
}

// Black is the zero color
var Black = Color{}

// NewColor creates a new Color
func NewColor(r, g, b float64) Color {
	return Color{R: r, G: g, B: b}
}

// ColorFromHex unpacks a 0xRRGGBB value
func ColorFromHex(hex uint32) Color {
	return Color{
		R: float64((hex >> 16) & 0xff),
		G: float64((hex >> 8) & 0xff),
		B: float64(hex & 0xff),
	}
}

// ToHex packs the color into 0xRRGGBB, clamping each channel to a byte
func (c Color) ToHex() uint32 {
	return uint32(channelByte(c.R))<<16 | uint32(channelByte(c.G))<<8 | uint32(channelByte(c.B))
}

// Add returns the channel-wise sum of two colors
func (c Color) Add(other Color) Color {
	return Color{c.R + other.R, c.G + other.G, c.B + other.B}
}

// Multiply returns the color scaled by a scalar
func (c Color) Multiply(scalar float64) Color {
	return Color{c.R * scalar, c.G * scalar, c.B * scalar}
}

// Lerp blends linearly from c (t=0) to other (t=1)
func (c Color) Lerp(other Color, t float64) Color {
	return c.Multiply(1 - t).Add(other.Multiply(t))
}

// ToRGBA converts the color to an opaque color.RGBA
func (c Color) ToRGBA() color.RGBA {
	return HexToRGBA(c.ToHex())
}

// HexToRGBA converts a packed 0xRRGGBB value to an opaque color.RGBA
func HexToRGBA(hex uint32) color.RGBA {
	return color.RGBA{
		R: uint8(hex >> 16),
		G: uint8(hex >> 8),
		B: uint8(hex),
		A: 255,
	}
}

// channelByte truncates a channel value to [0, 255]; NaN maps to 0
func channelByte(v float64) uint8 {
	if !(v > 0) {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v)
}
