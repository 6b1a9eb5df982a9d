package renderer

import "github.com/df07/go-rain-city-raytracer/pkg/core"

// Rain streak palette, chosen by the low bits of the generator state
var rainColors = [...]uint32{0xE0E6EA, 0xC9D6DF, 0xB5C7D9}

// DrawRain draws falling rain streaks over the framebuffer. The streak layout is
// derived from the frame number alone, so a given frame always looks the same.
func DrawRain(fb *Framebuffer, frame uint32) {
	w, h := fb.Width, fb.Height
	if w <= 0 || h <= 0 {
		return
	}

	seed := core.Step(frame)
	streaks := max(w/14, 26)

	for range streaks {
		seed = core.Step(seed)
		x := int(seed % uint32(w))

		seed = core.Step(seed)
		length := 12 + int(seed%28)

		seed = core.Step(seed)
		speed := 7 + int(seed%9)

		y0 := streakTop(frame, speed, h, length)

		c := rainColors[2]
		if seed&3 < 2 {
			c = rainColors[seed&3]
		}

		dx := 0
		if seed&7 < 3 {
			dx = 1
		}

		fb.SetCurrentColor(c)
		xi, yi := x, y0
		for range length {
			fb.Point(xi, yi)
			xi += dx
			yi++
		}
	}
}

// streakTop returns the first row of a streak; it scrolls down by speed rows per frame
// and wraps after leaving the frame. The product is taken in 64 bits for any frame number.
func streakTop(frame uint32, speed, height, length int) int {
	return int((int64(frame)*int64(speed))%int64(height+length)) - length
}
