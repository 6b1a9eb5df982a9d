package viewer

import (
	"strconv"
	"strings"

	"github.com/df07/go-rain-city-raytracer/pkg/renderer"
)

const (
	upperHalfBlock = "▀"
	ansiReset      = "\x1b[0m"
)

// RenderHalfBlocks draws the framebuffer as truecolor text. Each character cell shows two
// vertically stacked pixels: the foreground paints the upper half, the background the lower.
// An odd final row gets a black lower half.
func RenderHalfBlocks(fb *renderer.Framebuffer) string {
	var sb strings.Builder
	sb.Grow(fb.Width * (fb.Height + 1) / 2 * 20)

	for y := 0; y < fb.Height; y += 2 {
		lastFg, lastBg := int64(-1), int64(-1)
		for x := 0; x < fb.Width; x++ {
			top := fb.Pixel(x, y)
			var bottom uint32
			if y+1 < fb.Height {
				bottom = fb.Pixel(x, y+1)
			}

			if int64(top) != lastFg {
				writeColor(&sb, "38", top)
				lastFg = int64(top)
			}
			if int64(bottom) != lastBg {
				writeColor(&sb, "48", bottom)
				lastBg = int64(bottom)
			}
			sb.WriteString(upperHalfBlock)
		}
		sb.WriteString(ansiReset)
		if y+2 < fb.Height {
			sb.WriteByte('\n')
		}
	}

	return sb.String()
}

// writeColor emits an SGR truecolor sequence; layer is 38 (foreground) or 48 (background)
func writeColor(sb *strings.Builder, layer string, hex uint32) {
	sb.WriteString("\x1b[")
	sb.WriteString(layer)
	sb.WriteString(";2;")
	sb.WriteString(strconv.Itoa(int(hex>>16) & 0xff))
	sb.WriteByte(';')
	sb.WriteString(strconv.Itoa(int(hex>>8) & 0xff))
	sb.WriteByte(';')
	sb.WriteString(strconv.Itoa(int(hex) & 0xff))
	sb.WriteByte('m')
}
