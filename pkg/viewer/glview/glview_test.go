package glview

import (
	"testing"

	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/df07/go-rain-city-raytracer/pkg/renderer"
)

func TestDollyInput(t *testing.T) {
	tests := []struct {
		name     string
		keys     []glfw.Key
		expected float64
	}{
		{"no keys", nil, 0},
		{"w", []glfw.Key{glfw.KeyW}, 0.15},
		{"equal", []glfw.Key{glfw.KeyEqual}, 0.15},
		{"w and equal move once", []glfw.Key{glfw.KeyW, glfw.KeyEqual}, 0.15},
		{"s", []glfw.Key{glfw.KeyS}, -0.15},
		{"minus", []glfw.Key{glfw.KeyMinus}, -0.15},
		{"opposing keys cancel", []glfw.Key{glfw.KeyW, glfw.KeyS}, 0},
		{"unrelated key", []glfw.Key{glfw.KeyA}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			held := map[glfw.Key]bool{}
			for _, k := range tt.keys {
				held[k] = true
			}
			got := DollyInput(func(k glfw.Key) bool { return held[k] }, 0.15)
			if got != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestPackRGBA(t *testing.T) {
	fb := renderer.NewFramebuffer(2, 1)
	fb.SetPixel(0, 0, 0x102030)
	fb.SetPixel(1, 0, 0xffeedd)

	dst := make([]byte, 8)
	PackRGBA(fb, dst)

	expected := []byte{0x10, 0x20, 0x30, 0xff, 0xff, 0xee, 0xdd, 0xff}
	for i := range expected {
		if dst[i] != expected[i] {
			t.Errorf("Byte %d: expected %#x, got %#x", i, expected[i], dst[i])
		}
	}
}
