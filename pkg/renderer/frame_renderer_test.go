package renderer

import (
	"errors"
	"math"
	"testing"

	"github.com/df07/go-rain-city-raytracer/pkg/core"
	"github.com/df07/go-rain-city-raytracer/pkg/geometry"
	"github.com/df07/go-rain-city-raytracer/pkg/lights"
	"github.com/df07/go-rain-city-raytracer/pkg/material"
)

// silentLogger discards output
type silentLogger struct{}

func (silentLogger) Printf(format string, args ...interface{}) {}

func createTestScene() MockScene {
	glass := material.GlassTinted()
	mirror := diffuseOnly(core.NewColor(60, 60, 60))
	mirror.Reflectivity = 0.6

	return MockScene{
		shapes: []geometry.Shape{
			geometry.NewBox(core.NewVec3(-20, -1, -40), core.NewVec3(20, 0, 5), mirror),
			geometry.NewBox(core.NewVec3(-1, 0, -6), core.NewVec3(1, 2, -4), glass),
			geometry.NewBox(core.NewVec3(2, 0, -9), core.NewVec3(4, 3, -7), diffuseOnly(core.NewColor(200, 80, 40))),
		},
		lights: []lights.PointLight{
			lights.NewPointLight(core.NewVec3(0, 10, 0), core.NewColor(255, 255, 255), 0.8),
		},
		env: lights.NewSky(lights.DefaultSunDirection()),
	}
}

func createTestCamera() Camera {
	return NewCamera(core.NewVec3(0, 2, 5), core.NewVec3(0, 1, -10), core.NewVec3(0, 1, 0))
}

func TestFrameRenderer_ParallelMatchesSequential(t *testing.T) {
	scene := createTestScene()
	camera := createTestCamera()
	width, height := 48, 27

	seqConfig := DefaultRenderConfig()
	seqConfig.NumWorkers = 1
	seqConfig.TileSize = 8
	sequential := NewFrameRenderer(scene, width, height, seqConfig, silentLogger{})
	defer sequential.Close()

	parConfig := seqConfig
	parConfig.NumWorkers = 4
	parallel := NewFrameRenderer(scene, width, height, parConfig, silentLogger{})
	defer parallel.Close()

	seqFB := NewFramebuffer(width, height)
	parFB := NewFramebuffer(width, height)

	seqStats, err := sequential.RenderFrame(camera, seqFB)
	if err != nil {
		t.Fatalf("Sequential render failed: %v", err)
	}
	parStats, err := parallel.RenderFrame(camera, parFB)
	if err != nil {
		t.Fatalf("Parallel render failed: %v", err)
	}

	for i := range seqFB.Buffer {
		if seqFB.Buffer[i] != parFB.Buffer[i] {
			t.Fatalf("Pixel %d differs: sequential %#06x, parallel %#06x", i, seqFB.Buffer[i], parFB.Buffer[i])
		}
	}
	if seqStats.Trace != parStats.Trace {
		t.Errorf("Expected identical trace counters, got %+v and %+v", seqStats.Trace, parStats.Trace)
	}
	if parStats.Workers != 4 || seqStats.Workers != 1 {
		t.Errorf("Expected worker counts 1 and 4, got %d and %d", seqStats.Workers, parStats.Workers)
	}
}

func TestFrameRenderer_MatchesRenderPixel(t *testing.T) {
	scene := createTestScene()
	camera := createTestCamera()
	width, height := 16, 9
	config := DefaultRenderConfig()
	config.TileSize = 5

	fr := NewFrameRenderer(scene, width, height, config, silentLogger{})
	defer fr.Close()

	fb := NewFramebuffer(width, height)
	stats, err := fr.RenderFrame(camera, fb)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			expected := RenderPixel(x, y, width, height, config.FOV, camera,
				scene.shapes, scene.lights, scene.env, config.MaxDepth)
			if got := fb.Pixel(x, y); got != expected {
				t.Errorf("Pixel (%d,%d): expected %#06x, got %#06x", x, y, expected, got)
			}
		}
	}

	if stats.Pixels != width*height {
		t.Errorf("Expected %d pixels, got %d", width*height, stats.Pixels)
	}
	if stats.Trace.Rays < width*height {
		t.Errorf("Expected at least one ray per pixel, got %d", stats.Trace.Rays)
	}
	if stats.Trace.Hits+stats.Trace.Misses != stats.Trace.Rays {
		t.Errorf("Expected hits+misses == rays, got %+v", stats.Trace)
	}
}

func TestFrameRenderer_RepeatedFrames(t *testing.T) {
	scene := createTestScene()
	camera := createTestCamera()
	config := DefaultRenderConfig()
	config.NumWorkers = 3

	fr := NewFrameRenderer(scene, 20, 10, config, silentLogger{})
	defer fr.Close()

	first := NewFramebuffer(20, 10)
	second := NewFramebuffer(20, 10)
	if _, err := fr.RenderFrame(camera, first); err != nil {
		t.Fatalf("First frame failed: %v", err)
	}
	if _, err := fr.RenderFrame(camera, second); err != nil {
		t.Fatalf("Second frame failed: %v", err)
	}

	for i := range first.Buffer {
		if first.Buffer[i] != second.Buffer[i] {
			t.Fatalf("Expected identical frames, pixel %d differs", i)
		}
	}
}

func TestFrameRenderer_SizeMismatch(t *testing.T) {
	fr := NewFrameRenderer(createTestScene(), 10, 10, DefaultRenderConfig(), silentLogger{})
	defer fr.Close()

	if _, err := fr.RenderFrame(createTestCamera(), NewFramebuffer(5, 10)); err == nil {
		t.Error("Expected error for mismatched framebuffer")
	}
}

func TestFrameRenderer_CloseIsFinal(t *testing.T) {
	config := DefaultRenderConfig()
	config.NumWorkers = 2
	fr := NewFrameRenderer(createTestScene(), 10, 10, config, silentLogger{})

	fb := NewFramebuffer(10, 10)
	if _, err := fr.RenderFrame(createTestCamera(), fb); err != nil {
		t.Fatalf("First frame failed: %v", err)
	}

	fr.Close()
	fr.Close()

	for i := 0; i < 2; i++ {
		if _, err := fr.RenderFrame(createTestCamera(), fb); !errors.Is(err, ErrRendererClosed) {
			t.Errorf("Render %d after Close: expected ErrRendererClosed, got %v", i, err)
		}
	}
}

func TestFrameStats_FPS(t *testing.T) {
	stats := FrameStats{Duration: 0}
	if stats.FPS() != 0 {
		t.Errorf("Expected 0 FPS for zero duration, got %v", stats.FPS())
	}

	stats.Duration = 40_000_000 // 40ms
	if math.Abs(stats.FPS()-25) > 1e-9 {
		t.Errorf("Expected 25 FPS, got %v", stats.FPS())
	}
}
