package renderer

import (
	"sync/atomic"

	"github.com/df07/go-rain-city-raytracer/pkg/core"
)

// FrameLoop drives the interactive render loop shared by every front-end:
// render all pixels, draw the overlay, then advance the frame counter.
// The camera only changes between calls to Step.
type FrameLoop struct {
	scene    Scene
	camera   Camera
	config   RenderConfig
	fb       *Framebuffer
	renderer *FrameRenderer
	frame    uint32
	logger   core.Logger
	closed   atomic.Bool
}

// NewFrameLoop creates a loop rendering into a width x height framebuffer
func NewFrameLoop(scene Scene, camera Camera, width, height int, config RenderConfig, logger core.Logger) *FrameLoop {
	if logger == nil {
		logger = NewDefaultLogger()
	}
	return &FrameLoop{
		scene:    scene,
		camera:   camera,
		config:   config,
		fb:       NewFramebuffer(width, height),
		renderer: NewFrameRenderer(scene, width, height, config, logger),
		logger:   logger,
	}
}

// Step renders one frame and returns its statistics. After Close it returns
// ErrRendererClosed and the frame counter does not advance.
func (fl *FrameLoop) Step() (FrameStats, error) {
	stats, err := fl.renderer.RenderFrame(fl.camera, fl.fb)
	if err != nil {
		return FrameStats{}, err
	}
	stats.Frame = fl.frame

	if fl.config.Rain {
		DrawRain(fl.fb, fl.frame)
	}
	fl.frame++

	return stats, nil
}

// Dolly moves the camera along its view direction
func (fl *FrameLoop) Dolly(distance float64) {
	fl.camera.Dolly(distance)
}

// Camera returns the current camera
func (fl *FrameLoop) Camera() Camera {
	return fl.camera
}

// Frame returns the number of the next frame to be rendered
func (fl *FrameLoop) Frame() uint32 {
	return fl.frame
}

// Framebuffer returns the most recently rendered frame
func (fl *FrameLoop) Framebuffer() *Framebuffer {
	return fl.fb
}

// Resize replaces the framebuffer and renderer with ones of the new size.
// A closed loop stays closed.
func (fl *FrameLoop) Resize(width, height int) {
	if fl.closed.Load() || (width == fl.fb.Width && height == fl.fb.Height) {
		return
	}
	fl.renderer.Close()
	fl.fb = NewFramebuffer(width, height)
	fl.renderer = NewFrameRenderer(fl.scene, width, height, fl.config, fl.logger)
}

// Close releases the renderer's workers, waiting for a frame in progress
func (fl *FrameLoop) Close() {
	fl.closed.Store(true)
	fl.renderer.Close()
}
