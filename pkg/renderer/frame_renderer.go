package renderer

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/df07/go-rain-city-raytracer/pkg/core"
)

// ErrRendererClosed is returned when rendering with a renderer that has been closed
var ErrRendererClosed = errors.New("renderer closed")

// FrameRenderer renders whole frames tile by tile, in parallel when configured
type FrameRenderer struct {
	scene        Scene
	width        int
	height       int
	config       RenderConfig
	tiles        []*Tile
	tileRenderer *TileRenderer
	workerPool   *WorkerPool // nil when rendering sequentially
	logger       core.Logger

	mu      sync.Mutex // held for a whole frame; Close waits for it
	started bool
	closed  bool
}

// NewFrameRenderer creates a frame renderer. NumWorkers == 1 renders on the caller's goroutine.
func NewFrameRenderer(scene Scene, width, height int, config RenderConfig, logger core.Logger) *FrameRenderer {
	if config.TileSize <= 0 {
		config.TileSize = DefaultRenderConfig().TileSize
	}
	if logger == nil {
		logger = NewDefaultLogger()
	}

	tileRenderer := NewTileRenderer(scene, width, height, config)
	tiles := NewTileGrid(width, height, config.TileSize)

	fr := &FrameRenderer{
		scene:        scene,
		width:        width,
		height:       height,
		config:       config,
		tiles:        tiles,
		tileRenderer: tileRenderer,
		logger:       logger,
	}

	if config.NumWorkers != 1 {
		fr.workerPool = NewWorkerPool(tileRenderer, config.NumWorkers, len(tiles))
	}

	return fr
}

// NumWorkers returns the number of goroutines rendering tiles
func (fr *FrameRenderer) NumWorkers() int {
	if fr.workerPool == nil {
		return 1
	}
	return fr.workerPool.GetNumWorkers()
}

// RenderFrame traces every pixel of fb from the camera snapshot.
// Every frame runs to completion.
func (fr *FrameRenderer) RenderFrame(camera Camera, fb *Framebuffer) (FrameStats, error) {
	fr.mu.Lock()
	defer fr.mu.Unlock()

	if fr.closed {
		return FrameStats{}, ErrRendererClosed
	}
	if fb.Width != fr.width || fb.Height != fr.height {
		return FrameStats{}, fmt.Errorf("framebuffer is %dx%d, renderer expects %dx%d",
			fb.Width, fb.Height, fr.width, fr.height)
	}

	startTime := time.Now()
	stats := FrameStats{Pixels: fr.width * fr.height, Workers: fr.NumWorkers()}

	if fr.workerPool == nil {
		for _, tile := range fr.tiles {
			stats.Trace.Merge(fr.tileRenderer.RenderTileBounds(tile.Bounds, camera, fb))
		}
		stats.Duration = time.Since(startTime)
		return stats, nil
	}

	if !fr.started {
		fr.logger.Printf("Rendering %dx%d in %d tiles using %d workers\n",
			fr.width, fr.height, len(fr.tiles), fr.workerPool.GetNumWorkers())
		fr.workerPool.Start()
		fr.started = true
	}

	for taskID, tile := range fr.tiles {
		fr.workerPool.SubmitTask(TileTask{
			Tile:        tile,
			Camera:      camera,
			Framebuffer: fb,
			TaskID:      taskID,
		})
	}

	for range fr.tiles {
		result, ok := fr.workerPool.GetResult()
		if !ok {
			return FrameStats{}, fmt.Errorf("worker pool closed unexpectedly")
		}
		stats.Trace.Merge(result.Stats)
	}

	stats.Duration = time.Since(startTime)
	return stats, nil
}

// Close waits for a frame in progress, then stops the worker pool. Later calls to
// RenderFrame return ErrRendererClosed. Close may be called more than once.
func (fr *FrameRenderer) Close() {
	fr.mu.Lock()
	defer fr.mu.Unlock()

	if fr.closed {
		return
	}
	fr.closed = true
	if fr.workerPool != nil && fr.started {
		fr.workerPool.Stop()
	}
}
