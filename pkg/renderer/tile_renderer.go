package renderer

import "image"

// TileRenderer traces the pixels of one tile
type TileRenderer struct {
	scene  Scene
	config RenderConfig
	width  int
	height int
}

// NewTileRenderer creates a tile renderer for a frame of the given size
func NewTileRenderer(scene Scene, width, height int, config RenderConfig) *TileRenderer {
	return &TileRenderer{
		scene:  scene,
		config: config,
		width:  width,
		height: height,
	}
}

// RenderTileBounds renders pixels within bounds into fb and returns the tracing counters
func (tr *TileRenderer) RenderTileBounds(bounds image.Rectangle, camera Camera, fb *Framebuffer) TraceStats {
	var stats TraceStats
	shapes := tr.scene.GetShapes()
	lightList := tr.scene.GetLights()
	env := tr.scene.GetEnvironment()

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			hex := renderPixel(x, y, tr.width, tr.height, tr.config.FOV, camera, shapes, lightList, env, tr.config.MaxDepth, &stats)
			fb.SetPixel(x, y, hex)
		}
	}

	return stats
}
