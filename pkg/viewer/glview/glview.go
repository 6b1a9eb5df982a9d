// Package glview presents frames in a native window using GLFW and OpenGL 3.3 core.
// Frames are uploaded to a texture and copied to the window with a framebuffer blit.
package glview

import (
	"fmt"
	"log"
	"runtime"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/df07/go-rain-city-raytracer/pkg/config"
	"github.com/df07/go-rain-city-raytracer/pkg/renderer"
	"github.com/df07/go-rain-city-raytracer/pkg/scene"
)

func init() {
	// GLFW event handling must run on the main thread
	runtime.LockOSThread()
}

// Window is a GLFW window displaying a framebuffer
type Window struct {
	window  *glfw.Window
	texture uint32
	readFBO uint32
	width   int
	height  int
	pixels  []byte
}

// logLogger adapts the standard logger to core.Logger
type logLogger struct{}

func (logLogger) Printf(format string, args ...interface{}) {
	log.Printf(format, args...)
}

// NewWindow opens a window sized to the frame. Must be called from the main goroutine.
func NewWindow(title string, width, height int) (*Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("glfw init: %w", err)
	}

	glfw.WindowHint(glfw.Resizable, glfw.False)
	glfw.WindowHint(glfw.ContextVersionMajor, 3)
	glfw.WindowHint(glfw.ContextVersionMinor, 3)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	w, err := glfw.CreateWindow(width, height, title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("glfw create window: %w", err)
	}
	w.MakeContextCurrent()
	glfw.SwapInterval(0)

	if err := gl.Init(); err != nil {
		w.Destroy()
		glfw.Terminate()
		return nil, fmt.Errorf("gl init: %w", err)
	}

	win := &Window{
		window: w,
		width:  width,
		height: height,
		pixels: make([]byte, width*height*4),
	}

	gl.GenTextures(1, &win.texture)
	gl.BindTexture(gl.TEXTURE_2D, win.texture)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(width), int32(height), 0, gl.RGBA, gl.UNSIGNED_BYTE, nil)

	gl.GenFramebuffers(1, &win.readFBO)
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, win.readFBO)
	gl.FramebufferTexture2D(gl.READ_FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, win.texture, 0)
	if status := gl.CheckFramebufferStatus(gl.READ_FRAMEBUFFER); status != gl.FRAMEBUFFER_COMPLETE {
		win.Close()
		return nil, fmt.Errorf("incomplete framebuffer: 0x%x", status)
	}
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, 0)

	return win, nil
}

// ShouldClose reports whether the user closed the window
func (w *Window) ShouldClose() bool {
	return w.window.ShouldClose()
}

// PollDolly processes pending window events and returns the requested camera travel
func (w *Window) PollDolly(step float64) float64 {
	glfw.PollEvents()
	if w.window.GetKey(glfw.KeyEscape) == glfw.Press {
		w.window.SetShouldClose(true)
	}
	return DollyInput(func(key glfw.Key) bool {
		return w.window.GetKey(key) == glfw.Press
	}, step)
}

// Present uploads the framebuffer and shows it
func (w *Window) Present(fb *renderer.Framebuffer) {
	PackRGBA(fb, w.pixels)

	gl.BindTexture(gl.TEXTURE_2D, w.texture)
	gl.TexSubImage2D(gl.TEXTURE_2D, 0, 0, 0, int32(w.width), int32(w.height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(w.pixels))

	// Row 0 of the frame is the top of the image; GL's origin is bottom-left
	dstW, dstH := w.window.GetFramebufferSize()
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, w.readFBO)
	gl.BindFramebuffer(gl.DRAW_FRAMEBUFFER, 0)
	gl.BlitFramebuffer(
		0, 0, int32(w.width), int32(w.height),
		0, int32(dstH), int32(dstW), 0,
		gl.COLOR_BUFFER_BIT, gl.NEAREST,
	)
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, 0)

	w.window.SwapBuffers()
}

// Close releases GL objects and the window
func (w *Window) Close() {
	gl.DeleteFramebuffers(1, &w.readFBO)
	gl.DeleteTextures(1, &w.texture)
	w.window.Destroy()
	glfw.Terminate()
}

// DollyInput maps held keys to camera travel: W or = forward, S or - back
func DollyInput(pressed func(glfw.Key) bool, step float64) float64 {
	var d float64
	if pressed(glfw.KeyW) || pressed(glfw.KeyEqual) {
		d += step
	}
	if pressed(glfw.KeyS) || pressed(glfw.KeyMinus) {
		d -= step
	}
	return d
}

// PackRGBA writes the framebuffer as opaque RGBA bytes into dst, which must hold
// Width*Height*4 bytes
func PackRGBA(fb *renderer.Framebuffer, dst []byte) {
	for i, hex := range fb.Buffer {
		dst[i*4+0] = byte(hex >> 16)
		dst[i*4+1] = byte(hex >> 8)
		dst[i*4+2] = byte(hex)
		dst[i*4+3] = 0xff
	}
}

// Run opens a window and renders the scene until it is closed. Input is polled once per
// frame, before rendering, so camera moves never land mid-frame.
func Run(cfg config.Config, s *scene.Scene) error {
	win, err := NewWindow("RayTracing - "+s.Name, cfg.Width, cfg.Height)
	if err != nil {
		return err
	}
	defer win.Close()

	loop := renderer.NewFrameLoop(s, s.Camera, cfg.Width, cfg.Height, cfg.RenderConfig(), logLogger{})
	defer loop.Close()

	for !win.ShouldClose() {
		if d := win.PollDolly(cfg.DollyStep); d != 0 {
			loop.Dolly(d)
		}

		stats, err := loop.Step()
		if err != nil {
			return fmt.Errorf("render frame: %w", err)
		}
		win.Present(loop.Framebuffer())

		if stats.Frame%60 == 0 {
			log.Println(stats)
		}
	}

	return nil
}
