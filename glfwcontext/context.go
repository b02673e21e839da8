// Package glfwcontext hosts effect runtimes in a GLFW window: it is the page
// viewport, turns window input into pointer, touch, scroll and resize events and
// runs the on-demand present loop.
package glfwcontext

import (
	"log"
	"runtime"
	"sync/atomic"

	glfw "github.com/go-gl/glfw/v3.3/glfw"

	options "github.com/richinsley/goglitch/options"
)

// Context is the window and its GL context.
type Context struct {
	window *glfw.Window
	// A map to store functions to be called on key presses.
	keyCallbacks map[glfw.Key]func()
	frame        atomic.Bool
}

// New creates the window. The GL context is not made current.
func New(options *options.HostOptions, title string) (*Context, error) {
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.ScaleToMonitor, glfw.True)

	if title == "" {
		title = "goglitch"
	}
	win, err := glfw.CreateWindow(*options.Width, *options.Height, title, nil, nil)
	if err != nil {
		return nil, err
	}

	c := &Context{
		window:       win,
		keyCallbacks: make(map[glfw.Key]func()),
	}
	win.SetKeyCallback(c.glfwKeyCallback)
	return c, nil
}

// RegisterKeyCallback allows the main application to register a function to be
// called when a specific key is pressed.
func (c *Context) RegisterKeyCallback(key glfw.Key, f func()) {
	c.keyCallbacks[key] = f
}

func (c *Context) glfwKeyCallback(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	if key == glfw.KeyEscape && action == glfw.Press {
		w.SetShouldClose(true)
	}
	if action == glfw.Press {
		if callback, ok := c.keyCallbacks[key]; ok {
			callback()
		}
	}
}

// Size returns the window size in screen coordinates, the CSS pixels of the page.
func (c *Context) Size() (float64, float64) {
	w, h := c.window.GetSize()
	return float64(w), float64(h)
}

func (c *Context) RootFontSize() float64 { return 16 }

// DevicePixelRatio is the framebuffer to window size ratio.
func (c *Context) DevicePixelRatio() float64 {
	fbWidth, _ := c.window.GetFramebufferSize()
	winWidth, _ := c.window.GetSize()
	if winWidth <= 0 || fbWidth <= 0 {
		return 1
	}
	return float64(fbWidth) / float64(winWidth)
}

// RequestFrame asks the loop for one tick. Safe from any goroutine.
func (c *Context) RequestFrame() {
	if c.frame.CompareAndSwap(false, true) {
		glfw.PostEmptyEvent()
	}
}

// takeFrame consumes a pending frame request.
func (c *Context) takeFrame() bool {
	return c.frame.Swap(false)
}

// CursorPos returns the cursor in window coordinates.
func (c *Context) CursorPos() (float64, float64) {
	return c.window.GetCursorPos()
}

// MakeCurrent makes the context current for the calling goroutine.
func (c *Context) MakeCurrent() {
	c.window.MakeContextCurrent()
}

func (c *Context) Shutdown() {
	c.window.Destroy()
}

func (c *Context) ShouldClose() bool {
	return c.window.ShouldClose()
}

func (c *Context) GetFramebufferSize() (int, int) {
	return c.window.GetFramebufferSize()
}

// Window returns the underlying *glfw.Window.
func (c *Context) Window() *glfw.Window {
	return c.window
}

// InitGraphics initializes GLFW. Must be called from the main thread.
func InitGraphics() error {
	runtime.LockOSThread()
	if err := glfw.Init(); err != nil {
		return err
	}
	log.Printf("GLFW Initialized")
	return nil
}

// TerminateGraphics shuts GLFW down. Must be called from the main thread.
func TerminateGraphics() {
	glfw.Terminate()
	log.Printf("GLFW Terminated")
}
