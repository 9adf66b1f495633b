package opengl

import (
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/go-theft-auto/listui"
)

// GLFWInputAdapter translates GLFW key and framebuffer events into
// listui events on a queue.
type GLFWInputAdapter struct {
	window *glfw.Window
	queue  *listui.EventQueue
}

// NewGLFWInputAdapter installs callbacks on window that push into queue.
func NewGLFWInputAdapter(window *glfw.Window, queue *listui.EventQueue) *GLFWInputAdapter {
	adapter := &GLFWInputAdapter{
		window: window,
		queue:  queue,
	}

	window.SetKeyCallback(adapter.keyCallback)
	window.SetFramebufferSizeCallback(adapter.framebufferSizeCallback)
	window.SetCloseCallback(adapter.closeCallback)

	return adapter
}

// Queue returns the queue events are pushed to.
func (a *GLFWInputAdapter) Queue() *listui.EventQueue {
	return a.queue
}

func (a *GLFWInputAdapter) keyCallback(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	if action == glfw.Release {
		return
	}
	kind := glfwKeyToEvent(key)
	if kind == listui.EventNone {
		return
	}
	a.queue.Push(listui.Key(kind))
}

func (a *GLFWInputAdapter) framebufferSizeCallback(w *glfw.Window, width, height int) {
	a.queue.Push(listui.Resize(width, height))
}

func (a *GLFWInputAdapter) closeCallback(w *glfw.Window) {
	a.queue.Push(listui.Key(listui.EventQuit))
}

// glfwKeyToEvent maps GLFW keys to listui events. Arrow keys and WASD
// navigate; Enter and Space activate; Escape and Backspace cancel.
func glfwKeyToEvent(key glfw.Key) listui.EventKind {
	switch key {
	case glfw.KeyUp, glfw.KeyW:
		return listui.EventUp
	case glfw.KeyDown, glfw.KeyS:
		return listui.EventDown
	case glfw.KeyLeft, glfw.KeyA:
		return listui.EventLeft
	case glfw.KeyRight, glfw.KeyD:
		return listui.EventRight
	case glfw.KeyEnter, glfw.KeyKPEnter, glfw.KeySpace:
		return listui.EventActivate
	case glfw.KeyEscape, glfw.KeyBackspace:
		return listui.EventCancel
	case glfw.KeyQ:
		return listui.EventQuit
	default:
		return listui.EventNone
	}
}
