// Command gen renders sample lists offscreen, captures framebuffer pixels,
// and saves JPEG screenshots to doc/imgs/.
//
// Usage:
//
//	devbox shell
//	go run ./doc/gen/
package main

import (
	"fmt"
	"image"
	"image/jpeg"
	"os"
	"path/filepath"
	"runtime"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/go-theft-auto/listui"
	"github.com/go-theft-auto/listui/backend/opengl"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// screenshot defines a single capture.
type screenshot struct {
	name   string                      // filename without extension
	width  int                         // viewport width
	height int                         // viewport height
	build  func(app *listui.App) error // creates lists and values
	events []listui.Event              // applied before the first frame
}

func run() error {
	if err := glfw.Init(); err != nil {
		return fmt.Errorf("glfw init: %w", err)
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Visible, glfw.False)

	window, err := glfw.CreateWindow(800, 600, "screenshot-gen", nil, nil)
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}
	window.MakeContextCurrent()

	if err := gl.Init(); err != nil {
		return fmt.Errorf("gl init: %w", err)
	}

	renderer, err := opengl.NewRenderer(800, 600)
	if err != nil {
		return fmt.Errorf("renderer: %w", err)
	}
	defer renderer.Delete()

	outDir := filepath.Join("doc", "imgs")
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}

	shots := buildScreenshots()
	for _, s := range shots {
		if err := capture(renderer, s, outDir); err != nil {
			return fmt.Errorf("capture %s: %w", s.name, err)
		}
		fmt.Printf("  %s.jpg (%dx%d)\n", s.name, s.width, s.height)
	}

	fmt.Printf("\nGenerated %d screenshots in %s/\n", len(shots), outDir)
	return nil
}

func capture(renderer *opengl.Renderer, s screenshot, outDir string) error {
	// The hidden window stays at 800x600, larger than every screenshot;
	// only the projection follows the capture size.
	renderer.Resize(s.width, s.height)

	// Fresh App per screenshot so no state leaks between captures.
	app := listui.New(renderer,
		listui.WithExtent(uint32(s.width), uint32(s.height)),
		listui.WithTextMeasurer(opengl.BitmapMeasurer()),
		listui.WithCooldown(0),
	)
	if err := s.build(app); err != nil {
		return err
	}

	events := s.events
	for i := 0; i < 2; i++ {
		gl.Viewport(0, 0, int32(s.width), int32(s.height))
		gl.ClearColor(0, 0, 0, 1)
		gl.Clear(gl.COLOR_BUFFER_BIT)
		if err := app.Frame(events, 1.0/60.0, nil); err != nil {
			return err
		}
		events = nil
	}

	pixels := make([]byte, s.width*s.height*4)
	gl.ReadPixels(0, 0, int32(s.width), int32(s.height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))

	// Flip vertically (OpenGL origin is bottom-left)
	rowLen := s.width * 4
	tmp := make([]byte, rowLen)
	for y := 0; y < s.height/2; y++ {
		top := y * rowLen
		bot := (s.height - 1 - y) * rowLen
		copy(tmp, pixels[top:top+rowLen])
		copy(pixels[top:top+rowLen], pixels[bot:bot+rowLen])
		copy(pixels[bot:bot+rowLen], tmp)
	}

	img := image.NewRGBA(image.Rect(0, 0, s.width, s.height))
	copy(img.Pix, pixels)

	path := filepath.Join(outDir, s.name+".jpg")
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return jpeg.Encode(f, img, &jpeg.Options{Quality: 90})
}

// buildScreenshots returns every capture to generate.
func buildScreenshots() []screenshot {
	return []screenshot{
		{
			name: "single_value", width: 320, height: 80,
			build: func(app *listui.App) error {
				id, err := app.NewList()
				if err != nil {
					return err
				}
				app.List(id).AddLabeledValue("time", app.Store().Insert("time", listui.Float64(0)))
				return nil
			},
		},
		{
			name: "mixed_entries", width: 320, height: 240,
			build: buildMixed,
			events: []listui.Event{
				listui.Key(listui.EventDown),
				listui.Key(listui.EventDown),
			},
		},
		{
			name: "settings_open", width: 480, height: 240,
			build: buildMixed,
			events: []listui.Event{
				listui.Key(listui.EventUp),
				listui.Key(listui.EventActivate),
			},
		},
		{
			name: "right_anchor", width: 480, height: 160,
			build: func(app *listui.App) error {
				id, err := app.NewList()
				if err != nil {
					return err
				}
				l := app.List(id)
				l.Anchor = listui.AnchorRight
				s := app.Store()
				l.AddLabeledValue("speed", s.Insert("speed", listui.Float32(42.5)))
				l.AddLabeledValue("gear", s.Insert("gear", listui.Int32(3)))
				l.AddEntry("locked", listui.ItemText, listui.ItemNotSelectable, listui.ItemNotEditable, s.Insert("locked", listui.Bool(true)))
				return nil
			},
		},
	}
}

// buildMixed creates a list with every entry kind and a settings sub-list.
func buildMixed(app *listui.App) error {
	mainID, err := app.NewList()
	if err != nil {
		return err
	}
	settingsID, err := app.NewList()
	if err != nil {
		return err
	}
	s := app.Store()

	settings := app.List(settingsID)
	settings.Anchor = listui.AnchorMiddle
	settings.AddCheckBox("enabled", s.Insert("enabled", listui.Bool(true)))
	settings.AddSlider("volume", s.Insert("volume", listui.Float32(0.5)), listui.SliderRange{Min: 0, Max: 1, Step: 0.1})

	root := app.List(mainID)
	root.AddLabeledValue("hello", s.Insert("hello", listui.Text("world")))
	root.AddLabeledValue("count", s.Insert("count", listui.Uint32(7)))
	root.AddButton("reset", listui.Handle{}, nil)
	root.AddSubList("settings", settingsID)
	return nil
}
