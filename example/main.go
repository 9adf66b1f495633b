// Example shows a list bound to live values with a settings sub-list.
//
// Prerequisites:
//
//	Install devbox: https://www.jetify.com/devbox
//	devbox shell                      # provides Go + OpenGL/X11 headers
//	go run ./example/                 # OpenGL window
//	go run ./example/ -backend term   # terminal
//
// Arrow keys or hjkl navigate, Enter activates, Escape closes the settings
// list, q quits. With the OpenGL backend, editing shaders/unit_square.vert
// or .frag under the working directory reloads the pipeline.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/go-theft-auto/listui"
	"github.com/go-theft-auto/listui/backend/opengl"
	"github.com/go-theft-auto/listui/backend/term"
	"github.com/go-theft-auto/listui/hotreload"
)

const windowTitle = "listui example"

type config struct {
	backend  string
	width    int
	height   int
	theme    string
	cooldown time.Duration
	verbose  bool
}

func init() {
	// GLFW must run on the main thread.
	runtime.LockOSThread()
}

func main() {
	var cfg config
	flag.StringVar(&cfg.backend, "backend", "gl", "renderer: gl or term")
	flag.IntVar(&cfg.width, "width", 640, "window width in pixels")
	flag.IntVar(&cfg.height, "height", 480, "window height in pixels")
	flag.StringVar(&cfg.theme, "theme", "", "TOML list style file")
	flag.DurationVar(&cfg.cooldown, "cooldown", listui.DefaultCooldown, "navigation cooldown")
	flag.BoolVar(&cfg.verbose, "verbose", false, "enable debug logging")
	flag.Parse()

	listui.SetVerbose(cfg.verbose)

	var err error
	switch cfg.backend {
	case "gl":
		err = runGL(cfg)
	case "term":
		err = runTerm(cfg)
	default:
		err = fmt.Errorf("unknown backend %q", cfg.backend)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// demo holds the handles the frame update writes to.
type demo struct {
	time listui.Handle
}

// build fills the store and creates the main and settings lists.
func build(app *listui.App, cfg config) (*demo, error) {
	style := listui.DefaultListStyle()
	if cfg.theme != "" {
		s, err := listui.LoadStyle(cfg.theme)
		if err != nil {
			return nil, err
		}
		style = s
	}

	store := app.Store()
	d := &demo{
		time: store.Insert("time", listui.Float64(0)),
	}
	hello := store.Insert("hello", listui.Text("world"))
	list := store.Insert("list", listui.Int32(3))
	enabled := store.Insert("enabled", listui.Bool(true))
	volume := store.Insert("volume", listui.Float32(0.5))

	mainID, err := app.NewList()
	if err != nil {
		return nil, err
	}
	settingsID, err := app.NewList()
	if err != nil {
		return nil, err
	}

	settings := app.List(settingsID)
	settings.Style = style
	settings.Anchor = listui.AnchorMiddle
	settings.AddCheckBox("enabled", enabled)
	settings.AddSlider("volume", volume, listui.SliderRange{Min: 0, Max: 1, Step: 0.1})
	settings.AddButton("reset time", listui.Handle{}, func(s *listui.ValueStore) listui.OperatorResult {
		if err := s.Replace(d.time, listui.Float64(0)); err != nil {
			return listui.Irrelevant
		}
		return listui.Done
	})

	root := app.List(mainID)
	root.Style = style
	root.Resume = listui.ResumeLastUsed
	root.AddLabeledValue("hello", hello)
	root.AddLabeledValue("list", list)
	root.AddLabeledValue("time", d.time)
	root.AddSubList("settings", settingsID)
	return d, nil
}

func (d *demo) update(s *listui.ValueStore) {
	if _, err := listui.Update(s, d.time, func(v float64) float64 { return v + 0.01 }); err != nil {
		slog.Warn("update time", "err", err)
	}
}

func runGL(cfg config) error {
	if err := glfw.Init(); err != nil {
		return fmt.Errorf("glfw init: %w", err)
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	window, err := glfw.CreateWindow(cfg.width, cfg.height, windowTitle, nil, nil)
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}
	window.MakeContextCurrent()
	glfw.SwapInterval(1) // vsync

	if err := gl.Init(); err != nil {
		return fmt.Errorf("gl init: %w", err)
	}

	fbw, fbh := window.GetFramebufferSize()
	renderer, err := opengl.NewRenderer(fbw, fbh)
	if err != nil {
		return fmt.Errorf("renderer: %w", err)
	}
	defer renderer.Delete()

	var queue listui.EventQueue
	opengl.NewGLFWInputAdapter(window, &queue)

	app := listui.New(renderer,
		listui.WithExtent(uint32(fbw), uint32(fbh)),
		listui.WithCooldown(cfg.cooldown),
		listui.WithTextMeasurer(opengl.BitmapMeasurer()),
	)
	d, err := build(app, cfg)
	if err != nil {
		return err
	}

	watcher := hotreload.New(nil)
	watched := make(map[listui.PipelineID]bool)
	for _, g := range app.Groups() {
		id := g.Pipeline
		if watched[id] {
			continue
		}
		watched[id] = true
		vert, frag := opengl.ShaderFiles(renderer.PipelinePath(id))
		for _, path := range []string{vert, frag} {
			if err := watcher.Add(path, func() error { return renderer.ReloadPipeline(id) }); err != nil {
				return err
			}
		}
	}

	last := time.Now()
	for !window.ShouldClose() && !app.Quit() {
		glfw.PollEvents()
		if err := watcher.Poll(); err != nil {
			slog.Warn("shader reload", "err", err)
		}

		now := time.Now()
		dt := float32(now.Sub(last).Seconds())
		last = now

		w, h := window.GetFramebufferSize()
		gl.Viewport(0, 0, int32(w), int32(h))
		gl.ClearColor(0, 0, 0, 1)
		gl.Clear(gl.COLOR_BUFFER_BIT)

		if err := app.Frame(queue.Drain(), dt, d.update); err != nil {
			return err
		}
		window.SwapBuffers()
	}
	return nil
}

func runTerm(cfg config) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	renderer := term.NewRenderer(screen)
	w, h := renderer.Extent()

	var queue listui.EventQueue
	go renderer.Listen(&queue)

	app := listui.New(renderer,
		listui.WithExtent(uint32(w), uint32(h)),
		listui.WithCooldown(cfg.cooldown),
		listui.WithTextMeasurer(renderer.Measurer()),
	)
	d, err := build(app, cfg)
	if err != nil {
		return err
	}

	ticker := time.NewTicker(time.Second / 30)
	defer ticker.Stop()
	last := time.Now()
	for now := range ticker.C {
		dt := float32(now.Sub(last).Seconds())
		last = now
		if err := app.Frame(queue.Drain(), dt, d.update); err != nil {
			return err
		}
		if app.Quit() {
			return nil
		}
	}
	return nil
}
