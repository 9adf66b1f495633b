// Package term draws listui frames into a terminal through tcell. Pixel
// geometry is mapped onto character cells of a fixed pixel size.
package term

import (
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/go-theft-auto/listui"
)

// Default cell geometry in pixels. With 40 pixel rows a list row spans two
// terminal lines.
const (
	DefaultCellWidth  = 10
	DefaultCellHeight = 20
)

// Renderer implements listui.Renderer on a tcell screen. Instances are read
// from the render groups' local mirrors, so it needs no device buffers.
type Renderer struct {
	screen       tcell.Screen
	cellW, cellH int
	width        int
	height       int
	pipelines    []string
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithCellSize sets the pixel size of one terminal cell.
func WithCellSize(w, h int) Option {
	return func(r *Renderer) {
		if w > 0 && h > 0 {
			r.cellW, r.cellH = w, h
		}
	}
}

// NewRenderer wraps an initialized screen.
func NewRenderer(screen tcell.Screen, opts ...Option) *Renderer {
	r := &Renderer{
		screen: screen,
		cellW:  DefaultCellWidth,
		cellH:  DefaultCellHeight,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.width, r.height = r.Extent()
	return r
}

// Extent returns the screen size in pixels.
func (r *Renderer) Extent() (width, height int) {
	cols, rows := r.screen.Size()
	return cols * r.cellW, rows * r.cellH
}

// Measurer returns text metrics in whole cells.
func (r *Renderer) Measurer() listui.TextMeasurer {
	cellW := float32(r.cellW)
	return listui.MeasureFunc(func(text string, _ float32) float32 {
		return float32(runewidth.StringWidth(text)) * cellW
	})
}

// NewInstanceWriter returns a nil writer: the terminal has no device
// buffer to stage into.
func (r *Renderer) NewInstanceWriter(int) (listui.InstanceWriter, error) {
	return nil, nil
}

// LoadPipeline assigns a stable ID per shader path. Shaders are ignored.
func (r *Renderer) LoadPipeline(shaderPath string) (listui.PipelineID, error) {
	for i, p := range r.pipelines {
		if p == shaderPath {
			return listui.PipelineID(i), nil
		}
	}
	r.pipelines = append(r.pipelines, shaderPath)
	return listui.PipelineID(len(r.pipelines) - 1), nil
}

// Resize records the new pixel extent.
func (r *Renderer) Resize(width, height int) {
	r.width = width
	r.height = height
}

// Render fills instance rectangles with their color, draws text labels over
// them and shows the screen.
func (r *Renderer) Render(groups []*listui.RenderGroup, texts []listui.TextLabel) error {
	r.screen.Clear()
	extent := listui.Extent{W: uint32(r.width), H: uint32(r.height)}
	if extent.W == 0 || extent.H == 0 {
		r.screen.Show()
		return nil
	}
	for _, g := range groups {
		for _, in := range g.Instances.Instances() {
			r.fill(pixelRect(in.Transform, extent), in.Color)
		}
	}
	for i := range texts {
		r.drawLabel(&texts[i])
	}
	r.screen.Show()
	return nil
}

// pixelRect returns the window rectangle covered by t.
func pixelRect(t listui.ComponentTransform, extent listui.Extent) listui.PixelRect {
	if t.Pixel != nil && t.Pixel.Extent == extent {
		return *t.Pixel
	}
	w := uint32(math.Max(0, math.Round(float64(t.Scale.X())*0.5*float64(extent.W))))
	h := uint32(math.Max(0, math.Round(float64(t.Scale.Y())*0.5*float64(extent.H))))
	return listui.PixelRectFromLocation(t.Location, w, h, extent)
}

func (r *Renderer) fill(rect listui.PixelRect, c listui.Color) {
	if c.A == 0 {
		return
	}
	x0 := r.col(float64(rect.X))
	x1 := r.col(float64(rect.X) + float64(rect.W))
	y0 := r.row(float64(rect.Y))
	y1 := r.row(float64(rect.Y) + float64(rect.H))
	cols, rows := r.screen.Size()
	x0, x1 = max(x0, 0), min(x1, cols)
	y0, y1 = max(y0, 0), min(y1, rows)

	st := tcell.StyleDefault.Background(tcellColor(c))
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			r.screen.SetContent(x, y, ' ', nil, st)
		}
	}
}

// drawLabel writes text on the line through the vertical middle of the
// label box, keeping the background already drawn there.
func (r *Renderer) drawLabel(l *listui.TextLabel) {
	cols, rows := r.screen.Size()
	x := int(math.Floor(float64(l.Rect.Left) / float64(r.cellW)))
	y := int(math.Floor(float64(l.Rect.Top+l.Rect.Height/2) / float64(r.cellH)))
	if y < 0 || y >= rows {
		return
	}
	fg := tcellColor(l.Color)
	for _, ch := range l.Text {
		w := runewidth.RuneWidth(ch)
		if w == 0 {
			continue
		}
		if x >= cols {
			return
		}
		if x >= 0 {
			_, _, st, _ := r.screen.GetContent(x, y)
			r.screen.SetContent(x, y, ch, nil, st.Foreground(fg))
		}
		x += w
	}
}

func (r *Renderer) col(px float64) int { return int(math.Round(px / float64(r.cellW))) }
func (r *Renderer) row(px float64) int { return int(math.Round(px / float64(r.cellH))) }

func tcellColor(c listui.Color) tcell.Color {
	red, green, blue, _ := c.RGBA8()
	return tcell.NewRGBColor(int32(red), int32(green), int32(blue))
}

var _ listui.Renderer = (*Renderer)(nil)
