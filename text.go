package listui

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
	"golang.org/x/text/unicode/norm"
)

// TextMeasurer is the text shaping collaborator. It returns the advance
// width in pixels of text set at the given font size.
type TextMeasurer interface {
	MeasureText(text string, size float32) float32
}

// MeasureFunc adapts a function to TextMeasurer.
type MeasureFunc func(text string, size float32) float32

// MeasureText calls f.
func (f MeasureFunc) MeasureText(text string, size float32) float32 { return f(text, size) }

// MonospaceMeasurer measures text in terminal-style cells: each cell is
// Advance * size pixels wide, and wide runes (CJK, emoji) take two cells.
type MonospaceMeasurer struct {
	Advance float32
}

// DefaultMeasurer is used when no measurer is configured.
var DefaultMeasurer = MonospaceMeasurer{Advance: 0.6}

// MeasureText implements TextMeasurer.
func (m MonospaceMeasurer) MeasureText(text string, size float32) float32 {
	cells := runewidth.StringWidth(norm.NFC.String(text))
	return float32(cells) * m.Advance * size
}

// TextRect is the box a label is shaped into: left, top, width, height.
type TextRect struct {
	Left, Top     float32
	Width, Height float32
}

// TextLabel is one positioned text primitive handed to the renderer.
type TextLabel struct {
	Rect  TextRect
	Text  string
	Size  float32 // font size in pixels
	Scale float32
	Color Color
	Width float32 // measured advance width
}

// fontSizeRatio is the font size relative to the label box height.
const fontSizeRatio = 0.8

// TextCollection accumulates the labels of one layout pass.
type TextCollection struct {
	labels   []TextLabel
	measurer TextMeasurer
}

// NewTextCollection creates a collection measuring with m (DefaultMeasurer
// when nil).
func NewTextCollection(m TextMeasurer) *TextCollection {
	if m == nil {
		m = DefaultMeasurer
	}
	return &TextCollection{measurer: m}
}

// Clear drops all labels.
func (tc *TextCollection) Clear() {
	tc.labels = tc.labels[:0]
}

// NewText formats, measures and appends a label and returns its index.
// Numeric strings are rendered with two decimals.
func (tc *TextCollection) NewText(rect TextRect, text string, scale float32, color Color) int {
	text = FormatDisplay(text)
	size := rect.Height * fontSizeRatio
	tc.labels = append(tc.labels, TextLabel{
		Rect:  rect,
		Text:  text,
		Size:  size,
		Scale: scale,
		Color: color,
		Width: tc.measurer.MeasureText(text, size) * scale,
	})
	return len(tc.labels) - 1
}

// Label returns label i.
func (tc *TextCollection) Label(i int) TextLabel { return tc.labels[i] }

// Labels returns all labels in emission order. The slice is reused by the
// next pass.
func (tc *TextCollection) Labels() []TextLabel { return tc.labels }

// Len returns the number of labels.
func (tc *TextCollection) Len() int { return len(tc.labels) }

// Measurer returns the measurer in use.
func (tc *TextCollection) Measurer() TextMeasurer { return tc.measurer }

// FormatDisplay renders text that parses as a number with two decimals and
// returns anything else unchanged.
func FormatDisplay(text string) string {
	s := strings.TrimSpace(text)
	if s == "" || s != text {
		return text
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return text
	}
	return fmt.Sprintf("%.2f", f)
}

// FormatValue returns the display text of a stored value: numbers with two
// decimals, everything else in its natural form.
func FormatValue(v Value) string {
	if f, ok := v.Float(); ok {
		return fmt.Sprintf("%.2f", f)
	}
	return FormatDisplay(v.String())
}
