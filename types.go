package listui

import (
	"fmt"
	"strconv"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// ListID addresses a ListInterface inside a ListArena.
type ListID int

// NoList is the zero reference used by items that do not open a list.
const NoList ListID = -1

// PipelineID is the stable handle a render group keeps to its GPU pipeline.
// The pipeline object behind it may be rebuilt (shader reload) at any time.
type PipelineID int

// Color is a straight-alpha RGBA color with float components in 0..1.
// Memory layout matches the vec4 color attribute of the instance buffer.
type Color struct {
	R, G, B, A float32
}

// NewColor creates a color from float components.
func NewColor(r, g, b, a float32) Color {
	return Color{R: r, G: g, B: b, A: a}
}

// Grey returns an opaque grey of the given intensity.
func Grey(v float32) Color {
	return Color{R: v, G: v, B: v, A: 1}
}

// Palette used by DefaultListStyle.
var (
	ColorBlack        = Grey(0)
	ColorGreyDarkest  = Grey(0.01)
	ColorGreyDarker   = Grey(0.02)
	ColorGreyDark     = Grey(0.03)
	ColorGreyMedium   = Grey(0.06)
	ColorGreyLight    = Grey(0.40)
	ColorGreyLighter  = Grey(0.60)
	ColorWhite        = Grey(1)
	ColorMagenta      = Color{R: 1, G: 0, B: 1, A: 1}
)

// RGBA8 returns the color quantised to 8 bits per channel.
func (c Color) RGBA8() (r, g, b, a uint8) {
	return unit8(c.R), unit8(c.G), unit8(c.B), unit8(c.A)
}

// Packed returns the color packed as 0xAABBGGRR for normalized
// GL_UNSIGNED_BYTE vertex attributes.
func (c Color) Packed() uint32 {
	r, g, b, a := c.RGBA8()
	return uint32(a)<<24 | uint32(b)<<16 | uint32(g)<<8 | uint32(r)
}

// Hex formats the color as #rrggbbaa.
func (c Color) Hex() string {
	r, g, b, a := c.RGBA8()
	return fmt.Sprintf("#%02x%02x%02x%02x", r, g, b, a)
}

// Blend interpolates between c and to in RGB space; t is clamped to 0..1.
func (c Color) Blend(to Color, t float32) Color {
	t = clampf(t, 0, 1)
	from := colorful.Color{R: float64(c.R), G: float64(c.G), B: float64(c.B)}
	mixed := from.BlendRgb(colorful.Color{R: float64(to.R), G: float64(to.G), B: float64(to.B)}, float64(t))
	return Color{
		R: float32(mixed.R),
		G: float32(mixed.G),
		B: float32(mixed.B),
		A: c.A + (to.A-c.A)*t,
	}
}

// ParseHexColor parses #rgb, #rrggbb or #rrggbbaa.
func ParseHexColor(s string) (Color, error) {
	s = strings.TrimSpace(s)
	alpha := float32(1)
	if len(s) == 9 {
		a, err := strconv.ParseUint(s[7:], 16, 8)
		if err != nil {
			return Color{}, fmt.Errorf("parse alpha of %q: %w", s, err)
		}
		alpha = float32(a) / 255
		s = s[:7]
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return Color{}, fmt.Errorf("parse color %q: %w", s, err)
	}
	return Color{R: float32(c.R), G: float32(c.G), B: float32(c.B), A: alpha}, nil
}

func unit8(v float32) uint8 {
	return uint8(clampf(v, 0, 1)*255 + 0.5)
}

// clampf clamps a float32 value to a range.
func clampf(v, minVal, maxVal float32) float32 {
	if v < minVal {
		return minVal
	}
	if v > maxVal {
		return maxVal
	}
	return v
}

// maxf returns the maximum of two float32 values.
func maxf(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}
