package listui

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Extent is a viewport or texture size in pixels.
type Extent struct {
	W, H uint32
}

// PixelRect is a rectangle in window pixels (top-left origin) together with
// the extent it was measured against.
type PixelRect struct {
	X, Y   int32
	W, H   uint32
	Extent Extent
}

// ComponentTransform places an instance either from a PixelRect (UI
// geometry that must follow the viewport) or freely in 3D when Pixel is nil.
type ComponentTransform struct {
	Pixel    *PixelRect
	Location mgl32.Vec3
	Rotation mgl32.Quat
	Scale    mgl32.Vec3
}

// DefaultTransform returns the identity placement.
func DefaultTransform() ComponentTransform {
	return ComponentTransform{
		Rotation: mgl32.QuatIdent(),
		Scale:    mgl32.Vec3{1, 1, 1},
	}
}

// IsPixel reports whether the transform was derived from a pixel rectangle.
func (t ComponentTransform) IsPixel() bool { return t.Pixel != nil }

// Mat4 returns translation * rotation * scale.
func (t ComponentTransform) Mat4() mgl32.Mat4 {
	tr := mgl32.Translate3D(t.Location.X(), t.Location.Y(), t.Location.Z())
	sc := mgl32.Scale3D(t.Scale.X(), t.Scale.Y(), t.Scale.Z())
	return tr.Mul4(t.Rotation.Normalize().Mat4()).Mul4(sc)
}

// UnitSquareTransform maps the unit square (0,0)-(1,-1) onto the given
// window rectangle in normalized device coordinates.
func UnitSquareTransform(r PixelRect) ComponentTransform {
	ex, ey := float32(r.Extent.W), float32(r.Extent.H)
	pr := r
	return ComponentTransform{
		Pixel: &pr,
		Location: mgl32.Vec3{
			float32(r.X)/ex*2 - 1,
			1 - float32(r.Y)/ey*2,
			0,
		},
		Rotation: mgl32.QuatIdent(),
		Scale:    mgl32.Vec3{float32(r.W) / ex * 2, float32(r.H) / ey * 2, 1},
	}
}

// TexTransform maps unit texture coordinates onto a sub-rectangle of a
// texture of size r.Extent.
func TexTransform(r PixelRect) ComponentTransform {
	ex, ey := float32(r.Extent.W), float32(r.Extent.H)
	pr := r
	return ComponentTransform{
		Pixel:    &pr,
		Location: mgl32.Vec3{float32(r.X) / ex, float32(r.Y) / ey, 0},
		Rotation: mgl32.QuatIdent(),
		Scale:    mgl32.Vec3{float32(r.W) / ex, float32(r.H) / ey, 1},
	}
}

// PixelRectFromLocation inverts UnitSquareTransform for a new extent: the
// NDC location keeps its relative screen position while the pixel size is
// preserved.
func PixelRectFromLocation(loc mgl32.Vec3, w, h uint32, extent Extent) PixelRect {
	return PixelRect{
		X:      int32(math.Round((float64(loc.X())*0.5 + 0.5) * float64(extent.W))),
		Y:      int32(math.Round((1 - float64(loc.Y())) * 0.5 * float64(extent.H))),
		W:      w,
		H:      h,
		Extent: extent,
	}
}

// TextureSheetCluster describes a grid of equally sized sub-images inside a
// texture sheet.
type TextureSheetCluster struct {
	Label       string
	Offset      [2]uint32
	ClusterSize [2]uint32
	SubSize     [2]uint32
	Spacing     [2]uint32
}

// TextureSheetDefinition names a sheet image and its clusters.
type TextureSheetDefinition struct {
	Path     string
	Clusters []TextureSheetCluster
}

// NoTextureSheet is the definition used by untextured render groups: one
// cluster with a single 1x1 sub-image.
func NoTextureSheet() TextureSheetDefinition {
	return TextureSheetDefinition{
		Clusters: []TextureSheetCluster{{
			ClusterSize: [2]uint32{1, 1},
			SubSize:     [2]uint32{1, 1},
		}},
	}
}

// TextureSheet is a loaded sheet; only its dimensions matter to the core.
type TextureSheet struct {
	Def        TextureSheetDefinition
	Dimensions Extent
}

// ClusterSubTransform returns the texture transform selecting sub-image
// sub of cluster. Sub-images are numbered row-major.
func (s *TextureSheet) ClusterSubTransform(cluster, sub int) (ComponentTransform, error) {
	if cluster < 0 || cluster >= len(s.Def.Clusters) {
		return ComponentTransform{}, fmt.Errorf("texture sheet %q: cluster %d out of range", s.Def.Path, cluster)
	}
	c := s.Def.Clusters[cluster]
	stepX := c.SubSize[0] + c.Spacing[0]
	if stepX == 0 {
		return ComponentTransform{}, fmt.Errorf("texture sheet %q: cluster %d has zero step", s.Def.Path, cluster)
	}
	perRow := (c.ClusterSize[0] + stepX - 1) / stepX
	if perRow == 0 {
		perRow = 1
	}
	row := uint32(sub) / perRow
	col := uint32(sub) % perRow
	return TexTransform(PixelRect{
		X:      int32(c.Offset[0] + col*stepX),
		Y:      int32(c.Offset[1] + row*(c.SubSize[1]+c.Spacing[1])),
		W:      c.SubSize[0],
		H:      c.SubSize[1],
		Extent: s.Dimensions,
	}), nil
}
