// Package opengl provides an OpenGL 4.1 backend for the listui package.
package opengl

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/go-theft-auto/listui"
)

// Renderer draws listui render groups with instanced unit squares and text
// labels with a bitmap font. All methods must be called on the thread that
// owns the GL context.
type Renderer struct {
	quadVBO, quadEBO uint32

	pipelines []pipeline
	buffers   []*instanceBuffer

	textShader   uint32
	textVAO      uint32
	textVBO      uint32
	textEBO      uint32
	fontTex      uint32
	projLoc      int32
	texLoc       int32
	textVertices []textVertex
	textIndices  []uint16

	width  int
	height int
}

// textVertex is the text program's vertex: position and atlas coordinate
// in float32, color packed as normalized RGBA8.
type textVertex struct {
	X, Y  float32
	U, V  float32
	Color uint32
}

const textVertexShaderSource = `
#version 410 core
layout (location = 0) in vec2 aPos;
layout (location = 1) in vec2 aTexCoord;
layout (location = 2) in vec4 aColor;

out vec2 TexCoord;
out vec4 Color;

uniform mat4 projection;

void main() {
    gl_Position = projection * vec4(aPos, 0.0, 1.0);
    TexCoord = aTexCoord;
    Color = aColor;
}
` + "\x00"

// The atlas is alpha-only: R is coverage, the vertex color supplies RGB.
const textFragmentShaderSource = `
#version 410 core
in vec2 TexCoord;
in vec4 Color;

out vec4 FragColor;

uniform sampler2D fontTexture;

void main() {
    FragColor = vec4(Color.rgb, Color.a * texture(fontTexture, TexCoord).r);
}
` + "\x00"

// NewRenderer creates a renderer for a viewport of the given size. The GL
// context must be current and gl.Init must have succeeded.
func NewRenderer(width, height int) (*Renderer, error) {
	r := &Renderer{width: width, height: height}

	gl.GenBuffers(1, &r.quadVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.quadVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(unitSquare)*4, gl.Ptr(&unitSquare[0]), gl.STATIC_DRAW)
	gl.GenBuffers(1, &r.quadEBO)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, r.quadEBO)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(unitSquareIndices)*2, gl.Ptr(&unitSquareIndices[0]), gl.STATIC_DRAW)

	var err error
	r.textShader, err = createShaderProgram(textVertexShaderSource, textFragmentShaderSource)
	if err != nil {
		return nil, fmt.Errorf("failed to create text shader: %w", err)
	}
	r.projLoc = gl.GetUniformLocation(r.textShader, gl.Str("projection\x00"))
	r.texLoc = gl.GetUniformLocation(r.textShader, gl.Str("fontTexture\x00"))

	gl.GenVertexArrays(1, &r.textVAO)
	gl.BindVertexArray(r.textVAO)
	gl.GenBuffers(1, &r.textVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.textVBO)
	gl.GenBuffers(1, &r.textEBO)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, r.textEBO)

	stride := int32(unsafe.Sizeof(textVertex{}))
	gl.VertexAttribPointerWithOffset(0, 2, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(1, 2, gl.FLOAT, false, stride, unsafe.Offsetof(textVertex{}.U))
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointerWithOffset(2, 4, gl.UNSIGNED_BYTE, true, stride, unsafe.Offsetof(textVertex{}.Color))
	gl.EnableVertexAttribArray(2)
	gl.BindVertexArray(0)

	r.fontTex = createFontTexture()
	return r, nil
}

// Resize updates the viewport size used for text projection.
func (r *Renderer) Resize(width, height int) {
	r.width = width
	r.height = height
}

// Render draws every group's live instances in group order, then all text
// labels on top.
func (r *Renderer) Render(groups []*listui.RenderGroup, texts []listui.TextLabel) error {
	if r.width <= 0 || r.height <= 0 {
		return nil
	}

	var lastProgram int32
	gl.GetIntegerv(gl.CURRENT_PROGRAM, &lastProgram)
	blendEnabled := gl.IsEnabled(gl.BLEND)
	depthEnabled := gl.IsEnabled(gl.DEPTH_TEST)
	cullEnabled := gl.IsEnabled(gl.CULL_FACE)

	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.Disable(gl.CULL_FACE)
	gl.Disable(gl.DEPTH_TEST)

	var err error
	for i, g := range groups {
		n := g.Instances.Len()
		if n == 0 {
			continue
		}
		buf, ok := g.Instances.Writer().(*instanceBuffer)
		if !ok {
			err = fmt.Errorf("render group %d: instance buffer not owned by this renderer", i)
			break
		}
		if g.Pipeline < 0 || int(g.Pipeline) >= len(r.pipelines) {
			err = fmt.Errorf("render group %d: unknown pipeline %d", i, g.Pipeline)
			break
		}
		gl.UseProgram(r.pipelines[g.Pipeline].program)
		gl.BindVertexArray(buf.vao)
		gl.DrawElementsInstanced(gl.TRIANGLES, int32(len(unitSquareIndices)), gl.UNSIGNED_SHORT, nil, int32(n))
	}
	if err == nil {
		r.drawText(texts)
	}

	gl.BindVertexArray(0)
	gl.UseProgram(uint32(lastProgram))
	setEnabled(gl.BLEND, blendEnabled)
	setEnabled(gl.DEPTH_TEST, depthEnabled)
	setEnabled(gl.CULL_FACE, cullEnabled)
	return err
}

// drawText batches every label into one indexed draw.
func (r *Renderer) drawText(texts []listui.TextLabel) {
	r.textVertices = r.textVertices[:0]
	r.textIndices = r.textIndices[:0]
	for i := range texts {
		r.appendLabel(&texts[i])
	}
	if len(r.textIndices) == 0 {
		return
	}

	gl.UseProgram(r.textShader)
	proj := mgl32.Ortho(0, float32(r.width), float32(r.height), 0, -1, 1)
	gl.UniformMatrix4fv(r.projLoc, 1, false, &proj[0])
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, r.fontTex)
	gl.Uniform1i(r.texLoc, 0)

	gl.BindVertexArray(r.textVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.textVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(r.textVertices)*int(unsafe.Sizeof(textVertex{})),
		gl.Ptr(r.textVertices), gl.STREAM_DRAW)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, r.textEBO)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(r.textIndices)*2,
		gl.Ptr(r.textIndices), gl.STREAM_DRAW)
	gl.DrawElementsWithOffset(gl.TRIANGLES, int32(len(r.textIndices)), gl.UNSIGNED_SHORT, 0)
	gl.BindTexture(gl.TEXTURE_2D, 0)
}

// appendLabel emits one quad per glyph, vertically centered in the label
// box. Batches stop growing at the 16-bit index limit.
func (r *Renderer) appendLabel(l *listui.TextLabel) {
	cell := l.Size * glyphAdvance * l.Scale
	if cell <= 0 {
		return
	}
	x := l.Rect.Left
	y := l.Rect.Top + (l.Rect.Height-cell)/2
	color := l.Color.Packed()
	for _, ch := range l.Text {
		if len(r.textVertices)+4 > 0xFFFF {
			return
		}
		if ch != ' ' {
			u0, v0, u1, v1 := glyphUV(ch)
			base := uint16(len(r.textVertices))
			r.textVertices = append(r.textVertices,
				textVertex{X: x, Y: y, U: u0, V: v0, Color: color},
				textVertex{X: x + cell, Y: y, U: u1, V: v0, Color: color},
				textVertex{X: x + cell, Y: y + cell, U: u1, V: v1, Color: color},
				textVertex{X: x, Y: y + cell, U: u0, V: v1, Color: color},
			)
			r.textIndices = append(r.textIndices, base, base+1, base+2, base, base+2, base+3)
		}
		x += cell
	}
}

// Delete releases OpenGL resources.
func (r *Renderer) Delete() {
	for _, b := range r.buffers {
		b.delete()
	}
	r.buffers = nil
	for _, p := range r.pipelines {
		gl.DeleteProgram(p.program)
	}
	r.pipelines = nil
	if r.fontTex != 0 {
		gl.DeleteTextures(1, &r.fontTex)
	}
	if r.textEBO != 0 {
		gl.DeleteBuffers(1, &r.textEBO)
	}
	if r.textVBO != 0 {
		gl.DeleteBuffers(1, &r.textVBO)
	}
	if r.textVAO != 0 {
		gl.DeleteVertexArrays(1, &r.textVAO)
	}
	if r.textShader != 0 {
		gl.DeleteProgram(r.textShader)
	}
	if r.quadEBO != 0 {
		gl.DeleteBuffers(1, &r.quadEBO)
	}
	if r.quadVBO != 0 {
		gl.DeleteBuffers(1, &r.quadVBO)
	}
}

func setEnabled(capability uint32, on bool) {
	if on {
		gl.Enable(capability)
	} else {
		gl.Disable(capability)
	}
}

var _ listui.Renderer = (*Renderer)(nil)
