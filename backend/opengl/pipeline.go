package opengl

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/go-theft-auto/listui"
)

//go:embed shaders/unit_square.vert
var defaultVertexShader string

//go:embed shaders/unit_square.frag
var defaultFragmentShader string

// unitSquare is the quad every instance transforms: (0,0) to (1,-1).
var unitSquare = [...]float32{
	0, 0,
	1, 0,
	1, -1,
	0, -1,
}

var unitSquareIndices = [...]uint16{0, 1, 2, 0, 2, 3}

// pipeline is a linked program for one shader path.
type pipeline struct {
	path    string
	program uint32
}

// ShaderFiles returns the vertex and fragment shader files for path.
func ShaderFiles(path string) (vert, frag string) {
	return path + ".vert", path + ".frag"
}

// shaderSources reads the shader pair for path, falling back to the
// embedded unit-square shaders when either file does not exist.
func shaderSources(path string) (vert, frag string, err error) {
	if path == "" {
		return defaultVertexShader, defaultFragmentShader, nil
	}
	vp, fp := ShaderFiles(path)
	vb, verr := os.ReadFile(vp)
	fb, ferr := os.ReadFile(fp)
	if errors.Is(verr, fs.ErrNotExist) || errors.Is(ferr, fs.ErrNotExist) {
		return defaultVertexShader, defaultFragmentShader, nil
	}
	if verr != nil {
		return "", "", fmt.Errorf("read vertex shader: %w", verr)
	}
	if ferr != nil {
		return "", "", fmt.Errorf("read fragment shader: %w", ferr)
	}
	return string(vb), string(fb), nil
}

// LoadPipeline returns the pipeline for shaderPath, compiling it on first
// use. IDs are stable for the life of the renderer.
func (r *Renderer) LoadPipeline(shaderPath string) (listui.PipelineID, error) {
	for i, p := range r.pipelines {
		if p.path == shaderPath {
			return listui.PipelineID(i), nil
		}
	}
	vert, frag, err := shaderSources(shaderPath)
	if err != nil {
		return 0, err
	}
	program, err := createShaderProgram(vert+"\x00", frag+"\x00")
	if err != nil {
		return 0, fmt.Errorf("pipeline %q: %w", shaderPath, err)
	}
	r.pipelines = append(r.pipelines, pipeline{path: shaderPath, program: program})
	return listui.PipelineID(len(r.pipelines) - 1), nil
}

// ReloadPipeline recompiles pipeline id from its shader files. On failure
// the previous program stays in use.
func (r *Renderer) ReloadPipeline(id listui.PipelineID) error {
	if id < 0 || int(id) >= len(r.pipelines) {
		return fmt.Errorf("reload pipeline %d: unknown pipeline", id)
	}
	p := &r.pipelines[id]
	vert, frag, err := shaderSources(p.path)
	if err != nil {
		return err
	}
	program, err := createShaderProgram(vert+"\x00", frag+"\x00")
	if err != nil {
		return fmt.Errorf("reload pipeline %q: %w", p.path, err)
	}
	gl.DeleteProgram(p.program)
	p.program = program
	return nil
}

// PipelinePath returns the shader path pipeline id was loaded from.
func (r *Renderer) PipelinePath(id listui.PipelineID) string {
	if id < 0 || int(id) >= len(r.pipelines) {
		return ""
	}
	return r.pipelines[id].path
}

// instanceBuffer is a device buffer of InstanceData bound to its own
// vertex array together with the shared unit square.
type instanceBuffer struct {
	vao, vbo uint32
	capacity int
}

// NewInstanceWriter allocates a device instance buffer of capacity slots.
func (r *Renderer) NewInstanceWriter(capacity int) (listui.InstanceWriter, error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("instance buffer: invalid capacity %d", capacity)
	}
	b := &instanceBuffer{capacity: capacity}

	gl.GenVertexArrays(1, &b.vao)
	gl.BindVertexArray(b.vao)

	gl.BindBuffer(gl.ARRAY_BUFFER, r.quadVBO)
	gl.VertexAttribPointerWithOffset(0, 2, gl.FLOAT, false, 2*4, 0)
	gl.EnableVertexAttribArray(0)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, r.quadEBO)

	gl.GenBuffers(1, &b.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, b.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, capacity*listui.InstanceDataSize, nil, gl.DYNAMIC_DRAW)

	// Two mat4 take four vec4 attribute slots each, then the color.
	stride := int32(listui.InstanceDataSize)
	for col := uint32(0); col < 8; col++ {
		loc := 1 + col
		gl.VertexAttribPointerWithOffset(loc, 4, gl.FLOAT, false, stride, uintptr(col*16))
		gl.EnableVertexAttribArray(loc)
		gl.VertexAttribDivisor(loc, 1)
	}
	gl.VertexAttribPointerWithOffset(9, 4, gl.FLOAT, false, stride, 128)
	gl.EnableVertexAttribArray(9)
	gl.VertexAttribDivisor(9, 1)

	gl.BindVertexArray(0)

	r.buffers = append(r.buffers, b)
	return b, nil
}

// WriteInstances copies data into the device buffer at slot offset.
// Writes past capacity are dropped; the manager checks capacity first.
func (b *instanceBuffer) WriteInstances(offset int, data []listui.InstanceData) {
	if len(data) == 0 || offset < 0 || offset+len(data) > b.capacity {
		return
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, b.vbo)
	gl.BufferSubData(gl.ARRAY_BUFFER, offset*listui.InstanceDataSize, len(data)*listui.InstanceDataSize, gl.Ptr(data))
}

func (b *instanceBuffer) delete() {
	gl.DeleteBuffers(1, &b.vbo)
	gl.DeleteVertexArrays(1, &b.vao)
}

// createShaderProgram compiles and links a shader program. Sources must be
// NUL-terminated.
func createShaderProgram(vertexSource, fragmentSource string) (uint32, error) {
	vertexShader, err := compileShader(vertexSource, gl.VERTEX_SHADER)
	if err != nil {
		return 0, fmt.Errorf("vertex shader compilation failed: %w", err)
	}
	defer gl.DeleteShader(vertexShader)

	fragmentShader, err := compileShader(fragmentSource, gl.FRAGMENT_SHADER)
	if err != nil {
		return 0, fmt.Errorf("fragment shader compilation failed: %w", err)
	}
	defer gl.DeleteShader(fragmentShader)

	program := gl.CreateProgram()
	gl.AttachShader(program, vertexShader)
	gl.AttachShader(program, fragmentShader)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
		log := make([]byte, logLength+1)
		gl.GetProgramInfoLog(program, logLength, nil, &log[0])
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("shader program linking failed: %s", string(log))
	}
	return program, nil
}

func compileShader(source string, kind uint32) (uint32, error) {
	shader := gl.CreateShader(kind)
	csource, free := gl.Strs(source)
	gl.ShaderSource(shader, 1, csource, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		log := make([]byte, logLength+1)
		gl.GetShaderInfoLog(shader, logLength, nil, &log[0])
		gl.DeleteShader(shader)
		return 0, errors.New(string(log))
	}
	return shader, nil
}
