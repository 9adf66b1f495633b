package listui

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// ErrInstanceCapacity is returned when a render group's GPU buffer is full.
var ErrInstanceCapacity = errors.New("listui: instance buffer full")

// InstanceData is the per-instance GPU record: two column-major 4x4
// matrices followed by a vec4 color (36 float32, 144 bytes).
type InstanceData struct {
	Transform    mgl32.Mat4
	TexTransform mgl32.Mat4
	Color        Color
}

// InstanceDataSize is the byte stride of InstanceData.
const InstanceDataSize = (16 + 16 + 4) * 4

// InstanceWriter is the GPU staging collaborator. WriteInstances copies
// data into the device buffer starting at instance slot offset.
type InstanceWriter interface {
	WriteInstances(offset int, data []InstanceData)
}

// Instance is the local mirror of one staged instance.
type Instance struct {
	NeedsUpdate  bool
	Transform    ComponentTransform
	TexTransform ComponentTransform
	Color        Color
}

// Data returns the GPU record for the instance.
func (in *Instance) Data() InstanceData {
	return InstanceData{
		Transform:    in.Transform.Mat4(),
		TexTransform: in.TexTransform.Mat4(),
		Color:        in.Color,
	}
}

// InstanceBufferManager mirrors a render group's GPU instance buffer. The
// local list and the device buffer share order and length; stale device
// slots past Len are never drawn.
type InstanceBufferManager struct {
	data     []Instance
	capacity int
	writer   InstanceWriter
	scratch  [1]InstanceData
}

// NewInstanceBufferManager creates a manager for a device buffer holding
// capacity instances.
func NewInstanceBufferManager(capacity int, w InstanceWriter) *InstanceBufferManager {
	return &InstanceBufferManager{
		data:     make([]Instance, 0, capacity),
		capacity: capacity,
		writer:   w,
	}
}

// Clear drops all local instances. The device buffer is left as is.
func (m *InstanceBufferManager) Clear() {
	m.data = m.data[:0]
}

// AddInstance appends an instance and stages it at the next free slot.
func (m *InstanceBufferManager) AddInstance(transform, texTransform ComponentTransform, color Color) error {
	if len(m.data) >= m.capacity {
		return fmt.Errorf("add instance %d: %w (capacity %d)", len(m.data), ErrInstanceCapacity, m.capacity)
	}
	m.data = append(m.data, Instance{
		Transform:    transform,
		TexTransform: texTransform,
		Color:        color,
	})
	i := len(m.data) - 1
	m.stage(i)
	return nil
}

// Translate moves instance i and marks it for re-staging.
func (m *InstanceBufferManager) Translate(i int, by mgl32.Vec3) {
	in := &m.data[i]
	in.Transform.Location = in.Transform.Location.Add(by)
	in.NeedsUpdate = true
}

// MarkAllForUpdate flags every pixel-anchored instance, typically after a
// viewport resize.
func (m *InstanceBufferManager) MarkAllForUpdate() {
	for i := range m.data {
		if m.data[i].Transform.IsPixel() {
			m.data[i].NeedsUpdate = true
		}
	}
}

// RecalcScreenInstances re-stages every dirty instance. Pixel-anchored
// instances are re-derived against extent: their NDC location keeps its
// relative position and their pixel size is preserved. Freely placed
// instances are re-staged with their own transform unchanged.
// It returns the number of instances written.
func (m *InstanceBufferManager) RecalcScreenInstances(extent Extent) int {
	written := 0
	for i := range m.data {
		in := &m.data[i]
		if !in.NeedsUpdate {
			continue
		}
		if pr := in.Transform.Pixel; pr != nil && extent.W > 0 && extent.H > 0 {
			in.Transform = UnitSquareTransform(PixelRectFromLocation(in.Transform.Location, pr.W, pr.H, extent))
		}
		in.NeedsUpdate = false
		m.stage(i)
		written++
	}
	return written
}

// Len returns the number of live instances; it is the draw call's instance
// count.
func (m *InstanceBufferManager) Len() int { return len(m.data) }

// Cap returns the device buffer capacity in instances.
func (m *InstanceBufferManager) Cap() int { return m.capacity }

// Writer returns the device staging collaborator, which may be nil.
func (m *InstanceBufferManager) Writer() InstanceWriter { return m.writer }

// Instance returns a copy of instance i.
func (m *InstanceBufferManager) Instance(i int) Instance { return m.data[i] }

// Instances returns the live instances. The slice is reused by Clear.
func (m *InstanceBufferManager) Instances() []Instance { return m.data }

func (m *InstanceBufferManager) stage(i int) {
	if m.writer == nil {
		return
	}
	m.scratch[0] = m.data[i].Data()
	m.writer.WriteInstances(i, m.scratch[:])
}
