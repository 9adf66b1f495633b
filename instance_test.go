package listui

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingWriter keeps the last data staged at each slot.
type recordingWriter struct {
	slots  map[int]InstanceData
	writes int
}

func newRecordingWriter() *recordingWriter {
	return &recordingWriter{slots: make(map[int]InstanceData)}
}

func (w *recordingWriter) WriteInstances(offset int, data []InstanceData) {
	for i, d := range data {
		w.slots[offset+i] = d
	}
	w.writes++
}

func pixelInstance(x, y int32, w, h uint32, extent Extent) ComponentTransform {
	return UnitSquareTransform(PixelRect{X: x, Y: y, W: w, H: h, Extent: extent})
}

func TestAddInstanceStagesAtNextSlot(t *testing.T) {
	w := newRecordingWriter()
	m := NewInstanceBufferManager(4, w)
	extent := Extent{W: 640, H: 480}

	require.NoError(t, m.AddInstance(pixelInstance(0, 0, 10, 10, extent), DefaultTransform(), ColorWhite))
	require.NoError(t, m.AddInstance(pixelInstance(20, 0, 10, 10, extent), DefaultTransform(), ColorMagenta))

	assert.Equal(t, 2, m.Len())
	assert.Equal(t, 2, w.writes)
	assert.Equal(t, ColorMagenta, w.slots[1].Color)
	assert.Equal(t, m.Instance(1).Transform.Mat4(), w.slots[1].Transform)
}

func TestAddInstanceCapacity(t *testing.T) {
	m := NewInstanceBufferManager(1, nil)
	require.NoError(t, m.AddInstance(DefaultTransform(), DefaultTransform(), ColorWhite))

	err := m.AddInstance(DefaultTransform(), DefaultTransform(), ColorWhite)
	assert.ErrorIs(t, err, ErrInstanceCapacity)
	assert.Equal(t, 1, m.Len())
}

func TestClearIsLocal(t *testing.T) {
	w := newRecordingWriter()
	m := NewInstanceBufferManager(4, w)
	require.NoError(t, m.AddInstance(DefaultTransform(), DefaultTransform(), ColorWhite))
	writes := w.writes

	m.Clear()
	assert.Equal(t, 0, m.Len())
	assert.Equal(t, writes, w.writes, "Clear must not touch the device buffer")

	require.NoError(t, m.AddInstance(DefaultTransform(), DefaultTransform(), ColorBlack))
	assert.Equal(t, ColorBlack, w.slots[0].Color, "slot 0 is reused after Clear")
}

func TestRecalcOnResize(t *testing.T) {
	w := newRecordingWriter()
	m := NewInstanceBufferManager(8, w)
	small := Extent{W: 640, H: 480}
	large := Extent{W: 800, H: 600}

	require.NoError(t, m.AddInstance(pixelInstance(160, 120, 100, 40, small), DefaultTransform(), ColorWhite))
	require.NoError(t, m.AddInstance(pixelInstance(320, 240, 50, 20, small), DefaultTransform(), ColorWhite))

	free := DefaultTransform()
	free.Location = mgl32.Vec3{0.3, -0.2, 0.1}
	free.Rotation = mgl32.QuatRotate(0.7, mgl32.Vec3{0, 0, 1})
	require.NoError(t, m.AddInstance(free, DefaultTransform(), ColorWhite))
	freeInst := m.Instance(2)
	freeBefore := freeInst.Data()

	m.MarkAllForUpdate()
	assert.False(t, m.Instance(2).NeedsUpdate, "free instances are not resize-dependent")

	n := m.RecalcScreenInstances(large)
	assert.Equal(t, 2, n)

	assert.Equal(t, PixelRect{X: 200, Y: 150, W: 100, H: 40, Extent: large}, *m.Instance(0).Transform.Pixel)
	assert.Equal(t, PixelRect{X: 400, Y: 300, W: 50, H: 20, Extent: large}, *m.Instance(1).Transform.Pixel)
	assert.InDelta(t, 100.0/800*2, float64(m.Instance(0).Transform.Scale.X()), 1e-6, "pixel width preserved")
	freeAfter := m.Instance(2)
	assert.Equal(t, freeBefore, freeAfter.Data())
	assert.Equal(t, freeBefore, w.slots[2])

	for _, in := range m.Instances() {
		assert.False(t, in.NeedsUpdate)
	}
	assert.Equal(t, 0, m.RecalcScreenInstances(large), "nothing left to recalc")
}

func TestTranslateRestagesFreeInstanceUnchanged(t *testing.T) {
	w := newRecordingWriter()
	m := NewInstanceBufferManager(2, w)
	free := DefaultTransform()
	free.Location = mgl32.Vec3{1, 2, 3}
	require.NoError(t, m.AddInstance(free, DefaultTransform(), ColorWhite))

	m.Translate(0, mgl32.Vec3{0.5, 0, 0})
	assert.True(t, m.Instance(0).NeedsUpdate)

	before := w.writes
	assert.Equal(t, 1, m.RecalcScreenInstances(Extent{W: 640, H: 480}))
	assert.Equal(t, before+1, w.writes)
	assert.Equal(t, mgl32.Vec3{1.5, 2, 3}, m.Instance(0).Transform.Location)
	assert.Equal(t, m.Instance(0).Transform.Mat4(), w.slots[0].Transform)
}

func TestRenderGroupAddNew(t *testing.T) {
	g := NewRenderGroup(3, "shaders/unit_square", 2, nil)
	require.NoError(t, g.AddNew(DefaultTransform(), 0, 0, ColorWhite))
	assert.Equal(t, PipelineID(3), g.Pipeline)
	assert.Equal(t, 1, g.Instances.Len())

	err := g.AddNew(DefaultTransform(), 4, 0, ColorWhite)
	assert.Error(t, err, "unknown cluster")
}
