package listui_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-theft-auto/listui"
)

func TestStoreInsertLoad(t *testing.T) {
	s := listui.NewValueStore()
	h := s.Insert("hello", listui.Text("world"))

	v, err := s.Load(h)
	require.NoError(t, err)
	assert.Equal(t, "world", v.String())
	assert.Equal(t, "hello", h.Key())
	assert.True(t, s.Has("hello"))
	assert.Equal(t, 1, s.Len())
}

func TestStoreReplaceVisibleThroughEveryHandle(t *testing.T) {
	s := listui.NewValueStore()
	a := s.Insert("time", listui.Float64(0))
	b := s.Get("time")

	require.NoError(t, s.Replace(a, listui.Float64(1.25)))

	got, err := listui.LoadAs[float64](s, b)
	require.NoError(t, err)
	assert.Equal(t, 1.25, got)
}

func TestStoreReplaceMayChangeKind(t *testing.T) {
	s := listui.NewValueStore()
	h := s.Insert("v", listui.Int32(1))
	require.NoError(t, s.Replace(h, listui.Text("one")))
	assert.Equal(t, listui.KindString, s.MustLoad(h).Kind())
}

func TestStoreMissingKey(t *testing.T) {
	s := listui.NewValueStore()
	h := s.Get("nope")

	_, err := s.Load(h)
	assert.ErrorIs(t, err, listui.ErrKeyNotFound)

	err = s.Replace(h, listui.Bool(true))
	assert.ErrorIs(t, err, listui.ErrKeyNotFound)
	assert.False(t, s.Has("nope"), "Replace must not insert")

	_, err = listui.Update(s, h, func(b bool) bool { return !b })
	assert.ErrorIs(t, err, listui.ErrKeyNotFound)

	assert.Panics(t, func() { s.MustLoad(h) })
}

func TestLoadAsTypeMismatch(t *testing.T) {
	s := listui.NewValueStore()
	h := s.Insert("n", listui.Int32(4))

	_, err := listui.LoadAs[float64](s, h)
	assert.ErrorIs(t, err, listui.ErrTypeMismatch)
}

func TestUpdate(t *testing.T) {
	s := listui.NewValueStore()
	h := s.Insert("time", listui.Float64(0))

	ok, err := listui.Update(s, h, func(v float64) float64 { return v + 0.5 })
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, s.MustLoad(h).Equal(listui.Float64(0.5)))
}

func TestUpdateMismatchIsSkipped(t *testing.T) {
	s := listui.NewValueStore()
	h := s.Insert("time", listui.Float64(3))

	ok, err := listui.Update(s, h, func(v float32) float32 { return v + 1 })
	require.NoError(t, err)
	assert.False(t, ok)
	assert.True(t, s.MustLoad(h).Equal(listui.Float64(3)), "value must be unchanged")
}

func TestStoreKeysSorted(t *testing.T) {
	s := listui.NewValueStore()
	for _, k := range []string{"time", "hello", "list"} {
		s.Insert(k, listui.Bool(false))
	}
	assert.Equal(t, []string{"hello", "list", "time"}, s.Keys())
}

func TestHandleZero(t *testing.T) {
	var h listui.Handle
	assert.True(t, h.IsZero())
	assert.False(t, listui.NewValueStore().Insert("k", listui.Bool(true)).IsZero())
}
