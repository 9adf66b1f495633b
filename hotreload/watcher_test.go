package hotreload

import (
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var quiet = slog.New(slog.NewTextHandler(io.Discard, nil))

func touch(t *testing.T, path string, mod time.Time) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
	require.NoError(t, os.Chtimes(path, mod, mod))
}

func TestPollRunsActionOnChange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "unit_square.frag")
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	touch(t, path, base)

	w := New(quiet)
	calls := 0
	require.NoError(t, w.Add(path, func() error { calls++; return nil }))

	require.NoError(t, w.Poll())
	assert.Equal(t, 0, calls, "unchanged file must not reload")

	touch(t, path, base.Add(time.Second))
	require.NoError(t, w.Poll())
	assert.Equal(t, 1, calls)

	require.NoError(t, w.Poll())
	assert.Equal(t, 1, calls, "new time is the baseline")
}

func TestPollMissingThenCreated(t *testing.T) {
	path := filepath.Join(t.TempDir(), "late.vert")

	w := New(quiet)
	calls := 0
	require.NoError(t, w.Add(path, func() error { calls++; return nil }))

	require.NoError(t, w.Poll())
	assert.Equal(t, 0, calls)

	touch(t, path, time.Now())
	require.NoError(t, w.Poll())
	assert.Equal(t, 1, calls)

	require.NoError(t, os.Remove(path))
	require.NoError(t, w.Poll())
	touch(t, path, time.Now())
	require.NoError(t, w.Poll())
	assert.Equal(t, 2, calls, "recreated file fires again")
}

func TestPollJoinsErrors(t *testing.T) {
	dir := t.TempDir()
	a, b := filepath.Join(dir, "a"), filepath.Join(dir, "b")

	w := New(quiet)
	errA := errors.New("compile a")
	ran := false
	require.NoError(t, w.Add(a, func() error { return errA }))
	require.NoError(t, w.Add(b, func() error { ran = true; return nil }))

	touch(t, a, time.Now())
	touch(t, b, time.Now())
	err := w.Poll()
	require.Error(t, err)
	assert.ErrorIs(t, err, errA)
	assert.True(t, ran, "later files still reload after an error")
}

func TestAddSamePathAppendsAction(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shared")
	touch(t, path, time.Unix(100, 0))

	w := New(quiet)
	var order []string
	require.NoError(t, w.Add(path, func() error { order = append(order, "first"); return nil }))
	require.NoError(t, w.Add(path, func() error { order = append(order, "second"); return nil }))
	assert.Equal(t, []string{path}, w.Paths())

	touch(t, path, time.Unix(200, 0))
	require.NoError(t, w.Poll())
	assert.Equal(t, []string{"first", "second"}, order)
}

func TestAddStatError(t *testing.T) {
	w := New(quiet)
	boom := errors.New("permission denied")
	w.stat = func(string) (fs.FileInfo, error) { return nil, boom }

	err := w.Add("x", func() error { return nil })
	assert.ErrorIs(t, err, boom)
	assert.Empty(t, w.Paths())
}
