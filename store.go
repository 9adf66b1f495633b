package listui

import (
	"errors"
	"fmt"
	"sort"
)

var (
	// ErrKeyNotFound is returned when a handle refers to a key that was
	// never inserted. It indicates a setup bug, not transient state.
	ErrKeyNotFound = errors.New("listui: key not found")

	// ErrTypeMismatch is returned by typed access when the stored value has
	// a different concrete type. Callers updating values treat it as "skip".
	ErrTypeMismatch = errors.New("listui: type mismatch")
)

// Handle references a store entry by key. It does not own the value and
// carries no type; many handles may share one key.
type Handle struct {
	key string
}

// Key returns the store key the handle refers to.
func (h Handle) Key() string { return h.key }

// IsZero reports whether the handle is unbound.
func (h Handle) IsZero() bool { return h.key == "" }

func (h Handle) String() string { return "Handle(" + h.key + ")" }

// ValueStore owns every value displayed by list widgets.
//
// It is not safe for concurrent use; the App serialises access behind its
// frame lock.
type ValueStore struct {
	values map[string]Value
}

// NewValueStore creates an empty store.
func NewValueStore() *ValueStore {
	return &ValueStore{values: make(map[string]Value)}
}

// Insert stores v under key, overwriting any previous value, and returns a
// handle to it.
func (s *ValueStore) Insert(key string, v Value) Handle {
	s.values[key] = v
	return Handle{key: key}
}

// Get returns a handle for key without checking that it exists.
func (s *ValueStore) Get(key string) Handle {
	return Handle{key: key}
}

// Load returns the current value behind h.
func (s *ValueStore) Load(h Handle) (Value, error) {
	v, ok := s.values[h.key]
	if !ok {
		return Value{}, fmt.Errorf("load %q: %w", h.key, ErrKeyNotFound)
	}
	return v, nil
}

// MustLoad is like Load but panics when the key is missing.
func (s *ValueStore) MustLoad(h Handle) Value {
	v, err := s.Load(h)
	if err != nil {
		panic(err)
	}
	return v
}

// Replace swaps the value stored at h's key. Other handles to the same key
// observe the new value.
func (s *ValueStore) Replace(h Handle, v Value) error {
	if _, ok := s.values[h.key]; !ok {
		return fmt.Errorf("replace %q: %w", h.key, ErrKeyNotFound)
	}
	s.values[h.key] = v
	return nil
}

// Has reports whether key is present.
func (s *ValueStore) Has(key string) bool {
	_, ok := s.values[key]
	return ok
}

// Len returns the number of stored values.
func (s *ValueStore) Len() int {
	return len(s.values)
}

// Keys returns all keys in sorted order.
func (s *ValueStore) Keys() []string {
	keys := make([]string, 0, len(s.values))
	for k := range s.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// LoadAs loads the value behind h as T.
func LoadAs[T Scalar](s *ValueStore, h Handle) (T, error) {
	var zero T
	v, err := s.Load(h)
	if err != nil {
		return zero, err
	}
	typed, ok := Downcast[T](v)
	if !ok {
		return zero, fmt.Errorf("load %q as %T (have %s): %w", h.key, zero, v.Kind(), ErrTypeMismatch)
	}
	return typed, nil
}

// Update applies fn to the value behind h when it holds a T and stores the
// result. A type mismatch skips the update and returns false with a nil
// error; a missing key returns ErrKeyNotFound.
//
//	listui.Update(store, timeHandle, func(t float64) float64 { return t + 0.01 })
func Update[T Scalar](s *ValueStore, h Handle, fn func(T) T) (bool, error) {
	v, err := s.Load(h)
	if err != nil {
		return false, err
	}
	typed, ok := Downcast[T](v)
	if !ok {
		if verbose() {
			var zero T
			logger.Debug("skipping typed update", "key", h.key, "want", fmt.Sprintf("%T", zero), "have", v.Kind())
		}
		return false, nil
	}
	s.values[h.key] = ValueOf(fn(typed))
	return true, nil
}
