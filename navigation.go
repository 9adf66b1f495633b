package listui

import (
	"errors"
	"time"
)

// ErrEmptyList reports a navigation event against a list with no entries.
// Navigation treats it as a no-op; the App only logs it.
var ErrEmptyList = errors.New("listui: navigation on empty list")

// DefaultCooldown is the minimum interval between accepted navigation
// events. It debounces held keys without key-repeat suppression upstream.
const DefaultCooldown = 60 * time.Millisecond

// NavigateUp moves the cursor up one entry, wrapping from the first entry
// to the last. It returns false and leaves the cursor alone when the list
// is empty. A cursor outside the entries is clamped to the last entry.
func (l *ListInterface) NavigateUp() bool {
	n := len(l.Entries)
	if n == 0 {
		return false
	}
	if l.SelectedIndex <= 0 || l.SelectedIndex >= n {
		l.SelectedIndex = n - 1
		return true
	}
	l.SelectedIndex--
	return true
}

// NavigateDown moves the cursor down one entry, wrapping from the last
// entry to the first. It returns false and leaves the cursor alone when the
// list is empty. A cursor outside the entries is clamped to the first entry.
func (l *ListInterface) NavigateDown() bool {
	n := len(l.Entries)
	if n == 0 {
		return false
	}
	if l.SelectedIndex < 0 || l.SelectedIndex >= n {
		l.SelectedIndex = 0
		return true
	}
	l.SelectedIndex = (l.SelectedIndex + 1) % n
	return true
}

// Enter positions the cursor for a list that is being (re-)entered.
func (l *ListInterface) Enter() {
	switch {
	case len(l.Entries) == 0:
		l.SelectedIndex = 0
	case l.Resume == ResumeFirst:
		l.SelectedIndex = 0
	case l.SelectedIndex < 0 || l.SelectedIndex >= len(l.Entries):
		l.SelectedIndex = 0
	}
}

// Cooldown rate-limits navigation. It compares monotonic timestamps rather
// than scheduling timers.
type Cooldown struct {
	Interval time.Duration

	last time.Time
	set  bool
}

// Allow reports whether an event at now is accepted and, if so, records it.
func (c *Cooldown) Allow(now time.Time) bool {
	if c.set && now.Sub(c.last) < c.Interval {
		return false
	}
	c.last = now
	c.set = true
	return true
}

// Reset forgets the last accepted event.
func (c *Cooldown) Reset() {
	c.set = false
	c.last = time.Time{}
}

// Activate runs the kind-specific behavior of the item against store.
// SubList and RowGroup entries return Irrelevant here; opening lists is
// handled by the App, which owns the focus stack.
func (it *ListItem) Activate(store *ValueStore) OperatorResult {
	if !it.Selectable {
		return Irrelevant
	}
	switch it.Kind {
	case ItemCheckBox:
		if !it.Editable {
			return Irrelevant
		}
		return updateResult(Update(store, it.Value, func(b bool) bool { return !b }))
	case ItemSlider:
		if !it.Editable {
			return Irrelevant
		}
		return it.adjustSlider(store, 1)
	case ItemButton:
		if it.OnActivate == nil {
			return Irrelevant
		}
		return it.OnActivate(store)
	}
	return Irrelevant
}

// Adjust handles horizontal input on the item: sliders step down (dir < 0)
// or up (dir > 0), checkboxes are set off or on.
func (it *ListItem) Adjust(store *ValueStore, dir int) OperatorResult {
	if !bool(it.Selectable) || !bool(it.Editable) || dir == 0 {
		return Irrelevant
	}
	switch it.Kind {
	case ItemSlider:
		return it.adjustSlider(store, dir)
	case ItemCheckBox:
		on := dir > 0
		return updateResult(Update(store, it.Value, func(bool) bool { return on }))
	}
	return Irrelevant
}

func (it *ListItem) adjustSlider(store *ValueStore, dir int) OperatorResult {
	v, err := store.Load(it.Value)
	if err != nil {
		logger.Debug("slider load failed", "label", it.Label, "err", err)
		return Irrelevant
	}
	f, ok := v.Float()
	if !ok {
		return Irrelevant
	}
	step := it.Range.Step
	if step == 0 {
		step = 1
	}
	f += step * float64(dir)
	if it.Range.Max > it.Range.Min {
		if f < it.Range.Min {
			f = it.Range.Min
		}
		if f > it.Range.Max {
			f = it.Range.Max
		}
	}
	if err := store.Replace(it.Value, v.withFloat(f)); err != nil {
		return Irrelevant
	}
	return Done
}

func updateResult(ok bool, err error) OperatorResult {
	if err != nil {
		logger.Debug("item update failed", "err", err)
		return Irrelevant
	}
	if !ok {
		return Irrelevant
	}
	return Done
}
