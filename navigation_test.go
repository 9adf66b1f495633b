package listui

import (
	"testing"
	"time"
)

func listOf(n int) *ListInterface {
	l := NewListInterface(0)
	store := NewValueStore()
	for i := 0; i < n; i++ {
		l.AddLabeledValue("entry", store.Insert("k", Int32(int32(i))))
	}
	return l
}

func TestNavigateDownCycles(t *testing.T) {
	for n := 1; n <= 5; n++ {
		l := listOf(n)
		for start := 0; start < n; start++ {
			l.SelectedIndex = start
			for i := 0; i < n; i++ {
				l.NavigateDown()
			}
			if l.SelectedIndex != start {
				t.Errorf("n=%d start=%d: %d downs ended at %d", n, start, n, l.SelectedIndex)
			}
		}
	}
}

func TestNavigateUpCycles(t *testing.T) {
	for n := 1; n <= 5; n++ {
		l := listOf(n)
		for i := 0; i < n; i++ {
			l.NavigateUp()
		}
		if l.SelectedIndex != 0 {
			t.Errorf("n=%d: %d ups ended at %d", n, n, l.SelectedIndex)
		}
	}
}

func TestNavigateUpDownInverse(t *testing.T) {
	l := listOf(4)
	for start := 0; start < 4; start++ {
		l.SelectedIndex = start
		l.NavigateDown()
		l.NavigateUp()
		if l.SelectedIndex != start {
			t.Errorf("down then up from %d ended at %d", start, l.SelectedIndex)
		}
		l.NavigateUp()
		l.NavigateDown()
		if l.SelectedIndex != start {
			t.Errorf("up then down from %d ended at %d", start, l.SelectedIndex)
		}
	}
}

func TestNavigateWraps(t *testing.T) {
	l := listOf(3)
	l.NavigateUp()
	if l.SelectedIndex != 2 {
		t.Errorf("up from first = %d, want 2", l.SelectedIndex)
	}
	l.NavigateDown()
	if l.SelectedIndex != 0 {
		t.Errorf("down from last = %d, want 0", l.SelectedIndex)
	}
}

func TestNavigateEmptyList(t *testing.T) {
	l := NewListInterface(0)
	if l.NavigateDown() || l.NavigateUp() {
		t.Error("navigation on an empty list reported movement")
	}
	if l.SelectedIndex != 0 {
		t.Errorf("SelectedIndex = %d, want 0", l.SelectedIndex)
	}
}

func TestNavigateOutOfRangeCursor(t *testing.T) {
	l := listOf(3)
	l.SelectedIndex = 7
	l.NavigateDown()
	if l.SelectedIndex != 0 {
		t.Errorf("down from 7 = %d, want 0", l.SelectedIndex)
	}
	l.SelectedIndex = -4
	l.NavigateUp()
	if l.SelectedIndex != 2 {
		t.Errorf("up from -4 = %d, want 2", l.SelectedIndex)
	}
}

func TestEnter(t *testing.T) {
	l := listOf(3)
	l.SelectedIndex = 2
	l.Enter()
	if l.SelectedIndex != 0 {
		t.Errorf("ResumeFirst: SelectedIndex = %d, want 0", l.SelectedIndex)
	}

	l.Resume = ResumeLastUsed
	l.SelectedIndex = 2
	l.Enter()
	if l.SelectedIndex != 2 {
		t.Errorf("ResumeLastUsed: SelectedIndex = %d, want 2", l.SelectedIndex)
	}
}

func TestCooldown(t *testing.T) {
	c := Cooldown{Interval: DefaultCooldown}
	t0 := time.Unix(100, 0)

	steps := []struct {
		at   time.Duration
		want bool
	}{
		{0, true},
		{10 * time.Millisecond, false},
		{59 * time.Millisecond, false},
		{60 * time.Millisecond, true},
		{100 * time.Millisecond, false},
		{120 * time.Millisecond, true},
	}
	for _, s := range steps {
		if got := c.Allow(t0.Add(s.at)); got != s.want {
			t.Errorf("Allow(+%v) = %v, want %v", s.at, got, s.want)
		}
	}

	c.Reset()
	if !c.Allow(t0.Add(121 * time.Millisecond)) {
		t.Error("Allow after Reset rejected")
	}
}

func TestActivateCheckBox(t *testing.T) {
	store := NewValueStore()
	h := store.Insert("enabled", Bool(false))
	l := NewListInterface(0)
	l.AddCheckBox("enabled", h)

	if got := l.Entries[0].Activate(store); got != Done {
		t.Fatalf("Activate = %s, want done", got)
	}
	if v, _ := LoadAs[bool](store, h); !v {
		t.Error("checkbox not toggled on")
	}
	l.Entries[0].Activate(store)
	if v, _ := LoadAs[bool](store, h); v {
		t.Error("checkbox not toggled off")
	}
}

func TestActivateCheckBoxWrongType(t *testing.T) {
	store := NewValueStore()
	h := store.Insert("enabled", Int32(1))
	l := NewListInterface(0)
	l.AddCheckBox("enabled", h)

	if got := l.Entries[0].Activate(store); got != Irrelevant {
		t.Errorf("Activate = %s, want irrelevant", got)
	}
	if !store.MustLoad(h).Equal(Int32(1)) {
		t.Error("mismatched value was modified")
	}
}

func TestAdjustSliderClamps(t *testing.T) {
	store := NewValueStore()
	h := store.Insert("gear", Int32(2))
	l := NewListInterface(0)
	l.AddSlider("gear", h, SliderRange{Min: 0, Max: 3, Step: 1})
	item := &l.Entries[0]

	item.Adjust(store, 1)
	item.Adjust(store, 1)
	if got, _ := LoadAs[int32](store, h); got != 3 {
		t.Errorf("gear after two steps up = %d, want 3", got)
	}
	for i := 0; i < 5; i++ {
		item.Adjust(store, -1)
	}
	if got, _ := LoadAs[int32](store, h); got != 0 {
		t.Errorf("gear after five steps down = %d, want 0", got)
	}
}

func TestActivateButtonAndReadOnly(t *testing.T) {
	store := NewValueStore()
	pressed := 0
	l := NewListInterface(0)
	l.AddButton("go", Handle{}, func(*ValueStore) OperatorResult {
		pressed++
		return Done
	})
	l.AddLabeledValue("hello", store.Insert("hello", Text("world")))
	l.AddEntry("off", ItemCheckBox, ItemNotSelectable, ItemEditable, store.Insert("off", Bool(false)))

	if got := l.Entries[0].Activate(store); got != Done || pressed != 1 {
		t.Errorf("button Activate = %s, pressed %d; want done, 1", got, pressed)
	}
	if got := l.Entries[1].Activate(store); got != Irrelevant {
		t.Errorf("text Activate = %s, want irrelevant", got)
	}
	if got := l.Entries[2].Activate(store); got != Irrelevant {
		t.Errorf("non-selectable Activate = %s, want irrelevant", got)
	}
	if v, _ := LoadAs[bool](store, store.Get("off")); v {
		t.Error("non-selectable checkbox was toggled")
	}
}
