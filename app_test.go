package listui_test

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/go-theft-auto/listui"
)

// mockRenderer is a test renderer that records calls instead of drawing.
type mockRenderer struct {
	renderCalls int
	resizes     [][2]int
	pipelines   []string
	lastGroups  int
	lastTexts   []string

	writerErr error
	renderErr error
}

type nopWriter struct{}

func (nopWriter) WriteInstances(int, []listui.InstanceData) {}

func (m *mockRenderer) NewInstanceWriter(int) (listui.InstanceWriter, error) {
	if m.writerErr != nil {
		return nil, m.writerErr
	}
	return nopWriter{}, nil
}

func (m *mockRenderer) LoadPipeline(path string) (listui.PipelineID, error) {
	for i, p := range m.pipelines {
		if p == path {
			return listui.PipelineID(i), nil
		}
	}
	m.pipelines = append(m.pipelines, path)
	return listui.PipelineID(len(m.pipelines) - 1), nil
}

func (m *mockRenderer) Render(groups []*listui.RenderGroup, texts []listui.TextLabel) error {
	m.renderCalls++
	m.lastGroups = len(groups)
	m.lastTexts = m.lastTexts[:0]
	for _, l := range texts {
		m.lastTexts = append(m.lastTexts, l.Text)
	}
	return m.renderErr
}

func (m *mockRenderer) Resize(width, height int) {
	m.resizes = append(m.resizes, [2]int{width, height})
}

func newTestApp(t *testing.T, opts ...listui.AppOption) (*listui.App, *mockRenderer) {
	t.Helper()
	r := &mockRenderer{}
	opts = append([]listui.AppOption{
		listui.WithTextMeasurer(tenPerRune),
		listui.WithCooldown(0),
	}, opts...)
	return listui.New(r, opts...), r
}

func mustList(t *testing.T, app *listui.App) listui.ListID {
	t.Helper()
	id, err := app.NewList()
	if err != nil {
		t.Fatalf("NewList: %v", err)
	}
	return id
}

func TestAppFrame(t *testing.T) {
	app, r := newTestApp(t)
	id := mustList(t, app)
	h := app.Store().Insert("time", listui.Float64(0))
	app.List(id).AddLabeledValue("time", h)

	update := func(s *listui.ValueStore) {
		listui.Update(s, h, func(v float64) float64 { return v + 0.01 })
	}
	for i := 0; i < 3; i++ {
		if err := app.Frame(nil, 1.0/60, update); err != nil {
			t.Fatalf("Frame: %v", err)
		}
	}

	if r.renderCalls != 3 {
		t.Errorf("render calls = %d, want 3", r.renderCalls)
	}
	if len(r.lastTexts) != 2 || r.lastTexts[1] != "0.03" {
		t.Errorf("texts = %q, want time: and 0.03", r.lastTexts)
	}
	if app.Focused() != id || !app.List(id).Focused {
		t.Error("first list did not receive focus")
	}
}

func TestAppPipelinesShared(t *testing.T) {
	app, r := newTestApp(t, listui.WithShaderPath("shaders/custom"))
	mustList(t, app)
	mustList(t, app)

	groups := app.Groups()
	if len(groups) != 2 || groups[0].Pipeline != groups[1].Pipeline {
		t.Errorf("groups = %d, pipelines %v", len(groups), r.pipelines)
	}
	if groups[0].ShaderPath != "shaders/custom" {
		t.Errorf("ShaderPath = %q", groups[0].ShaderPath)
	}
}

func TestAppNavigationCooldown(t *testing.T) {
	now := time.Unix(0, 0)
	app, _ := newTestApp(t,
		listui.WithCooldown(listui.DefaultCooldown),
		listui.WithClock(func() time.Time { return now }),
	)
	id := mustList(t, app)
	l := app.List(id)
	for _, k := range []string{"a", "b", "c"} {
		l.AddLabeledValue(k, app.Store().Insert(k, listui.Int32(0)))
	}

	steps := []struct {
		at   time.Duration
		want int
	}{
		{0, 1},
		{10 * time.Millisecond, 1},
		{70 * time.Millisecond, 2},
		{140 * time.Millisecond, 0},
	}
	for _, s := range steps {
		now = time.Unix(0, 0).Add(s.at)
		app.HandleEvent(listui.Key(listui.EventDown))
		if l.SelectedIndex != s.want {
			t.Errorf("after down at +%v: index %d, want %d", s.at, l.SelectedIndex, s.want)
		}
	}
}

func TestAppEmptyListNavigation(t *testing.T) {
	app, _ := newTestApp(t)
	mustList(t, app)
	if got := app.HandleEvent(listui.Key(listui.EventUp)); got != listui.Irrelevant {
		t.Errorf("up on empty list = %s, want irrelevant", got)
	}
	if err := app.Frame(nil, 0, nil); err != nil {
		t.Errorf("Frame on empty list: %v", err)
	}
}

// buildSettings creates a root list whose second entry opens a settings
// list with the given anchor.
func buildSettings(t *testing.T, app *listui.App, anchor listui.ListAnchor) (root, settings listui.ListID) {
	t.Helper()
	root = mustList(t, app)
	settings = mustList(t, app)
	s := app.Store()

	sub := app.List(settings)
	sub.Anchor = anchor
	sub.AddCheckBox("enabled", s.Insert("enabled", listui.Bool(true)))

	r := app.List(root)
	r.AddLabeledValue("hello", s.Insert("hello", listui.Text("world")))
	r.AddSubList("settings", settings)
	return root, settings
}

func TestAppSubListOpenClose(t *testing.T) {
	app, r := newTestApp(t)
	root, settings := buildSettings(t, app, listui.AnchorLeft)

	if err := app.Frame(nil, 0, nil); err != nil {
		t.Fatal(err)
	}
	if len(r.lastTexts) != 4 {
		t.Errorf("closed sub-list drawn: texts %q", r.lastTexts)
	}

	app.HandleEvent(listui.Key(listui.EventDown))
	if got := app.HandleEvent(listui.Key(listui.EventActivate)); got != listui.Done {
		t.Fatalf("activate sub-list = %s, want done", got)
	}
	if app.Focused() != settings {
		t.Fatalf("focused = %d, want settings %d", app.Focused(), settings)
	}
	if got := app.List(root).ActivatedIndex; got != 1 {
		t.Errorf("parent ActivatedIndex = %d, want 1", got)
	}

	if err := app.Frame(nil, 0, nil); err != nil {
		t.Fatal(err)
	}
	if len(r.lastTexts) != 6 {
		t.Errorf("texts with sub-list open = %q", r.lastTexts)
	}
	style := listui.DefaultListStyle()
	rootGroup := app.Groups()[app.List(root).RenderGroup]
	if c := rootGroup.Instances.Instance(2).Color; c != style.Activated.BG {
		t.Errorf("open entry color = %v, want activated %v", c, style.Activated.BG)
	}

	// Activate inside the sub-list toggles the checkbox.
	app.HandleEvent(listui.Key(listui.EventActivate))
	if v, _ := listui.LoadAs[bool](app.Store(), app.Store().Get("enabled")); v {
		t.Error("checkbox not toggled")
	}

	if got := app.HandleEvent(listui.Key(listui.EventCancel)); got != listui.Cancelled {
		t.Errorf("cancel = %s, want cancelled", got)
	}
	if app.Focused() != root || app.List(root).ActivatedIndex != -1 {
		t.Error("cancel did not return to root")
	}
	if got := app.HandleEvent(listui.Key(listui.EventCancel)); got != listui.Irrelevant {
		t.Errorf("cancel at root = %s, want irrelevant", got)
	}
}

func TestAppMiddleSubListReplacesParent(t *testing.T) {
	app, r := newTestApp(t)
	root, _ := buildSettings(t, app, listui.AnchorMiddle)

	app.HandleEvent(listui.Key(listui.EventDown))
	app.HandleEvent(listui.Key(listui.EventActivate))
	if err := app.Frame(nil, 0, nil); err != nil {
		t.Fatal(err)
	}

	want := []string{"enabled: ", "true"}
	if len(r.lastTexts) != 2 || r.lastTexts[0] != want[0] || r.lastTexts[1] != want[1] {
		t.Errorf("texts = %q, want %q", r.lastTexts, want)
	}
	if n := app.Groups()[app.List(root).RenderGroup].Instances.Len(); n != 0 {
		t.Errorf("replaced parent kept %d instances", n)
	}
}

func TestAppPopoutHidesUnfocusedParent(t *testing.T) {
	app, r := newTestApp(t)
	root, _ := buildSettings(t, app, listui.AnchorRight)
	app.List(root).Popout = listui.PopoutState{Behavior: listui.PopoutHiddenWhenUnfocused, Speed: 4, Progress: 1}

	app.HandleEvent(listui.Key(listui.EventDown))
	app.HandleEvent(listui.Key(listui.EventActivate))
	if err := app.Frame(nil, 0.5, nil); err != nil {
		t.Fatal(err)
	}
	if len(r.lastTexts) != 2 {
		t.Errorf("popped-out parent still drawn: %q", r.lastTexts)
	}

	app.HandleEvent(listui.Key(listui.EventCancel))
	if err := app.Frame(nil, 0.1, nil); err != nil {
		t.Fatal(err)
	}
	if p := app.List(root).Popout.Progress; p <= 0 || p >= 1 {
		t.Errorf("progress after refocus = %v, want sliding in", p)
	}
	if len(r.lastTexts) != 4 {
		t.Errorf("refocused parent not drawn: %q", r.lastTexts)
	}
}

func TestAppResize(t *testing.T) {
	app, r := newTestApp(t, listui.WithExtent(640, 480))
	id := mustList(t, app)
	app.List(id).Anchor = listui.AnchorRight
	app.List(id).AddLabeledValue("x", app.Store().Insert("x", listui.Int32(1)))
	if err := app.Layout(); err != nil {
		t.Fatal(err)
	}

	if got := app.HandleEvent(listui.Resize(800, 600)); got != listui.Done {
		t.Errorf("resize = %s", got)
	}
	if len(r.resizes) != 1 || r.resizes[0] != [2]int{800, 600} {
		t.Errorf("renderer resizes = %v", r.resizes)
	}
	if app.Extent() != (listui.Extent{W: 800, H: 600}) {
		t.Errorf("extent = %+v", app.Extent())
	}

	// Between resize and the next layout the background keeps its
	// proportional position: 420/640 of the width.
	bg := app.Groups()[0].Instances.Instance(0).Transform.Pixel
	if bg.X != 525 || bg.Extent.W != 800 {
		t.Errorf("rescaled background = %+v, want x 525", *bg)
	}

	if err := app.Layout(); err != nil {
		t.Fatal(err)
	}
	if bg := app.Groups()[0].Instances.Instance(0).Transform.Pixel; bg.X != 580 {
		t.Errorf("re-laid-out background x = %d, want 580", bg.X)
	}
}

func TestAppQuit(t *testing.T) {
	app, _ := newTestApp(t)
	if app.Quit() {
		t.Fatal("quit before event")
	}
	if err := app.Frame([]listui.Event{listui.Key(listui.EventQuit)}, 0, nil); err != nil {
		t.Fatal(err)
	}
	if !app.Quit() {
		t.Error("quit event not recorded")
	}
}

func TestAppErrors(t *testing.T) {
	writerErr := errors.New("out of memory")
	app, r := newTestApp(t)
	r.writerErr = writerErr
	if _, err := app.NewList(); !errors.Is(err, writerErr) {
		t.Errorf("NewList err = %v, want %v", err, writerErr)
	}
	if len(app.Groups()) != 0 {
		t.Error("failed NewList left a group behind")
	}
	r.writerErr = nil

	if err := app.Focus(42); !errors.Is(err, listui.ErrUnknownList) {
		t.Errorf("Focus(42) = %v, want ErrUnknownList", err)
	}

	id := mustList(t, app)
	app.List(id).AddLabeledValue("ghost", app.Store().Get("ghost"))
	if err := app.Frame(nil, 0, nil); !errors.Is(err, listui.ErrKeyNotFound) {
		t.Errorf("Frame with broken binding = %v, want ErrKeyNotFound", err)
	}

	app.List(id).Entries = nil
	r.renderErr = errors.New("device lost")
	if err := app.Frame(nil, 0, nil); !errors.Is(err, r.renderErr) {
		t.Errorf("Frame = %v, want render error", err)
	}
}

func TestEventQueueConcurrent(t *testing.T) {
	var q listui.EventQueue
	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				q.Push(listui.Key(listui.EventDown))
			}
		}()
	}
	wg.Wait()

	if got := len(q.Drain()); got != 800 {
		t.Errorf("drained %d events, want 800", got)
	}
	if q.Drain() != nil {
		t.Error("second drain returned events")
	}
}
