package listui

import (
	"errors"
	"fmt"
	"sync"
	"time"
)

// Renderer draws render groups and text labels.
type Renderer interface {
	// NewInstanceWriter allocates a device instance buffer.
	NewInstanceWriter(capacity int) (InstanceWriter, error)
	// LoadPipeline returns the pipeline for shaderPath, loading it on
	// first use.
	LoadPipeline(shaderPath string) (PipelineID, error)
	Render(groups []*RenderGroup, texts []TextLabel) error
	Resize(width, height int)
}

// Defaults for App options.
const (
	DefaultGroupCapacity = 256
	DefaultShaderPath    = "shaders/unit_square"
)

// ErrUnknownList is returned for a ListID the App does not own.
var ErrUnknownList = errors.New("listui: unknown list")

// App owns the value store, the lists and their render groups, and drives
// the frame: events, update, step, layout, render.
//
// Every exported frame operation takes the App lock once. Input callbacks
// on other goroutines should go through an EventQueue rather than calling
// HandleEvent directly.
type App struct {
	mu sync.Mutex

	renderer Renderer
	store    *ValueStore
	lists    ListArena
	groups   []*RenderGroup
	texts    *TextCollection
	measurer TextMeasurer
	extent   Extent
	cooldown Cooldown
	now      func() time.Time

	groupCapacity int
	shaderPath    string

	// focus is the stack of open lists; the top is focused.
	focus []ListID
	quit  bool
}

// AppOption configures an App.
type AppOption func(*App)

// WithExtent sets the initial viewport size in pixels.
func WithExtent(width, height uint32) AppOption {
	return func(a *App) { a.extent = Extent{W: width, H: height} }
}

// WithCooldown sets the minimum interval between navigation events.
func WithCooldown(d time.Duration) AppOption {
	return func(a *App) { a.cooldown.Interval = d }
}

// WithClock replaces time.Now for the navigation cooldown.
func WithClock(now func() time.Time) AppOption {
	return func(a *App) { a.now = now }
}

// WithTextMeasurer sets the metrics used for label widths.
func WithTextMeasurer(m TextMeasurer) AppOption {
	return func(a *App) { a.measurer = m }
}

// WithStore shares an existing value store.
func WithStore(s *ValueStore) AppOption {
	return func(a *App) { a.store = s }
}

// WithGroupCapacity sets the instance capacity of new render groups.
func WithGroupCapacity(n int) AppOption {
	return func(a *App) { a.groupCapacity = n }
}

// WithShaderPath sets the shader used by new render groups.
func WithShaderPath(path string) AppOption {
	return func(a *App) { a.shaderPath = path }
}

// New creates an App drawing through renderer.
func New(renderer Renderer, opts ...AppOption) *App {
	a := &App{
		renderer:      renderer,
		store:         NewValueStore(),
		measurer:      DefaultMeasurer,
		extent:        Extent{W: 640, H: 480},
		cooldown:      Cooldown{Interval: DefaultCooldown},
		now:           time.Now,
		groupCapacity: DefaultGroupCapacity,
		shaderPath:    DefaultShaderPath,
	}
	for _, opt := range opts {
		opt(a)
	}
	a.texts = NewTextCollection(a.measurer)
	return a
}

// NewList creates a list with its own render group. The first list created
// receives focus.
func (a *App) NewList() (ListID, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	w, err := a.renderer.NewInstanceWriter(a.groupCapacity)
	if err != nil {
		return NoList, fmt.Errorf("new list: %w", err)
	}
	pipeline, err := a.renderer.LoadPipeline(a.shaderPath)
	if err != nil {
		return NoList, fmt.Errorf("new list: load pipeline %q: %w", a.shaderPath, err)
	}
	a.groups = append(a.groups, NewRenderGroup(pipeline, a.shaderPath, a.groupCapacity, w))
	id := a.lists.Add(NewListInterface(len(a.groups) - 1))

	if len(a.focus) == 0 {
		a.focus = append(a.focus, id)
		a.syncFocus()
	}
	logger.Debug("new list", "id", id, "pipeline", pipeline)
	return id, nil
}

// List returns the list for id, or nil.
func (a *App) List(id ListID) *ListInterface { return a.lists.Get(id) }

// Store returns the shared value store.
func (a *App) Store() *ValueStore { return a.store }

// Texts returns the labels produced by the last layout.
func (a *App) Texts() *TextCollection { return a.texts }

// Groups returns the render groups, indexed by ListInterface.RenderGroup.
func (a *App) Groups() []*RenderGroup { return a.groups }

// Extent returns the current viewport size.
func (a *App) Extent() Extent {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.extent
}

// Focus makes id the only open list.
func (a *App) Focus(id ListID) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.lists.Get(id) == nil {
		return fmt.Errorf("focus %d: %w", id, ErrUnknownList)
	}
	for _, open := range a.focus {
		a.lists.Get(open).ActivatedIndex = -1
	}
	a.focus = append(a.focus[:0], id)
	a.syncFocus()
	return nil
}

// Focused returns the list receiving navigation, or NoList.
func (a *App) Focused() ListID {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.focused()
}

// Quit reports whether a quit event was handled.
func (a *App) Quit() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.quit
}

// HandleEvent applies one input event.
func (a *App) HandleEvent(ev Event) OperatorResult {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.handleEvent(ev)
}

// Step advances popout animations by dt seconds.
func (a *App) Step(dt float32) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.step(dt)
}

// Layout rebuilds texts and instances for every visible list.
func (a *App) Layout() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.layout()
}

// Render re-stages dirty instances and draws.
func (a *App) Render() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.render()
}

// Frame runs one frame: it applies events, calls update with the store,
// steps animations, lays out and renders. update may be nil.
func (a *App) Frame(events []Event, dt float32, update func(*ValueStore)) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	for _, ev := range events {
		a.handleEvent(ev)
	}
	if update != nil {
		update(a.store)
	}
	a.step(dt)
	if err := a.layout(); err != nil {
		return fmt.Errorf("frame: %w", err)
	}
	if err := a.render(); err != nil {
		return fmt.Errorf("frame: %w", err)
	}
	return nil
}

func (a *App) focused() ListID {
	if len(a.focus) == 0 {
		return NoList
	}
	return a.focus[len(a.focus)-1]
}

func (a *App) syncFocus() {
	top := a.focused()
	for i := 0; i < a.lists.Len(); i++ {
		a.lists.Get(ListID(i)).Focused = ListID(i) == top
	}
}

func (a *App) handleEvent(ev Event) OperatorResult {
	if verbose() {
		logger.Debug("event", "kind", ev.Kind, "focused", a.focused())
	}
	switch ev.Kind {
	case EventQuit:
		a.quit = true
		return Done
	case EventResize:
		return a.resize(ev.Width, ev.Height)
	case EventCancel:
		return a.closeList()
	}

	l := a.lists.Get(a.focused())
	if l == nil {
		return Irrelevant
	}

	switch ev.Kind {
	case EventUp, EventDown:
		if !a.cooldown.Allow(a.now()) {
			return Irrelevant
		}
		var moved bool
		if ev.Kind == EventUp {
			moved = l.NavigateUp()
		} else {
			moved = l.NavigateDown()
		}
		if !moved {
			logger.Debug("navigate", "list", a.focused(), "err", ErrEmptyList)
			return Irrelevant
		}
		return Done
	case EventLeft, EventRight:
		item, ok := l.Selected()
		if !ok || !a.cooldown.Allow(a.now()) {
			return Irrelevant
		}
		dir := 1
		if ev.Kind == EventLeft {
			dir = -1
		}
		return item.Adjust(a.store, dir)
	case EventActivate:
		item, ok := l.Selected()
		if !ok {
			return Irrelevant
		}
		if item.Kind == ItemSubList && item.Selectable {
			return a.openList(l, item.Sub)
		}
		return item.Activate(a.store)
	}
	return Irrelevant
}

func (a *App) openList(parent *ListInterface, id ListID) OperatorResult {
	child := a.lists.Get(id)
	if child == nil {
		logger.Warn("sub-list missing", "id", id)
		return Irrelevant
	}
	for _, open := range a.focus {
		if open == id {
			return Irrelevant
		}
	}
	parent.ActivatedIndex = parent.SelectedIndex
	child.Enter()
	a.focus = append(a.focus, id)
	a.syncFocus()
	return Done
}

func (a *App) closeList() OperatorResult {
	if len(a.focus) < 2 {
		return Irrelevant
	}
	a.focus = a.focus[:len(a.focus)-1]
	a.lists.Get(a.focused()).ActivatedIndex = -1
	a.syncFocus()
	return Cancelled
}

func (a *App) resize(width, height int) OperatorResult {
	if width < 0 || height < 0 {
		return Irrelevant
	}
	a.extent = Extent{W: uint32(width), H: uint32(height)}
	a.renderer.Resize(width, height)
	if width == 0 || height == 0 {
		return Done
	}
	for _, g := range a.groups {
		g.Instances.MarkAllForUpdate()
		g.Instances.RecalcScreenInstances(a.extent)
	}
	logger.Debug("resize", "width", width, "height", height)
	return Done
}

func (a *App) step(dt float32) {
	for i := 0; i < a.lists.Len(); i++ {
		l := a.lists.Get(ListID(i))
		l.Popout.Step(l.Focused, dt)
	}
}

// drawn reports which lists appear on screen: lists reached through a
// sub-list entry only while open, row-group sources never, and a list
// whose open child is anchored in the middle is replaced by it.
func (a *App) drawn() []bool {
	n := a.lists.Len()
	nested := make([]bool, n)
	inline := make([]bool, n)
	for i := 0; i < n; i++ {
		for _, it := range a.lists.Get(ListID(i)).Entries {
			if it.Sub < 0 || int(it.Sub) >= n {
				continue
			}
			switch it.Kind {
			case ItemSubList:
				nested[it.Sub] = true
			case ItemRowGroup:
				inline[it.Sub] = true
			}
		}
	}
	open := make([]bool, n)
	for i, id := range a.focus {
		open[id] = true
		if i+1 < len(a.focus) && a.lists.Get(a.focus[i+1]).Anchor == AnchorMiddle {
			open[id] = false
			nested[id] = true
		}
	}

	out := make([]bool, n)
	for i := range out {
		out[i] = !inline[i] && (!nested[i] || open[i])
	}
	return out
}

func (a *App) layout() error {
	a.texts.Clear()
	for _, g := range a.groups {
		g.Instances.Clear()
	}
	for i, show := range a.drawn() {
		if !show {
			continue
		}
		l := a.lists.Get(ListID(i))
		if l.RenderGroup < 0 || l.RenderGroup >= len(a.groups) {
			return fmt.Errorf("layout list %d: render group %d: %w", i, l.RenderGroup, ErrUnknownList)
		}
		if _, err := LayoutList(l, &a.lists, a.store, a.extent, a.texts, a.groups[l.RenderGroup]); err != nil {
			return fmt.Errorf("layout list %d: %w", i, err)
		}
	}
	return nil
}

func (a *App) render() error {
	if a.extent.W > 0 && a.extent.H > 0 {
		for _, g := range a.groups {
			g.Instances.RecalcScreenInstances(a.extent)
		}
	}
	if err := a.renderer.Render(a.groups, a.texts.Labels()); err != nil {
		return fmt.Errorf("render: %w", err)
	}
	return nil
}
