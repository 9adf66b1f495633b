package listui

// ItemKind selects how a ListItem behaves when activated.
//
//   - Text is a plain labeled value.
//   - CheckBox toggles a bool value.
//   - Slider adjusts a numeric value within a range.
//   - Button runs a callback.
//   - RowGroup shows the entries of another list inline in one row.
//   - SubList opens another list; its anchor decides where it opens and a
//     Middle anchor replaces the parent while open.
type ItemKind int

const (
	ItemText ItemKind = iota
	ItemCheckBox
	ItemSlider
	ItemButton
	ItemRowGroup
	ItemSubList
)

func (k ItemKind) String() string {
	switch k {
	case ItemCheckBox:
		return "checkbox"
	case ItemSlider:
		return "slider"
	case ItemButton:
		return "button"
	case ItemRowGroup:
		return "rowgroup"
	case ItemSubList:
		return "sublist"
	default:
		return "text"
	}
}

// Selectable marks whether an item can be interacted with.
type Selectable bool

const (
	ItemSelectable    Selectable = true
	ItemNotSelectable Selectable = false
)

// Editable marks whether activating an item may change its value.
type Editable bool

const (
	ItemEditable    Editable = true
	ItemNotEditable Editable = false
)

// OperatorResult tells the caller whether an interaction consumed the event.
type OperatorResult int

const (
	Irrelevant OperatorResult = iota
	Done
	Cancelled
)

func (r OperatorResult) String() string {
	switch r {
	case Done:
		return "done"
	case Cancelled:
		return "cancelled"
	default:
		return "irrelevant"
	}
}

// SliderRange bounds a slider value. A zero range is unbounded.
type SliderRange struct {
	Min, Max float64
	Step     float64
}

// ListAnchor is the horizontal placement of a list. Hidden lists are not
// laid out.
type ListAnchor int

const (
	AnchorLeft ListAnchor = iota
	AnchorMiddle
	AnchorRight
	AnchorHidden
)

func (a ListAnchor) String() string {
	switch a {
	case AnchorMiddle:
		return "middle"
	case AnchorRight:
		return "right"
	case AnchorHidden:
		return "hidden"
	default:
		return "left"
	}
}

// PopoutBehavior controls visibility of a list that lost focus.
type PopoutBehavior int

const (
	PopoutAlwaysVisible PopoutBehavior = iota
	PopoutHiddenWhenUnfocused
)

// PopoutState animates a list in and out. Progress runs from 0 (hidden) to
// 1 (fully shown) at Speed units per second.
type PopoutState struct {
	Behavior PopoutBehavior
	Speed    float32
	Progress float32
}

// DefaultPopout is always visible.
func DefaultPopout() PopoutState {
	return PopoutState{Behavior: PopoutAlwaysVisible, Speed: 1, Progress: 1}
}

// Step advances the animation by dt seconds.
func (p *PopoutState) Step(focused bool, dt float32) {
	if p.Behavior == PopoutAlwaysVisible {
		p.Progress = 1
		return
	}
	target := float32(0)
	if focused {
		target = 1
	}
	delta := p.Speed * dt
	switch {
	case p.Progress < target:
		p.Progress = minf(target, p.Progress+delta)
	case p.Progress > target:
		p.Progress = maxf(target, p.Progress-delta)
	}
}

// Visible reports whether any part of the list is on screen.
func (p PopoutState) Visible() bool {
	return p.Behavior == PopoutAlwaysVisible || p.Progress > 0
}

// ResumeBehavior decides where the cursor starts when a list is re-entered.
type ResumeBehavior int

const (
	ResumeFirst ResumeBehavior = iota
	ResumeLastUsed
)

// ListItem is one row of a ListInterface. Value is a non-owning reference
// into the shared ValueStore.
type ListItem struct {
	Label      string
	Kind       ItemKind
	Selectable Selectable
	Editable   Editable
	Value      Handle

	Range      SliderRange
	OnActivate func(*ValueStore) OperatorResult
	Sub        ListID
}

// ListInterface is a vertical list of items with a selection cursor.
// Entry order is both visual order and navigation order.
type ListInterface struct {
	Style         ListStyle
	Anchor        ListAnchor
	Focused       bool
	Popout        PopoutState
	Resume        ResumeBehavior
	SelectedIndex int
	Entries       []ListItem
	RenderGroup   int

	// ActivatedIndex is the entry whose sub-list is open, or -1.
	ActivatedIndex int
}

// NewListInterface creates an empty left-anchored list drawing into the
// given render group.
func NewListInterface(renderGroup int) *ListInterface {
	return &ListInterface{
		Style:       DefaultListStyle(),
		Anchor:      AnchorLeft,
		Popout:      DefaultPopout(),
		Resume:      ResumeFirst,
		RenderGroup: renderGroup,

		ActivatedIndex: -1,
	}
}

// ItemState returns the style state entry i is drawn with.
func (l *ListInterface) ItemState(i int) ItemState {
	switch {
	case i == l.ActivatedIndex:
		return ItemActivated
	case i == l.SelectedIndex:
		return ItemSelected
	case !bool(l.Entries[i].Selectable):
		return ItemDisabled
	default:
		return ItemUnselected
	}
}

// Len returns the number of entries.
func (l *ListInterface) Len() int { return len(l.Entries) }

// Selected returns the entry under the cursor.
func (l *ListInterface) Selected() (*ListItem, bool) {
	if l.SelectedIndex < 0 || l.SelectedIndex >= len(l.Entries) {
		return nil, false
	}
	return &l.Entries[l.SelectedIndex], true
}

// AddLabeledValue appends a selectable, read-only text entry.
func (l *ListInterface) AddLabeledValue(label string, value Handle) {
	l.AddEntry(label, ItemText, ItemSelectable, ItemNotEditable, value)
}

// AddEntry appends an entry with explicit semantics.
func (l *ListInterface) AddEntry(label string, kind ItemKind, selectable Selectable, editable Editable, value Handle) {
	l.Entries = append(l.Entries, ListItem{
		Label:      label,
		Kind:       kind,
		Selectable: selectable,
		Editable:   editable,
		Value:      value,
		Sub:        NoList,
	})
}

// AddCheckBox appends an editable checkbox bound to a bool value.
func (l *ListInterface) AddCheckBox(label string, value Handle) {
	l.AddEntry(label, ItemCheckBox, ItemSelectable, ItemEditable, value)
}

// AddSlider appends an editable slider bound to a numeric value.
func (l *ListInterface) AddSlider(label string, value Handle, r SliderRange) {
	l.AddEntry(label, ItemSlider, ItemSelectable, ItemEditable, value)
	l.Entries[len(l.Entries)-1].Range = r
}

// AddButton appends a button. value may be zero.
func (l *ListInterface) AddButton(label string, value Handle, fn func(*ValueStore) OperatorResult) {
	l.AddEntry(label, ItemButton, ItemSelectable, ItemNotEditable, value)
	l.Entries[len(l.Entries)-1].OnActivate = fn
}

// AddSubList appends an entry that opens sub when activated.
func (l *ListInterface) AddSubList(label string, sub ListID) {
	l.AddEntry(label, ItemSubList, ItemSelectable, ItemNotEditable, Handle{})
	l.Entries[len(l.Entries)-1].Sub = sub
}

// AddRowGroup appends an entry that shows the entries of group in one row.
func (l *ListInterface) AddRowGroup(label string, group ListID) {
	l.AddEntry(label, ItemRowGroup, ItemNotSelectable, ItemNotEditable, Handle{})
	l.Entries[len(l.Entries)-1].Sub = group
}

// ListArena owns every ListInterface; lists refer to each other by ListID.
type ListArena struct {
	lists []*ListInterface
}

// Add stores l and returns its ID.
func (a *ListArena) Add(l *ListInterface) ListID {
	a.lists = append(a.lists, l)
	return ListID(len(a.lists) - 1)
}

// Get returns the list for id, or nil.
func (a *ListArena) Get(id ListID) *ListInterface {
	if a == nil || id < 0 || int(id) >= len(a.lists) {
		return nil
	}
	return a.lists[id]
}

// Len returns the number of lists.
func (a *ListArena) Len() int {
	if a == nil {
		return 0
	}
	return len(a.lists)
}

func minf(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}
