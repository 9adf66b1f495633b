package listui

import (
	"fmt"
	"math"
)

// Layout metrics in pixels. Rows have a fixed height; RowWidth is the
// assumed width used for anchoring and text boxes.
const (
	RowWidth   = 220
	RowHeight  = 40
	RowPadding = 4
	TextInset  = 2.5
)

// LayoutResult summarises one layout pass over a list.
type LayoutResult struct {
	Skipped      bool // hidden, popped out or zero-sized viewport
	X, Y         int32
	ContentWidth uint32
	Rows         int
	Texts        int // labels emitted
	Instances    int // rectangles emitted
}

// Origin returns the top-left pixel of a list anchored in a viewport of
// the given extent. The popout progress slides partially hidden lists
// towards their screen edge.
func Origin(anchor ListAnchor, popout PopoutState, extent Extent) (x, y int32) {
	w := int32(extent.W)
	switch anchor {
	case AnchorMiddle:
		x = w/2 - RowWidth/2
	case AnchorRight:
		x = w - RowWidth
	}
	if popout.Behavior == PopoutHiddenWhenUnfocused {
		slide := int32(math.Round(float64((1 - clampf(popout.Progress, 0, 1)) * RowWidth)))
		if anchor == AnchorRight {
			x += slide
		} else {
			x -= slide
		}
	}
	return x, 0
}

// LayoutList rebuilds the visual primitives of list: it clears group's
// instances, appends label and value texts to texts, then emits one
// background rectangle and one inset foreground rectangle per entry.
//
// texts is not cleared so several lists can share one collection per
// frame. The pass is a pure function of list, store and the text metrics;
// repeated calls with unchanged inputs produce identical output.
//
// A value handle that does not resolve is a broken binding; the wrapped
// ErrKeyNotFound is returned and the group is left partially filled.
func LayoutList(list *ListInterface, arena *ListArena, store *ValueStore, extent Extent, texts *TextCollection, group *RenderGroup) (LayoutResult, error) {
	if list.Anchor == AnchorHidden || !list.Popout.Visible() || extent.W == 0 || extent.H == 0 {
		return LayoutResult{Skipped: true}, nil
	}

	tlx, tly := Origin(list.Anchor, list.Popout, extent)
	res := LayoutResult{X: tlx, Y: tly, Rows: len(list.Entries)}
	group.Instances.Clear()
	firstText := texts.Len()

	var maxWidth float32
	var yOffset int32
	for i := range list.Entries {
		item := &list.Entries[i]
		fg := list.Style.Pair(list.ItemState(i)).FG
		top := float32(tly+yOffset) + TextInset

		width, err := layoutRow(item, arena, store, texts, float32(tlx), top, fg)
		if err != nil {
			return res, err
		}
		maxWidth = maxf(maxWidth, width)
		yOffset += RowHeight
	}
	res.ContentWidth = uint32(math.Ceil(float64(maxWidth)))
	res.Texts = texts.Len() - firstText

	bg := UnitSquareTransform(PixelRect{
		X:      tlx,
		Y:      tly,
		W:      res.ContentWidth,
		H:      uint32(RowHeight * len(list.Entries)),
		Extent: extent,
	})
	if err := group.AddNew(bg, 0, 0, list.Style.Background); err != nil {
		return res, fmt.Errorf("layout background: %w", err)
	}

	fgWidth := uint32(0)
	if res.ContentWidth > 2*RowPadding {
		fgWidth = res.ContentWidth - 2*RowPadding
	}
	yOffset = 0
	for i := range list.Entries {
		rect := UnitSquareTransform(PixelRect{
			X:      tlx + RowPadding,
			Y:      tly + yOffset + RowPadding,
			W:      fgWidth,
			H:      RowHeight - 2*RowPadding,
			Extent: extent,
		})
		if err := group.AddNew(rect, 0, 0, list.Style.Pair(list.ItemState(i)).BG); err != nil {
			return res, fmt.Errorf("layout entry %d: %w", i, err)
		}
		yOffset += RowHeight
	}
	res.Instances = group.Instances.Len()

	if verbose() {
		logger.Debug("layout list",
			"anchor", list.Anchor,
			"rows", res.Rows,
			"width", res.ContentWidth,
			"texts", res.Texts,
			"instances", res.Instances)
	}
	return res, nil
}

// layoutRow emits the texts of one entry starting at (left, top) and
// returns the combined advance width.
func layoutRow(item *ListItem, arena *ListArena, store *ValueStore, texts *TextCollection, left, top float32, fg Color) (float32, error) {
	x := left + TextInset
	width := float32(0)
	emit := func(s string) {
		idx := texts.NewText(TextRect{Left: x + width, Top: top, Width: RowWidth, Height: RowHeight}, s, 1, fg)
		width += texts.Label(idx).Width
	}

	emit(item.Label + ": ")

	if item.Kind == ItemRowGroup {
		if row := arena.Get(item.Sub); row != nil {
			for j := range row.Entries {
				child := &row.Entries[j]
				emit(child.Label + ": ")
				s, err := valueText(child, store)
				if err != nil {
					return 0, err
				}
				emit(s + " ")
			}
			return width, nil
		}
	}

	s, err := valueText(item, store)
	if err != nil {
		return 0, err
	}
	emit(s)
	return width, nil
}

// valueText resolves the display text of an entry's bound value.
func valueText(item *ListItem, store *ValueStore) (string, error) {
	if item.Value.IsZero() {
		switch item.Kind {
		case ItemSubList:
			return ">", nil
		case ItemButton, ItemRowGroup:
			return "", nil
		}
	}
	v, err := store.Load(item.Value)
	if err != nil {
		return "", fmt.Errorf("layout entry %q: %w", item.Label, err)
	}
	return FormatValue(v), nil
}
