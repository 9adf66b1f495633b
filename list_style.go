package listui

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// ColorPair is the foreground (text) and background (row) color of one
// item state.
type ColorPair struct {
	FG Color
	BG Color
}

// ItemState selects which ColorPair an entry is drawn with.
type ItemState int

const (
	ItemUnselected ItemState = iota
	ItemSelected
	ItemActivated
	ItemDisabled
)

func (s ItemState) String() string {
	switch s {
	case ItemSelected:
		return "selected"
	case ItemActivated:
		return "activated"
	case ItemDisabled:
		return "disabled"
	default:
		return "unselected"
	}
}

// ListStyle defines the colors of a ListInterface.
type ListStyle struct {
	Background Color

	Selected   ColorPair
	Unselected ColorPair
	Activated  ColorPair
	Disabled   ColorPair
}

// DefaultListStyle returns the dark grey style lists start with.
func DefaultListStyle() ListStyle {
	return ListStyle{
		Background: ColorGreyDarkest,
		Selected:   ColorPair{FG: ColorWhite, BG: ColorGreyMedium},
		Unselected: ColorPair{FG: ColorGreyLight, BG: ColorGreyDark},
		Activated:  ColorPair{FG: ColorWhite, BG: ColorGreyLighter},
		Disabled:   ColorPair{FG: ColorGreyDark, BG: ColorGreyDarker},
	}
}

// Pair returns the color pair for an item state.
func (s ListStyle) Pair(state ItemState) ColorPair {
	switch state {
	case ItemSelected:
		return s.Selected
	case ItemActivated:
		return s.Activated
	case ItemDisabled:
		return s.Disabled
	default:
		return s.Unselected
	}
}

// styleFile mirrors the theme file layout. Empty strings keep the default.
//
//	background = "#030303"
//
//	[selected]
//	fg = "#ffffff"
//	bg = "#0f0f0f"
type styleFile struct {
	Background string    `toml:"background"`
	Selected   pairEntry `toml:"selected"`
	Unselected pairEntry `toml:"unselected"`
	Activated  pairEntry `toml:"activated"`
	Disabled   pairEntry `toml:"disabled"`
}

type pairEntry struct {
	FG string `toml:"fg"`
	BG string `toml:"bg"`
}

// ParseStyle decodes a TOML theme on top of DefaultListStyle.
func ParseStyle(data string) (ListStyle, error) {
	var f styleFile
	md, err := toml.Decode(data, &f)
	if err != nil {
		return ListStyle{}, fmt.Errorf("decode theme: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return ListStyle{}, fmt.Errorf("decode theme: unknown key %q", undecoded[0].String())
	}
	return f.apply(DefaultListStyle())
}

// LoadStyle reads a TOML theme file.
func LoadStyle(path string) (ListStyle, error) {
	var f styleFile
	md, err := toml.DecodeFile(path, &f)
	if err != nil {
		return ListStyle{}, fmt.Errorf("load theme %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return ListStyle{}, fmt.Errorf("load theme %s: unknown key %q", path, undecoded[0].String())
	}
	style, err := f.apply(DefaultListStyle())
	if err != nil {
		return ListStyle{}, fmt.Errorf("load theme %s: %w", path, err)
	}
	return style, nil
}

func (f styleFile) apply(s ListStyle) (ListStyle, error) {
	if err := setColor(&s.Background, f.Background); err != nil {
		return ListStyle{}, fmt.Errorf("background: %w", err)
	}
	pairs := []struct {
		name  string
		entry pairEntry
		dst   *ColorPair
	}{
		{"selected", f.Selected, &s.Selected},
		{"unselected", f.Unselected, &s.Unselected},
		{"activated", f.Activated, &s.Activated},
		{"disabled", f.Disabled, &s.Disabled},
	}
	for _, p := range pairs {
		if err := setColor(&p.dst.FG, p.entry.FG); err != nil {
			return ListStyle{}, fmt.Errorf("%s.fg: %w", p.name, err)
		}
		if err := setColor(&p.dst.BG, p.entry.BG); err != nil {
			return ListStyle{}, fmt.Errorf("%s.bg: %w", p.name, err)
		}
	}
	return s, nil
}

func setColor(dst *Color, hex string) error {
	if hex == "" {
		return nil
	}
	c, err := ParseHexColor(hex)
	if err != nil {
		return err
	}
	*dst = c
	return nil
}
