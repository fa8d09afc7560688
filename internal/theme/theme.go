// Package theme holds the color palettes and Lip Gloss styles shared by the
// full-screen views.
package theme

import (
	"fmt"
	"sort"

	"github.com/charmbracelet/lipgloss"

	"github.com/conn-castle/launch/internal/messages"
)

// Default is the theme used when none is configured.
const Default = "latte"

// Palette is a complete color theme.
type Palette struct {
	Name string

	Background lipgloss.Color
	Text       lipgloss.Color
	Muted      lipgloss.Color
	Subtle     lipgloss.Color
	Border     lipgloss.Color

	Accent    lipgloss.Color
	Secondary lipgloss.Color
	Highlight lipgloss.Color

	Success lipgloss.Color
	Warning lipgloss.Color
	Error   lipgloss.Color

	// Logo holds the four stops of the logo gradient, top to bottom.
	Logo [4]lipgloss.Color
}

// Latte is Catppuccin Latte.
var Latte = Palette{
	Name:       "latte",
	Background: "#eff1f5",
	Text:       "#4c4f69",
	Muted:      "#6c6f85",
	Subtle:     "#8c8fa1",
	Border:     "#bcc0cc",
	Accent:     "#8839ef", // mauve
	Secondary:  "#1e66f5", // blue
	Highlight:  "#209fb5", // sapphire
	Success:    "#40a02b",
	Warning:    "#df8e1d",
	Error:      "#d20f39",
	Logo:       [4]lipgloss.Color{"#8839ef", "#1e66f5", "#209fb5", "#40a02b"},
}

// TokyoNightMoon is the Tokyo Night "moon" variant.
var TokyoNightMoon = Palette{
	Name:       "tokyo-night-moon",
	Background: "#222436",
	Text:       "#c8d3f5",
	Muted:      "#7a88cf", // comment
	Subtle:     "#636da6",
	Border:     "#444a73", // terminal black
	Accent:     "#c099ff", // purple
	Secondary:  "#82aaff", // blue
	Highlight:  "#86e1fc", // cyan
	Success:    "#c3e88d",
	Warning:    "#ffc777",
	Error:      "#ff757f",
	Logo:       [4]lipgloss.Color{"#c099ff", "#82aaff", "#86e1fc", "#c3e88d"},
}

var palettes = map[string]Palette{
	Latte.Name:          Latte,
	TokyoNightMoon.Name: TokyoNightMoon,
}

// Lookup returns the palette called name. An empty name selects Default.
func Lookup(name string) (Palette, error) {
	if name == "" {
		name = Default
	}
	p, ok := palettes[name]
	if !ok {
		return Palette{}, fmt.Errorf(messages.ThemeUnknownFmt, name)
	}
	return p, nil
}

// MustLookup is Lookup that falls back to Default for unknown names.
func MustLookup(name string) Palette {
	p, err := Lookup(name)
	if err != nil {
		return Latte
	}
	return p
}

// Names returns the available theme names, sorted.
func Names() []string {
	names := make([]string, 0, len(palettes))
	for name := range palettes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ProgressGradient returns the two colors of the progress bar gradient.
func (p Palette) ProgressGradient() (string, string) {
	return string(p.Secondary), string(p.Accent)
}
