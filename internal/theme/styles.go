package theme

import "github.com/charmbracelet/lipgloss"

// Styles are the Lip Gloss styles derived from a palette.
type Styles struct {
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Text     lipgloss.Style
	Muted    lipgloss.Style
	Help     lipgloss.Style
	Error    lipgloss.Style
	Success  lipgloss.Style

	Selected   lipgloss.Style
	Unselected lipgloss.Style
	Disabled   lipgloss.Style

	// Panel frames the subprocess output.
	Panel lipgloss.Style
}

// Styles builds the style set for p.
func (p Palette) Styles() Styles {
	panel := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Border).
		Padding(0, 1)
	return Styles{
		Title:      lipgloss.NewStyle().Bold(true).Foreground(p.Accent),
		Subtitle:   lipgloss.NewStyle().Foreground(p.Secondary),
		Text:       lipgloss.NewStyle().Foreground(p.Text),
		Muted:      lipgloss.NewStyle().Foreground(p.Muted),
		Help:       lipgloss.NewStyle().Foreground(p.Subtle),
		Error:      lipgloss.NewStyle().Bold(true).Foreground(p.Error),
		Success:    lipgloss.NewStyle().Bold(true).Foreground(p.Success),
		Selected:   lipgloss.NewStyle().Bold(true).Foreground(p.Highlight),
		Unselected: lipgloss.NewStyle().Foreground(p.Text),
		Disabled:   lipgloss.NewStyle().Foreground(p.Subtle),
		Panel:      panel,
	}
}

// Gradient colors line i with logo stop i. Lines past the last stop reuse it.
func (p Palette) Gradient(lines []string) []string {
	out := make([]string, len(lines))
	for i, line := range lines {
		stop := min(i, len(p.Logo)-1)
		out[i] = lipgloss.NewStyle().Bold(true).Foreground(p.Logo[stop]).Render(line)
	}
	return out
}
