package wizard

import (
	"github.com/conn-castle/launch/internal/config"
	"github.com/conn-castle/launch/internal/installer"
	"github.com/conn-castle/launch/internal/theme"
)

// Choices tracks user selections in the configure step.
type Choices struct {
	Dependencies        []string
	DependenciesTouched bool

	Theme        string
	ThemeTouched bool
}

// NewChoices returns choices seeded from cfg.
func NewChoices(cfg *config.Config) *Choices {
	c := &Choices{Theme: theme.Default}
	if cfg == nil {
		c.Dependencies = append([]string(nil), installer.DefaultDependencyNames...)
		return c
	}
	c.Dependencies = append([]string(nil), cfg.Install.Dependencies...)
	if cfg.UI.Theme != "" {
		c.Theme = cfg.UI.Theme
	}
	return c
}

// Clone returns a deep copy.
func (c *Choices) Clone() *Choices {
	if c == nil {
		return nil
	}
	out := *c
	out.Dependencies = append([]string(nil), c.Dependencies...)
	return &out
}

// dependencyOptions lists the current dependencies followed by any default
// that is not already present.
func dependencyOptions(current []string) []string {
	seen := make(map[string]struct{}, len(current))
	options := make([]string, 0, len(current)+len(installer.DefaultDependencyNames))
	for _, name := range append(append([]string(nil), current...), installer.DefaultDependencyNames...) {
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		options = append(options, name)
	}
	return options
}

// mergeDependencies appends extra names to selected, dropping repeats.
func mergeDependencies(selected []string, extra []string) []string {
	seen := make(map[string]struct{}, len(selected)+len(extra))
	out := make([]string, 0, len(selected)+len(extra))
	for _, name := range append(append([]string(nil), selected...), extra...) {
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out
}
