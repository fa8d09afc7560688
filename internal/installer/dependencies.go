package installer

import (
	"fmt"
	"strings"

	"github.com/conn-castle/launch/internal/messages"
)

// DefaultDependencyNames are installed when no configuration overrides them.
var DefaultDependencyNames = []string{"git", "curl", "ansible"}

// DependencyList is an ordered, validated list of package names. The zero value is empty.
type DependencyList struct {
	names []string
}

// NewDependencyList validates names and returns them as a list.
// Names must be non-empty, unique, and must not look like flags.
func NewDependencyList(names ...string) (DependencyList, error) {
	if err := ValidateDependencies(names); err != nil {
		return DependencyList{}, err
	}
	return DependencyList{names: append([]string(nil), names...)}, nil
}

// DefaultDependencies returns git, curl, ansible.
func DefaultDependencies() DependencyList {
	return DependencyList{names: append([]string(nil), DefaultDependencyNames...)}
}

// ValidateDependencies checks a raw list of package names.
func ValidateDependencies(names []string) error {
	if len(names) == 0 {
		return ErrNoDependencies
	}
	seen := make(map[string]struct{}, len(names))
	for i, name := range names {
		if strings.TrimSpace(name) == "" || name != strings.TrimSpace(name) {
			return fmt.Errorf(messages.InstallerDependencyEmptyFmt, i+1)
		}
		if strings.HasPrefix(name, "-") {
			return fmt.Errorf(messages.InstallerDependencyFlagFmt, name)
		}
		if _, ok := seen[name]; ok {
			return fmt.Errorf(messages.InstallerDependencyDupFmt, name)
		}
		seen[name] = struct{}{}
	}
	return nil
}

// Len returns the number of dependencies.
func (d DependencyList) Len() int {
	return len(d.names)
}

// At returns the i-th dependency.
func (d DependencyList) At(i int) string {
	return d.names[i]
}

// Names returns a copy of the dependency names.
func (d DependencyList) Names() []string {
	return append([]string(nil), d.names...)
}

func (d DependencyList) String() string {
	return strings.Join(d.names, ", ")
}
