// Package menu renders the launch main menu.
package menu

import "github.com/conn-castle/launch/internal/messages"

// EntryID identifies a main menu entry.
type EntryID int

const (
	EntryInstallDependencies EntryID = iota
	EntryInstallSoftware
	EntryOptimizer
	EntryRunPlaybooks
	EntryUtilities
	EntryFreshSetup
	EntryMagicMenu
	EntryExit
)

// Entry is one line of the main menu.
type Entry struct {
	ID    EntryID
	Label string
	// Available entries end the menu and hand control to the caller.
	// The rest open a placeholder screen.
	Available bool
}

// Entries returns the main menu in display order.
func Entries() []Entry {
	return []Entry{
		{ID: EntryInstallDependencies, Label: messages.MenuInstallDependencies, Available: true},
		{ID: EntryInstallSoftware, Label: messages.MenuInstallSoftware},
		{ID: EntryOptimizer, Label: messages.MenuOptimizer},
		{ID: EntryRunPlaybooks, Label: messages.MenuRunPlaybooks},
		{ID: EntryUtilities, Label: messages.MenuUtilities},
		{ID: EntryFreshSetup, Label: messages.MenuFreshSetup},
		{ID: EntryMagicMenu, Label: messages.MenuMagicMenu},
		{ID: EntryExit, Label: messages.MenuExit, Available: true},
	}
}

func (id EntryID) String() string {
	for _, e := range Entries() {
		if e.ID == id {
			return e.Label
		}
	}
	return "unknown"
}

// Logo is the banner shown above the menu.
var Logo = []string{
	"██╗      █████╗ ██╗   ██╗███╗   ██╗ ██████╗██╗  ██╗",
	"██║     ██╔══██╗██║   ██║████╗  ██║██╔════╝██║  ██║",
	"██║     ███████║██║   ██║██╔██╗ ██║██║     ███████║",
	"██║     ██╔══██║██║   ██║██║╚██╗██║██║     ██╔══██║",
	"███████╗██║  ██║╚██████╔╝██║ ╚████║╚██████╗██║  ██║",
	"╚══════╝╚═╝  ╚═╝ ╚═════╝ ╚═╝  ╚═══╝ ╚═════╝╚═╝  ╚═╝",
}
