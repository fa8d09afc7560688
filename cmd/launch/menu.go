package main

import (
	"github.com/spf13/cobra"

	"github.com/conn-castle/launch/internal/menu"
	"github.com/conn-castle/launch/internal/messages"
)

var runMenuModelFunc = menu.Run

func newMenuCmd(global *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   messages.MenuUse,
		Short: messages.MenuShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMenu(cmd, global)
		},
	}
}

// runMenu shows the main menu until the user exits. Install Dependencies runs
// the wizard and then returns to the menu.
func runMenu(cmd *cobra.Command, global *globalFlags) error {
	s, err := openSession(global, true)
	if err != nil {
		return err
	}
	palette := s.palette()
	s.close()

	for {
		choice, err := runMenuModelFunc(palette, cmd.OutOrStdout())
		if err != nil {
			return err
		}
		if choice != menu.EntryInstallDependencies {
			return nil
		}
		if err := runWizard(cmd, global); err != nil {
			return err
		}
	}
}
