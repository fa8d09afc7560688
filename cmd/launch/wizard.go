package main

import (
	"github.com/spf13/cobra"

	"github.com/conn-castle/launch/internal/messages"
	"github.com/conn-castle/launch/internal/secret"
	"github.com/conn-castle/launch/internal/wizard"
)

var runWizardFunc = wizard.Run

func newWizardCmd(global *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   messages.WizardUse,
		Short: messages.WizardShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWizard(cmd, global)
		},
	}
}

func runWizard(cmd *cobra.Command, global *globalFlags) error {
	s, err := openSession(global, true)
	if err != nil {
		return err
	}
	defer s.close()

	orch, err := newOrchestrator(s, false)
	if err != nil {
		return err
	}
	return runWizardFunc(cmd.Context(), wizard.NewHuhUI(s.palette()), wizard.Options{
		ConfigPath:  s.configPath,
		Installer:   installStarter{orch: orch, lock: s.paths.LockPath},
		Credentials: secret.EnvProvider{LookupEnv: lookupEnv},
		NeedsSecret: needsSecret(),
		Out:         cmd.OutOrStdout(),
	})
}
