package messages

// Wizard titles, prompts, and notes.
const (
	WizardRequiresTerminal   = "the wizard requires an interactive terminal"
	WizardExitWithoutChanges = "Exited without changes."
	WizardExitAfterInstall   = "Exited. Dependencies are installed; the config was not changed."
	WizardFirstStepExitTitle = "Exit the setup wizard?"

	WizardWelcomeTitle   = "Welcome to launch"
	WizardWelcomeBodyFmt = "This wizard prepares the machine for the rest of the setup.\n\nIt will refresh the package lists and install, in order:\n%s\n\nYou will be asked for your sudo password once. It is only passed to sudo and is never stored."
	WizardWelcomeItemFmt = "  • %s"

	WizardPasswordTitle    = "sudo password"
	WizardInstallTitle     = "Installing dependencies"
	WizardInstalledTitle   = "Dependencies installed"
	WizardInstalledBody    = "Everything is installed. Continue to adjust the configuration."
	WizardInstallRetryFmt  = "Installation failed: %s\n\nRun the whole installation again?"
	WizardInstallFailedFmt = "install failed: %w"

	WizardDependenciesTitle = "Packages to install on future runs"
	WizardExtraPackages     = "Additional packages (space separated, optional)"
	WizardExtraPackagesFmt  = "additional packages: %w"
	WizardThemeTitle        = "Color theme"
	WizardPreviewTitle      = "Proposed config changes"
	WizardNoChanges         = "No rewrites needed. The config already matches the selected changes."
	WizardConfirmWrite      = "Write the new config?"
	WizardConfigWrittenFmt  = "Wrote %s"

	WizardFinishTitle       = "All set"
	WizardFinishBody        = "The machine is ready. Run `launch menu` for the remaining setup tasks."
	WizardFinishSkippedBody = "The machine is ready. The config was left unchanged."

	WizardLoadConfigFailedFmt   = "failed to load config: %w"
	WizardParseConfigFailedFmt  = "parse config: %w"
	WizardPatchConfigFailedFmt  = "failed to patch config: %w"
	WizardWriteConfigFailedFmt  = "failed to write config: %w"
	WizardReadTemplateFailedFmt = "read config template: %w"
	WizardUnknownThemeFmt       = "unknown theme selection: %q"
	WizardNoDependencies        = "select at least one package"
	WizardInvalidInputTitle     = "Invalid input"
	WizardUnknownStepFmt        = "unknown wizard step %d"
	WizardNoInstaller           = "wizard requires an installer"

	WizardProgressCancelling = "Cancelling after the current step..."
	WizardProgressDone       = "Done."
	WizardProgressFailedFmt  = "Failed: %s"
	WizardProgressNoOutput   = "Waiting for output..."
	WizardProgressUnexpected = "installation ended without a result"
)
