package messages

// CLI messages for user-facing commands and prompts.
const (
	// RootUse is the CLI command name.
	RootUse = "launch"
	// RootShort is the short description for the root command.
	RootShort       = "Launch - Linux setup assistant"
	RootLong        = "Launch is your friendly Linux setup assistant. It installs a small set of essential tools through the system package manager and helps you configure them."
	RootVersionFlag = "Print version and exit"
	RootConfigFlag  = "Path to config.toml (default: $XDG_CONFIG_HOME/launch/config.toml)"
	RootQuietFlag   = "Suppress detail output from package manager commands"

	// VersionCommitFmt formats the commit hash for version display.
	VersionCommitFmt = "commit %s"
	VersionBuildFmt  = "built %s"
	VersionFullFmt   = "%s (%s)"
	VersionTemplate  = "{{.Version}}\n"

	// InstallUse is the install command name.
	InstallUse               = "install"
	InstallShort             = "Install the configured dependencies (package index refresh, then each package in order)"
	InstallFlagPasswordStdin = "Read the sudo password from the first line of stdin"
	InstallFlagDryRun        = "Print the commands that would run without executing them"
	InstallFlagYes           = "Do not ask for confirmation before installing"
	InstallConfirmPromptFmt  = "Install %s now?"
	InstallAborted           = "Installation cancelled."
	InstallPlanHeader        = "Dependencies to install:"
	InstallPlanItemFmt       = "  %d. %s\n"
	InstallPasswordPrompt    = "Enter your sudo password"
	InstallNeedsPassword     = "a sudo password is required; pass --password-stdin, set LAUNCH_SUDO_PASSWORD, or run in an interactive terminal"

	// WizardUse is the wizard command name.
	WizardUse   = "wizard"
	WizardShort = "Interactive setup wizard (Welcome, Install, Configure, Finish)"

	// MenuUse is the menu command name.
	MenuUse   = "menu"
	MenuShort = "Open the main menu"

	// ReporterStatusFmt formats a status line in plain output.
	ReporterStatusFmt   = "==> %s\n"
	ReporterProgressFmt = "[%3d%%] "
	ReporterDetailFmt   = "    %s\n"
	ReporterFailedFmt   = "An error occurred: %s\n"
	ReporterCompleted   = "Dependencies installed successfully!"
	ReporterNextStep    = "You're ready for the next step!"
)
