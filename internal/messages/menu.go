package messages

// Main menu labels and notices.
const (
	MenuInstallDependencies = "Install Dependencies"
	MenuInstallSoftware     = "Install Software"
	MenuOptimizer           = "Optimizer"
	MenuRunPlaybooks        = "Run Playbooks"
	MenuUtilities           = "Utilities"
	MenuFreshSetup          = "Fresh Setup (Unattended)"
	MenuMagicMenu           = "Magic Menu"
	MenuExit                = "Exit"

	MenuFooter             = "Press (Q) to exit, (M) for main menu"
	MenuNotAvailableFmt    = "You selected: %s\nThis feature is not available yet."
	MenuBackToMain         = "Back to Main Menu"
	MenuRequiresTerminal   = "the menu requires an interactive terminal"
	MenuUnexpectedModelFmt = "menu ended with unexpected model %T"
)
