package messages

// Installer status text, errors, and privileged runner messages.
const (
	InstallerStatusRefreshing   = "Updating package lists..."
	InstallerStatusInstallFmt   = "Installing %s..."
	InstallerStatusCompleted    = "All dependencies installed successfully!"
	InstallerCancelled          = "installation cancelled"
	InstallerNoDependencies     = "dependency list is empty"
	InstallerRunnerRequired     = "privileged runner is required"
	InstallerRefreshRequired    = "refresh command is required"
	InstallerInstallRequired    = "install command is required"
	InstallerRefreshFailedFmt   = "package list refresh failed with exit code %d"
	InstallerInstallFailedFmt   = "installing %s failed with exit code %d"
	InstallerLaunchFailedFmt    = "could not start %s: %v"
	InstallerStderrSuffixFmt    = ": %s"
	InstallerDependencyEmptyFmt = "dependency %d is empty or has surrounding whitespace"
	InstallerDependencyFlagFmt  = "dependency %q must not start with '-'"
	InstallerDependencyDupFmt   = "dependency %q is listed more than once"
	InstallerRedactedSecret     = "********"

	PrivilegeCommandRequired = "command name is required"
	PrivilegeDryRunFmt       = "would run: %s"
	PrivilegeScanOutputFmt   = "read output of %s: %w"
	PrivilegeLineTruncated   = " [truncated]"

	SecretRedacted    = "[redacted]"
	SecretEmpty       = "credential is empty"
	SecretUnavailable = "no credential available"
	SecretReadFailed  = "read credential: %w"

	LockOpenFmt    = "open lock %s: %w"
	LockFmt        = "lock %s: %w"
	LockTimeoutFmt = "another launch installation is running (timed out waiting for lock after %s)"
	LockCreateDir  = "create lock dir: %w"

	LoggingUnknownLevelFmt = "unknown log level %q (expected debug, info, warn, or error)"
	LoggingCreateDirFmt    = "create log dir: %w"
	LoggingOpenFileFmt     = "open log file %s: %w"
)
