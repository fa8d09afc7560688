package messages

// Doctor messages for the doctor command.
const (
	// DoctorUse is the doctor command name.
	DoctorUse   = "doctor"
	DoctorShort = "Check the elevation tool, package manager, config, and installed dependencies"

	DoctorHealthCheckFmt = "🏥 Checking launch health (config %s)...\n"

	DoctorCheckNameConfig         = "Config"
	DoctorCheckNamePrivilege      = "Privilege"
	DoctorCheckNamePackageManager = "Packages"
	DoctorCheckNameDependency     = "Dependency"
	DoctorCheckNameLog            = "Log"

	DoctorConfigLoadFailedFmt        = "Failed to load configuration: %v"
	DoctorConfigLoadRecommendFmt     = "Fix the TOML syntax in %s or delete it to use the defaults."
	DoctorConfigLoadLenientRecommend = "Run `launch wizard` to rewrite the config or fix it by hand."
	DoctorConfigLoadedFmt            = "Configuration loaded from %s"
	DoctorConfigDefaults             = "No config file; using built-in defaults"
	DoctorConfigUnknownKeysFmt       = "Unrecognized config keys: %s"
	DoctorConfigUnknownKeysHeaderFmt = "Edit %s to remove or rename them.\n\nDetected keys:"
	DoctorConfigUnknownKeyFmt        = "- %s (allowed keys: %s)"
	DoctorConfigUnknownKeyLeafFmt    = "- %s (no nested keys are allowed here)"
	DoctorConfigUnknownKeySuggestFmt = "%s (did you mean %s?)"

	DoctorPrivilegeRoot             = "Running as root; no elevation tool needed"
	DoctorPrivilegeFoundFmt         = "Elevation tool found: %s"
	DoctorPrivilegeMissingFmt       = "Elevation tool not found on PATH: %s"
	DoctorPrivilegeMissingRecommend = "Install sudo, or set privilege.command in the config to a sudo-compatible program."

	DoctorPackageManagerFoundFmt     = "Package manager command found: %s"
	DoctorPackageManagerMissingFmt   = "Package manager command not found on PATH: %s"
	DoctorPackageManagerRecommend    = "launch drives apt-get by default; set install.refresh_command and install.install_command for other systems."
	DoctorPackageManagerCommandFmt   = "Invalid package manager command: %v"
	DoctorDependencyInstalledFmt     = "%s is installed"
	DoctorDependencyMissingFmt       = "%s is not installed (%s)"
	DoctorDependencyUnknownStatus    = "unknown package"
	DoctorDependencyMissingRecommend = "Run `launch install` to install the configured dependencies."
	DoctorDependencyQueryMissing     = "dpkg-query not found; installed packages cannot be inspected"
	DoctorDependencyQueryRecommend   = "Dependency status is informational; `launch install` still works without dpkg."
	DoctorDependencyListInvalidFmt   = "Invalid dependency list: %v"

	DoctorLogWritableFmt    = "Log directory is writable: %s"
	DoctorLogNotWritableFmt = "Log directory is not writable: %s: %v"
	DoctorLogRecommend      = "Set log.file in the config to a writable location."
	DoctorLogPathFailedFmt  = "Failed to resolve log file: %v"

	DoctorFailureSummary = "❌ Some checks failed. Please address the items above."
	DoctorWarnSummary    = "⚠️  Checks passed with warnings."
	DoctorFailureError   = "doctor checks failed"
	DoctorSuccessSummary = "✅ All systems go. launch is ready."

	DoctorStatusOKLabel        = "[OK]  "
	DoctorStatusWarnLabel      = "[WARN]"
	DoctorStatusFailLabel      = "[FAIL]"
	DoctorResultLineFmt        = "%s %-10s %s\n"
	DoctorRecommendationPrefix = "       💡 "
	DoctorRecommendationIndent = "         "
)
