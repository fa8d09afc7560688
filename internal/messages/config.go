package messages

// Config messages for configuration loading and validation.
const (
	// ConfigReadFileFmt formats config read errors.
	ConfigReadFileFmt           = "read config %s: %w"
	ConfigFailedReadTemplateFmt = "failed to read template config.toml: %w"
	ConfigInvalidConfigFmt      = "invalid config %s: %w"
	ConfigUnrecognizedKeysFmt   = "%s: unrecognized keys: %v."
	ConfigValidationGuidance    = "Run `launch wizard` to rewrite the config or fix it by hand."
	ConfigLenientLoadInfoFmt    = "Config has validation errors; %s loaded it leniently: %v"

	ConfigDependenciesRequiredFmt    = "%s: install.dependencies must list at least one package"
	ConfigDependencyInvalidFmt       = "%s: install.dependencies: %w"
	ConfigRefreshCommandInvalidFmt   = "%s: install.refresh_command: %w"
	ConfigInstallCommandInvalidFmt   = "%s: install.install_command: %w"
	ConfigCommandEmpty               = "command is empty"
	ConfigCommandOperatorFmt         = "%q: shell operators are not supported; configure a single command"
	ConfigCommandParseFmt            = "parse %q: %w"
	ConfigEnvEntryInvalidFmt         = "%s: install.env[%d] must be KEY=VALUE (got %q)"
	ConfigPrivilegeCommandInvalidFmt = "%s: privilege.command must be a single program name (got %q)"
	ConfigThemeInvalidFmt            = "%s: ui.theme must be one of %s (got %q)"
	ConfigLogLevelInvalidFmt         = "%s: log.level must be one of debug, info, warn, error (got %q)"
	ConfigLogFileInvalidFmt          = "%s: log.file: %w"

	ConfigThemeLatteDescription          = "Catppuccin Latte, a light palette"
	ConfigThemeTokyoNightMoonDescription = "Tokyo Night Moon, a dark palette"
	ConfigLogLevelDebugDescription       = "Every step, command, and exit code"
	ConfigLogLevelInfoDescription        = "Run start, step results, and failures"
	ConfigLogLevelWarnDescription        = "Warnings and failures only"
	ConfigLogLevelErrorDescription       = "Failures only"
)
