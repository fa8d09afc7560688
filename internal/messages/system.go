package messages

// System messages for path expansion and file writes.
const (
	PathsResolveHomeFmt = "resolve home dir: %w"
	PathsExpandFmt      = "expand path %s: %w"

	ThemeUnknownFmt = "unknown theme %q"

	FSCreateDirFmt  = "create directory %s: %w"
	FSCreateTempFmt = "create temp file for %s: %w"
	FSWriteTempFmt  = "write temp file for %s: %w"
	FSChmodFmt      = "set permissions on %s: %w"
	FSRenameFmt     = "replace %s: %w"
)
