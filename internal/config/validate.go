package config

import (
	"fmt"
	"strings"

	"github.com/conn-castle/launch/internal/installer"
	"github.com/conn-castle/launch/internal/messages"
)

// Validate ensures the config is complete and consistent.
// path is used for error context.
func (c *Config) Validate(path string) error {
	if len(c.Install.Dependencies) == 0 {
		return fmt.Errorf(messages.ConfigDependenciesRequiredFmt, path)
	}
	if err := installer.ValidateDependencies(c.Install.Dependencies); err != nil {
		return fmt.Errorf(messages.ConfigDependencyInvalidFmt, path, err)
	}
	if _, err := SplitCommand(c.Install.RefreshCommand); err != nil {
		return fmt.Errorf(messages.ConfigRefreshCommandInvalidFmt, path, err)
	}
	if _, err := SplitCommand(c.Install.InstallCommand); err != nil {
		return fmt.Errorf(messages.ConfigInstallCommandInvalidFmt, path, err)
	}
	for i, entry := range c.Install.Env {
		key, _, ok := strings.Cut(entry, "=")
		if !ok || key == "" || strings.ContainsAny(key, " \t") {
			return fmt.Errorf(messages.ConfigEnvEntryInvalidFmt, path, i, entry)
		}
	}
	if tool := c.Privilege.Command; tool != "" && (strings.TrimSpace(tool) != tool || strings.ContainsAny(tool, " \t")) {
		return fmt.Errorf(messages.ConfigPrivilegeCommandInvalidFmt, path, tool)
	}
	if !isValidOption("ui.theme", c.UI.Theme) {
		return fmt.Errorf(messages.ConfigThemeInvalidFmt, path, strings.Join(FieldOptionValues("ui.theme"), ", "), c.UI.Theme)
	}
	if !isValidOption("log.level", strings.ToLower(c.Log.Level)) {
		return fmt.Errorf(messages.ConfigLogLevelInvalidFmt, path, c.Log.Level)
	}
	if c.Log.File != "" {
		if _, err := ExpandPath(c.Log.File); err != nil {
			return fmt.Errorf(messages.ConfigLogFileInvalidFmt, path, err)
		}
	}
	return nil
}

// isValidOption checks the value against the config field catalog.
func isValidOption(key string, value string) bool {
	field, ok := LookupField(key)
	if !ok {
		return false
	}
	for _, opt := range field.Options {
		if opt.Value == value {
			return true
		}
	}
	return false
}
