// Package config loads and validates the launch configuration file.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mattn/go-shellwords"

	"github.com/conn-castle/launch/internal/installer"
	"github.com/conn-castle/launch/internal/messages"
	"github.com/conn-castle/launch/internal/privilege"
)

// Config is the parsed config.toml.
type Config struct {
	Install   InstallConfig   `toml:"install"`
	Privilege PrivilegeConfig `toml:"privilege"`
	UI        UIConfig        `toml:"ui"`
	Log       LogConfig       `toml:"log"`
}

// InstallConfig describes what gets installed and how.
type InstallConfig struct {
	Dependencies   []string `toml:"dependencies"`
	RefreshCommand string   `toml:"refresh_command"`
	InstallCommand string   `toml:"install_command"`
	Env            []string `toml:"env"`
}

// PrivilegeConfig selects the elevation tool.
type PrivilegeConfig struct {
	Command string `toml:"command"`
}

// UIConfig holds presentation settings.
type UIConfig struct {
	Theme string `toml:"theme"`
}

// LogConfig controls the diagnostic log file.
type LogConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// DependencyList returns the configured dependencies as a validated list.
func (c *Config) DependencyList() (installer.DependencyList, error) {
	return installer.NewDependencyList(c.Install.Dependencies...)
}

// RefreshCommand returns the parsed package-index refresh command.
func (c *Config) RefreshCommand() (privilege.Command, error) {
	return c.command(c.Install.RefreshCommand)
}

// InstallCommand returns the parsed install command. The package name is appended per dependency.
func (c *Config) InstallCommand() (privilege.Command, error) {
	return c.command(c.Install.InstallCommand)
}

func (c *Config) command(line string) (privilege.Command, error) {
	argv, err := SplitCommand(line)
	if err != nil {
		return privilege.Command{}, err
	}
	return privilege.Command{
		Name: argv[0],
		Args: argv[1:],
		Env:  append([]string(nil), c.Install.Env...),
	}, nil
}

// PrivilegeTool returns the configured elevation program, or the default.
func (c *Config) PrivilegeTool() string {
	if tool := strings.TrimSpace(c.Privilege.Command); tool != "" {
		return tool
	}
	return privilege.DefaultTool
}

// SplitCommand splits a command string into argv using shell quoting rules.
// Variables and command substitutions are not expanded.
func SplitCommand(line string) ([]string, error) {
	parser := shellwords.NewParser()
	parser.ParseEnv = false
	parser.ParseBacktick = false
	argv, err := parser.Parse(line)
	if err != nil {
		return nil, fmt.Errorf(messages.ConfigCommandParseFmt, line, err)
	}
	if parser.Position >= 0 {
		return nil, fmt.Errorf(messages.ConfigCommandOperatorFmt, line)
	}
	if len(argv) == 0 {
		return nil, errors.New(messages.ConfigCommandEmpty)
	}
	return argv, nil
}
