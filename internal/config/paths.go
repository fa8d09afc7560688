package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mitchellh/go-homedir"

	"github.com/conn-castle/launch/internal/messages"
)

var (
	getenv  = os.Getenv
	homeDir = homedir.Dir
)

// Paths holds resolved locations for launch's files.
type Paths struct {
	ConfigDir  string
	ConfigPath string
	StateDir   string
	LogPath    string
	LockPath   string
}

// DefaultPaths resolves the XDG config and state locations for the current user.
func DefaultPaths() (Paths, error) {
	configHome, err := xdgDir("XDG_CONFIG_HOME", ".config")
	if err != nil {
		return Paths{}, err
	}
	stateHome, err := xdgDir("XDG_STATE_HOME", filepath.Join(".local", "state"))
	if err != nil {
		return Paths{}, err
	}
	configDir := filepath.Join(configHome, "launch")
	stateDir := filepath.Join(stateHome, "launch")
	return Paths{
		ConfigDir:  configDir,
		ConfigPath: filepath.Join(configDir, "config.toml"),
		StateDir:   stateDir,
		LogPath:    filepath.Join(stateDir, "launch.log"),
		LockPath:   filepath.Join(stateDir, "install.lock"),
	}, nil
}

// xdgDir returns $env when it is an absolute path, otherwise ~/fallback.
func xdgDir(env string, fallback string) (string, error) {
	if dir := getenv(env); filepath.IsAbs(dir) {
		return dir, nil
	}
	home, err := homeDir()
	if err != nil {
		return "", fmt.Errorf(messages.PathsResolveHomeFmt, err)
	}
	return filepath.Join(home, fallback), nil
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) (string, error) {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return "", fmt.Errorf(messages.PathsExpandFmt, path, err)
	}
	return expanded, nil
}

// LogFile returns the configured log file, or the default under paths.
func (c *Config) LogFile(paths Paths) (string, error) {
	if c.Log.File == "" {
		return paths.LogPath, nil
	}
	return ExpandPath(c.Log.File)
}
