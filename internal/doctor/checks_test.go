package doctor

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conn-castle/launch/internal/config"
	"github.com/conn-castle/launch/internal/messages"
	"github.com/conn-castle/launch/internal/testutil"
)

func defaultConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.LoadTemplateConfig()
	require.NoError(t, err)
	return cfg
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func asUser(t *testing.T, uid int) {
	t.Helper()
	orig := geteuid
	geteuid = func() int { return uid }
	t.Cleanup(func() { geteuid = orig })
}

// fakeDpkg puts a dpkg-query stub on an otherwise empty PATH. The stub reports
// "install ok installed" for the listed packages and exits 1 for the rest.
func fakeDpkg(t *testing.T, installed ...string) string {
	t.Helper()
	dir := t.TempDir()
	body := "for last; do :; done\ncase \"$last\" in\n"
	for _, name := range installed {
		body += "  " + name + ") printf 'install ok installed'; exit 0 ;;\n"
	}
	body += "  held) printf 'hold ok half-installed'; exit 0 ;;\n"
	body += "esac\necho \"dpkg-query: no packages found matching $last\" >&2\nexit 1\n"
	testutil.WriteScript(t, dir, "dpkg-query", body)
	t.Setenv("PATH", dir)
	return dir
}

func TestCheckConfigMissingFileUsesDefaults(t *testing.T) {
	results, cfg := CheckConfig(filepath.Join(t.TempDir(), "absent.toml"))
	require.NotNil(t, cfg)
	require.Len(t, results, 1)
	assert.Equal(t, StatusOK, results[0].Status)
	assert.Equal(t, messages.DoctorConfigDefaults, results[0].Message)
}

func TestCheckConfigLoaded(t *testing.T) {
	path := writeConfig(t, "[ui]\ntheme = \"tokyo-night-moon\"\n")
	results, cfg := CheckConfig(path)
	require.NotNil(t, cfg)
	assert.Equal(t, "tokyo-night-moon", cfg.UI.Theme)
	assert.Equal(t, StatusOK, results[0].Status)
	assert.Contains(t, results[0].Message, path)
}

func TestCheckConfigSyntaxError(t *testing.T) {
	path := writeConfig(t, "[install\n")
	results, cfg := CheckConfig(path)
	assert.Nil(t, cfg)
	require.Len(t, results, 1)
	assert.Equal(t, StatusFail, results[0].Status)
	assert.Contains(t, results[0].Recommendation, path)
}

func TestCheckConfigValidationFallsBackToLenient(t *testing.T) {
	path := writeConfig(t, "[ui]\ntheme = \"solarized\"\n")
	results, cfg := CheckConfig(path)
	require.NotNil(t, cfg)
	assert.Equal(t, "solarized", cfg.UI.Theme)
	require.Len(t, results, 1)
	assert.Equal(t, StatusFail, results[0].Status)
	assert.Equal(t, messages.DoctorConfigLoadLenientRecommend, results[0].Recommendation)
}

func TestCheckConfigUnknownKeys(t *testing.T) {
	path := writeConfig(t, "[install]\nrefresh-command = \"apt-get update\"\n\n[extra]\nx = 1\n")
	results, cfg := CheckConfig(path)
	require.NotNil(t, cfg)
	require.Len(t, results, 1)
	assert.Equal(t, StatusFail, results[0].Status)
	assert.Equal(t, "Unrecognized config keys: extra, install.refresh-command", results[0].Message)
	assert.Contains(t, results[0].Recommendation, "- extra (allowed keys: install, log, privilege, ui)")
	assert.Contains(t, results[0].Recommendation, "(did you mean install.refresh_command?)")
}

func TestCheckConfigLenientFailure(t *testing.T) {
	origStrict, origLenient := loadConfigFunc, loadConfigLenientFunc
	t.Cleanup(func() {
		loadConfigFunc = origStrict
		loadConfigLenientFunc = origLenient
	})
	loadConfigFunc = func(string) (*config.Config, error) {
		return nil, errors.Join(config.ErrConfigValidation, errors.New("bad"))
	}
	loadConfigLenientFunc = func(string) (*config.Config, error) { return nil, errors.New("unreadable") }

	results, cfg := CheckConfig("/nowhere/config.toml")
	assert.Nil(t, cfg)
	assert.Contains(t, results[0].Message, "unreadable")
}

func TestCheckPrivilege(t *testing.T) {
	cfg := defaultConfig(t)

	asUser(t, 0)
	results := CheckPrivilege(cfg)
	assert.Equal(t, StatusOK, results[0].Status)
	assert.Equal(t, messages.DoctorPrivilegeRoot, results[0].Message)

	asUser(t, 1000)
	dir := t.TempDir()
	t.Setenv("PATH", dir)
	results = CheckPrivilege(cfg)
	assert.Equal(t, StatusFail, results[0].Status)
	assert.Contains(t, results[0].Message, "sudo")

	testutil.WriteStub(t, dir, "sudo")
	results = CheckPrivilege(cfg)
	assert.Equal(t, StatusOK, results[0].Status)
	assert.Contains(t, results[0].Message, filepath.Join(dir, "sudo"))
}

func TestCheckPackageManager(t *testing.T) {
	cfg := defaultConfig(t)
	dir := t.TempDir()
	t.Setenv("PATH", dir)

	results := CheckPackageManager(cfg)
	require.Len(t, results, 1, "refresh and install share apt-get")
	assert.Equal(t, StatusFail, results[0].Status)

	testutil.WriteStub(t, dir, "apt-get")
	results = CheckPackageManager(cfg)
	require.Len(t, results, 1)
	assert.Equal(t, StatusOK, results[0].Status)

	cfg.Install.RefreshCommand = "apt-get update && reboot"
	results = CheckPackageManager(cfg)
	require.Len(t, results, 2)
	assert.Equal(t, StatusFail, results[0].Status)
	assert.Equal(t, StatusOK, results[1].Status)
}

func TestCheckDependencies(t *testing.T) {
	cfg := defaultConfig(t)
	cfg.Install.Dependencies = []string{"git", "curl", "held"}
	fakeDpkg(t, "git")

	results := CheckDependencies(context.Background(), cfg)
	require.Len(t, results, 3)
	assert.Equal(t, StatusOK, results[0].Status)
	assert.Equal(t, "git is installed", results[0].Message)
	assert.Equal(t, StatusWarn, results[1].Status)
	assert.Equal(t, "curl is not installed (unknown package)", results[1].Message)
	assert.Equal(t, StatusWarn, results[2].Status)
	assert.Equal(t, "held is not installed (hold ok half-installed)", results[2].Message)
	assert.False(t, Failed(results))
	assert.True(t, Warned(results))
}

func TestCheckDependenciesWithoutDpkg(t *testing.T) {
	t.Setenv("PATH", t.TempDir())
	results := CheckDependencies(context.Background(), defaultConfig(t))
	require.Len(t, results, 1)
	assert.Equal(t, StatusWarn, results[0].Status)
	assert.Equal(t, messages.DoctorDependencyQueryMissing, results[0].Message)
}

func TestCheckDependenciesInvalidList(t *testing.T) {
	cfg := defaultConfig(t)
	cfg.Install.Dependencies = []string{"git", "git"}
	results := CheckDependencies(context.Background(), cfg)
	require.Len(t, results, 1)
	assert.Equal(t, StatusFail, results[0].Status)
}

func TestCheckLogDir(t *testing.T) {
	cfg := defaultConfig(t)
	dir := filepath.Join(t.TempDir(), "state", "launch")
	paths := config.Paths{LogPath: filepath.Join(dir, "launch.log")}

	results := CheckLogDir(cfg, paths)
	assert.Equal(t, StatusOK, results[0].Status)
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "probe file is removed")

	orig := createTemp
	createTemp = func(string, string) (*os.File, error) { return nil, os.ErrPermission }
	t.Cleanup(func() { createTemp = orig })
	results = CheckLogDir(cfg, paths)
	assert.Equal(t, StatusFail, results[0].Status)
	assert.Equal(t, messages.DoctorLogRecommend, results[0].Recommendation)
}

func TestRunStopsWithoutConfig(t *testing.T) {
	path := writeConfig(t, "not toml at all [")
	results := Run(context.Background(), Options{ConfigPath: path})
	require.Len(t, results, 1)
	assert.True(t, Failed(results))
}

func TestRunAllChecks(t *testing.T) {
	asUser(t, 0)
	dir := fakeDpkg(t, "git", "curl", "ansible")
	testutil.WriteStub(t, dir, "apt-get")
	state := t.TempDir()

	results := Run(context.Background(), Options{
		ConfigPath: filepath.Join(t.TempDir(), "config.toml"),
		Paths:      config.Paths{LogPath: filepath.Join(state, "launch.log")},
	})
	var names []string
	for _, r := range results {
		names = append(names, r.CheckName)
		assert.Equal(t, StatusOK, r.Status, r.Message)
	}
	assert.Equal(t, []string{
		messages.DoctorCheckNameConfig,
		messages.DoctorCheckNamePrivilege,
		messages.DoctorCheckNamePackageManager,
		messages.DoctorCheckNameDependency,
		messages.DoctorCheckNameDependency,
		messages.DoctorCheckNameDependency,
		messages.DoctorCheckNameLog,
	}, names)
}
