package doctor

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"golang.org/x/sys/unix"

	"github.com/conn-castle/launch/internal/config"
	"github.com/conn-castle/launch/internal/messages"
	"github.com/conn-castle/launch/internal/privilege"
)

const (
	dpkgQuery       = "dpkg-query"
	dpkgInstalledOK = "install ok installed"
)

var (
	loadConfigFunc        = config.Load
	loadConfigLenientFunc = config.LoadConfigLenient
	lookPath              = exec.LookPath
	geteuid               = unix.Geteuid
	execCommandContext    = exec.CommandContext
	mkdirAll              = os.MkdirAll
	createTemp            = os.CreateTemp
)

// Options selects the config and state locations to inspect.
type Options struct {
	ConfigPath string
	Paths      config.Paths
}

// Run executes every check in display order. Checks that need a config are skipped
// when it cannot be loaded even leniently.
func Run(ctx context.Context, opts Options) []Result {
	results, cfg := CheckConfig(opts.ConfigPath)
	if cfg == nil {
		return results
	}
	results = append(results, CheckPrivilege(cfg)...)
	results = append(results, CheckPackageManager(cfg)...)
	results = append(results, CheckDependencies(ctx, cfg)...)
	results = append(results, CheckLogDir(cfg, opts.Paths)...)
	return results
}

// CheckConfig validates that the configuration file can be loaded and parsed.
// When strict loading fails but lenient loading succeeds, CheckConfig returns a FAIL
// result and the leniently loaded config so the remaining checks still run.
func CheckConfig(path string) ([]Result, *config.Config) {
	cfg, err := loadConfigFunc(path)
	if err == nil {
		msg := fmt.Sprintf(messages.DoctorConfigLoadedFmt, path)
		if _, statErr := os.Stat(path); errors.Is(statErr, fs.ErrNotExist) {
			msg = messages.DoctorConfigDefaults
		}
		return []Result{{
			Status:    StatusOK,
			CheckName: messages.DoctorCheckNameConfig,
			Message:   msg,
		}}, cfg
	}

	if !errors.Is(err, config.ErrConfigValidation) {
		return []Result{{
			Status:         StatusFail,
			CheckName:      messages.DoctorCheckNameConfig,
			Message:        fmt.Sprintf(messages.DoctorConfigLoadFailedFmt, err),
			Recommendation: fmt.Sprintf(messages.DoctorConfigLoadRecommendFmt, path),
		}}, nil
	}

	lenient, lenientErr := loadConfigLenientFunc(path)
	if lenientErr != nil {
		return []Result{{
			Status:         StatusFail,
			CheckName:      messages.DoctorCheckNameConfig,
			Message:        fmt.Sprintf(messages.DoctorConfigLoadFailedFmt, lenientErr),
			Recommendation: fmt.Sprintf(messages.DoctorConfigLoadRecommendFmt, path),
		}}, nil
	}

	result := Result{
		Status:         StatusFail,
		CheckName:      messages.DoctorCheckNameConfig,
		Message:        fmt.Sprintf(messages.DoctorConfigLoadFailedFmt, err),
		Recommendation: messages.DoctorConfigLoadLenientRecommend,
	}
	if details, keysErr := configUnknownKeys(path); keysErr == nil && len(details) > 0 {
		result.Message = summarizeUnknownKeys(details)
		result.Recommendation = formatUnknownKeyRecommendation(path, details)
	}
	return []Result{result}, lenient
}

// CheckPrivilege verifies that the elevation tool can be found, unless launch runs as root.
func CheckPrivilege(cfg *config.Config) []Result {
	if geteuid() == 0 {
		return []Result{{
			Status:    StatusOK,
			CheckName: messages.DoctorCheckNamePrivilege,
			Message:   messages.DoctorPrivilegeRoot,
		}}
	}
	tool := cfg.PrivilegeTool()
	path, err := lookPath(tool)
	if err != nil {
		return []Result{{
			Status:         StatusFail,
			CheckName:      messages.DoctorCheckNamePrivilege,
			Message:        fmt.Sprintf(messages.DoctorPrivilegeMissingFmt, tool),
			Recommendation: messages.DoctorPrivilegeMissingRecommend,
		}}
	}
	return []Result{{
		Status:    StatusOK,
		CheckName: messages.DoctorCheckNamePrivilege,
		Message:   fmt.Sprintf(messages.DoctorPrivilegeFoundFmt, path),
	}}
}

// CheckPackageManager verifies that the refresh and install programs are on PATH.
func CheckPackageManager(cfg *config.Config) []Result {
	var results []Result
	var names []string
	seen := make(map[string]bool)
	for _, parse := range []func() (privilege.Command, error){cfg.RefreshCommand, cfg.InstallCommand} {
		cmd, err := parse()
		if err != nil {
			results = append(results, Result{
				Status:         StatusFail,
				CheckName:      messages.DoctorCheckNamePackageManager,
				Message:        fmt.Sprintf(messages.DoctorPackageManagerCommandFmt, err),
				Recommendation: messages.DoctorConfigLoadLenientRecommend,
			})
			continue
		}
		if !seen[cmd.Name] {
			seen[cmd.Name] = true
			names = append(names, cmd.Name)
		}
	}

	for _, name := range names {
		if _, err := lookPath(name); err != nil {
			results = append(results, Result{
				Status:         StatusFail,
				CheckName:      messages.DoctorCheckNamePackageManager,
				Message:        fmt.Sprintf(messages.DoctorPackageManagerMissingFmt, name),
				Recommendation: messages.DoctorPackageManagerRecommend,
			})
			continue
		}
		results = append(results, Result{
			Status:    StatusOK,
			CheckName: messages.DoctorCheckNamePackageManager,
			Message:   fmt.Sprintf(messages.DoctorPackageManagerFoundFmt, name),
		})
	}
	return results
}

// CheckDependencies reports the dpkg status of each configured dependency.
// The result is informational; installs never skip a package because of it.
func CheckDependencies(ctx context.Context, cfg *config.Config) []Result {
	deps, err := cfg.DependencyList()
	if err != nil {
		return []Result{{
			Status:         StatusFail,
			CheckName:      messages.DoctorCheckNameDependency,
			Message:        fmt.Sprintf(messages.DoctorDependencyListInvalidFmt, err),
			Recommendation: messages.DoctorConfigLoadLenientRecommend,
		}}
	}
	if _, err := lookPath(dpkgQuery); err != nil {
		return []Result{{
			Status:         StatusWarn,
			CheckName:      messages.DoctorCheckNameDependency,
			Message:        messages.DoctorDependencyQueryMissing,
			Recommendation: messages.DoctorDependencyQueryRecommend,
		}}
	}

	results := make([]Result, 0, deps.Len())
	for _, name := range deps.Names() {
		status := packageStatus(ctx, name)
		if status == dpkgInstalledOK {
			results = append(results, Result{
				Status:    StatusOK,
				CheckName: messages.DoctorCheckNameDependency,
				Message:   fmt.Sprintf(messages.DoctorDependencyInstalledFmt, name),
			})
			continue
		}
		results = append(results, Result{
			Status:         StatusWarn,
			CheckName:      messages.DoctorCheckNameDependency,
			Message:        fmt.Sprintf(messages.DoctorDependencyMissingFmt, name, status),
			Recommendation: messages.DoctorDependencyMissingRecommend,
		})
	}
	return results
}

// packageStatus returns the dpkg Status field for name. dpkg-query exits non-zero
// for packages it has never heard of.
func packageStatus(ctx context.Context, name string) string {
	out, err := execCommandContext(ctx, dpkgQuery, "-W", "-f=${Status}", name).Output()
	if err != nil {
		return messages.DoctorDependencyUnknownStatus
	}
	status := strings.TrimSpace(string(out))
	if status == "" {
		return messages.DoctorDependencyUnknownStatus
	}
	return status
}

// CheckLogDir verifies that a file can be created next to the configured log file.
func CheckLogDir(cfg *config.Config, paths config.Paths) []Result {
	file, err := cfg.LogFile(paths)
	if err != nil {
		return []Result{{
			Status:         StatusFail,
			CheckName:      messages.DoctorCheckNameLog,
			Message:        fmt.Sprintf(messages.DoctorLogPathFailedFmt, err),
			Recommendation: messages.DoctorLogRecommend,
		}}
	}
	dir := filepath.Dir(file)
	if err := probeWritable(dir); err != nil {
		return []Result{{
			Status:         StatusFail,
			CheckName:      messages.DoctorCheckNameLog,
			Message:        fmt.Sprintf(messages.DoctorLogNotWritableFmt, dir, err),
			Recommendation: messages.DoctorLogRecommend,
		}}
	}
	return []Result{{
		Status:    StatusOK,
		CheckName: messages.DoctorCheckNameLog,
		Message:   fmt.Sprintf(messages.DoctorLogWritableFmt, dir),
	}}
}

func probeWritable(dir string) error {
	if err := mkdirAll(dir, 0o755); err != nil {
		return err
	}
	f, err := createTemp(dir, ".launch-doctor-*")
	if err != nil {
		return err
	}
	name := f.Name()
	closeErr := f.Close()
	removeErr := os.Remove(name)
	return errors.Join(closeErr, removeErr)
}
