package main

import (
	"errors"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/conn-castle/launch/internal/config"
	"github.com/conn-castle/launch/internal/logging"
	"github.com/conn-castle/launch/internal/messages"
	"github.com/conn-castle/launch/internal/privilege"
	"github.com/conn-castle/launch/internal/terminal"
	"github.com/conn-castle/launch/internal/theme"
)

var (
	defaultPathsFunc = config.DefaultPaths
	isInteractive    = terminal.IsInteractive
	needsSecret      = privilege.NeedsSecret
)

const (
	flagConfig = "config"
	flagQuiet  = "quiet"
)

// globalFlags holds the persistent flags shared by every subcommand.
type globalFlags struct {
	configPath string
	quiet      bool
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}
	cmd := &cobra.Command{
		Use:           messages.RootUse,
		Short:         messages.RootShort,
		Long:          messages.RootLong,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !isInteractive() {
				return cmd.Help()
			}
			return runMenu(cmd, flags)
		},
	}
	cmd.Flags().BoolP("version", "v", false, messages.RootVersionFlag)
	cmd.PersistentFlags().StringVar(&flags.configPath, flagConfig, "", messages.RootConfigFlag)
	cmd.PersistentFlags().BoolVarP(&flags.quiet, flagQuiet, "q", false, messages.RootQuietFlag)

	cmd.AddCommand(
		newInstallCmd(flags),
		newWizardCmd(flags),
		newMenuCmd(flags),
		newDoctorCmd(flags),
	)
	return cmd
}

// resolvePaths returns the state locations and the config file selected by --config.
func (f *globalFlags) resolvePaths() (config.Paths, string, error) {
	paths, err := defaultPathsFunc()
	if err != nil {
		return config.Paths{}, "", err
	}
	if f.configPath == "" {
		return paths, paths.ConfigPath, nil
	}
	path, err := config.ExpandPath(f.configPath)
	if err != nil {
		return config.Paths{}, "", err
	}
	return paths, path, nil
}

// session is the loaded config and diagnostic logger for one command.
type session struct {
	paths      config.Paths
	configPath string
	cfg        *config.Config
	logger     *zap.Logger
	closeLog   func() error
}

// openSession loads the config and opens the log file. Strict loading is used
// unless lenient is set, in which case validation errors are tolerated.
func openSession(flags *globalFlags, lenient bool) (*session, error) {
	paths, configPath, err := flags.resolvePaths()
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(configPath)
	if err != nil && lenient && errors.Is(err, config.ErrConfigValidation) {
		cfg, err = config.LoadConfigLenient(configPath)
	}
	if err != nil {
		return nil, err
	}
	logFile, err := cfg.LogFile(paths)
	if err != nil {
		return nil, err
	}
	logger, closeLog, err := logging.New(logFile, cfg.Log.Level)
	if err != nil && lenient {
		logger, closeLog, err = logging.New(logFile, "")
	}
	if err != nil {
		return nil, err
	}
	return &session{
		paths:      paths,
		configPath: configPath,
		cfg:        cfg,
		logger:     logger,
		closeLog:   closeLog,
	}, nil
}

func (s *session) close() {
	_ = s.closeLog()
}

// palette returns the configured theme, falling back to the default for unknown names.
func (s *session) palette() theme.Palette {
	p, err := theme.Lookup(s.cfg.UI.Theme)
	if err != nil {
		return theme.MustLookup(theme.Default)
	}
	return p
}
