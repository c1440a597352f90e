package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/atikulmunna/logtally/internal/config"
)

// NewRootCmd builds the logtally command reading log files from fsys.
func NewRootCmd(fsys afero.Fs) *cobra.Command {
	v := viper.New()
	config.SetDefaults(v)

	var (
		cfgFile string
		verbose bool
		cfg     = config.Default()
		logger  = zap.NewNop()
	)

	cmd := &cobra.Command{
		Use:   "logtally <log-file-path> [log-level]",
		Short: "Count log file entries by level",
		Long: `logtally reads a plain-text log file whose lines look like

  2024-01-01 10:05:00 ERROR Connection failed

prints how many entries each level has, and, when a level is given,
lists the entries of that level.

Examples:
  logtally app.log
  logtally app.log error
  logtally app.log --sort count --output json`,
		Args:         cobra.MaximumNArgs(2),
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := readConfig(v, cfgFile); err != nil {
				return err
			}
			if verbose {
				v.Set("logging.level", "debug")
			}

			loaded, err := config.Load(v)
			if err != nil {
				return err
			}
			cfg = loaded

			l, err := newLogger(cfg.Logging.Level, cmd.ErrOrStderr())
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			logger = l
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = logger.Sync()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.OutOrStdout(), fsys, cfg, logger, args)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&cfgFile, "config", "c", "", "config file (default: $HOME/.logtally.yaml)")
	flags.BoolVarP(&verbose, "verbose", "v", false, "debug diagnostics on stderr")
	flags.StringP("output", "o", "text", "output format: text, json, yaml")
	flags.String("sort", "first-seen", "level table order: first-seen, level, count")
	flags.Bool("lenient", false, "skip malformed lines instead of aborting")
	flags.Bool("color", false, "colorize the level column")

	cobra.CheckErr(bindFlags(v, flags))

	return cmd
}

// Execute runs the root command against the real filesystem.
func Execute() {
	if err := NewRootCmd(afero.NewOsFs()).Execute(); err != nil {
		os.Exit(1)
	}
}

// bindFlags maps command-line flags onto config keys.
func bindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	bindings := map[string]string{
		"output.format": "output",
		"output.sort":   "sort",
		"output.color":  "color",
		"parse.lenient": "lenient",
	}
	for key, name := range bindings {
		if err := v.BindPFlag(key, flags.Lookup(name)); err != nil {
			return err
		}
	}
	return nil
}

// readConfig loads cfgFile, or .logtally.yaml from $HOME or the working
// directory. A missing default config file is not an error.
func readConfig(v *viper.Viper, cfgFile string) error {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.AddConfigPath(".")
		v.SetConfigName(".logtally")
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("failed to read config: %w", err)
	}
	return nil
}

// newLogger builds the diagnostics logger. Report output never goes here.
func newLogger(level string, w io.Writer) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, err
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encCfg),
		zapcore.AddSync(w),
		zap.NewAtomicLevelAt(lvl),
	)
	return zap.New(core), nil
}
