package cmd

import (
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// appState is the state shared by every command.
type appState struct {
	// Log is the root logger of the application.
	Log *zap.Logger

	Viper *viper.Viper

	Debug bool
}

// NewRootCmd returns the proxyd root command with every subcommand attached.
func NewRootCmd() *cobra.Command {
	a := &appState{Viper: viper.New()}

	rootCmd := &cobra.Command{
		Use:          "proxyd",
		Short:        "Inspect and simulate an IBC message proxy offline",
		SilenceUsage: true,
	}

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		if err := a.Viper.BindPFlags(cmd.Flags()); err != nil {
			return err
		}

		log, err := newRootLogger(a.Viper.GetString(flagLogFormat), a.Debug)
		if err != nil {
			return errors.Wrap(err, "failed to create logger")
		}
		a.Log = log

		return nil
	}

	rootCmd.PersistentPostRun = func(_ *cobra.Command, _ []string) {
		if a.Log != nil {
			_ = a.Log.Sync()
		}
	}

	rootCmd.PersistentFlags().BoolVarP(&a.Debug, flagDebug, "d", false, "debug output")
	rootCmd.PersistentFlags().String(flagLogFormat, "console", "log output format (console or json)")
	if err := a.Viper.BindPFlag(flagLogFormat, rootCmd.PersistentFlags().Lookup(flagLogFormat)); err != nil {
		panic(err)
	}

	rootCmd.AddCommand(
		configCmd(a),
		deriveIntermediaryCmd(a),
		encodeCallbackCmd(a),
		simulateCmd(a),
	)

	return rootCmd
}

func newRootLogger(format string, debug bool) (*zap.Logger, error) {
	config := zap.NewProductionEncoderConfig()
	config.EncodeTime = zapcore.ISO8601TimeEncoder

	var enc zapcore.Encoder
	switch format {
	case "json":
		enc = zapcore.NewJSONEncoder(config)
	case "console":
		enc = zapcore.NewConsoleEncoder(config)
	default:
		return nil, errors.Errorf("unrecognized log format %q", format)
	}

	level := zap.InfoLevel
	if debug {
		level = zap.DebugLevel
	}

	return zap.New(zapcore.NewCore(enc, zapcore.Lock(zapcore.AddSync(os.Stderr)), level)), nil
}
