package main

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/b97tsk/factorial/factorial"
)

// levelValue adapts zapcore.Level to pflag.Value.
type levelValue struct {
	*zapcore.Level
}

func (levelValue) Type() string { return "level" }

type options struct {
	logLevel zapcore.Level
	noColour bool
}

func newRootCmd() *cobra.Command {
	opts := options{logLevel: zapcore.WarnLevel}

	cmd := &cobra.Command{
		Use:   "factorial",
		Short: "Compare async and threaded factorial",
		Long: `factorial computes 10! twice: once as a chain of cooperative tasks on a
single-threaded executor, once on a worker goroutine that sends the result
back over a one-shot channel. It prints each result and the time it took.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, opts)
		},
	}

	cmd.Flags().Var(levelValue{&opts.logLevel}, "log-level", "log level for diagnostics on stderr")
	cmd.Flags().BoolVar(&opts.noColour, "no-colour", false, "disable colour output")

	return cmd
}

func newLogger(level zapcore.Level) (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	return cfg.Build()
}

func run(cmd *cobra.Command, opts options) error {
	logger, err := newLogger(opts.logLevel)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	color.NoColor = color.NoColor || opts.noColour

	d := &factorial.Driver{
		N:      factorial.DefaultN,
		Out:    cmd.OutOrStdout(),
		Logger: logger,
		Colour: !color.NoColor,
	}

	if _, err := d.Run(); err != nil {
		// Channel disconnects and join failures are fatal.
		logger.Panic("factorial demo failed", zap.Error(err))
	}

	return nil
}
