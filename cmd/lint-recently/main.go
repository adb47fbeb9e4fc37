package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/spachava753/lint-recently/internal/config"
	"github.com/spachava753/lint-recently/internal/lintrecently"
	"github.com/spachava753/lint-recently/internal/models"
	"github.com/spachava753/lint-recently/internal/render"
	"github.com/spachava753/lint-recently/internal/util"
)

// Version is the lint-recently CLI version.
var Version = "0.1.0"

type flags struct {
	debug        bool
	concurrent   string
	quiet        bool
	relative     bool
	shell        string
	verbose      bool
	configPath   string
	maxArgLength string
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	var f flags
	exitCode := 0

	rootCmd := newRootCmd(&f, func(cmd *cobra.Command, args []string) error {
		passed, err := execute(cmd.Context(), f, args)
		if err != nil || !passed {
			exitCode = 1
		}
		if err != nil {
			slog.Debug("lint-recently failed", "error", err)
		}
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stop := handleSignals(cancel)
	defer stop()

	rootCmd.SetArgs(args)
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return exitCode
}

func newRootCmd(f *flags, runE func(cmd *cobra.Command, args []string) error) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "lint-recently [shell-path]",
		Short:         "Run linters against files changed in recent git history",
		Version:       Version,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runE,
	}

	fs := rootCmd.Flags()
	fs.BoolVarP(&f.debug, "debug", "d", false, "print additional debug information")
	fs.StringVarP(&f.concurrent, "concurrent", "p", "true", "the number of tasks to run concurrently, or false to run tasks serially")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "disable lint-recently's own console output")
	fs.BoolVarP(&f.relative, "relative", "r", false, "pass relative filepaths to tasks")
	fs.StringVarP(&f.shell, "shell", "x", "", "skip parsing of tasks for better shell support; -x <path> or --shell=<path> selects the shell")
	fs.Lookup("shell").NoOptDefVal = "true"
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show task output even when tasks succeed; by default only failed output is shown")
	fs.StringVarP(&f.configPath, "config", "c", "", "path to a configuration file")
	fs.StringVar(&f.maxArgLength, "max-arg-length", "", "maximum length of the file argument string, e.g. 64K; 0 disables chunking")
	return rootCmd
}

func execute(ctx context.Context, f flags, args []string) (bool, error) {
	level := slog.LevelWarn
	if f.debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	logger := render.NewConsole(os.Stdout, os.Stderr)
	opts, err := buildOptions(f, args)
	if err != nil {
		logger.Error(err.Error())
		return false, err
	}
	slog.Debug("options parsed from command-line", "options", fmt.Sprintf("%+v", opts))

	return lintrecently.Run(ctx, opts, logger)
}

// buildOptions maps parsed flags to run options. A bare -x followed by a
// single argument takes that argument as the shell path.
func buildOptions(f flags, args []string) (models.Options, error) {
	opts := lintrecently.DefaultOptions()
	opts.Debug = f.debug
	opts.Quiet = f.quiet
	opts.Relative = f.relative
	opts.Verbose = f.verbose
	opts.ConfigPath = f.configPath

	concurrent, err := lintrecently.ParseConcurrent(f.concurrent)
	if err != nil {
		return opts, err
	}
	opts.Concurrent = concurrent

	shell := f.shell
	if len(args) > 0 {
		if shell != "true" {
			return opts, fmt.Errorf("%w: unexpected argument %q", config.ErrInvalidOptions, args[0])
		}
		shell = args[0]
	}
	switch shell {
	case "", "false":
	case "true":
		opts.Shell = models.Shell{Enabled: true}
	default:
		opts.Shell = models.Shell{Enabled: true, Path: shell}
	}

	if f.maxArgLength != "" {
		size, err := util.ParseSize(f.maxArgLength)
		if err != nil {
			return opts, fmt.Errorf("parsing --max-arg-length: %w", err)
		}
		opts.MaxArgLength = size
	}

	return opts, nil
}
