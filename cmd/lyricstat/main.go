package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/handiism/lyricstat/internal/config"
)

// exitCancelled is returned when a fetch is interrupted.
const exitCancelled = 130

// exitError carries an exit code for failures that were already reported.
type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}

// app holds state shared by all subcommands.
type app struct {
	configPath string
	verbose    bool

	settings *config.Settings
	logger   *zap.Logger

	stdout io.Writer
	stderr io.Writer
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "lyricstat",
		Short: "Fetch an artist's lyrics and count words across them",
		Long: `lyricstat builds a lyrics corpus for an artist from Genius (or from the
lyrics tags of a local MP3 library) and reports how often a word or phrase
appears across the songs.

Examples:
  lyricstat fetch "Kendrick Lamar" --max-songs 50
  lyricstat analyze Kendrick_Lamar_lyrics.txt love
  lyricstat scan ~/Music/Kendrick --artist "Kendrick Lamar"`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	root.PersistentFlags().StringVar(&a.configPath, "config", "", "Path to config file (JSON or YAML)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Show verbose output and debug logs")

	root.AddCommand(newAnalyzeCmd(a), newFetchCmd(a), newScanCmd(a))
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)

	return root
}

// init loads settings and builds the logger.
func (a *app) init() error {
	settings := config.DefaultSettings()
	if a.configPath != "" {
		var err error
		settings, err = config.Load(a.configPath)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
	}
	settings.ApplyEnv()
	a.settings = settings

	if a.logger == nil {
		cfg := zap.NewProductionConfig()
		if a.verbose {
			cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		logger, err := cfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		a.logger = logger
	}

	return nil
}

// run executes the CLI and returns the process exit code.
func run(ctx context.Context, a *app, args []string) int {
	root := newRootCmd(a)
	root.SetArgs(args)

	err := root.ExecuteContext(ctx)
	if err == nil {
		return 0
	}

	var exitErr *exitError
	switch {
	case errors.As(err, &exitErr):
		return exitErr.code
	case ctx.Err() != nil && errors.Is(err, context.Canceled):
		fmt.Fprintln(a.stdout, "\nFetch cancelled.")
		return exitCancelled
	default:
		fmt.Fprintf(a.stderr, "Error: %v\n", err)
		return 1
	}
}

func main() {
	// Handle interrupts
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Println("\nInterrupted, cancelling...")
		cancel()
	}()

	code := run(ctx, &app{stdout: os.Stdout, stderr: os.Stderr}, os.Args[1:])
	cancel()
	os.Exit(code)
}
