package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/handiism/lyricstat/internal/config"
	"github.com/handiism/lyricstat/internal/tui"
)

func newRootCmd() *cobra.Command {
	var (
		configPath string
		corpusPath string
		verbose    bool
	)

	cmd := &cobra.Command{
		Use:           "lyricstat-tui",
		Short:         "Interactive lyrics fetcher and word counter",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings := config.DefaultSettings()
			if configPath != "" {
				var err error
				settings, err = config.Load(configPath)
				if err != nil {
					return fmt.Errorf("loading config: %w", err)
				}
			}
			settings.ApplyEnv()

			if corpusPath == "" && settings.AccessToken == "" {
				return fmt.Errorf("set %s or access_token in the config file, or pass --corpus", config.EnvAccessToken)
			}

			// The alternate screen owns the terminal, so diagnostics are discarded.
			return tui.Run(tui.Options{
				Settings:   settings,
				Logger:     zap.NewNop(),
				CorpusPath: corpusPath,
				Verbose:    verbose,
			})
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "Path to config file (JSON or YAML)")
	cmd.Flags().StringVar(&corpusPath, "corpus", "", "Analyze an existing corpus file instead of fetching")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Show per-song progress")

	return cmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
