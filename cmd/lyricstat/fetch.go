package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/handiism/lyricstat/internal/config"
	"github.com/handiism/lyricstat/internal/corpus"
	"github.com/handiism/lyricstat/internal/genius"
	lyrichttp "github.com/handiism/lyricstat/internal/http"
)

var errNoToken = errors.New("no Genius access token: set " + config.EnvAccessToken + ", access_token in the config file, or --token")

func newFetchCmd(a *app) *cobra.Command {
	var (
		maxSongs int
		output   string
		token    string
	)

	cmd := &cobra.Command{
		Use:   "fetch <artist>",
		Short: "Fetch an artist's lyrics from Genius into a corpus file",
		Long: `Looks the artist up on Genius, lists up to --max-songs of their songs and
scrapes each song page for its lyrics. Songs without lyrics are skipped.

The corpus is written to --output, or to the configured output file name
(default "{artist}_lyrics.txt") in the current directory.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			artist := strings.Join(args, " ")

			settings := *a.settings
			if cmd.Flags().Changed("max-songs") {
				settings.MaxSongs = maxSongs
			}
			if token != "" {
				settings.AccessToken = token
			}
			if settings.AccessToken == "" {
				return errNoToken
			}

			httpClient := lyrichttp.NewClient(settings.ToClientConfig(), a.logger)
			source := genius.NewClient(httpClient, settings.ToGeniusConfig(), a.logger)
			builder := corpus.NewBuilder(&settings, source, a.logger, a.printProgress)

			fmt.Fprintln(a.stdout, "♪ lyricstat")
			fmt.Fprintln(a.stdout, strings.Repeat("━", 40))
			fmt.Fprintln(a.stdout)

			path, c, err := builder.Run(cmd.Context(), artist, output)
			if err != nil {
				return err
			}

			fetched, failed, total := builder.GetProgress()
			fmt.Fprintln(a.stdout)
			fmt.Fprintln(a.stdout, strings.Repeat("━", 40))
			fmt.Fprintf(a.stdout, "✨ Complete! Saved %d/%d songs to %s\n", len(c.Songs), total, path)
			if failed > 0 {
				fmt.Fprintf(a.stdout, "   (%d skipped, %d fetched)\n", failed, fetched)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&maxSongs, "max-songs", "n", 100, "Maximum number of songs to fetch")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (overrides config)")
	cmd.Flags().StringVar(&token, "token", "", "Genius API access token (overrides config and environment)")

	return cmd
}

// printProgress prints builder progress events with a level prefix.
func (a *app) printProgress(event corpus.ProgressEvent) {
	if event.Level == corpus.LevelVerbose && !a.verbose {
		return
	}

	prefix := ""
	switch event.Level {
	case corpus.LevelError:
		prefix = "✗ "
	case corpus.LevelWarning:
		prefix = "! "
	case corpus.LevelSuccess:
		prefix = "✓ "
	case corpus.LevelInfo:
		prefix = "› "
	default:
		prefix = "  "
	}

	fmt.Fprintln(a.stdout, prefix+event.Message)
}
