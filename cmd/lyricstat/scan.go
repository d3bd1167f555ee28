package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	ioutils "github.com/handiism/lyricstat/internal/io"
	"github.com/handiism/lyricstat/internal/model"
	"github.com/handiism/lyricstat/internal/tags"
)

func newScanCmd(a *app) *cobra.Command {
	var (
		artist string
		output string
	)

	cmd := &cobra.Command{
		Use:   "scan <dir>",
		Short: "Build a corpus file from the lyrics tags of local MP3 files",
		Long: `Walks dir for .mp3 files and reads the title (TIT2) and lyrics (USLT)
of each one. Files without lyrics are skipped.

The artist defaults to the directory name.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := args[0]
			if artist == "" {
				abs, err := filepath.Abs(dir)
				if err != nil {
					return err
				}
				artist = filepath.Base(abs)
			}

			songs, err := tags.NewReader(a.logger).ScanDir(cmd.Context(), dir)
			if err != nil {
				return fmt.Errorf("scanning %s: %w", dir, err)
			}
			if len(songs) == 0 {
				return fmt.Errorf("no MP3 files with lyrics found in %s", dir)
			}

			if output == "" {
				output = model.OutputFileName(a.settings.OutputFileNameFormat, artist)
			}

			c := model.NewCorpus(artist, songs)
			if err := ioutils.WriteFile(cmd.Context(), output, []byte(c.Format())); err != nil {
				return fmt.Errorf("saving corpus: %w", err)
			}

			fmt.Fprintf(a.stdout, "✓ Saved %d songs by %s to %s\n", len(songs), strings.TrimSpace(artist), output)
			return nil
		},
	}

	cmd.Flags().StringVar(&artist, "artist", "", "Artist name for the corpus header")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (overrides config)")

	return cmd
}
