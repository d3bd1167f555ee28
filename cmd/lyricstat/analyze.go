package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/handiism/lyricstat/internal/analysis"
)

func newAnalyzeCmd(a *app) *cobra.Command {
	var (
		asJSON     bool
		withTitles bool
	)

	cmd := &cobra.Command{
		Use:   "analyze <file> <term>",
		Short: "Report how often a word or phrase appears in a corpus file",
		Long: `Counts case-insensitive, substring occurrences of term in every song of
the corpus file and prints the total, the per-song average, the most and
least frequent songs, the share of songs containing the term and the
standard deviation of the counts.

Terms with several words are joined with spaces.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			term := strings.Join(args[1:], " ")

			report, err := analysis.AnalyzeFile(path, term)
			if err != nil {
				if errors.Is(err, analysis.ErrCorpusNotFound) {
					fmt.Fprintf(a.stdout, "Error: The file %s was not found.\n", path)
					return &exitError{code: 1}
				}
				return err
			}

			a.logger.Debug("analyzed corpus",
				zap.String("path", path),
				zap.String("term", term),
				zap.Int("songs", len(report.Counts)))

			if asJSON {
				data, err := report.JSON()
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(a.stdout, string(data))
				return err
			}

			if !withTitles {
				_, err = report.WriteTo(a.stdout)
				return err
			}
			for _, line := range report.Lines(true) {
				fmt.Fprintln(a.stdout, line)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the report as JSON")
	cmd.Flags().BoolVar(&withTitles, "titles", false, "Name the most and least frequent songs")

	return cmd
}
