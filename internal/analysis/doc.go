// Package analysis computes word-occurrence statistics over a lyrics corpus.
//
// The corpus document is split into songs with model.SplitSongs, the term
// is counted in every song as a case-insensitive literal substring, and
// the per-song counts are aggregated into a Report:
//
//	report, err := analysis.AnalyzeFile("Kendrick_Lamar_lyrics.txt", "love")
//	if errors.Is(err, analysis.ErrCorpusNotFound) {
//	    // nothing to analyze
//	}
//	report.WriteTo(os.Stdout)
//
// The report holds the total, the per-song counts, the mean, the first
// song with the highest count, the first song with the lowest nonzero
// count, the share of songs containing the term and the population
// standard deviation of the counts.
package analysis
