package analysis

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/handiism/lyricstat/internal/model"
)

// ErrCorpusNotFound is returned by AnalyzeFile when the corpus file does not exist.
var ErrCorpusNotFound = errors.New("corpus file not found")

// SongCount is the number of term occurrences in one song.
type SongCount struct {
	Title string `json:"title"`
	Count int    `json:"count"`
}

// Report holds the statistics for one term across a corpus.
//
// Most and Least are nil when no song qualifies: Most when the corpus has
// no songs, Least when no song contains the term.
type Report struct {
	Term               string      `json:"term"`
	Total              int         `json:"total"`
	Counts             []SongCount `json:"counts"`
	Average            float64     `json:"average"`
	Most               *SongCount  `json:"most,omitempty"`
	Least              *SongCount  `json:"least,omitempty"`
	PercentageWithTerm float64     `json:"percentage_with_term"`
	StdDev             float64     `json:"std_dev"`
}

// CountOccurrences counts non-overlapping occurrences of term in lyrics.
//
// Both strings are lowercased first. The term is matched as a literal
// substring, so "cat" is found twice in "category cat". An empty term
// matches nothing.
func CountOccurrences(lyrics, term string) int {
	if term == "" {
		return 0
	}
	return strings.Count(strings.ToLower(lyrics), strings.ToLower(term))
}

// Analyze computes the frequency report of term over a corpus document.
func Analyze(corpus, term string) *Report {
	return AnalyzeSongs(model.SplitSongs(corpus), term)
}

// AnalyzeSongs computes the frequency report of term over songs in order.
func AnalyzeSongs(songs []model.Song, term string) *Report {
	report := &Report{
		Term:   term,
		Counts: make([]SongCount, 0, len(songs)),
	}

	counts := make([]int, 0, len(songs))
	withTerm := 0
	for _, song := range songs {
		n := CountOccurrences(song.Lyrics, term)
		report.Counts = append(report.Counts, SongCount{Title: song.Title, Count: n})
		counts = append(counts, n)
		report.Total += n
		if n > 0 {
			withTerm++
		}
	}

	if len(counts) == 0 {
		return report
	}

	report.Average = float64(report.Total) / float64(len(counts))
	report.PercentageWithTerm = float64(withTerm) / float64(len(counts)) * 100
	report.StdDev = PopulationStdDev(counts, report.Average)

	for i := range report.Counts {
		c := report.Counts[i]
		if report.Most == nil || c.Count > report.Most.Count {
			report.Most = &c
		}
		if c.Count > 0 && (report.Least == nil || c.Count < report.Least.Count) {
			report.Least = &c
		}
	}

	return report
}

// PopulationStdDev returns the standard deviation of counts around mean,
// dividing by N. It is 0 for fewer than two values.
func PopulationStdDev(counts []int, mean float64) float64 {
	if len(counts) <= 1 {
		return 0
	}

	var sum float64
	for _, c := range counts {
		d := float64(c) - mean
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(counts)))
}

// LoadCorpus reads and parses the corpus document at path.
//
// A missing file yields an error wrapping ErrCorpusNotFound.
func LoadCorpus(path string) (*model.Corpus, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrCorpusNotFound, path)
		}
		return nil, fmt.Errorf("reading corpus %s: %w", path, err)
	}
	return model.ParseCorpus(string(data)), nil
}

// AnalyzeFile reads the corpus at path and analyzes term.
func AnalyzeFile(path, term string) (*Report, error) {
	corpus, err := LoadCorpus(path)
	if err != nil {
		return nil, err
	}
	return AnalyzeSongs(corpus.Songs, term), nil
}
