package analysis

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// Lines renders the human-readable report.
//
// Only the occurrence count of the most and least frequent songs is shown
// unless withTitles is set, in which case the song title follows in
// parentheses.
func (r *Report) Lines(withTitles bool) []string {
	lines := []string{
		fmt.Sprintf("The word/phrase '%s' appears %d times in total.", r.Term, r.Total),
		fmt.Sprintf("Average occurrences per song: %.2f", r.Average),
	}

	if r.Most != nil {
		lines = append(lines, fmt.Sprintf("The song with the most occurences has %d occurrences.%s", r.Most.Count, titleSuffix(r.Most, withTitles)))
	} else {
		lines = append(lines, "No song has the most occurrences.")
	}

	if r.Least != nil {
		lines = append(lines, fmt.Sprintf("The song with the least occurrences has %d occurrences.%s", r.Least.Count, titleSuffix(r.Least, withTitles)))
	} else {
		lines = append(lines, "No song qualifies for the least occurrences.")
	}

	lines = append(lines,
		fmt.Sprintf("Percentage of songs containing the word: %.2f%%", r.PercentageWithTerm),
		fmt.Sprintf("Standard deviation of occurrences: %.2f", r.StdDev),
	)

	return lines
}

func titleSuffix(c *SongCount, withTitles bool) string {
	if !withTitles {
		return ""
	}
	return fmt.Sprintf(" (%s)", c.Title)
}

// String returns the report as printed to the console.
func (r *Report) String() string {
	return strings.Join(r.Lines(false), "\n") + "\n"
}

// WriteTo implements io.WriterTo.
func (r *Report) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, r.String())
	return int64(n), err
}

// JSON renders the report as indented JSON.
func (r *Report) JSON() ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}
