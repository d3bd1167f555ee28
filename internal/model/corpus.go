package model

import (
	"fmt"
	"regexp"
	"strings"
)

// Delimiter opens and closes the title line of every song block.
const Delimiter = "###"

const headerPrefix = "Lyrics Collection for "

// Song represents a single song in a corpus.
type Song struct {
	// Title is the song title as shown on the delimiter line.
	Title string

	// Lyrics is the song text, trimmed of surrounding whitespace.
	Lyrics string

	// URL is the page the lyrics were scraped from.
	// Empty for songs parsed from a corpus file or read from tags.
	URL string
}

// Corpus is an artist's collection of songs in document order.
type Corpus struct {
	// Artist is the name written in the corpus header.
	Artist string

	// Songs contains the songs in the order they appear in the document.
	Songs []Song
}

// NewCorpus creates a Corpus for artist.
func NewCorpus(artist string, songs []Song) *Corpus {
	return &Corpus{
		Artist: artist,
		Songs:  songs,
	}
}

// Format renders the corpus document.
//
// The header is a title line and a rule of 50 '=' characters followed by a
// blank line. Each song is written as:
//
//	### <title> ###
//	<lyrics>
//	<blank line>
//
// Titles and lyrics are passed through SanitizeText so the delimiter token
// cannot appear inside a block.
func (c *Corpus) Format() string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s%s\n", headerPrefix, c.Artist)
	b.WriteString(strings.Repeat("=", 50))
	b.WriteString("\n\n")

	for _, song := range c.Songs {
		title := strings.Join(strings.Fields(SanitizeText(song.Title)), " ")
		fmt.Fprintf(&b, "%s %s %s\n", Delimiter, title, Delimiter)
		b.WriteString(SanitizeText(song.Lyrics))
		b.WriteString("\n\n")
	}

	return b.String()
}

// ParseCorpus splits a corpus document back into songs.
//
// The artist is taken from the header line when it has the form written by
// Format; otherwise it is left empty. See SplitSongs for segmentation rules.
func ParseCorpus(text string) *Corpus {
	artist := ""
	firstLine, _, _ := strings.Cut(text, "\n")
	if strings.HasPrefix(firstLine, headerPrefix) {
		artist = strings.TrimSpace(strings.TrimPrefix(firstLine, headerPrefix))
	}

	return NewCorpus(artist, SplitSongs(text))
}

// SplitSongs segments a corpus document on the delimiter token.
//
// The text before the first delimiter is the document header and is
// discarded. For every remaining segment the first line is the title and
// the rest is the lyrics body, both trimmed.
//
// The closing token of a "### <title> ###" line belongs to the delimiter:
// a segment without a line break is the title of that line, and the next
// segment supplies the body once the remainder of the delimiter line is
// dropped.
func SplitSongs(text string) []Song {
	segments := strings.Split(text, Delimiter)
	if len(segments) < 2 {
		return nil
	}
	segments = segments[1:]

	songs := make([]Song, 0, len(segments)/2)
	for i := 0; i < len(segments); i++ {
		segment := segments[i]

		if !strings.Contains(segment, "\n") && i+1 < len(segments) {
			_, body, _ := strings.Cut(segments[i+1], "\n")
			songs = append(songs, Song{
				Title:  strings.TrimSpace(segment),
				Lyrics: strings.TrimSpace(body),
			})
			i++
			continue
		}

		title, body, _ := strings.Cut(segment, "\n")
		songs = append(songs, Song{
			Title:  strings.TrimSpace(title),
			Lyrics: strings.TrimSpace(body),
		})
	}

	return songs
}

// SanitizeText collapses any run of three or more '#' into a single '#'.
func SanitizeText(s string) string {
	return delimiterRun.ReplaceAllString(s, "#")
}

var delimiterRun = regexp.MustCompile(`#{3,}`)

// OutputFileName computes the corpus file name for artist.
//
// The {artist} placeholder is replaced with the artist name, spaces turned
// into underscores, and the result is sanitized for use as a file name.
//
// Example:
//
//	OutputFileName("{artist}_lyrics.txt", "Kendrick Lamar") // "Kendrick_Lamar_lyrics.txt"
func OutputFileName(format, artist string) string {
	name := strings.ReplaceAll(format, "{artist}", strings.ReplaceAll(artist, " ", "_"))
	return sanitizeFileName(name)
}

// sanitizeFileName removes or replaces characters that are invalid in file names.
//
// The following transformations are applied:
//   - Invalid characters (<>:"/\|?* and control chars) are replaced with underscore
//   - Trailing dots are removed (Windows limitation)
//   - Multiple whitespace is collapsed to single space
//   - Trailing whitespace is removed
func sanitizeFileName(name string) string {
	invalidChars := regexp.MustCompile(`[<>:"/\\|?*\x00-\x1f]`)
	name = invalidChars.ReplaceAllString(name, "_")

	name = regexp.MustCompile(`\.+$`).ReplaceAllString(name, "")

	name = regexp.MustCompile(`\s+`).ReplaceAllString(name, " ")

	name = strings.TrimRight(name, " ")

	return name
}
