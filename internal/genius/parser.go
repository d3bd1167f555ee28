package genius

import (
	"errors"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ErrLyricsNotFound is returned when a song page has no lyrics container.
var ErrLyricsNotFound = errors.New("lyrics not found on page")

const (
	// legacyLyricsSelector matches the single lyrics div of the old page layout.
	legacyLyricsSelector = "div.lyrics"

	// lyricsContainerSelector matches the lyrics blocks of the current layout.
	lyricsContainerSelector = `div[data-lyrics-container="true"]`
)

// ExtractLyrics returns the lyrics text of a Genius song page.
//
// The old layout keeps lyrics in a single div.lyrics; the current layout
// splits them over several div[data-lyrics-container="true"] blocks, which
// are joined with a line break. Text is rendered the way a browser would
// lay it out: <br> and block elements start new lines, inline elements do
// not. Annotation chrome marked data-exclude-from-selection is skipped.
//
// Returns ErrLyricsNotFound if the page has neither container.
func ExtractLyrics(page string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		return "", err
	}

	sel := doc.Find(legacyLyricsSelector)
	if sel.Length() == 0 {
		sel = doc.Find(lyricsContainerSelector)
	}
	if sel.Length() == 0 {
		return "", ErrLyricsNotFound
	}

	blocks := make([]string, 0, sel.Length())
	for _, node := range sel.Nodes {
		var b strings.Builder
		renderText(&b, node)
		if text := cleanLines(b.String()); text != "" {
			blocks = append(blocks, text)
		}
	}

	return strings.TrimSpace(strings.Join(blocks, "\n")), nil
}

// renderText writes the visible text below n.
func renderText(b *strings.Builder, n *html.Node) {
	switch n.Type {
	case html.TextNode:
		b.WriteString(n.Data)
		return
	case html.ElementNode:
		switch n.DataAtom {
		case atom.Br:
			b.WriteString("\n")
			return
		case atom.Script, atom.Style, atom.Noscript:
			return
		}
		if hasAttr(n, "data-exclude-from-selection", "true") {
			return
		}
	}

	block := isBlock(n)
	if block {
		b.WriteString("\n")
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		renderText(b, c)
	}
	if block {
		b.WriteString("\n")
	}
}

func isBlock(n *html.Node) bool {
	if n.Type != html.ElementNode {
		return false
	}
	switch n.DataAtom {
	case atom.Div, atom.P, atom.Li, atom.Ul, atom.Ol, atom.H1, atom.H2, atom.H3, atom.H4, atom.Blockquote:
		return true
	}
	return false
}

func hasAttr(n *html.Node, key, value string) bool {
	for _, a := range n.Attr {
		if a.Key == key && a.Val == value {
			return true
		}
	}
	return false
}

// cleanLines trims every line and collapses runs of blank lines into one.
func cleanLines(text string) string {
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	blank := false
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			if blank || len(out) == 0 {
				continue
			}
			blank = true
		} else {
			blank = false
		}
		out = append(out, line)
	}
	return strings.TrimSpace(strings.Join(out, "\n"))
}
