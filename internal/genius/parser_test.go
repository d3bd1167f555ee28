package genius

import (
	"errors"
	"testing"
)

func TestExtractLyrics(t *testing.T) {
	tests := []struct {
		name    string
		html    string
		want    string
		wantErr error
	}{
		{
			name: "legacy layout",
			html: `<html><body><div class="lyrics"><p>First line<br>Second line</p></div></body></html>`,
			want: "First line\nSecond line",
		},
		{
			name: "container layout with inline markup",
			html: `<html><body>
				<div data-lyrics-container="true">[Verse 1]<br/><a href="/x"><span>I love</span></a> you<br/>Still love you</div>
			</body></html>`,
			want: "[Verse 1]\nI love you\nStill love you",
		},
		{
			name: "multiple containers joined",
			html: `<html><body>
				<div data-lyrics-container="true">Part one</div>
				<div class="ad">Buy now</div>
				<div data-lyrics-container="true">Part two</div>
			</body></html>`,
			want: "Part one\nPart two",
		},
		{
			name: "stanza break kept once",
			html: `<div data-lyrics-container="true">a<br><br><br>b</div>`,
			want: "a\n\nb",
		},
		{
			name: "legacy layout wins over containers",
			html: `<div class="lyrics">old</div><div data-lyrics-container="true">new</div>`,
			want: "old",
		},
		{
			name: "excluded annotation chrome",
			html: `<div data-lyrics-container="true"><div data-exclude-from-selection="true">12 Contributors</div>Real line</div>`,
			want: "Real line",
		},
		{
			name: "entities unescaped",
			html: `<div data-lyrics-container="true">Rock &amp; roll</div>`,
			want: "Rock & roll",
		},
		{
			name:    "no lyrics",
			html:    `<html><body><p>Instrumental</p></body></html>`,
			wantErr: ErrLyricsNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractLyrics(tt.html)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("ExtractLyrics() error = %v, want %v", err, tt.wantErr)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ExtractLyrics() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCleanLines(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"  a  \n  b ", "a\nb"},
		{"\n\n\na\n\n\n\nb\n\n", "a\n\nb"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := cleanLines(tt.input); got != tt.want {
			t.Errorf("cleanLines(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
