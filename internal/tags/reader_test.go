package tags

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/bogem/id3v2"

	ioutils "github.com/handiism/lyricstat/internal/io"
)

func writeTagged(t *testing.T, path, title, lyrics string) {
	t.Helper()

	if err := ioutils.EnsureDir(filepath.Dir(path)); err != nil {
		t.Fatal(err)
	}

	tag := id3v2.NewEmptyTag()
	tag.SetDefaultEncoding(id3v2.EncodingUTF8)
	if title != "" {
		tag.SetTitle(title)
	}
	if lyrics != "" {
		tag.AddUnsynchronisedLyricsFrame(id3v2.UnsynchronisedLyricsFrame{
			Encoding:          id3v2.EncodingUTF8,
			Language:          "eng",
			ContentDescriptor: "",
			Lyrics:            lyrics,
		})
	}

	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	if _, err := tag.WriteTo(f); err != nil {
		t.Fatal(err)
	}
}

func TestReadSong(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name      string
		file      string
		title     string
		lyrics    string
		wantTitle string
		wantLyric string
		wantErr   error
	}{
		{"title and lyrics", "a.mp3", "Alright", "We gon' be alright", "Alright", "We gon' be alright", nil},
		{"file name fallback", "Humble.mp3", "", "Sit down", "Humble", "Sit down", nil},
		{"crlf lyrics", "c.mp3", "C", "one\r\ntwo", "C", "one\ntwo", nil},
		{"no lyrics", "d.mp3", "Instrumental", "", "", "", ErrNoLyrics},
	}

	reader := NewReader(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.file)
			writeTagged(t, path, tt.title, tt.lyrics)

			song, err := reader.ReadSong(path)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ReadSong() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ReadSong() error = %v", err)
			}
			if song.Title != tt.wantTitle {
				t.Errorf("Title = %q, want %q", song.Title, tt.wantTitle)
			}
			if song.Lyrics != tt.wantLyric {
				t.Errorf("Lyrics = %q, want %q", song.Lyrics, tt.wantLyric)
			}
			if song.URL != path {
				t.Errorf("URL = %q, want %q", song.URL, path)
			}
		})
	}
}

func TestScanDir(t *testing.T) {
	dir := t.TempDir()
	writeTagged(t, filepath.Join(dir, "02.mp3"), "Second", "love love")
	writeTagged(t, filepath.Join(dir, "01.mp3"), "First", "love")
	writeTagged(t, filepath.Join(dir, "03.mp3"), "Silent", "")
	writeTagged(t, filepath.Join(dir, "disc2", "01.mp3"), "Third", "hate")
	if err := os.WriteFile(filepath.Join(dir, "cover.jpg"), []byte("jpeg"), 0644); err != nil {
		t.Fatal(err)
	}

	songs, err := NewReader(nil).ScanDir(context.Background(), dir)
	if err != nil {
		t.Fatalf("ScanDir() error = %v", err)
	}

	want := []string{"First", "Second", "Third"}
	if len(songs) != len(want) {
		t.Fatalf("ScanDir() returned %d songs, want %d", len(songs), len(want))
	}
	for i, title := range want {
		if songs[i].Title != title {
			t.Errorf("songs[%d].Title = %q, want %q", i, songs[i].Title, title)
		}
	}
}

func TestScanDir_Cancelled(t *testing.T) {
	dir := t.TempDir()
	writeTagged(t, filepath.Join(dir, "a.mp3"), "A", "x")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := NewReader(nil).ScanDir(ctx, dir); !errors.Is(err, context.Canceled) {
		t.Errorf("ScanDir() error = %v, want context.Canceled", err)
	}
}
