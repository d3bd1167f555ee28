package tags

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/bogem/id3v2"
	"go.uber.org/zap"

	ioutils "github.com/handiism/lyricstat/internal/io"
	"github.com/handiism/lyricstat/internal/model"
)

// ErrNoLyrics is returned by ReadSong when a file has no USLT frame.
var ErrNoLyrics = errors.New("no lyrics tag")

const lyricsFrameName = "Unsynchronised lyrics/text transcription"

// Reader reads songs from the ID3 tags of local MP3 files.
//
// Example:
//
//	reader := tags.NewReader(logger)
//	songs, err := reader.ScanDir(ctx, "/music/Artist")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	c := model.NewCorpus("Artist", songs)
type Reader struct {
	logger *zap.Logger
}

// NewReader creates a new Reader. A nil logger disables logging.
func NewReader(logger *zap.Logger) *Reader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Reader{logger: logger}
}

// ReadSong reads the title (TIT2) and lyrics (first USLT frame) of an MP3.
//
// When the title frame is empty the file name without extension is used.
func (r *Reader) ReadSong(path string) (model.Song, error) {
	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return model.Song{}, err
	}
	defer tag.Close()

	title := strings.TrimSpace(tag.Title())
	if title == "" {
		base := filepath.Base(path)
		title = strings.TrimSuffix(base, filepath.Ext(base))
	}

	for _, frame := range tag.GetFrames(tag.CommonID(lyricsFrameName)) {
		uslf, ok := frame.(id3v2.UnsynchronisedLyricsFrame)
		if !ok || strings.TrimSpace(uslf.Lyrics) == "" {
			continue
		}
		return model.Song{
			Title:  title,
			Lyrics: normalizeNewlines(uslf.Lyrics),
			URL:    path,
		}, nil
	}

	return model.Song{}, fmt.Errorf("%s: %w", path, ErrNoLyrics)
}

// ScanDir reads every .mp3 below dir, in path order.
//
// Files without lyrics or with unreadable tags are skipped.
func (r *Reader) ScanDir(ctx context.Context, dir string) ([]model.Song, error) {
	paths, err := ioutils.ListFiles(ctx, dir, ".mp3")
	if err != nil {
		return nil, err
	}

	var songs []model.Song
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		song, err := r.ReadSong(path)
		if err != nil {
			r.logger.Debug("skipping file", zap.String("path", path), zap.Error(err))
			continue
		}
		songs = append(songs, song)
	}

	r.logger.Debug("scanned directory",
		zap.String("dir", dir),
		zap.Int("files", len(paths)),
		zap.Int("songs", len(songs)))

	return songs, nil
}

// Lyrics frames written by some taggers use CR or CRLF line endings.
func normalizeNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}
