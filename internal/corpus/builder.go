package corpus

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/handiism/lyricstat/internal/config"
	ioutils "github.com/handiism/lyricstat/internal/io"
	"github.com/handiism/lyricstat/internal/model"
)

// ErrNotInitialized is returned by Build when Initialize has not succeeded.
var ErrNotInitialized = errors.New("builder not initialized")

// ProgressLevel indicates the severity/type of a progress message.
type ProgressLevel int

const (
	LevelInfo ProgressLevel = iota
	LevelVerbose
	LevelWarning
	LevelError
	LevelSuccess
)

// ProgressEvent represents a corpus build progress update.
type ProgressEvent struct {
	Message string
	Level   ProgressLevel
}

// LyricsSource is the catalog a Builder fetches from.
//
// *genius.Client implements it.
type LyricsSource interface {
	FindArtistID(ctx context.Context, name string) (int64, error)
	ArtistSongs(ctx context.Context, artistID int64, maxSongs int) ([]model.Song, error)
	FetchLyrics(ctx context.Context, songURL string) (string, error)
}

// Builder coordinates fetching an artist's lyrics into a corpus.
type Builder struct {
	settings *config.Settings
	source   LyricsSource
	logger   *zap.Logger

	artist string
	songs  []model.Song

	totalSongs   int32
	fetchedSongs int32
	failedSongs  int32

	onProgress func(ProgressEvent)
	mu         sync.Mutex
}

// NewBuilder creates a new corpus Builder.
//
// onProgress may be called from several goroutines at once during Build.
func NewBuilder(settings *config.Settings, source LyricsSource, logger *zap.Logger, onProgress func(ProgressEvent)) *Builder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Builder{
		settings:   settings,
		source:     source,
		logger:     logger,
		onProgress: onProgress,
	}
}

// Initialize resolves the artist and lists the songs to fetch.
//
// A failure while paging through the song list is reported as a warning
// as long as some songs were listed.
func (b *Builder) Initialize(ctx context.Context, artist string) error {
	artistID, err := b.source.FindArtistID(ctx, artist)
	if err != nil {
		return err
	}
	b.progress(ProgressEvent{Message: fmt.Sprintf("Fetching songs for artist ID: %d", artistID), Level: LevelInfo})

	songs, err := b.source.ArtistSongs(ctx, artistID, b.settings.MaxSongs)
	if err != nil {
		if len(songs) == 0 {
			return err
		}
		b.progress(ProgressEvent{Message: fmt.Sprintf("Song listing incomplete: %v", err), Level: LevelWarning})
	}

	b.mu.Lock()
	b.artist = artist
	b.songs = songs
	b.mu.Unlock()

	atomic.StoreInt32(&b.totalSongs, int32(len(songs)))
	atomic.StoreInt32(&b.fetchedSongs, 0)
	atomic.StoreInt32(&b.failedSongs, 0)

	b.progress(ProgressEvent{Message: fmt.Sprintf("Found %d songs by %s.", len(songs), artist), Level: LevelInfo})
	return nil
}

// Build fetches the lyrics of every listed song.
//
// Pages are fetched concurrently, bounded by MaxConcurrentFetches. Songs
// whose lyrics cannot be fetched are skipped with a warning; the rest keep
// the order of the song list.
func (b *Builder) Build(ctx context.Context) (*model.Corpus, error) {
	b.mu.Lock()
	artist, songs := b.artist, b.songs
	b.mu.Unlock()

	if artist == "" {
		return nil, ErrNotInitialized
	}

	results := make([]*model.Song, len(songs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, b.settings.MaxConcurrentFetches))

	for i, song := range songs {
		g.Go(func() error {
			b.progress(ProgressEvent{Message: fmt.Sprintf("Fetching lyrics for: %s", song.Title), Level: LevelVerbose})

			lyrics, err := b.source.FetchLyrics(ctx, song.URL)
			if err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				atomic.AddInt32(&b.failedSongs, 1)
				b.logger.Debug("lyrics fetch failed", zap.String("title", song.Title), zap.Error(err))
				b.progress(ProgressEvent{Message: fmt.Sprintf("Skipping %s: %v", song.Title, err), Level: LevelWarning})
				return nil // Continue with other songs
			}

			song.Lyrics = lyrics
			results[i] = &song
			atomic.AddInt32(&b.fetchedSongs, 1)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	fetched := make([]model.Song, 0, len(results))
	for _, song := range results {
		if song != nil {
			fetched = append(fetched, *song)
		}
	}

	return model.NewCorpus(artist, fetched), nil
}

// OutputPath returns the default corpus file path for artist inside dir.
func (b *Builder) OutputPath(dir, artist string) string {
	return filepath.Join(dir, model.OutputFileName(b.settings.OutputFileNameFormat, artist))
}

// Save writes the corpus document to path.
func (b *Builder) Save(ctx context.Context, corpus *model.Corpus, path string) error {
	if err := ioutils.WriteFile(ctx, path, []byte(corpus.Format())); err != nil {
		return fmt.Errorf("saving corpus: %w", err)
	}
	b.progress(ProgressEvent{Message: fmt.Sprintf("All lyrics saved to: %s", path), Level: LevelSuccess})
	return nil
}

// Run initializes, builds and saves the corpus for artist.
//
// An empty path selects OutputPath in the current directory. The path
// written to is returned.
func (b *Builder) Run(ctx context.Context, artist, path string) (string, *model.Corpus, error) {
	if err := b.Initialize(ctx, artist); err != nil {
		return "", nil, err
	}

	corpus, err := b.Build(ctx)
	if err != nil {
		return "", nil, err
	}

	if path == "" {
		path = b.OutputPath(".", artist)
	}
	if err := b.Save(ctx, corpus, path); err != nil {
		return "", nil, err
	}

	return path, corpus, nil
}

// GetProgress returns the number of songs fetched, failed and listed.
func (b *Builder) GetProgress() (fetched, failed, total int32) {
	return atomic.LoadInt32(&b.fetchedSongs), atomic.LoadInt32(&b.failedSongs), atomic.LoadInt32(&b.totalSongs)
}

func (b *Builder) progress(event ProgressEvent) {
	if b.onProgress != nil {
		b.onProgress(event)
	}
}
