package corpus

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/handiism/lyricstat/internal/analysis"
	"github.com/handiism/lyricstat/internal/config"
	"github.com/handiism/lyricstat/internal/genius"
	"github.com/handiism/lyricstat/internal/genius/geniustest"
	lyrichttp "github.com/handiism/lyricstat/internal/http"
	"github.com/handiism/lyricstat/internal/model"
)

type eventLog struct {
	mu     sync.Mutex
	events []ProgressEvent
}

func (l *eventLog) add(e ProgressEvent) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, e)
}

func (l *eventLog) count(level ProgressLevel) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := 0
	for _, e := range l.events {
		if e.Level == level {
			n++
		}
	}
	return n
}

func testSettings(srv *geniustest.Server) *config.Settings {
	settings := config.DefaultSettings()
	settings.BaseURL = srv.URL
	settings.AccessToken = srv.Token
	settings.PerPage = 2
	settings.MaxConcurrentFetches = 3
	settings.MaxRetries = 0
	settings.RequestsPerSecond = 0
	settings.RequestTimeoutSeconds = 5
	return settings
}

func newGeniusSource(settings *config.Settings) *genius.Client {
	return genius.NewClient(lyrichttp.NewClient(settings.ToClientConfig(), nil), settings.ToGeniusConfig(), nil)
}

func TestBuilder_RunEndToEnd(t *testing.T) {
	srv := geniustest.NewServer("Test Artist", []geniustest.Song{
		{Title: "Song A", Lyrics: "I love you love"},
		{Title: "Skipped", NoLyrics: true},
		{Title: "Song B", Lyrics: "No love here"},
		{Title: "Song C", Lyrics: "Nothing\nat all"},
		{Title: "Song D", Lyrics: "LOVE"},
	})
	defer srv.Close()

	settings := testSettings(srv)
	log := &eventLog{}
	builder := NewBuilder(settings, newGeniusSource(settings), nil, log.add)

	out := filepath.Join(t.TempDir(), "out.txt")
	path, c, err := builder.Run(context.Background(), "test artist", out)
	require.NoError(t, err)
	assert.Equal(t, out, path)

	titles := make([]string, len(c.Songs))
	for i, s := range c.Songs {
		titles[i] = s.Title
	}
	assert.Equal(t, []string{"Song A", "Song B", "Song C", "Song D"}, titles, "order follows the song list")

	fetched, failed, total := builder.GetProgress()
	assert.EqualValues(t, 4, fetched)
	assert.EqualValues(t, 1, failed)
	assert.EqualValues(t, 5, total)
	assert.Equal(t, 1, log.count(LevelWarning))
	assert.Equal(t, 1, log.count(LevelSuccess))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Lyrics Collection for test artist\n")
	assert.Contains(t, string(data), "### Song A ###\nI love you love\n\n")

	report, err := analysis.AnalyzeFile(out, "love")
	require.NoError(t, err)
	assert.Equal(t, 4, report.Total)
	assert.Len(t, report.Counts, 4)
}

func TestBuilder_RespectsMaxSongs(t *testing.T) {
	srv := geniustest.NewServer("Artist", []geniustest.Song{
		{Title: "One", Lyrics: "a"},
		{Title: "Two", Lyrics: "b"},
		{Title: "Three", Lyrics: "c"},
	})
	defer srv.Close()

	settings := testSettings(srv)
	settings.MaxSongs = 2
	builder := NewBuilder(settings, newGeniusSource(settings), nil, nil)

	require.NoError(t, builder.Initialize(context.Background(), "Artist"))
	c, err := builder.Build(context.Background())
	require.NoError(t, err)
	assert.Len(t, c.Songs, 2)
	assert.Equal(t, 0, srv.Requests("/songs/2"))
}

func TestBuilder_ArtistNotFound(t *testing.T) {
	srv := geniustest.NewServer("Artist", nil)
	defer srv.Close()

	settings := testSettings(srv)
	_, _, err := NewBuilder(settings, newGeniusSource(settings), nil, nil).Run(context.Background(), "Someone", "")
	assert.ErrorIs(t, err, genius.ErrArtistNotFound)
}

func TestBuilder_BuildBeforeInitialize(t *testing.T) {
	_, err := NewBuilder(config.DefaultSettings(), &stubSource{}, nil, nil).Build(context.Background())
	assert.ErrorIs(t, err, ErrNotInitialized)
}

func TestBuilder_OutputPath(t *testing.T) {
	builder := NewBuilder(config.DefaultSettings(), &stubSource{}, nil, nil)
	assert.Equal(t, filepath.Join("dir", "Kendrick_Lamar_lyrics.txt"), builder.OutputPath("dir", "Kendrick Lamar"))
}

type stubSource struct {
	songs    []model.Song
	listErr  error
	fetchErr error
	delay    time.Duration
}

func (s *stubSource) FindArtistID(ctx context.Context, name string) (int64, error) {
	return 1, nil
}

func (s *stubSource) ArtistSongs(ctx context.Context, artistID int64, maxSongs int) ([]model.Song, error) {
	return s.songs, s.listErr
}

func (s *stubSource) FetchLyrics(ctx context.Context, songURL string) (string, error) {
	if s.delay > 0 {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(s.delay):
		}
	}
	if s.fetchErr != nil {
		return "", s.fetchErr
	}
	return "lyrics of " + songURL, nil
}

func TestBuilder_PartialListingIsWarning(t *testing.T) {
	src := &stubSource{
		songs:   []model.Song{{Title: "Only", URL: "u1"}},
		listErr: errors.New("page 2 failed"),
	}
	log := &eventLog{}
	builder := NewBuilder(config.DefaultSettings(), src, nil, log.add)

	require.NoError(t, builder.Initialize(context.Background(), "Artist"))
	assert.Equal(t, 1, log.count(LevelWarning))

	c, err := builder.Build(context.Background())
	require.NoError(t, err)
	require.Len(t, c.Songs, 1)
	assert.Equal(t, "lyrics of u1", c.Songs[0].Lyrics)
}

func TestBuilder_EmptyListingError(t *testing.T) {
	src := &stubSource{listErr: errors.New("down")}
	err := NewBuilder(config.DefaultSettings(), src, nil, nil).Initialize(context.Background(), "Artist")
	assert.EqualError(t, err, "down")
}

func TestBuilder_Cancelled(t *testing.T) {
	src := &stubSource{
		songs: []model.Song{{Title: "a", URL: "1"}, {Title: "b", URL: "2"}},
		delay: time.Second,
	}
	builder := NewBuilder(config.DefaultSettings(), src, nil, nil)
	require.NoError(t, builder.Initialize(context.Background(), "Artist"))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := builder.Build(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
