package genius

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"github.com/handiism/lyricstat/internal/genius/dto"
	lyrichttp "github.com/handiism/lyricstat/internal/http"
	"github.com/handiism/lyricstat/internal/model"
)

// ErrArtistNotFound is returned when no search hit has a primary artist
// with the requested name.
var ErrArtistNotFound = errors.New("artist not found")

// DefaultBaseURL is the Genius API root.
const DefaultBaseURL = "https://api.genius.com"

// Config holds the Genius API settings.
type Config struct {
	// BaseURL is the API root, without a trailing slash.
	BaseURL string

	// AccessToken is the client access token sent as a Bearer token.
	AccessToken string

	// PerPage is the page size used when listing an artist's songs.
	PerPage int
}

// Client talks to the Genius API and scrapes song pages.
//
// API requests carry the access token; song page downloads do not.
//
// Example usage:
//
//	client := genius.NewClient(httpClient, cfg, logger)
//
//	id, err := client.FindArtistID(ctx, "Kendrick Lamar")
//	if errors.Is(err, genius.ErrArtistNotFound) {
//	    return
//	}
//
//	songs, err := client.ArtistSongs(ctx, id, 100)
//	for _, song := range songs {
//	    lyrics, err := client.FetchLyrics(ctx, song.URL)
//	    ...
//	}
type Client struct {
	api     *lyrichttp.Client
	web     *lyrichttp.Client
	baseURL string
	perPage int
	logger  *zap.Logger
}

// NewClient creates a new Genius client on top of httpClient.
func NewClient(httpClient *lyrichttp.Client, cfg *Config, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}

	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	perPage := cfg.PerPage
	if perPage <= 0 {
		perPage = 50
	}

	return &Client{
		api:     httpClient.WithBearerToken(cfg.AccessToken),
		web:     httpClient,
		baseURL: baseURL,
		perPage: perPage,
		logger:  logger,
	}
}

// FindArtistID resolves an artist name to its Genius artist ID.
//
// The name is searched for and the primary artist of the first hit whose
// name equals the query, ignoring case, wins.
//
// Returns ErrArtistNotFound if no hit matches.
func (c *Client) FindArtistID(ctx context.Context, name string) (int64, error) {
	searchURL := fmt.Sprintf("%s/search?%s", c.baseURL, url.Values{"q": {name}}.Encode())

	var resp dto.JSONSearchResponse
	if err := c.api.GetJSON(ctx, searchURL, &resp); err != nil {
		return 0, fmt.Errorf("searching for %q: %w", name, err)
	}

	for _, hit := range resp.Response.Hits {
		artist := hit.Result.PrimaryArtist
		if artist != nil && strings.EqualFold(artist.Name, name) {
			c.logger.Debug("resolved artist", zap.String("name", name), zap.Int64("id", artist.ID))
			return artist.ID, nil
		}
	}

	return 0, fmt.Errorf("%w: %s", ErrArtistNotFound, name)
}

// ArtistSongs lists up to maxSongs songs of an artist, starting from page 1.
//
// Listing stops once maxSongs songs are collected or a page comes back
// empty. If a page request fails, the songs gathered so far are returned
// together with the error.
func (c *Client) ArtistSongs(ctx context.Context, artistID int64, maxSongs int) ([]model.Song, error) {
	var songs []model.Song

	for page := 1; len(songs) < maxSongs; page++ {
		pageURL := fmt.Sprintf("%s/artists/%d/songs?per_page=%d&page=%d", c.baseURL, artistID, c.perPage, page)

		var resp dto.JSONArtistSongsResponse
		if err := c.api.GetJSON(ctx, pageURL, &resp); err != nil {
			return songs, fmt.Errorf("listing songs page %d: %w", page, err)
		}

		if len(resp.Response.Songs) == 0 {
			break
		}

		for _, js := range resp.Response.Songs {
			songs = append(songs, js.ToSong())
			if len(songs) >= maxSongs {
				break
			}
		}

		c.logger.Debug("listed songs page",
			zap.Int64("artist_id", artistID),
			zap.Int("page", page),
			zap.Int("total", len(songs)))
	}

	return songs, nil
}

// FetchLyrics downloads a song page and extracts its lyrics.
func (c *Client) FetchLyrics(ctx context.Context, songURL string) (string, error) {
	html, err := c.web.GetString(ctx, songURL)
	if err != nil {
		return "", fmt.Errorf("fetching %s: %w", songURL, err)
	}

	lyrics, err := ExtractLyrics(html)
	if err != nil {
		return "", fmt.Errorf("%s: %w", songURL, err)
	}
	return lyrics, nil
}
