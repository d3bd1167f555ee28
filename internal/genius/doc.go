// Package genius provides access to the Genius lyrics catalog.
//
// The package handles three steps of building a corpus:
//
//  1. Resolving an artist name to a Genius artist ID via the search API
//  2. Paginating through the artist's song list
//  3. Scraping the lyrics text from each song page
//
// # API Access
//
// The API requires a client access token, passed explicitly through Config:
//
//	client := genius.NewClient(httpClient, &genius.Config{
//	    BaseURL:     genius.DefaultBaseURL,
//	    AccessToken: token,
//	    PerPage:     50,
//	}, logger)
//
//	id, err := client.FindArtistID(ctx, "Kendrick Lamar")
//	songs, err := client.ArtistSongs(ctx, id, 100)
//
// # Lyrics Extraction
//
// Song pages are plain HTML. ExtractLyrics understands both the old
// div.lyrics layout and the current data-lyrics-container layout:
//
//	lyrics, err := genius.ExtractLyrics(pageHTML)
//	if errors.Is(err, genius.ErrLyricsNotFound) {
//	    // page has no lyrics (instrumental, removed, ...)
//	}
package genius
