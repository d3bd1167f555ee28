// Package http provides the HTTP client used to talk to the Genius API
// and to download song pages.
//
// The Client in this package handles:
//   - User-Agent and Bearer authorization headers
//   - Timeout handling
//   - Rate limiting via golang.org/x/time/rate
//   - Retries with exponential backoff
//
// # Basic Usage
//
//	client := http.NewClient(settings.ToClientConfig(), logger)
//
//	// Fetch an HTML page
//	html, err := client.GetString(ctx, "https://genius.com/Artist-song-lyrics")
//
//	// Call the API with a token
//	var out response
//	err = client.WithBearerToken(token).GetJSON(ctx, apiURL, &out)
//
// # Errors
//
// Non-200 responses are returned as *StatusError, which carries the status
// code and the start of the response body.
package http
