// Package config provides configuration management for lyricstat.
//
// This package handles:
//   - Loading and saving settings from JSON or YAML files
//   - Default configuration values
//   - Environment overrides for the Genius access token
//   - Conversion to the HTTP client configuration
//
// # Default Settings
//
// Use DefaultSettings() to get sensible defaults:
//
//	settings := config.DefaultSettings()
//	// Fetches up to 100 songs, 50 per page
//	// 4 concurrent page fetches, 5 requests per second
//	// Writes {artist}_lyrics.txt
//
// # Loading from File
//
//	settings, err := config.Load("/path/to/config.yaml")
//	if err != nil {
//	    // Uses defaults if file doesn't exist
//	}
//	settings.ApplyEnv() // GENIUS_ACCESS_TOKEN wins over the file
//
// The access token is never read from package state; callers pass the
// loaded Settings to the components that need it.
package config
