// Package ioutils provides file system utilities.
//
// This package contains functions for:
//   - Writing corpus files atomically
//   - Directory creation
//   - Listing files by extension
//
// # File Operations
//
//	// Write a corpus, creating parent directories as needed
//	err := ioutils.WriteFile(ctx, "/corpora/Artist_lyrics.txt", []byte(text))
//
//	// Ensure directory exists
//	err := ioutils.EnsureDir("/path/to/new/directory")
//
//	// Find all MP3s below a directory, sorted by path
//	paths, err := ioutils.ListFiles(ctx, "/music", ".mp3")
package ioutils
