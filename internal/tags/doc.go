// Package tags reads song lyrics embedded in the ID3 tags of local MP3
// files, so a corpus can be built from a music library instead of the
// Genius catalog.
//
// Titles come from the TIT2 frame and lyrics from the first non-empty USLT
// (unsynchronised lyrics) frame.
package tags
