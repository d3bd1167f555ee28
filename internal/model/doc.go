// Package model defines the core data structures used throughout
// lyricstat.
//
// # Song
//
// Song is one title/lyrics pair, either fetched from Genius, read from
// an MP3's lyrics frame, or parsed back out of a corpus file.
//
// # Corpus
//
// Corpus groups an artist's songs and knows how to render itself as the
// flat corpus document:
//
//	Lyrics Collection for Kendrick Lamar
//	==================================================
//
//	### HUMBLE. ###
//	Nobody pray for me
//	...
//
// ParseCorpus reverses Format:
//
//	corpus := model.ParseCorpus(text)
//	for _, song := range corpus.Songs {
//	    fmt.Println(song.Title)
//	}
//
// # Output Naming
//
// OutputFileName expands the {artist} placeholder of a file name format:
//
//	model.OutputFileName("{artist}_lyrics.txt", "Kendrick Lamar") // "Kendrick_Lamar_lyrics.txt"
package model
