package dto

import (
	"github.com/handiism/lyricstat/internal/model"
)

// JSONArtist is an artist reference inside API payloads.
type JSONArtist struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// JSONSong is a song as returned by the search and artist songs endpoints.
type JSONSong struct {
	ID            int64       `json:"id"`
	Title         string      `json:"title"`
	URL           string      `json:"url"`
	PrimaryArtist *JSONArtist `json:"primary_artist"`
}

// ToSong converts JSONSong to a model.Song without lyrics.
func (js *JSONSong) ToSong() model.Song {
	return model.Song{
		Title: js.Title,
		URL:   js.URL,
	}
}

// JSONMeta carries the status of an API response.
type JSONMeta struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}
