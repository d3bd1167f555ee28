package dto

// JSONSearchResponse is the payload of GET /search.
type JSONSearchResponse struct {
	Meta     JSONMeta `json:"meta"`
	Response struct {
		Hits []JSONHit `json:"hits"`
	} `json:"response"`
}

// JSONHit is one search result.
type JSONHit struct {
	Type   string   `json:"type"`
	Result JSONSong `json:"result"`
}

// JSONArtistSongsResponse is the payload of GET /artists/:id/songs.
type JSONArtistSongsResponse struct {
	Meta     JSONMeta `json:"meta"`
	Response struct {
		Songs    []JSONSong `json:"songs"`
		NextPage *int       `json:"next_page"`
	} `json:"response"`
}
