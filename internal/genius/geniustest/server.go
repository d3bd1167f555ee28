// Package geniustest provides a fake Genius API and song page server for tests.
package geniustest

import (
	"encoding/json"
	"fmt"
	"html"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
)

// Song is a song served by the fake.
type Song struct {
	Title  string
	Lyrics string

	// NoLyrics serves a page without a lyrics container.
	NoLyrics bool
}

// Server is a fake Genius API backed by httptest.
type Server struct {
	*httptest.Server

	Token      string
	ArtistID   int64
	ArtistName string
	Songs      []Song

	// FailPage makes that songs page answer 500. Zero disables it.
	FailPage int

	mu       sync.Mutex
	requests map[string]int
}

// NewServer starts a fake serving songs for artistName. Close it when done.
func NewServer(artistName string, songs []Song) *Server {
	s := &Server{
		Token:      "test-token",
		ArtistID:   42,
		ArtistName: artistName,
		Songs:      songs,
		requests:   make(map[string]int),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /search", s.authorized(s.handleSearch))
	mux.HandleFunc("GET /artists/{id}/songs", s.authorized(s.handleArtistSongs))
	mux.HandleFunc("GET /songs/{n}", s.handleSongPage)

	s.Server = httptest.NewServer(s.count(mux))
	return s
}

// Requests returns how many requests hit path.
func (s *Server) Requests(path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.requests[path]
}

// SongURL returns the page URL of the i-th song.
func (s *Server) SongURL(i int) string {
	return fmt.Sprintf("%s/songs/%d", s.URL, i)
}

func (s *Server) count(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.requests[r.URL.Path]++
		s.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

func (s *Server) authorized(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer "+s.Token {
			w.WriteHeader(http.StatusUnauthorized)
			writeJSON(w, map[string]any{"meta": map[string]any{"status": 401, "message": "unauthorized"}})
			return
		}
		next(w, r)
	}
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")

	hits := []map[string]any{
		s.hit(7, "Somebody Else", "Unrelated Song"),
	}
	if strings.EqualFold(q, s.ArtistName) {
		hits = append(hits, s.hit(s.ArtistID, s.ArtistName, "Hit Song"))
	}

	writeJSON(w, map[string]any{
		"meta":     map[string]any{"status": 200},
		"response": map[string]any{"hits": hits},
	})
}

func (s *Server) hit(artistID int64, artistName, title string) map[string]any {
	return map[string]any{
		"type": "song",
		"result": map[string]any{
			"title":          title,
			"primary_artist": map[string]any{"id": artistID, "name": artistName},
		},
	}
}

func (s *Server) handleArtistSongs(w http.ResponseWriter, r *http.Request) {
	if r.PathValue("id") != strconv.FormatInt(s.ArtistID, 10) {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	perPage, _ := strconv.Atoi(r.URL.Query().Get("per_page"))
	if page < 1 || perPage < 1 {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	if page == s.FailPage {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	songs := []map[string]any{}
	for i := (page - 1) * perPage; i < page*perPage && i < len(s.Songs); i++ {
		songs = append(songs, map[string]any{
			"id":             i + 1,
			"title":          s.Songs[i].Title,
			"url":            s.SongURL(i),
			"primary_artist": map[string]any{"id": s.ArtistID, "name": s.ArtistName},
		})
	}

	var nextPage any
	if page*perPage < len(s.Songs) {
		nextPage = page + 1
	}

	writeJSON(w, map[string]any{
		"meta":     map[string]any{"status": 200},
		"response": map[string]any{"songs": songs, "next_page": nextPage},
	})
}

func (s *Server) handleSongPage(w http.ResponseWriter, r *http.Request) {
	n, err := strconv.Atoi(r.PathValue("n"))
	if err != nil || n < 0 || n >= len(s.Songs) {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	song := s.Songs[n]

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if song.NoLyrics {
		fmt.Fprintf(w, "<html><body><h1>%s</h1><p>Instrumental</p></body></html>", html.EscapeString(song.Title))
		return
	}

	lines := strings.Split(song.Lyrics, "\n")
	for i, line := range lines {
		lines[i] = html.EscapeString(line)
	}
	fmt.Fprintf(w, `<html><body><h1>%s</h1><div data-lyrics-container="true">%s</div></body></html>`,
		html.EscapeString(song.Title), strings.Join(lines, "<br/>"))
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
