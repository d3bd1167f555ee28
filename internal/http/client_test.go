package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *Config {
	return &Config{
		UserAgent:     "lyricstat-test",
		Timeout:       5 * time.Second,
		MaxRetries:    2,
		RetryCooldown: 0.001,
		RetryExponent: 2,
	}
}

func TestClient_GetSendsHeaders(t *testing.T) {
	var gotUA, gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte("ok"))
	}))
	defer srv.Close()

	client := NewClient(testConfig(), nil)

	body, err := client.GetString(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "ok", body)
	assert.Equal(t, "lyricstat-test", gotUA)
	assert.Empty(t, gotAuth, "plain client must not send a token")

	_, err = client.WithBearerToken("tok").Get(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok", gotAuth)
}

func TestClient_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte("finally"))
	}))
	defer srv.Close()

	body, err := NewClient(testConfig(), nil).GetString(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "finally", body)
	assert.EqualValues(t, 3, calls.Load())
}

func TestClient_DoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "missing", http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := NewClient(testConfig(), nil).Get(context.Background(), srv.URL)

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusNotFound, statusErr.Code)
	assert.Contains(t, statusErr.Body, "missing")
	assert.False(t, statusErr.Temporary())
	assert.EqualValues(t, 1, calls.Load())
}

func TestClient_GivesUpAfterMaxRetries(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := NewClient(testConfig(), nil).Get(context.Background(), srv.URL)
	require.Error(t, err)
	assert.EqualValues(t, 3, calls.Load())
}

func TestClient_GetJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"name":"value","n":3}`))
	}))
	defer srv.Close()

	var out struct {
		Name string `json:"name"`
		N    int    `json:"n"`
	}
	require.NoError(t, NewClient(testConfig(), nil).GetJSON(context.Background(), srv.URL, &out))
	assert.Equal(t, "value", out.Name)
	assert.Equal(t, 3, out.N)
}

func TestClient_GetJSONInvalid(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>`))
	}))
	defer srv.Close()

	var out map[string]any
	err := NewClient(testConfig(), nil).GetJSON(context.Background(), srv.URL, &out)
	assert.ErrorContains(t, err, "decoding response")
}

func TestClient_CancelledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewClient(testConfig(), nil).Get(ctx, srv.URL)
	assert.ErrorIs(t, err, context.Canceled)
}
