package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/handiism/lyricstat/internal/genius"
	lyrichttp "github.com/handiism/lyricstat/internal/http"
)

// EnvAccessToken names the environment variable that overrides AccessToken.
const EnvAccessToken = "GENIUS_ACCESS_TOKEN"

// Settings holds all configuration options.
type Settings struct {
	// Genius API settings
	AccessToken           string `json:"access_token" yaml:"access_token"`
	BaseURL               string `json:"base_url" yaml:"base_url"`
	UserAgent             string `json:"user_agent" yaml:"user_agent"`
	RequestTimeoutSeconds int    `json:"request_timeout_seconds" yaml:"request_timeout_seconds"`

	// Song listing
	MaxSongs int `json:"max_songs" yaml:"max_songs"`
	PerPage  int `json:"per_page" yaml:"per_page"`

	// Fetch behavior
	MaxConcurrentFetches int     `json:"max_concurrent_fetches" yaml:"max_concurrent_fetches"`
	MaxRetries           int     `json:"max_retries" yaml:"max_retries"`
	RetryCooldown        float64 `json:"retry_cooldown" yaml:"retry_cooldown"`
	RetryExponent        float64 `json:"retry_exponent" yaml:"retry_exponent"`
	RequestsPerSecond    float64 `json:"requests_per_second" yaml:"requests_per_second"`

	// Output
	OutputFileNameFormat string `json:"output_file_name_format" yaml:"output_file_name_format"`
}

// DefaultSettings returns settings with default values.
func DefaultSettings() *Settings {
	return &Settings{
		BaseURL:               "https://api.genius.com",
		UserAgent:             "lyricstat",
		RequestTimeoutSeconds: 60,

		MaxSongs: 100,
		PerPage:  50,

		MaxConcurrentFetches: 4,
		MaxRetries:           3,
		RetryCooldown:        0.2,
		RetryExponent:        4.0,
		RequestsPerSecond:    5,

		OutputFileNameFormat: "{artist}_lyrics.txt",
	}
}

// Load reads settings from a JSON or YAML file.
//
// Files ending in .yaml or .yml are decoded as YAML, anything else as JSON.
// Fields missing from the file keep their default values. A missing file
// yields DefaultSettings.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultSettings(), nil
		}
		return nil, err
	}

	settings := DefaultSettings()
	if isYAML(path) {
		err = yaml.Unmarshal(data, settings)
	} else {
		err = json.Unmarshal(data, settings)
	}
	if err != nil {
		return nil, err
	}

	return settings, nil
}

// Save writes settings to a JSON or YAML file, chosen by extension.
func (s *Settings) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	var (
		data []byte
		err  error
	)
	if isYAML(path) {
		data, err = yaml.Marshal(s)
	} else {
		data, err = json.MarshalIndent(s, "", "  ")
	}
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0600)
}

// ApplyEnv overrides settings from the environment.
func (s *Settings) ApplyEnv() {
	if token := os.Getenv(EnvAccessToken); token != "" {
		s.AccessToken = token
	}
}

// ToClientConfig converts settings to the HTTP client configuration.
func (s *Settings) ToClientConfig() *lyrichttp.Config {
	return &lyrichttp.Config{
		UserAgent:         s.UserAgent,
		Timeout:           time.Duration(s.RequestTimeoutSeconds) * time.Second,
		MaxRetries:        s.MaxRetries,
		RetryCooldown:     s.RetryCooldown,
		RetryExponent:     s.RetryExponent,
		RequestsPerSecond: s.RequestsPerSecond,
	}
}

// ToGeniusConfig converts settings to the Genius API configuration.
func (s *Settings) ToGeniusConfig() *genius.Config {
	return &genius.Config{
		BaseURL:     s.BaseURL,
		AccessToken: s.AccessToken,
		PerPage:     s.PerPage,
	}
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}
