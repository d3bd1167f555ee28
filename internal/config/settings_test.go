package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	settings, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	require.NoError(t, err)
	assert.Equal(t, DefaultSettings(), settings)
}

func TestLoad_JSONOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"max_songs": 10, "access_token": "abc"}`), 0644))

	settings, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 10, settings.MaxSongs)
	assert.Equal(t, "abc", settings.AccessToken)
	assert.Equal(t, 50, settings.PerPage, "unset fields keep defaults")
}

func TestLoad_YAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	yamlData := "per_page: 20\nrequests_per_second: 1.5\noutput_file_name_format: \"{artist}.txt\"\n"
	require.NoError(t, os.WriteFile(path, []byte(yamlData), 0644))

	settings, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 20, settings.PerPage)
	assert.InDelta(t, 1.5, settings.RequestsPerSecond, 1e-9)
	assert.Equal(t, "{artist}.txt", settings.OutputFileNameFormat)
	assert.Equal(t, 100, settings.MaxSongs)
}

func TestLoad_InvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{not json`), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestSettings_SaveRoundTrip(t *testing.T) {
	for _, name := range []string{"config.json", "config.yaml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "nested", name)

			settings := DefaultSettings()
			settings.MaxSongs = 7
			settings.AccessToken = "secret"
			require.NoError(t, settings.Save(path))

			loaded, err := Load(path)
			require.NoError(t, err)
			assert.Equal(t, settings, loaded)
		})
	}
}

func TestSettings_ApplyEnv(t *testing.T) {
	settings := DefaultSettings()
	settings.AccessToken = "from-file"

	t.Setenv(EnvAccessToken, "")
	settings.ApplyEnv()
	assert.Equal(t, "from-file", settings.AccessToken)

	t.Setenv(EnvAccessToken, "from-env")
	settings.ApplyEnv()
	assert.Equal(t, "from-env", settings.AccessToken)
}

func TestSettings_ToClientConfig(t *testing.T) {
	cfg := DefaultSettings().ToClientConfig()

	assert.Equal(t, "lyricstat", cfg.UserAgent)
	assert.Equal(t, 60*time.Second, cfg.Timeout)
	assert.Equal(t, 3, cfg.MaxRetries)
	assert.InDelta(t, 5.0, cfg.RequestsPerSecond, 1e-9)
}

func TestSettings_ToGeniusConfig(t *testing.T) {
	settings := DefaultSettings()
	settings.AccessToken = "tok"

	cfg := settings.ToGeniusConfig()
	assert.Equal(t, "https://api.genius.com", cfg.BaseURL)
	assert.Equal(t, "tok", cfg.AccessToken)
	assert.Equal(t, 50, cfg.PerPage)
}
