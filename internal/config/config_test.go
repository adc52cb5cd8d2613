package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/icemuppet/cinema/pkg/scene"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Full(t *testing.T) {
	path := writeConfig(t, `
[log]
level = "debug"

[libraries]
movies = "/media/Movies"
shows = "/media/Shows"

[cache]
dir = "/var/cache/cinema"

[database]
path = "/var/lib/cinema/cinema.db"

[tmdb]
api_key = "secret"

[resolve]
concurrency = 8
timeout = "30s"

[arrivals]
movies = 20
shows = 10
episodes_per_show = 5
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "/media/Movies", cfg.Libraries.Movies)
	assert.Equal(t, "/var/cache/cinema", cfg.Cache.Dir)
	assert.Equal(t, "secret", cfg.TMDB.APIKey)
	assert.Equal(t, 8, cfg.Resolve.Concurrency)
	assert.Equal(t, Duration(30*time.Second), cfg.Resolve.Timeout)
	assert.Equal(t, 20, cfg.Arrivals.Movies)
}

func TestLoad_Defaults(t *testing.T) {
	path := writeConfig(t, `
[libraries]
movies = "/media/Movies"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "./data/cache", cfg.Cache.Dir)
	assert.Equal(t, "./data/cinema.db", cfg.Database.Path)
	assert.Equal(t, 4, cfg.Resolve.Concurrency)
	assert.Equal(t, Duration(15*time.Second), cfg.Resolve.Timeout)
	assert.Equal(t, 16, cfg.Arrivals.Movies)
	assert.Equal(t, 8, cfg.Arrivals.Shows)
	assert.Equal(t, 3, cfg.Arrivals.EpisodesPerShow)
}

func TestLoad_EnvSubstitution(t *testing.T) {
	t.Setenv("CINEMA_TEST_KEY", "from-env")
	path := writeConfig(t, `
[libraries]
movies = "/media/Movies"

[tmdb]
api_key = "${CINEMA_TEST_KEY}"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.TMDB.APIKey)
}

func TestLoad_MissingEnvVar(t *testing.T) {
	path := writeConfig(t, `
[tmdb]
api_key = "${CINEMA_TEST_DEFINITELY_UNSET_VAR}"
`)

	_, err := Load(path)
	require.Error(t, err)
	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Contains(t, cfgErr.Missing, "CINEMA_TEST_DEFINITELY_UNSET_VAR")
}

func TestLoad_CredentialEnvFallback(t *testing.T) {
	t.Setenv("TMDB_API_KEY", "ambient-key")
	path := writeConfig(t, `
[libraries]
movies = "/media/Movies"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "ambient-key", cfg.TMDB.APIKey)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}

func TestLibrariesRoots(t *testing.T) {
	l := LibrariesConfig{Movies: "/m", Standup: "/s"}
	roots := l.Roots()
	assert.Equal(t, map[scene.Category]string{
		scene.CategoryMovies:  "/m",
		scene.CategoryStandup: "/s",
	}, roots)
}

func TestValidate(t *testing.T) {
	dir := t.TempDir()
	cfg := &Config{}
	cfg.applyDefaults()
	cfg.Libraries.Movies = dir

	assert.Nil(t, cfg.Validate())

	cfg.Log.Level = "verbose"
	cfg.Resolve.Concurrency = 0
	cerr := cfg.Validate()
	require.NotNil(t, cerr)
	assert.True(t, cerr.HasErrors())
	assert.Len(t, cerr.Errors, 2)

	none := &Config{}
	none.applyDefaults()
	cerr = none.Validate()
	require.NotNil(t, cerr)
	require.Len(t, cerr.Errors, 1)
	assert.Contains(t, cerr.Errors[0], "at least one category root")
}

func TestValidate_MissingRootIsWarning(t *testing.T) {
	cfg := &Config{}
	cfg.applyDefaults()
	cfg.Libraries.Shows = "/definitely/not/here"

	cerr := cfg.Validate()
	require.NotNil(t, cerr)
	require.Len(t, cerr.Errors, 1)
	assert.Contains(t, cerr.Errors[0], "does not exist")
}
