package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadDefaults(t *testing.T) Config {
	t.Helper()
	var cfg Config
	require.NoError(t, NewViper().Unmarshal(&cfg))
	return cfg
}

func TestDefaults(t *testing.T) {
	cfg := loadDefaults(t)

	assert.Equal(t, "WW,US,BR,ES,IN,ID,RU", cfg.Geo)
	assert.Equal(t, "today 12-m", cfg.Timeframe)
	assert.Equal(t, "en-US", cfg.HL)
	assert.Equal(t, 1.2, cfg.Sleep)
	assert.Equal(t, 3, cfg.Retries)
	assert.Equal(t, 1.5, cfg.Backoff)
	assert.Equal(t, 0.6, cfg.Jitter)
	assert.Equal(t, "vertical", cfg.Display)
	assert.False(t, cfg.Related)
	assert.NoError(t, cfg.Validate())
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("TRENDS_GEO", "US,DE")
	t.Setenv("TRENDS_RETRIES", "7")

	cfg := loadDefaults(t)
	assert.Equal(t, "US,DE", cfg.Geo)
	assert.Equal(t, 7, cfg.Retries)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"valid defaults", func(c *Config) {}, true},
		{"wide display", func(c *Config) { c.Display = "wide" }, true},
		{"bad display", func(c *Config) { c.Display = "sideways" }, false},
		{"bad language tag", func(c *Config) { c.HL = "no_such-tag!" }, false},
		{"russian tag", func(c *Config) { c.HL = "ru-RU" }, true},
		{"negative retries", func(c *Config) { c.Retries = -1 }, false},
		{"negative backoff", func(c *Config) { c.Backoff = -0.5 }, false},
		{"empty timeframe", func(c *Config) { c.Timeframe = "" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := loadDefaults(t)
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.ok {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalid)
			}
		})
	}
}

func TestResolveCookie_Precedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cookie.txt")
	require.NoError(t, os.WriteFile(path, []byte("NID=from-file\n"), 0600))

	t.Setenv("TRENDS_COOKIE", "NID=from-env")

	cfg := Config{CookieFile: path, Cookie: "NID=from-flag"}
	assert.Equal(t, "NID=from-file", cfg.ResolveCookie())

	cfg = Config{Cookie: "NID=from-flag"}
	assert.Equal(t, "NID=from-flag", cfg.ResolveCookie())

	cfg = Config{}
	assert.Equal(t, "NID=from-env", cfg.ResolveCookie())
}

func TestResolveCookie_UnreadableFileFallsThrough(t *testing.T) {
	t.Setenv("TRENDS_COOKIE", "")
	cfg := Config{
		CookieFile: filepath.Join(t.TempDir(), "absent.txt"),
		Cookie:     "NID=from-flag",
	}
	assert.Equal(t, "NID=from-flag", cfg.ResolveCookie())
}

func TestGeos(t *testing.T) {
	cfg := Config{Geo: " ww , us ,,br "}
	assert.Equal(t, []string{"ww", "us", "br"}, cfg.Geos())

	cfg = Config{Geo: " , "}
	assert.Equal(t, DefaultGeos, cfg.Geos())
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("geo: US,JP\nsleep: 2.5\n"), 0644))

	v := NewViper()
	require.NoError(t, LoadFile(v, path))

	var cfg Config
	require.NoError(t, v.Unmarshal(&cfg))
	assert.Equal(t, "US,JP", cfg.Geo)
	assert.Equal(t, 2.5, cfg.Sleep)
	// Untouched keys keep their defaults.
	assert.Equal(t, "today 12-m", cfg.Timeframe)
}

func TestLoadFile_Missing(t *testing.T) {
	v := NewViper()
	err := LoadFile(v, filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalid)
}
