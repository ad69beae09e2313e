// Package config holds the immutable run configuration. Defaults layer as
// config file < environment (TRENDS_ prefix) < CLI flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"golang.org/x/text/language"

	"github.com/akvise/trends-checker/pkg/logger"
)

// ErrInvalid marks configuration problems; the process exits with code 2.
var ErrInvalid = errors.New("invalid configuration")

// DefaultKeywords is the probe set the tool ships with: real-time YouTube
// translation and dubbing interest.
var DefaultKeywords = []string{
	"real time translation YouTube",
	"live translation YouTube",
	"AI dubbing YouTube",
	"YouTube voiceover",
	"automatic translation YouTube",
}

// DefaultGeos covers worldwide plus six countries.
var DefaultGeos = []string{"WW", "US", "BR", "ES", "IN", "ID", "RU"}

type Config struct {
	Keywords     string  `mapstructure:"keywords"`
	KeywordsFile string  `mapstructure:"keywords_file"`
	Geo          string  `mapstructure:"geo"`
	Timeframe    string  `mapstructure:"timeframe"`
	HL           string  `mapstructure:"hl"`
	Sleep        float64 `mapstructure:"sleep"`
	Retries      int     `mapstructure:"retries"`
	Backoff      float64 `mapstructure:"backoff"`
	Jitter       float64 `mapstructure:"jitter"`
	Proxy        string  `mapstructure:"proxy"`
	Cookie       string  `mapstructure:"cookie"`
	CookieFile   string  `mapstructure:"cookie_file"`
	Display      string  `mapstructure:"display"`
	Output       string  `mapstructure:"output"`
	Related      bool    `mapstructure:"related"`
	Debug        bool    `mapstructure:"debug"`
}

// Validate checks the fields a bad value would otherwise surface deep in
// the run.
func (c *Config) Validate() error {
	if c.Display != "wide" && c.Display != "vertical" {
		return fmt.Errorf("%w: display must be 'wide' or 'vertical', got %q", ErrInvalid, c.Display)
	}
	if _, err := language.Parse(c.HL); err != nil {
		return fmt.Errorf("%w: hl %q is not a valid language tag", ErrInvalid, c.HL)
	}
	if c.Retries < 0 {
		return fmt.Errorf("%w: retries must be >= 0", ErrInvalid)
	}
	if c.Sleep < 0 || c.Backoff < 0 || c.Jitter < 0 {
		return fmt.Errorf("%w: sleep, backoff and jitter must be >= 0", ErrInvalid)
	}
	if c.Timeframe == "" {
		return fmt.Errorf("%w: timeframe cannot be empty", ErrInvalid)
	}
	return nil
}

// ResolveCookie picks the raw Cookie header value: cookie file, then the
// inline flag, then the TRENDS_COOKIE environment variable. An unreadable
// cookie file is a warning, not an error.
func (c *Config) ResolveCookie() string {
	if c.CookieFile != "" {
		data, err := os.ReadFile(c.CookieFile)
		if err != nil {
			logger.WithError(err).Warn("failed to read cookie file")
		} else if cookie := strings.TrimSpace(string(data)); cookie != "" {
			return cookie
		}
	}
	if cookie := strings.TrimSpace(c.Cookie); cookie != "" {
		return cookie
	}
	return strings.TrimSpace(os.Getenv("TRENDS_COOKIE"))
}

// Geos splits the region list, falling back to the defaults when empty.
func (c *Config) Geos() []string {
	parts := strings.Split(c.Geo, ",")
	geos := make([]string, 0, len(parts))
	for _, p := range parts {
		if cleaned := strings.TrimSpace(p); cleaned != "" {
			geos = append(geos, cleaned)
		}
	}
	if len(geos) == 0 {
		return DefaultGeos
	}
	return geos
}
