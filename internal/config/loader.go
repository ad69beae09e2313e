package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// NewViper builds the defaults layer: built-in values, overridable through
// TRENDS_* environment variables and an optional config file. CLI flags
// read their defaults from here and win over both.
func NewViper() *viper.Viper {
	v := viper.New()

	v.SetDefault("keywords", strings.Join(DefaultKeywords, ","))
	v.SetDefault("keywords_file", "")
	v.SetDefault("geo", strings.Join(DefaultGeos, ","))
	v.SetDefault("timeframe", "today 12-m")
	v.SetDefault("hl", "en-US")
	v.SetDefault("sleep", 1.2)
	v.SetDefault("retries", 3)
	v.SetDefault("backoff", 1.5)
	v.SetDefault("jitter", 0.6)
	v.SetDefault("proxy", "")
	v.SetDefault("cookie", "")
	v.SetDefault("cookie_file", "")
	v.SetDefault("display", "vertical")
	v.SetDefault("output", "")
	v.SetDefault("related", false)
	v.SetDefault("debug", false)

	v.SetEnvPrefix("TRENDS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v
}

// LoadFile merges an optional YAML config file into the defaults layer.
func LoadFile(v *viper.Viper, path string) error {
	if path == "" {
		return nil
	}
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("%w: failed to read config file %q: %v", ErrInvalid, path, err)
	}
	return nil
}
