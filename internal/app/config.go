package app

import (
	"errors"
	"fmt"
	"os"

	toml "github.com/pelletier/go-toml/v2"

	mlog "mars/internal/log"
)

const (
	defaultLogLevel  = "warn"
	defaultLogFormat = "text"
	defaultIndent    = "  "
)

var ErrInvalidConfig = errors.New("invalid config")

// Config holds runtime wiring options for building the app.
type Config struct {
	Location   string `toml:"location"`   // payload file; empty means store.DefaultLocation
	Passphrase string `toml:"passphrase"` // seals the payload file when set
	Indent     string `toml:"indent"`
	LogLevel   string `toml:"log_level"`
	LogFormat  string `toml:"log_format"` // text or json
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		Indent:    defaultIndent,
		LogLevel:  defaultLogLevel,
		LogFormat: defaultLogFormat,
	}
}

// LoadConfig reads the TOML file at path on top of Default, then applies
// environment overrides from env. A missing file is not an error; an empty
// path skips the file.
func LoadConfig(path string, env map[string]string) (Config, error) {
	cfg := Default()
	if path != "" {
		b, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return Config{}, fmt.Errorf("read config: %w", err)
		default:
			if err := toml.Unmarshal(b, &cfg); err != nil {
				return Config{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
			}
		}
	}
	applyEnv(&cfg, env)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports whether cfg can be used to build a Wire.
func (c Config) Validate() error {
	if _, err := mlog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		return fmt.Errorf("%w: log_format must be text or json, got %q", ErrInvalidConfig, c.LogFormat)
	}
	return nil
}

func applyEnv(cfg *Config, env map[string]string) {
	if v := env["MARS_LOCATION"]; v != "" {
		cfg.Location = v
	}
	if v := env["MARS_PASSPHRASE"]; v != "" {
		cfg.Passphrase = v
	}
	if v := env["MARS_LOG_LEVEL"]; v != "" {
		cfg.LogLevel = v
	}
}

// EnvMap snapshots the process environment for LoadConfig.
func EnvMap() map[string]string {
	out := make(map[string]string)
	for _, key := range []string{"MARS_LOCATION", "MARS_PASSPHRASE", "MARS_LOG_LEVEL"} {
		if v, ok := os.LookupEnv(key); ok {
			out[key] = v
		}
	}
	return out
}
