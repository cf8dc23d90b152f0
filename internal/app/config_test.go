package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	t.Parallel()
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "mars.toml"), nil)
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
}

func TestLoadConfigFromFile(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "mars.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
location = "ship.json"
log_level = "debug"
log_format = "json"
`), 0o600))

	cfg, err := LoadConfig(path, nil)
	require.NoError(t, err)
	require.Equal(t, "ship.json", cfg.Location)
	require.Equal(t, "debug", cfg.LogLevel)
	require.Equal(t, "json", cfg.LogFormat)
	require.Equal(t, defaultIndent, cfg.Indent)
}

func TestLoadConfigEnvOverridesFile(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "mars.toml")
	require.NoError(t, os.WriteFile(path, []byte(`location = "ship.json"`), 0o600))

	cfg, err := LoadConfig(path, map[string]string{
		"MARS_LOCATION":   "other.json",
		"MARS_PASSPHRASE": "hunter2",
	})
	require.NoError(t, err)
	require.Equal(t, "other.json", cfg.Location)
	require.Equal(t, "hunter2", cfg.Passphrase)
}

func TestLoadConfigRejectsBadTOML(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "mars.toml")
	require.NoError(t, os.WriteFile(path, []byte(`location = `), 0o600))

	_, err := LoadConfig(path, nil)
	require.ErrorIs(t, err, ErrInvalidConfig)
}

func TestLoadConfigRejectsBadLevel(t *testing.T) {
	t.Parallel()
	_, err := LoadConfig("", map[string]string{"MARS_LOG_LEVEL": "loud"})
	require.ErrorIs(t, err, ErrInvalidConfig)
}

func TestValidateRejectsBadFormat(t *testing.T) {
	t.Parallel()
	cfg := Default()
	cfg.LogFormat = "xml"
	require.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
}
