package configutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

type testConfig struct {
	Host string `json:"host"`
	Port int    `json:"port"`
}

func TestReadMissing(t *testing.T) {
	_, err := Read[testConfig](filepath.Join(t.TempDir(), "nope.json5"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestReadLayered(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "settings.json5")
	local := filepath.Join(dir, "settings.local.json5")

	require.NoError(t, os.WriteFile(base, []byte(`{host: "smtp.gmail.com", port: 465}`), 0o644))

	config, err := Read[testConfig](base)
	require.NoError(t, err)
	require.Equal(t, testConfig{Host: "smtp.gmail.com", Port: 465}, config)

	require.NoError(t, os.WriteFile(local, []byte(`{host: "localhost"}`), 0o644))

	config, err = Read[testConfig](base)
	require.NoError(t, err)
	require.Equal(t, "localhost", config.Host)
	require.Equal(t, 465, config.Port)
}

func TestReadLocalOnly(t *testing.T) {
	dir := t.TempDir()
	local := filepath.Join(dir, "settings.local.json5")
	require.NoError(t, os.WriteFile(local, []byte(`{port: 25}`), 0o644))

	config, err := Read[testConfig](filepath.Join(dir, "settings.json5"))
	require.NoError(t, err)
	require.Equal(t, 25, config.Port)
}
