package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	home := isolate(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".sememe", "data"), cfg.DataDir)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, 10, cfg.Search.K)
	assert.Zero(t, cfg.Search.Workers)
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	home := isolate(t)

	cfg := &Config{
		DataDir: "~/hownet",
		Log:     LogConfig{Level: "debug", Format: "json"},
		Search:  SearchConfig{K: 5, Workers: 4, MinNo: 3378},
	}
	require.NoError(t, Save(cfg))

	got, err := Load()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "hownet"), got.DataDir)
	assert.Equal(t, "debug", got.Log.Level)
	assert.Equal(t, "json", got.Log.Format)
	assert.Equal(t, SearchConfig{K: 5, Workers: 4, MinNo: 3378}, got.Search)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	isolate(t)
	require.NoError(t, Save(&Config{DataDir: "/srv/a", Log: LogConfig{Level: "info", Format: "text"}, Search: SearchConfig{K: 5}}))
	t.Setenv("SEMEME_DATA_DIR", "/srv/b")
	t.Setenv("SEMEME_K", "7")

	got, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "/srv/b", got.DataDir)
	assert.Equal(t, 7, got.Search.K)
}

func TestLoad_DotEnvFillsUnsetVariables(t *testing.T) {
	home := isolate(t)
	writeDotEnv(t, home, "SEMEME_LOG_LEVEL=error\nSEMEME_WORKERS=\n")

	got, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "error", got.Log.Level)
	assert.Zero(t, got.Search.Workers)
}

func TestLoad_ExplicitConfigPath(t *testing.T) {
	isolate(t)
	p := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(p, []byte("data_dir: /opt/hownet\nsearch:\n  k: 3\n"), 0o644))
	t.Setenv("SEMEME_CONFIG", p)

	got, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "/opt/hownet", got.DataDir)
	assert.Equal(t, 3, got.Search.K)
	assert.Equal(t, "warn", got.Log.Level)
}

func TestValidate(t *testing.T) {
	ok := Config{Log: LogConfig{Format: "JSON"}}
	assert.NoError(t, ok.Validate())

	bad := []Config{
		{Log: LogConfig{Format: "xml"}},
		{Log: LogConfig{Format: "text"}, Search: SearchConfig{K: -1}},
		{Log: LogConfig{Format: "text"}, Search: SearchConfig{Workers: -2}},
	}
	for _, c := range bad {
		assert.Error(t, c.Validate())
	}
}
