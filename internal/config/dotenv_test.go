package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points HOME at a fresh directory and makes sure the given
// variables start unset and are restored afterwards.
func isolate(t *testing.T, keys ...string) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("SEMEME_CONFIG", "")
	for _, k := range append(keys, "SEMEME_DATA_DIR", "SEMEME_LOG_LEVEL", "SEMEME_LOG_FORMAT", "SEMEME_K", "SEMEME_WORKERS", "SEMEME_MIN_NO") {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
	return home
}

func writeDotEnv(t *testing.T, home, body string) string {
	t.Helper()
	dir := filepath.Join(home, ".sememe")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	p := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
	return p
}

func TestLoadDotEnv_NotExist(t *testing.T) {
	isolate(t)

	m, err := LoadDotEnv()
	require.NoError(t, err)
	assert.Empty(t, m)
}

func TestLoadDotEnv_ParsesKeyValue(t *testing.T) {
	home := isolate(t)
	writeDotEnv(t, home, "# comment\nA=1\nB=\"two words\"\n")

	m, err := LoadDotEnv()
	require.NoError(t, err)
	assert.Equal(t, "1", m["A"])
	assert.Equal(t, "two words", m["B"])
}

func TestEnsureDotEnvTemplate_DoesNotOverwrite(t *testing.T) {
	home := isolate(t)
	p := writeDotEnv(t, home, "SEMEME_LOG_LEVEL=debug\n")

	require.NoError(t, EnsureDotEnvTemplate())
	b, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.Equal(t, "SEMEME_LOG_LEVEL=debug\n", string(b))
}

func TestEnsureDotEnvTemplate_CreatesWhenMissing(t *testing.T) {
	home := isolate(t)
	require.NoError(t, os.MkdirAll(filepath.Join(home, ".sememe"), 0o755))

	require.NoError(t, EnsureDotEnvTemplate())
	b, err := os.ReadFile(filepath.Join(home, ".sememe", ".env"))
	require.NoError(t, err)
	assert.Contains(t, string(b), "SEMEME_DATA_DIR=")
}
