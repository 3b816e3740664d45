package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kamusis/sememe-cli/internal/lexicon"
	"github.com/kamusis/sememe-cli/internal/similarity"
	"github.com/kamusis/sememe-cli/internal/store"
)

// setupCmdTest isolates HOME and the SEMEME_* environment and returns the
// data dir commands will use.
func setupCmdTest(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("SEMEME_CONFIG", "")
	for _, k := range []string{"SEMEME_K", "SEMEME_WORKERS", "SEMEME_MIN_NO", "SEMEME_LOG_FORMAT"} {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
	t.Setenv("SEMEME_LOG_LEVEL", "error")
	dataDir := filepath.Join(home, "data")
	t.Setenv("SEMEME_DATA_DIR", dataDir)

	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })
	return dataDir
}

func resetFlags() {
	flagImportTimeout = 5 * time.Second
	flagParseWord, flagParseJSON = "W", false
	flagShowLang, flagShowList, flagShowMerge, flagShowJSON = "", false, false, false
	flagSimSenses = false
	flagNearestK, flagNearestWorkers, flagNearestJSON = -1, 0, false
	flagSememeSenses = false
}

func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func writeCmdBundle(t *testing.T) string {
	t.Helper()
	src := filepath.Join(t.TempDir(), "bundle")
	senses := []*lexicon.Sense{
		{No: "3", EnWord: "apple", EnGrammar: "noun", ZhWord: "苹果", ZhGrammar: "noun", Def: "{fruit|水果}"},
		{No: "7", EnWord: "apple", EnGrammar: "noun", ZhWord: "苹果", ZhGrammar: "noun", Def: "{computer|电脑:modifier={SpeBrand|特定牌子}}"},
		{No: "9", EnWord: "pear", EnGrammar: "noun", ZhWord: "梨", ZhGrammar: "noun", Def: "{fruit|水果}"},
		{No: "12", EnWord: "city", EnGrammar: "noun", ZhWord: "市", ZhGrammar: "noun", Def: "{place|地方:PlaceSect={city|市}}"},
	}
	sememes := []store.SememeEntry{
		{ID: "fruit|水果", Freq: 2},
		{ID: "computer|电脑", Freq: 1},
		{ID: "SpeBrand|特定牌子", Freq: 1},
		{ID: "place|地方", Freq: 1},
		{ID: "city|市", Freq: 1},
	}
	pairs := []store.PairEntry{
		{A: "fruit|水果", B: "fruit|水果", Sim: 1},
		{A: "fruit|水果", B: "place|地方", Sim: 0.2},
		{A: "computer|电脑", B: "fruit|水果", Sim: 0.1},
		{A: "computer|电脑", B: "place|地方", Sim: 0.3},
		{A: "computer|电脑", B: "computer|电脑", Sim: 1},
		{A: "SpeBrand|特定牌子", B: "SpeBrand|特定牌子", Sim: 1},
	}
	require.NoError(t, store.Write(src, store.Manifest{Source: "test"}, senses, sememes, pairs))
	return src
}

func importBundle(t *testing.T) {
	t.Helper()
	out, err := runCmd(t, "import", writeCmdBundle(t))
	require.NoError(t, err, out)
	assert.Contains(t, out, "senses=4 sememes=5 pairs=6")
}

func TestParseCmd_JSON(t *testing.T) {
	setupCmdTest(t)

	out, err := runCmd(t, "parse", "{human|人:{guide|引导:agent={~}}}", "--word", "导游", "--json")
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"导游","role":"sense","children":[
		{"name":"human|人","role":"None","children":[{"name":"guide|引导","role":"agent"}]}]}`, out)
}

func TestParseCmd_Text(t *testing.T) {
	setupCmdTest(t)

	out, err := runCmd(t, "parse", "{place|地方:PlaceSect={city|市}}")
	require.NoError(t, err)
	assert.Equal(t, "W [sense]\n  place|地方 [None]\n    city|市 [PlaceSect]\n", out)
}

func TestSimCmd_NotInitialized(t *testing.T) {
	setupCmdTest(t)

	_, err := runCmd(t, "sim", "apple", "pear")
	require.Error(t, err)
	assert.ErrorIs(t, err, similarity.ErrNotInitialized)
	assert.NotErrorIs(t, err, similarity.ErrNotFound)
}

func TestImportThenSim(t *testing.T) {
	dataDir := setupCmdTest(t)
	importBundle(t)

	_, err := os.Stat(filepath.Join(dataDir, "manifest.json"))
	require.NoError(t, err)

	out, err := runCmd(t, "sim", "apple", "梨")
	require.NoError(t, err)
	assert.Equal(t, "1.000000\n", out)

	out, err = runCmd(t, "sim", "--senses", "7", "12")
	require.NoError(t, err)
	assert.Equal(t, "0.240000\n", out)

	_, err = runCmd(t, "sim", "apple", "durian")
	assert.ErrorIs(t, err, similarity.ErrNotFound)
}

func TestImport_RejectsBrokenBundle(t *testing.T) {
	setupCmdTest(t)

	_, err := runCmd(t, "import", t.TempDir())
	assert.ErrorIs(t, err, store.ErrNoBundle)
}

func TestShowCmd(t *testing.T) {
	setupCmdTest(t)
	importBundle(t)

	out, err := runCmd(t, "show", "apple")
	require.NoError(t, err)
	assert.Contains(t, out, "● No.3 apple (noun) / 苹果 (noun)")
	assert.Contains(t, out, "        SpeBrand|特定牌子 [modifier]")

	out, err = runCmd(t, "show", "苹果", "--list", "--merge", "--json")
	require.NoError(t, err)
	var merged []string
	require.NoError(t, json.Unmarshal([]byte(out), &merged))
	assert.Equal(t, []string{"fruit|水果", "computer|电脑", "SpeBrand|特定牌子"}, merged)

	_, err = runCmd(t, "show", "apple", "--lang", "zh")
	assert.ErrorIs(t, err, similarity.ErrNotFound)

	_, err = runCmd(t, "show", "apple", "--lang", "fr")
	assert.Error(t, err)
}

func TestNearestCmd_JSON(t *testing.T) {
	setupCmdTest(t)
	importBundle(t)

	out, err := runCmd(t, "nearest", "apple", "-k", "1", "--workers", "2", "--json")
	require.NoError(t, err)

	var res []resultView
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	require.Len(t, res, 2)
	assert.Equal(t, "3", res[0].No)
	require.Len(t, res[0].Neighbours, 1)
	assert.Equal(t, "9", res[0].Neighbours[0].No)
	assert.Equal(t, "7", res[1].No)
	require.Len(t, res[1].Neighbours, 1)
	assert.Equal(t, "12", res[1].Neighbours[0].No)
	assert.InDelta(t, 0.24, res[1].Neighbours[0].Score, 1e-9)
}

func TestSememeCmd(t *testing.T) {
	setupCmdTest(t)
	importBundle(t)

	out, err := runCmd(t, "sememe", "市")
	require.NoError(t, err)
	assert.Equal(t, "city|市\tfreq=1\n", out)

	out, err = runCmd(t, "sememe", "fruit", "--senses")
	require.NoError(t, err)
	assert.Contains(t, out, "No.3 apple")
	assert.Contains(t, out, "No.9 pear")
	assert.NotContains(t, out, "No.12")

	out, err = runCmd(t, "sememe", "nothing-like-this")
	require.NoError(t, err)
	assert.Contains(t, out, "no sememe matches")
}

func TestStatusCmd(t *testing.T) {
	setupCmdTest(t)

	out, err := runCmd(t, "status")
	require.NoError(t, err)
	assert.Contains(t, out, "engine not initialized")

	importBundle(t)
	out, err = runCmd(t, "status")
	require.NoError(t, err)
	assert.Contains(t, out, "senses=4 sememes=5 pairs=6")
	assert.Contains(t, out, "engine ready")
}

func TestInitCmd(t *testing.T) {
	dataDir := setupCmdTest(t)

	out, err := runCmd(t, "init")
	require.NoError(t, err)
	assert.Contains(t, out, "Config written")

	home := os.Getenv("HOME")
	for _, p := range []string{
		filepath.Join(home, ".sememe", "sememe.yaml"),
		filepath.Join(home, ".sememe", ".env"),
		dataDir,
	} {
		_, err := os.Stat(p)
		assert.NoError(t, err, p)
	}

	out, err = runCmd(t, "init")
	require.NoError(t, err)
	assert.Contains(t, out, "Config already exists")
}

func TestStatusCmd_ShowsDotEnvOverrides(t *testing.T) {
	setupCmdTest(t)
	home := os.Getenv("HOME")
	require.NoError(t, os.MkdirAll(filepath.Join(home, ".sememe"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(home, ".sememe", ".env"), []byte("SEMEME_MIN_NO=3378\nSEMEME_WORKERS=\n"), 0o600))

	out, err := runCmd(t, "status")
	require.NoError(t, err)
	assert.Contains(t, out, "[.env] SEMEME_MIN_NO=3378")
	assert.Contains(t, out, "min_no=3378")
	assert.NotContains(t, out, "SEMEME_WORKERS=")
}
