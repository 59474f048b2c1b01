package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// isolate runs the test in an empty directory with no DECKGEN_* overrides.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	for _, key := range []string{
		"DECKGEN_CONFIG_PATH", "DECKGEN_DECK_PATH", "DECKGEN_BACKUP_SUFFIX",
		"DECKGEN_ROSTER_PATH", "DECKGEN_ASSETS_DIR", "DECKGEN_DIGIT_THRESHOLD",
		"DECKGEN_LABEL_TOKENS", "DECKGEN_SERVER_HOST", "DECKGEN_SERVER_PORT",
		"DECKGEN_DB_PATH", "DECKGEN_LOG_LEVEL",
	} {
		t.Setenv(key, "")
	}
	return dir
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
	require.Equal(t, 10, cfg.Strip.DigitThreshold)
	require.Equal(t, ".backup", cfg.Deck.BackupSuffix)
}

func TestLoad_FileThenEnv(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "deckgen.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
deck:
  path: decks/auction.json
roster:
  path: players.tsv
strip:
  digit_threshold: 0
  label_tokens: ["name:", "ph:"]
log:
  level: debug
`), 0o644))

	t.Setenv("DECKGEN_CONFIG_PATH", path)
	t.Setenv("DECKGEN_ASSETS_DIR", "/srv/photos")
	t.Setenv("DECKGEN_LOG_LEVEL", "warn")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "decks/auction.json", cfg.Deck.Path)
	require.Equal(t, ".backup", cfg.Deck.BackupSuffix)
	require.Equal(t, "players.tsv", cfg.Roster.Path)
	require.Equal(t, "/srv/photos", cfg.Assets.Dir)
	require.Equal(t, 0, cfg.Strip.DigitThreshold)
	require.Equal(t, []string{"name:", "ph:"}, cfg.Strip.LabelTokens)
	require.Equal(t, "warn", cfg.Log.Level)
}

func TestLoad_DotEnv(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.Unsetenv("DECKGEN_DB_PATH"))
	t.Cleanup(func() { os.Unsetenv("DECKGEN_DB_PATH") })
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("DECKGEN_DB_PATH=ledger/runs.db\n"), 0o644))

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "ledger/runs.db", cfg.DB.Path)
}

func TestLoad_InvalidValues(t *testing.T) {
	isolate(t)
	t.Setenv("DECKGEN_DIGIT_THRESHOLD", "ten")
	_, err := Load()
	require.Error(t, err)

	t.Setenv("DECKGEN_DIGIT_THRESHOLD", "")
	t.Setenv("DECKGEN_SERVER_PORT", "http")
	_, err = Load()
	require.Error(t, err)

	t.Setenv("DECKGEN_SERVER_PORT", "")
	t.Setenv("DECKGEN_CONFIG_PATH", filepath.Join(t.TempDir(), "missing.yaml"))
	_, err = Load()
	require.Error(t, err)
}
