package main

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rpggio/deckgen/internal/document"
	"github.com/rpggio/deckgen/internal/document/doctest"
	"github.com/stretchr/testify/require"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"bogus", slog.LevelInfo},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			require.Equal(t, tt.want, parseLogLevel(tt.in))
		})
	}
}

func TestLogFileWriter_KeepsTail(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "deckgen.log")
	w, file, err := newLogFileWriter(path)
	require.NoError(t, err)
	defer file.Close()
	w.maxSize = 100
	w.keepSize = 40

	_, err = w.Write(bytes.Repeat([]byte("a"), 90))
	require.NoError(t, err)
	_, err = w.Write(bytes.Repeat([]byte("b"), 30))
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Len(t, data, 40)
	require.Equal(t, strings.Repeat("a", 10)+strings.Repeat("b", 30), string(data))
}

const cliRoster = `[
  {"Name": "Kiran", "Age": "31", "Category": "Batsman", "Ph": "9740834449"},
  {"Name": "Anil", "Age": "25", "Category": "Bowler", "Ph": "9876543210"}
]`

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestCLI_GenerateVerifyReorder(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	deckPath := filepath.Join(dir, "deck.json")
	require.NoError(t, document.NewFileStore().Save(doctest.TemplateDeck(), deckPath))
	rosterPath := doctest.WriteBytes(t, dir, "roster.json", []byte(cliRoster))
	assetsDir := filepath.Join(dir, "photos")
	require.NoError(t, os.MkdirAll(assetsDir, 0o755))
	doctest.WriteImage(t, assetsDir, "9740834449.png", 400, 300)
	dbPath := filepath.Join(dir, "runs.db")

	out, err := runCLI(t, "generate", "--deck", deckPath, "--db", dbPath,
		"--roster", rosterPath, "--assets", assetsDir)
	require.NoError(t, err)
	require.Contains(t, out, "2 records: 2 committed (1 with image, 1 without)")

	out, err = runCLI(t, "verify", "--deck", deckPath, "--no-history")
	require.NoError(t, err)
	require.Contains(t, out, "slide 1: Kiran")
	require.Contains(t, out, "slide 2: Anil")

	out, err = runCLI(t, "reorder", "--deck", deckPath, "--db", dbPath)
	require.NoError(t, err)
	require.Contains(t, out, "backup at "+deckPath+".backup")

	deck, err := document.NewFileStore().Load(deckPath)
	require.NoError(t, err)
	require.Len(t, deck.Slides, 3)
	require.Equal(t, "Anil", document.OverlayName(deck.Slides[1]))
	require.Equal(t, "Kiran", document.OverlayName(deck.Slides[2]))

	out, err = runCLI(t, "history", "--db", dbPath)
	require.NoError(t, err)
	require.Contains(t, out, "generate")
	require.Contains(t, out, "reorder")

	out, err = runCLI(t, "reset", "--deck", deckPath, "--no-history")
	require.NoError(t, err)
	require.Contains(t, out, "removed 2 slides")
}

func TestCLI_Dedup(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	photos := filepath.Join(dir, "photos")
	require.NoError(t, os.MkdirAll(photos, 0o755))
	orig := doctest.WriteImage(t, photos, "111.png", 10, 10)
	data, err := os.ReadFile(orig)
	require.NoError(t, err)
	dup := doctest.WriteBytes(t, photos, "111-1.png", data)

	out, err := runCLI(t, "dedup", "--assets", photos, "--no-history")
	require.NoError(t, err)
	require.Contains(t, out, "dry run")
	require.FileExists(t, dup)

	out, err = runCLI(t, "dedup", "--assets", photos, "--yes", "--no-history")
	require.NoError(t, err)
	require.Contains(t, out, "deleted 1 files")
	require.NoFileExists(t, dup)
	require.FileExists(t, orig)
}

func TestCLI_HistoryDisabled(t *testing.T) {
	t.Chdir(t.TempDir())
	_, err := runCLI(t, "history", "--no-history")
	require.Error(t, err)
}
