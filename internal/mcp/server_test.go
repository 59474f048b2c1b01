package mcp

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/rpggio/deckgen/internal/document"
	"github.com/rpggio/deckgen/internal/document/doctest"
	"github.com/rpggio/deckgen/internal/domain/generation"
	"github.com/rpggio/deckgen/internal/domain/history"
	"github.com/rpggio/deckgen/internal/domain/reorder"
	"github.com/rpggio/deckgen/internal/repository"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/require"
)

type historyStub struct {
	listFn func(context.Context, history.ListRunsOptions) ([]history.Run, error)
	getFn  func(context.Context, string) (*history.RunDetail, error)
}

func (h historyStub) ListRuns(ctx context.Context, opts history.ListRunsOptions) ([]history.Run, error) {
	return h.listFn(ctx, opts)
}
func (h historyStub) GetRun(ctx context.Context, id string) (*history.RunDetail, error) {
	return h.getFn(ctx, id)
}

type fixture struct {
	deckPath string
	session  *sdkmcp.ClientSession
}

func newFixture(t *testing.T, hist HistoryService) fixture {
	t.Helper()
	ctx := context.Background()
	dir := t.TempDir()

	deckPath := filepath.Join(dir, "deck.json")
	store := document.NewFileStore()
	require.NoError(t, store.Save(doctest.TemplateDeck(), deckPath))
	rosterPath := doctest.WriteBytes(t, dir, "players.tsv", []byte(
		"Name\tAge\tCategory\tPh\n"+
			"Zara\t22\tBowler\t9876543210\n"+
			"Kiran\t31 years\tBatsman\t9740834449\n"+
			"Ghost\t\t\t\n"))
	doctest.WriteImage(t, dir, "9740834449.png", 400, 300)

	server := NewServer(Config{
		Services: Services{
			Generation: generation.NewService(store, nil, generation.DefaultConfig(), nil),
			Reorder:    reorder.NewService(store, nil, "", nil),
			History:    hist,
			Decks:      store,
		},
		Defaults: Defaults{DeckPath: deckPath, RosterPath: rosterPath, AssetsDir: dir},
	})

	serverTransport, clientTransport := sdkmcp.NewInMemoryTransports()
	serverSession, err := server.Connect(ctx, serverTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { serverSession.Close() })

	client := sdkmcp.NewClient(&sdkmcp.Implementation{Name: "test-client", Version: "1.0.0"}, nil)
	session, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { session.Close() })

	return fixture{deckPath: deckPath, session: session}
}

func callTool[T any](t *testing.T, s *sdkmcp.ClientSession, name string, args map[string]any) T {
	t.Helper()
	result, err := s.CallTool(context.Background(), &sdkmcp.CallToolParams{Name: name, Arguments: args})
	require.NoError(t, err, "tools/call %s failed", name)
	require.False(t, result.IsError, "%s returned error: %v", name, result.Content)

	data, err := json.Marshal(result.StructuredContent)
	require.NoError(t, err)
	var out T
	require.NoError(t, json.Unmarshal(data, &out))
	return out
}

func TestServer_ListTools(t *testing.T) {
	f := newFixture(t, nil)

	tools, err := f.session.ListTools(context.Background(), nil)
	require.NoError(t, err)

	names := map[string]bool{}
	for _, tool := range tools.Tools {
		names[tool.Name] = true
	}
	for _, name := range []string{"generate_deck", "reset_deck", "reorder_deck", "inspect_deck", "list_runs", "get_run"} {
		require.True(t, names[name], "missing tool %s", name)
	}
}

func TestServer_GenerateReorderInspect(t *testing.T) {
	f := newFixture(t, nil)

	gen := callTool[GenerateOutput](t, f.session, "generate_deck", map[string]any{"reset": true})
	require.Equal(t, 3, gen.Stats.Total)
	require.Equal(t, 2, gen.Stats.Committed)
	require.Equal(t, 1, gen.Stats.WithImage)
	require.Equal(t, 1, gen.Stats.Skipped)
	require.Equal(t, "SKIPPED", gen.Outcomes[2].State)

	ord := callTool[ReorderOutput](t, f.session, "reorder_deck", map[string]any{})
	require.Equal(t, []string{"Kiran", "Zara"}, ord.Order)
	require.Equal(t, f.deckPath+".backup", ord.BackupPath)

	insp := callTool[InspectOutput](t, f.session, "inspect_deck", map[string]any{"deck_path": f.deckPath})
	require.Len(t, insp.Slides, 3)
	require.True(t, insp.Slides[0].Template)
	require.Equal(t, "Kiran", insp.Slides[1].Name)
	require.Equal(t, "Zara", insp.Slides[2].Name)

	reset := callTool[ResetOutput](t, f.session, "reset_deck", map[string]any{})
	require.Equal(t, 2, reset.Removed)
}

func TestServer_ToolErrors(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	result, err := f.session.CallTool(ctx, &sdkmcp.CallToolParams{
		Name:      "inspect_deck",
		Arguments: map[string]any{"deck_path": filepath.Join(t.TempDir(), "missing.json")},
	})
	require.NoError(t, err)
	require.True(t, result.IsError)

	result, err = f.session.CallTool(ctx, &sdkmcp.CallToolParams{Name: "list_runs", Arguments: map[string]any{}})
	require.NoError(t, err)
	require.True(t, result.IsError, "list_runs without a ledger must fail")
}

func TestServer_Runs(t *testing.T) {
	started := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	var gotOpts history.ListRunsOptions
	f := newFixture(t, historyStub{
		listFn: func(_ context.Context, opts history.ListRunsOptions) ([]history.Run, error) {
			gotOpts = opts
			return []history.Run{{ID: "run-1", Command: history.CommandGenerate, Status: history.StatusSucceeded, StartedAt: started}}, nil
		},
		getFn: func(_ context.Context, id string) (*history.RunDetail, error) {
			if id != "run-1" {
				return nil, repository.ErrNotFound
			}
			return &history.RunDetail{
				Run:     history.Run{ID: "run-1", StartedAt: started},
				Entries: []history.Entry{{DisplayName: "Kiran", State: "COMMITTED", ImageBound: true, SlideIndex: 1}},
			}, nil
		},
	})

	list := callTool[ListRunsOutput](t, f.session, "list_runs", map[string]any{"command": "generate", "limit": 5})
	require.Len(t, list.Runs, 1)
	require.Equal(t, "2025-03-01T10:00:00Z", list.Runs[0].StartedAt)
	require.Equal(t, 5, gotOpts.Limit)
	require.NotNil(t, gotOpts.Command)
	require.Equal(t, history.CommandGenerate, *gotOpts.Command)

	run := callTool[GetRunOutput](t, f.session, "get_run", map[string]any{"id": "run-1"})
	require.Equal(t, "Kiran", run.Outcomes[0].Name)

	result, err := f.session.CallTool(context.Background(), &sdkmcp.CallToolParams{Name: "get_run", Arguments: map[string]any{"id": "nope"}})
	require.NoError(t, err)
	require.True(t, result.IsError)
}

func TestServer_DocResources(t *testing.T) {
	f := newFixture(t, nil)

	res, err := f.session.ReadResource(context.Background(), &sdkmcp.ReadResourceParams{URI: "deckgen://docs/outcomes"})
	require.NoError(t, err)
	require.Len(t, res.Contents, 1)
	require.Contains(t, res.Contents[0].Text, "COMMITTED")
}

func TestMapError(t *testing.T) {
	require.Nil(t, MapError(nil))

	err := MapError(reorder.ErrSaveFailed)
	var api *APIError
	require.ErrorAs(t, err, &api)
	require.Equal(t, "SAVE_FAILED", api.Code)
	require.ErrorIs(t, err, reorder.ErrSaveFailed)

	plain := context.Canceled
	require.Equal(t, plain, MapError(plain))
}
