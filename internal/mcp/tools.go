package mcp

import (
	"context"
	"errors"
	"time"

	"github.com/rpggio/deckgen/internal/document"
	"github.com/rpggio/deckgen/internal/domain/generation"
	"github.com/rpggio/deckgen/internal/domain/history"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

var errHistoryDisabled = errors.New("run history is not configured")

type GenerateInput struct {
	DeckPath   string `json:"deck_path,omitempty" jsonschema:"deck file to extend; defaults to the configured deck"`
	OutputPath string `json:"output_path,omitempty" jsonschema:"where to save the result; defaults to deck_path"`
	RosterPath string `json:"roster_path,omitempty" jsonschema:"roster file (.json or .tsv); defaults to the configured roster"`
	AssetsDir  string `json:"assets_dir,omitempty" jsonschema:"directory of photos named by join key"`
	Reset      bool   `json:"reset,omitempty" jsonschema:"drop previously generated slides first"`
}

type OutcomeView struct {
	Name       string `json:"name"`
	JoinKey    string `json:"join_key"`
	State      string `json:"state"`
	ImageBound bool   `json:"image_bound"`
	SlideIndex int    `json:"slide_index"`
	Reason     string `json:"reason,omitempty"`
}

type GenerateOutput struct {
	RunID    string           `json:"run_id,omitempty"`
	Stats    generation.Stats `json:"stats"`
	Outcomes []OutcomeView    `json:"outcomes"`
}

type DeckInput struct {
	DeckPath string `json:"deck_path,omitempty" jsonschema:"deck file; defaults to the configured deck"`
}

type ResetOutput struct {
	Removed int `json:"removed"`
}

type ReorderOutput struct {
	RunID      string   `json:"run_id,omitempty"`
	BackupPath string   `json:"backup_path"`
	Order      []string `json:"order"`
	Slides     int      `json:"slides"`
}

type InspectOutput struct {
	Slides []document.SlideSummary `json:"slides"`
}

type ListRunsInput struct {
	Command string `json:"command,omitempty" jsonschema:"filter by command: generate, reset or reorder"`
	Limit   int    `json:"limit,omitempty" jsonschema:"maximum number of runs, newest first"`
}

type RunView struct {
	ID         string        `json:"id"`
	Command    string        `json:"command"`
	DeckPath   string        `json:"deck_path"`
	Status     string        `json:"status"`
	Stats      history.Stats `json:"stats"`
	Error      string        `json:"error,omitempty"`
	StartedAt  string        `json:"started_at"`
	FinishedAt string        `json:"finished_at,omitempty"`
}

type ListRunsOutput struct {
	Runs []RunView `json:"runs"`
}

type GetRunInput struct {
	ID string `json:"id" jsonschema:"run ID from list_runs"`
}

type GetRunOutput struct {
	Run      RunView       `json:"run"`
	Outcomes []OutcomeView `json:"outcomes"`
}

func registerTools(server *sdkmcp.Server, cfg Config) {
	svc := cfg.Services
	def := cfg.Defaults
	deckPath := func(p string) string {
		if p == "" {
			return def.DeckPath
		}
		return p
	}

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "generate_deck",
		Description: "Append one slide per valid roster record, cloned from the template slide, with the player's photo and info grid",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in GenerateInput) (*sdkmcp.CallToolResult, GenerateOutput, error) {
		req := generation.GenerateRequest{
			DeckPath:   deckPath(in.DeckPath),
			OutputPath: in.OutputPath,
			RosterPath: in.RosterPath,
			AssetsDir:  in.AssetsDir,
			Reset:      in.Reset,
		}
		if req.RosterPath == "" {
			req.RosterPath = def.RosterPath
		}
		if req.AssetsDir == "" {
			req.AssetsDir = def.AssetsDir
		}
		report, err := svc.Generation.Generate(ctx, req)
		if err != nil {
			return nil, GenerateOutput{}, MapError(err)
		}
		out := GenerateOutput{RunID: report.RunID, Stats: report.Stats, Outcomes: []OutcomeView{}}
		for _, o := range report.Outcomes {
			out.Outcomes = append(out.Outcomes, OutcomeView{
				Name:       o.Record.DisplayName,
				JoinKey:    o.Record.JoinKey,
				State:      string(o.State),
				ImageBound: o.ImageBound,
				SlideIndex: o.SlideIndex,
				Reason:     o.Reason,
			})
		}
		return nil, out, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "reset_deck",
		Description: "Remove every generated slide, keeping only the template",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in DeckInput) (*sdkmcp.CallToolResult, ResetOutput, error) {
		removed, err := svc.Generation.Reset(ctx, deckPath(in.DeckPath))
		if err != nil {
			return nil, ResetOutput{}, MapError(err)
		}
		return nil, ResetOutput{Removed: removed}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "reorder_deck",
		Description: "Sort generated slides by player name (case-insensitive, unnamed last). The deck is backed up first and restored if saving fails",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in DeckInput) (*sdkmcp.CallToolResult, ReorderOutput, error) {
		result, err := svc.Reorder.Reorder(ctx, deckPath(in.DeckPath))
		if err != nil {
			return nil, ReorderOutput{}, MapError(err)
		}
		out := ReorderOutput{RunID: result.RunID, BackupPath: result.BackupPath, Slides: result.Slides, Order: []string{}}
		for _, k := range result.Order {
			out.Order = append(out.Order, k.Name)
		}
		return nil, out, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "inspect_deck",
		Description: "Summarise each slide: player name, pictures (including grouped ones) and their payload sizes",
	}, func(_ context.Context, _ *sdkmcp.CallToolRequest, in DeckInput) (*sdkmcp.CallToolResult, InspectOutput, error) {
		deck, err := svc.Decks.Load(deckPath(in.DeckPath))
		if err != nil {
			return nil, InspectOutput{}, MapError(err)
		}
		return nil, InspectOutput{Slides: document.Inspect(deck)}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_runs",
		Description: "List recorded generate, reset and reorder runs, newest first",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in ListRunsInput) (*sdkmcp.CallToolResult, ListRunsOutput, error) {
		if svc.History == nil {
			return nil, ListRunsOutput{}, errHistoryDisabled
		}
		opts := history.ListRunsOptions{Limit: in.Limit}
		if in.Command != "" {
			cmd := history.Command(in.Command)
			opts.Command = &cmd
		}
		runs, err := svc.History.ListRuns(ctx, opts)
		if err != nil {
			return nil, ListRunsOutput{}, MapError(err)
		}
		out := ListRunsOutput{Runs: make([]RunView, 0, len(runs))}
		for _, r := range runs {
			out.Runs = append(out.Runs, runView(r))
		}
		return nil, out, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_run",
		Description: "Show one run with the outcome of every roster record",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in GetRunInput) (*sdkmcp.CallToolResult, GetRunOutput, error) {
		if svc.History == nil {
			return nil, GetRunOutput{}, errHistoryDisabled
		}
		detail, err := svc.History.GetRun(ctx, in.ID)
		if err != nil {
			return nil, GetRunOutput{}, MapError(err)
		}
		out := GetRunOutput{Run: runView(detail.Run), Outcomes: make([]OutcomeView, 0, len(detail.Entries))}
		for _, e := range detail.Entries {
			out.Outcomes = append(out.Outcomes, OutcomeView{
				Name:       e.DisplayName,
				JoinKey:    e.JoinKey,
				State:      e.State,
				ImageBound: e.ImageBound,
				SlideIndex: e.SlideIndex,
				Reason:     e.Reason,
			})
		}
		return nil, out, nil
	})
}

func runView(r history.Run) RunView {
	v := RunView{
		ID:        r.ID,
		Command:   string(r.Command),
		DeckPath:  r.DeckPath,
		Status:    string(r.Status),
		Stats:     r.Stats,
		Error:     r.Error,
		StartedAt: r.StartedAt.Format(time.RFC3339),
	}
	if r.FinishedAt != nil {
		v.FinishedAt = r.FinishedAt.Format(time.RFC3339)
	}
	return v
}
