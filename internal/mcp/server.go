package mcp

import (
	"context"
	"io"
	"log/slog"

	"github.com/rpggio/deckgen/internal/document"
	"github.com/rpggio/deckgen/internal/domain/generation"
	"github.com/rpggio/deckgen/internal/domain/history"
	"github.com/rpggio/deckgen/internal/domain/reorder"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// GenerationService defines generation operations needed by MCP.
type GenerationService interface {
	Generate(ctx context.Context, req generation.GenerateRequest) (*generation.Report, error)
	Reset(ctx context.Context, deckPath string) (int, error)
}

// ReorderService defines reorder operations needed by MCP.
type ReorderService interface {
	Reorder(ctx context.Context, deckPath string) (*reorder.Result, error)
}

// HistoryService defines run ledger operations needed by MCP.
type HistoryService interface {
	ListRuns(ctx context.Context, opts history.ListRunsOptions) ([]history.Run, error)
	GetRun(ctx context.Context, id string) (*history.RunDetail, error)
}

// DeckLoader reads deck files for inspection.
type DeckLoader interface {
	Load(path string) (*document.Deck, error)
}

// Services contains all domain services needed by MCP.
type Services struct {
	Generation GenerationService
	Reorder    ReorderService
	History    HistoryService
	Decks      DeckLoader
}

// Defaults fill tool arguments the caller leaves empty.
type Defaults struct {
	DeckPath   string
	RosterPath string
	AssetsDir  string
}

// Config contains server configuration.
type Config struct {
	Services Services
	Defaults Defaults
	Logger   *slog.Logger
}

// NewServer creates and configures an MCP server with all tools and middleware.
func NewServer(cfg Config) *sdkmcp.Server {
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	server := sdkmcp.NewServer(&sdkmcp.Implementation{
		Name:    "deckgen",
		Version: "0.1.0",
	}, &sdkmcp.ServerOptions{
		Instructions: serverInstructions,
		Logger:       cfg.Logger,
	})

	registerDocResources(server)

	server.AddReceivingMiddleware(trafficLoggingMiddleware(cfg.Logger, "inbound"))
	server.AddSendingMiddleware(trafficLoggingMiddleware(cfg.Logger, "outbound"))

	registerTools(server, cfg)

	return server
}
