package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rpggio/deckgen/internal/mcp"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"
)

func newServeCmd(a *app) *cobra.Command {
	var (
		useHTTP bool
		host    string
		port    int
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve deck tools over MCP (stdio by default)",
		RunE: func(cmd *cobra.Command, args []string) error {
			services := mcp.Services{
				Generation: a.generationService(),
				Reorder:    a.reorderService(""),
				Decks:      a.store,
			}
			if h := a.openHistory(); h != nil {
				services.History = h
			}
			server := mcp.NewServer(mcp.Config{
				Services: services,
				Defaults: mcp.Defaults{
					DeckPath:   a.cfg.Deck.Path,
					RosterPath: a.cfg.Roster.Path,
					AssetsDir:  a.cfg.Assets.Dir,
				},
				Logger: a.logger,
			})

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			if !useHTTP {
				return runStdioMode(ctx, a.logger, server)
			}
			if host == "" {
				host = a.cfg.Server.Host
			}
			if port == 0 {
				port = a.cfg.Server.Port
			}
			return runHTTPMode(ctx, a.logger, server, host, port)
		},
	}
	cmd.Flags().BoolVar(&useHTTP, "http", false, "serve streamable HTTP instead of stdio")
	cmd.Flags().StringVar(&host, "host", "", "HTTP listen host (default from config)")
	cmd.Flags().IntVar(&port, "port", 0, "HTTP listen port (default from config)")
	return cmd
}

func runStdioMode(ctx context.Context, logger *slog.Logger, server *sdkmcp.Server) error {
	logger.Info("starting stdio transport")

	// Run blocks until stdin closes or the context is canceled.
	if err := server.Run(ctx, &sdkmcp.StdioTransport{}); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("stdio server: %w", err)
	}
	logger.Info("shutting down")
	return nil
}

func runHTTPMode(ctx context.Context, logger *slog.Logger, server *sdkmcp.Server, host string, port int) error {
	mcpHandler := sdkmcp.NewStreamableHTTPHandler(
		func(r *http.Request) *sdkmcp.Server { return server },
		&sdkmcp.StreamableHTTPOptions{
			SessionTimeout: 30 * time.Minute,
		},
	)

	router := http.NewServeMux()
	router.Handle("/mcp", mcpHandler)
	router.Handle("/mcp/", mcpHandler)
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	addr := fmt.Sprintf("%s:%d", host, port)
	httpServer := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	logger.Info("shutting down")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
	}
	return nil
}

