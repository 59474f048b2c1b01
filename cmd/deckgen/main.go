package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/rpggio/deckgen/internal/config"
	"github.com/rpggio/deckgen/internal/document"
	"github.com/rpggio/deckgen/internal/domain/generation"
	"github.com/rpggio/deckgen/internal/domain/history"
	"github.com/rpggio/deckgen/internal/domain/reorder"
	"github.com/rpggio/deckgen/internal/sqlite"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// app holds configuration and shared dependencies for one invocation.
type app struct {
	cfg       config.Config
	logger    *slog.Logger
	store     *document.FileStore
	db        *sqlite.DB
	history   *history.Service
	noHistory bool
	logFile   io.Closer
}

func newRootCmd() *cobra.Command {
	a := &app{store: document.NewFileStore()}
	var (
		deckPath string
		dbPath   string
		logLevel string
	)

	root := &cobra.Command{
		Use:           "deckgen",
		Short:         "Generate and maintain a per-player auction deck",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("config error: %w", err)
			}
			if deckPath != "" {
				cfg.Deck.Path = deckPath
			}
			if dbPath != "" {
				cfg.DB.Path = dbPath
			}
			if logLevel != "" {
				cfg.Log.Level = logLevel
			}
			a.cfg = cfg
			return a.setupLogger(cmd.ErrOrStderr())
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.close()
		},
	}
	root.PersistentFlags().StringVar(&deckPath, "deck", "", "deck file (default from config)")
	root.PersistentFlags().StringVar(&dbPath, "db", "", "run ledger database (default from config)")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "debug, info, warn or error")
	root.PersistentFlags().BoolVar(&a.noHistory, "no-history", false, "do not record runs in the ledger")

	root.AddCommand(
		newGenerateCmd(a),
		newResetCmd(a),
		newReorderCmd(a),
		newVerifyCmd(a),
		newDedupCmd(a),
		newHistoryCmd(a),
		newServeCmd(a),
	)
	return root
}

func (a *app) setupLogger(stderr io.Writer) error {
	logWriter := stderr
	if logPath := os.Getenv("DECKGEN_LOG_PATH"); logPath != "" {
		fileWriter, file, err := newLogFileWriter(logPath)
		if err != nil {
			fmt.Fprintf(stderr, "log file error: %v\n", err)
		} else {
			a.logFile = file
			logWriter = fileWriter
		}
	}
	a.logger = slog.New(slog.NewTextHandler(logWriter, &slog.HandlerOptions{
		Level: parseLogLevel(a.cfg.Log.Level),
	}))
	return nil
}

// openHistory opens the run ledger unless disabled. A ledger that cannot be
// opened is logged and skipped; deck operations do not depend on it.
func (a *app) openHistory() *history.Service {
	if a.noHistory || a.history != nil {
		return a.history
	}
	db, err := sqlite.Open(a.cfg.DB.Path)
	if err != nil {
		a.logger.Warn("run ledger unavailable", "path", a.cfg.DB.Path, "error", err)
		return nil
	}
	a.db = db
	a.history = history.NewService(sqlite.NewHistoryRepository(db), a.logger)
	return a.history
}

func (a *app) generationConfig() generation.Config {
	cfg := generation.DefaultConfig()
	cfg.DigitThreshold = a.cfg.Strip.DigitThreshold
	if len(a.cfg.Strip.LabelTokens) > 0 {
		cfg.LabelTokens = a.cfg.Strip.LabelTokens
	}
	return cfg
}

func (a *app) generationService() *generation.Service {
	var recorder generation.HistoryRecorder
	if h := a.openHistory(); h != nil {
		recorder = h
	}
	return generation.NewService(a.store, recorder, a.generationConfig(), a.logger)
}

func (a *app) reorderService(backupSuffix string) *reorder.Service {
	if backupSuffix == "" {
		backupSuffix = a.cfg.Deck.BackupSuffix
	}
	var recorder reorder.HistoryRecorder
	if h := a.openHistory(); h != nil {
		recorder = h
	}
	return reorder.NewService(a.store, recorder, backupSuffix, a.logger)
}

func (a *app) close() error {
	var firstErr error
	if a.db != nil {
		firstErr = a.db.Close()
		a.db = nil
	}
	if a.logFile != nil {
		if err := a.logFile.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		a.logFile = nil
	}
	return firstErr
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
