package mcp

import (
	"errors"
	"fmt"

	"github.com/rpggio/deckgen/internal/document"
	"github.com/rpggio/deckgen/internal/domain/generation"
	"github.com/rpggio/deckgen/internal/domain/reorder"
	"github.com/rpggio/deckgen/internal/domain/roster"
	"github.com/rpggio/deckgen/internal/repository"
)

// APIError represents an MCP error response.
type APIError struct {
	Code         string `json:"code"`
	Message      string `json:"message"`
	RecoveryHint string `json:"recovery_hint,omitempty"`
	cause        error
}

func (e *APIError) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Code, e.Message)
	if e.RecoveryHint != "" {
		msg += " (" + e.RecoveryHint + ")"
	}
	return msg
}

func (e *APIError) Unwrap() error {
	return e.cause
}

// MapError maps domain errors to MCP error codes. Unknown errors are
// returned unchanged.
func MapError(err error) error {
	if err == nil {
		return nil
	}
	api := func(code, hint string) *APIError {
		return &APIError{Code: code, Message: err.Error(), RecoveryHint: hint, cause: err}
	}
	switch {
	case errors.Is(err, document.ErrNoTemplate):
		return api("NO_TEMPLATE", "The deck needs a template slide at index 0")
	case errors.Is(err, document.ErrInvalidDeck):
		return api("INVALID_DECK", "Check that deck_path points at a deck file")
	case errors.Is(err, roster.ErrUnsupportedFormat):
		return api("UNSUPPORTED_ROSTER", "Use a .json, .tsv or .txt roster")
	case errors.Is(err, generation.ErrSaveFailed):
		return api("SAVE_FAILED", "The destination may be incomplete; re-run from a known-good deck")
	case errors.Is(err, reorder.ErrRestoreFailed):
		return api("RESTORE_FAILED", "Copy the .backup file over the deck by hand")
	case errors.Is(err, reorder.ErrSaveFailed):
		return api("SAVE_FAILED", "The deck was restored from its backup")
	case errors.Is(err, reorder.ErrBackupFailed):
		return api("BACKUP_FAILED", "Check the deck path and directory permissions")
	case errors.Is(err, repository.ErrNotFound):
		return api("NOT_FOUND", "Check the ID with list_runs")
	default:
		return err
	}
}
