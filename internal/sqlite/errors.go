package sqlite

import (
	"fmt"
	"strings"

	"github.com/rpggio/deckgen/internal/repository"
)

// translateError maps SQLite constraint failures to repository errors and
// wraps everything else with the failed operation.
func translateError(err error, op string) error {
	if err == nil {
		return nil
	}
	msg := err.Error()
	switch {
	case strings.Contains(msg, "UNIQUE constraint failed"):
		return repository.ErrConflict
	case strings.Contains(msg, "FOREIGN KEY constraint failed"):
		return repository.ErrForeignKeyViolation
	case strings.Contains(msg, "CHECK constraint failed"):
		return fmt.Errorf("%w: %s", repository.ErrConstraint, msg)
	}
	return fmt.Errorf("failed to %s: %w", op, err)
}
