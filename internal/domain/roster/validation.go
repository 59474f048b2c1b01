package roster

import "strings"

// ValidateJoinKey reports whether key can correlate a record to an asset.
// A key must be a non-empty ASCII digit string.
func ValidateJoinKey(key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return ErrInvalidJoinKey
	}
	for _, c := range key {
		if c < '0' || c > '9' {
			return ErrInvalidJoinKey
		}
	}
	return nil
}
