package document

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// FileStore reads and writes deck files as JSON.
type FileStore struct{}

// NewFileStore creates a FileStore.
func NewFileStore() *FileStore {
	return &FileStore{}
}

// Load reads a deck file.
func (FileStore) Load(path string) (*Deck, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read deck file: %w", err)
	}
	var deck Deck
	if err := json.Unmarshal(data, &deck); err != nil {
		return nil, fmt.Errorf("%w: parse %s: %v", ErrInvalidDeck, path, err)
	}
	if deck.Width <= 0 {
		deck.Width = DefaultSlideWidth
	}
	if deck.Height <= 0 {
		deck.Height = DefaultSlideHeight
	}
	return &deck, nil
}

// Save writes the deck atomically (temp file, fsync, rename).
func (FileStore) Save(deck *Deck, path string) error {
	data, err := json.MarshalIndent(deck, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal deck: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}

// Copy duplicates src to dst byte for byte.
func (FileStore) Copy(src, dst string) error {
	return CopyFile(src, dst)
}

// CopyFile duplicates src to dst byte for byte, replacing dst.
func CopyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open %s: %w", src, err)
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("create %s: %w", dst, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("copy %s to %s: %w", src, dst, err)
	}
	if err := out.Sync(); err != nil {
		out.Close()
		return fmt.Errorf("sync %s: %w", dst, err)
	}
	return out.Close()
}
