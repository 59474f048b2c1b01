package asset

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"
)

const hashConcurrency = 8

// FileInfo describes one candidate file in a duplicate group. Width and
// Height are the displayed size, after EXIF orientation.
type FileInfo struct {
	Path   string `json:"path"`
	Hash   string `json:"hash"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Size   int64  `json:"size"`
}

// Resolution is the pixel count; unreadable images count as zero.
func (f FileInfo) Resolution() int {
	return f.Width * f.Height
}

// DuplicateGroup is a set of byte-identical files with the chosen keeper.
type DuplicateGroup struct {
	Hash      string     `json:"hash"`
	Canonical FileInfo   `json:"canonical"`
	Redundant []FileInfo `json:"redundant"`
}

// Curator finds byte-identical photos and picks one canonical file per set.
type Curator struct {
	logger *slog.Logger
}

// NewCurator creates a Curator.
func NewCurator(logger *slog.Logger) *Curator {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Curator{logger: logger}
}

// FindDuplicates hashes every photo in dir and returns the groups that hold
// more than one file, ordered by canonical path.
func (c *Curator) FindDuplicates(ctx context.Context, dir string) ([]DuplicateGroup, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read asset dir: %w", err)
	}
	var paths []string
	for _, e := range entries {
		if !e.IsDir() && IsPhotoFile(e.Name()) {
			paths = append(paths, filepath.Join(dir, e.Name()))
		}
	}
	c.logger.Info("scanning photos for duplicates", "dir", dir, "files", len(paths))

	var (
		mu     sync.Mutex
		byHash = make(map[string][]FileInfo)
	)
	eg, gctx := errgroup.WithContext(ctx)
	eg.SetLimit(hashConcurrency)
	for _, path := range paths {
		eg.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			info, err := describeFile(path)
			if err != nil {
				return err
			}
			mu.Lock()
			byHash[info.Hash] = append(byHash[info.Hash], info)
			mu.Unlock()
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	var groups []DuplicateGroup
	for hash, files := range byHash {
		if len(files) < 2 {
			continue
		}
		SortByPreference(files)
		groups = append(groups, DuplicateGroup{
			Hash:      hash,
			Canonical: files[0],
			Redundant: files[1:],
		})
	}
	sort.Slice(groups, func(i, j int) bool {
		return groups[i].Canonical.Path < groups[j].Canonical.Path
	})
	return groups, nil
}

// Prune deletes every redundant file. It keeps going past individual
// failures and returns the deleted paths with the first error.
func (c *Curator) Prune(groups []DuplicateGroup) ([]string, error) {
	var (
		deleted  []string
		firstErr error
	)
	for _, g := range groups {
		for _, f := range g.Redundant {
			if err := os.Remove(f.Path); err != nil {
				c.logger.Warn("failed to delete duplicate", "path", f.Path, "error", err)
				if firstErr == nil {
					firstErr = fmt.Errorf("delete %s: %w", f.Path, err)
				}
				continue
			}
			c.logger.Info("deleted duplicate", "path", f.Path, "kept", g.Canonical.Path)
			deleted = append(deleted, f.Path)
		}
	}
	return deleted, firstErr
}

// SortByPreference orders byte-identical files best first: highest
// resolution, then largest size, then plain names before "-N" variants,
// then name.
func SortByPreference(files []FileInfo) {
	sort.SliceStable(files, func(i, j int) bool {
		a, b := files[i], files[j]
		if a.Resolution() != b.Resolution() {
			return a.Resolution() > b.Resolution()
		}
		if a.Size != b.Size {
			return a.Size > b.Size
		}
		pa, pb := suffixPriority(a.Path), suffixPriority(b.Path)
		if pa != pb {
			return pa < pb
		}
		return a.Path < b.Path
	})
}

// suffixPriority is 0 for "123.jpg" and N+1 for "123-N.jpg".
func suffixPriority(path string) int {
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	i := strings.LastIndex(stem, "-")
	if i < 0 {
		return 0
	}
	n, err := strconv.Atoi(stem[i+1:])
	if err != nil || n < 0 {
		return 0
	}
	return n + 1
}

func describeFile(path string) (FileInfo, error) {
	f, err := os.Open(path)
	if err != nil {
		return FileInfo{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	h := sha256.New()
	size, err := io.Copy(h, f)
	if err != nil {
		return FileInfo{}, fmt.Errorf("hash %s: %w", path, err)
	}

	info := FileInfo{
		Path: path,
		Hash: hex.EncodeToString(h.Sum(nil)),
		Size: size,
	}
	if w, hgt, err := DisplaySize(path); err == nil {
		info.Width, info.Height = w, hgt
	}
	return info, nil
}
