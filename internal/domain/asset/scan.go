package asset

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var photoExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

// IsPhotoFile reports whether name carries a scannable photo extension.
func IsPhotoFile(name string) bool {
	return photoExtensions[strings.ToLower(filepath.Ext(name))]
}

// ScanDir maps join keys to photo files in dir. A file qualifies when its
// extension is .jpg, .jpeg or .png (any case) and its stem is all digits,
// e.g. "6360452535.jpg". When two files share a stem the first in name
// order wins.
func ScanDir(dir string) (map[string]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read asset dir: %w", err)
	}
	paths := make(map[string]string)
	for _, e := range entries {
		if e.IsDir() || !IsPhotoFile(e.Name()) {
			continue
		}
		stem := strings.TrimSuffix(e.Name(), filepath.Ext(e.Name()))
		if !isDigits(stem) {
			continue
		}
		if _, seen := paths[stem]; seen {
			continue
		}
		paths[stem] = filepath.Join(dir, e.Name())
	}
	return paths, nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
