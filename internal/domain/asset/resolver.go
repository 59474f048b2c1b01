package asset

// Resolver looks up canonical assets by join key. It performs no I/O.
type Resolver struct {
	paths map[string]string
}

// NewResolver wraps an externally curated key → path map.
func NewResolver(paths map[string]string) *Resolver {
	copied := make(map[string]string, len(paths))
	for k, v := range paths {
		copied[k] = v
	}
	return &Resolver{paths: copied}
}

// Resolve returns the asset for key. A missing asset is not an error.
func (r *Resolver) Resolve(key string) (Asset, bool) {
	if r == nil {
		return Asset{}, false
	}
	path, ok := r.paths[key]
	if !ok || path == "" {
		return Asset{}, false
	}
	return Asset{Key: key, Path: path}, true
}

// Len returns the number of known assets.
func (r *Resolver) Len() int {
	if r == nil {
		return 0
	}
	return len(r.paths)
}
