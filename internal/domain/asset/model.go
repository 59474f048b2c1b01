package asset

// Asset is a photo file bound to a join key.
type Asset struct {
	Key  string `json:"key"`
	Path string `json:"path"`
}
