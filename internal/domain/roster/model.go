package roster

// Record is one participant in the auction roster. Records are immutable
// once loaded.
type Record struct {
	DisplayName  string `json:"display_name"`
	Age          string `json:"age"`
	Category     string `json:"category"`
	JoinKey      string `json:"join_key"`
	PlayerType   string `json:"player_type,omitempty"`
	SerialNumber int    `json:"serial_number,omitempty"`
	IsValid      bool   `json:"is_valid"`
	JerseyNumber int    `json:"jersey_number,omitempty"`
	JerseyName   string `json:"jersey_name,omitempty"`
}

// Label returns a printable identity for logs.
func (r Record) Label() string {
	if r.DisplayName != "" {
		return r.DisplayName
	}
	return "Unknown"
}
