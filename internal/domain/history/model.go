package history

import "time"

// Command names the deck operation a run performed.
type Command string

const (
	CommandGenerate Command = "generate"
	CommandReset    Command = "reset"
	CommandReorder  Command = "reorder"
)

// Status is the lifecycle state of a run.
type Status string

const (
	StatusRunning   Status = "running"
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
)

// Stats are the aggregate counts stored with a run.
type Stats struct {
	Total        int `json:"total"`
	Committed    int `json:"committed"`
	WithImage    int `json:"with_image"`
	WithoutImage int `json:"without_image"`
	Skipped      int `json:"skipped"`
	Failed       int `json:"failed"`
	Slides       int `json:"slides"`
}

// Run is one invocation against a deck file.
type Run struct {
	ID         string     `json:"id"`
	Command    Command    `json:"command"`
	DeckPath   string     `json:"deck_path"`
	Status     Status     `json:"status"`
	Stats      Stats      `json:"stats"`
	Error      string     `json:"error,omitempty"`
	StartedAt  time.Time  `json:"started_at"`
	FinishedAt *time.Time `json:"finished_at,omitempty"`
}

// Entry is the recorded outcome of one roster record within a run.
type Entry struct {
	ID          int64     `json:"id"`
	RunID       string    `json:"run_id"`
	Position    int       `json:"position"`
	DisplayName string    `json:"display_name"`
	JoinKey     string    `json:"join_key"`
	State       string    `json:"state"`
	ImageBound  bool      `json:"image_bound"`
	SlideIndex  int       `json:"slide_index"`
	Reason      string    `json:"reason,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// RunDetail is a run with its entries.
type RunDetail struct {
	Run     Run     `json:"run"`
	Entries []Entry `json:"entries"`
}
