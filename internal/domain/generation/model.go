package generation

import (
	"github.com/rpggio/deckgen/internal/document"
	"github.com/rpggio/deckgen/internal/domain/roster"
)

// State is a record's terminal state in a generation run.
type State string

const (
	StateCommitted State = "COMMITTED"
	StateSkipped   State = "SKIPPED"
	StateFailed    State = "FAILED"
)

// Outcome is the result of processing one record.
type Outcome struct {
	Record     roster.Record `json:"record"`
	State      State         `json:"state"`
	ImageBound bool          `json:"image_bound"`
	SlideIndex int           `json:"slide_index"`
	Reason     string        `json:"reason,omitempty"`
	Err        error         `json:"-"`
	OverlayErr error         `json:"-"`
}

func skipped(rec roster.Record, err error) Outcome {
	return Outcome{Record: rec, State: StateSkipped, SlideIndex: -1, Reason: err.Error(), Err: err}
}

func failed(rec roster.Record, err error) Outcome {
	return Outcome{Record: rec, State: StateFailed, SlideIndex: -1, Reason: err.Error(), Err: err}
}

// Stats aggregates outcomes of a run.
type Stats struct {
	Total           int `json:"total"`
	Committed       int `json:"committed"`
	WithImage       int `json:"with_image"`
	WithoutImage    int `json:"without_image"`
	Skipped         int `json:"skipped"`
	Failed          int `json:"failed"`
	OverlayFailures int `json:"overlay_failures"`
	SlidesInDeck    int `json:"slides_in_deck"`
}

func (s *Stats) add(o Outcome) {
	s.Total++
	switch o.State {
	case StateCommitted:
		s.Committed++
		if o.ImageBound {
			s.WithImage++
		} else {
			s.WithoutImage++
		}
		if o.OverlayErr != nil {
			s.OverlayFailures++
		}
	case StateSkipped:
		s.Skipped++
	case StateFailed:
		s.Failed++
	}
}

// Report is the result of a generation run.
type Report struct {
	RunID    string    `json:"run_id,omitempty"`
	Outcomes []Outcome `json:"outcomes"`
	Stats    Stats     `json:"stats"`
}

// Config tunes stale-content detection.
type Config struct {
	// LabelTokens are matched case-insensitively against text shapes.
	LabelTokens []string
	// DigitThreshold flags text holding at least this many digits; 0 disables.
	DigitThreshold int
	// StaleTableTop flags tables whose top edge lies below it.
	StaleTableTop document.EMU
}

// DefaultLabelTokens are the field labels of a previously rendered info block.
var DefaultLabelTokens = []string{"name:", "age:", "category:", "ph:", "phone:"}

// DefaultConfig returns the stock stale-content settings.
func DefaultConfig() Config {
	return Config{
		LabelTokens:    DefaultLabelTokens,
		DigitThreshold: 10,
		StaleTableTop:  document.BottomRegionTop,
	}
}
