package history

// ListRunsOptions provides filtering options for listing runs.
type ListRunsOptions struct {
	Command  *Command
	Status   *Status
	DeckPath string
	Limit    int
	Offset   int
}
