package session

import "context"

// Surface is the host rendering surface: a single stateful instance that
// renders one HTML document at a time and evaluates script expressions
// against whatever it currently displays. Only one load → evaluate cycle
// may be in flight per instance.
type Surface interface {
	// Load renders the document and returns once navigation completes.
	// A non-nil error means the load attempt failed and no script may be
	// evaluated against it.
	Load(ctx context.Context, html string) error

	// Evaluate runs a script expression against the loaded document and
	// returns its textual result.
	Evaluate(ctx context.Context, script string) (string, error)
}

// PositionSink receives the final reading position when a session ends.
type PositionSink interface {
	SaveLastPage(bookID int64, page int) error
}
