package session

// Section is one content document of the reading order plus the state the
// session derives for it. Sections live in a fixed-order slice addressed by
// index; the controller is the only writer.
type Section struct {
	Key       string // archive path of the source file
	Raw       string // original markup, immutable
	Rendered  string // standalone document, built lazily, cached for the session
	PageCount int    // always >= 1; 1 until measured
	Measured  bool   // a measurement attempt has completed for this section
}

// clampCount keeps the page count invariant: never below one.
func clampCount(n int) int {
	if n < 1 {
		return 1
	}
	return n
}
