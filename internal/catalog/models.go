package catalog

import "time"

// Book is one catalog entry. Cover holds the original cover image bytes,
// Thumbnail a downscaled JPEG for list views; either may be empty.
type Book struct {
	ID        int64
	Title     string
	Author    string
	Language  string
	Path      string
	Cover     []byte
	Thumbnail []byte
	LastPage  int
	AddedAt   time.Time
	Tags      []string
}
