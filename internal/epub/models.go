package epub

// OPF represents the parsed package document.
type OPF struct {
	Metadata      Metadata
	Manifest      map[string]ManifestItem // id -> item
	ManifestOrder []string                // ids in document order
	Spine         []SpineItem
}

// Metadata holds the package metadata the reader cares about.
type Metadata struct {
	Title    string
	Creators []string
	Language string
	CoverID  string // EPUB 2.0 cover image manifest item ID (from meta name="cover")
}

// ManifestItem represents an item in the manifest. Href is resolved against
// the OPF's own directory, so it is a full archive path.
type ManifestItem struct {
	ID         string
	Href       string
	MediaType  string
	Properties []string
}

// SpineItem represents an itemref in the spine reading order.
type SpineItem struct {
	IDRef  string
	Linear bool
}
