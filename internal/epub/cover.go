package epub

import (
	"fmt"
	"strings"
)

// DetectCover finds the cover image manifest item. Detection methods in
// priority order:
//  1. properties="cover-image" (EPUB 3.0)
//  2. meta name="cover" (EPUB 2.0)
//  3. image item whose filename contains "cover" (SVG excluded)
//
// Returns the item and true, or a zero item and false.
func (opf *OPF) DetectCover() (ManifestItem, bool) {
	for _, id := range opf.ManifestOrder {
		item := opf.Manifest[id]
		for _, prop := range item.Properties {
			if prop == "cover-image" {
				return item, true
			}
		}
	}

	if opf.Metadata.CoverID != "" {
		if item, ok := opf.Manifest[opf.Metadata.CoverID]; ok {
			return item, true
		}
	}

	for _, id := range opf.ManifestOrder {
		item := opf.Manifest[id]
		if !isRasterImage(item.MediaType) {
			continue
		}
		if strings.Contains(strings.ToLower(FileName(item.Href)), "cover") {
			return item, true
		}
	}

	return ManifestItem{}, false
}

// ExtractCover returns the cover image bytes and media type, or an error if
// no cover can be located or read.
func ExtractCover(r *Reader, opf *OPF) ([]byte, string, error) {
	item, ok := opf.DetectCover()
	if !ok {
		return nil, "", fmt.Errorf("no cover image in manifest")
	}
	data, err := r.ReadFile(item.Href)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read cover %s: %w", item.Href, err)
	}
	return data, item.MediaType, nil
}

// isRasterImage checks for a raster image media type (SVG excluded).
func isRasterImage(mediaType string) bool {
	if mediaType == "image/svg+xml" {
		return false
	}
	return strings.HasPrefix(mediaType, "image/")
}
