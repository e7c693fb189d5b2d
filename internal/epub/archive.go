package epub

import (
	"log"
	"strings"
)

// EmptyBookKey is the key of the synthetic section produced when an archive
// yields no usable content at all.
const EmptyBookKey = "pageturn-empty.xhtml"

const emptyBookMarkup = `<html xmlns="http://www.w3.org/1999/xhtml">
<body><p>This book contains no readable content.</p></body>
</html>`

// RawSection is one content document from the reading order.
type RawSection struct {
	Key    string // archive path of the source file
	Markup string // original XHTML, immutable
}

// AssetSet holds the archive's binary assets, categorized by kind and keyed
// by normalized archive path. A bare-filename index is maintained as a
// lookup fallback; on duplicate filenames the later manifest entry wins.
type AssetSet struct {
	Images map[string][]byte
	Fonts  map[string][]byte
	Styles map[string][]byte
	Other  map[string][]byte

	byName      map[string][]byte
	styleByName map[string]string
}

// NewAssetSet creates an empty asset set.
func NewAssetSet() *AssetSet {
	return &AssetSet{
		Images:      make(map[string][]byte),
		Fonts:       make(map[string][]byte),
		Styles:      make(map[string][]byte),
		Other:       make(map[string][]byte),
		byName:      make(map[string][]byte),
		styleByName: make(map[string]string),
	}
}

func (a *AssetSet) add(bucket map[string][]byte, path string, data []byte) {
	path = Normalize(path)
	bucket[path] = data
	a.byName[FileName(path)] = data
}

// AddImage registers an image asset.
func (a *AssetSet) AddImage(path string, data []byte) { a.add(a.Images, path, data) }

// AddFont registers a font asset.
func (a *AssetSet) AddFont(path string, data []byte) { a.add(a.Fonts, path, data) }

// AddStyle registers a stylesheet asset.
func (a *AssetSet) AddStyle(path string, data []byte) {
	a.add(a.Styles, path, data)
	a.styleByName[FileName(path)] = string(data)
}

// AddOther registers a catch-all asset.
func (a *AssetSet) AddOther(path string, data []byte) { a.add(a.Other, path, data) }

// Lookup finds asset data by full archive path, falling back to a bare
// filename match across all buckets.
func (a *AssetSet) Lookup(key string) ([]byte, bool) {
	key = Normalize(key)
	for _, bucket := range []map[string][]byte{a.Images, a.Fonts, a.Styles, a.Other} {
		if data, ok := bucket[key]; ok {
			return data, true
		}
	}
	if data, ok := a.byName[FileName(key)]; ok {
		return data, true
	}
	return nil, false
}

// Stylesheet finds a stylesheet's text by full path, then by bare filename.
func (a *AssetSet) Stylesheet(key string) (string, bool) {
	key = Normalize(key)
	if data, ok := a.Styles[key]; ok {
		return string(data), true
	}
	if css, ok := a.styleByName[FileName(key)]; ok {
		return css, true
	}
	return "", false
}

// Model is the in-memory representation of one EPUB: the ordered reading
// order plus the asset lookup. Built once per reading session and never
// mutated afterwards.
type Model struct {
	Title    string
	Authors  []string
	Language string
	Sections []RawSection
	Assets   *AssetSet
}

// Parse parses archive bytes into a Model. Unreadable or empty content
// entries are skipped with a warning; if nothing usable remains the model
// carries a single synthetic notice section. Only an archive that cannot be
// opened at all fails, with a FormatError.
func Parse(data []byte) (*Model, error) {
	r, err := NewReader(data)
	if err != nil {
		return nil, err
	}

	opfData, err := r.ReadFile(r.OPFPath())
	if err != nil {
		return nil, &FormatError{Err: err}
	}
	opf, err := ParseOPF(opfData, r.OPFPath())
	if err != nil {
		return nil, &FormatError{Err: err}
	}

	return BuildModel(r, opf), nil
}

// BuildModel assembles the section list and asset buckets from a parsed
// package document.
func BuildModel(r *Reader, opf *OPF) *Model {
	m := &Model{
		Title:    opf.Metadata.Title,
		Authors:  opf.Metadata.Creators,
		Language: opf.Metadata.Language,
		Assets:   NewAssetSet(),
	}

	spineKeys := make(map[string]bool)
	for _, ref := range opf.Spine {
		item, ok := opf.Manifest[ref.IDRef]
		if !ok {
			log.Printf("warning: spine item %q not in manifest, skipping", ref.IDRef)
			continue
		}
		spineKeys[item.Href] = true

		if !isXHTML(item.MediaType, item.Href) {
			continue
		}
		data, err := r.ReadFile(item.Href)
		if err != nil {
			log.Printf("warning: failed to read section %q: %v, skipping", item.Href, err)
			continue
		}
		if strings.TrimSpace(string(data)) == "" {
			continue
		}
		m.Sections = append(m.Sections, RawSection{
			Key:    item.Href,
			Markup: string(data),
		})
	}

	for _, id := range opf.ManifestOrder {
		item := opf.Manifest[id]
		if spineKeys[item.Href] || isXHTML(item.MediaType, item.Href) {
			continue
		}
		kind := assetKind(item.MediaType, item.Href)
		if kind == "" {
			continue
		}
		data, err := r.ReadFile(item.Href)
		if err != nil {
			log.Printf("warning: failed to read asset %q: %v, skipping", item.Href, err)
			continue
		}
		switch kind {
		case "image":
			m.Assets.AddImage(item.Href, data)
		case "font":
			m.Assets.AddFont(item.Href, data)
		case "style":
			m.Assets.AddStyle(item.Href, data)
		default:
			m.Assets.AddOther(item.Href, data)
		}
	}

	if len(m.Sections) == 0 {
		log.Printf("warning: archive yields no usable sections, using notice section")
		m.Sections = []RawSection{{Key: EmptyBookKey, Markup: emptyBookMarkup}}
	}

	return m
}

// isXHTML checks if an item is a content document.
func isXHTML(mediaType, href string) bool {
	if strings.Contains(mediaType, "html") {
		return true
	}
	if mediaType != "" {
		return false
	}
	lower := strings.ToLower(href)
	return strings.HasSuffix(lower, ".xhtml") || strings.HasSuffix(lower, ".html") || strings.HasSuffix(lower, ".htm")
}

// assetKind categorizes a manifest item by media type with an extension
// fallback. Returns "" for items that are not session assets (the package
// document, NCX, scripts).
func assetKind(mediaType, href string) string {
	mt := strings.ToLower(mediaType)
	switch {
	case strings.HasPrefix(mt, "image/"):
		return "image"
	case mt == "text/css":
		return "style"
	case strings.HasPrefix(mt, "font/"),
		mt == "application/font-woff",
		mt == "application/font-sfnt",
		mt == "application/x-font-ttf",
		mt == "application/x-font-truetype",
		mt == "application/x-font-opentype",
		mt == "application/vnd.ms-opentype":
		return "font"
	case mt == "application/x-dtbncx+xml",
		mt == "application/oebps-package+xml",
		strings.Contains(mt, "javascript"):
		return ""
	case mt != "":
		return "other"
	}

	ext := strings.ToLower(href)
	switch {
	case strings.HasSuffix(ext, ".png"), strings.HasSuffix(ext, ".jpg"),
		strings.HasSuffix(ext, ".jpeg"), strings.HasSuffix(ext, ".gif"),
		strings.HasSuffix(ext, ".svg"), strings.HasSuffix(ext, ".webp"):
		return "image"
	case strings.HasSuffix(ext, ".css"):
		return "style"
	case strings.HasSuffix(ext, ".woff"), strings.HasSuffix(ext, ".woff2"),
		strings.HasSuffix(ext, ".ttf"), strings.HasSuffix(ext, ".otf"):
		return "font"
	case strings.HasSuffix(ext, ".ncx"), strings.HasSuffix(ext, ".opf"):
		return ""
	}
	return "other"
}
