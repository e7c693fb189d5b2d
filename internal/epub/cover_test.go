package epub

import "testing"

func TestDetectCoverByProperties(t *testing.T) {
	opf := &OPF{
		Manifest: map[string]ManifestItem{
			"img": {ID: "img", Href: "images/front.jpg", MediaType: "image/jpeg", Properties: []string{"cover-image"}},
		},
		ManifestOrder: []string{"img"},
	}
	item, ok := opf.DetectCover()
	if !ok || item.Href != "images/front.jpg" {
		t.Errorf("DetectCover = %+v, %v", item, ok)
	}
}

func TestDetectCoverByMeta(t *testing.T) {
	opf := &OPF{
		Metadata: Metadata{CoverID: "c"},
		Manifest: map[string]ManifestItem{
			"c": {ID: "c", Href: "cover.png", MediaType: "image/png"},
		},
		ManifestOrder: []string{"c"},
	}
	item, ok := opf.DetectCover()
	if !ok || item.Href != "cover.png" {
		t.Errorf("DetectCover = %+v, %v", item, ok)
	}
}

func TestDetectCoverByFilename(t *testing.T) {
	opf := &OPF{
		Manifest: map[string]ManifestItem{
			"svg": {ID: "svg", Href: "images/cover.svg", MediaType: "image/svg+xml"},
			"jpg": {ID: "jpg", Href: "images/Cover-Art.jpg", MediaType: "image/jpeg"},
		},
		ManifestOrder: []string{"svg", "jpg"},
	}
	item, ok := opf.DetectCover()
	if !ok || item.Href != "images/Cover-Art.jpg" {
		t.Errorf("DetectCover should skip SVG, got %+v, %v", item, ok)
	}
}

func TestDetectCoverNone(t *testing.T) {
	opf := &OPF{
		Manifest: map[string]ManifestItem{
			"ch": {ID: "ch", Href: "ch1.xhtml", MediaType: "application/xhtml+xml"},
		},
		ManifestOrder: []string{"ch"},
	}
	if _, ok := opf.DetectCover(); ok {
		t.Error("DetectCover found a cover in a coverless manifest")
	}
}

func TestExtractCover(t *testing.T) {
	r, err := NewReader(buildArchive(t, testBookFiles()))
	if err != nil {
		t.Fatalf("NewReader failed: %v", err)
	}
	opf, err := ParseOPF([]byte(testOPF), "OEBPS/content.opf")
	if err != nil {
		t.Fatalf("ParseOPF failed: %v", err)
	}

	data, mediaType, err := ExtractCover(r, opf)
	if err != nil {
		t.Fatalf("ExtractCover failed: %v", err)
	}
	if string(data) != "PNGDATA" || mediaType != "image/png" {
		t.Errorf("ExtractCover = %q, %q", data, mediaType)
	}
}
