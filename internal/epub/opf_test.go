package epub

import "testing"

func TestParseOPF(t *testing.T) {
	opf, err := ParseOPF([]byte(testOPF), "OEBPS/content.opf")
	if err != nil {
		t.Fatalf("ParseOPF failed: %v", err)
	}

	if opf.Metadata.Title != "Test Book" {
		t.Errorf("Title = %q, want Test Book", opf.Metadata.Title)
	}
	if len(opf.Metadata.Creators) != 1 || opf.Metadata.Creators[0] != "Jane Tester" {
		t.Errorf("Creators = %v", opf.Metadata.Creators)
	}
	if opf.Metadata.Language != "en" {
		t.Errorf("Language = %q, want en", opf.Metadata.Language)
	}
	if opf.Metadata.CoverID != "cover-img" {
		t.Errorf("CoverID = %q, want cover-img", opf.Metadata.CoverID)
	}

	// Hrefs are resolved against the OPF directory.
	item, ok := opf.Manifest["ch1"]
	if !ok {
		t.Fatal("manifest missing ch1")
	}
	if item.Href != "OEBPS/text/ch1.xhtml" {
		t.Errorf("ch1 href = %q, want OEBPS/text/ch1.xhtml", item.Href)
	}

	if len(opf.Spine) != 2 {
		t.Fatalf("spine length = %d, want 2", len(opf.Spine))
	}
	if opf.Spine[0].IDRef != "ch1" || !opf.Spine[0].Linear {
		t.Errorf("spine[0] = %+v", opf.Spine[0])
	}
}

func TestParseOPFNonLinear(t *testing.T) {
	src := `<package version="2.0">
  <manifest>
    <item id="notes" href="notes.xhtml" media-type="application/xhtml+xml"/>
  </manifest>
  <spine><itemref idref="notes" linear="no"/></spine>
</package>`
	opf, err := ParseOPF([]byte(src), "content.opf")
	if err != nil {
		t.Fatalf("ParseOPF failed: %v", err)
	}
	if opf.Spine[0].Linear {
		t.Error("linear=no itemref parsed as linear")
	}
}

func TestParseOPFProperties(t *testing.T) {
	src := `<package version="3.0">
  <manifest>
    <item id="cov" href="cover.jpg" media-type="image/jpeg" properties="cover-image"/>
    <item id="nav" href="nav.xhtml" media-type="application/xhtml+xml" properties="nav scripted"/>
  </manifest>
  <spine/>
</package>`
	opf, err := ParseOPF([]byte(src), "content.opf")
	if err != nil {
		t.Fatalf("ParseOPF failed: %v", err)
	}
	if got := opf.Manifest["nav"].Properties; len(got) != 2 || got[0] != "nav" || got[1] != "scripted" {
		t.Errorf("nav properties = %v", got)
	}
}

func TestParseOPFInvalidXML(t *testing.T) {
	if _, err := ParseOPF([]byte("<package><unterminated"), "content.opf"); err == nil {
		t.Error("expected error for invalid XML")
	}
}
