package session

import "testing"

func testSections() []Section {
	return []Section{
		{Key: "OEBPS/text/ch1.xhtml"},
		{Key: "OEBPS/text/ch2.xhtml"},
		{Key: "OEBPS/extra/ch3.xhtml"},
	}
}

func TestLinkIndexResolvePath(t *testing.T) {
	idx := NewLinkIndex(testSections())

	ord, frag, ok := idx.Resolve("OEBPS/text/ch1.xhtml", "ch2.xhtml")
	if !ok || ord != 1 || frag != "" {
		t.Errorf("Resolve = %d, %q, %v", ord, frag, ok)
	}

	ord, frag, ok = idx.Resolve("OEBPS/text/ch1.xhtml", "../extra/ch3.xhtml#sec2")
	if !ok || ord != 2 || frag != "sec2" {
		t.Errorf("Resolve with fragment = %d, %q, %v", ord, frag, ok)
	}
}

func TestLinkIndexFilenameFallback(t *testing.T) {
	idx := NewLinkIndex(testSections())
	// Wrong directory, but the filename is unique across sections.
	ord, _, ok := idx.Resolve("OEBPS/text/ch1.xhtml", "bogus/dir/ch3.xhtml")
	if !ok || ord != 2 {
		t.Errorf("filename fallback = %d, %v", ord, ok)
	}
}

func TestLinkIndexUnknownTarget(t *testing.T) {
	idx := NewLinkIndex(testSections())
	if _, _, ok := idx.Resolve("OEBPS/text/ch1.xhtml", "nowhere.xhtml"); ok {
		t.Error("unknown target resolved")
	}
}

func TestLinkIndexFragmentOnly(t *testing.T) {
	idx := NewLinkIndex(testSections())
	ord, frag, ok := idx.Resolve("OEBPS/text/ch1.xhtml", "#note-1")
	if ok {
		t.Errorf("fragment-only href resolved to section %d", ord)
	}
	if frag != "note-1" {
		t.Errorf("fragment = %q, want note-1", frag)
	}
}

func TestLinkIndexDuplicateFilenames(t *testing.T) {
	sections := []Section{
		{Key: "a/page.xhtml"},
		{Key: "b/page.xhtml"},
	}
	idx := NewLinkIndex(sections)

	// Full paths stay distinct.
	if ord, _, ok := idx.Resolve("a/page.xhtml", "../b/page.xhtml"); !ok || ord != 1 {
		t.Errorf("full path resolve = %d, %v", ord, ok)
	}
	// The bare-name fallback keeps the later section.
	if ord, _, ok := idx.Resolve("c/other.xhtml", "page.xhtml"); !ok || ord != 1 {
		t.Errorf("duplicate filename fallback = %d, %v", ord, ok)
	}
}
