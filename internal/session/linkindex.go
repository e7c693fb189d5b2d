package session

import (
	"strings"

	"github.com/pageturn-app/pageturn/internal/epub"
)

// LinkIndex maps section paths and bare filenames to section ordinals, for
// resolving internal navigation. Built once at load time and never mutated.
// When two sections share a bare filename the last one wins.
type LinkIndex struct {
	byPath map[string]int
	byName map[string]int
}

// NewLinkIndex builds the index from the ordered section list.
func NewLinkIndex(sections []Section) *LinkIndex {
	idx := &LinkIndex{
		byPath: make(map[string]int, len(sections)),
		byName: make(map[string]int, len(sections)),
	}
	for i := range sections {
		key := epub.Normalize(sections[i].Key)
		idx.byPath[key] = i
		idx.byName[epub.FileName(key)] = i
	}
	return idx
}

// Resolve resolves a link target, optionally carrying a "#fragment",
// against the section it appears in. It tries the fully resolved path
// first, then the bare filename. The fragment is returned in either case.
func (x *LinkIndex) Resolve(baseKey, href string) (ordinal int, fragment string, ok bool) {
	target := href
	if i := strings.Index(href, "#"); i >= 0 {
		target, fragment = href[:i], href[i+1:]
	}
	if target == "" {
		return 0, fragment, false
	}

	resolved := epub.Resolve(baseKey, target)
	if ord, found := x.byPath[resolved]; found {
		return ord, fragment, true
	}
	if ord, found := x.byName[epub.FileName(target)]; found {
		return ord, fragment, true
	}
	return 0, fragment, false
}
