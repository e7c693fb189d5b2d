package session

// Position is the transient reading position within a session: either the
// cover, or a page inside a section.
type Position struct {
	ShowingCover bool
	Section      int
	Page         int // 0-based page within the section
}

// GlobalPage derives the 1-based page indicator across the whole book; the
// cover counts as page 1. It is a pure function of the position and the
// current section states, recomputed on demand, never stored.
func GlobalPage(pos Position, sections []Section) int {
	if pos.ShowingCover {
		return 1
	}
	page := 1 // the cover
	for i := 0; i < pos.Section && i < len(sections); i++ {
		page += clampCount(sections[i].PageCount)
	}
	return page + pos.Page + 1
}

// GlobalTotal derives the total page count across the whole book, cover
// included.
func GlobalTotal(sections []Section) int {
	total := 1
	for i := range sections {
		total += clampCount(sections[i].PageCount)
	}
	return total
}
