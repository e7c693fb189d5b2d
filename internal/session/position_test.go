package session

import "testing"

func TestGlobalPage(t *testing.T) {
	sections := []Section{
		{Key: "a", PageCount: 2, Measured: true},
		{Key: "b", PageCount: 1, Measured: true},
		{Key: "c", PageCount: 3, Measured: true},
	}

	tests := []struct {
		name string
		pos  Position
		want int
	}{
		{"cover", Position{ShowingCover: true}, 1},
		{"first page", Position{Section: 0, Page: 0}, 2},
		{"second page", Position{Section: 0, Page: 1}, 3},
		{"middle section", Position{Section: 1, Page: 0}, 4},
		{"third section start", Position{Section: 2, Page: 0}, 5},
		{"third section second page", Position{Section: 2, Page: 1}, 6},
		{"last page", Position{Section: 2, Page: 2}, 7},
	}
	for _, tt := range tests {
		if got := GlobalPage(tt.pos, sections); got != tt.want {
			t.Errorf("%s: GlobalPage = %d, want %d", tt.name, got, tt.want)
		}
	}
}

func TestGlobalTotal(t *testing.T) {
	sections := []Section{
		{PageCount: 2}, {PageCount: 1}, {PageCount: 3},
	}
	if got := GlobalTotal(sections); got != 7 {
		t.Errorf("GlobalTotal = %d, want 7", got)
	}
	// Unmeasured or broken counts contribute one page each.
	if got := GlobalTotal([]Section{{PageCount: 0}, {PageCount: -5}}); got != 3 {
		t.Errorf("GlobalTotal with degenerate counts = %d, want 3", got)
	}
	if got := GlobalTotal(nil); got != 1 {
		t.Errorf("GlobalTotal(nil) = %d, want 1", got)
	}
}
