package paginate

import (
	"fmt"
	"strconv"
	"strings"
)

// Script expressions evaluated by the host rendering surface against a
// document built with BuildDocument.
const (
	ScriptLayout    = "layout();"
	ScriptPageCount = "pageCount();"
)

// GoToScript builds the expression scrolling to a 0-based page index.
func GoToScript(page int) string {
	return fmt.Sprintf("goTo(%d);", page)
}

// GoToAnchorScript builds the expression scrolling to the page containing
// the element with the given id.
func GoToAnchorScript(id string) string {
	return fmt.Sprintf("goToAnchor(%s);", strconv.Quote(id))
}

// ParsePageCount parses a surface evaluation result into a page count.
// Hosts differ on result quoting, so surrounding quotes are tolerated.
// Unparseable data and values below 1 are errors; the caller recovers by
// assuming a single page.
func ParsePageCount(result string) (int, error) {
	s := strings.TrimSpace(result)
	s = strings.Trim(s, `"'`)
	if s == "" {
		return 0, fmt.Errorf("empty page count result")
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		f, ferr := strconv.ParseFloat(s, 64)
		if ferr != nil {
			return 0, fmt.Errorf("unparseable page count %q", result)
		}
		n = int(f)
	}
	if n < 1 {
		return 0, fmt.Errorf("implausible page count %d", n)
	}
	return n, nil
}

// ParsePageIndex parses the result of a goToAnchor evaluation: the 0-based
// page scrolled to, or a negative value when the anchor was not found.
func ParsePageIndex(result string) (int, bool) {
	s := strings.TrimSpace(result)
	s = strings.Trim(s, `"'`)
	n, err := strconv.Atoi(s)
	if err != nil {
		f, ferr := strconv.ParseFloat(s, 64)
		if ferr != nil {
			return 0, false
		}
		n = int(f)
	}
	if n < 0 {
		return 0, false
	}
	return n, true
}
