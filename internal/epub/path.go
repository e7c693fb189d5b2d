package epub

import (
	"path"
	"strings"
)

// Archive paths use forward slashes throughout; some producers emit
// backslashes or leading "./" segments, so every externally supplied path
// goes through Normalize before use.

// Normalize canonicalizes an archive path.
func Normalize(p string) string {
	p = strings.ReplaceAll(p, "\\", "/")
	p = strings.TrimPrefix(p, "./")
	return p
}

// Resolve resolves a relative reference against the archive path of the
// document it appears in. For example
// Resolve("chapters/ch1.xhtml", "../images/a.png") == "images/a.png".
func Resolve(base, ref string) string {
	base = Normalize(base)
	ref = Normalize(ref)
	if strings.HasPrefix(ref, "/") {
		return strings.TrimPrefix(path.Clean(ref), "/")
	}
	return path.Join(path.Dir(base), ref)
}

// FileName returns the bare filename of an archive path.
func FileName(p string) string {
	p = Normalize(p)
	if i := strings.LastIndex(p, "/"); i >= 0 {
		return p[i+1:]
	}
	return p
}
