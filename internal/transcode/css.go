package transcode

import (
	"regexp"
	"strings"

	"github.com/pageturn-app/pageturn/internal/epub"
)

// cssURLRe matches url(...) references in CSS, with optional quoting.
var cssURLRe = regexp.MustCompile(`url\(\s*(['"]?)([^'")]+)['"]?\s*\)`)

// RewriteCSSURLs replaces url(...) references in css with embedded data
// URIs. References are resolved against baseKey (the path of the file the
// CSS came from); anything that does not resolve to a known asset is left
// untouched.
func RewriteCSSURLs(css, baseKey string, assets *epub.AssetSet) string {
	return cssURLRe.ReplaceAllStringFunc(css, func(match string) string {
		sub := cssURLRe.FindStringSubmatch(match)
		if len(sub) < 3 {
			return match
		}
		ref := strings.TrimSpace(sub[2])
		if ref == "" || isExternalRef(ref) {
			return match
		}
		resolved := epub.Resolve(baseKey, ref)
		data, ok := assets.Lookup(resolved)
		if !ok {
			return match
		}
		return "url(" + DataURI(MIMEByPath(resolved), data) + ")"
	})
}
