// Package paginate wraps transcoded section content in a fixed-viewport,
// multi-column reader shell and speaks the shell's scripted measurement
// contract: layout, pageCount, goTo and goToAnchor.
package paginate

import (
	_ "embed"
	"strings"

	"github.com/pageturn-app/pageturn/internal/transcode"
)

//go:embed reader.html
var readerTemplate string

const (
	stylePlaceholder = "__PAGETURN_STYLE__"
	bodyPlaceholder  = "__PAGETURN_BODY__"
)

// BuildDocument injects transcoded section parts into the reader shell.
// The shell lays the body out into viewport-width columns, so the document
// becomes a horizontally scrollable strip of discrete pages.
func BuildDocument(doc transcode.Document) string {
	out := strings.Replace(readerTemplate, stylePlaceholder, doc.CSS, 1)
	out = strings.Replace(out, bodyPlaceholder, doc.Body, 1)
	return out
}
