package transcode

import (
	"encoding/base64"
	"mime"
	"path"
	"strings"
)

// extensionTypes is consulted before the stdlib mime package: font types
// like woff2 and otf are not registered on every platform.
var extensionTypes = map[string]string{
	".png":   "image/png",
	".jpg":   "image/jpeg",
	".jpeg":  "image/jpeg",
	".gif":   "image/gif",
	".svg":   "image/svg+xml",
	".webp":  "image/webp",
	".bmp":   "image/bmp",
	".woff":  "font/woff",
	".woff2": "font/woff2",
	".ttf":   "font/ttf",
	".otf":   "font/otf",
	".css":   "text/css",
	".mp3":   "audio/mpeg",
	".mp4":   "video/mp4",
}

// MIMEByPath guesses a media type from a path's extension.
func MIMEByPath(p string) string {
	ext := strings.ToLower(path.Ext(p))
	if mt, ok := extensionTypes[ext]; ok {
		return mt
	}
	if mt := mime.TypeByExtension(ext); mt != "" {
		return mt
	}
	return "application/octet-stream"
}

// DataURI encodes asset data as a base64 data: URI.
func DataURI(mediaType string, data []byte) string {
	return "data:" + mediaType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// isExternalRef reports whether a reference must not be rewritten: external
// schemes, already-embedded data, and bare in-page anchors.
func isExternalRef(ref string) bool {
	lower := strings.ToLower(ref)
	return strings.HasPrefix(lower, "http://") ||
		strings.HasPrefix(lower, "https://") ||
		strings.HasPrefix(lower, "mailto:") ||
		strings.HasPrefix(lower, "tel:") ||
		strings.HasPrefix(lower, "data:") ||
		strings.HasPrefix(ref, "#")
}
