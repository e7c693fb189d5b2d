package transcode

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	gocache "github.com/patrickmn/go-cache"

	"github.com/pageturn-app/pageturn/internal/epub"
)

// Document holds the extracted parts of a transcoded section, ready for
// template injection.
type Document struct {
	CSS  string // concatenated stylesheet and style-block text
	Body string // inner markup of <body>
}

// Transcoder rewrites raw section markup into self-contained documents: all
// stylesheet links inlined, all asset references embedded as data URIs. The
// host rendering surface has no access to archive files and must never
// reach the network, so every reference has to be resolved up front.
//
// Transcoding is a pure function of (markup, key) plus the fixed asset set;
// results are memoized per section key for the life of the session.
type Transcoder struct {
	assets *epub.AssetSet
	cache  *gocache.Cache
}

// New creates a Transcoder over the archive's asset set.
func New(assets *epub.AssetSet) *Transcoder {
	return &Transcoder{
		assets: assets,
		cache:  gocache.New(gocache.NoExpiration, 0),
	}
}

// Transcode converts one section's markup into standalone document parts.
func (t *Transcoder) Transcode(markup, key string) (Document, error) {
	if cached, ok := t.cache.Get(key); ok {
		return cached.(Document), nil
	}
	doc, err := t.transcode(markup, key)
	if err != nil {
		return Document{}, err
	}
	t.cache.Set(key, doc, gocache.NoExpiration)
	return doc, nil
}

func (t *Transcoder) transcode(markup, key string) (Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return Document{}, fmt.Errorf("failed to parse section %s: %w", key, err)
	}

	var cssParts []string

	// Inline linked stylesheets that resolve to a known style asset.
	// Links that do not resolve stay in place, broken but inert.
	doc.Find("link[rel='stylesheet']").Each(func(_ int, s *goquery.Selection) {
		href, ok := s.Attr("href")
		if !ok || href == "" || isExternalRef(href) {
			return
		}
		resolved := epub.Resolve(key, href)
		css, ok := t.assets.Stylesheet(resolved)
		if !ok {
			if css, ok = t.assets.Stylesheet(epub.FileName(href)); !ok {
				return
			}
		}
		cssParts = append(cssParts, RewriteCSSURLs(css, resolved, t.assets))
		s.Remove()
	})

	// Embed asset references. Unresolved references are left exactly as
	// they were; they fail to display, nothing more.
	doc.Find("*").Each(func(_ int, s *goquery.Selection) {
		node := s.Get(0)
		if node == nil {
			return
		}
		for i, attr := range node.Attr {
			if !isAssetAttr(attr.Key, attr.Namespace) {
				continue
			}
			val := attr.Val
			if val == "" || isExternalRef(val) {
				continue
			}
			target, fragment := splitFragment(val)
			if target == "" {
				continue
			}
			resolved := epub.Resolve(key, target)
			data, ok := t.assets.Lookup(resolved)
			if !ok {
				continue
			}
			uri := DataURI(MIMEByPath(resolved), data)
			if fragment != "" {
				uri += "#" + fragment
			}
			node.Attr[i].Val = uri
		}
	})

	// Rewrite url(...) inside inline style blocks and pull their text out
	// for template injection.
	doc.Find("style").Each(func(_ int, s *goquery.Selection) {
		css := s.Text()
		if strings.TrimSpace(css) != "" {
			cssParts = append(cssParts, RewriteCSSURLs(css, key, t.assets))
		}
		s.Remove()
	})

	body := doc.Find("body")
	var inner string
	if body.Length() > 0 {
		inner, err = body.Html()
	} else {
		inner, err = doc.Html()
	}
	if err != nil {
		return Document{}, fmt.Errorf("failed to extract body of %s: %w", key, err)
	}

	return Document{
		CSS:  strings.Join(cssParts, "\n"),
		Body: inner,
	}, nil
}

// isAssetAttr matches src, href and xlink:href. The HTML parser represents
// xlink:href on SVG content as namespace "xlink", key "href".
func isAssetAttr(key, namespace string) bool {
	switch {
	case namespace == "" && (key == "src" || key == "href"):
		return true
	case key == "xlink:href":
		return true
	case namespace == "xlink" && key == "href":
		return true
	}
	return false
}

func splitFragment(ref string) (string, string) {
	if i := strings.Index(ref, "#"); i >= 0 {
		return ref[:i], ref[i+1:]
	}
	return ref, ""
}
