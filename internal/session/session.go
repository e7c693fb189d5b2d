// Package session drives one reading session over one book: lazy archive
// loading, per-section document building, page-count measurement through
// the host rendering surface, navigation, and the global page indicator.
package session

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/url"
	"sync"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/google/uuid"

	"github.com/pageturn-app/pageturn/internal/epub"
	"github.com/pageturn-app/pageturn/internal/paginate"
	"github.com/pageturn-app/pageturn/internal/transcode"
)

// Options tunes the measurement timing of a session.
type Options struct {
	// LayoutSettleDelay is waited after a successful load before the first
	// page-count reading, giving column layout a chance to apply.
	LayoutSettleDelay time.Duration
	// RemeasureDelay is waited before the one-shot re-measurement taken
	// when a document implausibly reports a single page right after load.
	RemeasureDelay time.Duration
}

const (
	defaultLayoutSettleDelay = 200 * time.Millisecond
	defaultRemeasureDelay    = 350 * time.Millisecond
)

func (o Options) withDefaults() Options {
	if o.LayoutSettleDelay == 0 {
		o.LayoutSettleDelay = defaultLayoutSettleDelay
	}
	if o.RemeasureDelay == 0 {
		o.RemeasureDelay = defaultRemeasureDelay
	}
	return o
}

// errSinglePage triggers the bounded re-measurement: a single page reported
// immediately after load is a known layout race on slower hosts.
var errSinglePage = errors.New("single page reported immediately after load")

// Controller owns all mutable state of a reading session. The on-screen
// surface is driven by user navigation, which is inherently serialized; the
// off-screen surface is driven only by the precompute pass. Measurement
// cycles on either surface are mutually exclusive.
type Controller struct {
	id        string
	bookID    int64
	archive   []byte
	opts      Options
	surface   Surface
	offscreen Surface
	sink      PositionSink

	stateMu  sync.Mutex
	model    *epub.Model
	trans    *transcode.Transcoder
	sections []Section
	links    *LinkIndex
	pos      Position

	measureMu    sync.Mutex // one measurement cycle at a time, either surface
	precomputeMu sync.Mutex // single-slot guard for the precompute pass
}

// New creates a session over raw archive bytes. The archive is not parsed
// until first needed; offscreen and sink may be nil.
func New(bookID int64, archive []byte, surface, offscreen Surface, sink PositionSink, opts Options) *Controller {
	return &Controller{
		id:        uuid.NewString(),
		bookID:    bookID,
		archive:   archive,
		opts:      opts.withDefaults(),
		surface:   surface,
		offscreen: offscreen,
		sink:      sink,
		pos:       Position{ShowingCover: true},
	}
}

// ID returns the session identifier used in log lines.
func (c *Controller) ID() string {
	return c.id
}

// Position returns the current reading position.
func (c *Controller) Position() Position {
	c.stateMu.Lock()
	defer c.stateMu.Unlock()
	return c.pos
}

// GlobalPage returns the 1-based page indicator across the whole book.
func (c *Controller) GlobalPage() int {
	c.stateMu.Lock()
	defer c.stateMu.Unlock()
	return GlobalPage(c.pos, c.sections)
}

// GlobalTotal returns the current total page count, cover included. It
// converges as sections get measured.
func (c *Controller) GlobalTotal() int {
	c.stateMu.Lock()
	defer c.stateMu.Unlock()
	return GlobalTotal(c.sections)
}

// Sections returns a snapshot of the section states.
func (c *Controller) Sections() []Section {
	c.stateMu.Lock()
	defer c.stateMu.Unlock()
	out := make([]Section, len(c.sections))
	copy(out, c.sections)
	return out
}

// Tap handles the cover tap that begins reading: the archive is parsed if
// it has not been yet and the first section is displayed.
func (c *Controller) Tap(ctx context.Context) error {
	if !c.Position().ShowingCover {
		return nil
	}
	return c.Advance(ctx)
}

// Advance moves forward one page, crossing into the next section when the
// current one is exhausted. At the end of the book it is a no-op.
func (c *Controller) Advance(ctx context.Context) error {
	c.stateMu.Lock()
	if c.pos.ShowingCover {
		c.stateMu.Unlock()
		if err := c.ensureLoaded(ctx); err != nil {
			return err
		}
		return c.showSection(ctx, 0, 0, "")
	}

	pos := c.pos
	count := clampCount(c.sections[pos.Section].PageCount)
	last := len(c.sections) - 1
	c.stateMu.Unlock()

	switch {
	case pos.Page+1 < count:
		c.setPage(pos.Page + 1)
		c.scrollToPage(ctx, c.surface, pos.Page+1)
		return nil
	case pos.Section < last:
		return c.showSection(ctx, pos.Section+1, 0, "")
	default:
		return nil // end of book
	}
}

// Retreat moves back one page, crossing into the previous section's last
// page, and from the very first page back to the cover.
func (c *Controller) Retreat(ctx context.Context) error {
	c.stateMu.Lock()
	if c.pos.ShowingCover {
		c.stateMu.Unlock()
		return nil
	}
	pos := c.pos
	var prevCount int
	if pos.Section > 0 {
		prevCount = clampCount(c.sections[pos.Section-1].PageCount)
	}
	c.stateMu.Unlock()

	switch {
	case pos.Page > 0:
		c.setPage(pos.Page - 1)
		c.scrollToPage(ctx, c.surface, pos.Page-1)
		return nil
	case pos.Section > 0:
		return c.showSection(ctx, pos.Section-1, prevCount-1, "")
	default:
		c.stateMu.Lock()
		c.pos = Position{ShowingCover: true}
		c.stateMu.Unlock()
		return nil
	}
}

// HandleNavigation intercepts a navigation request raised by the host
// surface for the currently displayed document. It returns true when the
// host must cancel the navigation because it was handled (or deliberately
// ignored) internally; external URLs return false and stay the host's
// problem.
func (c *Controller) HandleNavigation(ctx context.Context, href string) bool {
	if isExternalURL(href) {
		return false
	}

	c.stateMu.Lock()
	if c.pos.ShowingCover || c.links == nil {
		c.stateMu.Unlock()
		return false
	}
	baseKey := c.sections[c.pos.Section].Key
	links := c.links
	c.stateMu.Unlock()

	ordinal, fragment, ok := links.Resolve(baseKey, href)
	if ok {
		if err := c.showSection(ctx, ordinal, 0, fragment); err != nil {
			log.Printf("warning: session %s: link jump to %q failed: %v", c.id, href, err)
		}
		return true
	}
	if fragment != "" {
		// Unresolved target with a fragment: best effort in-place jump.
		if landed, ok := c.jumpToAnchor(ctx, c.surface, fragment); ok {
			c.setPage(landed)
		}
		return true
	}
	return true
}

// Close ends the session and persists the final reading position onto the
// book: the 0-based global page, with the cover saved as 0.
func (c *Controller) Close() error {
	if c.sink == nil {
		return nil
	}
	page := c.GlobalPage() - 1
	if page < 0 {
		page = 0
	}
	if err := c.sink.SaveLastPage(c.bookID, page); err != nil {
		return fmt.Errorf("failed to save reading position: %w", err)
	}
	return nil
}

// ensureLoaded parses the archive on first use. Archives can be large, so
// callers on an interactive path should invoke this from a background task.
func (c *Controller) ensureLoaded(ctx context.Context) error {
	c.stateMu.Lock()
	defer c.stateMu.Unlock()
	if c.model != nil {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	model, err := epub.Parse(c.archive)
	if err != nil {
		return err
	}
	c.model = model
	c.trans = transcode.New(model.Assets)
	c.sections = make([]Section, len(model.Sections))
	for i, rs := range model.Sections {
		c.sections[i] = Section{Key: rs.Key, Raw: rs.Markup, PageCount: 1}
	}
	c.links = NewLinkIndex(c.sections)
	return nil
}

// showSection builds, loads and measures a section, then applies the
// requested page (clamped to the fresh measurement) and fragment.
func (c *Controller) showSection(ctx context.Context, idx, page int, fragment string) error {
	if err := c.ensureLoaded(ctx); err != nil {
		return err
	}

	c.stateMu.Lock()
	if idx < 0 || idx >= len(c.sections) {
		c.stateMu.Unlock()
		return fmt.Errorf("section index %d out of range", idx)
	}
	key := c.sections[idx].Key
	c.stateMu.Unlock()

	html, err := c.buildSection(idx)
	if err != nil {
		return err
	}

	if err := c.surface.Load(ctx, html); err != nil {
		// The load attempt is abandoned; position and the section's page
		// count stay as they were.
		log.Printf("warning: session %s: load failed for %s: %v", c.id, key, err)
		return nil
	}

	c.stateMu.Lock()
	c.pos = Position{Section: idx, Page: page}
	c.stateMu.Unlock()

	count := c.measure(ctx, c.surface, key)

	c.stateMu.Lock()
	sec := &c.sections[idx]
	sec.PageCount = clampCount(count)
	sec.Measured = true
	if c.pos.Section == idx && c.pos.Page >= sec.PageCount {
		c.pos.Page = sec.PageCount - 1
	}
	page = c.pos.Page
	c.stateMu.Unlock()

	if page > 0 {
		c.scrollToPage(ctx, c.surface, page)
	}
	if fragment != "" {
		if landed, ok := c.jumpToAnchor(ctx, c.surface, fragment); ok {
			c.setPage(landed)
		}
	}
	return nil
}

// buildSection returns the section's standalone document, building and
// caching it on first use.
func (c *Controller) buildSection(idx int) (string, error) {
	c.stateMu.Lock()
	defer c.stateMu.Unlock()

	sec := &c.sections[idx]
	if sec.Rendered != "" {
		return sec.Rendered, nil
	}
	doc, err := c.trans.Transcode(sec.Raw, sec.Key)
	if err != nil {
		return "", fmt.Errorf("failed to build section %s: %w", sec.Key, err)
	}
	sec.Rendered = paginate.BuildDocument(doc)
	return sec.Rendered, nil
}

// measure runs one authoritative page-count measurement cycle against surf.
// Cycles are serialized across the on-screen surface and the precompute
// pass. Script failures are recovered by assuming a single page; reading
// stays possible with a possibly inaccurate total.
func (c *Controller) measure(ctx context.Context, surf Surface, key string) int {
	c.measureMu.Lock()
	defer c.measureMu.Unlock()

	c.sleep(ctx, c.opts.LayoutSettleDelay)
	if _, err := surf.Evaluate(ctx, paginate.ScriptLayout); err != nil {
		log.Printf("warning: session %s: layout failed for %s: %v", c.id, key, err)
		return 1
	}

	count := 1
	attempt := 0
	err := retry.Do(
		func() error {
			attempt++
			result, err := surf.Evaluate(ctx, paginate.ScriptPageCount)
			if err != nil {
				return retry.Unrecoverable(err)
			}
			n, err := paginate.ParsePageCount(result)
			if err != nil {
				return retry.Unrecoverable(err)
			}
			count = n
			if n == 1 && attempt == 1 {
				return errSinglePage
			}
			return nil
		},
		retry.Attempts(2),
		retry.Delay(c.opts.RemeasureDelay),
		retry.DelayType(retry.FixedDelay),
		retry.LastErrorOnly(true),
		retry.Context(ctx),
	)
	if err != nil && !errors.Is(err, errSinglePage) {
		log.Printf("warning: session %s: measurement failed for %s: %v", c.id, key, err)
		return 1
	}
	return count
}

func (c *Controller) setPage(page int) {
	c.stateMu.Lock()
	c.pos.Page = page
	c.stateMu.Unlock()
}

func (c *Controller) scrollToPage(ctx context.Context, surf Surface, page int) {
	if _, err := surf.Evaluate(ctx, paginate.GoToScript(page)); err != nil {
		log.Printf("warning: session %s: goTo(%d) failed: %v", c.id, page, err)
	}
}

// jumpToAnchor scrolls to an element id and reports the page landed on.
func (c *Controller) jumpToAnchor(ctx context.Context, surf Surface, id string) (int, bool) {
	result, err := surf.Evaluate(ctx, paginate.GoToAnchorScript(id))
	if err != nil {
		log.Printf("warning: session %s: goToAnchor(%q) failed: %v", c.id, id, err)
		return 0, false
	}
	return paginate.ParsePageIndex(result)
}

// sleep waits for d, returning early on context cancellation.
func (c *Controller) sleep(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}

// isExternalURL reports whether a link target leaves the book entirely.
func isExternalURL(href string) bool {
	u, err := url.Parse(href)
	if err != nil {
		return false
	}
	return u.IsAbs()
}
