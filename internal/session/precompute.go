package session

import (
	"context"
	"log"
)

// Precompute measures every unmeasured section sequentially against the
// off-screen surface so the global total converges without waiting for the
// reader to visit each section. Only one pass runs at a time; a second call
// while one is in flight returns immediately. Individual section failures
// are logged and skipped, the pass keeps going.
func (c *Controller) Precompute(ctx context.Context) error {
	if c.offscreen == nil {
		return nil
	}
	if !c.precomputeMu.TryLock() {
		return nil
	}
	defer c.precomputeMu.Unlock()

	if err := c.ensureLoaded(ctx); err != nil {
		return err
	}

	c.stateMu.Lock()
	n := len(c.sections)
	c.stateMu.Unlock()

	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		c.stateMu.Lock()
		done := c.sections[i].Measured
		key := c.sections[i].Key
		c.stateMu.Unlock()
		if done {
			continue
		}

		html, err := c.buildSection(i)
		if err != nil {
			// The section cannot be rendered at all; mark it done so the
			// pass does not retry it forever.
			log.Printf("warning: session %s: precompute build failed for %s: %v", c.id, key, err)
			c.stateMu.Lock()
			c.sections[i].Measured = true
			c.stateMu.Unlock()
			continue
		}

		if err := c.offscreen.Load(ctx, html); err != nil {
			// Transient surface trouble; leave the section unmeasured so a
			// later pass or an on-screen visit can pick it up.
			log.Printf("warning: session %s: precompute load failed for %s: %v", c.id, key, err)
			continue
		}

		count := c.measure(ctx, c.offscreen, key)

		c.stateMu.Lock()
		// An on-screen measurement may have landed in the meantime; that
		// reading came from the surface the reader actually sees, keep it.
		if !c.sections[i].Measured {
			c.sections[i].PageCount = clampCount(count)
			c.sections[i].Measured = true
		}
		c.stateMu.Unlock()
	}
	return nil
}
