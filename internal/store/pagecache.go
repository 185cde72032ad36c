package store

import (
	"context"
	"time"

	"github.com/oguzkopan/teletext-sub000/internal/model/page"
)

// PageTTL is how long a rendered static page is served from cache.
const PageTTL = time.Minute

type cachedPage struct {
	Page        page.GridPage
	AccessCount int
}

// PageCache memoizes rendered pages by page ID and counts how often each
// cached page is served.
type PageCache struct {
	entries *TTL[cachedPage]
}

// NewPageCache creates a cache on the wall clock.
func NewPageCache() *PageCache {
	return NewPageCacheClock(time.Now)
}

// NewPageCacheClock creates a cache on a caller-supplied clock.
func NewPageCacheClock(now func() time.Time) *PageCache {
	return &PageCache{entries: NewTTLClock[cachedPage](now)}
}

// StartSweeper periodically evicts expired pages until ctx is cancelled.
func (c *PageCache) StartSweeper(ctx context.Context, interval time.Duration) {
	c.entries.StartSweeper(ctx, interval)
}

// Get returns the cached page for id, bumping its access count. The
// count bump re-saves under the entry's original deadline.
func (c *PageCache) Get(id string) (page.GridPage, bool) {
	entry, ok := c.entries.Get(id)
	if !ok {
		return page.GridPage{}, false
	}
	if deadline, live := c.entries.Expiry(id); live {
		entry.AccessCount++
		c.entries.PutUntil(id, entry, deadline)
	}
	return entry.Page, true
}

// Put caches p under its page ID for PageTTL.
func (c *PageCache) Put(p page.GridPage) {
	c.entries.Put(p.ID, cachedPage{Page: p, AccessCount: 0}, PageTTL)
}

// AccessCount reports how many cache hits id has served.
func (c *PageCache) AccessCount(id string) int {
	entry, ok := c.entries.Get(id)
	if !ok {
		return 0
	}
	return entry.AccessCount
}
