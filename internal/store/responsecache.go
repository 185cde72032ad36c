package store

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/oguzkopan/teletext-sub000/internal/model/session"
)

// ResponseTTL bounds how long a generated answer is served from cache.
const ResponseTTL = 5 * time.Minute

// historyKeyDepth caps how many trailing history turns participate in the
// cache key, so long conversations do not fragment the cache.
const historyKeyDepth = 5

// ResponseCache memoizes generated text by prompt and recent history.
// Pure memoization, independent of any session identity.
type ResponseCache struct {
	entries *TTL[string]
}

// NewResponseCache creates a cache on the wall clock.
func NewResponseCache() *ResponseCache {
	return NewResponseCacheClock(time.Now)
}

// NewResponseCacheClock creates a cache on a caller-supplied clock.
func NewResponseCacheClock(now func() time.Time) *ResponseCache {
	return &ResponseCache{entries: NewTTLClock[string](now)}
}

// StartSweeper periodically evicts expired answers until ctx is cancelled.
func (c *ResponseCache) StartSweeper(ctx context.Context, interval time.Duration) {
	c.entries.StartSweeper(ctx, interval)
}

// Lookup returns the cached text for the prompt/history pair, if live.
func (c *ResponseCache) Lookup(prompt string, history []session.Turn) (string, bool) {
	return c.entries.Get(ResponseKey(prompt, history))
}

// Store caches text for the prompt/history pair for ResponseTTL.
func (c *ResponseCache) Store(prompt string, history []session.Turn, text string) {
	c.entries.Put(ResponseKey(prompt, history), text, ResponseTTL)
}

// ResponseKey derives the stable cache key from the prompt and at most
// the last five history turns.
func ResponseKey(prompt string, history []session.Turn) string {
	if len(history) > historyKeyDepth {
		history = history[len(history)-historyKeyDepth:]
	}
	h := sha256.New()
	h.Write([]byte(prompt))
	for _, turn := range history {
		h.Write([]byte{0})
		h.Write([]byte(turn.Role))
		h.Write([]byte{0})
		h.Write([]byte(turn.Text))
	}
	return hex.EncodeToString(h.Sum(nil))
}
