// Package throttle serializes calls to the generation backend: a FIFO
// queue drained by a single loop, a global rate-limit cooldown with
// exponential backoff, and a response cache consulted before any call.
package throttle

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/oguzkopan/teletext-sub000/internal/model/session"
	"github.com/oguzkopan/teletext-sub000/internal/store"
)

// ErrRateLimited is returned once the backoff schedule is exhausted.
var ErrRateLimited = errors.New("generation rate limit exceeded, try again later")

// Generator is the opaque text-generation capability being protected.
type Generator interface {
	Generate(ctx context.Context, prompt string, history []session.Turn) (string, error)
}

const maxRetries = 3

type result struct {
	text string
	err  error
}

type pending struct {
	prompt     string
	history    []session.Turn
	done       chan result
	retryCount int
}

// Throttler admits at most one generation call system-wide at a time.
// Queued callers are served strictly FIFO by a drain loop that starts on
// demand and exits when the queue empties.
type Throttler struct {
	gen   Generator
	cache *store.ResponseCache

	mu            sync.Mutex
	queue         []*pending
	draining      bool
	cooldownUntil time.Time

	now         func() time.Time
	sleep       func(time.Duration)
	backoffBase time.Duration
}

// New creates a throttler over gen with the given response cache.
func New(gen Generator, cache *store.ResponseCache) *Throttler {
	return &Throttler{
		gen:         gen,
		cache:       cache,
		now:         time.Now,
		sleep:       time.Sleep,
		backoffBase: time.Second,
	}
}

// Invoke returns generated text for the prompt and history. A cache hit
// returns immediately and bypasses throttling entirely; otherwise the
// call is queued and settles exactly once. A cancelled ctx abandons the
// wait, but the queued entry itself is not withdrawn.
func (t *Throttler) Invoke(ctx context.Context, prompt string, history []session.Turn) (string, error) {
	if text, ok := t.cache.Lookup(prompt, history); ok {
		return text, nil
	}

	p := &pending{prompt: prompt, history: history, done: make(chan result, 1)}

	t.mu.Lock()
	t.queue = append(t.queue, p)
	if !t.draining {
		t.draining = true
		go t.drain()
	}
	t.mu.Unlock()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-p.done:
		return res.text, res.err
	}
}

// drain serves the queue head by head. It is the only goroutine that
// touches the generator, which enforces the single-flight invariant.
func (t *Throttler) drain() {
	for {
		t.mu.Lock()
		if len(t.queue) == 0 {
			t.draining = false
			t.mu.Unlock()
			return
		}
		p := t.queue[0]
		t.queue = t.queue[1:]
		cooldown := t.cooldownUntil
		t.mu.Unlock()

		t.waitUntil(cooldown)
		p.done <- t.attempt(p)
	}
}

// attempt runs the generation call, retrying rate-limit failures in
// place with 1s, 2s, 4s cooldowns before giving up.
func (t *Throttler) attempt(p *pending) result {
	for {
		// In-flight calls are never cancelled on behalf of abandoned
		// callers; the generator's own timeout is the only bound.
		text, err := t.gen.Generate(context.Background(), p.prompt, p.history)
		if err == nil {
			t.mu.Lock()
			t.cooldownUntil = time.Time{}
			t.mu.Unlock()
			t.cache.Store(p.prompt, p.history, text)
			return result{text: text}
		}

		if !IsRateLimit(err) {
			return result{err: err}
		}
		if p.retryCount >= maxRetries {
			return result{err: fmt.Errorf("%w: %v", ErrRateLimited, err)}
		}

		delay := t.backoffBase << p.retryCount
		p.retryCount++

		t.mu.Lock()
		t.cooldownUntil = t.now().Add(delay)
		cooldown := t.cooldownUntil
		t.mu.Unlock()

		t.waitUntil(cooldown)
	}
}

func (t *Throttler) waitUntil(deadline time.Time) {
	if deadline.IsZero() {
		return
	}
	if d := deadline.Sub(t.now()); d > 0 {
		t.sleep(d)
	}
}

// IsRateLimit classifies vendor rate-limit signals: HTTP 429 markers,
// gRPC RESOURCE_EXHAUSTED, or quota/rate wording in the message.
func IsRateLimit(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	for _, marker := range []string{
		"429",
		"resource_exhausted",
		"rate limit",
		"ratelimit",
		"too many requests",
		"quota",
	} {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}
