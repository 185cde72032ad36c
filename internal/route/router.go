package route

import (
	"context"
	"fmt"

	"github.com/oguzkopan/teletext-sub000/internal/model/page"
)

// Request carries everything an adapter needs to produce a page. Query
// holds the raw query parameters; each adapter operation parses them into
// its own closed parameter type and rejects unknown keys.
type Request struct {
	Page      PageID
	Query     map[string]string
	TextInput string
	ContextID string
}

// Adapter produces the pages of one magazine. An adapter returns at least
// one page on success; multi-page responses carry continuation metadata.
type Adapter interface {
	Name() string
	Render(ctx context.Context, req Request) ([]page.GridPage, error)
}

type span struct {
	lo, hi  int
	adapter Adapter
}

// Router maps validated page IDs to adapters. Resolution is a pure
// function of the ID and the static routing table.
type Router struct {
	system    Adapter
	magazines map[int]Adapter
	spans     []span
}

// NewRouter creates an empty routing table. The system adapter owns
// magazine 1 and the special pages 404, 666 and 999.
func NewRouter(system Adapter) *Router {
	return &Router{
		system:    system,
		magazines: map[int]Adapter{1: system},
	}
}

// Register assigns a whole magazine (leading digit 1-8) to an adapter.
func (r *Router) Register(digit int, a Adapter) {
	r.magazines[digit] = a
}

// RegisterRange assigns the inclusive page span lo-hi to an adapter,
// taking precedence over the magazine table. Used for the markets/weather
// split inside magazine 4.
func (r *Router) RegisterRange(lo, hi int, a Adapter) {
	r.spans = append(r.spans, span{lo: lo, hi: hi, adapter: a})
}

// Resolve validates raw and returns the owning adapter. Special pages go
// to the system adapter regardless of the magazine table.
func (r *Router) Resolve(raw string) (Adapter, PageID, error) {
	id, err := Parse(raw)
	if err != nil {
		return nil, PageID{}, err
	}

	if specialPages[id.Magazine] {
		return r.system, id, nil
	}
	for _, s := range r.spans {
		if id.Magazine >= s.lo && id.Magazine <= s.hi {
			return s.adapter, id, nil
		}
	}

	digit := id.Magazine / 100
	adapter, ok := r.magazines[digit]
	if !ok {
		// A magazine carved up into ranges has no whole-digit owner; a
		// valid page between its ranges simply has no content.
		for _, s := range r.spans {
			if s.lo/100 == digit {
				return nil, PageID{}, NotFound(fmt.Sprintf("no content at page %d", id.Magazine))
			}
		}
		return nil, PageID{}, &Error{
			Code:   CodeAdapter,
			Reason: fmt.Sprintf("no adapter mapped for magazine %d", digit),
		}
	}
	return adapter, id, nil
}
