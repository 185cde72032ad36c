// Package adapter implements the magazine adapters behind the page
// router: static content magazines, the AI magazine and the games
// magazine. Each adapter owns one leading digit of the page-ID space.
package adapter

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/oguzkopan/teletext-sub000/internal/model/page"
	"github.com/oguzkopan/teletext-sub000/internal/route"
)

// parseParams validates a request's query against the closed set of
// recognized keys for one adapter operation. Unknown keys are a caller
// error, not silently ignored.
func parseParams(query map[string]string, allowed ...string) error {
	for key := range query {
		ok := false
		for _, a := range allowed {
			if key == a {
				ok = true
				break
			}
		}
		if !ok {
			return &route.Error{
				Code:   route.CodeInvalidPage,
				Reason: fmt.Sprintf("unrecognized parameter %q", key),
			}
		}
	}
	return nil
}

// intParam parses an optional integer query parameter.
func intParam(query map[string]string, key string) (int, bool, error) {
	raw, ok := query[key]
	if !ok || raw == "" {
		return 0, false, nil
	}
	val, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false, &route.Error{
			Code:   route.CodeInvalidPage,
			Reason: fmt.Sprintf("parameter %q must be a number", key),
		}
	}
	return val, true, nil
}

// notFound is shorthand for the "valid ID, no content" failure.
func notFound(id route.PageID) error {
	return route.NotFound(fmt.Sprintf("no content at page %s", id))
}

// indexPage renders a magazine index from a page-number -> label table.
func indexPage(id, title string, entries map[string]string, footer string) page.GridPage {
	numbers := make([]string, 0, len(entries))
	for n := range entries {
		numbers = append(numbers, n)
	}
	sort.Strings(numbers)

	b := page.NewBuilder(id, title)
	for _, n := range numbers {
		b.Row(fmt.Sprintf(" %s%s %s%s", page.TagGreen, n, page.TagWhite, entries[n]))
		b.Link(entries[n], n, page.Green)
	}
	if footer != "" {
		b.Blank().Row(page.TagBlue + footer)
	}
	b.Link("INDEX", "100", page.Yellow)
	return b.Build()
}
