// Package route validates the numeric page-ID scheme and dispatches each
// page to the magazine adapter that owns it.
package route

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Grammar: magazine-id [ "-" sub-index [ "-" page-index ] ]. The magazine
// is three digits in 100-899, plus the special literals 404, 666 and 999.
// Sub and page indexes run 1-99.
var pageIDPattern = regexp.MustCompile(`^(\d{3})(?:-(\d{1,2})(?:-(\d{1,2}))?)?$`)

// Special pages routed to the system adapter regardless of magazine.
var specialPages = map[int]bool{404: true, 666: true, 999: true}

// PageID is a parsed, validated page address. Sub and Page are zero when
// the corresponding segment is absent.
type PageID struct {
	Magazine int
	Sub      int
	Page     int
}

// Parse validates raw against the page-ID grammar.
func Parse(raw string) (PageID, error) {
	m := pageIDPattern.FindStringSubmatch(raw)
	if m == nil {
		return PageID{}, invalidPage(fmt.Sprintf("malformed page id %q", raw))
	}

	magazine, _ := strconv.Atoi(m[1])
	if (magazine < 100 || magazine > 899) && !specialPages[magazine] {
		return PageID{}, invalidPage(fmt.Sprintf("page %d out of range", magazine))
	}

	id := PageID{Magazine: magazine}
	if m[2] != "" {
		sub, _ := strconv.Atoi(m[2])
		if sub < 1 {
			return PageID{}, invalidPage(fmt.Sprintf("sub-index %q out of range", m[2]))
		}
		id.Sub = sub
	}
	if m[3] != "" {
		page, _ := strconv.Atoi(m[3])
		if page < 1 {
			return PageID{}, invalidPage(fmt.Sprintf("page-index %q out of range", m[3]))
		}
		id.Page = page
	}
	return id, nil
}

// IsValid reports whether raw is a well-formed page ID.
func IsValid(raw string) bool {
	_, err := Parse(raw)
	return err == nil
}

// String renders the canonical page-ID form.
func (p PageID) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%03d", p.Magazine)
	if p.Sub > 0 {
		fmt.Fprintf(&b, "-%d", p.Sub)
		if p.Page > 0 {
			fmt.Fprintf(&b, "-%d", p.Page)
		}
	}
	return b.String()
}

// Advance increments the last present segment by n. It never rolls over
// into a neighboring magazine.
func (p PageID) Advance(n int) PageID {
	switch {
	case p.Page > 0:
		p.Page += n
	case p.Sub > 0:
		p.Sub += n
	default:
		p.Magazine += n
	}
	return p
}

// WithSub returns the address of sub-page n under p's magazine.
func (p PageID) WithSub(n int) PageID {
	return PageID{Magazine: p.Magazine, Sub: n}
}
