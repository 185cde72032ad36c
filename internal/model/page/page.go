package page

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Grid dimensions shared by every rendered page.
const (
	Rows = 24
	Cols = 40
)

// LinkColor enumerates the four standard navigation colors.
type LinkColor string

const (
	Red    LinkColor = "red"
	Green  LinkColor = "green"
	Yellow LinkColor = "yellow"
	Blue   LinkColor = "blue"
)

// Inline color tags. A tag occupies zero display columns; the renderer on
// the client side turns it into a color switch for the rest of the row.
const (
	TagRed    = "\x1br"
	TagGreen  = "\x1bg"
	TagYellow = "\x1by"
	TagBlue   = "\x1bb"
	TagWhite  = "\x1bw"
)

// Link is a navigation affordance attached to a page.
type Link struct {
	Label      string    `json:"label"`
	TargetPage string    `json:"targetPage"`
	Color      LinkColor `json:"color,omitempty"`
}

// GridPage is one fixed-size screen of content: exactly 24 rows of 40
// display columns, plus navigation links and free-form metadata.
// Immutable once handed to a caller.
type GridPage struct {
	ID    string         `json:"id"`
	Title string         `json:"title"`
	Rows  []string       `json:"rows"`
	Links []Link         `json:"links"`
	Meta  map[string]any `json:"meta,omitempty"`
}

// Continuation links sequential pages produced by splitting one logical
// response. Stored under Meta["continuation"] whenever TotalPages > 1.
type Continuation struct {
	CurrentPage  string `json:"currentPage"`
	NextPage     string `json:"nextPage,omitempty"`
	PreviousPage string `json:"previousPage,omitempty"`
	TotalPages   int    `json:"totalPages"`
	CurrentIndex int    `json:"currentIndex"`
}

// DisplayWidth measures s in screen columns. Wide glyphs (CJK, emoji)
// count as two columns; inline color tags count as zero.
func DisplayWidth(s string) int {
	return runewidth.StringWidth(StripTags(s))
}

// StripTags removes inline color tags from s.
func StripTags(s string) string {
	if !strings.ContainsRune(s, '\x1b') {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	skip := false
	for _, r := range s {
		if skip {
			skip = false
			continue
		}
		if r == '\x1b' {
			skip = true
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// PadRow pads s with trailing spaces to exactly Cols display columns,
// truncating first if it is too wide.
func PadRow(s string) string {
	s = TruncateRow(s, Cols)
	if pad := Cols - DisplayWidth(s); pad > 0 {
		return s + strings.Repeat(" ", pad)
	}
	return s
}

// TruncateRow clips s to at most width display columns, keeping color
// tags intact and never splitting a wide glyph in half.
func TruncateRow(s string, width int) string {
	if DisplayWidth(s) <= width {
		return s
	}
	var b strings.Builder
	used := 0
	skip := false
	for _, r := range s {
		if skip {
			skip = false
			b.WriteRune(r)
			continue
		}
		if r == '\x1b' {
			skip = true
			b.WriteRune(r)
			continue
		}
		w := runewidth.RuneWidth(r)
		if used+w > width {
			break
		}
		used += w
		b.WriteRune(r)
	}
	return b.String()
}

// CenterRow centers s within Cols display columns.
func CenterRow(s string) string {
	s = TruncateRow(s, Cols)
	gap := Cols - DisplayWidth(s)
	if gap <= 0 {
		return s
	}
	left := gap / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", gap-left)
}

// BlankRow is a full row of spaces.
func BlankRow() string {
	return strings.Repeat(" ", Cols)
}
