// Package paginate folds arbitrarily long text into a sequence of
// fixed-grid pages with forward and back navigation.
package paginate

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"

	"github.com/oguzkopan/teletext-sub000/internal/model/page"
	"github.com/oguzkopan/teletext-sub000/internal/route"
)

// Layout describes the reserved rows around the content area.
type Layout struct {
	Title      string
	HeaderRows int
	FooterRows int
	Width      int // defaults to the 40-column grid
}

// Paginate word-wraps text and partitions it into consecutive pages
// starting at startID, advancing the ID's last segment per page. The
// result always holds at least one page, even for empty text.
func Paginate(text string, startID route.PageID, layout Layout) []page.GridPage {
	width := layout.Width
	if width <= 0 || width > page.Cols {
		width = page.Cols
	}
	lines := Wrap(text, width)

	contentRows := page.Rows - layout.HeaderRows - layout.FooterRows
	if contentRows < 1 {
		contentRows = 1
	}

	total := (len(lines) + contentRows - 1) / contentRows
	if total < 1 {
		total = 1
	}

	pages := make([]page.GridPage, 0, total)
	for i := 0; i < total; i++ {
		chunk := lines[i*contentRows:]
		if len(chunk) > contentRows {
			chunk = chunk[:contentRows]
		}
		pages = append(pages, buildPage(startID, i, total, chunk, contentRows, layout))
	}
	return pages
}

func buildPage(startID route.PageID, index, total int, chunk []string, contentRows int, layout Layout) page.GridPage {
	id := startID.Advance(index)
	b := page.NewBareBuilder(id.String(), layout.Title)

	renderHeader(b, id.String(), index, total, layout)
	b.Rows(chunk)
	for i := len(chunk); i < contentRows; i++ {
		b.Blank()
	}
	renderFooter(b, startID, index, total, layout)

	if total > 1 {
		cont := page.Continuation{
			CurrentPage:  id.String(),
			TotalPages:   total,
			CurrentIndex: index,
		}
		if index < total-1 {
			cont.NextPage = startID.Advance(index + 1).String()
		}
		if index > 0 {
			cont.PreviousPage = startID.Advance(index - 1).String()
		}
		b.Meta("continuation", cont)
	}
	return b.Build()
}

func renderHeader(b *page.Builder, id string, index, total int, layout Layout) {
	if layout.HeaderRows < 1 {
		return
	}
	title := layout.Title
	if total > 1 {
		title = fmt.Sprintf("%s %d/%d", strings.TrimRight(title, " "), index+1, total)
	}
	title = page.TruncateRow(title, page.Cols-len(id)-1)
	gap := page.Cols - page.DisplayWidth(title) - len(id)
	b.Row(page.TagYellow + title + strings.Repeat(" ", gap) + page.TagWhite + id)
	for i := 1; i < layout.HeaderRows; i++ {
		b.Blank()
	}
}

func renderFooter(b *page.Builder, startID route.PageID, index, total int, layout Layout) {
	if layout.FooterRows < 1 {
		return
	}
	for i := 1; i < layout.FooterRows; i++ {
		b.Blank()
	}
	if index < total-1 {
		next := startID.Advance(index + 1).String()
		b.Row(page.TagGreen + "NEXT: " + next)
		b.Link("NEXT", next, page.Green)
	} else {
		b.Centered(page.TagBlue + "* THE END *")
	}
	if index > 0 {
		b.Link("BACK", startID.Advance(index-1).String(), page.Red)
	}
}

// Wrap word-wraps text to the given display width. Words are never split
// unless a single word exceeds the width, in which case it is hard-broken
// at the width boundary. Explicit newlines are kept as paragraph breaks.
func Wrap(text string, width int) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	var lines []string
	for _, paragraph := range strings.Split(strings.TrimRight(text, "\n"), "\n") {
		lines = append(lines, wrapParagraph(paragraph, width)...)
	}
	return lines
}

func wrapParagraph(paragraph string, width int) []string {
	words := strings.Fields(paragraph)
	if len(words) == 0 {
		return []string{""}
	}

	var lines []string
	var current string
	flush := func() {
		if current != "" {
			lines = append(lines, current)
			current = ""
		}
	}

	for _, word := range words {
		for page.DisplayWidth(word) > width {
			room := width - page.DisplayWidth(current)
			if current != "" {
				room-- // joining space
			}
			if room < 1 {
				flush()
				continue
			}
			head, tail := splitAt(word, room)
			if head == "" {
				if current != "" {
					// Glyph wider than the remaining room; retry on a
					// fresh row.
					flush()
					continue
				}
				// Glyph wider than the whole row; emit it regardless.
				_, size := utf8.DecodeRuneInString(word)
				head, tail = word[:size], word[size:]
			}
			if current == "" {
				current = head
			} else {
				current += " " + head
			}
			flush()
			word = tail
		}
		switch {
		case current == "":
			current = word
		case page.DisplayWidth(current)+1+page.DisplayWidth(word) <= width:
			current += " " + word
		default:
			flush()
			current = word
		}
	}
	flush()
	return lines
}

// splitAt breaks s after at most width display columns, never splitting a
// wide glyph. The head is empty when even the first glyph does not fit.
func splitAt(s string, width int) (head, tail string) {
	used := 0
	skipTag := false
	for i, r := range s {
		w := runewidth.RuneWidth(r)
		if skipTag {
			w = 0
			skipTag = false
		} else if r == '\x1b' {
			w = 0
			skipTag = true
		}
		if used+w > width {
			return s[:i], s[i:]
		}
		used += w
	}
	return s, ""
}
