package page

// Builder assembles a GridPage row by row, padding every row to the
// 40-column grid and blank-filling up to 24 rows on Build.
type Builder struct {
	id    string
	title string
	rows  []string
	links []Link
	meta  map[string]any
}

// NewBuilder starts a page with the standard header: a title bar with the
// page ID right-aligned, followed by a blank separator row.
func NewBuilder(id, title string) *Builder {
	b := &Builder{id: id, title: title}
	b.rows = append(b.rows, headerRow(title, id), BlankRow())
	return b
}

// NewBareBuilder starts a page with no header rows.
func NewBareBuilder(id, title string) *Builder {
	return &Builder{id: id, title: title}
}

func headerRow(title, id string) string {
	left := TagYellow + title
	gap := Cols - DisplayWidth(left) - len(id)
	if gap < 1 {
		left = TruncateRow(left, Cols-len(id)-1)
		gap = Cols - DisplayWidth(left) - len(id)
	}
	row := left
	for i := 0; i < gap; i++ {
		row += " "
	}
	return row + TagWhite + id
}

// Row appends one content row.
func (b *Builder) Row(s string) *Builder {
	b.rows = append(b.rows, PadRow(s))
	return b
}

// Rows appends several content rows.
func (b *Builder) Rows(lines []string) *Builder {
	for _, l := range lines {
		b.Row(l)
	}
	return b
}

// Centered appends a centered content row.
func (b *Builder) Centered(s string) *Builder {
	b.rows = append(b.rows, CenterRow(s))
	return b
}

// Blank appends an empty row.
func (b *Builder) Blank() *Builder {
	b.rows = append(b.rows, BlankRow())
	return b
}

// Link registers a navigation link.
func (b *Builder) Link(label, target string, color LinkColor) *Builder {
	b.links = append(b.links, Link{Label: label, TargetPage: target, Color: color})
	return b
}

// Meta attaches a metadata entry.
func (b *Builder) Meta(key string, value any) *Builder {
	if b.meta == nil {
		b.meta = make(map[string]any)
	}
	b.meta[key] = value
	return b
}

// Build finalizes the page. Rows beyond the grid are dropped; missing
// rows are blank-filled so the 24-row invariant always holds.
func (b *Builder) Build() GridPage {
	rows := b.rows
	if len(rows) > Rows {
		rows = rows[:Rows]
	}
	for len(rows) < Rows {
		rows = append(rows, BlankRow())
	}
	return GridPage{
		ID:    b.id,
		Title: b.title,
		Rows:  rows,
		Links: b.links,
		Meta:  b.meta,
	}
}
