package page

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDisplayWidth(t *testing.T) {
	require.Equal(t, 5, DisplayWidth("hello"))
	require.Equal(t, 4, DisplayWidth("日本"), "wide glyphs count double")
	require.Equal(t, 5, DisplayWidth(TagRed+"hello"), "color tags are zero width")
	require.Equal(t, 0, DisplayWidth(TagGreen))
}

func TestPadRowExactWidth(t *testing.T) {
	padded := PadRow("news")
	require.Equal(t, Cols, DisplayWidth(padded))
	require.Equal(t, "news", strings.TrimRight(padded, " "))
}

func TestPadRowWideGlyphs(t *testing.T) {
	padded := PadRow("天気 forecast")
	require.Equal(t, Cols, DisplayWidth(padded))
}

func TestPadRowWithTags(t *testing.T) {
	padded := PadRow(TagYellow + "headline")
	require.Equal(t, Cols, DisplayWidth(padded))
	require.True(t, strings.HasPrefix(padded, TagYellow))
}

func TestTruncateRowKeepsWideGlyphWhole(t *testing.T) {
	// Each glyph is 2 columns; truncating at an odd width must not
	// split a glyph.
	s := strings.Repeat("語", 30)
	got := TruncateRow(s, 5)
	require.Equal(t, 4, DisplayWidth(got))
}

func TestCenterRow(t *testing.T) {
	row := CenterRow("hi")
	require.Equal(t, Cols, DisplayWidth(row))
	require.Equal(t, "hi", strings.TrimSpace(row))
	require.Equal(t, 19, strings.Index(row, "hi"))
}

func TestBuilderInvariant(t *testing.T) {
	p := NewBuilder("201", "NEWS").
		Row("first headline").
		Blank().
		Centered("more on 202").
		Link("NEXT", "202", Green).
		Build()

	require.Equal(t, "201", p.ID)
	require.Len(t, p.Rows, Rows)
	for i, row := range p.Rows {
		require.Equalf(t, Cols, DisplayWidth(row), "row %d has wrong width", i)
	}
	require.Len(t, p.Links, 1)
	require.Equal(t, "202", p.Links[0].TargetPage)
}

func TestBuilderDropsOverflowRows(t *testing.T) {
	b := NewBareBuilder("100", "INDEX")
	for i := 0; i < 40; i++ {
		b.Row("row")
	}
	require.Len(t, b.Build().Rows, Rows)
}
