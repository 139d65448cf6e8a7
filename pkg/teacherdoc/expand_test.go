package teacherdoc

import (
	"path/filepath"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zero750810/teacherdoc/internal/fixture"
	"github.com/zero750810/teacherdoc/pkg/teacherdoc/odt"
)

func TestExpand_ContentGrowth(t *testing.T) {
	body := fixture.Table(
		[]string{"week", "topic"},
		[]string{"", ""},
		[]string{"x", "@content"},
		[]string{"y", ""},
	)
	doc, warnings := fillDocx(t, body, Record{"content": "A\nB\r\n  C  \n\n"})
	assert.Empty(t, warnings)

	got := tableTexts(doc.Tables()[0])
	require.Len(t, got, 5, spew.Sdump(got))
	assert.Equal(t, "A", got[2][1])
	assert.Equal(t, "B", got[3][1])
	assert.Equal(t, "C", got[4][1])
	assert.Equal(t, "x", got[2][0], "cells left of the anchor are untouched")
	assert.Equal(t, "y", got[3][0])
	assert.Equal(t, "", got[4][0])
}

func TestExpand_TopicKeepsInteriorBlankLines(t *testing.T) {
	body := fixture.Table([]string{"@course_topic"}, []string{""}, []string{""})
	doc, _ := fillDocx(t, body, Record{"course_topic": "intro\n\nclay"})
	assert.Equal(t, [][]string{{"intro"}, {""}, {"clay"}}, tableTexts(doc.Tables()[0]))
}

func TestExpand_AnchorTextWithoutData(t *testing.T) {
	body := fixture.Table([]string{"Content: @content @name"})
	doc, _ := fillDocx(t, body, Record{"name": "Amy"})
	assert.Equal(t, [][]string{{"Content:  @name"}}, tableTexts(doc.Tables()[0]),
		"anchor cells are left to their expander")
}

func TestExpand_PriceListOrder(t *testing.T) {
	body := fixture.Table(
		[]string{"品名", "@price_list_table"},
		[]string{"單位", ""},
		[]string{"數量", ""},
	)
	rec := Record{
		"price_list_name":     "Clay",
		"price_list_unit":     "",
		"price_list_quantity": float64(10),
		"price_list_price":    "50",
		"price_list_usage":    "class use",
	}
	doc, _ := fillDocx(t, body, rec)

	got := tableTexts(doc.Tables()[0])
	require.Len(t, got, 6, spew.Sdump(got))
	var column []string
	for _, row := range got {
		column = append(column, row[1])
	}
	assert.Equal(t, []string{"Clay", "", "10", "50", "", "class use"}, column)
	assert.Equal(t, "數量", got[2][0])
}

func TestExpand_PhotoGrid(t *testing.T) {
	dir := t.TempDir()
	x1 := writeImage(t, dir, "X_1.jpg")
	x3 := writeImage(t, dir, "X_3.jpg")

	rows := make([][]string, 8)
	for i := range rows {
		rows[i] = []string{"old"}
	}
	rows[5] = []string{"@weekly_photos"}
	doc, warnings := fillDocx(t, fixture.Table(rows...), Record{"photos": []any{x1, x3}})
	assert.Empty(t, warnings)

	assert.Equal(t, []bool{false, false, false, false, false, true, false, true}, drawingRows(t, doc))
	got := tableTexts(doc.Tables()[0])
	assert.Equal(t, "old", got[4][0])
	assert.Equal(t, "", got[5][0])
	assert.Equal(t, "", got[6][0], "weeks without a photo are cleared")
	assert.Equal(t, "", got[7][0])
}

func TestExpand_PhotoGridWarnings(t *testing.T) {
	dir := t.TempDir()
	photos := []any{
		writeImage(t, dir, "garden_1.png"),
		writeImage(t, dir, "garden.png"),
		writeImage(t, dir, "pond_1.png"),
		writeImage(t, dir, "late_9.png"),
		filepath.Join(dir, "absent_2"),
		writeImage(t, dir, "zero_0.png"),
	}
	body := fixture.Table([]string{"@weekly_photos"}, []string{""}, []string{""})
	doc, warnings := fillDocx(t, body, Record{"photos": photos})

	var kinds []WarningKind
	for _, w := range warnings {
		kinds = append(kinds, w.Kind)
	}
	assert.Equal(t, []WarningKind{
		MalformedPhotoFilename,
		DuplicateWeek,
		WeekOutOfRange,
		MalformedPhotoFilename,
		UnresolvedImage,
	}, kinds, spew.Sdump(warnings))
	assert.Equal(t, []bool{true, false, false}, drawingRows(t, doc))
}

func TestExpand_SeveralHandlersOneTable(t *testing.T) {
	body := fixture.Table(
		[]string{"@content", "@course_topic"},
		[]string{"", ""},
	)
	doc, _ := fillDocx(t, body, Record{"content": "a\nb\nc", "course_topic": "t1"})
	assert.Equal(t, [][]string{{"a", "t1"}, {"b", ""}, {"c", ""}}, tableTexts(doc.Tables()[0]))
}

func TestExpand_ShortRows(t *testing.T) {
	body := `<w:tbl><w:tr><w:tc>` + fixture.Para("label") + `</w:tc><w:tc>` + fixture.Para("@content") + `</w:tc></w:tr>` +
		`<w:tr><w:tc>` + fixture.Para("merged") + `</w:tc></w:tr></w:tbl>`
	doc, warnings := fillDocx(t, body, Record{"content": "one\ntwo\nthree"})
	assert.Empty(t, warnings)
	got := tableTexts(doc.Tables()[0])
	require.Len(t, got, 3)
	assert.Equal(t, []string{"label", "one"}, got[0])
	assert.Equal(t, []string{"merged"}, got[1], "a row without the anchor column is skipped")
	assert.Equal(t, []string{""}, got[2])
}

func TestExpand_ODT(t *testing.T) {
	doc, err := odt.Open(fixture.ODT(fixture.ODTPara("Hi @name") + fixture.ODTTable(
		[]string{"lesson", "@content"},
		[]string{"", ""},
	)))
	require.NoError(t, err)
	e, _ := newTestEngine(t)

	warnings := e.Fill(doc, Record{"name": "Amy", "content": "one\ntwo\nthree"})
	assert.Empty(t, warnings)
	assert.Equal(t, []string{"Hi Amy"}, paragraphTexts(doc))
	assert.Equal(t, [][]string{{"lesson", "one"}, {"", "two"}, {"", "three"}}, tableTexts(doc.Tables()[0]))
}

func TestExpand_AnchorNotFound(t *testing.T) {
	_, warnings := fillDocx(t, fixture.Para("no tables"), Record{"content": "x", "photos": []any{}})
	require.Len(t, warnings, 1)
	assert.Equal(t, AnchorNotFound, warnings[0].Kind)
	assert.Equal(t, ContentMarker, warnings[0].Marker)

	_, warnings = fillDocx(t, fixture.Para("@content"), Record{"content": "x"})
	assert.Empty(t, warnings, "content placed as plain text")
}

func TestSplitLines(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"  \n \r\n", nil},
		{"a", []string{"a"}},
		{" a \r b\r\nc \n", []string{"a", "b", "c"}},
		{"\na\n\nb", []string{"", "a", "", "b"}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, splitLines(tt.in), "%q", tt.in)
	}
}

func TestParseWeek(t *testing.T) {
	tests := []struct {
		path string
		week int
		ok   bool
	}{
		{"X_1.jpg", 1, true},
		{"images/courses/clay_class_12.png", 12, true},
		{"noext_3", 3, true},
		{"garden.png", 0, false},
		{"week_x.png", 0, false},
		{"week_0.png", 0, false},
		{"week_-2.png", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			week, ok := parseWeek(tt.path)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.week, week)
		})
	}
}
