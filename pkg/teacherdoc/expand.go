package teacherdoc

import (
	"path/filepath"
	"strconv"
	"strings"

	"github.com/zero750810/teacherdoc/pkg/teacherdoc/container"
)

// priceListKeys is the fixed row order of the price list.
var priceListKeys = []string{
	"price_list_name",
	"price_list_unit",
	"price_list_quantity",
	"price_list_price",
	"price_list_amount",
	"price_list_usage",
}

type anchor struct {
	row, col int
}

// expander grows a table from the cell holding its marker.
type expander struct {
	marker string
	// hasData reports whether the record carries anything to place.
	hasData func(rec Record) bool
	fill    func(g *generation, t container.Table, a anchor)
}

var expanders = []expander{
	{
		marker:  ContentMarker,
		hasData: func(rec Record) bool { return len(splitLines(rec.Text("content"))) > 0 },
		fill:    fillLines("content"),
	},
	{
		marker:  TopicMarker,
		hasData: func(rec Record) bool { return len(splitLines(rec.Text("course_topic"))) > 0 },
		fill:    fillLines("course_topic"),
	},
	{
		marker: PriceListMarker,
		hasData: func(rec Record) bool {
			for _, k := range priceListKeys {
				if rec.Text(k) != "" {
					return true
				}
			}
			return false
		},
		fill: fillPriceList,
	},
	{
		marker:  PhotoGridMarker,
		hasData: func(rec Record) bool { return len(Resolve(rec, "photos").Paths) > 0 },
		fill:    fillPhotoGrid,
	},
}

// expand runs every expander over t. The anchor cell and every cell an
// expander writes are claimed and skipped by generic substitution. It
// returns the markers that were anchored.
func (g *generation) expand(t container.Table) []string {
	var anchored []string
	for _, x := range expanders {
		a, c, ok := g.findAnchor(t, x.marker)
		if !ok {
			continue
		}
		g.log.Debug("found %s at row %d, column %d", x.marker, a.row, a.col)
		c.SetText(strings.ReplaceAll(c.Text(), x.marker, ""))
		g.claimed[c] = true
		x.fill(g, t, a)
		anchored = append(anchored, x.marker)
	}
	return anchored
}

// findAnchor returns the first unclaimed cell containing marker, scanning
// rows top to bottom and cells left to right.
func (g *generation) findAnchor(t container.Table, marker string) (anchor, container.Container, bool) {
	for r, row := range t.Rows() {
		for c, cell := range row.Cells() {
			if g.claimed[cell] {
				continue
			}
			if strings.Contains(cell.Text(), marker) {
				return anchor{row: r, col: c}, cell, true
			}
		}
	}
	return anchor{}, nil, false
}

// cellAt returns the cell at (row, col), appending rows until row exists.
// It returns nil when that row has no such column.
func (g *generation) cellAt(t container.Table, row, col int) container.Container {
	rows := t.Rows()
	if n := len(rows); n <= row {
		for ; n <= row; n++ {
			t.AppendRow()
		}
		rows = t.Rows()
	}
	c := container.Cell(rows, row, col)
	if c == nil {
		g.log.Debug("row %d has no column %d", row, col)
		return nil
	}
	g.claimed[c] = true
	return c
}

func fillLines(key string) func(g *generation, t container.Table, a anchor) {
	return func(g *generation, t container.Table, a anchor) {
		for i, line := range splitLines(g.rec.Text(key)) {
			if c := g.cellAt(t, a.row+i, a.col); c != nil {
				c.SetText(line)
			}
		}
	}
}

func fillPriceList(g *generation, t container.Table, a anchor) {
	for i, key := range priceListKeys {
		if c := g.cellAt(t, a.row+i, a.col); c != nil {
			c.SetText(g.rec.Text(key))
		}
	}
}

// fillPhotoGrid places each photo in the row of its week, counting the
// anchor row as week 1. Every grid cell from the anchor row down is cleared.
func fillPhotoGrid(g *generation, t container.Table, a anchor) {
	rows := t.Rows()
	weeks := len(rows) - a.row

	byWeek := make(map[int]string)
	for _, p := range Resolve(g.rec, "photos").Paths {
		week, ok := parseWeek(p)
		switch {
		case !ok:
			g.warn(MalformedPhotoFilename, PhotoGridMarker, p)
		case week > weeks:
			g.warn(WeekOutOfRange, PhotoGridMarker, p)
		case byWeek[week] != "":
			g.warn(DuplicateWeek, PhotoGridMarker, p)
		default:
			byWeek[week] = p
		}
	}

	for week := 1; week <= weeks; week++ {
		c := container.Cell(rows, a.row+week-1, a.col)
		if c == nil {
			continue
		}
		g.claimed[c] = true
		c.SetText("")
		if p, ok := byWeek[week]; ok {
			g.embed(c, PhotoGridMarker, p)
		}
	}
}

// parseWeek reads the week index from a name such as "garden_3.jpg".
func parseWeek(path string) (int, bool) {
	name := filepath.Base(path)
	stem := strings.TrimSuffix(name, filepath.Ext(name))
	i := strings.LastIndexByte(stem, '_')
	if i < 0 {
		return 0, false
	}
	week, err := strconv.Atoi(stem[i+1:])
	if err != nil || week < 1 {
		return 0, false
	}
	return week, true
}

// splitLines splits s on any line break, trims each line and drops
// trailing empty lines.
func splitLines(s string) []string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	if strings.TrimSpace(s) == "" {
		return nil
	}
	lines := strings.Split(s, "\n")
	for i := range lines {
		lines[i] = strings.TrimSpace(lines[i])
	}
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
