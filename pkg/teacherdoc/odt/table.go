package odt

import (
	"strconv"

	"github.com/zero750810/teacherdoc/pkg/teacherdoc/container"
	"github.com/zero750810/teacherdoc/pkg/teacherdoc/xml"
)

type table struct {
	d *Document
	n *xml.Node
}

// rows returns the table rows, including header rows and row groups.
// Repeated rows are expanded into physical copies.
func (t table) rows() []*xml.Node {
	var out []*xml.Node
	for _, c := range t.n.Children {
		c.Walk(func(x *xml.Node) bool {
			switch {
			case x.Type != xml.ElementNode:
				return false
			case x.Is(t.d.tbl, "table-row"):
				out = append(out, t.d.expand(x, "number-rows-repeated")...)
				return false
			case x.Is(t.d.tbl, "table"):
				return false
			}
			return true
		})
	}
	return out
}

func (t table) Rows() []container.Row {
	rows := t.rows()
	out := make([]container.Row, len(rows))
	for i, r := range rows {
		out[i] = row{d: t.d, n: r}
	}
	return out
}

// AppendRow clones the last row. Cell styles and horizontal spans are kept;
// vertical spans, typed values and content are dropped, leaving each cell
// with one empty paragraph in the style of its first paragraph.
func (t table) AppendRow() container.Row {
	d := t.d
	rows := t.rows()
	if len(rows) == 0 {
		tr := xml.NewElement(d.tbl, "table-row")
		cols := 0
		for _, col := range t.n.ChildrenNamed(d.tbl, "table-column") {
			cols += repeatCount(col, d.tbl, "number-columns-repeated")
		}
		for i := 0; i < max(cols, 1); i++ {
			tc := xml.NewElement(d.tbl, "table-cell")
			tc.AppendChild(xml.NewElement(d.txt, "p"))
			tr.AppendChild(tc)
		}
		t.n.AppendChild(tr)
		return row{d: d, n: tr}
	}

	last := rows[len(rows)-1]
	tr := last.Clone()
	tr.RemoveAttr(d.tbl, "number-rows-repeated")
	for _, tc := range tr.Elements() {
		switch {
		case tc.Is(d.tbl, "table-cell"):
			var style *xml.Node
			if ps := (cell{d: d, n: tc}).paragraphs(); len(ps) > 0 {
				style = xml.NewElement(ps[0].Name.Prefix, ps[0].Name.Local, ps[0].Attrs...)
			}
			tc.RemoveAttr(d.tbl, "number-rows-spanned")
			d.clearValue(tc)
			tc.Clear()
			if style == nil {
				style = xml.NewElement(d.txt, "p")
			}
			tc.AppendChild(style)
		case tc.Is(d.tbl, "covered-table-cell"):
			tc.Clear()
		}
	}
	last.Parent.InsertAfter(last, tr)
	return row{d: d, n: tr}
}

type row struct {
	d *Document
	n *xml.Node
}

// Cells returns the physical cells, covered cells included, so that column
// indexes line up across rows.
func (r row) Cells() []container.Container {
	var out []container.Container
	for _, c := range r.n.Elements() {
		if !c.Is(r.d.tbl, "table-cell") && !c.Is(r.d.tbl, "covered-table-cell") {
			continue
		}
		for _, x := range r.d.expand(c, "number-columns-repeated") {
			out = append(out, cell{d: r.d, n: x})
		}
	}
	return out
}

// expand replaces an element carrying a small repeat count with that many
// copies and returns them. Large counts are left as a single element.
func (d *Document) expand(n *xml.Node, attr string) []*xml.Node {
	count := repeatCount(n, d.tbl, attr)
	if count <= 1 || count > maxRepeat {
		return []*xml.Node{n}
	}
	n.RemoveAttr(d.tbl, attr)
	out := []*xml.Node{n}
	prev := n
	for i := 1; i < count; i++ {
		cp := n.Clone()
		n.Parent.InsertAfter(prev, cp)
		out = append(out, cp)
		prev = cp
	}
	return out
}

func repeatCount(n *xml.Node, tbl, attr string) int {
	if v, ok := n.Attr(tbl, attr); ok {
		if c, err := strconv.Atoi(v); err == nil && c > 0 {
			return c
		}
	}
	return 1
}
