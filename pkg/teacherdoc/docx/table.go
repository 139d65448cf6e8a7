package docx

import (
	"github.com/zero750810/teacherdoc/pkg/teacherdoc/container"
	"github.com/zero750810/teacherdoc/pkg/teacherdoc/xml"
)

type table struct {
	d *Document
	n *xml.Node
}

func (t table) rows() []*xml.Node {
	return t.d.collect(t.n, "tr")
}

func (t table) Rows() []container.Row {
	rows := t.rows()
	out := make([]container.Row, len(rows))
	for i, r := range rows {
		out[i] = row{d: t.d, n: r}
	}
	return out
}

// AppendRow clones the last row. Row and cell properties are kept, vertical
// merges and header repetition are dropped, and each cell is left with one
// empty paragraph carrying the original paragraph properties.
func (t table) AppendRow() container.Row {
	w := t.d.w
	rows := t.rows()
	if len(rows) == 0 {
		tr := xml.NewElement(w, "tr")
		cols := 0
		if grid := t.n.Child(w, "tblGrid"); grid != nil {
			cols = len(grid.ChildrenNamed(w, "gridCol"))
		}
		for i := 0; i < max(cols, 1); i++ {
			tc := xml.NewElement(w, "tc")
			tc.AppendChild(xml.NewElement(w, "p"))
			tr.AppendChild(tc)
		}
		t.n.AppendChild(tr)
		return row{d: t.d, n: tr}
	}

	last := rows[len(rows)-1]
	tr := last.Clone()
	dropIDs(tr)
	if trPr := tr.Child(w, "trPr"); trPr != nil {
		trPr.RetainChildren(func(x *xml.Node) bool {
			return !x.Is(w, "tblHeader")
		})
	}
	for _, tc := range t.d.collect(tr, "tc") {
		var pPr *xml.Node
		if ps := t.d.collect(tc, "p", "tbl"); len(ps) > 0 {
			pPr = ps[0].Child(w, "pPr")
		}
		if tcPr := tc.Child(w, "tcPr"); tcPr != nil {
			tcPr.RetainChildren(func(x *xml.Node) bool {
				return !x.Is(w, "vMerge")
			})
		}
		tc.RetainChildren(func(x *xml.Node) bool {
			return x.Is(w, "tcPr")
		})
		p := xml.NewElement(w, "p")
		if pPr != nil {
			p.AppendChild(pPr)
		}
		tc.AppendChild(p)
	}
	last.Parent.InsertAfter(last, tr)
	return row{d: t.d, n: tr}
}

// dropIDs removes the paragraph and text ids Word stamps on rows, which must
// stay unique within the document.
func dropIDs(n *xml.Node) {
	kept := n.Attrs[:0]
	for _, a := range n.Attrs {
		if a.Name.Local == "paraId" || a.Name.Local == "textId" {
			continue
		}
		kept = append(kept, a)
	}
	n.Attrs = kept
}

type row struct {
	d *Document
	n *xml.Node
}

func (r row) Cells() []container.Container {
	tcs := r.d.collect(r.n, "tc")
	out := make([]container.Container, len(tcs))
	for i, tc := range tcs {
		out[i] = cell{d: r.d, n: tc}
	}
	return out
}
