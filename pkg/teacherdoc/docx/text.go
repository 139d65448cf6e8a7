package docx

import (
	"strings"

	"github.com/zero750810/teacherdoc/pkg/teacherdoc/container"
	"github.com/zero750810/teacherdoc/pkg/teacherdoc/media"
	"github.com/zero750810/teacherdoc/pkg/teacherdoc/xml"
)

type paragraph struct {
	d *Document
	n *xml.Node
}

func (p paragraph) Text() string {
	return p.d.paragraphText(p.n)
}

func (p paragraph) SetText(s string) {
	p.d.setParagraphText(p.n, s)
}

func (p paragraph) AppendText(s string) {
	if s != "" {
		p.n.AppendChild(p.d.textRun(s))
	}
}

func (p paragraph) AppendImage(path string, width media.Length) error {
	run, err := p.d.imageRun(path, width)
	if err != nil {
		return err
	}
	p.n.AppendChild(run)
	return nil
}

type cell struct {
	d *Document
	n *xml.Node
}

func (c cell) paragraphs() []*xml.Node {
	return c.d.collect(c.n, "p", "tbl")
}

func (c cell) Text() string {
	ps := c.paragraphs()
	lines := make([]string, len(ps))
	for i, p := range ps {
		lines[i] = c.d.paragraphText(p)
	}
	return strings.Join(lines, "\n")
}

// SetText keeps the cell properties and the first paragraph; everything else
// in the cell is removed.
func (c cell) SetText(s string) {
	var first *xml.Node
	if ps := c.paragraphs(); len(ps) > 0 {
		first = ps[0]
	}
	w := c.d.w
	c.n.RetainChildren(func(x *xml.Node) bool {
		return x.Is(w, "tcPr")
	})
	if first == nil {
		first = xml.NewElement(w, "p")
	}
	c.n.AppendChild(first)
	c.d.setParagraphText(first, s)
}

func (c cell) AppendText(s string) {
	if s != "" {
		c.lastParagraph().AppendChild(c.d.textRun(s))
	}
}

func (c cell) AppendImage(path string, width media.Length) error {
	run, err := c.d.imageRun(path, width)
	if err != nil {
		return err
	}
	c.lastParagraph().AppendChild(run)
	return nil
}

func (c cell) lastParagraph() *xml.Node {
	if ps := c.paragraphs(); len(ps) > 0 {
		return ps[len(ps)-1]
	}
	p := xml.NewElement(c.d.w, "p")
	c.n.AppendChild(p)
	return p
}

var (
	_ container.Container = paragraph{}
	_ container.Container = cell{}
)

// paragraphText projects the runs of p to plain text.
func (d *Document) paragraphText(p *xml.Node) string {
	var sb strings.Builder
	for _, c := range p.Children {
		c.Walk(func(x *xml.Node) bool {
			if x.Type != xml.ElementNode {
				return false
			}
			if x.Name.Prefix != d.w {
				// Alternate content repeats its fallback; reading both would
				// duplicate text.
				return x.Name.Local != "AlternateContent"
			}
			switch x.Name.Local {
			case "t":
				sb.WriteString(x.Text())
				return false
			case "tab":
				sb.WriteByte('\t')
			case "br", "cr":
				sb.WriteByte('\n')
			case "pPr", "rPr", "drawing", "pict", "object", "del", "instrText":
				return false
			}
			return true
		})
	}
	return sb.String()
}

// setParagraphText replaces the content of p with one run, keeping only the
// paragraph properties.
func (d *Document) setParagraphText(p *xml.Node, s string) {
	p.RetainChildren(func(x *xml.Node) bool {
		return x.Is(d.w, "pPr")
	})
	if s != "" {
		p.AppendChild(d.textRun(s))
	}
}

// textRun builds a run for s, encoding tabs and line breaks as elements.
func (d *Document) textRun(s string) *xml.Node {
	r := xml.NewElement(d.w, "r")
	var seg strings.Builder
	flush := func() {
		if seg.Len() == 0 {
			return
		}
		t := xml.NewElement(d.w, "t", xml.NewAttr("xml", "space", "preserve"))
		t.AppendChild(xml.NewText(seg.String()))
		r.AppendChild(t)
		seg.Reset()
	}

	s = strings.ReplaceAll(s, "\r\n", "\n")
	for _, ch := range s {
		switch ch {
		case '\n', '\r':
			flush()
			r.AppendChild(xml.NewElement(d.w, "br"))
		case '\t':
			flush()
			r.AppendChild(xml.NewElement(d.w, "tab"))
		default:
			seg.WriteRune(ch)
		}
	}
	flush()
	return r
}
