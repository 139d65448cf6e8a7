package odt

import (
	"strconv"
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
	p.n.Clear()
	p.d.appendText(p.n, s)
}

func (p paragraph) AppendText(s string) {
	p.d.appendText(p.n, s)
}

func (p paragraph) AppendImage(path string, width media.Length) error {
	frame, err := p.d.imageFrame(path, width)
	if err != nil {
		return err
	}
	p.n.AppendChild(frame)
	return nil
}

type cell struct {
	d *Document
	n *xml.Node
}

func (c cell) paragraphs() []*xml.Node {
	var out []*xml.Node
	for _, ch := range c.n.Children {
		ch.Walk(func(x *xml.Node) bool {
			switch {
			case x.Type != xml.ElementNode:
				return false
			case x.Is(c.d.txt, "p"), x.Is(c.d.txt, "h"):
				out = append(out, x)
				return false
			case x.Is(c.d.tbl, "table"):
				return false
			}
			return true
		})
	}
	return out
}

func (c cell) Text() string {
	ps := c.paragraphs()
	lines := make([]string, len(ps))
	for i, p := range ps {
		lines[i] = c.d.paragraphText(p)
	}
	return strings.Join(lines, "\n")
}

// SetText keeps the first paragraph and its style. Typed cell values are
// dropped so readers show the new text.
func (c cell) SetText(s string) {
	var first *xml.Node
	if ps := c.paragraphs(); len(ps) > 0 {
		first = ps[0]
	}
	c.n.Clear()
	c.d.clearValue(c.n)
	if first == nil {
		first = xml.NewElement(c.d.txt, "p")
	}
	first.Clear()
	c.n.AppendChild(first)
	c.d.appendText(first, s)
}

func (c cell) AppendText(s string) {
	c.d.appendText(c.lastParagraph(), s)
}

func (c cell) AppendImage(path string, width media.Length) error {
	frame, err := c.d.imageFrame(path, width)
	if err != nil {
		return err
	}
	c.lastParagraph().AppendChild(frame)
	return nil
}

func (c cell) lastParagraph() *xml.Node {
	if ps := c.paragraphs(); len(ps) > 0 {
		return ps[len(ps)-1]
	}
	p := xml.NewElement(c.d.txt, "p")
	c.n.AppendChild(p)
	return p
}

var (
	_ container.Container = paragraph{}
	_ container.Container = cell{}
)

func (d *Document) clearValue(n *xml.Node) {
	kept := n.Attrs[:0]
	for _, a := range n.Attrs {
		if a.Name.Prefix == d.office || a.Name.Prefix == "calcext" {
			switch a.Name.Local {
			case "value", "value-type", "date-value", "time-value", "boolean-value", "string-value", "currency":
				continue
			}
		}
		kept = append(kept, a)
	}
	n.Attrs = kept
}

// paragraphText projects the spans of p to plain text. Frames, notes and
// annotations are skipped.
func (d *Document) paragraphText(p *xml.Node) string {
	var sb strings.Builder
	var walk func(n *xml.Node)
	walk = func(n *xml.Node) {
		for _, c := range n.Children {
			switch {
			case c.Type == xml.CharDataNode:
				sb.WriteString(c.Data)
			case c.Type != xml.ElementNode || c.Name.Prefix != d.txt:
			case c.Name.Local == "s":
				sb.WriteString(strings.Repeat(" ", spaceCount(c, d.txt)))
			case c.Name.Local == "tab":
				sb.WriteByte('\t')
			case c.Name.Local == "line-break":
				sb.WriteByte('\n')
			case c.Name.Local == "note":
			default:
				walk(c)
			}
		}
	}
	walk(p)
	return sb.String()
}

func spaceCount(s *xml.Node, txt string) int {
	if v, ok := s.Attr(txt, "c"); ok {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return 1
}

// appendText appends s to p using text:s, text:tab and text:line-break for
// characters that plain character data cannot keep.
func (d *Document) appendText(p *xml.Node, s string) {
	var seg strings.Builder
	flush := func() {
		if seg.Len() > 0 {
			p.AppendChild(xml.NewText(seg.String()))
			seg.Reset()
		}
	}
	spaces := func(n int) {
		if n <= 0 {
			return
		}
		flush()
		el := xml.NewElement(d.txt, "s")
		if n > 1 {
			el.SetAttr(d.txt, "c", strconv.Itoa(n))
		}
		p.AppendChild(el)
	}

	rs := []rune(strings.ReplaceAll(s, "\r\n", "\n"))
	for i := 0; i < len(rs); i++ {
		switch rs[i] {
		case '\n', '\r':
			flush()
			p.AppendChild(xml.NewElement(d.txt, "line-break"))
		case '\t':
			flush()
			p.AppendChild(xml.NewElement(d.txt, "tab"))
		case ' ':
			j := i
			for j < len(rs) && rs[j] == ' ' {
				j++
			}
			n := j - i
			// A single space between words is kept as character data; any
			// other run of spaces would be collapsed by readers.
			if seg.Len() > 0 && j < len(rs) {
				seg.WriteByte(' ')
				n--
			}
			spaces(n)
			i = j - 1
		default:
			seg.WriteRune(rs[i])
		}
	}
	flush()
}
