package xml

import (
	"bytes"
	"io"
	"strings"
)

var textEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	"\r", "&#xD;",
)

var attrEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"\t", "&#x9;",
	"\n", "&#xA;",
	"\r", "&#xD;",
)

// Marshal serialises n and its descendants.
func Marshal(n *Node) []byte {
	var buf bytes.Buffer
	writeNode(&buf, n)
	return buf.Bytes()
}

// WriteTo writes the serialised form of n to w.
func (n *Node) WriteTo(w io.Writer) (int64, error) {
	written, err := w.Write(Marshal(n))
	return int64(written), err
}

func writeNode(buf *bytes.Buffer, n *Node) {
	switch n.Type {
	case DocumentNode:
		for _, c := range n.Children {
			writeNode(buf, c)
		}
	case ElementNode:
		buf.WriteByte('<')
		buf.WriteString(n.Name.String())
		for _, a := range n.Attrs {
			buf.WriteByte(' ')
			buf.WriteString(a.Name.String())
			buf.WriteString(`="`)
			buf.WriteString(attrEscaper.Replace(stripInvalid(a.Value)))
			buf.WriteByte('"')
		}
		if len(n.Children) == 0 {
			buf.WriteString("/>")
			return
		}
		buf.WriteByte('>')
		for _, c := range n.Children {
			writeNode(buf, c)
		}
		buf.WriteString("</")
		buf.WriteString(n.Name.String())
		buf.WriteByte('>')
	case CharDataNode:
		buf.WriteString(textEscaper.Replace(stripInvalid(n.Data)))
	case CommentNode:
		buf.WriteString("<!--")
		buf.WriteString(n.Data)
		buf.WriteString("-->")
	case ProcInstNode:
		buf.WriteString("<?")
		buf.WriteString(n.Target)
		if n.Data != "" {
			buf.WriteByte(' ')
			buf.WriteString(n.Data)
		}
		buf.WriteString("?>")
	case DirectiveNode:
		buf.WriteString("<!")
		buf.WriteString(n.Data)
		buf.WriteByte('>')
	}
}

// stripInvalid drops characters XML 1.0 cannot represent. Spreadsheet cells
// occasionally carry vertical tabs or other control characters that would
// make the whole part unreadable.
func stripInvalid(s string) string {
	clean := true
	for _, r := range s {
		if !isXMLChar(r) {
			clean = false
			break
		}
	}
	if clean {
		return s
	}
	return strings.Map(func(r rune) rune {
		if isXMLChar(r) {
			return r
		}
		return -1
	}, s)
}

func isXMLChar(r rune) bool {
	switch {
	case r == 0x09 || r == 0x0A || r == 0x0D:
		return true
	case r >= 0x20 && r <= 0xD7FF:
		return true
	case r >= 0xE000 && r <= 0xFFFD:
		return true
	case r >= 0x10000 && r <= 0x10FFFF:
		return true
	}
	return false
}
