package xml

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
)

// Parse reads an XML document into a tree rooted at a DocumentNode.
//
// Tokens are read with RawToken so prefixes stay as written; element nesting
// is checked here because RawToken does not.
func Parse(r io.Reader) (*Node, error) {
	d := xml.NewDecoder(r)
	root := &Node{Type: DocumentNode}
	cur := root

	for {
		tok, err := d.RawToken()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse xml: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			el := &Node{
				Type: ElementNode,
				Name: Name{Prefix: t.Name.Space, Local: t.Name.Local},
			}
			if len(t.Attr) > 0 {
				el.Attrs = make([]Attr, len(t.Attr))
				for i, a := range t.Attr {
					el.Attrs[i] = Attr{Name: Name{Prefix: a.Name.Space, Local: a.Name.Local}, Value: a.Value}
				}
			}
			cur.AppendChild(el)
			cur = el
		case xml.EndElement:
			name := Name{Prefix: t.Name.Space, Local: t.Name.Local}
			if cur == root || cur.Name != name {
				return nil, fmt.Errorf("failed to parse xml: unexpected end element </%s>", name)
			}
			cur = cur.Parent
		case xml.CharData:
			cur.AppendChild(&Node{Type: CharDataNode, Data: string(t)})
		case xml.Comment:
			cur.AppendChild(&Node{Type: CommentNode, Data: string(t)})
		case xml.ProcInst:
			cur.AppendChild(&Node{Type: ProcInstNode, Target: t.Target, Data: string(t.Inst)})
		case xml.Directive:
			cur.AppendChild(&Node{Type: DirectiveNode, Data: string(t)})
		}
	}

	if cur != root {
		return nil, fmt.Errorf("failed to parse xml: element <%s> is not closed", cur.Name)
	}
	if root.DocumentElement() == nil {
		return nil, fmt.Errorf("failed to parse xml: no root element")
	}
	return root, nil
}

// ParseBytes is Parse over a byte slice.
func ParseBytes(b []byte) (*Node, error) {
	return Parse(bytes.NewReader(b))
}

// ParseFragment parses a sequence of sibling nodes, typically a snippet of
// markup to splice into an existing tree. Prefixes need not be declared in
// the fragment. The returned nodes are detached.
func ParseFragment(s string) ([]*Node, error) {
	doc, err := Parse(bytes.NewReader([]byte("<fragment>" + s + "</fragment>")))
	if err != nil {
		return nil, err
	}
	wrapper := doc.DocumentElement()
	nodes := make([]*Node, len(wrapper.Children))
	copy(nodes, wrapper.Children)
	for _, n := range nodes {
		n.Parent = nil
	}
	wrapper.Children = nil
	return nodes, nil
}
