// Package docx implements the container model over OOXML word-processing
// packages.
package docx

import (
	"fmt"
	"io"
	"strconv"

	"github.com/zero750810/teacherdoc/pkg/teacherdoc/container"
	"github.com/zero750810/teacherdoc/pkg/teacherdoc/xml"
)

const (
	nsW   = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	nsR   = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
	nsWP  = "http://schemas.openxmlformats.org/drawingml/2006/wordprocessingDrawing"
	nsA   = "http://schemas.openxmlformats.org/drawingml/2006/main"
	nsPic = "http://schemas.openxmlformats.org/drawingml/2006/picture"

	nsRelationships = "http://schemas.openxmlformats.org/package/2006/relationships"
	nsContentTypes  = "http://schemas.openxmlformats.org/package/2006/content-types"
	relTypeImage    = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/image"

	partDocument     = "word/document.xml"
	partDocumentRels = "word/_rels/document.xml.rels"
	partContentTypes = "[Content_Types].xml"
	mediaDir         = "word/media"

	xmlHeader = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>`
)

// Document is a DOCX package opened for editing. The main document part,
// its relationships and the content types are held as node trees; every
// other part is carried through unchanged.
type Document struct {
	pkg   *container.Package
	doc   *xml.Node
	body  *xml.Node
	rels  *xml.Node
	types *xml.Node

	// w is the prefix bound to the WordprocessingML namespace.
	w string

	relsDirty  bool
	typesDirty bool
	nextDocPr  int
}

var _ container.Document = (*Document)(nil)

// Open parses a DOCX package.
func Open(data []byte) (*Document, error) {
	pkg, err := container.ReadPackage(data)
	if err != nil {
		return nil, err
	}

	raw, ok := pkg.Part(partDocument)
	if !ok {
		return nil, fmt.Errorf("not a valid DOCX file: missing %s", partDocument)
	}
	doc, err := xml.ParseBytes(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", partDocument, err)
	}
	root := doc.DocumentElement()
	w, ok := root.LookupPrefix(nsW)
	if !ok {
		return nil, fmt.Errorf("not a valid DOCX file: %s does not declare the main namespace", partDocument)
	}
	body := root.Child(w, "body")
	if body == nil {
		return nil, fmt.Errorf("not a valid DOCX file: missing document body")
	}

	rawTypes, ok := pkg.Part(partContentTypes)
	if !ok {
		return nil, fmt.Errorf("not a valid DOCX file: missing %s", partContentTypes)
	}
	types, err := xml.ParseBytes(rawTypes)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", partContentTypes, err)
	}

	d := &Document{
		pkg:   pkg,
		doc:   doc,
		body:  body,
		types: types,
		w:     w,
	}

	if rawRels, ok := pkg.Part(partDocumentRels); ok {
		d.rels, err = xml.ParseBytes(rawRels)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", partDocumentRels, err)
		}
	} else {
		d.rels, _ = xml.ParseBytes([]byte(xmlHeader + "\n" + `<Relationships xmlns="` + nsRelationships + `"/>`))
		d.relsDirty = true
	}

	d.nextDocPr = maxDocPrID(doc) + 1
	return d, nil
}

// Format implements container.Document.
func (d *Document) Format() container.Format {
	return container.DOCX
}

// Paragraphs returns the body paragraphs outside tables.
func (d *Document) Paragraphs() []container.Container {
	var out []container.Container
	for _, p := range d.collect(d.body, "p", "tbl") {
		out = append(out, paragraph{d: d, n: p})
	}
	return out
}

// Tables returns the body tables. Tables nested in cells are not included.
func (d *Document) Tables() []container.Table {
	var out []container.Table
	for _, t := range d.collect(d.body, "tbl", "p") {
		out = append(out, table{d: d, n: t})
	}
	return out
}

// Save writes the package with the edited parts.
func (d *Document) Save(w io.Writer) error {
	d.pkg.SetPart(partDocument, xml.Marshal(d.doc))
	if d.relsDirty {
		d.pkg.SetPart(partDocumentRels, xml.Marshal(d.rels))
	}
	if d.typesDirty {
		d.pkg.SetPart(partContentTypes, xml.Marshal(d.types))
	}
	return d.pkg.Write(w)
}

// collect returns the w:<local> elements below n in document order. Matches
// are not searched further and w:<skip> subtrees are not entered.
func (d *Document) collect(n *xml.Node, local string, skip ...string) []*xml.Node {
	var out []*xml.Node
	for _, c := range n.Children {
		c.Walk(func(x *xml.Node) bool {
			if x.Type != xml.ElementNode {
				return false
			}
			if x.Is(d.w, local) {
				out = append(out, x)
				return false
			}
			for _, s := range skip {
				if x.Is(d.w, s) {
					return false
				}
			}
			return true
		})
	}
	return out
}

// ns returns the prefix bound to uri on the document element, declaring it
// with preferred (or a numbered variant) when it is missing.
func (d *Document) ns(uri, preferred string) string {
	root := d.doc.DocumentElement()
	if p, ok := root.LookupPrefix(uri); ok {
		return p
	}
	prefix := preferred
	for i := 1; ; i++ {
		if _, taken := root.Attr("xmlns", prefix); !taken {
			break
		}
		prefix = preferred + strconv.Itoa(i)
	}
	root.EnsureNamespace(prefix, uri)
	return prefix
}

func maxDocPrID(doc *xml.Node) int {
	maxID := 0
	doc.Walk(func(x *xml.Node) bool {
		if x.Type == xml.ElementNode && x.Name.Local == "docPr" {
			if v, ok := x.Attr("", "id"); ok {
				if id, err := strconv.Atoi(v); err == nil && id > maxID {
					maxID = id
				}
			}
		}
		return true
	})
	return maxID
}
