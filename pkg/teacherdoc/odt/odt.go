// Package odt implements the container model over OpenDocument text
// packages.
package odt

import (
	"fmt"
	"io"
	"strconv"

	"github.com/zero750810/teacherdoc/pkg/teacherdoc/container"
	"github.com/zero750810/teacherdoc/pkg/teacherdoc/xml"
)

const (
	nsOffice   = "urn:oasis:names:tc:opendocument:xmlns:office:1.0"
	nsText     = "urn:oasis:names:tc:opendocument:xmlns:text:1.0"
	nsTable    = "urn:oasis:names:tc:opendocument:xmlns:table:1.0"
	nsDraw     = "urn:oasis:names:tc:opendocument:xmlns:drawing:1.0"
	nsSVG      = "urn:oasis:names:tc:opendocument:xmlns:svg-compatible:1.0"
	nsXLink    = "http://www.w3.org/1999/xlink"
	nsManifest = "urn:oasis:names:tc:opendocument:xmlns:manifest:1.0"

	partContent  = "content.xml"
	partManifest = "META-INF/manifest.xml"
	picturesDir  = "Pictures"

	// Repeated rows and cells are expanded up to this count; larger runs
	// are the filler LibreOffice writes to the end of the sheet grid.
	maxRepeat = 64
)

// Document is an ODT package opened for editing.
type Document struct {
	pkg      *container.Package
	content  *xml.Node
	manifest *xml.Node
	text     *xml.Node

	office, txt, tbl string

	manifestDirty bool
	nextFrame     int
}

var _ container.Document = (*Document)(nil)

// Open parses an ODT package.
func Open(data []byte) (*Document, error) {
	pkg, err := container.ReadPackage(data)
	if err != nil {
		return nil, err
	}

	raw, ok := pkg.Part(partContent)
	if !ok {
		return nil, fmt.Errorf("not a valid ODT file: missing %s", partContent)
	}
	content, err := xml.ParseBytes(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", partContent, err)
	}

	root := content.DocumentElement()
	d := &Document{pkg: pkg, content: content}
	var okOffice, okText bool
	d.office, okOffice = root.LookupPrefix(nsOffice)
	d.txt, okText = root.LookupPrefix(nsText)
	if !okOffice || !okText {
		return nil, fmt.Errorf("not a valid ODT file: %s does not declare the office and text namespaces", partContent)
	}
	d.tbl = d.ns(nsTable, "table")

	if body := root.Child(d.office, "body"); body != nil {
		d.text = body.Child(d.office, "text")
	}
	if d.text == nil {
		return nil, fmt.Errorf("not a valid ODT file: missing office:text")
	}

	if rawManifest, ok := pkg.Part(partManifest); ok {
		d.manifest, err = xml.ParseBytes(rawManifest)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", partManifest, err)
		}
	}

	d.nextFrame = countFrames(content) + 1
	return d, nil
}

// Format implements container.Document.
func (d *Document) Format() container.Format {
	return container.ODT
}

// Paragraphs returns the text:p and text:h elements outside tables.
func (d *Document) Paragraphs() []container.Container {
	var out []container.Container
	for _, c := range d.text.Children {
		c.Walk(func(x *xml.Node) bool {
			switch {
			case x.Type != xml.ElementNode:
				return false
			case x.Is(d.txt, "p"), x.Is(d.txt, "h"):
				out = append(out, paragraph{d: d, n: x})
				return false
			case x.Is(d.tbl, "table"):
				return false
			}
			return true
		})
	}
	return out
}

// Tables returns the tables of the body. Tables nested in cells are not
// included.
func (d *Document) Tables() []container.Table {
	var out []container.Table
	for _, c := range d.text.Children {
		c.Walk(func(x *xml.Node) bool {
			switch {
			case x.Type != xml.ElementNode:
				return false
			case x.Is(d.tbl, "table"):
				out = append(out, table{d: d, n: x})
				return false
			case x.Is(d.txt, "p"), x.Is(d.txt, "h"):
				return false
			}
			return true
		})
	}
	return out
}

// Save writes the package with the edited parts.
func (d *Document) Save(w io.Writer) error {
	d.pkg.SetPart(partContent, xml.Marshal(d.content))
	if d.manifestDirty {
		d.pkg.SetPart(partManifest, xml.Marshal(d.manifest))
	}
	return d.pkg.Write(w)
}

func (d *Document) ns(uri, preferred string) string {
	root := d.content.DocumentElement()
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

func countFrames(doc *xml.Node) int {
	n := 0
	doc.Walk(func(x *xml.Node) bool {
		if x.Type == xml.ElementNode && x.Name.Local == "frame" {
			n++
		}
		return true
	})
	return n
}
