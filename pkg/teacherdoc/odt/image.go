package odt

import (
	"fmt"
	"strings"

	"github.com/zero750810/teacherdoc/pkg/teacherdoc/media"
	"github.com/zero750810/teacherdoc/pkg/teacherdoc/xml"
)

const manifestTemplate = `<?xml version="1.0" encoding="UTF-8"?>
<manifest:manifest xmlns:manifest="` + nsManifest + `" manifest:version="1.2">` +
	`<manifest:file-entry manifest:full-path="/" manifest:media-type="application/vnd.oasis.opendocument.text"/>` +
	`</manifest:manifest>`

// imageFrame stores the image at path under Pictures/ and returns an
// as-char frame referencing it.
func (d *Document) imageFrame(path string, width media.Length) (*xml.Node, error) {
	img, err := media.Load(path)
	if err != nil {
		return nil, err
	}
	if err := d.ensureManifest(); err != nil {
		return nil, err
	}

	draw := d.ns(nsDraw, "draw")
	svg := d.ns(nsSVG, "svg")
	xlink := d.ns(nsXLink, "xlink")

	part := d.pkg.UniqueName(picturesDir, "image", img.Ext)
	cx, cy := img.Extent(width)

	frame := xml.NewElement(draw, "frame",
		xml.NewAttr(draw, "name", fmt.Sprintf("Image%d", d.nextFrame)),
		xml.NewAttr(d.txt, "anchor-type", "as-char"),
		xml.NewAttr(svg, "width", inches(cx)),
		xml.NewAttr(svg, "height", inches(cy)),
		xml.NewAttr(draw, "z-index", "0"),
	)
	frame.AppendChild(xml.NewElement(draw, "image",
		xml.NewAttr(xlink, "href", part),
		xml.NewAttr(xlink, "type", "simple"),
		xml.NewAttr(xlink, "show", "embed"),
		xml.NewAttr(xlink, "actuate", "onLoad"),
	))

	d.pkg.SetPart(part, img.Data)
	d.addManifestEntry(part, img.ContentType)
	d.nextFrame++
	return frame, nil
}

func inches(l media.Length) string {
	s := fmt.Sprintf("%.4f", l.Inches())
	s = strings.TrimRight(strings.TrimRight(s, "0"), ".")
	return s + "in"
}

func (d *Document) ensureManifest() error {
	if d.manifest != nil {
		return nil
	}
	m, err := xml.ParseBytes([]byte(manifestTemplate))
	if err != nil {
		return fmt.Errorf("failed to build manifest: %w", err)
	}
	d.manifest = m
	d.manifestDirty = true
	return nil
}

func (d *Document) addManifestEntry(fullPath, mediaType string) {
	root := d.manifest.DocumentElement()
	prefix, ok := root.LookupPrefix(nsManifest)
	if !ok {
		prefix = root.Name.Prefix
	}
	root.AppendChild(xml.NewElement(prefix, "file-entry",
		xml.NewAttr(prefix, "full-path", fullPath),
		xml.NewAttr(prefix, "media-type", mediaType),
	))
	d.manifestDirty = true
}
