package docx

import (
	"fmt"
	"path"
	"strconv"
	"strings"

	"github.com/zero750810/teacherdoc/pkg/teacherdoc/media"
	"github.com/zero750810/teacherdoc/pkg/teacherdoc/xml"
)

const drawingTemplate = `<{w}:r><{w}:drawing>` +
	`<{wp}:inline distT="0" distB="0" distL="0" distR="0">` +
	`<{wp}:extent cx="%[1]d" cy="%[2]d"/>` +
	`<{wp}:effectExtent l="0" t="0" r="0" b="0"/>` +
	`<{wp}:docPr id="%[3]d" name="Picture %[3]d"/>` +
	`<{wp}:cNvGraphicFramePr><a:graphicFrameLocks xmlns:a="` + nsA + `" noChangeAspect="1"/></{wp}:cNvGraphicFramePr>` +
	`<a:graphic xmlns:a="` + nsA + `"><a:graphicData uri="` + nsPic + `">` +
	`<pic:pic xmlns:pic="` + nsPic + `">` +
	`<pic:nvPicPr><pic:cNvPr id="0" name="%[4]s"/><pic:cNvPicPr/></pic:nvPicPr>` +
	`<pic:blipFill><a:blip {r}:embed="%[5]s"/><a:stretch><a:fillRect/></a:stretch></pic:blipFill>` +
	`<pic:spPr><a:xfrm><a:off x="0" y="0"/><a:ext cx="%[1]d" cy="%[2]d"/></a:xfrm>` +
	`<a:prstGeom prst="rect"><a:avLst/></a:prstGeom></pic:spPr>` +
	`</pic:pic></a:graphicData></a:graphic></{wp}:inline></{w}:drawing></{w}:r>`

// imageRun stores the image at path in the package and returns an inline
// drawing run referencing it.
func (d *Document) imageRun(file string, width media.Length) (*xml.Node, error) {
	img, err := media.Load(file)
	if err != nil {
		return nil, err
	}

	part := d.pkg.UniqueName(mediaDir, "image", img.Ext)
	target := "media/" + path.Base(part)
	rid := d.nextRelationshipID()
	cx, cy := img.Extent(width)

	markup := strings.NewReplacer(
		"{w}", d.w,
		"{wp}", d.ns(nsWP, "wp"),
		"{r}", d.ns(nsR, "r"),
	).Replace(drawingTemplate)
	nodes, err := xml.ParseFragment(fmt.Sprintf(markup, cx, cy, d.nextDocPr, path.Base(part), rid))
	if err != nil {
		return nil, fmt.Errorf("failed to build drawing: %w", err)
	}

	d.pkg.SetPart(part, img.Data)
	d.addRelationship(rid, relTypeImage, target)
	d.registerExtension(img.Ext, img.ContentType)
	d.nextDocPr++
	return nodes[0], nil
}

func (d *Document) nextRelationshipID() string {
	maxID := 0
	for _, rel := range d.rels.DocumentElement().Elements() {
		id, _ := rel.Attr("", "Id")
		if strings.HasPrefix(id, "rId") {
			if n, err := strconv.Atoi(id[3:]); err == nil && n > maxID {
				maxID = n
			}
		}
	}
	return fmt.Sprintf("rId%d", maxID+1)
}

func (d *Document) addRelationship(id, relType, target string) {
	root := d.rels.DocumentElement()
	root.AppendChild(xml.NewElement(root.Name.Prefix, "Relationship",
		xml.NewAttr("", "Id", id),
		xml.NewAttr("", "Type", relType),
		xml.NewAttr("", "Target", target),
	))
	d.relsDirty = true
}

// registerExtension adds a Default content type for ext unless one exists.
func (d *Document) registerExtension(ext, contentType string) {
	ext = strings.TrimPrefix(strings.ToLower(ext), ".")
	root := d.types.DocumentElement()
	var firstOverride *xml.Node
	for _, el := range root.Elements() {
		switch el.Name.Local {
		case "Default":
			if v, _ := el.Attr("", "Extension"); strings.EqualFold(v, ext) {
				return
			}
		case "Override":
			if firstOverride == nil {
				firstOverride = el
			}
		}
	}

	def := xml.NewElement(root.Name.Prefix, "Default",
		xml.NewAttr("", "Extension", ext),
		xml.NewAttr("", "ContentType", contentType),
	)
	if firstOverride != nil {
		root.InsertBefore(firstOverride, def)
	} else {
		root.AppendChild(def)
	}
	d.typesDirty = true
}
