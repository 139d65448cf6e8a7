// Package fixture builds minimal office packages and images for tests.
package fixture

import (
	"archive/zip"
	"bytes"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"testing"
)

const docxContentTypes = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"><Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/><Default Extension="xml" ContentType="application/xml"/><Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/></Types>`

const docxPackageRels = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"><Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/></Relationships>`

const docxDocumentRels = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"><Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles" Target="styles.xml"/></Relationships>`

const docxStyles = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:styles xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"/>`

// Docx returns a DOCX package whose body holds the given WordprocessingML.
// Only the w namespace is declared on the root.
func Docx(body string) []byte {
	doc := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>` + body + `<w:sectPr/></w:body></w:document>`

	return zipParts([][2]string{
		{"[Content_Types].xml", docxContentTypes},
		{"_rels/.rels", docxPackageRels},
		{"word/_rels/document.xml.rels", docxDocumentRels},
		{"word/document.xml", doc},
		{"word/styles.xml", docxStyles},
	}, false)
}

// Para returns a DOCX paragraph with one run per text.
func Para(texts ...string) string {
	s := "<w:p>"
	for _, t := range texts {
		s += `<w:r><w:t xml:space="preserve">` + t + `</w:t></w:r>`
	}
	return s + "</w:p>"
}

// Table returns a DOCX table; each row is a list of cell texts.
func Table(rows ...[]string) string {
	cols := 0
	for _, r := range rows {
		if len(r) > cols {
			cols = len(r)
		}
	}
	s := "<w:tbl><w:tblPr/><w:tblGrid>"
	for i := 0; i < cols; i++ {
		s += `<w:gridCol w:w="2000"/>`
	}
	s += "</w:tblGrid>"
	for _, r := range rows {
		s += "<w:tr>"
		for _, c := range r {
			s += `<w:tc><w:tcPr><w:tcW w:w="2000" w:type="dxa"/></w:tcPr>` + Para(c) + `</w:tc>`
		}
		s += "</w:tr>"
	}
	return s + "</w:tbl>"
}

const odtManifest = `<?xml version="1.0" encoding="UTF-8"?>
<manifest:manifest xmlns:manifest="urn:oasis:names:tc:opendocument:xmlns:manifest:1.0" manifest:version="1.2"><manifest:file-entry manifest:full-path="/" manifest:media-type="application/vnd.oasis.opendocument.text"/><manifest:file-entry manifest:full-path="content.xml" manifest:media-type="text/xml"/></manifest:manifest>`

// ODT returns an OpenDocument text package whose office:text holds body.
// The draw, svg and xlink namespaces are not declared.
func ODT(body string) []byte {
	content := `<?xml version="1.0" encoding="UTF-8"?>
<office:document-content xmlns:office="urn:oasis:names:tc:opendocument:xmlns:office:1.0" xmlns:text="urn:oasis:names:tc:opendocument:xmlns:text:1.0" xmlns:table="urn:oasis:names:tc:opendocument:xmlns:table:1.0" office:version="1.2"><office:body><office:text>` + body + `</office:text></office:body></office:document-content>`

	return zipParts([][2]string{
		{"mimetype", "application/vnd.oasis.opendocument.text"},
		{"content.xml", content},
		{"META-INF/manifest.xml", odtManifest},
	}, true)
}

// ODTPara returns an ODT paragraph.
func ODTPara(text string) string {
	return "<text:p>" + text + "</text:p>"
}

// ODTTable returns an ODT table; each row is a list of cell texts.
func ODTTable(rows ...[]string) string {
	s := `<table:table table:name="Table1"><table:table-column/>`
	for _, r := range rows {
		s += "<table:table-row>"
		for _, c := range r {
			s += `<table:table-cell office:value-type="string">` + ODTPara(c) + `</table:table-cell>`
		}
		s += "</table:table-row>"
	}
	return s + "</table:table>"
}

func zipParts(parts [][2]string, storeFirst bool) []byte {
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for i, p := range parts {
		hdr := &zip.FileHeader{Name: p[0], Method: zip.Deflate}
		if storeFirst && i == 0 {
			hdr.Method = zip.Store
		}
		f, err := w.CreateHeader(hdr)
		if err != nil {
			panic(err)
		}
		if _, err := io.WriteString(f, p[1]); err != nil {
			panic(err)
		}
	}
	if err := w.Close(); err != nil {
		panic(err)
	}
	return buf.Bytes()
}

func solid(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: 200, G: 80, B: 40, A: 255})
		}
	}
	return img
}

// PNG returns an encoded w x h PNG image.
func PNG(w, h int) []byte {
	var buf bytes.Buffer
	if err := png.Encode(&buf, solid(w, h)); err != nil {
		panic(err)
	}
	return buf.Bytes()
}

// GIF returns an encoded w x h GIF image.
func GIF(w, h int) []byte {
	var buf bytes.Buffer
	if err := gif.Encode(&buf, solid(w, h), nil); err != nil {
		panic(err)
	}
	return buf.Bytes()
}

// JPEG returns an encoded w x h JPEG image.
func JPEG(w, h int) []byte {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, solid(w, h), nil); err != nil {
		panic(err)
	}
	return buf.Bytes()
}

// WriteFile writes data under dir and returns the full path.
func WriteFile(t testing.TB, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// ReadPart returns the named part of a ZIP package.
func ReadPart(t testing.TB, pkg []byte, name string) string {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(pkg), int64(len(pkg)))
	if err != nil {
		t.Fatal(err)
	}
	for _, f := range zr.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			t.Fatal(err)
		}
		defer rc.Close()
		b, err := io.ReadAll(rc)
		if err != nil {
			t.Fatal(err)
		}
		return string(b)
	}
	t.Fatalf("part %s not found", name)
	return ""
}

// PartNames lists the entries of a ZIP package in order.
func PartNames(t testing.TB, pkg []byte) []string {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(pkg), int64(len(pkg)))
	if err != nil {
		t.Fatal(err)
	}
	names := make([]string, len(zr.File))
	for i, f := range zr.File {
		names[i] = f.Name
	}
	return names
}
