package teacherdoc

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/zero750810/teacherdoc/internal/fixture"
	"github.com/zero750810/teacherdoc/pkg/teacherdoc/container"
	"github.com/zero750810/teacherdoc/pkg/teacherdoc/docx"
	"github.com/zero750810/teacherdoc/pkg/teacherdoc/xml"
)

var testTime = time.Date(2024, 3, 5, 14, 30, 0, 0, time.UTC)

// newTestEngine returns an engine with a fixed clock that logs to buf.
func newTestEngine(t *testing.T) (*Engine, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	e := NewWithConfig(DefaultConfig())
	e.SetLogger(NewLogger(&buf, LogDebug))
	e.now = func() time.Time { return testTime }
	return e, &buf
}

func fillDocx(t *testing.T, body string, rec Record) (*docx.Document, Warnings) {
	t.Helper()
	doc, err := docx.Open(fixture.Docx(body))
	require.NoError(t, err)
	e, _ := newTestEngine(t)
	return doc, e.Fill(doc, rec)
}

func paragraphTexts(doc container.Document) []string {
	var out []string
	for _, p := range doc.Paragraphs() {
		out = append(out, p.Text())
	}
	return out
}

func tableTexts(tbl container.Table) [][]string {
	var out [][]string
	for _, r := range tbl.Rows() {
		var row []string
		for _, c := range r.Cells() {
			row = append(row, c.Text())
		}
		out = append(out, row)
	}
	return out
}

func saveDocx(t *testing.T, doc container.Document) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, doc.Save(&buf))
	return fixture.ReadPart(t, buf.Bytes(), "word/document.xml")
}

// drawingRows reports, for each row of the first table in a saved DOCX,
// whether the row holds an embedded image.
func drawingRows(t *testing.T, doc container.Document) []bool {
	t.Helper()
	root, err := xml.ParseBytes([]byte(saveDocx(t, doc)))
	require.NoError(t, err)
	tables := root.Descendants("w", "tbl")
	require.NotEmpty(t, tables)
	var out []bool
	for _, tr := range tables[0].Descendants("w", "tr") {
		out = append(out, len(tr.Descendants("w", "drawing")) > 0)
	}
	return out
}

// templateFile writes a template into a fresh directory and returns its
// path.
func templateFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	return fixture.WriteFile(t, t.TempDir(), name, data)
}

func dirEntries(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func writeImage(t *testing.T, dir, name string) string {
	t.Helper()
	var data []byte
	switch filepath.Ext(name) {
	case ".gif":
		data = fixture.GIF(4, 4)
	case ".jpg", ".jpeg":
		data = fixture.JPEG(4, 4)
	default:
		data = fixture.PNG(4, 4)
	}
	return fixture.WriteFile(t, dir, name, data)
}

func readFile(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return data
}
