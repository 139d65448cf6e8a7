// Package container defines the uniform view over word-processing documents
// used by the generator: a document is an ordered list of paragraphs and
// tables, and both paragraphs and table cells are containers of text and
// images.
package container

import (
	"io"
	"path/filepath"
	"strings"

	"github.com/zero750810/teacherdoc/pkg/teacherdoc/media"
)

// Format identifies a supported document format.
type Format string

const (
	DOCX Format = "docx"
	ODT  Format = "odt"
)

// Ext returns the file extension of the format, with the leading dot.
func (f Format) Ext() string {
	return "." + string(f)
}

// FormatOf returns the format for a template path based on its extension.
func FormatOf(path string) (Format, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".docx":
		return DOCX, true
	case ".odt":
		return ODT, true
	}
	return "", false
}

// Document is a loaded template.
type Document interface {
	// Paragraphs returns the top-level body paragraphs in document order.
	Paragraphs() []Container
	// Tables returns the top-level body tables in document order.
	Tables() []Table
	// Save writes the complete package to w.
	Save(w io.Writer) error
	Format() Format
}

// Table is a sequence of physical rows.
type Table interface {
	Rows() []Row
	// AppendRow adds a row shaped like the current last row, with empty
	// cells, and returns it.
	AppendRow() Row
}

// Row is a sequence of physical cells. Rows may have fewer cells than the
// table grid.
type Row interface {
	Cells() []Container
}

// Container is a paragraph or a table cell.
//
// Implementations are comparable so a set of containers can be kept in a map.
type Container interface {
	// Text returns the plain text projection. Tabs and line breaks are
	// returned as '\t' and '\n'; the paragraphs of a cell are joined with '\n'.
	Text() string
	// SetText replaces the content with a single plain run holding s.
	// Character formatting of the replaced runs is lost.
	SetText(s string)
	// AppendText adds a run holding s at the end of the content.
	AppendText(s string)
	// AppendImage embeds the image at path at the end of the content,
	// scaled to width with the source aspect ratio.
	AppendImage(path string, width media.Length) error
}

// Cell returns the cell at (row, col) or nil when either index is out of
// range.
func Cell(rows []Row, row, col int) Container {
	if row < 0 || row >= len(rows) {
		return nil
	}
	cells := rows[row].Cells()
	if col < 0 || col >= len(cells) {
		return nil
	}
	return cells[col]
}
