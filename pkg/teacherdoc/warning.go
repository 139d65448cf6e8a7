package teacherdoc

import (
	"fmt"
	"strings"
)

// WarningKind classifies a non-fatal problem met during generation.
type WarningKind int

const (
	// AnchorNotFound: the record carries data for a table handler but no
	// table holds its marker.
	AnchorNotFound WarningKind = iota
	// UnresolvedImage: no file exists for an image reference.
	UnresolvedImage
	// MalformedPhotoFilename: a photo name has no trailing _<week>.
	MalformedPhotoFilename
	// DuplicateWeek: two photos claim the same week; the first is kept.
	DuplicateWeek
	// WeekOutOfRange: a photo week is beyond the rows of the grid.
	WeekOutOfRange
	// EmbedFailed: the image file exists but could not be embedded.
	EmbedFailed
)

func (k WarningKind) String() string {
	switch k {
	case AnchorNotFound:
		return "anchor not found"
	case UnresolvedImage:
		return "unresolved image"
	case MalformedPhotoFilename:
		return "malformed photo filename"
	case DuplicateWeek:
		return "duplicate week"
	case WeekOutOfRange:
		return "week out of range"
	case EmbedFailed:
		return "embed failed"
	default:
		return "unknown"
	}
}

// Warning is one non-fatal problem. Marker is the marker being processed,
// Detail names the offending value.
type Warning struct {
	Kind   WarningKind
	Marker string
	Detail string
}

func (w Warning) String() string {
	if w.Detail == "" {
		return fmt.Sprintf("%s: %s", w.Kind, w.Marker)
	}
	return fmt.Sprintf("%s: %s (%s)", w.Kind, w.Marker, w.Detail)
}

// Warnings is the ordered list of problems met during one generation.
type Warnings []Warning

// Of returns the warnings of the given kind.
func (ws Warnings) Of(kind WarningKind) Warnings {
	var out Warnings
	for _, w := range ws {
		if w.Kind == kind {
			out = append(out, w)
		}
	}
	return out
}

func (ws Warnings) String() string {
	parts := make([]string, len(ws))
	for i, w := range ws {
		parts[i] = w.String()
	}
	return strings.Join(parts, "\n")
}

// Result is the outcome of a successful generation.
type Result struct {
	// Path is the file that was written.
	Path     string
	Warnings Warnings
}
