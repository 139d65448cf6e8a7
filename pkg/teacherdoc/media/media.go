// Package media loads image files for embedding into documents.
package media

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Length is a distance in English Metric Units, the unit DrawingML uses.
type Length int64

// Inch is one inch in EMU.
const Inch Length = 914400

// Inches converts a number of inches to a Length.
func Inches(n float64) Length {
	return Length(n * float64(Inch))
}

// Inches returns l in inches.
func (l Length) Inches() float64 {
	return float64(l) / float64(Inch)
}

// Image is a decoded image file ready to be stored in a package.
type Image struct {
	Source      string
	Data        []byte
	Format      string
	Ext         string
	ContentType string
	// Width and Height are pixel dimensions.
	Width  int
	Height int
}

var formats = map[string]struct {
	ext         string
	contentType string
}{
	"png":  {".png", "image/png"},
	"jpeg": {".jpeg", "image/jpeg"},
	"gif":  {".gif", "image/gif"},
	"bmp":  {".bmp", "image/bmp"},
	"tiff": {".tiff", "image/tiff"},
	"webp": {".webp", "image/webp"},
}

// Load reads path and decodes its header to learn the format and pixel size.
func Load(path string) (*Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}
	return Decode(path, data)
}

// Decode inspects data that was read from source.
func Decode(source string, data []byte) (*Image, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("unsupported image %s: %w", filepath.Base(source), err)
	}
	f, ok := formats[format]
	if !ok {
		return nil, fmt.Errorf("unsupported image format %q", format)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("image %s has no size", filepath.Base(source))
	}

	ext := f.ext
	// Keep a .jpg source as .jpg; both map to image/jpeg.
	if srcExt := strings.ToLower(filepath.Ext(source)); format == "jpeg" && srcExt == ".jpg" {
		ext = srcExt
	}

	return &Image{
		Source:      source,
		Data:        data,
		Format:      format,
		Ext:         ext,
		ContentType: f.contentType,
		Width:       cfg.Width,
		Height:      cfg.Height,
	}, nil
}

// Extent returns the display size of the image for the given width, keeping
// the aspect ratio of the source pixels.
func (img *Image) Extent(width Length) (Length, Length) {
	if img.Width <= 0 {
		return width, width
	}
	height := Length(float64(width) * float64(img.Height) / float64(img.Width))
	return width, height
}

// ContentTypeForExt returns the MIME type for a file extension such as ".png".
func ContentTypeForExt(ext string) string {
	ext = strings.TrimPrefix(strings.ToLower(ext), ".")
	switch ext {
	case "jpg", "jpeg":
		return "image/jpeg"
	case "tif", "tiff":
		return "image/tiff"
	}
	if f, ok := formats[ext]; ok {
		return f.contentType
	}
	return "image/" + ext
}
