package teacherdoc

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProbeImage(t *testing.T) {
	dir := t.TempDir()
	foo := writeImage(t, dir, "foo.png")
	writeImage(t, dir, "both.png")
	bothJPG := writeImage(t, dir, "both.jpg")
	bare := writeImage(t, dir, "scan")
	upper := writeImage(t, dir, "upper.PNG")

	tests := []struct {
		name string
		path string
		want string
		ok   bool
	}{
		{"logical name", filepath.Join(dir, "foo"), foo, true},
		{"exact name", foo, foo, true},
		{"wrong extension", filepath.Join(dir, "foo.jpg"), foo, true},
		{"jpg before png", filepath.Join(dir, "both"), bothJPG, true},
		{"bare file", bare, bare, true},
		{"upper case extension", upper, upper, true},
		{"missing", filepath.Join(dir, "bar"), "", false},
		{"directory", dir, "", false},
		{"empty", "  ", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ProbeImage(tt.path)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
