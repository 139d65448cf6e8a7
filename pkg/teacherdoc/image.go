package teacherdoc

import (
	"os"
	"path/filepath"
	"strings"
)

// probeExts are tried in order when a logical image path does not name an
// existing file.
var probeExts = []string{".jpg", ".jpeg", ".png", ".gif"}

var imageExts = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".gif": true,
	".bmp": true, ".tif": true, ".tiff": true, ".webp": true,
}

// ProbeImage resolves a logical image path to an existing file. A path with
// an image extension is used as is when it exists; otherwise the probe
// extensions are appended to the path (or substituted for its image
// extension) in order, and the bare path is tried last.
func ProbeImage(path string) (string, bool) {
	if strings.TrimSpace(path) == "" {
		return "", false
	}

	base := path
	if ext := filepath.Ext(path); imageExts[strings.ToLower(ext)] {
		if isFile(path) {
			return path, true
		}
		base = strings.TrimSuffix(path, ext)
	}
	for _, ext := range probeExts {
		if candidate := base + ext; isFile(candidate) {
			return candidate, true
		}
	}
	if isFile(path) {
		return path, true
	}
	return "", false
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
