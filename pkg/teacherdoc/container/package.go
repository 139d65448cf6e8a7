package container

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"path"
	"strconv"
)

// Package is an in-memory ZIP package. Part order and compression methods
// are kept so a package that is read and written unchanged stays equivalent.
type Package struct {
	names   []string
	parts   map[string][]byte
	methods map[string]uint16
}

// ReadPackage loads every part of a ZIP archive.
func ReadPackage(data []byte) (*Package, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("failed to read zip file: %w", err)
	}

	p := &Package{
		parts:   make(map[string][]byte, len(zr.File)),
		methods: make(map[string]uint16, len(zr.File)),
	}
	for _, f := range zr.File {
		if f.FileInfo().IsDir() {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open part %s: %w", f.Name, err)
		}
		content, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to read part %s: %w", f.Name, err)
		}
		if _, dup := p.parts[f.Name]; !dup {
			p.names = append(p.names, f.Name)
		}
		p.parts[f.Name] = content
		p.methods[f.Name] = f.Method
	}
	return p, nil
}

// Names returns the part names in archive order.
func (p *Package) Names() []string {
	out := make([]string, len(p.names))
	copy(out, p.names)
	return out
}

// Has reports whether the named part exists.
func (p *Package) Has(name string) bool {
	_, ok := p.parts[name]
	return ok
}

// Part returns the content of the named part.
func (p *Package) Part(name string) ([]byte, bool) {
	b, ok := p.parts[name]
	return b, ok
}

// SetPart replaces or adds a part. New parts are appended and compressed.
func (p *Package) SetPart(name string, content []byte) {
	if _, ok := p.parts[name]; !ok {
		p.names = append(p.names, name)
		p.methods[name] = zip.Deflate
	}
	p.parts[name] = content
}

// UniqueName returns dir/<base><n><ext> for the smallest n >= 1 that is not
// used by an existing part.
func (p *Package) UniqueName(dir, base, ext string) string {
	for n := 1; ; n++ {
		name := path.Join(dir, base+strconv.Itoa(n)+ext)
		if !p.Has(name) {
			return name
		}
	}
}

// Write serialises the package. A part named "mimetype" is written first
// and stored uncompressed, as OpenDocument requires.
func (p *Package) Write(w io.Writer) error {
	zw := zip.NewWriter(w)

	names := make([]string, 0, len(p.names))
	if p.Has("mimetype") {
		names = append(names, "mimetype")
	}
	for _, name := range p.names {
		if name != "mimetype" {
			names = append(names, name)
		}
	}

	for _, name := range names {
		method := p.methods[name]
		if name == "mimetype" {
			method = zip.Store
		}
		fw, err := zw.CreateHeader(&zip.FileHeader{Name: name, Method: method})
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", name, err)
		}
		if _, err := fw.Write(p.parts[name]); err != nil {
			return fmt.Errorf("failed to write %s: %w", name, err)
		}
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("failed to close zip writer: %w", err)
	}
	return nil
}
