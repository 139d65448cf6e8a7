package teacherdoc

import (
	"bytes"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/natefinch/atomic"

	"github.com/zero750810/teacherdoc/pkg/teacherdoc/container"
	"github.com/zero750810/teacherdoc/pkg/teacherdoc/docx"
	"github.com/zero750810/teacherdoc/pkg/teacherdoc/odt"
)

// Engine generates documents from templates. An Engine may be shared by
// goroutines; each Generate call owns the document it loads.
type Engine struct {
	config *Config
	cache  *TemplateCache
	logger *Logger

	now       func() time.Time
	writeFile func(path string, r io.Reader) error
}

// New creates an engine with the global configuration.
func New() *Engine {
	return NewWithConfig(GetGlobalConfig())
}

// NewWithConfig creates an engine with a custom configuration. Unset fields
// take their defaults.
func NewWithConfig(config *Config) *Engine {
	config = NewConfigWithDefaults(config)
	return &Engine{
		config: config,
		cache: NewTemplateCache(CacheConfig{
			MaxSize: config.CacheMaxSize,
			TTL:     config.CacheTTL,
		}),
		logger:    GetLogger(),
		now:       time.Now,
		writeFile: atomic.WriteFile,
	}
}

// SetLogger replaces the logger used by the engine.
func (e *Engine) SetLogger(l *Logger) {
	e.logger = l
}

// Config returns a copy of the engine configuration.
func (e *Engine) Config() Config {
	return *e.config
}

// ClearCache drops every cached template.
func (e *Engine) ClearCache() {
	e.cache.Clear()
}

// Generate fills the template at templatePath with rec and writes the
// result next to the template. The output format follows the template
// extension.
//
// Problems confined to one marker, image or table are returned as warnings
// in the Result; only an unsupported template, an unreadable template or a
// failed save abort the call.
func (e *Engine) Generate(templatePath string, rec Record) (*Result, error) {
	format, ok := container.FormatOf(templatePath)
	if !ok {
		return nil, NewUnsupportedFormatError(templatePath, filepath.Ext(templatePath))
	}

	log := e.logger.WithFields(Fields{
		"template": filepath.Base(templatePath),
		"name":     rec.Text("name"),
		"course":   rec.Text("course_name"),
	})
	log.Info("generating document")

	data, err := e.cache.Load(templatePath)
	if err != nil {
		return nil, NewDocumentError("load", templatePath, err)
	}
	doc, err := Open(format, data)
	if err != nil {
		return nil, NewDocumentError("parse", templatePath, err)
	}

	warnings := e.fill(doc, rec, log)

	var buf bytes.Buffer
	if err := doc.Save(&buf); err != nil {
		return nil, NewDocumentError("save", templatePath, err)
	}

	target := filepath.Join(filepath.Dir(templatePath), e.outputName(rec, format.Ext(), e.now()))
	path, err := e.write(target, buf.Bytes(), log)
	if err != nil {
		return nil, err
	}

	log.WithField("warnings", len(warnings)).Info("wrote %s", path)
	return &Result{Path: path, Warnings: warnings}, nil
}

// Open parses template bytes of the given format.
func Open(format container.Format, data []byte) (container.Document, error) {
	switch format {
	case container.DOCX:
		return docx.Open(data)
	case container.ODT:
		return odt.Open(data)
	}
	return nil, NewUnsupportedFormatError("", string(format))
}

// Fill applies rec to doc in place and returns the warnings met. Tables are
// expanded and scanned first, then free paragraphs.
func (e *Engine) Fill(doc container.Document, rec Record) Warnings {
	return e.fill(doc, rec, e.logger)
}

func (e *Engine) fill(doc container.Document, rec Record, log *Logger) Warnings {
	g := &generation{
		rec:     rec,
		keys:    markerKeys(rec),
		width:   e.config.imageWidth(),
		log:     log,
		claimed: make(map[container.Container]bool),
	}

	paragraphs := doc.Paragraphs()
	var inParagraphs strings.Builder
	for _, p := range paragraphs {
		inParagraphs.WriteString(p.Text())
		inParagraphs.WriteByte('\n')
	}

	anchored := make(map[string]bool)
	for _, t := range doc.Tables() {
		for _, m := range g.expand(t) {
			anchored[m] = true
		}
		for _, row := range t.Rows() {
			for _, c := range row.Cells() {
				if !g.claimed[c] {
					g.scan(c)
				}
			}
		}
	}
	for _, p := range paragraphs {
		g.scan(p)
	}

	for _, x := range expanders {
		if anchored[x.marker] || !x.hasData(rec) || strings.Contains(inParagraphs.String(), x.marker) {
			continue
		}
		g.warn(AnchorNotFound, x.marker, "")
	}
	return g.warnings
}
