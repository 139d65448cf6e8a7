package container

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zero750810/teacherdoc/internal/fixture"
)

func TestFormatOf(t *testing.T) {
	tests := []struct {
		path string
		want Format
		ok   bool
	}{
		{"a/template.docx", DOCX, true},
		{"TEMPLATE.DOCX", DOCX, true},
		{"course.odt", ODT, true},
		{"legacy.doc", "", false},
		{"noext", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, ok := FormatOf(tt.path)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
	assert.Equal(t, ".odt", ODT.Ext())
}

func TestPackage_RoundTrip(t *testing.T) {
	src := fixture.Docx(fixture.Para("hello"))
	p, err := ReadPackage(src)
	require.NoError(t, err)

	assert.Equal(t, fixture.PartNames(t, src), p.Names())
	doc, ok := p.Part("word/document.xml")
	require.True(t, ok)
	assert.Contains(t, string(doc), "hello")

	var buf bytes.Buffer
	require.NoError(t, p.Write(&buf))
	assert.Equal(t, fixture.PartNames(t, src), fixture.PartNames(t, buf.Bytes()))
	assert.Equal(t, string(doc), fixture.ReadPart(t, buf.Bytes(), "word/document.xml"))
}

func TestPackage_SetPartAndUniqueName(t *testing.T) {
	p, err := ReadPackage(fixture.Docx(""))
	require.NoError(t, err)

	name := p.UniqueName("word/media", "image", ".png")
	assert.Equal(t, "word/media/image1.png", name)
	p.SetPart(name, []byte("x"))
	assert.Equal(t, "word/media/image2.png", p.UniqueName("word/media", "image", ".png"))

	names := p.Names()
	assert.Equal(t, "word/media/image1.png", names[len(names)-1])
}

func TestPackage_MimetypeFirst(t *testing.T) {
	p, err := ReadPackage(fixture.ODT(""))
	require.NoError(t, err)
	p.SetPart("Pictures/a.png", fixture.PNG(2, 2))

	var buf bytes.Buffer
	require.NoError(t, p.Write(&buf))
	names := fixture.PartNames(t, buf.Bytes())
	require.NotEmpty(t, names)
	assert.Equal(t, "mimetype", names[0])
	assert.Equal(t, "application/vnd.oasis.opendocument.text", fixture.ReadPart(t, buf.Bytes(), "mimetype"))
}

func TestReadPackage_NotZip(t *testing.T) {
	_, err := ReadPackage([]byte("plain text"))
	assert.Error(t, err)
}
