package teacherdoc

import (
	"strings"

	"github.com/zero750810/teacherdoc/pkg/teacherdoc/container"
	"github.com/zero750810/teacherdoc/pkg/teacherdoc/media"
)

// generation holds the state of one Fill call.
type generation struct {
	rec      Record
	keys     []string
	width    media.Length
	log      *Logger
	claimed  map[container.Container]bool
	warnings Warnings
}

func (g *generation) warn(kind WarningKind, marker, detail string) {
	w := Warning{Kind: kind, Marker: marker, Detail: detail}
	g.warnings = append(g.warnings, w)
	if kind == AnchorNotFound {
		g.log.Debug("%s", w)
		return
	}
	g.log.Warn("%s", w)
}

// keyAt returns the longest marker key that s starts with, or "".
func (g *generation) keyAt(s string) string {
	for _, k := range g.keys {
		if strings.HasPrefix(s, k) {
			return k
		}
	}
	return ""
}

// scan performs generic substitution on one container. The text is read
// once and markers are matched left to right, so substituted values are
// never scanned again. Image markers are removed from the text and their
// images appended afterwards, in marker order.
func (g *generation) scan(c container.Container) {
	text := c.Text()
	if !strings.Contains(text, "@") {
		return
	}

	type imageMarker struct {
		marker string
		value  ResolvedValue
	}
	var (
		out     strings.Builder
		images  []imageMarker
		matched bool
	)
	for i := 0; i < len(text); {
		j := strings.IndexByte(text[i:], '@')
		if j < 0 {
			out.WriteString(text[i:])
			break
		}
		out.WriteString(text[i : i+j])
		i += j

		key := g.keyAt(text[i+1:])
		if key == "" {
			out.WriteByte('@')
			i++
			continue
		}
		matched = true
		i += 1 + len(key)

		v := Resolve(g.rec, key)
		if v.Kind == KindScalar {
			out.WriteString(v.Text)
			continue
		}
		images = append(images, imageMarker{marker: "@" + key, value: v})
	}
	if !matched {
		return
	}

	c.SetText(out.String())
	for _, im := range images {
		switch im.value.Kind {
		case KindImageRef:
			if im.value.Path == "" {
				g.log.Debug("no image for %s", im.marker)
				continue
			}
			g.embed(c, im.marker, im.value.Path)
		case KindImageList:
			for _, p := range im.value.Paths {
				if g.embed(c, im.marker, p) {
					c.AppendText("\n")
				}
			}
		}
	}
}

// embed resolves path and appends the image to c. Failures become
// warnings.
func (g *generation) embed(c container.Container, marker, path string) bool {
	resolved, ok := ProbeImage(path)
	if !ok {
		g.warn(UnresolvedImage, marker, path)
		return false
	}
	if err := c.AppendImage(resolved, g.width); err != nil {
		g.warn(EmbedFailed, marker, err.Error())
		return false
	}
	g.log.Debug("embedded %s for %s", resolved, marker)
	return true
}
