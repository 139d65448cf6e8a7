package teacherdoc

import (
	"fmt"
	"strconv"
	"strings"
)

// Record is the merged data for one output document. Values are strings,
// lists of strings (or []any as decoded from JSON), numbers, bools or nil.
type Record map[string]any

// Merge combines a teacher record and a course record into a new Record.
// Later records win on key collisions, so course fields override teacher
// fields. The inputs are not modified.
func Merge(records ...Record) Record {
	size := 0
	for _, r := range records {
		size += len(r)
	}
	out := make(Record, size)
	for _, r := range records {
		for k, v := range r {
			out[k] = v
		}
	}
	return out
}

// Text returns the value at key as text, or "" when the key is absent.
func (r Record) Text(key string) string {
	return stringify(r[key])
}

// Clone returns a shallow copy of r.
func (r Record) Clone() Record {
	return Merge(r)
}

// Kind is the shape of a resolved record value.
type Kind int

const (
	KindScalar Kind = iota
	KindImageRef
	KindImageList
)

func (k Kind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindImageRef:
		return "image"
	case KindImageList:
		return "image list"
	default:
		return "unknown"
	}
}

// kinds is the fixed key to kind table. Keys not listed are scalars.
var kinds = map[string]Kind{
	"photo":        KindImageRef,
	"id_front":     KindImageRef,
	"id_back":      KindImageRef,
	"diploma":      KindImageRef,
	"bank_account": KindImageRef,
	"other_certs":  KindImageList,
	"photos":       KindImageList,
}

// KindOf returns the kind of values stored under key.
func KindOf(key string) Kind {
	return kinds[key]
}

// ResolvedValue is a record value classified by its key. Exactly one of
// Text, Path or Paths is meaningful, selected by Kind.
type ResolvedValue struct {
	Kind  Kind
	Text  string
	Path  string
	Paths []string
}

// Resolve classifies the value at key. It never fails: absent or nil values
// resolve to the empty value of the key's kind.
func Resolve(rec Record, key string) ResolvedValue {
	v := rec[key]
	switch kind := KindOf(key); kind {
	case KindImageRef:
		// A single path may itself contain commas.
		if x, ok := v.(string); ok {
			return ResolvedValue{Kind: kind, Path: strings.TrimSpace(x)}
		}
		paths := toList(v)
		if len(paths) == 0 {
			return ResolvedValue{Kind: kind}
		}
		return ResolvedValue{Kind: kind, Path: paths[0]}
	case KindImageList:
		return ResolvedValue{Kind: kind, Paths: toList(v)}
	default:
		return ResolvedValue{Kind: KindScalar, Text: stringify(v)}
	}
}

func stringify(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	case []string:
		return strings.Join(x, "\n")
	case []any:
		parts := make([]string, len(x))
		for i, e := range x {
			parts[i] = stringify(e)
		}
		return strings.Join(parts, "\n")
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprint(x)
	}
}

// toList returns the non-empty paths held by v. A single string may carry a
// comma separated list.
func toList(v any) []string {
	var raw []string
	switch x := v.(type) {
	case nil:
	case string:
		raw = strings.Split(x, ",")
	case []string:
		raw = x
	case []any:
		for _, e := range x {
			raw = append(raw, stringify(e))
		}
	default:
		raw = []string{stringify(x)}
	}

	var out []string
	for _, p := range raw {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
