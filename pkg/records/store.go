// Package records stores the teacher and course records that feed document
// generation and imports them from spreadsheet exports.
package records

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/zero750810/teacherdoc/pkg/teacherdoc"
)

// Collections held by a store.
const (
	Teachers = "teachers"
	Courses  = "courses"
)

// ErrNotFound is wrapped by every NotFoundError.
var ErrNotFound = errors.New("record not found")

// NotFoundError reports a missing record id.
type NotFoundError struct {
	Collection string
	ID         string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s record '%s' not found", e.Collection, e.ID)
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// Entry is a stored record with its id.
type Entry struct {
	ID     string
	Record teacherdoc.Record
}

// Store is a collection of records keyed by sequential decimal ids.
type Store interface {
	Get(ctx context.Context, id string) (teacherdoc.Record, error)
	// Add stores rec under the next free id and returns it.
	Add(ctx context.Context, rec teacherdoc.Record) (string, error)
	// List returns every record in id order.
	List(ctx context.Context) ([]Entry, error)
	// Reset removes every record.
	Reset(ctx context.Context) error
	Close() error
}

// Config selects a store backend.
type Config struct {
	// Driver is "json" or "sqlite".
	Driver string `yaml:"driver"`
	// Path is the data directory for json and the database file for sqlite.
	Path string `yaml:"path"`
}

// DefaultConfig keeps teachers.json and courses.json in the working
// directory.
func DefaultConfig() Config {
	return Config{Driver: "json", Path: "."}
}

// Open opens the named collection with the configured backend.
func Open(ctx context.Context, cfg Config, collection string) (Store, error) {
	if collection != Teachers && collection != Courses {
		return nil, fmt.Errorf("unknown collection %q", collection)
	}
	switch cfg.Driver {
	case "", "json":
		return OpenJSON(filepath.Join(cfg.Path, collection+".json"), collection), nil
	case "sqlite":
		s, err := OpenSQL(ctx, cfg.Path, collection)
		if err != nil {
			return nil, err
		}
		return s, nil
	}
	return nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
}

// sortEntries orders entries by numeric id.
func sortEntries(entries []Entry) {
	sort.Slice(entries, func(i, j int) bool {
		a, _ := strconv.Atoi(entries[i].ID)
		b, _ := strconv.Atoi(entries[j].ID)
		if a != b {
			return a < b
		}
		return entries[i].ID < entries[j].ID
	})
}

// Category is a course category with the id of the course that represents
// it.
type Category struct {
	Name     string
	CourseID string
}

// Categories returns the distinct non-empty "course" values of courses in
// name order. When several courses share a category the last one wins.
func Categories(courses []Entry) []Category {
	byName := make(map[string]string)
	for _, e := range courses {
		if name := e.Record.Text("course"); name != "" {
			byName[name] = e.ID
		}
	}
	out := make([]Category, 0, len(byName))
	for name, id := range byName {
		out = append(out, Category{Name: name, CourseID: id})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// TeachersFor returns the teachers whose course_type matches the category
// of course.
func TeachersFor(teachers []Entry, course teacherdoc.Record) []Entry {
	category := course.Text("course")
	var out []Entry
	for _, e := range teachers {
		if e.Record.Text("course_type") == category {
			out = append(out, e)
		}
	}
	return out
}
