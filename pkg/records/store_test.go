package records

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zero750810/teacherdoc/pkg/teacherdoc"
)

// stores returns one empty store per backend.
func stores(t *testing.T, collection string) map[string]Store {
	t.Helper()
	dir := t.TempDir()
	sqlStore, err := OpenSQL(context.Background(), filepath.Join(dir, "records.db"), collection)
	require.NoError(t, err)
	t.Cleanup(func() { sqlStore.Close() })

	return map[string]Store{
		"json":   OpenJSON(filepath.Join(dir, collection+".json"), collection),
		"sqlite": sqlStore,
	}
}

func TestStore(t *testing.T) {
	ctx := context.Background()
	for name, s := range stores(t, Teachers) {
		t.Run(name, func(t *testing.T) {
			entries, err := s.List(ctx)
			require.NoError(t, err)
			assert.Empty(t, entries)

			id1, err := s.Add(ctx, teacherdoc.Record{"name": "王小明", "other_certs": []string{"a.png", "b.png"}})
			require.NoError(t, err)
			id2, err := s.Add(ctx, teacherdoc.Record{"name": "Amy <amy@line.me>"})
			require.NoError(t, err)
			assert.Equal(t, "1", id1)
			assert.Equal(t, "2", id2)

			rec, err := s.Get(ctx, "1")
			require.NoError(t, err)
			assert.Equal(t, "王小明", rec.Text("name"))
			assert.Equal(t, []string{"a.png", "b.png"}, teacherdoc.Resolve(rec, "other_certs").Paths)

			rec, err = s.Get(ctx, "2")
			require.NoError(t, err)
			assert.Equal(t, "Amy <amy@line.me>", rec.Text("name"))

			entries, err = s.List(ctx)
			require.NoError(t, err)
			require.Len(t, entries, 2)
			assert.Equal(t, "1", entries[0].ID)
			assert.Equal(t, "2", entries[1].ID)

			_, err = s.Get(ctx, "3")
			assert.ErrorIs(t, err, ErrNotFound)
			var nf *NotFoundError
			require.True(t, errors.As(err, &nf))
			assert.Equal(t, Teachers, nf.Collection)
			assert.Equal(t, "3", nf.ID)

			_, err = s.Get(ctx, "abc")
			assert.ErrorIs(t, err, ErrNotFound)

			require.NoError(t, s.Reset(ctx))
			entries, err = s.List(ctx)
			require.NoError(t, err)
			assert.Empty(t, entries)

			id, err := s.Add(ctx, teacherdoc.Record{"name": "again"})
			require.NoError(t, err)
			assert.Equal(t, "1", id, "ids restart after a reset")
		})
	}
}

func TestStore_IDsSortNumerically(t *testing.T) {
	ctx := context.Background()
	for name, s := range stores(t, Courses) {
		t.Run(name, func(t *testing.T) {
			for i := 0; i < 11; i++ {
				_, err := s.Add(ctx, teacherdoc.Record{"course_name": "c"})
				require.NoError(t, err)
			}
			entries, err := s.List(ctx)
			require.NoError(t, err)
			require.Len(t, entries, 11)
			assert.Equal(t, "2", entries[1].ID)
			assert.Equal(t, "11", entries[10].ID)
		})
	}
}

func TestJSONStore_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s := OpenJSON(filepath.Join(t.TempDir(), "t.json"), Teachers)
	_, err := s.Add(ctx, teacherdoc.Record{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestJSONStore_FileFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "teachers.json")
	s := OpenJSON(path, Teachers)
	_, err := s.Add(context.Background(), teacherdoc.Record{"name": "王 <b>"})
	require.NoError(t, err)

	data := readFile(t, path)
	assert.Contains(t, data, `"1": {`)
	assert.Contains(t, data, `"name": "王 <b>"`, "non-ASCII and markup are written as is")
}

func TestOpen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	s, err := Open(ctx, Config{Driver: "json", Path: dir}, Courses)
	require.NoError(t, err)
	assert.IsType(t, &JSONStore{}, s)

	s, err = Open(ctx, Config{Driver: "sqlite", Path: filepath.Join(dir, "db.sqlite")}, Courses)
	require.NoError(t, err)
	assert.IsType(t, &SQLStore{}, s)
	require.NoError(t, s.Close())

	_, err = Open(ctx, Config{Driver: "mongo"}, Courses)
	assert.ErrorContains(t, err, "unknown store driver")

	_, err = Open(ctx, DefaultConfig(), "students")
	assert.ErrorContains(t, err, "unknown collection")
}

func TestCategories(t *testing.T) {
	courses := []Entry{
		{ID: "1", Record: teacherdoc.Record{"course": "陶藝"}},
		{ID: "2", Record: teacherdoc.Record{"course": "Art"}},
		{ID: "3", Record: teacherdoc.Record{"course": ""}},
		{ID: "4", Record: teacherdoc.Record{"course": "陶藝"}},
	}
	assert.Equal(t, []Category{
		{Name: "Art", CourseID: "2"},
		{Name: "陶藝", CourseID: "4"},
	}, Categories(courses))
}

func TestTeachersFor(t *testing.T) {
	teachers := []Entry{
		{ID: "1", Record: teacherdoc.Record{"name": "a", "course_type": "Art"}},
		{ID: "2", Record: teacherdoc.Record{"name": "b", "course_type": "陶藝"}},
		{ID: "3", Record: teacherdoc.Record{"name": "c", "course_type": "Art"}},
	}
	got := TeachersFor(teachers, teacherdoc.Record{"course": "Art"})
	require.Len(t, got, 2)
	assert.Equal(t, "1", got[0].ID)
	assert.Equal(t, "3", got[1].ID)
}
