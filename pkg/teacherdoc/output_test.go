package teacherdoc

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutputName(t *testing.T) {
	e, _ := newTestEngine(t)

	tests := []struct {
		name string
		rec  Record
		want string
	}{
		{"both", Record{"name": "王小明", "course_name": "陶藝"}, "陶藝 - 王小明_20240305_143000.docx"},
		{"missing", Record{}, "unknown - unknown_20240305_143000.docx"},
		{"blank", Record{"name": " ", "course_name": "..."}, "unknown - unknown_20240305_143000.docx"},
		{"separators", Record{"name": "A/B", "course_name": `x:y*z?`}, "x_y_z_ - A_B_20240305_143000.docx"},
		{"decomposed", Record{"name": "Jose\u0301", "course_name": "c"}, "c - Jos\u00e9_20240305_143000.docx"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, e.outputName(tt.rec, ".docx", testTime))
		})
	}
}

func TestSanitizeName(t *testing.T) {
	assert.Equal(t, "a_b", sanitizeName("a\tb"))
	assert.Equal(t, "name", sanitizeName(" .name. "))
	assert.Equal(t, "", sanitizeName("  "))
}

func TestAvailablePath(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "out.docx")
	assert.Equal(t, target, availablePath(target))

	writeImage(t, dir, "out.docx")
	assert.Equal(t, filepath.Join(dir, "out_2.docx"), availablePath(target))

	writeImage(t, dir, "out_2.docx")
	assert.Equal(t, filepath.Join(dir, "out_3.docx"), availablePath(target))
}

func TestWithSuffix(t *testing.T) {
	assert.Equal(t, "/a/b_new.odt", withSuffix("/a/b.odt", "_new"))
	assert.Equal(t, "noext_new", withSuffix("noext", "_new"))
}

func TestIsLocked(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"permission", fmt.Errorf("open: %w", fs.ErrPermission), true},
		{"path error", &fs.PathError{Op: "open", Path: "x", Err: fs.ErrPermission}, true},
		{"flattened", errors.New("cannot replace x.docx: access is denied."), true},
		{"sharing violation", errors.New("The process cannot access the file because it is being used by another process."), true},
		{"other", errors.New("disk full"), false},
		{"missing", fs.ErrNotExist, false},
		{"read-only directory", errors.New("cannot create temp file: open /out/x.docx123: permission denied"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isLocked(tt.err))
		})
	}
}

// stubWriter fails the first len(errs) writes with the given errors and
// records every attempted path.
type stubWriter struct {
	errs  []error
	paths []string
}

func (s *stubWriter) write(path string, r io.Reader) error {
	s.paths = append(s.paths, path)
	if len(s.errs) > 0 {
		err := s.errs[0]
		s.errs = s.errs[1:]
		if err != nil {
			return err
		}
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

func TestWrite(t *testing.T) {
	locked := fmt.Errorf("cannot replace: %w", fs.ErrPermission)

	t.Run("plain", func(t *testing.T) {
		e, _ := newTestEngine(t)
		stub := &stubWriter{}
		e.writeFile = stub.write
		target := filepath.Join(t.TempDir(), "out.docx")

		path, err := e.write(target, []byte("data"), e.logger)
		require.NoError(t, err)
		assert.Equal(t, target, path)
		assert.Equal(t, []string{target}, stub.paths)
	})

	t.Run("locked then retried", func(t *testing.T) {
		e, logs := newTestEngine(t)
		stub := &stubWriter{errs: []error{locked}}
		e.writeFile = stub.write
		dir := t.TempDir()
		target := filepath.Join(dir, "out.docx")

		path, err := e.write(target, []byte("data"), e.logger)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "out_new.docx"), path)
		assert.Len(t, stub.paths, 2)
		assert.Contains(t, logs.String(), "is locked")

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "data", string(data))
	})

	t.Run("locked twice", func(t *testing.T) {
		e, _ := newTestEngine(t)
		stub := &stubWriter{errs: []error{locked, locked}}
		e.writeFile = stub.write
		dir := t.TempDir()

		_, err := e.write(filepath.Join(dir, "out.docx"), []byte("data"), e.logger)
		require.Error(t, err)
		assert.True(t, IsOutputLockedError(err))
		var lerr *OutputLockedError
		require.ErrorAs(t, err, &lerr)
		assert.Equal(t, filepath.Join(dir, "out_new.docx"), lerr.RetryPath)
		assert.ErrorIs(t, err, fs.ErrPermission)
		assert.Empty(t, dirEntries(t, dir))
	})

	t.Run("other failure", func(t *testing.T) {
		e, _ := newTestEngine(t)
		stub := &stubWriter{errs: []error{errors.New("disk full")}}
		e.writeFile = stub.write

		_, err := e.write(filepath.Join(t.TempDir(), "out.docx"), []byte("data"), e.logger)
		require.Error(t, err)
		assert.True(t, IsDocumentError(err))
		assert.Len(t, stub.paths, 1, "only lock failures are retried")
	})

	t.Run("read-only directory", func(t *testing.T) {
		e, _ := newTestEngine(t)
		stub := &stubWriter{errs: []error{
			fmt.Errorf("cannot create temp file: %v", fs.ErrPermission),
		}}
		e.writeFile = stub.write

		_, err := e.write(filepath.Join(t.TempDir(), "out.docx"), []byte("data"), e.logger)
		require.Error(t, err)
		assert.True(t, IsDocumentError(err))
		assert.False(t, IsOutputLockedError(err))
		assert.Len(t, stub.paths, 1)
	})

	t.Run("read-only directory on disk", func(t *testing.T) {
		if runtime.GOOS == "windows" || os.Geteuid() == 0 {
			t.Skip("needs POSIX permissions enforced for the current user")
		}
		e, _ := newTestEngine(t)
		dir := t.TempDir()
		require.NoError(t, os.Chmod(dir, 0o555))
		t.Cleanup(func() { _ = os.Chmod(dir, 0o755) })

		_, err := e.write(filepath.Join(dir, "out.docx"), []byte("data"), e.logger)
		require.Error(t, err)
		assert.True(t, IsDocumentError(err))
		assert.Empty(t, dirEntries(t, dir))
	})

	t.Run("shared permissions", func(t *testing.T) {
		if runtime.GOOS == "windows" {
			t.Skip("permissions are left alone on windows")
		}
		e, _ := newTestEngine(t)
		e.writeFile = (&stubWriter{}).write

		path, err := e.write(filepath.Join(t.TempDir(), "out.docx"), []byte("data"), e.logger)
		require.NoError(t, err)
		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, fs.FileMode(0o666), info.Mode().Perm())
	})
}
