package teacherdoc

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"
)

// outputName builds "<course_name> - <name>_<date><ext>".
func (e *Engine) outputName(rec Record, ext string, now time.Time) string {
	course := sanitizeName(rec.Text("course_name"))
	if course == "" {
		course = "unknown"
	}
	name := sanitizeName(rec.Text("name"))
	if name == "" {
		name = "unknown"
	}
	return fmt.Sprintf("%s - %s_%s%s", course, name, now.Format(e.config.DateLayout), ext)
}

// sanitizeName makes s usable as part of a file name on common file
// systems. The result is NFC normalised so the same name typed on different
// systems maps to one file.
func sanitizeName(s string) string {
	s = norm.NFC.String(strings.TrimSpace(s))
	s = strings.Map(func(r rune) rune {
		switch {
		case r < 0x20 || r == 0x7f:
			return '_'
		case strings.ContainsRune(`<>:"/\|?*`, r):
			return '_'
		}
		return r
	}, s)
	return strings.Trim(s, ". ")
}

// availablePath returns path when nothing exists there, otherwise the first
// free path with a _<n> counter before the extension.
func availablePath(path string) string {
	if _, err := os.Lstat(path); errors.Is(err, fs.ErrNotExist) {
		return path
	}
	ext := filepath.Ext(path)
	stem := strings.TrimSuffix(path, ext)
	for n := 2; ; n++ {
		candidate := fmt.Sprintf("%s_%d%s", stem, n, ext)
		if _, err := os.Lstat(candidate); errors.Is(err, fs.ErrNotExist) {
			return candidate
		}
	}
}

func withSuffix(path, suffix string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + suffix + ext
}

// write saves data at target. A locked target is retried once under a _new
// name; a second failure is an OutputLockedError. Permissions are opened up
// afterwards on POSIX systems.
func (e *Engine) write(target string, data []byte, log *Logger) (string, error) {
	target = availablePath(target)
	err := e.writeFile(target, bytes.NewReader(data))
	if err == nil {
		e.normalizePermissions(target, log)
		return target, nil
	}
	if !isLocked(err) {
		return "", NewDocumentError("save", target, err)
	}

	retry := availablePath(withSuffix(target, "_new"))
	log.Warn("output %s is locked, retrying as %s: %v", filepath.Base(target), filepath.Base(retry), err)
	if err := e.writeFile(retry, bytes.NewReader(data)); err != nil {
		return "", &OutputLockedError{Path: target, RetryPath: retry, Cause: err}
	}
	e.normalizePermissions(retry, log)
	return retry, nil
}

func (e *Engine) normalizePermissions(path string, log *Logger) {
	if err := setSharedPermissions(path); err != nil {
		log.Warn("failed to set permissions on %s: %v", path, err)
	}
}

// lockMessages match lock failures whose cause was flattened into text by
// a wrapping library.
var lockMessages = []string{
	"permission denied",
	"access is denied",
	"being used by another process",
	"locked a portion of the file",
	"device or resource busy",
	"text file busy",
}

// createFailure is how atomic.WriteFile reports that the temporary file
// next to the target could not be created, as in a read-only directory.
const createFailure = "cannot create temp file"

// isLocked reports whether err means the target could not be written
// because it is in use or not writable. Failures to create a file in the
// output directory are not locks.
func isLocked(err error) bool {
	if strings.Contains(err.Error(), createFailure) {
		return false
	}
	if errors.Is(err, fs.ErrPermission) || isPlatformLock(err) {
		return true
	}
	msg := strings.ToLower(err.Error())
	for _, m := range lockMessages {
		if strings.Contains(msg, m) {
			return true
		}
	}
	return false
}
