package teacherdoc

import (
	"errors"
	"fmt"
	"strings"
)

// UnsupportedFormatError is returned when a template is neither .docx nor
// .odt. Nothing is read or written.
type UnsupportedFormatError struct {
	Path string
	Ext  string
}

func (e *UnsupportedFormatError) Error() string {
	if e.Ext == "" {
		return fmt.Sprintf("unsupported template format for '%s': no file extension", e.Path)
	}
	return fmt.Sprintf("unsupported template format '%s' for '%s'", e.Ext, e.Path)
}

// NewUnsupportedFormatError creates a new unsupported format error
func NewUnsupportedFormatError(path, ext string) error {
	return &UnsupportedFormatError{Path: path, Ext: ext}
}

// DocumentError represents an error while loading or saving a document
type DocumentError struct {
	Operation string
	Path      string
	Cause     error
}

func (e *DocumentError) Error() string {
	if e.Path != "" && e.Cause != nil {
		return fmt.Sprintf("document error during %s of '%s': %v", e.Operation, e.Path, e.Cause)
	} else if e.Path != "" {
		return fmt.Sprintf("document error during %s of '%s'", e.Operation, e.Path)
	} else if e.Cause != nil {
		return fmt.Sprintf("document error during %s: %v", e.Operation, e.Cause)
	}
	return fmt.Sprintf("document error during %s", e.Operation)
}

func (e *DocumentError) Unwrap() error {
	return e.Cause
}

// NewDocumentError creates a new document error
func NewDocumentError(operation, path string, cause error) error {
	return &DocumentError{
		Operation: operation,
		Path:      path,
		Cause:     cause,
	}
}

// OutputLockedError is returned when the output file was locked and the
// single retry under an alternate name failed as well.
type OutputLockedError struct {
	Path      string
	RetryPath string
	Cause     error
}

func (e *OutputLockedError) Error() string {
	return fmt.Sprintf("output '%s' is locked and retry as '%s' failed: %v", e.Path, e.RetryPath, e.Cause)
}

func (e *OutputLockedError) Unwrap() error {
	return e.Cause
}

// ValidationIssue represents a single validation problem
type ValidationIssue struct {
	Field   string
	Message string
}

// ValidationError represents multiple validation issues
type ValidationError struct {
	Issues []ValidationIssue
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "validation error"
	}

	if len(e.Issues) == 1 {
		return fmt.Sprintf("validation error: %s - %s", e.Issues[0].Field, e.Issues[0].Message)
	}

	var parts []string
	parts = append(parts, fmt.Sprintf("%d validation issues:", len(e.Issues)))
	for _, issue := range e.Issues {
		parts = append(parts, fmt.Sprintf("  %s: %s", issue.Field, issue.Message))
	}
	return strings.Join(parts, "\n")
}

func (e *ValidationError) add(field, message string) {
	e.Issues = append(e.Issues, ValidationIssue{Field: field, Message: message})
}

func (e *ValidationError) err() error {
	if len(e.Issues) == 0 {
		return nil
	}
	return e
}

// IsUnsupportedFormatError checks if an error is an unsupported format error
func IsUnsupportedFormatError(err error) bool {
	var target *UnsupportedFormatError
	return errors.As(err, &target)
}

// IsDocumentError checks if an error is a document error
func IsDocumentError(err error) bool {
	var target *DocumentError
	return errors.As(err, &target)
}

// IsOutputLockedError checks if an error is an output locked error
func IsOutputLockedError(err error) bool {
	var target *OutputLockedError
	return errors.As(err, &target)
}
