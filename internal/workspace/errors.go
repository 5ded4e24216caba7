package workspace

import (
	"errors"
	"fmt"
)

// ErrNoHomeDir is returned by operations that must resolve the user's
// home directory when none is available.
var ErrNoHomeDir = errors.New("home directory could not be resolved")

// LoadError reports a configuration file that was located but could not
// be used. Absence of a file is never a LoadError; it is reported as a
// nil document.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load configuration from %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Violation is a single schema violation.
type Violation struct {
	// InstancePath locates the offending value within the document,
	// in JSON Pointer form.
	InstancePath string
	Message      string
}

// ValidationError reports a document that failed workspace schema
// validation.
type ValidationError struct {
	Path       string
	Violations []Violation
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s does not match the workspace schema (%d violations)", e.Path, len(e.Violations))
}
