package celpaint

import (
	"fmt"
	"strings"
)

// FileError records a frame that could not be written.
type FileError struct {
	Path string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *FileError) Unwrap() error {
	return e.Err
}

// ExportError aggregates every frame that failed during Sequence.Save.
type ExportError struct {
	Failed []*FileError
}

// Paths returns the output paths that could not be written, in frame order.
func (e *ExportError) Paths() []string {
	paths := make([]string, len(e.Failed))
	for i, f := range e.Failed {
		paths[i] = f.Path
	}
	return paths
}

func (e *ExportError) Error() string {
	if len(e.Failed) == 1 {
		return "celpaint: export failed: " + e.Failed[0].Error()
	}
	msgs := make([]string, len(e.Failed))
	for i, f := range e.Failed {
		msgs[i] = f.Error()
	}
	return fmt.Sprintf("celpaint: export failed for %d frames: %s", len(e.Failed), strings.Join(msgs, "; "))
}

// Unwrap returns the per-file errors so errors.Is and errors.As see them.
func (e *ExportError) Unwrap() []error {
	errs := make([]error, len(e.Failed))
	for i, f := range e.Failed {
		errs[i] = f
	}
	return errs
}
