package dataset

import (
	"errors"
	"fmt"
)

var (
	// ErrTooFewRows is returned when the table cannot yield a sample variance.
	ErrTooFewRows = errors.New("need at least 2 data rows")
	// ErrNoFeatures is returned when only the label column is present.
	ErrNoFeatures = errors.New("no feature columns besides the label")
	// ErrBlankLabel is returned when a row has an empty label cell.
	ErrBlankLabel = errors.New("blank label")
)

// LoadError indicates the input file is missing, unreadable or malformed.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load dataset %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// MissingColumnError indicates the configured label column is absent from the header.
type MissingColumnError struct {
	Column    string
	Available []string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("label column %q not found (have %d columns)", e.Column, len(e.Available))
}

// NonNumericError indicates a feature column holds non-numeric or missing cells.
type NonNumericError struct {
	Column string
	Kind   string
}

func (e *NonNumericError) Error() string {
	return fmt.Sprintf("feature column %q is not numeric (%s)", e.Column, e.Kind)
}
