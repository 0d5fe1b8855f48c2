package catalog

import (
	"errors"
	"io/fs"

	"github.com/rotisserie/eris"
)

// Kind classifies a data loading failure.
type Kind int

// Failure kinds surfaced by the catalog and the geometry model.
const (
	KindNotFound Kind = iota + 1
	KindParse
	KindGeometry
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not found"
	case KindParse:
		return "parse error"
	case KindGeometry:
		return "geometry error"
	default:
		return "unknown"
	}
}

// DataError wraps a failure reading or decoding a data file.
type DataError struct {
	Kind Kind
	Path string
	Err  error
}

func (e *DataError) Error() string {
	if e.Path == "" {
		return e.Kind.String() + ": " + e.Err.Error()
	}
	return e.Kind.String() + " " + e.Path + ": " + e.Err.Error()
}

func (e *DataError) Unwrap() error {
	return e.Err
}

// NewDataError wraps err with a kind and the file it concerns.
func NewDataError(kind Kind, path string, err error) *DataError {
	return &DataError{Kind: kind, Path: path, Err: err}
}

// readError classifies an os.ReadFile failure. Unreadable files are treated
// the same as missing ones.
func readError(path string, err error) *DataError {
	if errors.Is(err, fs.ErrPermission) {
		return NewDataError(KindNotFound, path, eris.Wrap(err, "catalog: permission denied"))
	}
	return NewDataError(KindNotFound, path, err)
}

// IsNotFound reports whether any error in the chain is a missing data file.
func IsNotFound(err error) bool {
	return hasKind(err, KindNotFound)
}

// IsParse reports whether any error in the chain is malformed content.
func IsParse(err error) bool {
	return hasKind(err, KindParse)
}

// IsGeometry reports whether any error in the chain is an unsupported geometry.
func IsGeometry(err error) bool {
	return hasKind(err, KindGeometry)
}

func hasKind(err error, kind Kind) bool {
	if err == nil {
		return false
	}
	var de *DataError
	if errors.As(err, &de) {
		return de.Kind == kind
	}
	return false
}
