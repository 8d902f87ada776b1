package converter

import (
	"errors"
	"fmt"
)

// ErrorKind tells callers which stage of a conversion failed.
type ErrorKind int

const (
	KindMissingInput ErrorKind = iota + 1
	KindParseFailure
	KindWriteFailure
)

func (k ErrorKind) String() string {
	switch k {
	case KindMissingInput:
		return "missing input"
	case KindParseFailure:
		return "parse failure"
	case KindWriteFailure:
		return "write failure"
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

var (
	ErrUnsupportedType = errors.New("unsupported file type")
	ErrNoHeader        = errors.New("could not find header row")
	ErrSheetNotFound   = errors.New("sheet not found")
)

// ConversionError is the only error type Convert returns.
type ConversionError struct {
	Kind ErrorKind
	Path string
	Err  error
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Kind, e.Path, e.Err)
}

func (e *ConversionError) Unwrap() error { return e.Err }

// KindOf returns the kind of a conversion error, or 0 if err is not one.
func KindOf(err error) ErrorKind {
	var ce *ConversionError
	if errors.As(err, &ce) {
		return ce.Kind
	}
	return 0
}

func parseErr(path string, err error) error {
	return &ConversionError{Kind: KindParseFailure, Path: path, Err: err}
}

func writeErr(path string, err error) error {
	return &ConversionError{Kind: KindWriteFailure, Path: path, Err: err}
}
