package errors

import (
	stderrors "errors"
	"fmt"
	"reflect"
)

// Parse-side error kinds. A ParseError wraps exactly one of these.
var (
	ErrMalformedLine     = stderrors.New("malformed line")
	ErrUnexpectedIndent  = stderrors.New("unexpected indentation")
	ErrMixedEntries      = stderrors.New("mapping and sequence entries mixed at one level")
	ErrDuplicateKey      = stderrors.New("duplicate key")
	ErrUnexpectedValue   = stderrors.New("value without key or sequence marker")
	ErrUnterminatedBlock = stderrors.New("unterminated block scalar")
	ErrEmptyDocument     = stderrors.New("empty document")
	ErrMaxDepth          = stderrors.New("maximum nesting depth exceeded")
)

// Serialize-side error kinds. A SerializeError wraps exactly one of these.
var (
	ErrEmptyContainer  = stderrors.New("empty or all-whitespace result")
	ErrInvalidKey      = stderrors.New("invalid key")
	ErrInvalidRoot     = stderrors.New("root value must be a mapping or a sequence")
	ErrUnrepresentable = stderrors.New("string cannot be represented")
	ErrUnsupportedType = stderrors.New("unsupported type")
)

// ErrInvalidOption is returned when an option value is rejected at
// configuration time.
var ErrInvalidOption = stderrors.New("invalid option")

// ErrInvalidFile is returned by the file helpers when a path cannot be
// used as a document.
var ErrInvalidFile = stderrors.New("invalid file")

// ParseError represents an error that occurred while decoding. It is
// always attributed to a single input line.
type ParseError struct {
	// Source names the input, usually a file name. It may be empty.
	Source  string
	Line    int
	Content string
	Err     error
}

func (e *ParseError) Error() string {
	msg := "yamlite: " + e.Err.Error()
	if e.Source != "" {
		msg += fmt.Sprintf(" in file %q", e.Source)
	}
	if e.Line > 0 {
		msg += fmt.Sprintf(" on line %d", e.Line)
	}
	if e.Content != "" {
		msg += fmt.Sprintf(": %q", e.Content)
	}
	return msg
}

func (e *ParseError) Unwrap() error { return e.Err }

// SerializeError represents an error that occurred while encoding. Key is
// the path of the offending entry, e.g. "servers[1].name".
type SerializeError struct {
	Key string
	Err error
}

func (e *SerializeError) Error() string {
	if e.Key == "" {
		return "yamlite: " + e.Err.Error()
	}
	return fmt.Sprintf("yamlite: %s for key %q", e.Err.Error(), e.Key)
}

func (e *SerializeError) Unwrap() error { return e.Err }

// UnmarshalTypeError describes a value that does not fit the Go type it is
// mapped into. Key is the path of the entry, empty for the root.
type UnmarshalTypeError struct {
	Value string
	Type  reflect.Type
	Key   string
}

func (e *UnmarshalTypeError) Error() string {
	msg := "yamlite: cannot unmarshal " + e.Value + " into Go value of type " + e.Type.String()
	if e.Key != "" {
		msg += fmt.Sprintf(" for key %q", e.Key)
	}
	return msg
}

// UnmarshalerError represents an error from a custom unmarshal method.
type UnmarshalerError struct {
	Type reflect.Type
	Err  error
}

func (e *UnmarshalerError) Error() string {
	return "yamlite: error calling unmarshal method for type " + e.Type.String() + ": " + e.Err.Error()
}

func (e *UnmarshalerError) Unwrap() error { return e.Err }
