package yamlite

import yerrors "github.com/KimNorgaard/go-yamlite/errors"

type (
	// ParseError is returned by the decode functions.
	ParseError = yerrors.ParseError
	// SerializeError is returned by the encode functions.
	SerializeError = yerrors.SerializeError
	// UnmarshalTypeError is returned by Unmarshal when a value does not
	// fit its Go target.
	UnmarshalTypeError = yerrors.UnmarshalTypeError
	// UnmarshalerError wraps an error returned by an Unmarshaler.
	UnmarshalerError = yerrors.UnmarshalerError
)

// Error kinds, matched with errors.Is.
var (
	ErrMalformedLine     = yerrors.ErrMalformedLine
	ErrUnexpectedIndent  = yerrors.ErrUnexpectedIndent
	ErrMixedEntries      = yerrors.ErrMixedEntries
	ErrDuplicateKey      = yerrors.ErrDuplicateKey
	ErrUnexpectedValue   = yerrors.ErrUnexpectedValue
	ErrUnterminatedBlock = yerrors.ErrUnterminatedBlock
	ErrEmptyDocument     = yerrors.ErrEmptyDocument
	ErrMaxDepth          = yerrors.ErrMaxDepth

	ErrEmptyContainer  = yerrors.ErrEmptyContainer
	ErrInvalidKey      = yerrors.ErrInvalidKey
	ErrInvalidRoot     = yerrors.ErrInvalidRoot
	ErrUnrepresentable = yerrors.ErrUnrepresentable
	ErrUnsupportedType = yerrors.ErrUnsupportedType

	ErrInvalidOption = yerrors.ErrInvalidOption
	ErrInvalidFile   = yerrors.ErrInvalidFile
)
