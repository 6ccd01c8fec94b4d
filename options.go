package yamlite

import (
	"fmt"
	"log/slog"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"

	yerrors "github.com/KimNorgaard/go-yamlite/errors"
	"github.com/KimNorgaard/go-yamlite/internal/scalar"
)

const (
	defaultIndent   = 2
	defaultMaxDepth = 1000
	minIndent       = 2
	maxIndent       = 8
)

// Option configures a Codec.
type Option func(*options) error

type options struct {
	indent   int
	eol      string
	rules    scalar.Rules
	encoding encoding.Encoding
	charset  string
	maxDepth int
	logger   *slog.Logger
}

func defaultOptions() options {
	return options{
		indent:   defaultIndent,
		eol:      platformEOL,
		rules:    scalar.DefaultRules,
		maxDepth: defaultMaxDepth,
		logger:   slog.New(slog.DiscardHandler),
	}
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("yamlite: %w: "+format, append([]any{yerrors.ErrInvalidOption}, args...)...)
}

// Indent sets the number of spaces per nesting level in encoded output.
// n must be between 2 and 8.
func Indent(n int) Option {
	return func(o *options) error {
		if n < minIndent || n > maxIndent {
			return invalid("indent must be between %d and %d, got %d", minIndent, maxIndent, n)
		}
		o.indent = n
		return nil
	}
}

// EOL sets the line terminator used to split input and to end output
// lines. Only "\n" and "\r\n" are accepted.
func EOL(eol string) Option {
	return func(o *options) error {
		if eol != "\n" && eol != "\r\n" {
			return invalid("end of line must be \"\\n\" or \"\\r\\n\", got %q", eol)
		}
		o.eol = eol
		return nil
	}
}

// EvaluateBooleans controls whether true and false decode as booleans.
// When disabled they decode as strings.
func EvaluateBooleans(on bool) Option {
	return func(o *options) error {
		o.rules.EvaluateBooleans = on
		return nil
	}
}

// EvaluateNulls controls whether ~ and empty values decode as null. When
// disabled they decode as strings.
func EvaluateNulls(on bool) Option {
	return func(o *options) error {
		o.rules.EvaluateNulls = on
		return nil
	}
}

// TextEncoding sets the character encoding of the encoded text by its
// IANA name, e.g. "ISO-8859-1" or "windows-1252". Input is converted to
// UTF-8 before decoding and output is converted from UTF-8 after encoding.
func TextEncoding(name string) Option {
	return func(o *options) error {
		enc, err := ianaindex.IANA.Encoding(name)
		if err != nil {
			return invalid("unknown text encoding %q", name)
		}
		if enc == nil {
			return invalid("unsupported text encoding %q", name)
		}
		o.encoding = enc
		o.charset = name
		return nil
	}
}

// MaxDepth sets the maximum container nesting below the root, for both
// decoding and encoding. This guards against stack exhaustion on hostile
// input.
//
// The depth n must be a positive integer.
func MaxDepth(n int) Option {
	return func(o *options) error {
		if n <= 0 {
			return invalid("max depth must be a positive integer, got %d", n)
		}
		o.maxDepth = n
		return nil
	}
}

// Logger sets the logger that receives debug output about the structure
// being decoded. The default logger discards everything.
func Logger(l *slog.Logger) Option {
	return func(o *options) error {
		if l == nil {
			return invalid("logger must not be nil")
		}
		o.logger = l
		return nil
	}
}
