package yamlite

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/KimNorgaard/go-yamlite/internal/formatter"
	"github.com/KimNorgaard/go-yamlite/internal/mapper"
	"github.com/KimNorgaard/go-yamlite/internal/marshaler"
	"github.com/KimNorgaard/go-yamlite/internal/parser"
	"github.com/KimNorgaard/go-yamlite/value"
)

// Marshaler is the interface implemented by types that can build their
// own value tree.
type Marshaler = marshaler.Marshaler

// Unmarshaler is the interface implemented by types that can read
// themselves from a decoded value tree.
type Unmarshaler = mapper.Unmarshaler

// Codec decodes and encodes yamlite text with a fixed configuration. It
// is immutable and safe for concurrent use.
type Codec struct {
	opts options
}

// New returns a Codec configured by opts. Every option is validated here;
// an invalid option is reported immediately, wrapping ErrInvalidOption.
func New(opts ...Option) (*Codec, error) {
	o := defaultOptions()
	for _, opt := range opts {
		if err := opt(&o); err != nil {
			return nil, err
		}
	}
	return &Codec{opts: o}, nil
}

// Decode parses data into a value tree. The root of a valid document is
// always a *value.Mapping or a value.Sequence.
//
// Errors are of type *ParseError and name the offending line.
func (c *Codec) Decode(data []byte) (value.Value, error) {
	src, err := c.toUTF8(data)
	if err != nil {
		return nil, err
	}

	c.opts.logger.Debug("decode", slog.Int("bytes", len(data)), slog.String("encoding", c.charset()))
	return parser.Parse(string(src), parser.Config{
		EOL:      c.opts.eol,
		Rules:    c.opts.rules,
		MaxDepth: c.opts.maxDepth,
		Logger:   c.opts.logger,
	})
}

// DecodeReader reads r to EOF and decodes the result.
func (c *Codec) DecodeReader(r io.Reader) (value.Value, error) {
	if r == nil {
		return nil, errors.New("yamlite: DecodeReader(nil reader)")
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return c.Decode(data)
}

// Encode renders v as text: a generator banner, a blank line and the
// entries of v. The root must be a *value.Mapping or a value.Sequence.
//
// Errors are of type *SerializeError and name the offending key path.
func (c *Codec) Encode(v value.Value) ([]byte, error) {
	var buf bytes.Buffer
	if err := c.EncodeTo(&buf, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// EncodeTo writes the encoding of v to w. Nothing is written when v
// cannot be encoded.
func (c *Codec) EncodeTo(w io.Writer, v value.Value) error {
	var buf bytes.Buffer
	f := formatter.New(&buf, formatter.Config{
		Indent:   c.opts.indent,
		EOL:      c.opts.eol,
		MaxDepth: c.opts.maxDepth,
	})
	if err := f.Format(v); err != nil {
		return err
	}

	out, err := c.fromUTF8(buf.Bytes())
	if err != nil {
		return err
	}
	c.opts.logger.Debug("encode", slog.Int("bytes", len(out)), slog.String("encoding", c.charset()))
	_, err = w.Write(out)
	return err
}

// Marshal converts v into a value tree and encodes it. Structs become
// mappings in field order, maps become mappings sorted by key, and slices
// and arrays become sequences. Field names can be changed with a
// `yamlite:"name,omitempty"` tag; a tag of "-" skips the field.
func (c *Codec) Marshal(v any) ([]byte, error) {
	tree, err := marshaler.Marshal(v, c.opts.maxDepth)
	if err != nil {
		return nil, err
	}
	return c.Encode(tree)
}

// Unmarshal decodes data and stores the result in the value pointed to
// by out. Mappings fill structs and string-keyed maps, sequences fill
// slices and arrays, and interface{} targets receive the plain Go form
// of the tree (see value.ToGo). Unknown struct keys are ignored.
func (c *Codec) Unmarshal(data []byte, out any) error {
	tree, err := c.Decode(data)
	if err != nil {
		return err
	}
	return mapper.Map(tree, out, c.opts.maxDepth+1)
}

func (c *Codec) charset() string {
	if c.opts.charset == "" {
		return "UTF-8"
	}
	return c.opts.charset
}

func (c *Codec) toUTF8(data []byte) ([]byte, error) {
	if c.opts.encoding == nil {
		return data, nil
	}
	out, err := c.opts.encoding.NewDecoder().Bytes(data)
	if err != nil {
		return nil, fmt.Errorf("yamlite: decoding %s input: %w", c.opts.charset, err)
	}
	return out, nil
}

func (c *Codec) fromUTF8(data []byte) ([]byte, error) {
	if c.opts.encoding == nil {
		return data, nil
	}
	out, err := c.opts.encoding.NewEncoder().Bytes(data)
	if err != nil {
		return nil, fmt.Errorf("yamlite: encoding output as %s: %w", c.opts.charset, err)
	}
	return out, nil
}

var defaultCodec, _ = New()

// Decode parses data with the default options, or with opts applied.
func Decode(data []byte, opts ...Option) (value.Value, error) {
	c, err := codecFor(opts)
	if err != nil {
		return nil, err
	}
	return c.Decode(data)
}

// Encode renders v with the default options, or with opts applied.
func Encode(v value.Value, opts ...Option) ([]byte, error) {
	c, err := codecFor(opts)
	if err != nil {
		return nil, err
	}
	return c.Encode(v)
}

// Marshal returns the encoding of the Go value v. See Codec.Marshal.
func Marshal(v any, opts ...Option) ([]byte, error) {
	c, err := codecFor(opts)
	if err != nil {
		return nil, err
	}
	return c.Marshal(v)
}

// Unmarshal decodes data into the value pointed to by out. See
// Codec.Unmarshal.
func Unmarshal(data []byte, out any, opts ...Option) error {
	c, err := codecFor(opts)
	if err != nil {
		return err
	}
	return c.Unmarshal(data, out)
}

func codecFor(opts []Option) (*Codec, error) {
	if len(opts) == 0 {
		return defaultCodec, nil
	}
	return New(opts...)
}
