package formatter

import (
	"fmt"
	"io"
	"regexp"
	"strings"
	"unicode/utf8"

	yerrors "github.com/KimNorgaard/go-yamlite/errors"
	"github.com/KimNorgaard/go-yamlite/internal/scalar"
	"github.com/KimNorgaard/go-yamlite/value"
)

const (
	defaultIndent = 2

	bannerTitle = "# This file has been generated by yamlite"
	bannerLink  = "# https://github.com/KimNorgaard/go-yamlite"
)

var keyPattern = regexp.MustCompile(`^[\w.\-]+$`)

// Config controls a single encode run.
type Config struct {
	Indent int
	EOL    string
	// MaxDepth limits container nesting below the root. Zero means no limit.
	MaxDepth int
}

// Formatter writes a value tree as indentation-structured text.
type Formatter struct {
	w   io.Writer
	cfg Config
}

// New returns a new formatter that writes to w.
func New(w io.Writer, cfg Config) *Formatter {
	if cfg.Indent <= 0 {
		cfg.Indent = defaultIndent
	}
	if cfg.EOL == "" {
		cfg.EOL = "\n"
	}
	return &Formatter{w: w, cfg: cfg}
}

// Format writes the banner followed by v. Nothing is written when v cannot
// be encoded.
func (f *Formatter) Format(v value.Value) error {
	switch v.(type) {
	case *value.Mapping, value.Sequence:
	default:
		return &yerrors.SerializeError{Err: yerrors.ErrInvalidRoot}
	}

	eol := f.cfg.EOL
	var b strings.Builder
	b.WriteString(bannerTitle + eol + bannerLink + eol + eol)
	if _, err := f.compile(&b, v, "", 0); err != nil {
		return err
	}

	_, err := io.WriteString(f.w, b.String())
	return err
}

// state tracks what the previous entry of a container left behind.
type state struct {
	afterContainer bool
	// open is set when the output ends in a keep-chomped block scalar; a
	// blank line written after it would become part of the string.
	open bool
}

// compile appends the entries of container v at the given tier to b. It
// reports whether the output ends in a keep-chomped block scalar.
func (f *Formatter) compile(b *strings.Builder, v value.Value, path string, tier int) (bool, error) {
	if f.cfg.MaxDepth > 0 && tier > f.cfg.MaxDepth {
		return false, &yerrors.SerializeError{Key: path, Err: yerrors.ErrMaxDepth}
	}

	start := b.Len()
	var st state
	indent := strings.Repeat(" ", tier*f.cfg.Indent)

	switch c := v.(type) {
	case *value.Mapping:
		for _, e := range c.Entries() {
			key := joinKey(path, e.Key)
			if !keyPattern.MatchString(e.Key) {
				return false, &yerrors.SerializeError{Key: key, Err: yerrors.ErrInvalidKey}
			}
			if err := f.entry(b, &st, indent, e.Key+":", key, e.Value, tier); err != nil {
				return false, err
			}
		}
	case value.Sequence:
		for i, item := range c {
			if err := f.entry(b, &st, indent, "-", fmt.Sprintf("%s[%d]", path, i), item, tier); err != nil {
				return false, err
			}
		}
	}

	if strings.TrimSpace(b.String()[start:]) == "" {
		return false, &yerrors.SerializeError{Key: path, Err: yerrors.ErrEmptyContainer}
	}
	return st.open, nil
}

func (f *Formatter) entry(b *strings.Builder, st *state, indent, marker, path string, v value.Value, tier int) error {
	eol := f.cfg.EOL

	switch v.(type) {
	case *value.Mapping, value.Sequence:
		b.WriteString(indent + marker + eol)
		open, err := f.compile(b, v, path, tier+1)
		if err != nil {
			return err
		}
		st.afterContainer, st.open = true, open
		return nil
	}

	if st.afterContainer && !st.open {
		b.WriteString(eol)
	}
	st.afterContainer, st.open = false, false

	if text, ok := scalar.Format(v); ok {
		b.WriteString(indent + marker + " " + text + eol)
		return nil
	}

	s, ok := v.(value.String)
	if !ok {
		return &yerrors.SerializeError{Key: path, Err: fmt.Errorf("%w %T", yerrors.ErrUnsupportedType, v)}
	}
	r, err := f.renderString(string(s), indent+strings.Repeat(" ", f.cfg.Indent), path)
	if err != nil {
		return err
	}
	if !r.block {
		b.WriteString(indent + marker + " " + r.inline + eol)
		return nil
	}

	b.WriteString(indent + marker + " " + r.header.String() + eol)
	for _, l := range r.lines {
		b.WriteString(l + eol)
	}
	st.open = r.header.Style == scalar.Literal && r.header.Chomp == scalar.Keep
	return nil
}

// rendered is the chosen representation of a string scalar: either an
// inline token or a block header with its indented content lines.
type rendered struct {
	inline string
	block  bool
	header scalar.Header
	lines  []string
}

// renderString picks the style for s. Every candidate is read back with
// the decoder's rules and only used when it yields s again.
func (f *Formatter) renderString(s, pad, path string) (rendered, error) {
	if strings.Contains(s, f.cfg.EOL) {
		if r, ok := f.literal(s, pad); ok {
			return r, nil
		}
		return rendered{}, &yerrors.SerializeError{Key: path, Err: yerrors.ErrUnrepresentable}
	}

	if utf8.RuneCountInString(s) > scalar.FoldWidth {
		h := scalar.Header{Style: scalar.Folded, Chomp: scalar.Strip}
		if r, ok := f.block(s, h, pad, scalar.Wrap(s, scalar.FoldWidth)); ok {
			return r, nil
		}
	}

	if tok, ok := scalar.Inline(s, f.cfg.EOL); ok {
		return rendered{inline: tok}, nil
	}
	if r, ok := f.literal(s, pad); ok {
		return r, nil
	}
	return rendered{}, &yerrors.SerializeError{Key: path, Err: yerrors.ErrUnrepresentable}
}

func (f *Formatter) literal(s, pad string) (rendered, bool) {
	eol := f.cfg.EOL
	h := scalar.Header{Style: scalar.Literal, Chomp: scalar.Strip}
	body := s
	if strings.HasSuffix(s, eol) {
		body = strings.TrimSuffix(s, eol)
		h.Chomp = scalar.Clip
		if strings.HasSuffix(body, eol) {
			h.Chomp = scalar.Keep
		}
	}
	return f.block(s, h, pad, strings.Split(body, eol))
}

func (f *Formatter) block(s string, h scalar.Header, pad string, text []string) (rendered, bool) {
	lines := make([]string, len(text))
	for i, t := range text {
		if t != "" {
			lines[i] = pad + t
		}
	}
	if scalar.AssembleBlock(lines, h, f.cfg.EOL) != s {
		return rendered{}, false
	}
	return rendered{block: true, header: h, lines: lines}, true
}

func joinKey(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}
