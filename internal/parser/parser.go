// Package parser rebuilds a value tree from indentation-structured lines.
package parser

import (
	"fmt"
	"log/slog"
	"strings"

	yerrors "github.com/KimNorgaard/go-yamlite/errors"
	"github.com/KimNorgaard/go-yamlite/internal/lexer"
	"github.com/KimNorgaard/go-yamlite/internal/scalar"
	"github.com/KimNorgaard/go-yamlite/internal/token"
	"github.com/KimNorgaard/go-yamlite/value"
)

// Config controls a single parse. It is read-only during the run.
type Config struct {
	EOL   string
	Rules scalar.Rules
	// MaxDepth limits container nesting below the root. Zero means no limit.
	MaxDepth int
	Logger   *slog.Logger
}

type frameKind int

const (
	undecided frameKind = iota
	mappingFrame
	sequenceFrame
)

// frame is one container under construction.
type frame struct {
	owner  int // indent of the opening line, -1 for the root
	indent int // indent of the frame's entries, -1 until the first one
	// flat is set for a sequence whose dashes sit at the indent of the key
	// that opened it.
	flat bool
	kind   frameKind
	key    string // key in the parent mapping
	line   token.Line

	entries []value.Entry
	seen    map[string]struct{}
	items   value.Sequence
}

func (f *frame) add(key string, v value.Value) {
	if f.kind == mappingFrame {
		f.entries = append(f.entries, value.Pair(key, v))
		return
	}
	f.items = append(f.items, v)
}

func (f *frame) value(r scalar.Rules) value.Value {
	switch f.kind {
	case mappingFrame:
		return value.MustMapping(f.entries...)
	case sequenceFrame:
		return f.items
	}
	return scalar.Coerce("", r)
}

// block collects the content lines of a block scalar.
type block struct {
	header scalar.Header
	anchor int
	indent int // content indent, -1 until the first non-blank line
	line   token.Line
	frame  *frame
	key    string
	lines  []string
}

type builder struct {
	cfg   Config
	log   *slog.Logger
	stack []*frame
	block *block
}

// Parse decodes src into a value. The root of the result is always a
// *value.Mapping or a value.Sequence.
func Parse(src string, cfg Config) (value.Value, error) {
	b := &builder{
		cfg:   cfg,
		log:   cfg.Logger,
		stack: []*frame{{owner: -1, indent: -1, seen: map[string]struct{}{}}},
	}
	if b.log == nil {
		b.log = slog.New(slog.DiscardHandler)
	}

	lines := lexer.SplitLines(src, cfg.EOL)
	for i, raw := range lines {
		if err := b.feed(i+1, raw); err != nil {
			return nil, err
		}
	}
	return b.finish(len(lines))
}

func (b *builder) top() *frame {
	return b.stack[len(b.stack)-1]
}

func (b *builder) feed(num int, raw string) error {
	if b.block != nil {
		if lexer.IsBlank(raw) || lexer.Indent(raw) > b.block.anchor {
			return b.collect(num, raw)
		}
		if err := b.closeBlock(); err != nil {
			return err
		}
	}

	l, err := lexer.Tokenize(num, raw)
	if err != nil {
		return lineError(l, err)
	}
	if l.Kind == token.Blank || l.Kind == token.Comment {
		return nil
	}
	return b.structure(l)
}

func (b *builder) structure(l token.Line) error {
	for len(b.stack) > 1 && b.closes(l) {
		b.pop()
	}

	f := b.top()
	if f.indent < 0 {
		f.indent = l.Indent
		f.flat = l.Indent == f.owner
	} else if l.Indent != f.indent {
		return lineError(l, yerrors.ErrUnexpectedIndent)
	}

	switch {
	case l.Kind == token.Pair:
		if err := claim(f, mappingFrame, l); err != nil {
			return err
		}
		if _, dup := f.seen[l.Key]; dup {
			return lineError(l, fmt.Errorf("%w %q", yerrors.ErrDuplicateKey, l.Key))
		}
		f.seen[l.Key] = struct{}{}
		return b.entry(f, l, l.Key, l.Value)
	case l.IsDash():
		if err := claim(f, sequenceFrame, l); err != nil {
			return err
		}
		return b.entry(f, l, "", strings.TrimSpace(l.Value[1:]))
	}
	return lineError(l, yerrors.ErrUnexpectedValue)
}

// closes reports whether l ends the innermost open container. A dash
// line at the indent of the key that opened the container belongs to it.
func (b *builder) closes(l token.Line) bool {
	f := b.top()
	if l.Indent != f.owner {
		return l.Indent < f.owner
	}
	if !l.IsDash() || f.line.Kind != token.Pair {
		return true
	}
	return f.indent >= 0 && !f.flat
}

// claim fixes the kind of f on its first entry and rejects a different
// shape afterwards.
func claim(f *frame, kind frameKind, l token.Line) error {
	if f.kind == undecided {
		f.kind = kind
		return nil
	}
	if f.kind != kind {
		return lineError(l, yerrors.ErrMixedEntries)
	}
	return nil
}

func (b *builder) entry(f *frame, l token.Line, key, val string) error {
	if val == "" {
		return b.push(l, key)
	}
	if h, ok := scalar.ParseHeader(val); ok {
		b.log.Debug("block scalar", "line", l.Num, "key", key, "header", h.String())
		b.block = &block{header: h, anchor: l.Indent, indent: -1, line: l, frame: f, key: key}
		return nil
	}
	f.add(key, scalar.Coerce(val, b.cfg.Rules))
	return nil
}

func (b *builder) push(l token.Line, key string) error {
	if b.cfg.MaxDepth > 0 && len(b.stack) > b.cfg.MaxDepth {
		return lineError(l, yerrors.ErrMaxDepth)
	}
	b.log.Debug("open container", "line", l.Num, "key", key, "depth", len(b.stack))
	b.stack = append(b.stack, &frame{
		owner:  l.Indent,
		indent: -1,
		key:    key,
		line:   l,
		seen:   map[string]struct{}{},
	})
	return nil
}

func (b *builder) pop() {
	f := b.top()
	b.stack = b.stack[:len(b.stack)-1]
	b.log.Debug("close container", "line", f.line.Num, "key", f.key)
	b.top().add(f.key, f.value(b.cfg.Rules))
}

func (b *builder) collect(num int, raw string) error {
	bl := b.block
	if !lexer.IsBlank(raw) {
		n := lexer.Indent(raw)
		switch {
		case bl.indent < 0:
			bl.indent = n
		case n < bl.indent:
			return &yerrors.ParseError{Line: num, Content: raw, Err: yerrors.ErrUnexpectedIndent}
		}
	}
	bl.lines = append(bl.lines, raw)
	return nil
}

func (b *builder) closeBlock() error {
	bl := b.block
	b.block = nil
	if bl.indent < 0 {
		return lineError(bl.line, yerrors.ErrUnterminatedBlock)
	}
	bl.frame.add(bl.key, value.String(scalar.AssembleBlock(bl.lines, bl.header, b.cfg.EOL)))
	return nil
}

func (b *builder) finish(lines int) (value.Value, error) {
	if b.block != nil {
		if err := b.closeBlock(); err != nil {
			return nil, err
		}
	}
	for len(b.stack) > 1 {
		b.pop()
	}

	root := b.stack[0]
	if root.kind == undecided {
		return nil, &yerrors.ParseError{Line: lines, Err: yerrors.ErrEmptyDocument}
	}
	return root.value(b.cfg.Rules), nil
}

func lineError(l token.Line, err error) error {
	return &yerrors.ParseError{Line: l.Num, Content: l.Raw, Err: err}
}
