package scalar

import (
	"strings"
	"unicode/utf8"

	"github.com/KimNorgaard/go-yamlite/internal/lexer"
)

// FoldWidth is the column limit for strings emitted in folded style.
const FoldWidth = 75

// Style of a block scalar.
type Style int

const (
	Literal Style = iota // |
	Folded               // >
)

// Chomp controls what happens to the final line breaks of a block scalar.
type Chomp int

const (
	Clip  Chomp = iota // keep a single final line break
	Strip              // drop final line breaks
	Keep               // keep every final line break
)

// Header is the indicator that introduces a block scalar.
type Header struct {
	Style Style
	Chomp Chomp
}

var headers = map[string]Header{
	"|":  {Literal, Clip},
	"|-": {Literal, Strip},
	"|+": {Literal, Keep},
	">":  {Folded, Strip},
	">-": {Folded, Strip},
}

// ParseHeader reports whether tok introduces a block scalar.
func ParseHeader(tok string) (Header, bool) {
	h, ok := headers[tok]
	return h, ok
}

func (h Header) String() string {
	if h.Style == Folded {
		return ">"
	}
	switch h.Chomp {
	case Strip:
		return "|-"
	case Keep:
		return "|+"
	}
	return "|"
}

// ContentIndent returns the indentation of the first non-blank line.
func ContentIndent(lines []string) int {
	for _, l := range lines {
		if !lexer.IsBlank(l) {
			return lexer.Indent(l)
		}
	}
	return 0
}

// AssembleBlock builds the string held by a block scalar from its raw
// content lines. The content indentation is taken from the first non-blank
// line and removed from every line.
func AssembleBlock(lines []string, h Header, eol string) string {
	indent := ContentIndent(lines)
	text := make([]string, len(lines))
	for i, l := range lines {
		text[i] = l[min(lexer.Indent(l), indent):]
	}

	end := len(text)
	for end > 0 && lexer.IsBlank(text[end-1]) {
		end--
	}
	body, trailing := text[:end], len(text)-end

	if h.Style == Folded {
		return fold(body, eol)
	}

	s := strings.Join(body, eol)
	switch h.Chomp {
	case Strip:
		return s
	case Keep:
		if len(body) == 0 {
			return strings.Repeat(eol, trailing)
		}
		return s + eol + strings.Repeat(eol, trailing)
	}
	if len(body) == 0 {
		return ""
	}
	return s + eol
}

// fold joins lines with single spaces; every blank line becomes one line
// break.
func fold(lines []string, eol string) string {
	var b strings.Builder
	open := false
	for _, l := range lines {
		if lexer.IsBlank(l) {
			b.WriteString(eol)
			open = false
			continue
		}
		if open {
			b.WriteByte(' ')
		}
		b.WriteString(l)
		open = true
	}
	return b.String()
}

// Wrap breaks s at single spaces into lines of at most width characters.
// Words longer than width are kept whole on their own line.
func Wrap(s string, width int) []string {
	words := strings.Split(s, " ")
	lines := make([]string, 0, utf8.RuneCountInString(s)/width+1)
	cur := words[0]
	curLen := utf8.RuneCountInString(cur)
	for _, w := range words[1:] {
		n := utf8.RuneCountInString(w)
		if curLen+1+n <= width {
			cur += " " + w
			curLen += 1 + n
			continue
		}
		lines = append(lines, cur)
		cur, curLen = w, n
	}
	return append(lines, cur)
}
