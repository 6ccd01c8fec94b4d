package lexer

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	yerrors "github.com/KimNorgaard/go-yamlite/errors"
	"github.com/KimNorgaard/go-yamlite/internal/token"
)

// keyPattern matches an identifier-like key followed by its colon.
var keyPattern = regexp.MustCompile(`^[\w.\-]+:`)

// SplitLines splits src on eol. A trailing eol terminates the last line
// and does not start another one.
func SplitLines(src, eol string) []string {
	lines := strings.Split(src, eol)
	if len(lines) > 1 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// Indent returns the number of leading space characters of raw.
func Indent(raw string) int {
	n := 0
	for n < len(raw) && raw[n] == ' ' {
		n++
	}
	return n
}

// IsBlank reports whether raw is empty or whitespace only.
func IsBlank(raw string) bool {
	return strings.TrimSpace(raw) == ""
}

// Tokenize classifies one raw line. num is the 1-based line number.
func Tokenize(num int, raw string) (token.Line, error) {
	l := token.Line{
		Raw:    raw,
		Num:    num,
		Len:    utf8.RuneCountInString(raw),
		Indent: Indent(raw),
	}

	if IsBlank(raw) {
		l.Kind = token.Blank
		return l, nil
	}

	if r, _ := utf8.DecodeRuneInString(raw[l.Indent:]); unicode.IsSpace(r) {
		if r == '\t' {
			return l, fmt.Errorf("%w: line is indented by a tab character", yerrors.ErrMalformedLine)
		}
		return l, fmt.Errorf("%w: indentation must use spaces only", yerrors.ErrMalformedLine)
	}

	text := strings.TrimSpace(raw)
	if text[0] == '#' {
		l.Kind = token.Comment
		return l, nil
	}

	text, err := StripComment(text)
	if err != nil {
		return l, err
	}
	text = strings.TrimSpace(text)

	if loc := keyPattern.FindStringIndex(text); loc != nil {
		l.Kind = token.Pair
		l.Key = text[:loc[1]-1]
		l.Value = strings.TrimSpace(text[loc[1]:])
		return l, nil
	}

	l.Kind = token.Bare
	l.Value = text
	return l, nil
}

// StripComment removes a trailing comment from s. The comment starts at
// the first '#' that is not inside a matched pair of single or double
// quotes. A '#' inside a quote that is never closed is ambiguous and
// reported as a malformed line.
func StripComment(s string) (string, error) {
	var quote byte
	hashInQuote := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
				hashInQuote = false
			} else if c == '#' {
				hashInQuote = true
			}
		case c == '\'' || c == '"':
			quote = c
		case c == '#':
			return strings.TrimRightFunc(s[:i], unicode.IsSpace), nil
		}
	}
	if quote != 0 && hashInQuote {
		return "", fmt.Errorf("%w: unterminated quote before comment", yerrors.ErrMalformedLine)
	}
	return s, nil
}
