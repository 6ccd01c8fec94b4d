// Package scalar holds the rules shared by the decoder and the encoder for
// turning raw tokens into typed scalars and back.
package scalar

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/KimNorgaard/go-yamlite/internal/lexer"
	"github.com/KimNorgaard/go-yamlite/value"
)

var (
	intPattern   = regexp.MustCompile(`^[-+]?[0-9]+$`)
	floatPattern = regexp.MustCompile(`^[-+]?(\.[0-9]+|[0-9]+(\.[0-9]*)?)([eE][-+]?[0-9]+)?$`)
	infPattern   = regexp.MustCompile(`^([-+]?)\.(inf|Inf|INF)$`)
	nanPattern   = regexp.MustCompile(`^\.(nan|NaN|NAN)$`)
)

// Rules toggles the evaluation of boolean and null literals.
type Rules struct {
	EvaluateBooleans bool
	EvaluateNulls    bool
}

// DefaultRules evaluates both booleans and nulls.
var DefaultRules = Rules{EvaluateBooleans: true, EvaluateNulls: true}

// Coerce maps a raw value token to a typed scalar.
func Coerce(tok string, r Rules) value.Value {
	if r.EvaluateBooleans {
		switch strings.ToLower(tok) {
		case "true":
			return value.Bool(true)
		case "false":
			return value.Bool(false)
		}
	}
	if r.EvaluateNulls && (tok == "~" || tok == "") {
		return value.Null{}
	}
	if intPattern.MatchString(tok) {
		if i, err := strconv.ParseInt(tok, 10, 64); err == nil {
			return value.Int(i)
		}
	}
	if f, ok := parseFloat(tok); ok {
		return value.Float(f)
	}
	return value.String(Unquote(tok))
}

func parseFloat(tok string) (float64, bool) {
	switch {
	case floatPattern.MatchString(tok):
		f, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			// Out of range values come back as ±Inf with an error.
			return f, math.IsInf(f, 0)
		}
		return f, true
	case nanPattern.MatchString(tok):
		return math.NaN(), true
	}
	if m := infPattern.FindStringSubmatch(tok); m != nil {
		if m[1] == "-" {
			return math.Inf(-1), true
		}
		return math.Inf(1), true
	}
	return 0, false
}

// Unquote strips one matching pair of surrounding single or double quotes.
func Unquote(tok string) string {
	if len(tok) >= 2 && (tok[0] == '"' || tok[0] == '\'') && tok[len(tok)-1] == tok[0] {
		return tok[1 : len(tok)-1]
	}
	return tok
}

// FormatFloat returns the shortest text for f that reads back as the same
// float.
func FormatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return ".nan"
	case math.IsInf(f, 1):
		return ".inf"
	case math.IsInf(f, -1):
		return "-.inf"
	}
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s
}

// Format returns the canonical text of a non-string scalar. It reports
// false for strings and containers.
func Format(v value.Value) (string, bool) {
	switch x := v.(type) {
	case nil, value.Null:
		return "~", true
	case value.Bool:
		return strconv.FormatBool(bool(x)), true
	case value.Int:
		return strconv.FormatInt(int64(x), 10), true
	case value.Float:
		return FormatFloat(float64(x)), true
	}
	return "", false
}

// Inline returns a single-line token that decodes back to s: s itself
// when it is unambiguous, otherwise s wrapped in double or single quotes.
// It reports false when no such token exists. Line breaks other than eol
// are ordinary characters.
func Inline(s, eol string) (string, bool) {
	if strings.Contains(s, eol) {
		return "", false
	}
	for _, tok := range []string{s, `"` + s + `"`, `'` + s + `'`} {
		if readsBack(tok, s) {
			return tok, true
		}
	}
	return "", false
}

func readsBack(tok, s string) bool {
	if tok == "" || strings.TrimSpace(tok) != tok {
		return false
	}
	if _, ok := ParseHeader(tok); ok {
		return false
	}
	if stripped, err := lexer.StripComment(tok); err != nil || stripped != tok {
		return false
	}
	v, ok := Coerce(tok, DefaultRules).(value.String)
	return ok && string(v) == s
}
