package formatter_test

import (
	"bytes"
	"strings"
	"testing"

	yerrors "github.com/KimNorgaard/go-yamlite/errors"
	"github.com/KimNorgaard/go-yamlite/internal/formatter"
	"github.com/KimNorgaard/go-yamlite/value"
	"github.com/stretchr/testify/require"
)

const banner = "# This file has been generated by yamlite\n# https://github.com/KimNorgaard/go-yamlite\n\n"

func format(t *testing.T, v value.Value, cfg formatter.Config) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, formatter.New(&buf, cfg).Format(v))
	return buf.String()
}

func TestFormat(t *testing.T) {
	testCases := []struct {
		name     string
		node     value.Value
		cfg      formatter.Config
		expected string
	}{
		{
			name: "mapping with nested containers",
			node: value.MustMapping(
				value.Pair("name", value.String("demo")),
				value.Pair("db", value.MustMapping(
					value.Pair("host", value.String("localhost")),
					value.Pair("port", value.Int(5432)),
				)),
				value.Pair("debug", value.Bool(false)),
				value.Pair("tags", value.Sequence{value.String("a"), value.Null{}}),
				value.Pair("ratio", value.Float(1)),
			),
			expected: "name: demo\n" +
				"db:\n" +
				"  host: localhost\n" +
				"  port: 5432\n" +
				"\n" +
				"debug: false\n" +
				"tags:\n" +
				"  - a\n" +
				"  - ~\n" +
				"\n" +
				"ratio: 1.0\n",
		},
		{
			name: "root sequence with indent 4",
			node: value.Sequence{
				value.MustMapping(value.Pair("a", value.Int(1))),
				value.Sequence{value.String("x")},
				value.String("tail"),
			},
			cfg: formatter.Config{Indent: 4},
			expected: "-\n" +
				"    a: 1\n" +
				"-\n" +
				"    - x\n" +
				"\n" +
				"- tail\n",
		},
		{
			name:     "strings that need quotes",
			node:     value.MustMapping(value.Pair("s", value.String("true")), value.Pair("e", value.String("")), value.Pair("h", value.String("a # b"))),
			expected: "s: \"true\"\ne: \"\"\nh: \"a # b\"\n",
		},
		{
			name:     "literal clip",
			node:     value.MustMapping(value.Pair("text", value.String("a\nb\n"))),
			expected: "text: |\n  a\n  b\n",
		},
		{
			name:     "literal strip",
			node:     value.MustMapping(value.Pair("text", value.String("a\n\nb"))),
			expected: "text: |-\n  a\n\n  b\n",
		},
		{
			name:     "literal keep",
			node:     value.MustMapping(value.Pair("text", value.String("a\n\n"))),
			expected: "text: |+\n  a\n\n",
		},
		{
			name: "no separator after keep block",
			node: value.MustMapping(
				value.Pair("outer", value.MustMapping(value.Pair("k", value.String("a\n\n")))),
				value.Pair("next", value.Int(1)),
			),
			expected: "outer:\n  k: |+\n    a\n\nnext: 1\n",
		},
		{
			name:     "literal in sequence",
			node:     value.Sequence{value.String("one\ntwo")},
			expected: "- |-\n  one\n  two\n",
		},
		{
			name:     "unquotable short string falls back to literal",
			node:     value.MustMapping(value.Pair("odd", value.String(`#"'#`))),
			expected: "odd: |-\n  #\"'#\n",
		},
		{
			name:     "crlf",
			node:     value.MustMapping(value.Pair("a", value.Int(1)), value.Pair("t", value.String("x\r\ny"))),
			cfg:      formatter.Config{EOL: "\r\n"},
			expected: "a: 1\r\nt: |-\r\n  x\r\n  y\r\n",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			expected := tc.expected
			if tc.cfg.EOL == "\r\n" {
				expected = strings.ReplaceAll(banner, "\n", "\r\n") + expected
			} else {
				expected = banner + expected
			}
			require.Equal(t, expected, format(t, tc.node, tc.cfg))
		})
	}
}

func TestFormatFoldBoundary(t *testing.T) {
	s75 := strings.Repeat("a", 75)
	require.Equal(t, banner+"key: "+s75+"\n", format(t, value.MustMapping(value.Pair("key", value.String(s75))), formatter.Config{}))

	s76 := strings.Repeat("a", 76)
	require.Equal(t, banner+"key: >\n  "+s76+"\n", format(t, value.MustMapping(value.Pair("key", value.String(s76))), formatter.Config{}))
}

func TestFormatFoldsLongText(t *testing.T) {
	s := strings.TrimSuffix(strings.Repeat("word ", 20), " ")
	line1 := strings.TrimSuffix(strings.Repeat("word ", 15), " ")
	line2 := strings.TrimSuffix(strings.Repeat("word ", 5), " ")

	actual := format(t, value.MustMapping(value.Pair("text", value.String(s))), formatter.Config{})
	require.Equal(t, banner+"text: >\n  "+line1+"\n  "+line2+"\n", actual)
}

func TestFormatUnfoldableLongTextIsQuoted(t *testing.T) {
	s := " " + strings.Repeat("a", 80)
	actual := format(t, value.MustMapping(value.Pair("text", value.String(s))), formatter.Config{})
	require.Equal(t, banner+"text: \""+s+"\"\n", actual)
}

func TestFormatDeepNesting(t *testing.T) {
	const depth = 900
	var v value.Value = value.Sequence{value.String("leaf")}
	for range depth {
		v = value.MustMapping(value.Pair("k", v), value.Pair("n", value.Int(1)))
	}

	out := format(t, v, formatter.Config{})
	lines := strings.Split(strings.TrimSuffix(strings.TrimPrefix(out, banner), "\n"), "\n")

	// Each level writes its key, a separator and its scalar sibling.
	require.Len(t, lines, depth*3+1)
	require.Equal(t, "k:", lines[0])
	require.Equal(t, strings.Repeat(" ", depth*2)+"- leaf", lines[depth])
	require.Equal(t, "", lines[depth+1])
	require.Equal(t, strings.Repeat(" ", (depth-1)*2)+"n: 1", lines[depth+2])
	require.Equal(t, "n: 1", lines[len(lines)-1])
}

func TestFormatErrors(t *testing.T) {
	testCases := []struct {
		name    string
		node    value.Value
		cfg     formatter.Config
		err     error
		message string
	}{
		{
			name:    "empty nested sequence",
			node:    value.MustMapping(value.Pair("servers", value.Sequence{})),
			err:     yerrors.ErrEmptyContainer,
			message: `yamlite: empty or all-whitespace result for key "servers"`,
		},
		{
			name:    "empty root",
			node:    value.MustMapping(),
			err:     yerrors.ErrEmptyContainer,
			message: "yamlite: empty or all-whitespace result",
		},
		{
			name:    "deep empty mapping",
			node:    value.MustMapping(value.Pair("a", value.Sequence{value.MustMapping(value.Pair("b", value.MustMapping()))})),
			err:     yerrors.ErrEmptyContainer,
			message: `yamlite: empty or all-whitespace result for key "a[0].b"`,
		},
		{
			name:    "invalid key",
			node:    value.MustMapping(value.Pair("bad key", value.Int(1))),
			err:     yerrors.ErrInvalidKey,
			message: `yamlite: invalid key for key "bad key"`,
		},
		{
			name: "scalar root",
			node: value.String("x"),
			err:  yerrors.ErrInvalidRoot,
		},
		{
			name: "unrepresentable multi-line string",
			node: value.MustMapping(value.Pair("s", value.String("  lead\nx"))),
			err:  yerrors.ErrUnrepresentable,
		},
		{
			name: "max depth",
			node: value.MustMapping(value.Pair("a", value.MustMapping(value.Pair("b", value.MustMapping(value.Pair("c", value.Int(1))))))),
			cfg:  formatter.Config{MaxDepth: 1},
			err:  yerrors.ErrMaxDepth,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			err := formatter.New(&buf, tc.cfg).Format(tc.node)
			require.ErrorIs(t, err, tc.err)
			if tc.message != "" {
				require.EqualError(t, err, tc.message)
			}
			require.Empty(t, buf.String())
		})
	}
}
