package token

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKindString(t *testing.T) {
	tests := []struct {
		input    Kind
		expected string
	}{
		{Blank, "BLANK"},
		{Comment, "COMMENT"},
		{Pair, "PAIR"},
		{Bare, "BARE"},
		{Kind(42), "UNKNOWN"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			require.Equal(t, tt.expected, tt.input.String())
		})
	}
}

func TestIsDash(t *testing.T) {
	tests := []struct {
		line     Line
		expected bool
	}{
		{Line{Kind: Bare, Value: "-"}, true},
		{Line{Kind: Bare, Value: "- item"}, true},
		{Line{Kind: Bare, Value: "- |"}, true},
		{Line{Kind: Bare, Value: "-5"}, false},
		{Line{Kind: Bare, Value: "--"}, false},
		{Line{Kind: Pair, Key: "a", Value: "- b"}, false},
		{Line{Kind: Bare, Value: "item"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.line.Value, func(t *testing.T) {
			require.Equal(t, tt.expected, tt.line.IsDash())
		})
	}
}
