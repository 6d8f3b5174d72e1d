package glob

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatch(t *testing.T) {
	tests := []struct {
		pattern string
		value   string
		want    bool
	}{
		{"*", "Guinea", true},
		{"*", "", true},
		{"Guinea", "Guinea", true},
		{"Guinea", "guinea", false},
		{"Guinea*", "Guinea-Bissau", true},
		{"Guinea*", "Guinea/Conakry", true},
		{"Sierra?Leone", "Sierra Leone", true},
		{"Sierra?Leone", "SierraLeone", false},
		{"[GL]*", "Liberia", true},
		{"[!GL]*", "Liberia", false},
		{"[!GL]*", "Mali", true},
		{"a.b", "axb", false},
		{"a.b", "a.b", true},
		{"*.cfg", "run1.cfg", true},
		{"*.cfg", "run1.cfg.bak", false},
		{"[abc", "[abc", true},
	}

	for _, tt := range tests {
		t.Run(tt.pattern+"~"+tt.value, func(t *testing.T) {
			assert.Equal(t, tt.want, Match(tt.pattern, tt.value))
		})
	}
}

func TestMatchAny(t *testing.T) {
	patterns := []*Pattern{MustCompile("Guinea"), MustCompile("Sierra*")}

	assert.True(t, MatchAny(patterns, "Sierra Leone"))
	assert.True(t, MatchAny(patterns, "Guinea"))
	assert.False(t, MatchAny(patterns, "Liberia"))
	assert.False(t, MatchAny(nil, "Guinea"))
}

func TestCompileKeepsSource(t *testing.T) {
	p, err := Compile("EBOV*")
	require.NoError(t, err)
	assert.Equal(t, "EBOV*", p.String())
}
