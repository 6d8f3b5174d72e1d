package numfmt

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFloat(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want string
	}{
		{"zero", 0, "0.0"},
		{"integral", 1, "1.0"},
		{"half", 0.5, "0.5"},
		{"third", 1.0 / 3.0, "0.3333333333333333"},
		{"small", 0.00001, "1e-05"},
		{"threshold", 0.0001, "0.0001"},
		{"large", 123456.0, "123456.0"},
		{"negative", -2.25, "-2.25"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Float(tt.in))
		})
	}
}

func TestValue(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{"string", "EBOV", "EBOV"},
		{"int", 127, "127"},
		{"float", 0.001, "0.001"},
		{"bool", true, "True"},
		{"nil", nil, "None"},
		{"json number", json.Number("42"), "42"},
		{"list", []any{"Guinea", "Sierra Leone"}, "Guinea,Sierra Leone"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Value(tt.in))
		})
	}
}
