// Package placeholder expands "{name}" fields in text templates.
//
// A doubled brace ("{{" or "}}") produces a literal brace. Values are
// substituted as text, so conversions ('!') and format specs (':') inside a
// field are rejected.
package placeholder

import (
	"fmt"
	"strings"
)

// MissingKeyError is returned when a template names a field that the lookup
// cannot resolve.
type MissingKeyError struct {
	Key string
}

func (e *MissingKeyError) Error() string {
	return fmt.Sprintf("no value for template field %q", e.Key)
}

// SyntaxError reports an unbalanced brace or an unsupported field in a
// template.
type SyntaxError struct {
	Offset int
	Msg    string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("template offset %d: %s", e.Offset, e.Msg)
}

// Lookup resolves a field name to its replacement text.
type Lookup func(key string) (string, bool)

// MapLookup returns a Lookup backed by a string map.
func MapLookup(m map[string]string) Lookup {
	return func(key string) (string, bool) {
		v, ok := m[key]
		return v, ok
	}
}

// Expand replaces every field in tmpl using lookup.
func Expand(tmpl string, lookup Lookup) (string, error) {
	var sb strings.Builder
	sb.Grow(len(tmpl))

	i, n := 0, len(tmpl)
	for i < n {
		c := tmpl[i]
		switch c {
		case '{':
			if i+1 < n && tmpl[i+1] == '{' {
				sb.WriteByte('{')
				i += 2
				continue
			}
			end := strings.IndexByte(tmpl[i+1:], '}')
			if end < 0 {
				return "", &SyntaxError{Offset: i, Msg: "single '{' encountered"}
			}
			field := tmpl[i+1 : i+1+end]
			if k := strings.IndexAny(field, ":!"); k >= 0 {
				return "", &SyntaxError{Offset: i + 1 + k, Msg: fmt.Sprintf("format spec in field %q is not supported", field)}
			}
			val, ok := lookup(field)
			if !ok {
				return "", &MissingKeyError{Key: field}
			}
			sb.WriteString(val)
			i += end + 2
		case '}':
			if i+1 < n && tmpl[i+1] == '}' {
				sb.WriteByte('}')
				i += 2
				continue
			}
			return "", &SyntaxError{Offset: i, Msg: "single '}' encountered"}
		default:
			sb.WriteByte(c)
			i++
		}
	}

	return sb.String(), nil
}
