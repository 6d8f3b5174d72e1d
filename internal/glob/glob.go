// Package glob implements shell-style wildcard matching.
//
// Unlike path.Match, a '*' also matches '/', so patterns such as "Guinea*"
// match values like "Guinea/Conakry". Supported syntax: '*', '?', and
// bracket sets "[abc]", "[a-z]", "[!abc]".
package glob

import (
	"regexp"
	"strings"
)

// Pattern is a compiled wildcard pattern.
type Pattern struct {
	src string
	re  *regexp.Regexp
}

// Compile translates a wildcard pattern into a Pattern.
func Compile(pattern string) (*Pattern, error) {
	re, err := regexp.Compile(translate(pattern))
	if err != nil {
		return nil, err
	}
	return &Pattern{src: pattern, re: re}, nil
}

// MustCompile is like Compile but panics on error.
func MustCompile(pattern string) *Pattern {
	p, err := Compile(pattern)
	if err != nil {
		panic(err)
	}
	return p
}

// Match reports whether s matches the pattern.
func (p *Pattern) Match(s string) bool {
	return p.re.MatchString(s)
}

func (p *Pattern) String() string {
	return p.src
}

// Match reports whether s matches pattern. Malformed patterns only match
// themselves literally.
func Match(pattern, s string) bool {
	p, err := Compile(pattern)
	if err != nil {
		return pattern == s
	}
	return p.Match(s)
}

// MatchAny reports whether s matches any of the patterns.
func MatchAny(patterns []*Pattern, s string) bool {
	for _, p := range patterns {
		if p.Match(s) {
			return true
		}
	}
	return false
}

func translate(pattern string) string {
	var sb strings.Builder
	sb.WriteString(`(?s)^`)

	i, n := 0, len(pattern)
	for i < n {
		c := pattern[i]
		i++
		switch c {
		case '*':
			sb.WriteString(".*")
		case '?':
			sb.WriteString(".")
		case '[':
			j := i
			if j < n && pattern[j] == '!' {
				j++
			}
			if j < n && pattern[j] == ']' {
				j++
			}
			for j < n && pattern[j] != ']' {
				j++
			}
			if j >= n {
				// unterminated set is a literal bracket
				sb.WriteString(`\[`)
				continue
			}
			set := pattern[i:j]
			i = j + 1
			sb.WriteByte('[')
			if strings.HasPrefix(set, "!") {
				sb.WriteByte('^')
				set = set[1:]
			} else if strings.HasPrefix(set, "^") {
				sb.WriteByte('\\')
			}
			sb.WriteString(strings.ReplaceAll(set, `\`, `\\`))
			sb.WriteByte(']')
		default:
			sb.WriteString(regexp.QuoteMeta(string(c)))
		}
	}

	sb.WriteString(`$`)
	return sb.String()
}
