package dates

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Range is the half-open decimal-year interval [Lower, Upper).
type Range struct {
	Lower float64
	Upper float64
}

// Contains reports whether x lies in the range.
func (r Range) Contains(x float64) bool {
	return x >= r.Lower && x < r.Upper
}

func (r Range) String() string {
	return fmt.Sprintf("[%.5f,%.5f)", r.Lower, r.Upper)
}

// ParseRange parses two dates separated by '-'. Both ends are either decimal
// years ("2014.5-2015.25") or calendar dates in layout ("2014/06/01-2015/04/01"
// with SlashLayout). The ends may be given in either order.
func ParseRange(s, layout string) (Range, error) {
	if layout == "" {
		layout = SlashLayout
	}

	parts := strings.Split(strings.TrimSpace(s), "-")
	if len(parts) != 2 {
		return Range{}, &FormatError{Input: s, Reason: "date range needs exactly two dates separated by '-'"}
	}

	values, err := parseFloats(parts)
	if err != nil {
		values = make([]float64, len(parts))
		for i, p := range parts {
			v, perr := Parse(p, layout)
			if perr != nil {
				return Range{}, &FormatError{Input: s, Reason: "cannot parse date range"}
			}
			values[i] = v
		}
	}

	return Range{
		Lower: math.Min(values[0], values[1]),
		Upper: math.Max(values[0], values[1]),
	}, nil
}

func parseFloats(parts []string) ([]float64, error) {
	values := make([]float64, len(parts))
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, err
		}
		values[i] = v
	}
	return values, nil
}
