package dates

import (
	"strings"
	"time"
)

// Precision records how much of a tip date was known.
type Precision int

const (
	// Day means year, month and day were given.
	Day Precision = iota
	// Month means only year and month were given.
	Month
	// Year means only the year was given.
	Year
)

func (p Precision) String() string {
	switch p {
	case Day:
		return "day"
	case Month:
		return "month"
	default:
		return "year"
	}
}

// TipDate is the sampling date of a tree tip as decimal years. Lower and
// Upper are the earliest and latest dates compatible with the input.
type TipDate struct {
	Date      float64
	Lower     float64
	Upper     float64
	Precision Precision
}

// Uncertain reports whether the date is an interval rather than a day.
func (t TipDate) Uncertain() bool {
	return t.Upper != t.Lower
}

// ParseTipDate parses "YYYY-MM-DD", "YYYY-MM" or "YYYY".
//
// Partial dates get a point estimate in the middle of the known period (the
// 15th of the month, or July 1st) and bounds at the period's first and last
// day.
func ParseTipDate(s string) (TipDate, error) {
	s = strings.TrimSpace(s)

	switch strings.Count(s, "-") {
	case 2:
		t, err := time.Parse(ISOLayout, s)
		if err != nil {
			return TipDate{}, &FormatError{Input: s, Reason: err.Error()}
		}
		d := DecimalYear(t)
		return TipDate{Date: d, Lower: d, Upper: d, Precision: Day}, nil

	case 1:
		t, err := time.Parse(ISOLayout, s+"-15")
		if err != nil {
			return TipDate{}, &FormatError{Input: s, Reason: err.Error()}
		}
		first := Date(t.Year(), t.Month(), 1)
		last := Date(t.Year(), t.Month(), DaysInMonth(t.Year(), t.Month()))
		return TipDate{
			Date:      DecimalYear(t),
			Lower:     DecimalYear(first),
			Upper:     DecimalYear(last),
			Precision: Month,
		}, nil

	case 0:
		t, err := time.Parse("2006", s)
		if err != nil {
			return TipDate{}, &FormatError{Input: s, Reason: err.Error()}
		}
		y := t.Year()
		return TipDate{
			Date:      DecimalYear(Date(y, time.July, 1)),
			Lower:     DecimalYear(Date(y, time.January, 1)),
			Upper:     DecimalYear(Date(y, time.December, 31)),
			Precision: Year,
		}, nil
	}

	return TipDate{}, &FormatError{Input: s, Reason: "unknown date format"}
}
