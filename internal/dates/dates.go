// Package dates converts calendar dates to decimal years.
//
// A decimal year is year + (day_of_year - 1) / days_in_year, so January 1st
// of any year maps exactly onto the integer year and the fraction grows by
// one day's worth per day. Phylogenetic models use these to treat sampling
// times as real numbers.
package dates

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Layouts accepted when parsing calendar dates. Single-digit months and days
// are accepted as well as zero-padded ones.
const (
	ISOLayout   = "2006-1-2"
	SlashLayout = "2006/1/2"
)

// FormatError is returned when a date string cannot be interpreted.
type FormatError struct {
	Input  string
	Reason string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("invalid date %q: %s", e.Input, e.Reason)
}

// DaysInYear returns 366 for leap years and 365 otherwise.
func DaysInYear(year int) int {
	return time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC).YearDay()
}

// DaysInMonth returns the number of days of month in year.
func DaysInMonth(year int, month time.Month) int {
	if month == time.December {
		return 31
	}
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return int(first.AddDate(0, 1, 0).Sub(first).Hours() / 24)
}

// DecimalYear returns t as a fractional year.
func DecimalYear(t time.Time) float64 {
	year := t.Year()
	return float64(year) + float64(t.YearDay()-1)/float64(DaysInYear(year))
}

// Date builds a UTC calendar date.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// Parse parses s with layout and returns its decimal year.
func Parse(s, layout string) (float64, error) {
	t, err := time.Parse(layout, strings.TrimSpace(s))
	if err != nil {
		return 0, &FormatError{Input: s, Reason: err.Error()}
	}
	return DecimalYear(t), nil
}

// component parses a date part; anything that is not a non-negative integer
// ("NA", "", "?") counts as missing and yields -1.
func component(s string) int {
	i, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || i < 0 {
		return -1
	}
	return i
}

func formatDecimal(v float64, digits int) string {
	if digits < 0 {
		return fmt.Sprintf("%f", v)
	}
	return fmt.Sprintf("%.*f", digits, v)
}

// DateString renders a possibly partial date given as text components.
//
// With calendar set the result is "YYYY", "YYYY-MM" or "YYYY-MM-DD". Otherwise
// it is a decimal year: the year midpoint ("YYYY.5") when only the year is
// known, the mean of the first and last day of the month when the day is
// missing, and the exact decimal year for complete dates. Negative digits
// selects the default of six decimal places. An unknown year gives "NA".
func DateString(year, month, day string, calendar bool, digits int) (string, error) {
	y := component(year)
	m := component(month)
	d := component(day)

	switch {
	case y < 0:
		return "NA", nil

	case m < 0:
		if calendar {
			return fmt.Sprintf("%04d", y), nil
		}
		return fmt.Sprintf("%04d.5", y), nil

	case d < 0:
		if calendar {
			return fmt.Sprintf("%04d-%02d", y, m), nil
		}
		if m < 1 || m > 12 {
			return "", &FormatError{Input: year + "-" + month, Reason: "month out of range"}
		}
		first := Date(y, time.Month(m), 1)
		last := Date(y, time.Month(m), DaysInMonth(y, time.Month(m)))
		return formatDecimal((DecimalYear(first)+DecimalYear(last))/2, digits), nil

	default:
		if calendar {
			return fmt.Sprintf("%04d-%02d-%02d", y, m, d), nil
		}
		if m < 1 || m > 12 {
			return "", &FormatError{Input: year + "-" + month + "-" + day, Reason: "month out of range"}
		}
		if d < 1 || d > DaysInMonth(y, time.Month(m)) {
			return "", &FormatError{Input: year + "-" + month + "-" + day, Reason: "day is out of range for month"}
		}
		return formatDecimal(DecimalYear(Date(y, time.Month(m), d)), digits), nil
	}
}
