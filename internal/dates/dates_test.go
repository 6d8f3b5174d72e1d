package dates

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecimalYear(t *testing.T) {
	tests := []struct {
		name string
		date time.Time
		want float64
	}{
		{"new year", Date(2015, time.January, 1), 2015.0},
		{"day two", Date(2015, time.January, 2), 2015 + 1.0/365.0},
		{"mid january", Date(2015, time.January, 15), 2015 + 14.0/365.0},
		{"last day", Date(2015, time.December, 31), 2015 + 364.0/365.0},
		{"leap last day", Date(2016, time.December, 31), 2016 + 365.0/366.0},
		{"leap day", Date(2016, time.February, 29), 2016 + 59.0/366.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, DecimalYear(tt.date), 1e-12)
		})
	}
}

func TestDecimalYearIncreasing(t *testing.T) {
	prev := DecimalYear(Date(2016, time.January, 1))
	for d := Date(2016, time.January, 2); d.Year() == 2016; d = d.AddDate(0, 0, 1) {
		cur := DecimalYear(d)
		require.Greater(t, cur, prev, d.Format("2006-01-02"))
		require.Less(t, cur, 2017.0)
		prev = cur
	}
}

func TestDaysInMonth(t *testing.T) {
	assert.Equal(t, 31, DaysInMonth(2015, time.January))
	assert.Equal(t, 28, DaysInMonth(2015, time.February))
	assert.Equal(t, 29, DaysInMonth(2016, time.February))
	assert.Equal(t, 30, DaysInMonth(2015, time.April))
	assert.Equal(t, 31, DaysInMonth(2015, time.December))
}

func TestDateString(t *testing.T) {
	tests := []struct {
		name     string
		y, m, d  string
		calendar bool
		digits   int
		want     string
	}{
		{"full calendar", "2015", "1", "15", true, -1, "2015-01-15"},
		{"month calendar", "2015", "1", "NA", true, -1, "2015-01"},
		{"year calendar", "2015", "NA", "NA", true, -1, "2015"},
		{"nothing calendar", "NA", "NA", "NA", true, -1, "NA"},
		{"full decimal", "2015", "1", "15", false, -1, "2015.038356"},
		{"month decimal", "2015", "1", "NA", false, -1, "2015.041096"},
		{"year decimal", "2015", "NA", "NA", false, -1, "2015.5"},
		{"nothing decimal", "NA", "NA", "NA", false, -1, "NA"},
		{"full decimal digits", "2015", "12", "31", false, 3, "2015.997"},
		{"month decimal digits", "2016", "02", "NA", false, 3, "2016.123"},
		{"padded", "2000", "05", "15", true, -1, "2000-05-15"},
		{"first day", "2015", "01", "01", false, 3, "2015.000"},
		{"year ignores digits", "2016", "", "", false, 2, "2016.5"},
		{"day without month", "2016", "NA", "12", true, -1, "2016"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DateString(tt.y, tt.m, tt.d, tt.calendar, tt.digits)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDateStringInvalid(t *testing.T) {
	_, err := DateString("2015", "13", "NA", false, -1)
	var fe *FormatError
	require.ErrorAs(t, err, &fe)

	_, err = DateString("2015", "2", "30", false, -1)
	require.ErrorAs(t, err, &fe)

	// calendar output does not validate
	got, err := DateString("2015", "13", "NA", true, -1)
	require.NoError(t, err)
	assert.Equal(t, "2015-13", got)
}

func TestParse(t *testing.T) {
	v, err := Parse("2014-06-01", ISOLayout)
	require.NoError(t, err)
	assert.InDelta(t, 2014+151.0/365.0, v, 1e-12)

	v, err = Parse("2014/6/1", SlashLayout)
	require.NoError(t, err)
	assert.InDelta(t, 2014+151.0/365.0, v, 1e-12)

	_, err = Parse("June 2014", ISOLayout)
	var fe *FormatError
	require.ErrorAs(t, err, &fe)
}
