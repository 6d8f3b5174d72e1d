package dates

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTipDate(t *testing.T) {
	tests := []struct {
		name      string
		in        string
		date      time.Time
		lower     time.Time
		upper     time.Time
		precision Precision
	}{
		{
			name:      "full date",
			in:        "2014-05-26",
			date:      Date(2014, time.May, 26),
			lower:     Date(2014, time.May, 26),
			upper:     Date(2014, time.May, 26),
			precision: Day,
		},
		{
			name:      "month only",
			in:        "2014-02",
			date:      Date(2014, time.February, 15),
			lower:     Date(2014, time.February, 1),
			upper:     Date(2014, time.February, 28),
			precision: Month,
		},
		{
			name:      "december",
			in:        "2014-12",
			date:      Date(2014, time.December, 15),
			lower:     Date(2014, time.December, 1),
			upper:     Date(2014, time.December, 31),
			precision: Month,
		},
		{
			name:      "year only",
			in:        "2015",
			date:      Date(2015, time.July, 1),
			lower:     Date(2015, time.January, 1),
			upper:     Date(2015, time.December, 31),
			precision: Year,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTipDate(tt.in)
			require.NoError(t, err)

			assert.InDelta(t, DecimalYear(tt.date), got.Date, 1e-12)
			assert.InDelta(t, DecimalYear(tt.lower), got.Lower, 1e-12)
			assert.InDelta(t, DecimalYear(tt.upper), got.Upper, 1e-12)
			assert.Equal(t, tt.precision, got.Precision)
			assert.Equal(t, tt.precision != Day, got.Uncertain())
			assert.LessOrEqual(t, got.Lower, got.Date)
			assert.LessOrEqual(t, got.Date, got.Upper)
		})
	}
}

func TestParseTipDateInvalid(t *testing.T) {
	for _, in := range []string{"2014-05-26-01", "NA", "2014-13", "2014-02-30", ""} {
		t.Run(in, func(t *testing.T) {
			_, err := ParseTipDate(in)
			var fe *FormatError
			require.ErrorAs(t, err, &fe)
		})
	}
}

func TestPrecisionString(t *testing.T) {
	assert.Equal(t, "day", Day.String())
	assert.Equal(t, "month", Month.String())
	assert.Equal(t, "year", Year.String())
}
