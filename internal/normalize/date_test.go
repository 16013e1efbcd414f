package normalize

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tally/internal/common"
)

func TestParseDate_Serials(t *testing.T) {
	tests := []struct {
		name string
		cell string
		want string
	}{
		{name: "new year 2024", cell: "45292", want: "2024-01-01"},
		{name: "mid 2024", cell: "45361", want: "2024-03-10"},
		{name: "fractional time truncated to day", cell: "45292.75", want: "2024-01-01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.cell, DayFirst)
			require.NoError(t, err)
			assert.Equal(t, tt.want, FormatDate(got))
		})
	}
}

func TestParseDate_TextualFormats(t *testing.T) {
	tests := []struct {
		name   string
		cell   string
		policy DatePolicy
		want   string
	}{
		{name: "iso", cell: "2024-03-05", policy: DayFirst, want: "2024-03-05"},
		{name: "uk slashed", cell: "25/12/2024", policy: DayFirst, want: "2024-12-25"},
		{name: "single digit uk", cell: "7/3/2024", policy: DayFirst, want: "2024-03-07"},
		{name: "two digit year", cell: "25/12/24", policy: DayFirst, want: "2024-12-25"},
		{name: "dotted", cell: "3.4.2024", policy: DayFirst, want: "2024-04-03"},
		{name: "year first slashed", cell: "2024/3/7", policy: DayFirst, want: "2024-03-07"},
		{name: "day-mon-year", cell: "12-Jan-2024", policy: DayFirst, want: "2024-01-12"},
		{name: "spelled month", cell: "2 Jan 2024", policy: DayFirst, want: "2024-01-02"},
		{name: "surrounding whitespace", cell: "  2024-03-05  ", policy: DayFirst, want: "2024-03-05"},
		{name: "us export month first", cell: "12/25/2024", policy: MonthFirst, want: "2024-12-25"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.cell, tt.policy)
			require.NoError(t, err)
			assert.Equal(t, tt.want, FormatDate(got))
		})
	}
}

func TestParseDate_AmbiguityPolicy(t *testing.T) {
	// Day ≤ 12 on both sides: the policy decides, deterministically.
	dayFirst, err := ParseDate("03/04/2024", DayFirst)
	require.NoError(t, err)
	assert.Equal(t, "2024-04-03", FormatDate(dayFirst))

	monthFirst, err := ParseDate("03/04/2024", MonthFirst)
	require.NoError(t, err)
	assert.Equal(t, "2024-03-04", FormatDate(monthFirst))
}

func TestParseDate_Errors(t *testing.T) {
	tests := []struct {
		name string
		cell string
	}{
		{name: "empty", cell: ""},
		{name: "blank", cell: "   "},
		{name: "garbage", cell: "not a date"},
		{name: "negative serial", cell: "-5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseDate(tt.cell, DayFirst)
			require.Error(t, err)
			assert.ErrorIs(t, err, common.ErrDateParse)
		})
	}
}

func TestParseDate_RoundTrip(t *testing.T) {
	layouts := []string{"2006-01-02", "02/01/2006", "2/1/2006", "02.01.2006", "2 Jan 2006"}
	dates := []time.Time{
		time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 12, 25, 0, 0, 0, 0, time.UTC),
		time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC),
	}

	for _, layout := range layouts {
		for _, d := range dates {
			got, err := ParseDate(d.Format(layout), DayFirst)
			require.NoError(t, err, "layout %s date %s", layout, d)
			assert.Equal(t, FormatDate(d), FormatDate(got), "layout %s", layout)
		}
	}
}
