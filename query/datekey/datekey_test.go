package datekey_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jpl-au/docq/query/datekey"
)

func TestParse_Precision(t *testing.T) {
	tests := []struct {
		in   string
		want datekey.Precision
		fmt  string
	}{
		{"2013", datekey.Year, "2013"},
		{"2013-02", datekey.Month, "2013-02"},
		{"2013-02-02", datekey.Day, "2013-02-02"},
		{"2013-02-02 10", datekey.Hour, "2013-02-02 10"},
		{"2013-02-02T10", datekey.Hour, "2013-02-02 10"},
		{"2013-02-02 10:30", datekey.Minute, "2013-02-02 10:30"},
		{"2013-02-02T10:30Z", datekey.Minute, "2013-02-02 10:30"},
		{"2013-02-02 10:30:15", datekey.Second, "2013-02-02 10:30:15"},
		{"2013-02-02T10:30:15+02:00", datekey.Second, "2013-02-02 08:30:15"},
		{"2013-02-02 10:30:15.250", datekey.Millisecond, "2013-02-02 10:30:15.250"},
		{"2013-02-02T10:30:15.250Z", datekey.Millisecond, "2013-02-02 10:30:15.250"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			d, err := datekey.Parse(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, d.Precision())
			assert.Equal(t, tt.fmt, d.Format(d.Precision()))
			assert.Equal(t, tt.in, d.String())
		})
	}
}

func TestParse_Invalid(t *testing.T) {
	for _, in := range []string{"", "yesterday", "13-02-02", "2013-13-01", "2013-02-30", "2013/02/02"} {
		t.Run(in, func(t *testing.T) {
			_, err := datekey.Parse(in)
			assert.ErrorIs(t, err, datekey.ErrInvalidDate)
		})
	}
}

func TestCmp_LesserPrecision(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"2013-02", "2013-02-15 10:00", 0},
		{"2013-02-02", "2013-02-02 23:59:59", 0},
		{"2013-02-02", "2013-02-03 00:00", -1},
		{"2014", "2013-12-31", 1},
		{"2013-02-02 10:00", "2013-02-02 10:00:59", 0},
		{"2013-02-02 10:00:01", "2013-02-02 10:00:00.999", 1},
		{"2013-02-02T12:00:00+02:00", "2013-02-02 10:00", 0},
	}
	for _, tt := range tests {
		t.Run(tt.a+" vs "+tt.b, func(t *testing.T) {
			a := datekey.MustParse(tt.a)
			n, err := a.Cmp(tt.b)
			require.NoError(t, err)
			assert.Equal(t, tt.want, n)

			n, err = datekey.MustParse(tt.b).Cmp(a)
			require.NoError(t, err)
			assert.Equal(t, -tt.want, n)
		})
	}

	_, err := datekey.MustParse("2013").Cmp(42)
	assert.ErrorIs(t, err, datekey.ErrInvalidDate)
}

func TestSameUnit(t *testing.T) {
	ok, err := datekey.SameDay("2013-02-02 08:00", "2013-02-02T22:00:00Z")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = datekey.SameDay("2013-02-02", "2013-02-03")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = datekey.SameMonth("2013-02-01", datekey.MustParse("2013-02-28"))
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = datekey.SameYear(time.Date(2013, 5, 1, 0, 0, 0, 0, time.UTC), "2013-12")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = datekey.SameDay("2013-02", "2013-02-20")
	require.NoError(t, err)
	assert.True(t, ok, "a month-precision date compares at month")

	_, err = datekey.SameDay("nope", "2013")
	assert.ErrorIs(t, err, datekey.ErrInvalidDate)
}

func TestCast(t *testing.T) {
	v, err := datekey.Cast("2013-02-02")
	require.NoError(t, err)
	d, ok := v.(datekey.Date)
	require.True(t, ok)
	assert.Equal(t, datekey.Day, d.Precision())

	_, err = datekey.Cast(12.5)
	assert.ErrorIs(t, err, datekey.ErrInvalidDate)
}

func TestPrecisionNames(t *testing.T) {
	for p := datekey.Year; p <= datekey.Millisecond; p++ {
		got, err := datekey.ParsePrecision(p.String())
		require.NoError(t, err)
		assert.Equal(t, p, got)
	}
	_, err := datekey.ParsePrecision("fortnight")
	assert.Error(t, err)
}
