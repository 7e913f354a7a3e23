// Package datekey provides dates that remember how precisely they were
// written, for use as a cast in query key schemas.
//
// "2013-02" is a month and "2013-02-02 10:00" a minute. Two dates compare at
// the coarser of their precisions, so "2013-02" equals every day of February
// 2013 and "2013-02-02" is less than "2013-02-03 08:00".
//
// Dates without a zone are read as UTC.
package datekey

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
)

// ErrInvalidDate is returned for strings that match no supported layout.
var ErrInvalidDate = errors.New("invalid date")

// Precision is the smallest unit a Date was written with.
type Precision int

const (
	Year Precision = iota
	Month
	Day
	Hour
	Minute
	Second
	Millisecond
)

var precisionNames = [...]string{"year", "month", "day", "hour", "minute", "second", "millisecond"}

func (p Precision) String() string {
	if p < Year || p > Millisecond {
		return fmt.Sprintf("Precision(%d)", int(p))
	}
	return precisionNames[p]
}

// ParsePrecision accepts the names returned by Precision.String.
func ParsePrecision(s string) (Precision, error) {
	for i, n := range precisionNames {
		if n == s {
			return Precision(i), nil
		}
	}
	return Year, fmt.Errorf("unknown precision %q", s)
}

const zone = `(Z|[+-]\d{2}:\d{2})?`

var formats = []struct {
	re      *regexp.Regexp
	layouts []string
	prec    Precision
}{
	{regexp.MustCompile(`^\d{4}-\d{2}-\d{2}[T ]\d{2}:\d{2}:\d{2}\.\d+` + zone + `$`), timeLayouts("15:04:05"), Millisecond},
	{regexp.MustCompile(`^\d{4}-\d{2}-\d{2}[T ]\d{2}:\d{2}:\d{2}` + zone + `$`), timeLayouts("15:04:05"), Second},
	{regexp.MustCompile(`^\d{4}-\d{2}-\d{2}[T ]\d{2}:\d{2}` + zone + `$`), timeLayouts("15:04"), Minute},
	{regexp.MustCompile(`^\d{4}-\d{2}-\d{2}[T ]\d{2}$`), []string{"2006-01-02 15", "2006-01-02T15"}, Hour},
	{regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`), []string{"2006-01-02"}, Day},
	{regexp.MustCompile(`^\d{4}-\d{2}$`), []string{"2006-01"}, Month},
	{regexp.MustCompile(`^\d{4}$`), []string{"2006"}, Year},
}

// timeLayouts returns the date-time layouts for clock, with either separator
// and with or without a zone. Fractional seconds are accepted by time.Parse
// after a seconds field without appearing in the layout.
func timeLayouts(clock string) []string {
	return []string{
		"2006-01-02T" + clock + "Z07:00",
		"2006-01-02 " + clock + "Z07:00",
		"2006-01-02T" + clock,
		"2006-01-02 " + clock,
	}
}

// Date is a point in time with a precision.
type Date struct {
	t    time.Time
	prec Precision
	src  string
}

// Parse reads s in one of the forms YYYY, YYYY-MM, YYYY-MM-DD,
// YYYY-MM-DD HH, YYYY-MM-DD HH:MM, YYYY-MM-DD HH:MM:SS and
// YYYY-MM-DD HH:MM:SS.fff, where the space may also be a T and any form with
// minutes may end in Z or a ±HH:MM offset.
func Parse(s string) (Date, error) {
	s = strings.TrimSpace(s)
	for _, f := range formats {
		if !f.re.MatchString(s) {
			continue
		}
		for _, layout := range f.layouts {
			t, err := time.ParseInLocation(layout, s, time.UTC)
			if err == nil {
				return Date{t: t.UTC(), prec: f.prec, src: s}, nil
			}
		}
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
}

// MustParse is like Parse but panics on error.
func MustParse(s string) Date {
	d, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return d
}

// FromTime returns a millisecond-precision Date.
func FromTime(t time.Time) Date {
	return Date{t: t.UTC(), prec: Millisecond}
}

func (d Date) Time() time.Time      { return d.t }
func (d Date) Precision() Precision { return d.prec }

// WithPrecision returns d with a different precision.
func (d Date) WithPrecision(p Precision) Date {
	d.prec, d.src = p, ""
	return d
}

// String returns the text d was parsed from, or its canonical form.
func (d Date) String() string {
	if d.src != "" {
		return d.src
	}
	return d.Format(d.prec)
}

var layouts = [...]string{
	Year:        "2006",
	Month:       "2006-01",
	Day:         "2006-01-02",
	Hour:        "2006-01-02 15",
	Minute:      "2006-01-02 15:04",
	Second:      "2006-01-02 15:04:05",
	Millisecond: "2006-01-02 15:04:05.000",
}

// Format renders d at precision p.
func (d Date) Format(p Precision) string {
	if p < Year || p > Millisecond {
		p = d.prec
	}
	return d.t.Format(layouts[p])
}

// Cmp compares d with other at the coarser of the two precisions. other may
// be a Date, a *Date, a time.Time or a string accepted by Parse.
func (d Date) Cmp(other any) (int, error) {
	o, err := From(other)
	if err != nil {
		return 0, err
	}
	return compareAt(d, o, min(d.prec, o.prec)), nil
}

func compareAt(a, b Date, p Precision) int {
	return truncate(a.t, p).Compare(truncate(b.t, p))
}

func truncate(t time.Time, p Precision) time.Time {
	y, mo, d := t.Date()
	h, mi, s := t.Clock()
	switch p {
	case Year:
		return time.Date(y, 1, 1, 0, 0, 0, 0, time.UTC)
	case Month:
		return time.Date(y, mo, 1, 0, 0, 0, 0, time.UTC)
	case Day:
		return time.Date(y, mo, d, 0, 0, 0, 0, time.UTC)
	case Hour:
		return time.Date(y, mo, d, h, 0, 0, 0, time.UTC)
	case Minute:
		return time.Date(y, mo, d, h, mi, 0, 0, time.UTC)
	case Second:
		return time.Date(y, mo, d, h, mi, s, 0, time.UTC)
	}
	return t.Truncate(time.Millisecond)
}

// From converts v to a Date.
func From(v any) (Date, error) {
	switch t := v.(type) {
	case Date:
		return t, nil
	case *Date:
		if t == nil {
			return Date{}, fmt.Errorf("%w: nil", ErrInvalidDate)
		}
		return *t, nil
	case time.Time:
		return FromTime(t), nil
	case string:
		return Parse(t)
	}
	return Date{}, fmt.Errorf("%w: cannot use %T as a date", ErrInvalidDate, v)
}

// Cast is a key schema cast producing Dates.
func Cast(v any) (any, error) {
	return From(v)
}

// SameYear, SameMonth and SameDay are key schema equality functions. They
// compare at the named unit, or coarser if either date is less precise.
func SameYear(a, b any) (bool, error)  { return same(a, b, Year) }
func SameMonth(a, b any) (bool, error) { return same(a, b, Month) }
func SameDay(a, b any) (bool, error)   { return same(a, b, Day) }

func same(a, b any, p Precision) (bool, error) {
	da, err := From(a)
	if err != nil {
		return false, err
	}
	db, err := From(b)
	if err != nil {
		return false, err
	}
	return compareAt(da, db, min(p, da.prec, db.prec)) == 0, nil
}
