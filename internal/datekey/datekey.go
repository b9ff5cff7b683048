// Package datekey converts between calendar dates and the upstream's
// compact MMDDYY page keys.
package datekey

import (
	"errors"
	"fmt"
	"time"
)

// Error kinds returned by Decode. Callers distinguish malformed input
// from well-formed keys that name a nonexistent date.
var (
	ErrFormat      = errors.New("date key must be exactly six digits")
	ErrInvalidDate = errors.New("date key names a nonexistent calendar date")
)

// KeyLength is the fixed width of an encoded date key.
const KeyLength = 6

// Encode produces the upstream's MMDDYY key for a date, using the
// date's own calendar components and the last two digits of the year.
func Encode(t time.Time) string {
	return fmt.Sprintf("%02d%02d%02d", int(t.Month()), t.Day(), t.Year()%100)
}

// Decode parses a six-digit MMDDYY key into a date in the 2000-2099
// range. It returns ErrFormat for anything that is not exactly six
// digits and ErrInvalidDate for keys like "023099" (February 30):
// time.Date silently normalizes overflowing components, so the result
// is verified to round-trip to the same month/day/year.
func Decode(key string) (time.Time, error) {
	if len(key) != KeyLength {
		return time.Time{}, fmt.Errorf("%w: got %q", ErrFormat, key)
	}
	for _, r := range key {
		if r < '0' || r > '9' {
			return time.Time{}, fmt.Errorf("%w: got %q", ErrFormat, key)
		}
	}

	month := digits(key[0:2])
	day := digits(key[2:4])
	year := 2000 + digits(key[4:6])

	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.Local)
	if int(t.Month()) != month || t.Day() != day || t.Year() != year {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, key)
	}
	return t, nil
}

func digits(s string) int {
	n := 0
	for i := 0; i < len(s); i++ {
		n = n*10 + int(s[i]-'0')
	}
	return n
}
