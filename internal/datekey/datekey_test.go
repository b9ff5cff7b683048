package datekey

import (
	"errors"
	"testing"
	"time"
)

func TestEncode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		date time.Time
		want string
	}{
		{name: "mid december", date: time.Date(2025, time.December, 15, 0, 0, 0, 0, time.Local), want: "121525"},
		{name: "single digit month and day", date: time.Date(2026, time.January, 2, 0, 0, 0, 0, time.Local), want: "010226"},
		{name: "leap day", date: time.Date(2024, time.February, 29, 0, 0, 0, 0, time.Local), want: "022924"},
		{name: "turn of century", date: time.Date(2000, time.March, 1, 0, 0, 0, 0, time.Local), want: "030100"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Encode(tt.date); got != tt.want {
				t.Fatalf("Encode(%v) = %q, want %q", tt.date, got, tt.want)
			}
		})
	}
}

func TestDecodeRoundTrip(t *testing.T) {
	t.Parallel()

	keys := []string{"121525", "010226", "022924", "063025", "123199"}
	for _, key := range keys {
		first, err := Decode(key)
		if err != nil {
			t.Fatalf("Decode(%q) error = %v", key, err)
		}
		second, err := Decode(Encode(first))
		if err != nil {
			t.Fatalf("Decode(Encode(%q)) error = %v", key, err)
		}
		if !first.Equal(second) {
			t.Fatalf("round trip of %q: %v != %v", key, first, second)
		}
	}
}

func TestEncodeInjectiveWithinCentury(t *testing.T) {
	t.Parallel()

	// Walk a span of dates and confirm no two distinct days in the
	// 2000-2099 range share a key.
	seen := make(map[string]time.Time)
	day := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.Local)
	end := time.Date(2027, time.January, 1, 0, 0, 0, 0, time.Local)
	for day.Before(end) {
		key := Encode(day)
		if prev, ok := seen[key]; ok {
			t.Fatalf("key %q produced by both %v and %v", key, prev, day)
		}
		seen[key] = day
		day = day.AddDate(0, 0, 1)
	}
}

func TestDecodeRejectsMalformedKeys(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		key  string
	}{
		{name: "too short", key: "1215"},
		{name: "too long", key: "1215250"},
		{name: "empty", key: ""},
		{name: "letters", key: "12ab25"},
		{name: "iso date", key: "2025-12-15"},
		{name: "whitespace", key: " 12152"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.key)
			if !errors.Is(err, ErrFormat) {
				t.Fatalf("Decode(%q) error = %v, want ErrFormat", tt.key, err)
			}
		})
	}
}

func TestDecodeRejectsNonexistentDates(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		key  string
	}{
		{name: "february 30", key: "023099"},
		{name: "february 29 non-leap", key: "022925"},
		{name: "month 13", key: "130125"},
		{name: "day 32", key: "013225"},
		{name: "month zero", key: "001525"},
		{name: "day zero", key: "120025"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.key)
			if !errors.Is(err, ErrInvalidDate) {
				t.Fatalf("Decode(%q) error = %v, want ErrInvalidDate", tt.key, err)
			}
		})
	}
}

func TestDecodeComponents(t *testing.T) {
	t.Parallel()

	got, err := Decode("121525")
	if err != nil {
		t.Fatalf("Decode error = %v", err)
	}
	if got.Year() != 2025 || got.Month() != time.December || got.Day() != 15 {
		t.Fatalf("Decode(121525) = %v, want 2025-12-15", got)
	}
}
