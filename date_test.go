package foliotrack

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	testCases := []struct {
		name    string
		in      string
		want    Date
		wantErr bool
	}{
		{"iso", "2025-01-10", NewDate(2025, time.January, 10), false},
		{"single digit month and day", "2025-7-1", NewDate(2025, time.July, 1), false},
		{"surrounding spaces", " 2025-01-10 ", NewDate(2025, time.January, 10), false},
		{"garbage", "not-a-date", Date{}, true},
		{"empty", "", Date{}, true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseDate(tc.in)
			if (err != nil) != tc.wantErr {
				t.Fatalf("ParseDate(%q) error = %v, wantErr %v", tc.in, err, tc.wantErr)
			}
			if !tc.wantErr && got != tc.want {
				t.Errorf("ParseDate(%q) = %s, want %s", tc.in, got, tc.want)
			}
		})
	}
}

func TestParseDate_Relative(t *testing.T) {
	today := Today()
	testCases := []struct {
		in   string
		want Date
	}{
		{"0d", today},
		{"-1d", today.Add(-1)},
		{"+2w", today.Add(14)},
		{"-1y", NewDate(today.Year()-1, today.Month(), today.Day())},
	}
	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseDate(tc.in)
			if err != nil {
				t.Fatalf("ParseDate(%q) error = %v", tc.in, err)
			}
			if got != tc.want {
				t.Errorf("ParseDate(%q) = %s, want %s", tc.in, got, tc.want)
			}
		})
	}
}

func TestDate_AddNormalizes(t *testing.T) {
	testCases := []struct {
		name string
		from Date
		days int
		want Date
	}{
		{"within month", NewDate(2025, time.January, 10), 5, NewDate(2025, time.January, 15)},
		{"month rollover", NewDate(2025, time.January, 30), 5, NewDate(2025, time.February, 4)},
		{"year rollover", NewDate(2024, time.December, 31), 1, NewDate(2025, time.January, 1)},
		{"leap day", NewDate(2024, time.February, 28), 1, NewDate(2024, time.February, 29)},
		{"backwards", NewDate(2025, time.March, 1), -1, NewDate(2025, time.February, 28)},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.from.Add(tc.days); got != tc.want {
				t.Errorf("%s.Add(%d) = %s, want %s", tc.from, tc.days, got, tc.want)
			}
		})
	}
}

func TestDate_Ordering(t *testing.T) {
	a := NewDate(2025, time.January, 10)
	b := NewDate(2025, time.January, 11)

	if !a.Before(b) || b.Before(a) {
		t.Error("Before() is inconsistent")
	}
	if !b.After(a) || a.After(b) {
		t.Error("After() is inconsistent")
	}
	if a.Compare(b) != -1 || b.Compare(a) != 1 || a.Compare(a) != 0 {
		t.Error("Compare() is inconsistent")
	}
	if a.After(a) || a.Before(a) {
		t.Error("a date must not be before or after itself")
	}
}

func TestDate_JSONRoundTrip(t *testing.T) {
	on := NewDate(2025, time.July, 1)
	data, err := json.Marshal(on)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if string(data) != `"2025-07-01"` {
		t.Errorf("Marshal() = %s, want \"2025-07-01\"", data)
	}
	var back Date
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if back != on {
		t.Errorf("round trip = %s, want %s", back, on)
	}
}

func TestDate_IsZero(t *testing.T) {
	if !(Date{}).IsZero() {
		t.Error("the zero Date must report IsZero")
	}
	if NewDate(2025, time.January, 1).IsZero() {
		t.Error("a real date must not report IsZero")
	}
}
