package wire

import (
	"testing"
	"time"
)

func TestStr(t *testing.T) {
	if got := Str(nil, "x"); got != "x" {
		t.Errorf("Str(nil) = %q", got)
	}
	if got := Str(Ptr("  "), "x"); got != "x" {
		t.Errorf("Str(blank) = %q", got)
	}
	if got := Str(Ptr("v"), "x"); got != "v" {
		t.Errorf("Str(v) = %q", got)
	}
}

func TestNumbers(t *testing.T) {
	if Int(nil, 3) != 3 || Int(Ptr(0), 3) != 0 {
		t.Error("Int must only default on nil")
	}
	if Float(nil, 1.5) != 1.5 || Float(Ptr(2.5), 1.5) != 2.5 {
		t.Error("Float must only default on nil")
	}
	if Bool(nil, true) != true || Bool(Ptr(false), true) != false {
		t.Error("Bool must only default on nil")
	}
}

func TestTime(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
	}{
		{"2025-01-10T09:30:00Z", time.Date(2025, 1, 10, 9, 30, 0, 0, time.UTC)},
		{"2025-01-10T09:30:00", time.Date(2025, 1, 10, 9, 30, 0, 0, time.UTC)},
		{"2025-01-10T09:30:00.123456", time.Date(2025, 1, 10, 9, 30, 0, 123456000, time.UTC)},
		{"2025-01-10 09:30:00", time.Date(2025, 1, 10, 9, 30, 0, 0, time.UTC)},
		{"2025-01-10", time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		if got := Time(Ptr(tt.in)); !got.Equal(tt.want) {
			t.Errorf("Time(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
	if !Time(nil).IsZero() || !Time(Ptr("yesterday")).IsZero() {
		t.Error("unparseable input must give zero time")
	}
}

func TestParseDateAndDay(t *testing.T) {
	d, ok := ParseDate("2025-03-01", time.UTC)
	if !ok || d.Day() != 1 || d.Month() != time.March {
		t.Errorf("ParseDate = %v, %v", d, ok)
	}
	if _, ok := ParseDate("03/01/2025", nil); ok {
		t.Error("expected failure for non ISO date")
	}
	noon := time.Date(2025, 3, 1, 12, 30, 0, 0, time.UTC)
	if !Day(noon).Equal(d) {
		t.Errorf("Day(%v) = %v", noon, Day(noon))
	}
}

func TestClockMinutes(t *testing.T) {
	tests := []struct {
		in   string
		want int
		ok   bool
	}{
		{"9:00", 540, true},
		{"10:00", 600, true},
		{"14:30:00", 870, true},
		{"02:00 PM", 840, true},
		{"2:15pm", 855, true},
		{"12:00 AM", 0, true},
		{"noon", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		got, ok := ClockMinutes(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ClockMinutes(%q) = %d, %v; want %d, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestList(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want int
		err  bool
	}{
		{"bare array", `[1,2,3]`, 3, false},
		{"wrapped", `{"items":[1,2]}`, 2, false},
		{"wrapped missing key", `{"other":[1]}`, 0, false},
		{"null", `null`, 0, false},
		{"empty", ``, 0, false},
		{"wrong type", `"x"`, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := List[int]([]byte(tt.raw), "items")
			if (err != nil) != tt.err {
				t.Fatalf("unexpected error state: %v", err)
			}
			if !tt.err && (got == nil || len(got) != tt.want) {
				t.Errorf("expected %d items, got %v", tt.want, got)
			}
		})
	}
}
