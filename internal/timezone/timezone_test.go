package timezone

import (
	"testing"
	"time"
)

func TestParseClock(t *testing.T) {
	cases := []struct {
		in      string
		minutes int
		wantErr bool
	}{
		{in: "00:00", minutes: 0},
		{in: "09:05", minutes: 545},
		{in: "14:35", minutes: 875},
		{in: "23:59", minutes: 1439},
		{in: "24:00", wantErr: true},
		{in: "9:00", wantErr: true},
		{in: "09:60", wantErr: true},
		{in: "ab:cd", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, c := range cases {
		got, err := ParseClock(c.in)
		if c.wantErr {
			if err == nil {
				t.Fatalf("%q: expected error, got %d", c.in, got)
			}
			continue
		}
		if err != nil {
			t.Fatalf("%q: unexpected error: %v", c.in, err)
		}
		if got != c.minutes {
			t.Fatalf("%q: expected %d, got %d", c.in, c.minutes, got)
		}
	}
}

func TestFormatClock(t *testing.T) {
	cases := map[int]string{
		0:    "00:00",
		30:   "00:30",
		545:  "09:05",
		1020: "17:00",
		1439: "23:59",
	}
	for in, want := range cases {
		if got := FormatClock(in); got != want {
			t.Fatalf("expected %s, got %s", want, got)
		}
	}
}

func TestTodayInUsesBusinessZone(t *testing.T) {
	// 01:30 UTC is still the previous day in São Paulo (UTC-3).
	now := time.Date(2026, 3, 10, 1, 30, 0, 0, time.UTC)

	if got := TodayIn(now, "America/Sao_Paulo"); got != "2026-03-09" {
		t.Fatalf("expected 2026-03-09, got %s", got)
	}
	if got := TodayIn(now, "Asia/Tokyo"); got != "2026-03-10" {
		t.Fatalf("expected 2026-03-10, got %s", got)
	}
}

func TestLocationFallsBackToDefault(t *testing.T) {
	loc := Location("Not/AZone")
	if loc.String() != DefaultTimezone {
		t.Fatalf("expected %s, got %s", DefaultTimezone, loc.String())
	}
}

func TestAt(t *testing.T) {
	got, err := At("2026-03-10", "09:30", "America/Sao_Paulo")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := time.Date(2026, 3, 10, 12, 30, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("expected %s, got %s", want, got.UTC())
	}
}
