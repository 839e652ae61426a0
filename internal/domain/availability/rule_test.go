package availability

import (
	"testing"

	"github.com/BruksfildServices01/slot-scheduler/internal/httperr"
	"github.com/BruksfildServices01/slot-scheduler/internal/models"
)

func mustWindow(t *testing.T, day int, start, end string) Window {
	t.Helper()
	w, err := ParseWindow(day, start, end)
	if err != nil {
		t.Fatalf("ParseWindow(%d, %s, %s): %v", day, start, end, err)
	}
	return w
}

func TestParseWindow(t *testing.T) {
	cases := []struct {
		day        int
		start, end string
		code       string
	}{
		{day: 1, start: "09:00", end: "12:00"},
		{day: 0, start: "00:00", end: "23:59"},
		{day: 7, start: "09:00", end: "12:00", code: "invalid_day_of_week"},
		{day: -1, start: "09:00", end: "12:00", code: "invalid_day_of_week"},
		{day: 1, start: "9am", end: "12:00", code: "invalid_start_time"},
		{day: 1, start: "09:00", end: "25:00", code: "invalid_end_time"},
		{day: 1, start: "12:00", end: "12:00", code: "start_after_end"},
		{day: 1, start: "13:00", end: "12:00", code: "start_after_end"},
	}

	for _, c := range cases {
		_, err := ParseWindow(c.day, c.start, c.end)
		if c.code == "" {
			if err != nil {
				t.Fatalf("%d %s-%s: unexpected error %v", c.day, c.start, c.end, err)
			}
			continue
		}
		if !httperr.IsKind(err, httperr.KindValidation) || !httperr.IsBusiness(err, c.code) {
			t.Fatalf("%d %s-%s: expected %s, got %v", c.day, c.start, c.end, c.code, err)
		}
	}
}

func TestOverlaps(t *testing.T) {
	base := mustWindow(t, 1, "09:00", "12:00")

	cases := []struct {
		other Window
		want  bool
	}{
		{mustWindow(t, 1, "11:00", "13:00"), true},
		{mustWindow(t, 1, "08:00", "09:30"), true},
		{mustWindow(t, 1, "10:00", "11:00"), true},
		{mustWindow(t, 1, "08:00", "13:00"), true},
		{mustWindow(t, 1, "12:00", "13:00"), false},
		{mustWindow(t, 1, "07:00", "09:00"), false},
		{mustWindow(t, 2, "10:00", "11:00"), false},
	}

	for _, c := range cases {
		if got := base.Overlaps(c.other); got != c.want {
			t.Fatalf("%+v vs %+v: expected %v, got %v", base, c.other, c.want, got)
		}
		if got := c.other.Overlaps(base); got != c.want {
			t.Fatalf("overlap should be symmetric for %+v", c.other)
		}
	}
}

func TestMergeValidatesEffectiveValues(t *testing.T) {
	current := models.AvailabilityRule{ID: 1, OperatorID: 3, DayOfWeek: 1, StartTime: "09:00", EndTime: "12:00", Active: true}

	end := "08:00"
	if _, _, err := Merge(current, RulePatch{EndTime: &end}); !httperr.IsBusiness(err, "start_after_end") {
		t.Fatalf("end-only patch before stored start must fail, got %v", err)
	}

	end = "13:30"
	next, w, err := Merge(current, RulePatch{EndTime: &end})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if next.StartTime != "09:00" || next.EndTime != "13:30" || w.End != 13*60+30 {
		t.Fatalf("unexpected merge result %+v %+v", next, w)
	}
	if current.EndTime != "12:00" {
		t.Fatalf("merge must not mutate the stored rule")
	}

	day := 3
	inactive := false
	next, _, err = Merge(current, RulePatch{DayOfWeek: &day, Active: &inactive})
	if err != nil || next.DayOfWeek != 3 || next.Active {
		t.Fatalf("unexpected merge result %+v %v", next, err)
	}
}

func TestRulePatchIsEmpty(t *testing.T) {
	if !(RulePatch{}).IsEmpty() {
		t.Fatalf("zero patch should be empty")
	}
	s := "10:00"
	if (RulePatch{StartTime: &s}).IsEmpty() {
		t.Fatalf("patch with start should not be empty")
	}
}
