package availability

import (
	"github.com/BruksfildServices01/slot-scheduler/internal/httperr"
	"github.com/BruksfildServices01/slot-scheduler/internal/models"
	"github.com/BruksfildServices01/slot-scheduler/internal/timezone"
)

// Window is a candidate [Start, End) on one weekday, in minutes since midnight.
type Window struct {
	DayOfWeek int
	Start     int
	End       int
}

// ParseWindow validates raw rule fields.
func ParseWindow(dayOfWeek int, start, end string) (Window, error) {
	if dayOfWeek < 0 || dayOfWeek > 6 {
		return Window{}, httperr.Validation("invalid_day_of_week")
	}

	s, err := timezone.ParseClock(start)
	if err != nil {
		return Window{}, httperr.Validation("invalid_start_time")
	}
	e, err := timezone.ParseClock(end)
	if err != nil {
		return Window{}, httperr.Validation("invalid_end_time")
	}

	if s >= e {
		return Window{}, httperr.Validation("start_after_end")
	}

	return Window{DayOfWeek: dayOfWeek, Start: s, End: e}, nil
}

// Overlaps is the half-open interval test; touching windows do not overlap.
func (w Window) Overlaps(o Window) bool {
	return w.DayOfWeek == o.DayOfWeek && w.Start < o.End && w.End > o.Start
}

// RulePatch is a partial update; nil fields keep the stored value.
type RulePatch struct {
	DayOfWeek *int
	StartTime *string
	EndTime   *string
	Active    *bool
}

func (p RulePatch) IsEmpty() bool {
	return p.DayOfWeek == nil && p.StartTime == nil && p.EndTime == nil && p.Active == nil
}

// Merge applies the patch over the stored rule and validates the
// effective values, so an {endTime}-only update cannot invert the window.
func Merge(current models.AvailabilityRule, p RulePatch) (models.AvailabilityRule, Window, error) {
	next := current

	if p.DayOfWeek != nil {
		next.DayOfWeek = *p.DayOfWeek
	}
	if p.StartTime != nil {
		next.StartTime = *p.StartTime
	}
	if p.EndTime != nil {
		next.EndTime = *p.EndTime
	}
	if p.Active != nil {
		next.Active = *p.Active
	}

	w, err := ParseWindow(next.DayOfWeek, next.StartTime, next.EndTime)
	if err != nil {
		return current, Window{}, err
	}
	return next, w, nil
}
