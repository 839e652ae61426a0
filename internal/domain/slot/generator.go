package slot

import (
	"time"

	"github.com/BruksfildServices01/slot-scheduler/internal/httperr"
	"github.com/BruksfildServices01/slot-scheduler/internal/models"
	"github.com/BruksfildServices01/slot-scheduler/internal/timezone"
)

const (
	MaxRangeDays       = 31
	MinDurationMinutes = 5
	MaxDurationMinutes = 480
)

// Range is an inclusive calendar range.
type Range struct {
	From time.Time
	To   time.Time
}

// ParseRange validates dateFrom/dateTo against today (already resolved in
// the business time zone).
func ParseRange(dateFrom, dateTo, today string) (Range, error) {
	from, err := timezone.ParseDate(dateFrom)
	if err != nil {
		return Range{}, httperr.Validation("invalid_date_from")
	}
	to, err := timezone.ParseDate(dateTo)
	if err != nil {
		return Range{}, httperr.Validation("invalid_date_to")
	}

	if to.Before(from) {
		return Range{}, httperr.Validation("date_to_before_date_from")
	}
	if days := int(to.Sub(from).Hours()/24) + 1; days > MaxRangeDays {
		return Range{}, httperr.Validation("range_too_long")
	}

	if dateFrom < today {
		return Range{}, httperr.Validation("date_in_past")
	}

	return Range{From: from, To: to}, nil
}

func ValidateDuration(minutes int) error {
	if minutes < MinDurationMinutes || minutes > MaxDurationMinutes {
		return httperr.Validation("invalid_duration")
	}
	return nil
}

// Dates lists every date of r whose weekday has at least one rule.
func (r Range) Dates(byDay map[int][]models.AvailabilityRule) []string {
	var out []string
	for d := r.From; !d.After(r.To); d = d.AddDate(0, 0, 1) {
		if len(byDay[int(d.Weekday())]) == 0 {
			continue
		}
		out = append(out, d.Format(timezone.DateLayout))
	}
	return out
}

func GroupByDay(rules []models.AvailabilityRule) map[int][]models.AvailabilityRule {
	out := make(map[int][]models.AvailabilityRule)
	for _, r := range rules {
		if !r.Active {
			continue
		}
		out[r.DayOfWeek] = append(out[r.DayOfWeek], r)
	}
	return out
}

// Key identifies a slot within a date.
func Key(start, end string) string {
	return start + "-" + end
}

// Existing indexes stored slots as date -> set of Key(start, end).
type Existing map[string]map[string]struct{}

func IndexExisting(slots []models.ScheduleSlot) Existing {
	idx := make(Existing)
	for _, s := range slots {
		set, ok := idx[s.Date]
		if !ok {
			set = make(map[string]struct{})
			idx[s.Date] = set
		}
		set[Key(s.StartTime, s.EndTime)] = struct{}{}
	}
	return idx
}

func (e Existing) Has(date, start, end string) bool {
	_, ok := e[date][Key(start, end)]
	return ok
}

// ======================================================
// EXPANSION
// ======================================================

// Expand walks each rule of each date and emits back-to-back slots of
// durationMinutes that fit entirely inside the rule window. Slots already
// present in existing are skipped.
func Expand(
	operatorID uint,
	dates []string,
	byDay map[int][]models.AvailabilityRule,
	durationMinutes int,
	existing Existing,
) []models.ScheduleSlot {
	var out []models.ScheduleSlot
	emitted := make(Existing)

	for _, date := range dates {
		d, err := timezone.ParseDate(date)
		if err != nil {
			continue
		}

		for _, rule := range byDay[int(d.Weekday())] {
			start, err := timezone.ParseClock(rule.StartTime)
			if err != nil {
				continue
			}
			end, err := timezone.ParseClock(rule.EndTime)
			if err != nil {
				continue
			}

			for cursor := start; cursor+durationMinutes <= end; cursor += durationMinutes {
				s := timezone.FormatClock(cursor)
				e := timezone.FormatClock(cursor + durationMinutes)

				if existing.Has(date, s, e) || emitted.Has(date, s, e) {
					continue
				}

				set, ok := emitted[date]
				if !ok {
					set = make(map[string]struct{})
					emitted[date] = set
				}
				set[Key(s, e)] = struct{}{}

				out = append(out, models.ScheduleSlot{
					OperatorID: operatorID,
					Date:       date,
					StartTime:  s,
					EndTime:    e,
					Status:     string(StatusAvailable),
				})
			}
		}
	}

	return out
}
