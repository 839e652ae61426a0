package appointment

import (
	"strings"

	"github.com/BruksfildServices01/slot-scheduler/internal/httperr"
	"github.com/BruksfildServices01/slot-scheduler/internal/models"
)

const MaxNotesLength = 500

// ===============================
// Pricing snapshot
// ===============================

type Snapshot struct {
	DurationMinutes int
	PriceCents      int64
}

// Resolve picks duration and price for a booking. An inactive service, or
// an inactive operator override, means the service is not offered.
func Resolve(svc *models.Service, override *models.OperatorService) (Snapshot, error) {
	if svc == nil || !svc.Active {
		return Snapshot{}, httperr.Validation("service_inactive")
	}

	snap := Snapshot{
		DurationMinutes: svc.DurationMinutes,
		PriceCents:      svc.PriceCents,
	}

	if override == nil {
		return snap, nil
	}
	if !override.Active {
		return Snapshot{}, httperr.Validation("service_not_offered")
	}
	if override.DurationMinutes != nil {
		snap.DurationMinutes = *override.DurationMinutes
	}
	if override.PriceCents != nil {
		snap.PriceCents = *override.PriceCents
	}
	return snap, nil
}

// ===============================
// Notes
// ===============================

func CleanNotes(notes string) (string, error) {
	notes = strings.TrimSpace(notes)
	if len(notes) > MaxNotesLength {
		return "", httperr.Validation("notes_too_long")
	}
	return notes, nil
}

// WithCancelReason appends the reason to existing notes, truncating to
// the column size.
func WithCancelReason(notes, reason string) string {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return notes
	}

	line := "Cancelled: " + reason
	if notes != "" {
		line = notes + "\n" + line
	}
	if len(line) > MaxNotesLength {
		line = line[:MaxNotesLength]
	}
	return line
}
