package slot

import "github.com/BruksfildServices01/slot-scheduler/internal/httperr"

type Status string

const (
	StatusAvailable Status = "AVAILABLE"
	StatusBooked    Status = "BOOKED"
	StatusBlocked   Status = "BLOCKED"
)

func ParseStatus(s string) (Status, bool) {
	switch Status(s) {
	case StatusAvailable, StatusBooked, StatusBlocked:
		return Status(s), true
	}
	return "", false
}

// ======================================================
// MANUAL STATUS CHANGE
// ======================================================

// CheckManualChange guards the AVAILABLE <-> BLOCKED toggle. A BOOKED slot
// only leaves that state through appointment cancellation.
func CheckManualChange(current, target Status) error {
	if target != StatusAvailable && target != StatusBlocked {
		return httperr.Validation("invalid_slot_status")
	}
	if current == StatusBooked {
		return httperr.Conflict("slot_booked")
	}
	if current == target {
		return httperr.Validation("slot_status_unchanged")
	}
	return nil
}

func CanDelete(current Status) error {
	if current == StatusBooked {
		return httperr.Conflict("slot_booked")
	}
	return nil
}
