package appointment

import "github.com/BruksfildServices01/slot-scheduler/internal/httperr"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusConfirmed Status = "CONFIRMED"
	StatusCancelled Status = "CANCELLED"
	StatusCompleted Status = "COMPLETED"
	StatusNoShow    Status = "NO_SHOW"
)

func ParseStatus(s string) (Status, bool) {
	switch Status(s) {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted, StatusNoShow:
		return Status(s), true
	}
	return "", false
}

func InitialStatus() Status {
	return StatusPending
}

func (s Status) IsTerminal() bool {
	return s == StatusCancelled || s == StatusCompleted || s == StatusNoShow
}

// ===============================
// Transitions
// ===============================

type Transition struct {
	Name string
	From []Status
	To   Status
}

var (
	Confirm  = Transition{Name: "confirm", From: []Status{StatusPending}, To: StatusConfirmed}
	Cancel   = Transition{Name: "cancel", From: []Status{StatusPending, StatusConfirmed}, To: StatusCancelled}
	Complete = Transition{Name: "complete", From: []Status{StatusConfirmed}, To: StatusCompleted}
	NoShow   = Transition{Name: "no_show", From: []Status{StatusConfirmed}, To: StatusNoShow}
)

func (t Transition) Allows(current Status) bool {
	for _, s := range t.From {
		if s == current {
			return true
		}
	}
	return false
}

// Check reports an invalid source state as CONFLICT.
func (t Transition) Check(current Status) error {
	if !t.Allows(current) {
		return httperr.Conflict("invalid_status_transition")
	}
	return nil
}

// FromStrings is the storage form of From.
func (t Transition) FromStrings() []string {
	out := make([]string, len(t.From))
	for i, s := range t.From {
		out[i] = string(s)
	}
	return out
}
