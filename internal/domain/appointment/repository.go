package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/slot-scheduler/internal/domain/access"
	"github.com/BruksfildServices01/slot-scheduler/internal/models"
)

type ListFilter struct {
	Restriction access.ListRestriction

	Status     Status
	OperatorID uint
	BusinessID uint
	From       *time.Time
	To         *time.Time

	Page  int
	Limit int
}

const (
	DefaultPageLimit = 50
	MaxPageLimit     = 200
)

func NormalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultPageLimit
	}
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}
	return page, limit
}

type Repository interface {
	// -------- Directory --------
	GetOperator(ctx context.Context, id uint) (*models.Operator, error)

	GetBusiness(ctx context.Context, id uint) (*models.Business, error)

	GetService(ctx context.Context, id uint) (*models.Service, error)

	// GetOperatorService returns nil, nil when no override exists.
	GetOperatorService(ctx context.Context, operatorID, serviceID uint) (*models.OperatorService, error)

	GetUser(ctx context.Context, id uint) (*models.User, error)

	GetSlot(ctx context.Context, id uint) (*models.ScheduleSlot, error)

	// -------- Booking protocol --------

	// Book flips the slot AVAILABLE -> BOOKED and inserts ap in one
	// transaction. A lost race returns CONFLICT slot_not_available.
	Book(ctx context.Context, ap *models.Appointment) error

	// Cancel moves the appointment to CANCELLED from a cancellable state and
	// releases its slot BOOKED -> AVAILABLE in one transaction.
	Cancel(ctx context.Context, id uint, at time.Time, notes string) error

	// Transition is a conditional status write; false means the stored
	// status was no longer a valid source.
	Transition(ctx context.Context, id uint, t Transition, at time.Time) (bool, error)

	// -------- Reads --------
	GetAppointment(ctx context.Context, id uint) (*models.Appointment, error)

	ListAppointments(ctx context.Context, f ListFilter) ([]models.Appointment, int64, error)
}
