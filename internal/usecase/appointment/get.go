package appointment

import (
	"context"

	"github.com/BruksfildServices01/slot-scheduler/internal/domain/access"
	"github.com/BruksfildServices01/slot-scheduler/internal/models"
)

type GetAppointment struct {
	Deps
}

func NewGetAppointment(deps Deps) *GetAppointment {
	return &GetAppointment{Deps: deps.withDefaults()}
}

func (uc *GetAppointment) Execute(
	ctx context.Context,
	scope access.Scope,
	appointmentID uint,
) (*models.Appointment, error) {

	t, err := loadVisible(ctx, uc.Repo, scope, appointmentID)
	if err != nil {
		return nil, err
	}
	return t.ap, nil
}
