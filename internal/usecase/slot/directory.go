package slot

import (
	"context"

	"github.com/BruksfildServices01/slot-scheduler/internal/domain/access"
	"github.com/BruksfildServices01/slot-scheduler/internal/models"
)

// Directory is what slot operations read about an operator's business.
type Directory interface {
	access.OperatorLookup
	GetBusiness(ctx context.Context, id uint) (*models.Business, error)
}

func userRef(scope access.Scope) *uint {
	if scope.UserID == 0 {
		return nil
	}
	id := scope.UserID
	return &id
}
