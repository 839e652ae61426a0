package access

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/slot-scheduler/internal/httperr"
	"github.com/BruksfildServices01/slot-scheduler/internal/models"
)

type OperatorLookup interface {
	GetOperator(ctx context.Context, id uint) (*models.Operator, error)
}

// CheckOperator decides whether scope may act on op.
//
// allowOperator is false for operations reserved to TENANT/OWNER; the
// OPERATOR role is then rejected even for its own calendar.
func CheckOperator(op *models.Operator, scope Scope, allowOperator bool) error {
	switch scope.Role {
	case RoleOwner:
		return nil
	case RoleTenant:
		if scope.TenantID != 0 && scope.TenantID == op.TenantID {
			return nil
		}
	case RoleOperator:
		if allowOperator && scope.UserID != 0 && scope.UserID == op.UserID {
			return nil
		}
	}
	return httperr.Forbidden("operator_forbidden")
}

// ResolveOperator loads the operator and applies CheckOperator.
func ResolveOperator(
	ctx context.Context,
	lookup OperatorLookup,
	operatorID uint,
	scope Scope,
	allowOperator bool,
) (*models.Operator, error) {

	op, err := lookup.GetOperator(ctx, operatorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.NotFound("operator_not_found")
		}
		return nil, httperr.Storage("get operator", err)
	}

	if err := CheckOperator(op, scope, allowOperator); err != nil {
		return nil, err
	}
	return op, nil
}

// AppointmentParties carries what the appointment decision needs beyond
// the appointment row itself.
type AppointmentParties struct {
	UserID           uint
	OperatorUserID   uint
	BusinessTenantID uint
}

func CanSeeAppointment(scope Scope, p AppointmentParties) bool {
	switch scope.Role {
	case RoleOwner:
		return true
	case RoleTenant:
		return scope.TenantID != 0 && scope.TenantID == p.BusinessTenantID
	case RoleOperator:
		return scope.UserID != 0 && scope.UserID == p.OperatorUserID
	case RoleUser:
		return scope.UserID != 0 && scope.UserID == p.UserID
	default:
		return false
	}
}

// ListRestriction is the listing counterpart of CanSeeAppointment: at most
// one of the fields is set, except for OWNER where none is.
type ListRestriction struct {
	UserID         *uint
	OperatorUserID *uint
	TenantID       *uint
}

func RestrictionFor(scope Scope) (ListRestriction, error) {
	switch scope.Role {
	case RoleOwner:
		return ListRestriction{}, nil
	case RoleTenant:
		if scope.TenantID == 0 {
			break
		}
		id := scope.TenantID
		return ListRestriction{TenantID: &id}, nil
	case RoleOperator:
		if scope.UserID == 0 {
			break
		}
		id := scope.UserID
		return ListRestriction{OperatorUserID: &id}, nil
	case RoleUser:
		if scope.UserID == 0 {
			break
		}
		id := scope.UserID
		return ListRestriction{UserID: &id}, nil
	}
	return ListRestriction{}, httperr.Forbidden("scope_forbidden")
}

// CheckBusiness guards business-level records (catalog, audit trail):
// OWNER always, TENANT on its own businesses, nobody else.
func CheckBusiness(b *models.Business, scope Scope) error {
	switch scope.Role {
	case RoleOwner:
		return nil
	case RoleTenant:
		if scope.TenantID != 0 && scope.TenantID == b.TenantID {
			return nil
		}
	}
	return httperr.Forbidden("business_forbidden")
}
