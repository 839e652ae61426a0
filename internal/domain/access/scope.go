package access

import "strings"

// ===============================
// Roles
// ===============================

type Role string

const (
	RoleOwner    Role = "OWNER"
	RoleTenant   Role = "TENANT"
	RoleOperator Role = "OPERATOR"
	RoleUser     Role = "USER"
)

func ParseRole(s string) (Role, bool) {
	switch r := Role(strings.ToUpper(strings.TrimSpace(s))); r {
	case RoleOwner, RoleTenant, RoleOperator, RoleUser:
		return r, true
	default:
		return "", false
	}
}

// IsStaff reports roles allowed to manage calendars and appointment
// lifecycles. Customers (USER) are not staff.
func (r Role) IsStaff() bool {
	return r == RoleOwner || r == RoleTenant || r == RoleOperator
}

// ===============================
// Scope
// ===============================

// Scope is the caller identity every core operation receives explicitly.
type Scope struct {
	Role     Role
	TenantID uint
	UserID   uint
}
