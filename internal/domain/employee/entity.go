package employee

import "time"

type Employee struct {
	ID          string
	FullName    string
	Role        Role
	PhoneNumber string
	Address     *string
	JoinDate    time.Time
	Status      Status
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type Role string

const (
	// RoleMusyrif delivers halaqah sessions and is paid per session.
	RoleMusyrif Role = "musyrif"
	// RoleAdmin and RoleStaff are salaried per period.
	RoleAdmin Role = "admin"
	RoleStaff Role = "staff"
)

type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// PayrollEligibleRoles lists the roles a payroll run considers when no
// explicit employee list is given.
func PayrollEligibleRoles() []Role {
	return []Role{RoleMusyrif, RoleAdmin, RoleStaff}
}

func IsValidRole(r string) bool {
	switch Role(r) {
	case RoleMusyrif, RoleAdmin, RoleStaff:
		return true
	}
	return false
}
