package entities

import "time"

type Role string

const (
	RoleResident  Role = "resident"
	RoleOperator  Role = "operator"
	RoleAdmin     Role = "admin"
	RoleCollector Role = "collector"
)

func (r Role) String() string {
	return string(r)
}

func (r Role) IsValid() bool {
	switch r {
	case RoleResident, RoleOperator, RoleAdmin, RoleCollector:
		return true
	}
	return false
}

// StaffRoles receive broadcast notifications about damaged bins.
var StaffRoles = []Role{RoleOperator, RoleAdmin}

type User struct {
	ID          string
	Name        string
	Email       string
	Role        Role
	Active      bool
	DeviceToken *string
	CreatedAt   time.Time
}

// Actor is the authenticated caller of an operation.
type Actor struct {
	ID   string
	Role Role
}

func (a Actor) HasRole(roles ...Role) bool {
	for _, r := range roles {
		if a.Role == r {
			return true
		}
	}
	return false
}
