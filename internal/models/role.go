// Package models contains data models for the auth service.
package models

// Role classifies what kind of account a user holds.
type Role string

const (
	RoleAdmin      Role = "Admin"
	RoleManager    Role = "Manager"
	RoleEmployee   Role = "Employee"
	RoleDemo       Role = "Demo"
	RoleGoogleUser Role = "GoogleUser"
)

// DefaultRole is assigned to accounts created through self-service signup.
const DefaultRole = RoleEmployee

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleEmployee, RoleDemo, RoleGoogleUser:
		return true
	}
	return false
}
