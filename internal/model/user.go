// Package model defines the data records shared between the session
// subsystem and its storage layer.
package model

// Account roles. The backend may prefix the role claim with "ROLE_"; the
// identity resolver strips that before the value lands here.
const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

// User is the canonical local representation of the signed-in user.
//
// ID is always a canonical UUID. It is the key the reading-progress tracker
// files its records under, so once assigned it stays stable for the lifetime
// of the stored credential.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}
