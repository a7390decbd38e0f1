package models

import "time"

// User is a portal member profile. Identity and session issuance live with
// the external auth provider; only the role assignment is managed here.
type User struct {
	ID        string    `json:"id"`
	Email     *string   `json:"email"`
	FullName  *string   `json:"full_name"`
	Role      string    `json:"role"` // PARTNER, DIRECTOR, MANAGER
	CreatedAt time.Time `json:"created_at"`
}

// RoleUpdate is the body of a role change request.
type RoleUpdate struct {
	Role string `json:"role"`
}

func (u *RoleUpdate) Validate() string {
	switch u.Role {
	case "PARTNER", "DIRECTOR", "MANAGER":
	default:
		return "role must be one of: PARTNER, DIRECTOR, MANAGER"
	}
	return ""
}
