package models

// Role is the closed set of user roles known to the client.
type Role string

const (
	RoleApplicant    Role = "applicant"
	RoleReviewer     Role = "reviewer"
	RoleSponsorDonor Role = "sponsor_donor"
	RoleSteward      Role = "steward"
	RoleEngrAdmin    Role = "engr_admin"
)

// Roles lists every known role, in dashboard display order.
var Roles = []Role{RoleApplicant, RoleReviewer, RoleSponsorDonor, RoleSteward, RoleEngrAdmin}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleApplicant, RoleReviewer, RoleSponsorDonor, RoleSteward, RoleEngrAdmin:
		return true
	}
	return false
}

// User is the authenticated identity. It is never persisted client-side;
// it is re-derived on each hydration from the backend. Role is immutable
// from the client's perspective.
type User struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	Role      Role   `json:"role"`
	IsActive  bool   `json:"is_active"`
}

// DisplayName returns a presentable name, falling back to the email.
func (u *User) DisplayName() string {
	switch {
	case u.FirstName != "" && u.LastName != "":
		return u.FirstName + " " + u.LastName
	case u.FirstName != "":
		return u.FirstName
	default:
		return u.Email
	}
}
