package user

// Role is the access level carried in the verified token.
type Role string

const (
	RoleSuperAdmin Role = "super_admin"
	RoleHR         Role = "hr"
	RoleManager    Role = "manager"
	RoleEmployee   Role = "employee"
)

// Actor identifies the authenticated principal behind a request. It is
// threaded explicitly through every service call; there is no ambient
// session state below the HTTP layer.
type Actor struct {
	UserID     string
	EmployeeID string
	Role       Role
}

// IsApprover reports whether the role participates in approvals at all.
func (r Role) IsApprover() bool {
	return r == RoleManager || r == RoleHR || r == RoleSuperAdmin
}

// IsHRLevel reports whether the role carries HR authority.
func (r Role) IsHRLevel() bool {
	return r == RoleHR || r == RoleSuperAdmin
}

// ValidRole reports whether s is a known role value.
func ValidRole(s string) bool {
	switch Role(s) {
	case RoleSuperAdmin, RoleHR, RoleManager, RoleEmployee:
		return true
	}
	return false
}
