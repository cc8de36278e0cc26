package authz

const (
	RoleAdmin    = "ADMIN"
	RoleEmployee = "EMPLOYEE"
)

// IsAdmin reports whether the role sees every record system-wide.
func IsAdmin(role string) bool {
	return role == RoleAdmin
}

func IsKnown(role string) bool {
	return role == RoleAdmin || role == RoleEmployee
}
