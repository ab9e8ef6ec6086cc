package domain

// Role is the closed set of access levels. Roles are strictly ordered:
// admin can do everything hr can, hr everything employee can.
type Role string

const (
	RoleEmployee Role = "employee"
	RoleHR       Role = "hr"
	RoleAdmin    Role = "admin"
)

var roleRank = map[Role]int{
	RoleEmployee: 1,
	RoleHR:       2,
	RoleAdmin:    3,
}

// ParseRole maps a stored string to a Role. Unknown values return
// ok=false and must be treated as having no capabilities.
func ParseRole(s string) (Role, bool) {
	r := Role(s)
	if _, known := roleRank[r]; !known {
		return "", false
	}
	return r, true
}

// Can reports whether the role meets or exceeds the required level.
// Unknown roles always fail.
func (r Role) Can(required Role) bool {
	have, ok := roleRank[r]
	if !ok {
		return false
	}
	want, ok := roleRank[required]
	if !ok {
		return false
	}
	return have >= want
}

func (r Role) String() string {
	return string(r)
}

// Identity is the authenticated caller, resolved by the auth middleware
// and passed explicitly into services.
type Identity struct {
	UserID string
	Email  string
	Role   Role
}

// IsElevated reports whether the identity may act on other users' data.
func (id Identity) IsElevated() bool {
	return id.Role.Can(RoleHR)
}
