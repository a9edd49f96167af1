package constants

import "fmt"

const (
	RoleTeacher = "teacher"
	RoleStudent = "student"
	RoleSchool  = "school"
)

// Template for role error messages
const (
	ErrOnlyRolesCanAccess = "Only %s accounts can access %s."
)

func RoleError(feature string, roles ...string) string {
	return fmt.Sprintf(ErrOnlyRolesCanAccess, joinRoles(roles), feature)
}

func joinRoles(roles []string) string {
	switch len(roles) {
	case 0:
		return "authorized"
	case 1:
		return roles[0]
	}
	out := ""
	for i, r := range roles {
		switch {
		case i == 0:
			out = r
		case i == len(roles)-1:
			out += " or " + r
		default:
			out += ", " + r
		}
	}
	return out
}

// ==========================
// ✅ Grouped Role Slices
// ==========================
var (
	AllRoles = []string{
		RoleTeacher,
		RoleStudent,
		RoleSchool,
	}

	ReviewerRoles = []string{
		RoleStudent,
		RoleSchool,
	}
)

func IsValidRole(role string) bool {
	for _, r := range AllRoles {
		if r == role {
			return true
		}
	}
	return false
}
