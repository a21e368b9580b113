package models

// Role represents the role the API assigns to an account.
type Role string

const (
	RoleGuest Role = "guest" // no session, never sent by the API
	RoleUser  Role = "user"  // applicant, owns their own applications
	RoleAdmin Role = "admin" // posts jobs and moves applications through statuses
)

// RoleHierarchy defines the privilege level of each role.
// Higher numbers represent higher privileges.
var RoleHierarchy = map[Role]int{
	RoleGuest: 0,
	RoleUser:  20,
	RoleAdmin: 70,
}

// IsValid checks if the Role is one of the predefined valid roles.
func (r Role) IsValid() bool {
	_, exists := RoleHierarchy[r]
	return exists
}

// String implements the fmt.Stringer interface, providing a string representation of the Role.
func (r Role) String() string {
	return string(r)
}

// UnmarshalText decodes a role sent by the API. Only "admin" grants admin
// rights; any other value belongs to a signed-in account and reads as user.
func (r *Role) UnmarshalText(text []byte) error {
	if Role(text) == RoleAdmin {
		*r = RoleAdmin
	} else {
		*r = RoleUser
	}
	return nil
}

func (r Role) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// AtLeast reports whether r carries at least the privileges of min.
// Unknown roles never satisfy a check.
func (r Role) AtLeast(min Role) bool {
	if r.IsValid() && min.IsValid() {
		return RoleHierarchy[r] >= RoleHierarchy[min]
	}
	return false
}
