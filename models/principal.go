package models

// Principal is the authenticated actor behind a request, resolved once by
// the auth middleware from the token claims and passed into every
// operation instead of being re-derived ad hoc.
type Principal struct {
	ID       string
	Role     string
	Category IssueCategory // set only for staff
}

// IsStaff reports whether the principal is a staff member.
func (p Principal) IsStaff() bool { return p.Role == RoleStaff }

// IsAdmin reports whether the principal is an administrator.
func (p Principal) IsAdmin() bool { return p.Role == RoleAdmin }
