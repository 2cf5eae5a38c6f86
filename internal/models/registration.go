package models

import "time"

// Academic year codes accepted on the registration form.
const (
	YearFE = "FE"
	YearSE = "SE"
	YearTE = "TE"
	YearBE = "BE"
)

// Registration represents one event sign-up submission. Records are
// insert-only: never updated or deleted, and duplicates are allowed.
type Registration struct {
	ID               string    `db:"id" json:"id,omitempty"`
	Name             string    `db:"name" json:"name"`
	Email            string    `db:"email" json:"email"`
	Phone            string    `db:"phone" json:"phone,omitempty"`
	RollNo           string    `db:"roll_no" json:"rollNo,omitempty"`
	EmergencyContact string    `db:"emergency_contact" json:"emergencyContact,omitempty"`
	EmergencyPhone   string    `db:"emergency_phone" json:"emergencyPhone,omitempty"`
	Year             string    `db:"year" json:"year,omitempty"`
	Branch           string    `db:"branch" json:"branch,omitempty"`
	RegistrationDate time.Time `db:"registration_date" json:"registrationDate"`
}

// branchOptionsByYear maps each year code to the branches open for it.
var branchOptionsByYear = map[string][]string{
	YearFE: {"Comps A", "Comps B", "Comps C", "CSE A", "CSE B", "CSE C", "Mech", "ECS"},
	YearSE: {"Comps A", "Comps B", "Comps C", "CSE", "ECS", "Mech"},
	YearTE: {"Comps A", "Comps B", "Mech", "ECS", "AIDS"},
	YearBE: {"Comps A", "Comps B", "Mech", "ECS", "AIDS"},
}

// Years lists the accepted year codes in form display order.
func Years() []string {
	return []string{YearFE, YearSE, YearTE, YearBE}
}

// ValidYear reports whether code is one of the accepted year codes.
func ValidYear(code string) bool {
	_, ok := branchOptionsByYear[code]
	return ok
}

// BranchesForYear returns the branch options for a year code. Unknown
// codes yield an empty list, matching the reference form behaviour.
func BranchesForYear(code string) []string {
	options, ok := branchOptionsByYear[code]
	if !ok {
		return nil
	}
	out := make([]string, len(options))
	copy(out, options)
	return out
}

// BranchValidForYear reports whether branch belongs to the year's options.
func BranchValidForYear(year, branch string) bool {
	for _, option := range branchOptionsByYear[year] {
		if option == branch {
			return true
		}
	}
	return false
}
