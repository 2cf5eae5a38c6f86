package form

import (
	"regexp"
	"strings"

	"github.com/zeon-projects/beach-cleanup-api/internal/models"
)

// Field names as they appear on the registration form.
const (
	FieldName             = "name"
	FieldEmail            = "email"
	FieldPhone            = "phone"
	FieldRollNo           = "rollNo"
	FieldEmergencyContact = "emergencyContact"
	FieldEmergencyPhone   = "emergencyPhone"
	FieldYear             = "year"
	FieldBranch           = "branch"
)

// Values holds the current form field values.
type Values struct {
	Name             string
	Email            string
	Phone            string
	RollNo           string
	EmergencyContact string
	EmergencyPhone   string
	Year             string
	Branch           string
}

// Errors maps a field name to its validation message. An absent key
// means the field is valid; an empty map means the form is valid.
type Errors map[string]string

var (
	// Unanchored on purpose: any user@host.tld shape somewhere in the
	// field passes, matching what the signup page has always accepted.
	emailPattern = regexp.MustCompile(`\S+@\S+\.\S+`)
	nonDigits    = regexp.MustCompile(`\D`)
)

// Validate checks every field independently and returns the error map.
func Validate(v Values) Errors {
	errs := Errors{}

	if strings.TrimSpace(v.Name) == "" {
		errs[FieldName] = "Name is required"
	}

	if strings.TrimSpace(v.Email) == "" {
		errs[FieldEmail] = "Email is required"
	} else if !emailPattern.MatchString(v.Email) {
		errs[FieldEmail] = "Email is invalid"
	}

	if strings.TrimSpace(v.Phone) == "" {
		errs[FieldPhone] = "Phone number is required"
	} else if !tenDigits(v.Phone) {
		errs[FieldPhone] = "Phone number is invalid"
	}

	if strings.TrimSpace(v.RollNo) == "" {
		errs[FieldRollNo] = "Roll number is required"
	}

	if strings.TrimSpace(v.EmergencyContact) == "" {
		errs[FieldEmergencyContact] = "Emergency contact name is required"
	}

	if strings.TrimSpace(v.EmergencyPhone) == "" {
		errs[FieldEmergencyPhone] = "Emergency contact number is required"
	} else if !tenDigits(v.EmergencyPhone) {
		errs[FieldEmergencyPhone] = "Emergency contact number is invalid"
	}

	if !models.ValidYear(v.Year) {
		errs[FieldYear] = "Year is required"
	}

	if v.Branch == "" {
		errs[FieldBranch] = "Branch is required"
	}

	return errs
}

// tenDigits reports whether stripping all non-digit characters leaves
// exactly ten digits.
func tenDigits(raw string) bool {
	return len(nonDigits.ReplaceAllString(raw, "")) == 10
}
