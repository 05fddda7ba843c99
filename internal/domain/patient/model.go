package patient

import (
	"bytes"
	"fmt"
	"strconv"
)

// Patient is the demographic and medical record for one person in the
// outreach program. Patients are never hard-deleted; IsExpired is the soft
// terminal state. Date fields are ISO-8601 strings (YYYY-MM-DD).
type Patient struct {
	ID               int64    `db:"id" json:"id"`
	FullName         string   `db:"full_name" json:"full_name"`
	Gender           string   `db:"gender" json:"gender"`
	DOB              string   `db:"dob" json:"dob"`
	Age              int      `db:"age" json:"age"`
	Address          string   `db:"address" json:"address"`
	Condition        string   `db:"condition" json:"condition"`
	Disease          string   `db:"disease" json:"disease"`
	IsExpired        bool     `db:"is_expired" json:"is_expired"`
	CurrentStatus    string   `db:"current_status" json:"current_status"`
	RegistrationDate string   `db:"registration_date" json:"registration_date"`
	GuardianName     string   `db:"guardian_name" json:"guardian_name"`
	GuardianPhone    string   `db:"guardian_phone" json:"guardian_phone"`
	RelativeName     *string  `db:"relative_name" json:"relative_name,omitempty"`
	Allocations      []string `db:"-" json:"allocations,omitempty"`
}

// Update is the allow-listed partial update for a patient. Unknown JSON keys
// are dropped during decoding; only these fields can be changed over the API.
type Update struct {
	FullName      *string `json:"full_name"`
	Gender        *string `json:"gender"`
	DOB           *string `json:"dob"`
	Age           *int    `json:"age"`
	Address       *string `json:"address"`
	Condition     *string `json:"condition"`
	Disease       *string `json:"disease"`
	IsExpired     *bool   `json:"is_expired"`
	CurrentStatus *string `json:"current_status"`
	GuardianName  *string `json:"guardian_name"`
	GuardianPhone *string `json:"guardian_phone"`
	RelativeName  *string `json:"relative_name"`
}

// Apply copies the set fields onto p.
func (u *Update) Apply(p *Patient) {
	if u.FullName != nil {
		p.FullName = *u.FullName
	}
	if u.Gender != nil {
		p.Gender = *u.Gender
	}
	if u.DOB != nil {
		p.DOB = *u.DOB
	}
	if u.Age != nil {
		p.Age = *u.Age
	}
	if u.Address != nil {
		p.Address = *u.Address
	}
	if u.Condition != nil {
		p.Condition = *u.Condition
	}
	if u.Disease != nil {
		p.Disease = *u.Disease
	}
	if u.IsExpired != nil {
		p.IsExpired = *u.IsExpired
	}
	if u.CurrentStatus != nil {
		p.CurrentStatus = *u.CurrentStatus
	}
	if u.GuardianName != nil {
		p.GuardianName = *u.GuardianName
	}
	if u.GuardianPhone != nil {
		p.GuardianPhone = *u.GuardianPhone
	}
	if u.RelativeName != nil {
		p.RelativeName = u.RelativeName
	}
}

// CoerceInt turns a raw JSON value into an int, accepting both numbers and
// numeric strings. The registration form sends age either way.
func CoerceInt(raw []byte) (int, error) {
	s := string(bytes.Trim(bytes.TrimSpace(raw), `"`))
	if s == "" || s == "null" {
		return 0, fmt.Errorf("missing value")
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("not a number: %q", s)
	}
	return n, nil
}
