package models

import "time"

type Department string

const (
	DepartmentMarketing   Department = "MARKETING"
	DepartmentSales       Department = "SALES"
	DepartmentEngineering Department = "ENGINEERING"
	DepartmentHR          Department = "HR"
)

// Departments lists every valid department, in display order.
var Departments = []Department{
	DepartmentMarketing,
	DepartmentSales,
	DepartmentEngineering,
	DepartmentHR,
}

func (d Department) Valid() bool {
	for _, dep := range Departments {
		if d == dep {
			return true
		}
	}
	return false
}

type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash []byte    `json:"-"`
	Profile      Profile   `json:"profile"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Profile is the editable personal-information part of a user record.
// Owned by exactly one user and mutated only through the user repository.
type Profile struct {
	FirstName  string     `json:"firstName"`
	LastName   string     `json:"lastName"`
	Department Department `json:"department"`
	ProfilePic *string    `json:"profilePic"`
}

// ProfilePatch carries a partial profile update; nil fields are left
// untouched.
type ProfilePatch struct {
	FirstName  *string
	LastName   *string
	Department *Department
}
