// Package models defines the core domain models for the HR service:
// Employee records and the Company that owns an ordered list of them.
package models

// Gender values accepted when an employee is created or updated.
const (
	GenderMale   = "male"
	GenderFemale = "female"
)

// Employee defines the domain model for an employee record.
type Employee struct {
	// ID is the client-assigned identifier, unique across the store.
	ID int `json:"id"`
	// Name is the employee's name.
	Name string `json:"name"`
	// Age is the employee's age in years.
	Age int `json:"age"`
	// Salary is the employee's salary.
	Salary float64 `json:"salary"`
	// Gender is the employee's gender, see GenderMale and GenderFemale.
	Gender string `json:"gender"`
}
