package models

import (
	"github.com/google/uuid"
)

// Company defines the domain model for a company entity.
type Company struct {
	// ID is the unique identifier for the company.
	ID uuid.UUID `json:"id"`
	// Name is the company's name.
	Name string `json:"name"`
	// EmployeeNumber is the declared headcount. It is not reconciled with
	// the length of Employees.
	EmployeeNumber int `json:"employeeNumber"`
	// Employees are owned by the company, in stored order.
	Employees []Employee `json:"employees"`
}

// Clone returns a copy of the company that shares no memory with c.
func (c *Company) Clone() *Company {
	out := *c
	out.Employees = append([]Employee{}, c.Employees...)
	return &out
}
