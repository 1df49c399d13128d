// Package models contains the storage records for the HR service,
// configured to work using GORM as the ORM.
package models

import (
	"github.com/gartstein/hr/internal/hr/models"
	"github.com/google/uuid"
)

// Employee is a stored employee row. Seq keeps insertion order; ID is the
// client-assigned identifier.
type Employee struct {
	Seq    uint64 `gorm:"primaryKey;autoIncrement"`
	ID     int    `gorm:"column:employee_id;uniqueIndex;not null"`
	Name   string `gorm:"size:255"`
	Age    int
	Salary float64
	Gender string `gorm:"size:32;index"`
}

// Company is a stored company row with its owned employees.
type Company struct {
	Seq            uint64            `gorm:"primaryKey;autoIncrement"`
	ID             uuid.UUID         `gorm:"column:company_id;type:uuid;uniqueIndex;not null"`
	Name           string            `gorm:"size:255"`
	EmployeeNumber int               `gorm:"check:employee_number >= 0"`
	Employees      []CompanyEmployee `gorm:"foreignKey:CompanyID;references:ID;constraint:OnDelete:CASCADE"`
}

// CompanyEmployee is an employee owned by a company. Position keeps the
// order the employees were supplied in.
type CompanyEmployee struct {
	Seq        uint64    `gorm:"primaryKey;autoIncrement"`
	CompanyID  uuid.UUID `gorm:"type:uuid;index;not null"`
	Position   int
	EmployeeID int
	Name       string `gorm:"size:255"`
	Age        int
	Salary     float64
	Gender     string `gorm:"size:32"`
}

// FromEmployee converts a domain employee into a row.
func FromEmployee(e *models.Employee) *Employee {
	return &Employee{
		ID:     e.ID,
		Name:   e.Name,
		Age:    e.Age,
		Salary: e.Salary,
		Gender: e.Gender,
	}
}

// ToModel converts the row back into a domain employee.
func (e *Employee) ToModel() models.Employee {
	return models.Employee{
		ID:     e.ID,
		Name:   e.Name,
		Age:    e.Age,
		Salary: e.Salary,
		Gender: e.Gender,
	}
}

// FromCompany converts a domain company, including its employees, into rows.
func FromCompany(c *models.Company) *Company {
	return &Company{
		ID:             c.ID,
		Name:           c.Name,
		EmployeeNumber: c.EmployeeNumber,
		Employees:      FromCompanyEmployees(c.ID, c.Employees),
	}
}

// FromCompanyEmployees numbers the employees in order for the given company.
func FromCompanyEmployees(companyID uuid.UUID, employees []models.Employee) []CompanyEmployee {
	rows := make([]CompanyEmployee, 0, len(employees))
	for i, e := range employees {
		rows = append(rows, CompanyEmployee{
			CompanyID:  companyID,
			Position:   i,
			EmployeeID: e.ID,
			Name:       e.Name,
			Age:        e.Age,
			Salary:     e.Salary,
			Gender:     e.Gender,
		})
	}
	return rows
}

// ToModel converts the row back into a domain company. Employees are
// expected to be loaded ordered by position.
func (c *Company) ToModel() *models.Company {
	employees := make([]models.Employee, 0, len(c.Employees))
	for _, e := range c.Employees {
		employees = append(employees, e.ToModel())
	}
	return &models.Company{
		ID:             c.ID,
		Name:           c.Name,
		EmployeeNumber: c.EmployeeNumber,
		Employees:      employees,
	}
}

// ToModel converts the owned employee row into a domain employee.
func (e *CompanyEmployee) ToModel() models.Employee {
	return models.Employee{
		ID:     e.EmployeeID,
		Name:   e.Name,
		Age:    e.Age,
		Salary: e.Salary,
		Gender: e.Gender,
	}
}
