package handlers

import (
	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// EmployeeRequest is the body accepted by POST and PUT /employees.
type EmployeeRequest struct {
	ID     int     `json:"id"`
	Name   string  `json:"name" validate:"required,max=255"`
	Age    int     `json:"age" validate:"gte=0"`
	Salary float64 `json:"salary" validate:"gte=0"`
	Gender string  `json:"gender" validate:"required,oneof=male female"`
}

// CompanyRequest is the body accepted by POST and PUT /companies. ID is
// optional on create and ignored on update.
type CompanyRequest struct {
	ID             string            `json:"id" validate:"omitempty,uuid"`
	Name           string            `json:"name" validate:"required,max=255"`
	EmployeeNumber int               `json:"employeeNumber" validate:"gte=0"`
	Employees      []EmployeeRequest `json:"employees" validate:"dive"`
}

type errorResponse struct {
	Error string `json:"error"`
}
