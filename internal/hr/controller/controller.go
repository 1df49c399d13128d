// Package controller implements the core business logic (service layer)
// for managing Employee and Company records, orchestrating repository
// operations and sending change events.
package controller

import (
	"context"

	"github.com/gartstein/hr/internal/hr/events"
	"github.com/gartstein/hr/internal/hr/models"
	"github.com/google/uuid"
)

type EventProducer interface {
	Produce(event events.Event)
}

// EmployeeRepository defines the storage interface for Employee records.
// Lookups of a missing id return errors.ErrNotFound.
type EmployeeRepository interface {
	CreateEmployee(ctx context.Context, employee *models.Employee) error
	GetEmployee(ctx context.Context, id int) (*models.Employee, error)
	ListEmployees(ctx context.Context) ([]models.Employee, error)
	ListEmployeesByGender(ctx context.Context, gender string) ([]models.Employee, error)
	ListEmployeesByPage(ctx context.Context, page, pageSize int) ([]models.Employee, error)
	UpdateEmployee(ctx context.Context, employee *models.Employee) error
	DeleteEmployee(ctx context.Context, id int) error
}

// CompanyRepository defines the storage interface for Company records.
type CompanyRepository interface {
	CreateCompany(ctx context.Context, company *models.Company) error
	GetCompany(ctx context.Context, id uuid.UUID) (*models.Company, error)
	ListCompanies(ctx context.Context) ([]models.Company, error)
	ListCompaniesByPage(ctx context.Context, page, pageSize int) ([]models.Company, error)
	ListCompanyEmployees(ctx context.Context, id uuid.UUID) ([]models.Employee, error)
	UpdateCompany(ctx context.Context, company *models.Company) error
	DeleteCompany(ctx context.Context, id uuid.UUID) error
}
