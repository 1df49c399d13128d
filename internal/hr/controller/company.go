package controller

import (
	"context"
	"errors"
	"fmt"

	e "github.com/gartstein/hr/internal/hr/errors"
	"github.com/gartstein/hr/internal/hr/events"
	"github.com/gartstein/hr/internal/hr/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CompanyService provides methods to manage companies via repository
// operations and event production.
type CompanyService struct {
	repo     CompanyRepository
	producer EventProducer
	logger   *zap.Logger
}

// NewCompanyService constructs a CompanyService with a repository,
// an event producer, and a logger.
func NewCompanyService(repo CompanyRepository, producer EventProducer, logger *zap.Logger) *CompanyService {
	return &CompanyService{
		repo:     repo,
		producer: producer,
		logger:   logger.Named("company_service"),
	}
}

// AddCompany stores a new Company. A nil ID is replaced with a fresh
// UUID; a supplied ID must not be in use.
func (s *CompanyService) AddCompany(ctx context.Context, company *models.Company) (*models.Company, error) {
	if err := validateHeadcount(company); err != nil {
		return nil, err
	}
	if company.ID == uuid.Nil {
		company.ID = uuid.New()
	} else {
		_, err := s.repo.GetCompany(ctx, company.ID)
		switch {
		case err == nil:
			return nil, e.ErrDuplicatedID
		case !errors.Is(err, e.ErrNotFound):
			return nil, fmt.Errorf("failed to check company id: %w", err)
		}
	}
	if company.Employees == nil {
		company.Employees = []models.Employee{}
	}

	if err := s.repo.CreateCompany(ctx, company); err != nil {
		if errors.Is(err, e.ErrDuplicatedID) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create company: %w", err)
	}

	created := company.Clone()
	go func() {
		s.producer.Produce(events.CompanyEvent(events.CompanyCreated, created))
	}()
	return company, nil
}

// GetCompany retrieves a Company by ID, returning an error if not found.
func (s *CompanyService) GetCompany(ctx context.Context, id uuid.UUID) (*models.Company, error) {
	company, err := s.repo.GetCompany(ctx, id)
	if err != nil {
		if errors.Is(err, e.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get company: %w", err)
	}
	return company, nil
}

func (s *CompanyService) ListCompanies(ctx context.Context) ([]models.Company, error) {
	companies, err := s.repo.ListCompanies(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list companies: %w", err)
	}
	return companies, nil
}

// ListCompaniesByPage returns the 0-based page of companies.
func (s *CompanyService) ListCompaniesByPage(ctx context.Context, page, pageSize int) ([]models.Company, error) {
	if err := validatePage(page, pageSize); err != nil {
		return nil, err
	}
	companies, err := s.repo.ListCompaniesByPage(ctx, page, pageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to list companies page: %w", err)
	}
	return companies, nil
}

// ListCompanyEmployees returns the employees owned by the company.
func (s *CompanyService) ListCompanyEmployees(ctx context.Context, id uuid.UUID) ([]models.Employee, error) {
	employees, err := s.repo.ListCompanyEmployees(ctx, id)
	if err != nil {
		if errors.Is(err, e.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to list company employees: %w", err)
	}
	return employees, nil
}

// UpdateCompany replaces the company's fields, including its employee
// list, then fetches the updated version for returning and event production.
func (s *CompanyService) UpdateCompany(ctx context.Context, id uuid.UUID, values *models.Company) (*models.Company, error) {
	if id == uuid.Nil {
		return nil, fmt.Errorf("%w: invalid company ID", e.ErrInvalidInput)
	}
	if err := validateHeadcount(values); err != nil {
		return nil, err
	}

	update := values.Clone()
	update.ID = id
	if err := s.repo.UpdateCompany(ctx, update); err != nil {
		if errors.Is(err, e.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update company: %w", err)
	}

	updated, err := s.repo.GetCompany(ctx, id)
	if err != nil {
		s.logger.Error("Failed to get company after update",
			zap.Error(err),
			zap.String("company_id", id.String()),
		)
		return nil, err
	}
	event := updated.Clone()
	go func() {
		s.producer.Produce(events.CompanyEvent(events.CompanyUpdated, event))
	}()
	return updated, nil
}

// RemoveCompany deletes a Company by ID and fires a deletion event.
func (s *CompanyService) RemoveCompany(ctx context.Context, id uuid.UUID) error {
	company, err := s.repo.GetCompany(ctx, id)
	if err != nil {
		if errors.Is(err, e.ErrNotFound) {
			return err
		}
		return fmt.Errorf("failed to get company for deletion: %w", err)
	}

	if err := s.repo.DeleteCompany(ctx, id); err != nil {
		if errors.Is(err, e.ErrNotFound) {
			return err
		}
		return fmt.Errorf("failed to delete company: %w", err)
	}

	go func() {
		s.producer.Produce(events.CompanyEvent(events.CompanyDeleted, company))
	}()
	return nil
}

// validateHeadcount rejects a negative declared employee count. It is not
// compared against the employee list.
func validateHeadcount(company *models.Company) error {
	if company.EmployeeNumber < 0 {
		return fmt.Errorf("%w: employeeNumber must not be negative", e.ErrInvalidInput)
	}
	return nil
}
