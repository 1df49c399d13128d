package controller

import (
	"context"
	"errors"
	"fmt"

	e "github.com/gartstein/hr/internal/hr/errors"
	"github.com/gartstein/hr/internal/hr/events"
	"github.com/gartstein/hr/internal/hr/models"
	"go.uber.org/zap"
)

// EmployeeService provides methods to manage employees via repository
// operations and event production.
type EmployeeService struct {
	repo     EmployeeRepository
	producer EventProducer
	logger   *zap.Logger
}

// NewEmployeeService constructs an EmployeeService with a repository,
// an event producer, and a logger.
func NewEmployeeService(repo EmployeeRepository, producer EventProducer, logger *zap.Logger) *EmployeeService {
	return &EmployeeService{
		repo:     repo,
		producer: producer,
		logger:   logger.Named("employee_service"),
	}
}

// AddEmployee stores a new employee. The id must not be in use.
func (s *EmployeeService) AddEmployee(ctx context.Context, employee *models.Employee) (*models.Employee, error) {
	_, err := s.repo.GetEmployee(ctx, employee.ID)
	switch {
	case err == nil:
		return nil, e.ErrDuplicatedID
	case !errors.Is(err, e.ErrNotFound):
		return nil, fmt.Errorf("failed to check employee id: %w", err)
	}

	if err := s.repo.CreateEmployee(ctx, employee); err != nil {
		if errors.Is(err, e.ErrDuplicatedID) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create employee: %w", err)
	}

	created := *employee
	go func() {
		s.producer.Produce(events.EmployeeEvent(events.EmployeeCreated, &created))
	}()
	return employee, nil
}

// GetEmployee retrieves an Employee by ID, returning an error if not found.
func (s *EmployeeService) GetEmployee(ctx context.Context, id int) (*models.Employee, error) {
	employee, err := s.repo.GetEmployee(ctx, id)
	if err != nil {
		if errors.Is(err, e.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get employee: %w", err)
	}
	return employee, nil
}

func (s *EmployeeService) ListEmployees(ctx context.Context) ([]models.Employee, error) {
	employees, err := s.repo.ListEmployees(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	return employees, nil
}

// ListEmployeesByGender returns the employees whose gender matches exactly,
// in insertion order. Unknown genders simply match nothing.
func (s *EmployeeService) ListEmployeesByGender(ctx context.Context, gender string) ([]models.Employee, error) {
	employees, err := s.repo.ListEmployeesByGender(ctx, gender)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees by gender: %w", err)
	}
	return employees, nil
}

// ListEmployeesByPage returns the 0-based page of employees.
func (s *EmployeeService) ListEmployeesByPage(ctx context.Context, page, pageSize int) ([]models.Employee, error) {
	if err := validatePage(page, pageSize); err != nil {
		return nil, err
	}
	employees, err := s.repo.ListEmployeesByPage(ctx, page, pageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees page: %w", err)
	}
	return employees, nil
}

// UpdateEmployee replaces every field of the employee with the given id.
func (s *EmployeeService) UpdateEmployee(ctx context.Context, id int, values *models.Employee) (*models.Employee, error) {
	update := *values
	update.ID = id

	if err := s.repo.UpdateEmployee(ctx, &update); err != nil {
		if errors.Is(err, e.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update employee: %w", err)
	}

	updated, err := s.repo.GetEmployee(ctx, id)
	if err != nil {
		s.logger.Error("Failed to get employee after update",
			zap.Error(err),
			zap.Int("employee_id", id),
		)
		return nil, err
	}
	go func() {
		s.producer.Produce(events.EmployeeEvent(events.EmployeeUpdated, updated))
	}()
	return updated, nil
}

// RemoveEmployee deletes the employee with the given id and fires a
// deletion event carrying the removed record.
func (s *EmployeeService) RemoveEmployee(ctx context.Context, id int) error {
	employee, err := s.repo.GetEmployee(ctx, id)
	if err != nil {
		if errors.Is(err, e.ErrNotFound) {
			return err
		}
		return fmt.Errorf("failed to get employee for deletion: %w", err)
	}

	if err := s.repo.DeleteEmployee(ctx, id); err != nil {
		if errors.Is(err, e.ErrNotFound) {
			return err
		}
		return fmt.Errorf("failed to delete employee: %w", err)
	}

	go func() {
		s.producer.Produce(events.EmployeeEvent(events.EmployeeDeleted, employee))
	}()
	return nil
}

func validatePage(page, pageSize int) error {
	if page < 0 {
		return fmt.Errorf("%w: page must not be negative", e.ErrOutOfRange)
	}
	if pageSize < 1 {
		return fmt.Errorf("%w: page size must be positive", e.ErrOutOfRange)
	}
	return nil
}
