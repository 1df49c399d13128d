// Package memory implements an in-process store for employees and
// companies with the same method set as the GORM repository. It keeps
// insertion order and is safe for concurrent use.
package memory

import (
	"context"
	"sync"

	e "github.com/gartstein/hr/internal/hr/errors"
	"github.com/gartstein/hr/internal/hr/models"
	"github.com/google/uuid"
)

// Store owns the authoritative collections. Callers always receive copies.
type Store struct {
	mu        sync.RWMutex
	employees []models.Employee
	companies []*models.Company
}

func NewStore() *Store {
	return &Store{}
}

func (s *Store) CreateEmployee(_ context.Context, employee *models.Employee) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.employeeIndex(employee.ID) >= 0 {
		return e.ErrDuplicatedID
	}
	s.employees = append(s.employees, *employee)
	return nil
}

func (s *Store) GetEmployee(_ context.Context, id int) (*models.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.employeeIndex(id)
	if i < 0 {
		return nil, e.ErrNotFound
	}
	employee := s.employees[i]
	return &employee, nil
}

func (s *Store) ListEmployees(_ context.Context) ([]models.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]models.Employee{}, s.employees...), nil
}

func (s *Store) ListEmployeesByGender(_ context.Context, gender string) ([]models.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.Employee{}
	for _, employee := range s.employees {
		if employee.Gender == gender {
			out = append(out, employee)
		}
	}
	return out, nil
}

func (s *Store) ListEmployeesByPage(_ context.Context, page, pageSize int) ([]models.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	lo, hi := pageBounds(page, pageSize, len(s.employees))
	return append([]models.Employee{}, s.employees[lo:hi]...), nil
}

func (s *Store) UpdateEmployee(_ context.Context, employee *models.Employee) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.employeeIndex(employee.ID)
	if i < 0 {
		return e.ErrNotFound
	}
	s.employees[i] = *employee
	return nil
}

func (s *Store) DeleteEmployee(_ context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.employeeIndex(id)
	if i < 0 {
		return e.ErrNotFound
	}
	s.employees = append(s.employees[:i], s.employees[i+1:]...)
	return nil
}

func (s *Store) DeleteAllEmployees(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.employees = nil
	return nil
}

func (s *Store) CreateCompany(_ context.Context, company *models.Company) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.companyIndex(company.ID) >= 0 {
		return e.ErrDuplicatedID
	}
	s.companies = append(s.companies, company.Clone())
	return nil
}

func (s *Store) GetCompany(_ context.Context, id uuid.UUID) (*models.Company, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.companyIndex(id)
	if i < 0 {
		return nil, e.ErrNotFound
	}
	return s.companies[i].Clone(), nil
}

func (s *Store) ListCompanies(_ context.Context) ([]models.Company, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return cloneCompanies(s.companies), nil
}

func (s *Store) ListCompaniesByPage(_ context.Context, page, pageSize int) ([]models.Company, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	lo, hi := pageBounds(page, pageSize, len(s.companies))
	return cloneCompanies(s.companies[lo:hi]), nil
}

func (s *Store) ListCompanyEmployees(_ context.Context, id uuid.UUID) ([]models.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.companyIndex(id)
	if i < 0 {
		return nil, e.ErrNotFound
	}
	return append([]models.Employee{}, s.companies[i].Employees...), nil
}

func (s *Store) UpdateCompany(_ context.Context, company *models.Company) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.companyIndex(company.ID)
	if i < 0 {
		return e.ErrNotFound
	}
	s.companies[i] = company.Clone()
	return nil
}

func (s *Store) DeleteCompany(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.companyIndex(id)
	if i < 0 {
		return e.ErrNotFound
	}
	s.companies = append(s.companies[:i], s.companies[i+1:]...)
	return nil
}

func (s *Store) DeleteAllCompanies(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.companies = nil
	return nil
}

// Close is a no-op; it lets the store stand in for the database repository.
func (s *Store) Close() error {
	return nil
}

func (s *Store) employeeIndex(id int) int {
	for i := range s.employees {
		if s.employees[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) companyIndex(id uuid.UUID) int {
	for i := range s.companies {
		if s.companies[i].ID == id {
			return i
		}
	}
	return -1
}

// pageBounds returns the [lo, hi) slice bounds of a 0-based page over n
// items, clamped to n. Invalid arguments yield an empty range.
func pageBounds(page, pageSize, n int) (int, int) {
	if page < 0 || pageSize < 1 || page > n/pageSize {
		return n, n
	}
	lo := page * pageSize
	hi := lo + pageSize
	if hi > n {
		hi = n
	}
	return lo, hi
}

func cloneCompanies(companies []*models.Company) []models.Company {
	out := make([]models.Company, 0, len(companies))
	for _, c := range companies {
		out = append(out, *c.Clone())
	}
	return out
}
