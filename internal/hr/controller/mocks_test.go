package controller

import (
	"context"
	"sync"

	"github.com/gartstein/hr/internal/hr/events"
	"github.com/gartstein/hr/internal/hr/models"
	"github.com/google/uuid"
)

// MockEmployeeRepository implements EmployeeRepository for testing.
type MockEmployeeRepository struct {
	createEmployee        func(context.Context, *models.Employee) error
	getEmployee           func(context.Context, int) (*models.Employee, error)
	listEmployees         func(context.Context) ([]models.Employee, error)
	listEmployeesByGender func(context.Context, string) ([]models.Employee, error)
	listEmployeesByPage   func(context.Context, int, int) ([]models.Employee, error)
	updateEmployee        func(context.Context, *models.Employee) error
	deleteEmployee        func(context.Context, int) error
}

func (m *MockEmployeeRepository) CreateEmployee(ctx context.Context, e *models.Employee) error {
	return m.createEmployee(ctx, e)
}

func (m *MockEmployeeRepository) GetEmployee(ctx context.Context, id int) (*models.Employee, error) {
	return m.getEmployee(ctx, id)
}

func (m *MockEmployeeRepository) ListEmployees(ctx context.Context) ([]models.Employee, error) {
	return m.listEmployees(ctx)
}

func (m *MockEmployeeRepository) ListEmployeesByGender(ctx context.Context, gender string) ([]models.Employee, error) {
	return m.listEmployeesByGender(ctx, gender)
}

func (m *MockEmployeeRepository) ListEmployeesByPage(ctx context.Context, page, pageSize int) ([]models.Employee, error) {
	return m.listEmployeesByPage(ctx, page, pageSize)
}

func (m *MockEmployeeRepository) UpdateEmployee(ctx context.Context, e *models.Employee) error {
	return m.updateEmployee(ctx, e)
}

func (m *MockEmployeeRepository) DeleteEmployee(ctx context.Context, id int) error {
	return m.deleteEmployee(ctx, id)
}

// MockCompanyRepository implements CompanyRepository for testing.
type MockCompanyRepository struct {
	createCompany        func(context.Context, *models.Company) error
	getCompany           func(context.Context, uuid.UUID) (*models.Company, error)
	listCompanies        func(context.Context) ([]models.Company, error)
	listCompaniesByPage  func(context.Context, int, int) ([]models.Company, error)
	listCompanyEmployees func(context.Context, uuid.UUID) ([]models.Employee, error)
	updateCompany        func(context.Context, *models.Company) error
	deleteCompany        func(context.Context, uuid.UUID) error
}

func (m *MockCompanyRepository) CreateCompany(ctx context.Context, c *models.Company) error {
	return m.createCompany(ctx, c)
}

func (m *MockCompanyRepository) GetCompany(ctx context.Context, id uuid.UUID) (*models.Company, error) {
	return m.getCompany(ctx, id)
}

func (m *MockCompanyRepository) ListCompanies(ctx context.Context) ([]models.Company, error) {
	return m.listCompanies(ctx)
}

func (m *MockCompanyRepository) ListCompaniesByPage(ctx context.Context, page, pageSize int) ([]models.Company, error) {
	return m.listCompaniesByPage(ctx, page, pageSize)
}

func (m *MockCompanyRepository) ListCompanyEmployees(ctx context.Context, id uuid.UUID) ([]models.Employee, error) {
	return m.listCompanyEmployees(ctx, id)
}

func (m *MockCompanyRepository) UpdateCompany(ctx context.Context, c *models.Company) error {
	return m.updateCompany(ctx, c)
}

func (m *MockCompanyRepository) DeleteCompany(ctx context.Context, id uuid.UUID) error {
	return m.deleteCompany(ctx, id)
}

// MockProducer is a test double for the Kafka producer.
type MockProducer struct {
	mu             sync.Mutex
	producedEvents []events.Event
	wg             *sync.WaitGroup
}

// Produce records the event and signals the wait group.
func (m *MockProducer) Produce(event events.Event) {
	m.mu.Lock()
	m.producedEvents = append(m.producedEvents, event)
	m.mu.Unlock()
	if m.wg != nil {
		m.wg.Done()
	}
}

func (m *MockProducer) Events() []events.Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]events.Event{}, m.producedEvents...)
}
