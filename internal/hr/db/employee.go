package db

import (
	"context"

	"github.com/gartstein/hr/internal/hr/db/models"
	e "github.com/gartstein/hr/internal/hr/errors"
	domain "github.com/gartstein/hr/internal/hr/models"
	"gorm.io/gorm"
)

func (r *Repository) CreateEmployee(ctx context.Context, employee *domain.Employee) error {
	if err := r.db.WithContext(ctx).Create(models.FromEmployee(employee)).Error; err != nil {
		return translate(err)
	}
	return nil
}

func (r *Repository) GetEmployee(ctx context.Context, id int) (*domain.Employee, error) {
	var row models.Employee
	if err := r.db.WithContext(ctx).First(&row, "employee_id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	employee := row.ToModel()
	return &employee, nil
}

func (r *Repository) ListEmployees(ctx context.Context) ([]domain.Employee, error) {
	return findEmployees(r.db.WithContext(ctx))
}

func (r *Repository) ListEmployeesByGender(ctx context.Context, gender string) ([]domain.Employee, error) {
	return findEmployees(r.db.WithContext(ctx).Where("gender = ?", gender))
}

func (r *Repository) ListEmployeesByPage(ctx context.Context, page, pageSize int) ([]domain.Employee, error) {
	offset, ok := pageOffset(page, pageSize)
	if !ok {
		return []domain.Employee{}, nil
	}
	return findEmployees(r.db.WithContext(ctx).Offset(offset).Limit(pageSize))
}

// UpdateEmployee replaces every mutable field of the stored employee,
// keeping its position in insertion order.
func (r *Repository) UpdateEmployee(ctx context.Context, employee *domain.Employee) error {
	result := r.db.WithContext(ctx).Model(&models.Employee{}).
		Where("employee_id = ?", employee.ID).
		Updates(map[string]interface{}{
			"name":   employee.Name,
			"age":    employee.Age,
			"salary": employee.Salary,
			"gender": employee.Gender,
		})

	if result.Error != nil {
		return translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return e.ErrNotFound
	}
	return nil
}

func (r *Repository) DeleteEmployee(ctx context.Context, id int) error {
	result := r.db.WithContext(ctx).Delete(&models.Employee{}, "employee_id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return e.ErrNotFound
	}
	return nil
}

// DeleteAllEmployees empties the employee table.
func (r *Repository) DeleteAllEmployees(ctx context.Context) error {
	return r.db.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(&models.Employee{}).Error
}

func findEmployees(query *gorm.DB) ([]domain.Employee, error) {
	var rows []models.Employee
	if err := query.Order("seq").Find(&rows).Error; err != nil {
		return nil, err
	}
	employees := make([]domain.Employee, 0, len(rows))
	for i := range rows {
		employees = append(employees, rows[i].ToModel())
	}
	return employees, nil
}
