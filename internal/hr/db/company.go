package db

import (
	"context"

	"github.com/gartstein/hr/internal/hr/db/models"
	e "github.com/gartstein/hr/internal/hr/errors"
	domain "github.com/gartstein/hr/internal/hr/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func (r *Repository) CreateCompany(ctx context.Context, company *domain.Company) error {
	row := models.FromCompany(company)
	result := r.db.WithContext(ctx).Create(row)
	if result.Error != nil {
		return translate(result.Error)
	}
	return nil
}

func (r *Repository) GetCompany(ctx context.Context, id uuid.UUID) (*domain.Company, error) {
	var row models.Company
	result := preloadEmployees(r.db.WithContext(ctx)).First(&row, "company_id = ?", id)
	if result.Error != nil {
		return nil, translate(result.Error)
	}
	return row.ToModel(), nil
}

func (r *Repository) ListCompanies(ctx context.Context) ([]domain.Company, error) {
	return findCompanies(r.db.WithContext(ctx))
}

func (r *Repository) ListCompaniesByPage(ctx context.Context, page, pageSize int) ([]domain.Company, error) {
	offset, ok := pageOffset(page, pageSize)
	if !ok {
		return []domain.Company{}, nil
	}
	return findCompanies(r.db.WithContext(ctx).Offset(offset).Limit(pageSize))
}

func (r *Repository) ListCompanyEmployees(ctx context.Context, id uuid.UUID) ([]domain.Employee, error) {
	exists, err := r.companyExists(ctx, id)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, e.ErrNotFound
	}

	var rows []models.CompanyEmployee
	result := r.db.WithContext(ctx).Where("company_id = ?", id).Order("position").Find(&rows)
	if result.Error != nil {
		return nil, result.Error
	}
	employees := make([]domain.Employee, 0, len(rows))
	for i := range rows {
		employees = append(employees, rows[i].ToModel())
	}
	return employees, nil
}

// UpdateCompany replaces the company's fields and its whole employee list
// in one transaction.
func (r *Repository) UpdateCompany(ctx context.Context, company *domain.Company) error {
	return r.WithTransaction(ctx, func(tx *Repository) error {
		result := tx.db.WithContext(ctx).Model(&models.Company{}).
			Where("company_id = ?", company.ID).
			Updates(map[string]interface{}{
				"name":            company.Name,
				"employee_number": company.EmployeeNumber,
			})
		if result.Error != nil {
			return translate(result.Error)
		}
		if result.RowsAffected == 0 {
			return e.ErrNotFound
		}

		if err := tx.db.WithContext(ctx).
			Where("company_id = ?", company.ID).
			Delete(&models.CompanyEmployee{}).Error; err != nil {
			return err
		}

		employees := models.FromCompanyEmployees(company.ID, company.Employees)
		if len(employees) == 0 {
			return nil
		}
		return tx.db.WithContext(ctx).Create(&employees).Error
	})
}

func (r *Repository) DeleteCompany(ctx context.Context, id uuid.UUID) error {
	return r.WithTransaction(ctx, func(tx *Repository) error {
		if err := tx.db.WithContext(ctx).
			Where("company_id = ?", id).
			Delete(&models.CompanyEmployee{}).Error; err != nil {
			return err
		}

		result := tx.db.WithContext(ctx).Delete(&models.Company{}, "company_id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return e.ErrNotFound
		}
		return nil
	})
}

// DeleteAllCompanies empties the company tables.
func (r *Repository) DeleteAllCompanies(ctx context.Context) error {
	return r.WithTransaction(ctx, func(tx *Repository) error {
		session := tx.db.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true})
		if err := session.Delete(&models.CompanyEmployee{}).Error; err != nil {
			return err
		}
		return session.Delete(&models.Company{}).Error
	})
}

func (r *Repository) companyExists(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	result := r.db.WithContext(ctx).Model(&models.Company{}).
		Where("company_id = ?", id).
		Limit(1).
		Count(&count)
	return count > 0, result.Error
}

func preloadEmployees(query *gorm.DB) *gorm.DB {
	return query.Preload("Employees", func(db *gorm.DB) *gorm.DB {
		return db.Order("position")
	})
}

func findCompanies(query *gorm.DB) ([]domain.Company, error) {
	var rows []models.Company
	if err := preloadEmployees(query).Order("seq").Find(&rows).Error; err != nil {
		return nil, err
	}
	companies := make([]domain.Company, 0, len(rows))
	for i := range rows {
		companies = append(companies, *rows[i].ToModel())
	}
	return companies, nil
}
