// Package db implements the GORM-backed repository for employees and
// companies. Postgres is used in deployments; sqlite serves local runs
// and tests.
package db

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/gartstein/hr/internal/hr/db/models"
	e "github.com/gartstein/hr/internal/hr/errors"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Repository struct {
	db *gorm.DB
}

type Config struct {
	Driver     string
	Host       string
	Port       int
	User       string
	Password   string
	DBName     string
	SSLMode    string
	SQLitePath string
}

func (c *Config) dialector() (gorm.Dialector, error) {
	switch c.Driver {
	case DriverPostgres, "":
		dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
			c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
		return postgres.Open(dsn), nil
	case DriverSQLite:
		return sqlite.Open(c.SQLitePath), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", c.Driver)
	}
}

// NewRepository connects to the configured database and migrates the
// schema. gorm's own logging goes through logger.
func NewRepository(cfg *Config, logger *zap.Logger) (*Repository, error) {
	dialector, err := cfg.dialector()
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         newGormLogger(logger),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := migrate(db); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return &Repository{db: db}, nil
}

func migrate(db *gorm.DB) error {
	return db.AutoMigrate(&models.Employee{}, &models.Company{}, &models.CompanyEmployee{})
}

func (r *Repository) WithTransaction(ctx context.Context, fn func(repo *Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Repository{db: tx})
	})
}

func (r *Repository) Close() error {
	db, err := r.db.DB()
	if err != nil {
		return err
	}
	return db.Close()
}

// pageOffset returns the row offset of a 0-based page. ok is false when the
// page lies beyond any addressable row.
func pageOffset(page, pageSize int) (offset int, ok bool) {
	if page < 0 || pageSize < 1 {
		return 0, false
	}
	if page > math.MaxInt/pageSize {
		return 0, false
	}
	return page * pageSize, true
}

func translate(err error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return e.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return e.ErrDuplicatedID
	default:
		return err
	}
}
