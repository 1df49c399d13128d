package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	e "github.com/gartstein/hr/internal/hr/errors"
	"github.com/gartstein/hr/internal/hr/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// decodeBody reads a JSON body into dst and validates it.
func decodeBody(r *http.Request, dst interface{}) error {
	if err := decodeJSON(r, dst); err != nil {
		return err
	}
	return validateRequest(dst)
}

// decodeJSON reads exactly one JSON value from the body into dst.
func decodeJSON(r *http.Request, dst interface{}) error {
	if r.Body == nil {
		return fmt.Errorf("%w: request body required", e.ErrInvalidInput)
	}
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("%w: malformed body: %v", e.ErrInvalidInput, err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: malformed body: unexpected data after JSON value", e.ErrInvalidInput)
	}
	return nil
}

func validateRequest(req interface{}) error {
	if err := validate.Struct(req); err != nil {
		return fmt.Errorf("%w: %v", e.ErrInvalidInput, err)
	}
	return nil
}

// requestToEmployee converts a validated request into an Employee model.
func requestToEmployee(req *EmployeeRequest) *models.Employee {
	return &models.Employee{
		ID:     req.ID,
		Name:   req.Name,
		Age:    req.Age,
		Salary: req.Salary,
		Gender: req.Gender,
	}
}

// requestToCompany converts a validated request into a Company model. An
// empty ID stays uuid.Nil.
func requestToCompany(req *CompanyRequest) (*models.Company, error) {
	company := &models.Company{
		Name:           req.Name,
		EmployeeNumber: req.EmployeeNumber,
		Employees:      make([]models.Employee, 0, len(req.Employees)),
	}
	if req.ID != "" {
		id, err := uuid.Parse(req.ID)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid company ID", e.ErrInvalidInput)
		}
		company.ID = id
	}
	for i := range req.Employees {
		company.Employees = append(company.Employees, *requestToEmployee(&req.Employees[i]))
	}
	return company, nil
}

func parseEmployeeID(raw string) (int, error) {
	id, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid employee ID", e.ErrInvalidInput)
	}
	return id, nil
}

func parseCompanyID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: invalid company ID", e.ErrInvalidInput)
	}
	return id, nil
}

// pageQuery extracts page and pageSize. ok is false when neither is set;
// setting only one of them is an error.
func pageQuery(query url.Values) (page, pageSize int, ok bool, err error) {
	rawPage, hasPage := query["page"]
	rawSize, hasSize := query["pageSize"]
	if !hasPage && !hasSize {
		return 0, 0, false, nil
	}
	if !hasPage || !hasSize {
		return 0, 0, false, fmt.Errorf("%w: page and pageSize must be set together", e.ErrInvalidInput)
	}
	page, err = strconv.Atoi(rawPage[0])
	if err != nil {
		return 0, 0, false, fmt.Errorf("%w: invalid page", e.ErrInvalidInput)
	}
	pageSize, err = strconv.Atoi(rawSize[0])
	if err != nil {
		return 0, 0, false, fmt.Errorf("%w: invalid pageSize", e.ErrInvalidInput)
	}
	return page, pageSize, true, nil
}

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, e.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, e.ErrDuplicatedID):
		return http.StatusConflict
	case errors.Is(err, e.ErrOutOfRange), errors.Is(err, e.ErrInvalidInput):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// writeError maps domain or repository errors to an HTTP response. Only
// unexpected errors are logged, and their detail is not exposed.
func writeError(w http.ResponseWriter, logger *zap.Logger, err error) {
	code := statusFor(err)
	msg := err.Error()
	if code == http.StatusInternalServerError {
		logger.Error("Internal server error", zap.Error(err))
		msg = "internal server error"
	}
	writeJSON(w, logger, code, errorResponse{Error: msg})
}

func writeJSON(w http.ResponseWriter, logger *zap.Logger, code int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Error("Failed to encode response", zap.Error(err))
	}
}
