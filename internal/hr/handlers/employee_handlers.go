package handlers

import (
	"net/http"

	"github.com/grpc-ecosystem/grpc-gateway/v2/runtime"
	"go.uber.org/zap"
)

// EmployeeHandler serves the /employees REST resource, mapping requests to
// an EmployeeController.
type EmployeeHandler struct {
	service EmployeeController
	logger  *zap.Logger
}

// NewEmployeeHandler constructs a new EmployeeHandler with the given service and logger.
func NewEmployeeHandler(service EmployeeController, logger *zap.Logger) *EmployeeHandler {
	return &EmployeeHandler{
		service: service,
		logger:  logger.Named("http_handler"),
	}
}

// Register binds the employee routes on mux.
func (h *EmployeeHandler) Register(mux *runtime.ServeMux) error {
	routes := []struct {
		method  string
		pattern string
		handler runtime.HandlerFunc
	}{
		{http.MethodGet, "/employees", h.ListEmployees},
		{http.MethodPost, "/employees", h.CreateEmployee},
		{http.MethodGet, "/employees/{id}", h.GetEmployee},
		{http.MethodPut, "/employees/{id}", h.UpdateEmployee},
		{http.MethodDelete, "/employees/{id}", h.DeleteEmployee},
	}
	for _, route := range routes {
		if err := mux.HandlePath(route.method, route.pattern, route.handler); err != nil {
			return err
		}
	}
	return nil
}

// ListEmployees returns a page, a gender-filtered list, or every employee,
// depending on the query.
func (h *EmployeeHandler) ListEmployees(w http.ResponseWriter, r *http.Request, _ map[string]string) {
	query := r.URL.Query()
	page, pageSize, paged, err := pageQuery(query)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	switch {
	case paged:
		employees, err := h.service.ListEmployeesByPage(r.Context(), page, pageSize)
		if err != nil {
			writeError(w, h.logger, err)
			return
		}
		writeJSON(w, h.logger, http.StatusOK, employees)
	case query.Has("gender"):
		employees, err := h.service.ListEmployeesByGender(r.Context(), query.Get("gender"))
		if err != nil {
			writeError(w, h.logger, err)
			return
		}
		writeJSON(w, h.logger, http.StatusOK, employees)
	default:
		employees, err := h.service.ListEmployees(r.Context())
		if err != nil {
			writeError(w, h.logger, err)
			return
		}
		writeJSON(w, h.logger, http.StatusOK, employees)
	}
}

// CreateEmployee processes a create request, adding a new Employee.
func (h *EmployeeHandler) CreateEmployee(w http.ResponseWriter, r *http.Request, _ map[string]string) {
	var req EmployeeRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}

	created, err := h.service.AddEmployee(r.Context(), requestToEmployee(&req))
	if err != nil {
		h.logger.Debug("Create employee failed", zap.Error(err))
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusCreated, created)
}

// GetEmployee fetches an Employee by ID.
func (h *EmployeeHandler) GetEmployee(w http.ResponseWriter, r *http.Request, params map[string]string) {
	id, err := parseEmployeeID(params["id"])
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	employee, err := h.service.GetEmployee(r.Context(), id)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, employee)
}

// UpdateEmployee replaces an existing Employee. The path id wins over any
// id in the body.
func (h *EmployeeHandler) UpdateEmployee(w http.ResponseWriter, r *http.Request, params map[string]string) {
	id, err := parseEmployeeID(params["id"])
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	var req EmployeeRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}

	updated, err := h.service.UpdateEmployee(r.Context(), id, requestToEmployee(&req))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, updated)
}

// DeleteEmployee removes an Employee given its ID.
func (h *EmployeeHandler) DeleteEmployee(w http.ResponseWriter, r *http.Request, params map[string]string) {
	id, err := parseEmployeeID(params["id"])
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	if err := h.service.RemoveEmployee(r.Context(), id); err != nil {
		writeError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
