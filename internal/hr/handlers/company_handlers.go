package handlers

import (
	"net/http"

	"github.com/grpc-ecosystem/grpc-gateway/v2/runtime"
	"go.uber.org/zap"
)

// CompanyHandler serves the /companies REST resource, mapping requests to
// a CompanyController.
type CompanyHandler struct {
	service CompanyController
	logger  *zap.Logger
}

// NewCompanyHandler constructs a new CompanyHandler with the given service and logger.
func NewCompanyHandler(service CompanyController, logger *zap.Logger) *CompanyHandler {
	return &CompanyHandler{
		service: service,
		logger:  logger.Named("http_handler"),
	}
}

// Register binds the company routes on mux.
func (h *CompanyHandler) Register(mux *runtime.ServeMux) error {
	routes := []struct {
		method  string
		pattern string
		handler runtime.HandlerFunc
	}{
		{http.MethodGet, "/companies", h.ListCompanies},
		{http.MethodPost, "/companies", h.CreateCompany},
		{http.MethodGet, "/companies/{id}", h.GetCompany},
		{http.MethodGet, "/companies/{id}/employees", h.ListCompanyEmployees},
		{http.MethodPut, "/companies/{id}", h.UpdateCompany},
		{http.MethodDelete, "/companies/{id}", h.DeleteCompany},
	}
	for _, route := range routes {
		if err := mux.HandlePath(route.method, route.pattern, route.handler); err != nil {
			return err
		}
	}
	return nil
}

// ListCompanies returns a page of companies when page and pageSize are
// given, every company otherwise.
func (h *CompanyHandler) ListCompanies(w http.ResponseWriter, r *http.Request, _ map[string]string) {
	page, pageSize, paged, err := pageQuery(r.URL.Query())
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	if paged {
		companies, err := h.service.ListCompaniesByPage(r.Context(), page, pageSize)
		if err != nil {
			writeError(w, h.logger, err)
			return
		}
		writeJSON(w, h.logger, http.StatusOK, companies)
		return
	}

	companies, err := h.service.ListCompanies(r.Context())
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, companies)
}

// CreateCompany processes a create request, adding a new Company.
func (h *CompanyHandler) CreateCompany(w http.ResponseWriter, r *http.Request, _ map[string]string) {
	var req CompanyRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}

	company, err := requestToCompany(&req)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	created, err := h.service.AddCompany(r.Context(), company)
	if err != nil {
		h.logger.Debug("Create company failed", zap.Error(err))
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusCreated, created)
}

// GetCompany fetches a Company by ID.
func (h *CompanyHandler) GetCompany(w http.ResponseWriter, r *http.Request, params map[string]string) {
	id, err := parseCompanyID(params["id"])
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	company, err := h.service.GetCompany(r.Context(), id)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, company)
}

// ListCompanyEmployees returns the employees owned by a Company.
func (h *CompanyHandler) ListCompanyEmployees(w http.ResponseWriter, r *http.Request, params map[string]string) {
	id, err := parseCompanyID(params["id"])
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	employees, err := h.service.ListCompanyEmployees(r.Context(), id)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, employees)
}

// UpdateCompany replaces an existing Company, including its employee list.
func (h *CompanyHandler) UpdateCompany(w http.ResponseWriter, r *http.Request, params map[string]string) {
	id, err := parseCompanyID(params["id"])
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	var req CompanyRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}
	req.ID = ""
	if err := validateRequest(&req); err != nil {
		writeError(w, h.logger, err)
		return
	}

	company, err := requestToCompany(&req)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	updated, err := h.service.UpdateCompany(r.Context(), id, company)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, updated)
}

// DeleteCompany removes a Company given its ID.
func (h *CompanyHandler) DeleteCompany(w http.ResponseWriter, r *http.Request, params map[string]string) {
	id, err := parseCompanyID(params["id"])
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	if err := h.service.RemoveCompany(r.Context(), id); err != nil {
		writeError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
