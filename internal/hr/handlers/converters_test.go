package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	e "github.com/gartstein/hr/internal/hr/errors"
	"github.com/gartstein/hr/internal/hr/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", e.ErrNotFound, http.StatusNotFound},
		{"wrapped not found", fmt.Errorf("get: %w", e.ErrNotFound), http.StatusNotFound},
		{"duplicated", e.ErrDuplicatedID, http.StatusConflict},
		{"out of range", e.ErrOutOfRange, http.StatusBadRequest},
		{"invalid input", e.ErrInvalidInput, http.StatusBadRequest},
		{"unexpected", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, statusFor(tt.err))
		})
	}
}

func TestPageQuery(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		page     int
		pageSize int
		ok       bool
		wantErr  bool
	}{
		{name: "absent", query: ""},
		{name: "gender only", query: "gender=male"},
		{name: "both", query: "page=2&pageSize=5", page: 2, pageSize: 5, ok: true},
		{name: "negative values pass through", query: "page=-1&pageSize=0", page: -1, pageSize: 0, ok: true},
		{name: "page only", query: "page=1", wantErr: true},
		{name: "size only", query: "pageSize=1", wantErr: true},
		{name: "non numeric page", query: "page=a&pageSize=1", wantErr: true},
		{name: "non numeric size", query: "page=1&pageSize=b", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values, err := url.ParseQuery(tt.query)
			require.NoError(t, err)

			page, pageSize, ok, err := pageQuery(values)
			if tt.wantErr {
				assert.ErrorIs(t, err, e.ErrInvalidInput)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.page, page)
			assert.Equal(t, tt.pageSize, pageSize)
		})
	}
}

func TestDecodeBody(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{name: "valid", body: `{"id":1,"name":"Victor","age":30,"salary":1000,"gender":"male"}`},
		{name: "trailing newline", body: "{\"id\":1,\"name\":\"Victor\",\"age\":30,\"salary\":1000,\"gender\":\"male\"}\n"},
		{name: "malformed", body: `{"id":`, wantErr: true},
		{name: "second value", body: `{"id":1,"name":"Victor","age":30,"salary":1000,"gender":"male"} {"x":1}`, wantErr: true},
		{name: "trailing garbage", body: `{"id":1,"name":"Victor","age":30,"salary":1000,"gender":"male"}}`, wantErr: true},
		{name: "unknown field", body: `{"id":1,"name":"Victor","gender":"male","title":"x"}`, wantErr: true},
		{name: "missing name", body: `{"id":1,"gender":"male"}`, wantErr: true},
		{name: "bad gender", body: `{"id":1,"name":"Victor","gender":"other"}`, wantErr: true},
		{name: "negative age", body: `{"id":1,"name":"Victor","age":-1,"gender":"male"}`, wantErr: true},
		{name: "negative salary", body: `{"id":1,"name":"Victor","salary":-5,"gender":"female"}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/employees", strings.NewReader(tt.body))
			var req EmployeeRequest
			err := decodeBody(r, &req)
			if tt.wantErr {
				assert.ErrorIs(t, err, e.ErrInvalidInput)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, &models.Employee{ID: 1, Name: "Victor", Age: 30, Salary: 1000, Gender: models.GenderMale}, requestToEmployee(&req))
		})
	}
}

func TestDecodeBody_CompanyEmployeesAreValidated(t *testing.T) {
	body := `{"name":"ABC","employeeNumber":2,"employees":[{"id":1,"name":"","gender":"male"}]}`
	r := httptest.NewRequest(http.MethodPost, "/companies", strings.NewReader(body))

	var req CompanyRequest
	assert.ErrorIs(t, decodeBody(r, &req), e.ErrInvalidInput)
}

func TestRequestToCompany(t *testing.T) {
	id := uuid.New()
	req := &CompanyRequest{
		ID:             id.String(),
		Name:           "ABC Company",
		EmployeeNumber: 1000,
		Employees: []EmployeeRequest{
			{ID: 1, Name: "Victor", Age: 18, Salary: 1000, Gender: models.GenderMale},
			{ID: 2, Name: "Mary", Age: 19, Salary: 2000, Gender: models.GenderFemale},
		},
	}

	company, err := requestToCompany(req)
	require.NoError(t, err)
	assert.Equal(t, id, company.ID)
	assert.Equal(t, "ABC Company", company.Name)
	assert.Equal(t, 1000, company.EmployeeNumber)
	require.Len(t, company.Employees, 2)
	assert.Equal(t, "Victor", company.Employees[0].Name)
	assert.Equal(t, "Mary", company.Employees[1].Name)

	t.Run("empty id stays nil", func(t *testing.T) {
		company, err := requestToCompany(&CompanyRequest{Name: "ABC"})
		require.NoError(t, err)
		assert.Equal(t, uuid.Nil, company.ID)
		assert.NotNil(t, company.Employees)
	})

	t.Run("invalid id", func(t *testing.T) {
		_, err := requestToCompany(&CompanyRequest{ID: "not-a-uuid", Name: "ABC"})
		assert.ErrorIs(t, err, e.ErrInvalidInput)
	})
}

func TestParseIDs(t *testing.T) {
	id, err := parseEmployeeID("42")
	require.NoError(t, err)
	assert.Equal(t, 42, id)

	_, err = parseEmployeeID("forty-two")
	assert.ErrorIs(t, err, e.ErrInvalidInput)

	companyID := uuid.New()
	parsed, err := parseCompanyID(companyID.String())
	require.NoError(t, err)
	assert.Equal(t, companyID, parsed)

	_, err = parseCompanyID("123")
	assert.ErrorIs(t, err, e.ErrInvalidInput)
}

func TestWriteError(t *testing.T) {
	t.Run("domain error is returned verbatim", func(t *testing.T) {
		rec := httptest.NewRecorder()
		writeError(rec, zaptest.NewLogger(t), e.ErrNotFound)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
		assert.JSONEq(t, `{"error":"not found"}`, rec.Body.String())
	})

	t.Run("unexpected error is hidden and logged", func(t *testing.T) {
		core, recorded := observer.New(zap.ErrorLevel)
		rec := httptest.NewRecorder()
		writeError(rec, zap.New(core), errors.New("connection refused"))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.JSONEq(t, `{"error":"internal server error"}`, rec.Body.String())
		assert.Equal(t, 1, recorded.FilterMessage("Internal server error").Len())
	})
}
