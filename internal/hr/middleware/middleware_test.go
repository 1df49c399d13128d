package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestHTTPLogging(t *testing.T) {
	tests := []struct {
		name       string
		handler    http.HandlerFunc
		wantStatus int
		wantPanic  bool
	}{
		{
			name:       "implicit ok",
			handler:    func(w http.ResponseWriter, _ *http.Request) { _, _ = w.Write([]byte("ok")) },
			wantStatus: http.StatusOK,
		},
		{
			name:       "explicit status",
			handler:    func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusNotFound) },
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "panic",
			handler:    func(http.ResponseWriter, *http.Request) { panic("boom") },
			wantStatus: http.StatusInternalServerError,
			wantPanic:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			core, recorded := observer.New(zap.InfoLevel)
			h := HTTPLogging(tt.handler, zap.New(core))

			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/employees/1", nil))

			assert.Equal(t, tt.wantStatus, rec.Code)

			logs := recorded.FilterMessage("HTTP request")
			if assert.Equal(t, 1, logs.Len()) {
				entry := logs.All()[0]
				assert.Equal(t, "http", entry.LoggerName)
				fields := entry.ContextMap()
				assert.Equal(t, "GET", fields["method"])
				assert.Equal(t, "/employees/1", fields["path"])
				assert.EqualValues(t, tt.wantStatus, fields["status"])
			}

			panics := recorded.FilterMessage("Panic in HTTP handler").Len()
			if tt.wantPanic {
				assert.Equal(t, 1, panics)
			} else {
				assert.Zero(t, panics)
			}
		})
	}
}
