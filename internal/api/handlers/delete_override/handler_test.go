package delete_override

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CeramicsBooking/internal/api/middleware"
	"github.com/m04kA/SMC-CeramicsBooking/internal/service/settings"
	"github.com/m04kA/SMC-CeramicsBooking/internal/service/settings/models"
)

type fakeService struct {
	lastReq *models.DeleteOverrideRequest
	err     error
}

func (f *fakeService) DeleteOverride(_ context.Context, req *models.DeleteOverrideRequest) error {
	f.lastReq = req
	return f.err
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func serve(svc *fakeService, date string, withUser bool) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.HandleFunc("/settings/overrides/{date}", NewHandler(svc, nopLogger{}).Handle).Methods(http.MethodDelete)

	req := httptest.NewRequest(http.MethodDelete, "/settings/overrides/"+date, nil)
	if withUser {
		req = req.WithContext(middleware.WithUserID(req.Context(), 1))
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHandle_Deleted(t *testing.T) {
	svc := &fakeService{}

	rec := serve(svc, "2025-12-25", true)

	require.Equal(t, http.StatusNoContent, rec.Code)
	require.NotNil(t, svc.lastReq)
	assert.Equal(t, "2025-12-25", svc.lastReq.Date)
	assert.Equal(t, int64(1), svc.lastReq.AdminID)
	assert.Empty(t, rec.Body.String())
}

func TestHandle_StatusMapping(t *testing.T) {
	tests := []struct {
		name     string
		withUser bool
		err      error
		wantCode int
	}{
		{"missing user", false, nil, http.StatusUnauthorized},
		{"no override", true, settings.ErrOverrideNotFound, http.StatusNotFound},
		{"invalid date", true, settings.ErrInvalidInput, http.StatusBadRequest},
		{"internal", true, errors.New("db down"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(&fakeService{err: tt.err}, "2025-12-25", tt.withUser)
			assert.Equal(t, tt.wantCode, rec.Code)
		})
	}
}
