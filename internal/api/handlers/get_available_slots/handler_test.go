package get_available_slots

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CeramicsBooking/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-CeramicsBooking/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-CeramicsBooking/pkg/types"
)

type fakeUseCase struct {
	lastReq *getAvailableSlots.Request
	err     error
}

func (f *fakeUseCase) Execute(_ context.Context, req *getAvailableSlots.Request) (*getAvailableSlots.Response, error) {
	f.lastReq = req
	if f.err != nil {
		return nil, f.err
	}
	return &getAvailableSlots.Response{
		Date:         req.Date,
		Technique:    req.Technique,
		Participants: req.Participants,
		FixedTimes:   []types.TimeString{"11:00"},
		Slots: []domain.SlotAvailability{
			{Time: "11:00", CanBook: true, BlockedReason: domain.ReasonNone, AvailableCount: 8},
			{Time: "12:00", BlockedReason: domain.ReasonFixedClassConflict, AvailableCount: 8},
		},
	}, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestHandle_OK(t *testing.T) {
	uc := &fakeUseCase{}
	h := NewHandler(uc, nopLogger{})

	req := httptest.NewRequest(http.MethodGet,
		"/api/v1/availability?date=2025-03-12&technique=potters_wheel&participants=2&times=11:00,9:00", nil)
	rec := httptest.NewRecorder()

	h.Handle(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, uc.lastReq)
	assert.Equal(t, domain.TechniquePottersWheel, uc.lastReq.Technique)
	assert.Equal(t, 2, uc.lastReq.Participants)
	assert.Equal(t, []types.TimeString{"11:00", "09:00"}, uc.lastReq.Times)

	var body AvailabilityResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "2025-03-12", body.Date)
	assert.Equal(t, []string{"11:00"}, body.FixedTimes)
	require.Len(t, body.Slots, 2)
	assert.True(t, body.Slots[0].CanBook)
	assert.Equal(t, "none", body.Slots[0].BlockedReason)
	assert.Equal(t, "fixed_class_conflict", body.Slots[1].BlockedReason)
}

func TestHandle_DefaultParticipants(t *testing.T) {
	uc := &fakeUseCase{}
	h := NewHandler(uc, nopLogger{})

	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/availability?date=2025-03-12&technique=painting", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, uc.lastReq.Participants)
	assert.Empty(t, uc.lastReq.Times)
}

func TestHandle_BadRequests(t *testing.T) {
	tests := []struct {
		name  string
		query string
		ucErr error
	}{
		{name: "missing date", query: "technique=painting"},
		{name: "bad date", query: "date=12-03-2025&technique=painting"},
		{name: "missing technique", query: "date=2025-03-12"},
		{name: "bad participants", query: "date=2025-03-12&technique=painting&participants=two"},
		{name: "bad time", query: "date=2025-03-12&technique=painting&times=25:00"},
		{name: "unknown technique", query: "date=2025-03-12&technique=glazing", ucErr: getAvailableSlots.ErrInvalidTechnique},
		{name: "date in past", query: "date=2025-03-12&technique=painting", ucErr: getAvailableSlots.ErrInvalidDate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(&fakeUseCase{err: tt.ucErr}, nopLogger{})
			rec := httptest.NewRecorder()

			h.Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/availability?"+tt.query, nil))

			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestHandle_InternalError(t *testing.T) {
	h := NewHandler(&fakeUseCase{err: fmt.Errorf("%w: db down", getAvailableSlots.ErrInternal)}, nopLogger{})
	rec := httptest.NewRecorder()

	h.Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/availability?date=2025-03-12&technique=painting", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
