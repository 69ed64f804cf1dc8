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

	"github.com/m04kA/SMC-InstrumentReservation/internal/domain"
	"github.com/m04kA/SMC-InstrumentReservation/internal/service/catalog/models"
)

type fakeService struct {
	req   *models.GetAvailableSlotsRequest
	slots []models.AvailableSlotResponse
	err   error
}

func (f *fakeService) ListAvailableSlots(ctx context.Context, req *models.GetAvailableSlotsRequest) ([]models.AvailableSlotResponse, error) {
	f.req = req
	return f.slots, f.err
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func TestHandler_PassesFilter(t *testing.T) {
	svc := &fakeService{slots: []models.AvailableSlotResponse{{ScheduleID: 9, Date: "2026-10-20", Location: "Main - 1A"}}}
	h := NewHandler(svc, nopLogger{})

	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodGet, "/api/available-slots?instrumentTypeId=2&date=2026-10-20", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, svc.req.InstrumentTypeID)
	assert.Equal(t, int64(2), *svc.req.InstrumentTypeID)
	assert.Equal(t, "2026-10-20", *svc.req.Date)

	var body []map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body, 1)
	assert.Equal(t, float64(9), body[0]["ScheduleID"])
	assert.Equal(t, "Main - 1A", body[0]["Location"])
}

func TestHandler_NoFilter(t *testing.T) {
	svc := &fakeService{slots: []models.AvailableSlotResponse{}}
	h := NewHandler(svc, nopLogger{})

	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodGet, "/api/available-slots", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, svc.req.InstrumentTypeID)
	assert.Nil(t, svc.req.Date)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestHandler_BadFilter(t *testing.T) {
	svc := &fakeService{}
	h := NewHandler(svc, nopLogger{})

	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodGet, "/api/available-slots?instrumentTypeId=abc", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Nil(t, svc.req)

	svc.err = fmt.Errorf("bad date: %w", domain.ErrValidation)
	rec = httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodGet, "/api/available-slots?date=tomorrow", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"`+msgInvalidFilter+`"}`, rec.Body.String())
}
