package get_bookings

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-InstrumentReservation/internal/service/bookings"
	"github.com/m04kA/SMC-InstrumentReservation/internal/service/bookings/models"
)

type fakeService struct {
	req  *models.GetBookingsRequest
	list []models.BookingLineResponse
	err  error
}

func (f *fakeService) List(ctx context.Context, req *models.GetBookingsRequest) ([]models.BookingLineResponse, error) {
	f.req = req
	return f.list, f.err
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func TestHandler(t *testing.T) {
	svc := &fakeService{list: []models.BookingLineResponse{{BookingID: 3, BookingStatus: "Active", ScheduleDate: "2026-10-15"}}}
	h := NewHandler(svc, nopLogger{})

	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodGet, "/api/bookings?studentId=7&status=Active", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(7), *svc.req.StudentID)
	assert.Equal(t, "Active", *svc.req.Status)

	var body []map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body, 1)
	assert.Equal(t, "Active", body[0]["BookingStatus"])
	assert.Contains(t, body[0], "CheckInTime")
}

func TestHandler_Errors(t *testing.T) {
	h := NewHandler(&fakeService{}, nopLogger{})
	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodGet, "/api/bookings?studentId=-4", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"invalid studentId"}`, rec.Body.String())

	h = NewHandler(&fakeService{err: bookings.ErrInvalidStatus}, nopLogger{})
	rec = httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodGet, "/api/bookings?status=Pending", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	h = NewHandler(&fakeService{err: bookings.ErrUnavailable}, nopLogger{})
	rec = httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodGet, "/api/bookings", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	h = NewHandler(&fakeService{err: bookings.ErrInternal}, nopLogger{})
	rec = httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodGet, "/api/bookings", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
