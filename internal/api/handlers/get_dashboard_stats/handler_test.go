package get_dashboard_stats

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-InstrumentReservation/internal/domain"
	"github.com/m04kA/SMC-InstrumentReservation/internal/service/catalog/models"
)

type fakeService struct {
	stats *models.DashboardStatsResponse
	err   error
}

func (f *fakeService) GetDashboardStats(ctx context.Context) (*models.DashboardStatsResponse, error) {
	return f.stats, f.err
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func TestHandler(t *testing.T) {
	h := NewHandler(&fakeService{stats: &models.DashboardStatsResponse{
		TotalStudents: 3, TotalInstruments: 8, ActiveBookings: 2,
		CompletedBookings: 5, AvailableSlots: 40, PenalizedStudents: 1,
	}}, nopLogger{})

	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodGet, "/api/dashboard/stats", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"totalStudents":3,"totalInstruments":8,"activeBookings":2,
		"completedBookings":5,"availableSlots":40,"penalizedStudents":1}`, rec.Body.String())
}

func TestHandler_Unavailable(t *testing.T) {
	h := NewHandler(&fakeService{err: fmt.Errorf("x: %w", domain.ErrServiceUnavailable)}, nopLogger{})

	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodGet, "/api/dashboard/stats", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), `"error"`)
}
