package get_penalty_policy

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-InstrumentReservation/internal/service/policy"
	"github.com/m04kA/SMC-InstrumentReservation/internal/service/policy/models"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) Get(ctx context.Context, instrumentTypeID *int64) (*models.PolicyResponse, error) {
	args := m.Called(ctx, instrumentTypeID)
	resp, _ := args.Get(0).(*models.PolicyResponse)
	return resp, args.Error(1)
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func typeIDIs(want int64) interface{} {
	return mock.MatchedBy(func(id *int64) bool { return id != nil && *id == want })
}

func TestHandler(t *testing.T) {
	svc := &mockService{}
	svc.On("Get", mock.Anything, typeIDIs(4)).Return(&models.PolicyResponse{
		Source:                  models.SourceDefault,
		LateCancelWindowMinutes: 120,
		CheckInGraceMinutes:     15,
		CheckOutGraceMinutes:    15,
		PenaltyPoints:           10,
		PenalizedThreshold:      30,
	}, nil).Once()

	rec := httptest.NewRecorder()
	NewHandler(svc, nopLogger{}).Handle(rec, httptest.NewRequest(http.MethodGet, "/api/penalty-policy?instrumentTypeId=4", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"id":0,"source":"default","lateCancelWindowMinutes":120,"checkInGraceMinutes":15,
		"checkOutGraceMinutes":15,"penaltyPoints":10,"penalizedThreshold":30}`, rec.Body.String())
	svc.AssertExpectations(t)
}

func TestHandler_GlobalScope(t *testing.T) {
	svc := &mockService{}
	svc.On("Get", mock.Anything, (*int64)(nil)).Return(&models.PolicyResponse{Source: models.SourceGlobal, PenalizedThreshold: 3}, nil).Once()

	rec := httptest.NewRecorder()
	NewHandler(svc, nopLogger{}).Handle(rec, httptest.NewRequest(http.MethodGet, "/api/penalty-policy", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	svc.AssertExpectations(t)
}

func TestHandler_InvalidQuery(t *testing.T) {
	svc := &mockService{}

	rec := httptest.NewRecorder()
	NewHandler(svc, nopLogger{}).Handle(rec, httptest.NewRequest(http.MethodGet, "/api/penalty-policy?instrumentTypeId=x", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	svc.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
}

func TestHandler_Unavailable(t *testing.T) {
	svc := &mockService{}
	svc.On("Get", mock.Anything, (*int64)(nil)).Return(nil, policy.ErrUnavailable).Once()

	rec := httptest.NewRecorder()
	NewHandler(svc, nopLogger{}).Handle(rec, httptest.NewRequest(http.MethodGet, "/api/penalty-policy", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	svc.AssertExpectations(t)
}
