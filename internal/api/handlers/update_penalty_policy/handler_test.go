package update_penalty_policy

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-InstrumentReservation/internal/service/policy"
	"github.com/m04kA/SMC-InstrumentReservation/internal/service/policy/models"
)

type fakeService struct {
	current   *models.PolicyResponse
	getErr    error
	updateErr error
	updated   *models.UpdatePolicyRequest
}

func (f *fakeService) Get(ctx context.Context, instrumentTypeID *int64) (*models.PolicyResponse, error) {
	return f.current, f.getErr
}

func (f *fakeService) Update(ctx context.Context, req *models.UpdatePolicyRequest) (*models.PolicyResponse, error) {
	f.updated = req
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	return &models.PolicyResponse{
		ID:                      11,
		InstrumentTypeID:        req.InstrumentTypeID,
		Source:                  models.SourceInstrumentType,
		LateCancelWindowMinutes: req.LateCancelWindowMinutes,
		CheckInGraceMinutes:     req.CheckInGraceMinutes,
		CheckOutGraceMinutes:    req.CheckOutGraceMinutes,
		PenaltyPoints:           req.PenaltyPoints,
		PenalizedThreshold:      req.PenalizedThreshold,
	}, nil
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func currentDefaults() *models.PolicyResponse {
	return &models.PolicyResponse{
		Source:                  models.SourceDefault,
		LateCancelWindowMinutes: 120,
		CheckInGraceMinutes:     15,
		CheckOutGraceMinutes:    15,
		PenaltyPoints:           10,
		PenalizedThreshold:      30,
	}
}

func TestHandler_PartialUpdate(t *testing.T) {
	svc := &fakeService{current: currentDefaults()}
	h := NewHandler(svc, nopLogger{})

	rec := httptest.NewRecorder()
	body := `{"instrumentTypeId":2,"penaltyPoints":25}`
	h.Handle(rec, httptest.NewRequest(http.MethodPut, "/api/penalty-policy", strings.NewReader(body)))

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, svc.updated)
	assert.Equal(t, int64(2), *svc.updated.InstrumentTypeID)
	assert.Equal(t, 25, svc.updated.PenaltyPoints)
	assert.Equal(t, 120, svc.updated.LateCancelWindowMinutes)
	assert.Equal(t, 30, svc.updated.PenalizedThreshold)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, true, resp["success"])
	assert.Equal(t, msgSuccess, resp["message"])
}

func TestHandler_Errors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		svc        *fakeService
		wantStatus int
		wantError  string
	}{
		{name: "bad body", body: `[`, svc: &fakeService{}, wantStatus: http.StatusBadRequest, wantError: msgInvalidRequestBody},
		{name: "invalid values", body: `{"penalizedThreshold":0}`, svc: &fakeService{current: currentDefaults(), updateErr: policy.ErrInvalidInput}, wantStatus: http.StatusBadRequest, wantError: msgInvalidData},
		{name: "unknown type", body: `{"instrumentTypeId":99}`, svc: &fakeService{current: currentDefaults(), updateErr: policy.ErrInstrumentTypeNotFound}, wantStatus: http.StatusBadRequest, wantError: msgInstrumentTypeNotFound},
		{name: "store down", body: `{}`, svc: &fakeService{getErr: policy.ErrUnavailable}, wantStatus: http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			NewHandler(tt.svc, nopLogger{}).Handle(rec, httptest.NewRequest(http.MethodPut, "/api/penalty-policy", strings.NewReader(tt.body)))

			assert.Equal(t, tt.wantStatus, rec.Code)
			var resp map[string]interface{}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, false, resp["success"])
			if tt.wantError != "" {
				assert.Equal(t, tt.wantError, resp["error"])
			}
		})
	}
}
