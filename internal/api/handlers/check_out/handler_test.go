package check_out

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	checkOut "github.com/m04kA/SMC-InstrumentReservation/internal/usecase/check_out"
	"github.com/m04kA/SMC-InstrumentReservation/pkg/types"
)

type fakeUseCase struct {
	req  *checkOut.Request
	resp *checkOut.Response
	err  error
}

func (f *fakeUseCase) Execute(ctx context.Context, req *checkOut.Request) (*checkOut.Response, error) {
	f.req = req
	return f.resp, f.err
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func serve(h *Handler, bookingID, body string) (int, map[string]interface{}) {
	router := mux.NewRouter()
	router.HandleFunc("/api/bookings/{bookingId}/checkout", h.Handle).Methods(http.MethodPost)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/bookings/"+bookingID+"/checkout", strings.NewReader(body)))

	var decoded map[string]interface{}
	_ = json.Unmarshal(rec.Body.Bytes(), &decoded)
	return rec.Code, decoded
}

func TestHandler_Success(t *testing.T) {
	uc := &fakeUseCase{resp: &checkOut.Response{
		BookingID:     4,
		ScheduleID:    13,
		CheckOutTime:  "11:40:15",
		Status:        "Completed",
		PenaltyIssued: true,
	}}

	status, body := serve(NewHandler(uc, nopLogger{}), "4", `{"checkOutTime":"11:40:15"}`)

	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, types.TimeString("11:40:15"), uc.req.CheckOutTime)
	assert.Equal(t, int64(4), uc.req.BookingID)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Completed", body["status"])
	assert.Equal(t, "Checked out. A late penalty was issued.", body["message"])
}

func TestHandler_SuccessOnTime(t *testing.T) {
	uc := &fakeUseCase{resp: &checkOut.Response{BookingID: 4, CheckOutTime: "10:55:00", Status: "Completed"}}

	status, body := serve(NewHandler(uc, nopLogger{}), "4", `{"checkOutTime":"10:55"}`)

	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, false, body["penaltyIssued"])
	assert.Equal(t, "Checked out successfully!", body["message"])
}

func TestHandler_Errors(t *testing.T) {
	tests := []struct {
		name       string
		bookingID  string
		body       string
		err        error
		wantStatus int
		wantError  string
	}{
		{name: "bad id", bookingID: "0", body: `{"checkOutTime":"10:00"}`, wantStatus: http.StatusBadRequest, wantError: msgInvalidBookingID},
		{name: "bad time", bookingID: "4", body: `{"checkOutTime":"ten"}`, wantStatus: http.StatusBadRequest, wantError: msgInvalidTime},
		{name: "not checked in", bookingID: "4", body: `{"checkOutTime":"10:00"}`, err: checkOut.ErrNotCheckedIn, wantStatus: http.StatusBadRequest, wantError: msgNotCheckedIn},
		{name: "already out", bookingID: "4", body: `{"checkOutTime":"10:00"}`, err: checkOut.ErrAlreadyCheckedOut, wantStatus: http.StatusBadRequest, wantError: msgAlreadyCheckedOut},
		{name: "before check-in", bookingID: "4", body: `{"checkOutTime":"08:00"}`, err: checkOut.ErrBeforeCheckIn, wantStatus: http.StatusBadRequest, wantError: msgBeforeCheckIn},
		{name: "no slot today", bookingID: "4", body: `{"checkOutTime":"10:00"}`, err: checkOut.ErrNoSlotToday, wantStatus: http.StatusBadRequest, wantError: msgNoSlotToday},
		{name: "internal", bookingID: "4", body: `{"checkOutTime":"10:00"}`, err: checkOut.ErrInternal, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := serve(NewHandler(&fakeUseCase{err: tt.err}, nopLogger{}), tt.bookingID, tt.body)

			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, false, body["success"])
			if tt.wantError != "" {
				assert.Equal(t, tt.wantError, body["error"])
			}
		})
	}
}
