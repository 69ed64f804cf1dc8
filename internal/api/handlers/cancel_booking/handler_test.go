package cancel_booking

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

	cancelBooking "github.com/m04kA/SMC-InstrumentReservation/internal/usecase/cancel_booking"
)

type fakeUseCase struct {
	req  *cancelBooking.Request
	resp *cancelBooking.Response
	err  error
}

func (f *fakeUseCase) Execute(ctx context.Context, req *cancelBooking.Request) (*cancelBooking.Response, error) {
	f.req = req
	return f.resp, f.err
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func serve(h *Handler, bookingID, body string) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.HandleFunc("/api/bookings/{bookingId}/cancel", h.Handle).Methods(http.MethodPost)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/bookings/"+bookingID+"/cancel", strings.NewReader(body)))
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestHandler_Messages(t *testing.T) {
	tests := []struct {
		name    string
		penalty bool
		want    string
	}{
		{name: "on time", penalty: false, want: "Booking cancelled successfully!"},
		{name: "late", penalty: true, want: "Booking cancelled. A penalty was issued for late cancellation."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &fakeUseCase{resp: &cancelBooking.Response{BookingID: 5, PenaltyIssued: tt.penalty, Reason: "Cancelled via UI"}}

			rec := serve(NewHandler(uc, nopLogger{}), "5", "")

			require.Equal(t, http.StatusOK, rec.Code)
			body := decode(t, rec)
			assert.Equal(t, true, body["success"])
			assert.Equal(t, tt.penalty, body["penaltyIssued"])
			assert.Equal(t, tt.want, body["message"])
			assert.Nil(t, uc.req.Reason)
		})
	}
}

func TestHandler_PassesReason(t *testing.T) {
	uc := &fakeUseCase{resp: &cancelBooking.Response{BookingID: 5, Reason: "sick"}}

	rec := serve(NewHandler(uc, nopLogger{}), "5", `{"reason":"sick"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, uc.req.Reason)
	assert.Equal(t, "sick", *uc.req.Reason)
	assert.Equal(t, int64(5), uc.req.BookingID)
}

func TestHandler_Errors(t *testing.T) {
	tests := []struct {
		name       string
		bookingID  string
		err        error
		wantStatus int
		wantError  string
	}{
		{name: "bad id", bookingID: "abc", wantStatus: http.StatusBadRequest, wantError: msgInvalidBookingID},
		{name: "unknown booking", bookingID: "9", err: cancelBooking.ErrBookingNotFound, wantStatus: http.StatusBadRequest, wantError: "booking not found"},
		{name: "not active", bookingID: "9", err: cancelBooking.ErrBookingNotActive, wantStatus: http.StatusBadRequest, wantError: msgNotActive},
		{name: "unavailable", bookingID: "9", err: cancelBooking.ErrUnavailable, wantStatus: http.StatusServiceUnavailable},
		{name: "internal", bookingID: "9", err: cancelBooking.ErrInternal, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(NewHandler(&fakeUseCase{err: tt.err}, nopLogger{}), tt.bookingID, "")

			assert.Equal(t, tt.wantStatus, rec.Code)
			body := decode(t, rec)
			assert.Equal(t, false, body["success"])
			if tt.wantError != "" {
				assert.Equal(t, tt.wantError, body["error"])
			}
		})
	}
}
