package check_in

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-InstrumentReservation/internal/domain"
	"github.com/m04kA/SMC-InstrumentReservation/internal/usecase/memstore"
	"github.com/m04kA/SMC-InstrumentReservation/internal/usecase/penalty"
	"github.com/m04kA/SMC-InstrumentReservation/pkg/types"
)

var today = time.Date(2026, 5, 5, 0, 0, 0, 0, time.UTC)

func newFixture(t *testing.T) (*UseCase, *memstore.Store, *memstore.Recorder) {
	t.Helper()

	store := memstore.New()
	store.AddQuotaPlan(domain.QuotaPlan{
		ID: 1, StudentID: 1, AccessLevel: "Level02", Status: domain.QuotaActive,
		ExpirationDate: time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC),
	})
	store.AddSchedule(domain.Schedule{
		ID: 10, InstrumentTypeID: 1, Date: today,
		StartTime: "10:00:00", EndTime: "11:00:00", Status: domain.ScheduleBooked,
	})
	store.AddSchedule(domain.Schedule{
		ID: 11, InstrumentTypeID: 1, Date: today,
		StartTime: "11:00:00", EndTime: "12:00:00", Status: domain.ScheduleBooked,
	})
	store.AddSchedule(domain.Schedule{
		ID: 20, InstrumentTypeID: 1, Date: today.AddDate(0, 0, 1),
		StartTime: "10:00:00", EndTime: "11:00:00", Status: domain.ScheduleBooked,
	})
	store.AddBooking(domain.Booking{ID: 500, StudentID: 1, Status: domain.BookingActive}, 10, 11)
	store.AddBooking(domain.Booking{ID: 501, StudentID: 1, Status: domain.BookingActive}, 20)
	store.AddBooking(domain.Booking{ID: 502, StudentID: 1, Status: domain.BookingCanceled}, 10)

	rec := &memstore.Recorder{}
	policy := domain.PenaltyPolicy{CheckInGraceMinutes: 15, PenaltyPoints: 1, PenalizedThreshold: 3}
	uc := NewUseCase(store, memstore.StaticPolicy{Policy: policy}, penalty.NewIssuer(store, memstore.Logger{}),
		store, rec, rec, memstore.Clock{T: today.Add(9 * time.Hour)}, memstore.Logger{})
	return uc, store, rec
}

func TestCheckIn_Lateness(t *testing.T) {
	tests := []struct {
		name        string
		checkIn     types.TimeString
		wantPenalty bool
		wantSlot    int64
	}{
		{name: "early", checkIn: "09:50:00", wantPenalty: false, wantSlot: 10},
		{name: "within grace", checkIn: "10:15:00", wantPenalty: false, wantSlot: 10},
		{name: "after grace", checkIn: "10:16:00", wantPenalty: true, wantSlot: 10},
		{name: "second slot of the booking", checkIn: "11:05:00", wantPenalty: false, wantSlot: 11},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, store, rec := newFixture(t)

			resp, err := uc.Execute(context.Background(), &Request{BookingID: 500, CheckInTime: tt.checkIn})
			require.NoError(t, err)

			assert.Equal(t, tt.wantPenalty, resp.PenaltyIssued)
			assert.Equal(t, tt.wantSlot, resp.ScheduleID)

			booking, _ := store.Booking(500)
			require.NotNil(t, booking.CheckInTime)
			assert.Equal(t, tt.checkIn, *booking.CheckInTime)
			assert.Equal(t, domain.BookingActive, booking.Status)

			if tt.wantPenalty {
				assert.Equal(t, 1, store.QuotaPlan(1).PenaltyPoints)
				assert.Equal(t, []string{"LateCheckIn"}, rec.Penalties)
			} else {
				assert.Equal(t, 0, store.QuotaPlan(1).PenaltyPoints)
				assert.Empty(t, store.Penalties())
			}
			assert.Equal(t, 1, rec.CheckIns)
		})
	}
}

func TestCheckIn_InvalidState(t *testing.T) {
	tests := []struct {
		name    string
		req     Request
		wantErr error
	}{
		{name: "slot is tomorrow", req: Request{BookingID: 501, CheckInTime: "10:00:00"}, wantErr: ErrNoActiveSlot},
		{name: "all slots ended", req: Request{BookingID: 500, CheckInTime: "12:00:00"}, wantErr: ErrNoActiveSlot},
		{name: "cancelled booking", req: Request{BookingID: 502, CheckInTime: "10:00:00"}, wantErr: ErrBookingNotActive},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, _, _ := newFixture(t)

			_, err := uc.Execute(context.Background(), &tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.ErrorIs(t, err, domain.ErrInvalidState)
		})
	}
}

func TestCheckIn_EarlyLimit(t *testing.T) {
	tests := []struct {
		name     string
		limit    int
		checkIn  types.TimeString
		wantErr  error
		wantSlot int64
	}{
		{name: "no limit allows any time before the end", limit: 0, checkIn: "06:00:00", wantSlot: 10},
		{name: "inside the window", limit: 30, checkIn: "09:30:00", wantSlot: 10},
		{name: "before the window", limit: 30, checkIn: "09:29:59", wantErr: ErrCheckInTooEarly},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, store, _ := newFixture(t)
			uc.WithEarlyCheckInLimit(tt.limit)

			resp, err := uc.Execute(context.Background(), &Request{BookingID: 500, CheckInTime: tt.checkIn})
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.ErrorIs(t, err, domain.ErrInvalidState)
				booking, ok := store.Booking(500)
				require.True(t, ok)
				assert.Nil(t, booking.CheckInTime)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantSlot, resp.ScheduleID)
			assert.False(t, resp.PenaltyIssued)
		})
	}
}

func TestCheckIn_Twice(t *testing.T) {
	uc, _, _ := newFixture(t)

	_, err := uc.Execute(context.Background(), &Request{BookingID: 500, CheckInTime: "10:00:00"})
	require.NoError(t, err)

	_, err = uc.Execute(context.Background(), &Request{BookingID: 500, CheckInTime: "10:01:00"})
	assert.ErrorIs(t, err, ErrAlreadyCheckedIn)
}

func TestCheckIn_InputErrors(t *testing.T) {
	uc, _, _ := newFixture(t)

	_, err := uc.Execute(context.Background(), &Request{BookingID: 500})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{BookingID: 500, CheckInTime: "25:00:00"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{BookingID: 999, CheckInTime: "10:00:00"})
	assert.ErrorIs(t, err, ErrBookingNotFound)
}
