package check_in

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-InstrumentReservation/internal/domain"
	"github.com/m04kA/SMC-InstrumentReservation/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.BookingID <= 0 {
		return fmt.Errorf("%w: bookingId must be positive", ErrInvalidInput)
	}

	if req.CheckInTime.IsZero() {
		return fmt.Errorf("%w: checkInTime is required", ErrInvalidInput)
	}

	if err := req.CheckInTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid checkInTime format: %v", ErrInvalidInput, err)
	}

	return nil
}

// findCheckInSlot возвращает самый ранний сегодняшний слот, который еще не закончился
// к моменту прихода. Слоты упорядочены по дате и времени начала.
// earlyLimitMinutes > 0 запрещает приход раньше чем за столько минут до начала слота
func findCheckInSlot(schedules []*domain.Schedule, today time.Time, checkIn types.TimeString, earlyLimitMinutes int) (*domain.Schedule, error) {
	for _, s := range schedules {
		if !s.IsOn(today) || !s.EndTime.IsAfter(checkIn) {
			continue
		}
		if earlyLimitMinutes > 0 && checkIn.Seconds() < s.StartTime.Seconds()-earlyLimitMinutes*60 {
			return nil, fmt.Errorf("%w: slot starts at %s, check-in opens %d min before",
				ErrCheckInTooEarly, s.StartTime, earlyLimitMinutes)
		}
		return s, nil
	}
	return nil, ErrNoActiveSlot
}
