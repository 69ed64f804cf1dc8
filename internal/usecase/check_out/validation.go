package check_out

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-InstrumentReservation/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.BookingID <= 0 {
		return fmt.Errorf("%w: bookingId must be positive", ErrInvalidInput)
	}

	if req.CheckOutTime.IsZero() {
		return fmt.Errorf("%w: checkOutTime is required", ErrInvalidInput)
	}

	if err := req.CheckOutTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid checkOutTime format: %v", ErrInvalidInput, err)
	}

	return nil
}

// findCheckOutSlot возвращает последний сегодняшний слот бронирования
func findCheckOutSlot(schedules []*domain.Schedule, today time.Time) *domain.Schedule {
	var last *domain.Schedule
	for _, s := range schedules {
		if s.IsOn(today) {
			last = s
		}
	}
	return last
}
