package create_booking

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-InstrumentReservation/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.StudentID <= 0 {
		return fmt.Errorf("%w: studentId must be positive", ErrInvalidInput)
	}

	if len(req.ScheduleIDs) == 0 {
		return fmt.Errorf("%w: scheduleIds must not be empty", ErrInvalidInput)
	}

	if len(req.ScheduleIDs) > domain.MaxSlotsPerBooking {
		return fmt.Errorf("%w: at most %d slots per booking", ErrInvalidInput, domain.MaxSlotsPerBooking)
	}

	seen := make(map[int64]struct{}, len(req.ScheduleIDs))
	for _, id := range req.ScheduleIDs {
		if id <= 0 {
			return fmt.Errorf("%w: scheduleIds must be positive", ErrInvalidInput)
		}
		if _, ok := seen[id]; ok {
			return fmt.Errorf("%w: duplicate scheduleId %d", ErrInvalidInput, id)
		}
		seen[id] = struct{}{}
	}

	return nil
}

// validateSchedules проверяет каждый запрошенный слот в порядке запроса:
// существование, уровень доступа студента, статус и то, что слот не закончился
func validateSchedules(
	requested []int64,
	schedules []*domain.Schedule,
	accessLevel domain.AccessLevel,
	now time.Time,
) error {
	byID := make(map[int64]*domain.Schedule, len(schedules))
	for _, s := range schedules {
		byID[s.ID] = s
	}

	for _, id := range requested {
		s, ok := byID[id]
		if !ok {
			return fmt.Errorf("%w: id=%d", ErrSlotNotFound, id)
		}

		if !accessLevel.Covers(s.RequiredAccessLevel) {
			return fmt.Errorf("%w: slot id=%d requires %s, student has %s",
				ErrInsufficientAccessLevel, id, s.RequiredAccessLevel, accessLevel)
		}

		if !s.IsAvailable() {
			return fmt.Errorf("%w: slot id=%d is %s", ErrSlotNotAvailable, id, s.Status)
		}

		if !s.EndsAt(now.Location()).After(now) {
			return fmt.Errorf("%w: slot id=%d", ErrSlotInPast, id)
		}
	}

	return nil
}
