package create_booking

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"
	"strings"

	createBooking "github.com/m04kA/SMC-InstrumentReservation/internal/usecase/create_booking"
)

var errInvalidScheduleIDs = errors.New("scheduleIds must be an id, an array of ids or a comma-separated string")

// ScheduleIDs список слотов; принимает число, массив чисел или строку "1,2,3"
type ScheduleIDs []int64

// UnmarshalJSON разбирает все три формы scheduleIds
func (s *ScheduleIDs) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*s = nil
		return nil
	}

	switch data[0] {
	case '[':
		var ids []int64
		if err := json.Unmarshal(data, &ids); err != nil {
			return errInvalidScheduleIDs
		}
		*s = ids
		return nil

	case '"':
		var raw string
		if err := json.Unmarshal(data, &raw); err != nil {
			return errInvalidScheduleIDs
		}
		ids := make([]int64, 0)
		for _, part := range strings.Split(raw, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			id, err := strconv.ParseInt(part, 10, 64)
			if err != nil {
				return errInvalidScheduleIDs
			}
			ids = append(ids, id)
		}
		*s = ids
		return nil

	default:
		var id int64
		if err := json.Unmarshal(data, &id); err != nil {
			return errInvalidScheduleIDs
		}
		*s = ScheduleIDs{id}
		return nil
	}
}

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	StudentID   int64       `json:"studentId"`
	ScheduleIDs ScheduleIDs `json:"scheduleIds"`
}

// CreateBookingResponse HTTP response model
type CreateBookingResponse struct {
	Success     bool    `json:"success"`
	BookingID   int64   `json:"bookingId"`
	StudentID   int64   `json:"studentId"`
	Status      string  `json:"status"`
	ScheduleIDs []int64 `json:"scheduleIds"`
	BookedAt    string  `json:"bookedAt"`
	Message     string  `json:"message"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest() *createBooking.Request {
	return &createBooking.Request{
		StudentID:   r.StudentID,
		ScheduleIDs: []int64(r.ScheduleIDs),
	}
}
