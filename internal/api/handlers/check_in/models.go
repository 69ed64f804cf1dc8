package check_in

import (
	checkIn "github.com/m04kA/SMC-InstrumentReservation/internal/usecase/check_in"
	"github.com/m04kA/SMC-InstrumentReservation/pkg/types"
)

// CheckInRequest HTTP request model
type CheckInRequest struct {
	CheckInTime string `json:"checkInTime"` // "09:05" или "09:05:30"
}

// CheckInResponse HTTP response model
type CheckInResponse struct {
	Success       bool             `json:"success"`
	BookingID     int64            `json:"bookingId"`
	ScheduleID    int64            `json:"scheduleId"`
	CheckInTime   types.TimeString `json:"checkInTime"`
	PenaltyIssued bool             `json:"penaltyIssued"`
	Message       string           `json:"message"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CheckInRequest) ToUseCaseRequest(bookingID int64) (*checkIn.Request, error) {
	checkInTime, err := types.NewTimeStringFromString(r.CheckInTime)
	if err != nil {
		return nil, err
	}

	return &checkIn.Request{
		BookingID:   bookingID,
		CheckInTime: checkInTime,
	}, nil
}
