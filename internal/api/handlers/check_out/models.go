package check_out

import (
	checkOut "github.com/m04kA/SMC-InstrumentReservation/internal/usecase/check_out"
	"github.com/m04kA/SMC-InstrumentReservation/pkg/types"
)

// CheckOutRequest HTTP request model
type CheckOutRequest struct {
	CheckOutTime string `json:"checkOutTime"` // "17:40" или "17:40:15"
}

// CheckOutResponse HTTP response model
type CheckOutResponse struct {
	Success       bool             `json:"success"`
	BookingID     int64            `json:"bookingId"`
	ScheduleID    int64            `json:"scheduleId"`
	CheckOutTime  types.TimeString `json:"checkOutTime"`
	Status        string           `json:"status"`
	PenaltyIssued bool             `json:"penaltyIssued"`
	Message       string           `json:"message"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CheckOutRequest) ToUseCaseRequest(bookingID int64) (*checkOut.Request, error) {
	checkOutTime, err := types.NewTimeStringFromString(r.CheckOutTime)
	if err != nil {
		return nil, err
	}

	return &checkOut.Request{
		BookingID:    bookingID,
		CheckOutTime: checkOutTime,
	}, nil
}
