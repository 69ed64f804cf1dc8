package cancel_booking

import (
	cancelBooking "github.com/m04kA/SMC-InstrumentReservation/internal/usecase/cancel_booking"
)

// CancelBookingRequest HTTP request model; тело запроса необязательно
type CancelBookingRequest struct {
	Reason *string `json:"reason,omitempty"`
}

// CancelBookingResponse HTTP response model
type CancelBookingResponse struct {
	Success       bool   `json:"success"`
	BookingID     int64  `json:"bookingId"`
	PenaltyIssued bool   `json:"penaltyIssued"`
	Reason        string `json:"reason"`
	Message       string `json:"message"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CancelBookingRequest) ToUseCaseRequest(bookingID int64) *cancelBooking.Request {
	return &cancelBooking.Request{
		BookingID: bookingID,
		Reason:    r.Reason,
	}
}
