package cancel_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-InstrumentReservation/internal/api/handlers"
	cancelBooking "github.com/m04kA/SMC-InstrumentReservation/internal/usecase/cancel_booking"
)

const (
	msgSuccess            = "Booking cancelled successfully!"
	msgSuccessWithPenalty = "Booking cancelled. A penalty was issued for late cancellation."
	msgInvalidBookingID   = "invalid booking id"
	msgInvalidRequestBody = "invalid request body"
	msgInvalidReason      = "cancellation reason must not exceed 255 characters"
	msgNotFound           = "booking not found"
	msgNotActive          = "only active bookings can be cancelled"
	msgCannotCancel       = "booking could not be cancelled"
)

type Handler struct {
	useCase CancelBookingUseCase
	logger  Logger
}

func NewHandler(useCase CancelBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/bookings/{bookingId}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := handlers.PathInt64(r, "bookingId")
	if err != nil {
		h.logger.Warn("POST /bookings/{id}/cancel - Invalid booking ID: %v", err)
		handlers.RespondFailure(w, http.StatusBadRequest, msgInvalidBookingID)
		return
	}

	// Тело необязательно: без него используется причина по умолчанию
	var req CancelBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil && !errors.Is(err, handlers.ErrEmptyBody) {
		h.logger.Warn("POST /bookings/{id}/cancel - Invalid request body: %v", err)
		handlers.RespondFailure(w, http.StatusBadRequest, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(bookingID))
	if err != nil {
		h.logger.Warn("POST /bookings/{id}/cancel - Failed to cancel booking: booking_id=%d, error=%v", bookingID, err)
		handlers.RespondMutationError(w, err, messageFor(err))
		return
	}

	message := msgSuccess
	if result.PenaltyIssued {
		message = msgSuccessWithPenalty
	}

	h.logger.Info("POST /bookings/{id}/cancel - Booking cancelled: booking_id=%d, penalty=%t",
		bookingID, result.PenaltyIssued)
	handlers.RespondJSON(w, http.StatusOK, &CancelBookingResponse{
		Success:       true,
		BookingID:     result.BookingID,
		PenaltyIssued: result.PenaltyIssued,
		Reason:        result.Reason,
		Message:       message,
	})
}

func messageFor(err error) string {
	switch {
	case errors.Is(err, cancelBooking.ErrInvalidInput):
		return msgInvalidReason
	case errors.Is(err, cancelBooking.ErrBookingNotFound):
		return msgNotFound
	case errors.Is(err, cancelBooking.ErrBookingNotActive):
		return msgNotActive
	default:
		return msgCannotCancel
	}
}
