package check_out

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-InstrumentReservation/internal/api/handlers"
	checkOut "github.com/m04kA/SMC-InstrumentReservation/internal/usecase/check_out"
)

const (
	msgSuccess            = "Checked out successfully!"
	msgSuccessWithPenalty = "Checked out. A late penalty was issued."
	msgInvalidBookingID   = "invalid booking id"
	msgInvalidRequestBody = "invalid request body"
	msgInvalidTime        = "invalid checkOutTime, expected HH:MM or HH:MM:SS"
	msgNotFound           = "booking not found"
	msgNotActive          = "only active bookings can be checked out"
	msgNotCheckedIn       = "booking has not been checked in yet"
	msgAlreadyCheckedOut  = "booking is already checked out"
	msgNoSlotToday        = "booking has no slot today"
	msgBeforeCheckIn      = "check-out time cannot be earlier than check-in time"
	msgCheckOutFailed     = "check-out could not be recorded"
)

type Handler struct {
	useCase CheckOutUseCase
	logger  Logger
}

func NewHandler(useCase CheckOutUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/bookings/{bookingId}/checkout
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := handlers.PathInt64(r, "bookingId")
	if err != nil {
		h.logger.Warn("POST /bookings/{id}/checkout - Invalid booking ID: %v", err)
		handlers.RespondFailure(w, http.StatusBadRequest, msgInvalidBookingID)
		return
	}

	var req CheckOutRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/{id}/checkout - Invalid request body: %v", err)
		handlers.RespondFailure(w, http.StatusBadRequest, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(bookingID)
	if err != nil {
		h.logger.Warn("POST /bookings/{id}/checkout - Invalid check-out time %q: %v", req.CheckOutTime, err)
		handlers.RespondFailure(w, http.StatusBadRequest, msgInvalidTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		h.logger.Warn("POST /bookings/{id}/checkout - Failed to check out: booking_id=%d, error=%v", bookingID, err)
		handlers.RespondMutationError(w, err, messageFor(err))
		return
	}

	message := msgSuccess
	if result.PenaltyIssued {
		message = msgSuccessWithPenalty
	}

	h.logger.Info("POST /bookings/{id}/checkout - Checked out: booking_id=%d, schedule_id=%d, penalty=%t",
		bookingID, result.ScheduleID, result.PenaltyIssued)
	handlers.RespondJSON(w, http.StatusOK, &CheckOutResponse{
		Success:       true,
		BookingID:     result.BookingID,
		ScheduleID:    result.ScheduleID,
		CheckOutTime:  result.CheckOutTime,
		Status:        result.Status,
		PenaltyIssued: result.PenaltyIssued,
		Message:       message,
	})
}

func messageFor(err error) string {
	switch {
	case errors.Is(err, checkOut.ErrInvalidInput):
		return msgInvalidTime
	case errors.Is(err, checkOut.ErrBookingNotFound):
		return msgNotFound
	case errors.Is(err, checkOut.ErrBookingNotActive):
		return msgNotActive
	case errors.Is(err, checkOut.ErrNotCheckedIn):
		return msgNotCheckedIn
	case errors.Is(err, checkOut.ErrAlreadyCheckedOut):
		return msgAlreadyCheckedOut
	case errors.Is(err, checkOut.ErrNoSlotToday):
		return msgNoSlotToday
	case errors.Is(err, checkOut.ErrBeforeCheckIn):
		return msgBeforeCheckIn
	default:
		return msgCheckOutFailed
	}
}
