package check_in

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-InstrumentReservation/internal/api/handlers"
	checkIn "github.com/m04kA/SMC-InstrumentReservation/internal/usecase/check_in"
)

const (
	msgSuccess            = "Checked in successfully!"
	msgSuccessWithPenalty = "Checked in. A late penalty was issued."
	msgInvalidBookingID   = "invalid booking id"
	msgInvalidRequestBody = "invalid request body"
	msgInvalidTime        = "invalid checkInTime, expected HH:MM or HH:MM:SS"
	msgNotFound           = "booking not found"
	msgNotActive          = "only active bookings can be checked in"
	msgAlreadyCheckedIn   = "booking is already checked in"
	msgNoActiveSlot       = "booking has no slot today that is still open for check-in"
	msgTooEarly           = "check-in is not open yet for this slot"
	msgCheckInFailed      = "check-in could not be recorded"
)

type Handler struct {
	useCase CheckInUseCase
	logger  Logger
}

func NewHandler(useCase CheckInUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/bookings/{bookingId}/checkin
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := handlers.PathInt64(r, "bookingId")
	if err != nil {
		h.logger.Warn("POST /bookings/{id}/checkin - Invalid booking ID: %v", err)
		handlers.RespondFailure(w, http.StatusBadRequest, msgInvalidBookingID)
		return
	}

	var req CheckInRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/{id}/checkin - Invalid request body: %v", err)
		handlers.RespondFailure(w, http.StatusBadRequest, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(bookingID)
	if err != nil {
		h.logger.Warn("POST /bookings/{id}/checkin - Invalid check-in time %q: %v", req.CheckInTime, err)
		handlers.RespondFailure(w, http.StatusBadRequest, msgInvalidTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		h.logger.Warn("POST /bookings/{id}/checkin - Failed to check in: booking_id=%d, error=%v", bookingID, err)
		handlers.RespondMutationError(w, err, messageFor(err))
		return
	}

	message := msgSuccess
	if result.PenaltyIssued {
		message = msgSuccessWithPenalty
	}

	h.logger.Info("POST /bookings/{id}/checkin - Checked in: booking_id=%d, schedule_id=%d, penalty=%t",
		bookingID, result.ScheduleID, result.PenaltyIssued)
	handlers.RespondJSON(w, http.StatusOK, &CheckInResponse{
		Success:       true,
		BookingID:     result.BookingID,
		ScheduleID:    result.ScheduleID,
		CheckInTime:   result.CheckInTime,
		PenaltyIssued: result.PenaltyIssued,
		Message:       message,
	})
}

func messageFor(err error) string {
	switch {
	case errors.Is(err, checkIn.ErrInvalidInput):
		return msgInvalidTime
	case errors.Is(err, checkIn.ErrBookingNotFound):
		return msgNotFound
	case errors.Is(err, checkIn.ErrBookingNotActive):
		return msgNotActive
	case errors.Is(err, checkIn.ErrAlreadyCheckedIn):
		return msgAlreadyCheckedIn
	case errors.Is(err, checkIn.ErrNoActiveSlot):
		return msgNoActiveSlot
	case errors.Is(err, checkIn.ErrCheckInTooEarly):
		return msgTooEarly
	default:
		return msgCheckInFailed
	}
}
