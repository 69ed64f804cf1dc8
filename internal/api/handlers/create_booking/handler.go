package create_booking

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/SMC-InstrumentReservation/internal/api/handlers"
	createBooking "github.com/m04kA/SMC-InstrumentReservation/internal/usecase/create_booking"
)

const (
	msgSuccess                 = "Booking created successfully!"
	msgInvalidRequestBody      = "invalid request body"
	msgInvalidInput            = "studentId and scheduleIds are required; scheduleIds must be unique positive ids"
	msgNoQuotaPlan             = "student has no active quota plan"
	msgStudentPenalized        = "student is penalized and cannot book instruments"
	msgInsufficientAccessLevel = "student access level is too low for this instrument"
	msgSlotNotFound            = "schedule slot not found"
	msgSlotNotAvailable        = "schedule slot is not available"
	msgSlotInPast              = "schedule slot has already ended"
	msgBookingFailed           = "booking could not be created"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondFailure(w, http.StatusBadRequest, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest())
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to create booking: student_id=%d, schedule_ids=%v, error=%v",
			req.StudentID, []int64(req.ScheduleIDs), err)
		handlers.RespondMutationError(w, err, messageFor(err))
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, student_id=%d, slots=%d",
		result.BookingID, result.StudentID, len(result.ScheduleIDs))
	handlers.RespondJSON(w, http.StatusOK, &CreateBookingResponse{
		Success:     true,
		BookingID:   result.BookingID,
		StudentID:   result.StudentID,
		Status:      result.Status,
		ScheduleIDs: result.ScheduleIDs,
		BookedAt:    result.BookedAt.Format(time.RFC3339),
		Message:     msgSuccess,
	})
}

func messageFor(err error) string {
	switch {
	case errors.Is(err, createBooking.ErrInvalidInput):
		return msgInvalidInput
	case errors.Is(err, createBooking.ErrNoQuotaPlan):
		return msgNoQuotaPlan
	case errors.Is(err, createBooking.ErrStudentPenalized):
		return msgStudentPenalized
	case errors.Is(err, createBooking.ErrInsufficientAccessLevel):
		return msgInsufficientAccessLevel
	case errors.Is(err, createBooking.ErrSlotNotFound):
		return msgSlotNotFound
	case errors.Is(err, createBooking.ErrSlotNotAvailable):
		return msgSlotNotAvailable
	case errors.Is(err, createBooking.ErrSlotInPast):
		return msgSlotInPast
	default:
		return msgBookingFailed
	}
}
