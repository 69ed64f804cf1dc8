package get_bookings

import (
	"net/http"

	"github.com/m04kA/SMC-InstrumentReservation/internal/api/handlers"
	"github.com/m04kA/SMC-InstrumentReservation/internal/service/bookings/models"
)

const (
	msgInvalidStudentID = "invalid studentId"
	msgInvalidFilter    = "invalid filter: status must be one of Active, Completed, Canceled, Unfulfilled"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/bookings
// Query params: studentId (optional), status (optional)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	studentID, err := handlers.QueryInt64(r, "studentId")
	if err != nil {
		h.logger.Warn("GET /bookings - Invalid student ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStudentID)
		return
	}

	req := &models.GetBookingsRequest{
		StudentID: studentID,
		Status:    handlers.QueryString(r, "status"),
	}

	bookings, err := h.service.List(r.Context(), req)
	if err != nil {
		h.logger.Warn("GET /bookings - Failed to list bookings: %v", err)
		handlers.RespondReadError(w, err, msgInvalidFilter)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, bookings)
}
