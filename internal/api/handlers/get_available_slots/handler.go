package get_available_slots

import (
	"net/http"

	"github.com/m04kA/SMC-InstrumentReservation/internal/api/handlers"
	"github.com/m04kA/SMC-InstrumentReservation/internal/service/catalog/models"
)

const (
	msgInvalidInstrumentTypeID = "invalid instrumentTypeId"
	msgInvalidFilter           = "invalid filter: instrumentTypeId must be a positive id and date must be YYYY-MM-DD"
)

type Handler struct {
	service CatalogService
	logger  Logger
}

func NewHandler(service CatalogService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/available-slots
// Query params: instrumentTypeId (optional), date (optional, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	instrumentTypeID, err := handlers.QueryInt64(r, "instrumentTypeId")
	if err != nil {
		h.logger.Warn("GET /available-slots - Invalid instrument type ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidInstrumentTypeID)
		return
	}

	req := &models.GetAvailableSlotsRequest{
		InstrumentTypeID: instrumentTypeID,
		Date:             handlers.QueryString(r, "date"),
	}

	slots, err := h.service.ListAvailableSlots(r.Context(), req)
	if err != nil {
		h.logger.Warn("GET /available-slots - Failed to list slots: %v", err)
		handlers.RespondReadError(w, err, msgInvalidFilter)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, slots)
}
