package get_instrument_types

import (
	"net/http"

	"github.com/m04kA/SMC-InstrumentReservation/internal/api/handlers"
)

const msgTypesFailed = "instrument types could not be loaded"

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

// Handle GET /api/instrument-types
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	types, err := h.service.ListInstrumentTypes(r.Context())
	if err != nil {
		h.logger.Error("GET /instrument-types - Failed to list instrument types: %v", err)
		handlers.RespondReadError(w, err, msgTypesFailed)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, types)
}
