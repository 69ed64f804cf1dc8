package get_penalty_policy

import (
	"net/http"

	"github.com/m04kA/SMC-InstrumentReservation/internal/api/handlers"
)

const msgInvalidInstrumentTypeID = "invalid instrumentTypeId"

type Handler struct {
	service PolicyService
	logger  Logger
}

func NewHandler(service PolicyService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/penalty-policy
// Query params: instrumentTypeId (optional, без него - глобальная политика)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	instrumentTypeID, err := handlers.QueryInt64(r, "instrumentTypeId")
	if err != nil {
		h.logger.Warn("GET /penalty-policy - Invalid instrument type ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidInstrumentTypeID)
		return
	}

	policy, err := h.service.Get(r.Context(), instrumentTypeID)
	if err != nil {
		h.logger.Error("GET /penalty-policy - Failed to get policy: %v", err)
		handlers.RespondReadError(w, err, msgInvalidInstrumentTypeID)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, policy)
}
