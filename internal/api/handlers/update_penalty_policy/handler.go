package update_penalty_policy

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-InstrumentReservation/internal/api/handlers"
	"github.com/m04kA/SMC-InstrumentReservation/internal/service/policy"
)

const (
	msgSuccess                = "Penalty policy saved successfully!"
	msgInvalidRequestBody     = "invalid request body"
	msgInvalidData            = "invalid policy: windows and points must not be negative, penalizedThreshold must be at least 1"
	msgInstrumentTypeNotFound = "instrument type not found"
	msgUpdateFailed           = "penalty policy could not be saved"
)

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

// Handle PUT /api/penalty-policy
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req UpdatePenaltyPolicyRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /penalty-policy - Invalid request body: %v", err)
		handlers.RespondFailure(w, http.StatusBadRequest, msgInvalidRequestBody)
		return
	}

	// Действующая политика того же уровня служит основой для частичного обновления
	current, err := h.service.Get(r.Context(), req.InstrumentTypeID)
	if err != nil {
		h.logger.Warn("PUT /penalty-policy - Failed to get current policy: %v", err)
		handlers.RespondMutationError(w, err, messageFor(err))
		return
	}

	result, err := h.service.Update(r.Context(), req.ToServiceRequest(current))
	if err != nil {
		h.logger.Warn("PUT /penalty-policy - Failed to update policy: %v", err)
		handlers.RespondMutationError(w, err, messageFor(err))
		return
	}

	h.logger.Info("PUT /penalty-policy - Policy saved: policy_id=%d, source=%s", result.ID, result.Source)
	handlers.RespondJSON(w, http.StatusOK, &UpdatePenaltyPolicyResponse{
		Success: true,
		Policy:  result,
		Message: msgSuccess,
	})
}

func messageFor(err error) string {
	switch {
	case errors.Is(err, policy.ErrInstrumentTypeNotFound):
		return msgInstrumentTypeNotFound
	case errors.Is(err, policy.ErrInvalidInput):
		return msgInvalidData
	default:
		return msgUpdateFailed
	}
}
