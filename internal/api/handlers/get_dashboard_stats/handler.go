package get_dashboard_stats

import (
	"net/http"

	"github.com/m04kA/SMC-InstrumentReservation/internal/api/handlers"
)

const msgStatsFailed = "dashboard statistics could not be loaded"

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

// Handle GET /api/dashboard/stats
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.GetDashboardStats(r.Context())
	if err != nil {
		h.logger.Error("GET /dashboard/stats - Failed to get stats: %v", err)
		handlers.RespondReadError(w, err, msgStatsFailed)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, stats)
}
