package get_students

import (
	"net/http"

	"github.com/m04kA/SMC-InstrumentReservation/internal/api/handlers"
)

const msgStudentsFailed = "students could not be loaded"

type Handler struct {
	service StudentService
	logger  Logger
}

func NewHandler(service StudentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/students
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	students, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("GET /students - Failed to list students: %v", err)
		handlers.RespondReadError(w, err, msgStudentsFailed)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, students)
}
