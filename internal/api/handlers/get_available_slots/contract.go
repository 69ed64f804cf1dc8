package get_available_slots

import (
	"context"

	"github.com/m04kA/SMC-InstrumentReservation/internal/service/catalog/models"
)

type CatalogService interface {
	ListAvailableSlots(ctx context.Context, req *models.GetAvailableSlotsRequest) ([]models.AvailableSlotResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
