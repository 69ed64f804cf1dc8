package get_instrument_types

import (
	"context"

	"github.com/m04kA/SMC-InstrumentReservation/internal/service/catalog/models"
)

type CatalogService interface {
	ListInstrumentTypes(ctx context.Context) ([]models.InstrumentTypeResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}
