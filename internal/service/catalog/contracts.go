package catalog

import (
	"context"

	"github.com/m04kA/SMC-InstrumentReservation/internal/domain"
)

// CatalogRepository интерфейс репозитория справочников и статистики
type CatalogRepository interface {
	GetDashboardStats(ctx context.Context) (*domain.DashboardStats, error)
	ListInstrumentTypes(ctx context.Context) ([]*domain.InstrumentType, error)
	ListAvailableSlots(ctx context.Context, filter domain.SlotsFilter) ([]*domain.AvailableSlot, error)
}

// InstrumentTypeCache кэш справочника типов приборов
// Реализация должна считать промах и ошибку хранилища одинаково (ok == false)
type InstrumentTypeCache interface {
	GetInstrumentTypes(ctx context.Context) ([]*domain.InstrumentType, bool)
	SetInstrumentTypes(ctx context.Context, types []*domain.InstrumentType)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
