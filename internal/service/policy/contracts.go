package policy

import (
	"context"

	"github.com/m04kA/SMC-InstrumentReservation/internal/domain"
)

// PolicyRepository интерфейс репозитория политик штрафов
type PolicyRepository interface {
	GetByInstrumentType(ctx context.Context, instrumentTypeID *int64) (*domain.PenaltyPolicy, error)
	GetWithHierarchy(ctx context.Context, instrumentTypeID *int64) (*domain.PenaltyPolicy, error)
	Upsert(ctx context.Context, policy *domain.PenaltyPolicy) (*domain.PenaltyPolicy, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
