package penalty

import (
	"context"
	"time"

	"github.com/m04kA/SMC-InstrumentReservation/internal/domain"
)

// StudentRepository интерфейс репозитория студентов
type StudentRepository interface {
	GetCurrentQuotaPlan(ctx context.Context, studentID int64, today time.Time) (*domain.QuotaPlan, error)
	UpdateQuotaPlanPenalty(ctx context.Context, plan *domain.QuotaPlan) error
	CreatePenalty(ctx context.Context, penalty *domain.Penalty) (*domain.Penalty, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
}
