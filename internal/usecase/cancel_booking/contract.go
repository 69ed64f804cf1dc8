package cancel_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-InstrumentReservation/internal/domain"
	"github.com/m04kA/SMC-InstrumentReservation/internal/infra/events"
	"github.com/m04kA/SMC-InstrumentReservation/internal/usecase/penalty"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByIDForUpdate(ctx context.Context, id int64) (*domain.Booking, error)
	GetSchedulesByBooking(ctx context.Context, bookingID int64) ([]*domain.Schedule, error)
	Cancel(ctx context.Context, id int64, reason string, canceledAt time.Time) error
	UpdateSchedulesStatus(ctx context.Context, ids []int64, status domain.ScheduleStatus) error
}

// PolicyProvider возвращает действующую политику штрафов для типа прибора
type PolicyProvider interface {
	GetEffective(ctx context.Context, instrumentTypeID *int64) (*domain.PenaltyPolicy, error)
}

// PenaltyIssuer начисляет штраф
type PenaltyIssuer interface {
	Issue(ctx context.Context, req penalty.Request) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// EventPublisher интерфейс публикации доменных событий
type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

// Metrics бизнес-метрики
type Metrics interface {
	BookingCanceled(penaltyIssued bool)
	PenaltyIssued(reason string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
