package students

import (
	"context"
	"time"

	"github.com/m04kA/SMC-InstrumentReservation/internal/domain"
)

// StudentRepository интерфейс репозитория студентов
type StudentRepository interface {
	ListStudents(ctx context.Context, today time.Time) ([]*domain.StudentSummary, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}
