package get_students

import (
	"context"

	"github.com/m04kA/SMC-InstrumentReservation/internal/service/students/models"
)

type StudentService interface {
	List(ctx context.Context) ([]models.StudentResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}
