package students

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-InstrumentReservation/internal/domain"
)

var (
	// ErrUnavailable возвращается, когда хранилище недоступно или истек таймаут
	ErrUnavailable = fmt.Errorf("students: storage unavailable: %w", domain.ErrServiceUnavailable)

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("students: internal error")
)
