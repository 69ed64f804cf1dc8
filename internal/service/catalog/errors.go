package catalog

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-InstrumentReservation/internal/domain"
)

var (
	// ErrInvalidInput возвращается при некорректных параметрах фильтра
	ErrInvalidInput = fmt.Errorf("catalog: invalid input data: %w", domain.ErrValidation)

	// ErrUnavailable возвращается, когда хранилище недоступно или истек таймаут
	ErrUnavailable = fmt.Errorf("catalog: storage unavailable: %w", domain.ErrServiceUnavailable)

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("catalog: internal error")
)
