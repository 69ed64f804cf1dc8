package bookings

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-InstrumentReservation/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при фильтре по неизвестному статусу
	ErrInvalidStatus = fmt.Errorf("invalid booking status: %w", domain.ErrValidation)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("invalid input data: %w", domain.ErrValidation)

	// ErrUnavailable возвращается, когда хранилище недоступно или истек таймаут
	ErrUnavailable = fmt.Errorf("service: storage unavailable: %w", domain.ErrServiceUnavailable)

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
