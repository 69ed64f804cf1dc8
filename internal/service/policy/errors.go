package policy

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-InstrumentReservation/internal/domain"
)

var (
	// ErrInvalidInput возвращается при некорректных значениях политики
	ErrInvalidInput = fmt.Errorf("policy: invalid input data: %w", domain.ErrValidation)

	// ErrInstrumentTypeNotFound возвращается, когда тип прибора не существует
	ErrInstrumentTypeNotFound = fmt.Errorf("policy: instrument type not found: %w", domain.ErrValidation)

	// ErrUnavailable возвращается, когда хранилище недоступно или истек таймаут
	ErrUnavailable = fmt.Errorf("policy: storage unavailable: %w", domain.ErrServiceUnavailable)

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("policy: internal error")
)
