package cancel_booking

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-InstrumentReservation/internal/domain"
)

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("cancel_booking: invalid input data: %w", domain.ErrValidation)

	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = fmt.Errorf("cancel_booking: booking not found: %w", domain.ErrNotFound)

	// ErrBookingNotActive возвращается, когда бронирование уже не в статусе Active
	ErrBookingNotActive = fmt.Errorf("cancel_booking: booking is not active: %w", domain.ErrInvalidState)

	// ErrUnavailable возвращается, когда хранилище недоступно или истек таймаут
	ErrUnavailable = fmt.Errorf("cancel_booking: storage unavailable: %w", domain.ErrServiceUnavailable)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("cancel_booking: internal error")
)
