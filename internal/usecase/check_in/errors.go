package check_in

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-InstrumentReservation/internal/domain"
)

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("check_in: invalid input data: %w", domain.ErrValidation)

	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = fmt.Errorf("check_in: booking not found: %w", domain.ErrNotFound)

	// ErrBookingNotActive возвращается, когда бронирование не в статусе Active
	ErrBookingNotActive = fmt.Errorf("check_in: booking is not active: %w", domain.ErrInvalidState)

	// ErrAlreadyCheckedIn возвращается при повторной регистрации прихода
	ErrAlreadyCheckedIn = fmt.Errorf("check_in: already checked in: %w", domain.ErrInvalidState)

	// ErrNoActiveSlot возвращается, когда у бронирования нет слота сегодня, который еще не закончился
	ErrNoActiveSlot = fmt.Errorf("check_in: no active slot for check-in: %w", domain.ErrInvalidState)

	// ErrCheckInTooEarly возвращается, когда до начала слота больше допустимого окна раннего прихода
	ErrCheckInTooEarly = fmt.Errorf("check_in: too early for check-in: %w", domain.ErrInvalidState)

	// ErrUnavailable возвращается, когда хранилище недоступно или истек таймаут
	ErrUnavailable = fmt.Errorf("check_in: storage unavailable: %w", domain.ErrServiceUnavailable)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("check_in: internal error")
)
