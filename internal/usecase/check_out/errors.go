package check_out

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-InstrumentReservation/internal/domain"
)

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("check_out: invalid input data: %w", domain.ErrValidation)

	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = fmt.Errorf("check_out: booking not found: %w", domain.ErrNotFound)

	// ErrBookingNotActive возвращается, когда бронирование не в статусе Active
	ErrBookingNotActive = fmt.Errorf("check_out: booking is not active: %w", domain.ErrInvalidState)

	// ErrNotCheckedIn возвращается, когда приход еще не зарегистрирован
	ErrNotCheckedIn = fmt.Errorf("check_out: booking is not checked in: %w", domain.ErrInvalidState)

	// ErrAlreadyCheckedOut возвращается при повторной регистрации ухода
	ErrAlreadyCheckedOut = fmt.Errorf("check_out: already checked out: %w", domain.ErrInvalidState)

	// ErrNoSlotToday возвращается, когда у бронирования нет слота на сегодня
	ErrNoSlotToday = fmt.Errorf("check_out: no slot for today: %w", domain.ErrInvalidState)

	// ErrBeforeCheckIn возвращается, когда время ухода раньше времени прихода
	ErrBeforeCheckIn = fmt.Errorf("check_out: check-out time is before check-in time: %w", domain.ErrValidation)

	// ErrUnavailable возвращается, когда хранилище недоступно или истек таймаут
	ErrUnavailable = fmt.Errorf("check_out: storage unavailable: %w", domain.ErrServiceUnavailable)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("check_out: internal error")
)
