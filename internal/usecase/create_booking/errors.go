package create_booking

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-InstrumentReservation/internal/domain"
)

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("create_booking: invalid input data: %w", domain.ErrValidation)

	// ErrNoQuotaPlan возвращается, когда у студента нет действующего плана квоты
	ErrNoQuotaPlan = fmt.Errorf("create_booking: student has no active quota plan: %w", domain.ErrQuota)

	// ErrStudentPenalized возвращается, когда план квоты студента в статусе Penalized
	ErrStudentPenalized = fmt.Errorf("create_booking: student is penalized: %w", domain.ErrQuota)

	// ErrInsufficientAccessLevel возвращается, когда уровень доступа студента ниже требуемого прибором
	ErrInsufficientAccessLevel = fmt.Errorf("create_booking: insufficient access level: %w", domain.ErrValidation)

	// ErrSlotNotFound возвращается, когда слот не найден
	ErrSlotNotFound = fmt.Errorf("create_booking: slot not found: %w", domain.ErrSlotUnavailable)

	// ErrSlotNotAvailable возвращается, когда слот уже занят (в том числе параллельным запросом)
	ErrSlotNotAvailable = fmt.Errorf("create_booking: slot is not available: %w", domain.ErrSlotUnavailable)

	// ErrSlotInPast возвращается, когда слот уже закончился
	ErrSlotInPast = fmt.Errorf("create_booking: slot has already ended: %w", domain.ErrValidation)

	// ErrUnavailable возвращается, когда хранилище недоступно или истек таймаут
	ErrUnavailable = fmt.Errorf("create_booking: storage unavailable: %w", domain.ErrServiceUnavailable)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
