package cancel_booking

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/m04kA/SMC-InstrumentReservation/internal/domain"
)

// validateRequest валидирует входные данные и возвращает причину отмены
func validateRequest(req *Request) (string, error) {
	if req.BookingID <= 0 {
		return "", fmt.Errorf("%w: bookingId must be positive", ErrInvalidInput)
	}

	if req.Reason == nil || strings.TrimSpace(*req.Reason) == "" {
		return domain.DefaultCancellationReason, nil
	}

	reason := strings.TrimSpace(*req.Reason)
	if utf8.RuneCountInString(reason) > domain.MaxCancellationReasonLength {
		return "", fmt.Errorf("%w: reason is longer than %d characters", ErrInvalidInput, domain.MaxCancellationReasonLength)
	}

	return reason, nil
}
