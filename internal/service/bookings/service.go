package bookings

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-InstrumentReservation/internal/service/bookings/models"
	"github.com/m04kA/SMC-InstrumentReservation/pkg/pgerrors"
)

// Service сервис для чтения бронирований
type Service struct {
	bookingRepo BookingRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(bookingRepo BookingRepository, logger Logger) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		logger:      logger,
	}
}

// List получает бронирования, по одной строке на каждый забронированный слот
// Опционально фильтрует по студенту и статусу; сортировка по времени бронирования, новые первыми
func (s *Service) List(ctx context.Context, req *models.GetBookingsRequest) ([]models.BookingLineResponse, error) {
	if req == nil {
		req = &models.GetBookingsRequest{}
	}

	// Логируем запрос с деталями фильтрации
	logMsg := "List: fetching bookings"
	if req.StudentID != nil {
		logMsg += fmt.Sprintf(", student=%d", *req.StudentID)
	}
	if req.Status != nil {
		logMsg += fmt.Sprintf(", status=%s", *req.Status)
	}
	s.logger.Info(logMsg)

	if req.StudentID != nil && *req.StudentID <= 0 {
		s.logger.Warn("List: invalid student id=%d", *req.StudentID)
		return nil, fmt.Errorf("%w: studentId must be positive", ErrInvalidInput)
	}

	filter, ok := req.ToDomainFilter()
	if !ok {
		s.logger.Warn("List: invalid status=%s", *req.Status)
		return nil, ErrInvalidStatus
	}

	list, err := s.bookingRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		if pgerrors.IsUnavailable(err) {
			return nil, fmt.Errorf("%w: List: %v", ErrUnavailable, err)
		}
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d booking lines", len(list))
	return models.FromDomainBookingList(list), nil
}
