package cancel_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-InstrumentReservation/internal/domain"
	"github.com/m04kA/SMC-InstrumentReservation/internal/infra/events"
	bookingRepo "github.com/m04kA/SMC-InstrumentReservation/internal/infra/storage/booking"
	"github.com/m04kA/SMC-InstrumentReservation/internal/usecase/penalty"
	"github.com/m04kA/SMC-InstrumentReservation/pkg/pgerrors"
)

// UseCase use case для отмены бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	policies     PolicyProvider
	penalties    PenaltyIssuer
	txManager    TransactionManager
	publisher    EventPublisher
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	policies PolicyProvider,
	penalties PenaltyIssuer,
	txManager TransactionManager,
	publisher EventPublisher,
	metrics Metrics,
	timeProvider TimeProvider,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		policies:     policies,
		penalties:    penalties,
		txManager:    txManager,
		publisher:    publisher,
		metrics:      metrics,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// Execute отменяет Active бронирование и освобождает его слоты.
// Если отмена попадает в окно поздней отмены перед началом самого раннего слота
// (или слот уже начался), начисляется штраф.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CancelBooking: booking=%d", req.BookingID)

	// 1. Валидация входных данных
	reason, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("CancelBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	var (
		studentID     int64
		penaltyIssued bool
	)

	// 3. Выполняем операции с БД в одной транзакции
	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// 3.1. Блокируем бронирование
		booking, err := uc.bookingRepo.GetByIDForUpdate(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				uc.logger.Warn("CancelBooking: booking id=%d not found", req.BookingID)
				return ErrBookingNotFound
			}
			return fmt.Errorf("failed to get booking: %w", err)
		}

		// 3.2. Отменить можно только Active бронирование
		if !booking.CanTransitionTo(domain.BookingCanceled) {
			uc.logger.Warn("CancelBooking: booking id=%d has status %s", booking.ID, booking.Status)
			return fmt.Errorf("%w: status %s", ErrBookingNotActive, booking.Status)
		}
		studentID = booking.StudentID

		// 3.3. Получаем слоты бронирования (по возрастанию начала)
		schedules, err := uc.bookingRepo.GetSchedulesByBooking(txCtx, booking.ID)
		if err != nil {
			return fmt.Errorf("failed to get schedules: %w", err)
		}

		// 3.4. Проверяем окно поздней отмены относительно самого раннего слота
		if len(schedules) > 0 {
			earliest := schedules[0]

			policy, err := uc.policies.GetEffective(txCtx, &earliest.InstrumentTypeID)
			if err != nil {
				return fmt.Errorf("failed to get penalty policy: %w", err)
			}

			if policy.IsLateCancellation(now, earliest.StartsAt(now.Location())) {
				uc.logger.Info("CancelBooking: booking id=%d cancelled within %d minutes of slot id=%d start",
					booking.ID, policy.LateCancelWindowMinutes, earliest.ID)

				err := uc.penalties.Issue(txCtx, penalty.Request{
					StudentID: booking.StudentID,
					BookingID: booking.ID,
					Reason:    domain.PenaltyLateCancellation,
					Policy:    policy,
					IssuedAt:  now,
				})
				if err != nil {
					return fmt.Errorf("failed to issue penalty: %w", err)
				}
				penaltyIssued = true
			}
		}

		// 3.5. Отменяем бронирование
		if err := uc.bookingRepo.Cancel(txCtx, booking.ID, reason, now); err != nil {
			if errors.Is(err, bookingRepo.ErrInvalidStatus) {
				return ErrBookingNotActive
			}
			return fmt.Errorf("failed to cancel booking: %w", err)
		}

		// 3.6. Освобождаем слоты
		ids := make([]int64, 0, len(schedules))
		for _, s := range schedules {
			ids = append(ids, s.ID)
		}
		if err := uc.bookingRepo.UpdateSchedulesStatus(txCtx, ids, domain.ScheduleAvailable); err != nil {
			return fmt.Errorf("failed to release schedules: %w", err)
		}

		return nil
	})

	if err != nil {
		return nil, uc.translateError(err)
	}

	uc.logger.Info("CancelBooking: booking id=%d cancelled, penalty=%t", req.BookingID, penaltyIssued)
	uc.metrics.BookingCanceled(penaltyIssued)
	if penaltyIssued {
		uc.metrics.PenaltyIssued(string(domain.PenaltyLateCancellation))
	}

	if err := uc.publisher.Publish(ctx, events.BookingCanceled{
		BookingID:     req.BookingID,
		StudentID:     studentID,
		Reason:        reason,
		PenaltyIssued: penaltyIssued,
		OccurredAt:    now,
	}); err != nil {
		uc.logger.Warn("CancelBooking: failed to publish event for booking id=%d: %v", req.BookingID, err)
	}

	return &Response{
		BookingID:     req.BookingID,
		Reason:        reason,
		PenaltyIssued: penaltyIssued,
	}, nil
}

// translateError переводит ошибку транзакции в ошибку use case
func (uc *UseCase) translateError(err error) error {
	switch {
	case domain.IsBusinessError(err):
		return err
	case pgerrors.IsUnavailable(err), pgerrors.IsSerializationFailure(err):
		uc.logger.Error("CancelBooking: storage unavailable: %v", err)
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	default:
		uc.logger.Error("CancelBooking: %v", err)
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
}
