package check_out

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

// UseCase use case для регистрации ухода
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

// Execute сохраняет время ухода и завершает бронирование (Completed).
// Уход позже окончания последнего сегодняшнего слота плюс льготный период приводит к штрафу.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CheckOut: booking=%d, time=%s", req.BookingID, req.CheckOutTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CheckOut: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время (задает "сегодня")
	now := uc.timeProvider.Now()

	var (
		studentID     int64
		slot          *domain.Schedule
		penaltyIssued bool
	)

	// 3. Выполняем операции с БД в одной транзакции
	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// 3.1. Блокируем бронирование
		booking, err := uc.bookingRepo.GetByIDForUpdate(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				uc.logger.Warn("CheckOut: booking id=%d not found", req.BookingID)
				return ErrBookingNotFound
			}
			return fmt.Errorf("failed to get booking: %w", err)
		}

		// 3.2. Проверяем статус и приход
		if !booking.CanTransitionTo(domain.BookingCompleted) {
			uc.logger.Warn("CheckOut: booking id=%d has status %s", booking.ID, booking.Status)
			return fmt.Errorf("%w: status %s", ErrBookingNotActive, booking.Status)
		}
		if booking.IsCheckedOut() {
			return ErrAlreadyCheckedOut
		}
		if !booking.IsCheckedIn() {
			uc.logger.Warn("CheckOut: booking id=%d is not checked in", booking.ID)
			return ErrNotCheckedIn
		}
		if req.CheckOutTime.IsBefore(*booking.CheckInTime) {
			return fmt.Errorf("%w: %s < %s", ErrBeforeCheckIn, req.CheckOutTime, *booking.CheckInTime)
		}
		studentID = booking.StudentID

		// 3.3. Ищем последний сегодняшний слот
		schedules, err := uc.bookingRepo.GetSchedulesByBooking(txCtx, booking.ID)
		if err != nil {
			return fmt.Errorf("failed to get schedules: %w", err)
		}

		slot = findCheckOutSlot(schedules, now)
		if slot == nil {
			uc.logger.Warn("CheckOut: booking id=%d has no slot on %s", booking.ID, now.Format(domain.DateFormat))
			return ErrNoSlotToday
		}

		// 3.4. Проверяем поздний уход
		policy, err := uc.policies.GetEffective(txCtx, &slot.InstrumentTypeID)
		if err != nil {
			return fmt.Errorf("failed to get penalty policy: %w", err)
		}

		if policy.IsLateCheckOut(slot.EndTime, req.CheckOutTime) {
			uc.logger.Info("CheckOut: booking id=%d late, slot ends %s, grace %d min",
				booking.ID, slot.EndTime, policy.CheckOutGraceMinutes)

			err := uc.penalties.Issue(txCtx, penalty.Request{
				StudentID: booking.StudentID,
				BookingID: booking.ID,
				Reason:    domain.PenaltyLateCheckOut,
				Policy:    policy,
				IssuedAt:  now,
			})
			if err != nil {
				return fmt.Errorf("failed to issue penalty: %w", err)
			}
			penaltyIssued = true
		}

		// 3.5. Сохраняем время ухода и завершаем бронирование
		if err := uc.bookingRepo.Complete(txCtx, booking.ID, req.CheckOutTime); err != nil {
			if errors.Is(err, bookingRepo.ErrInvalidStatus) {
				return ErrBookingNotActive
			}
			return fmt.Errorf("failed to complete booking: %w", err)
		}

		// 3.6. Слоты бронирования переходят в Completed
		ids := make([]int64, 0, len(schedules))
		for _, s := range schedules {
			ids = append(ids, s.ID)
		}
		if err := uc.bookingRepo.UpdateSchedulesStatus(txCtx, ids, domain.ScheduleCompleted); err != nil {
			return fmt.Errorf("failed to complete schedules: %w", err)
		}

		return nil
	})

	if err != nil {
		return nil, uc.translateError(err)
	}

	uc.logger.Info("CheckOut: booking id=%d completed at %s, penalty=%t", req.BookingID, req.CheckOutTime, penaltyIssued)
	uc.metrics.CheckedOut(penaltyIssued)
	if penaltyIssued {
		uc.metrics.PenaltyIssued(string(domain.PenaltyLateCheckOut))
	}

	if err := uc.publisher.Publish(ctx, events.CheckedOut{
		BookingID:     req.BookingID,
		StudentID:     studentID,
		CheckOutTime:  req.CheckOutTime.String(),
		PenaltyIssued: penaltyIssued,
		OccurredAt:    now,
	}); err != nil {
		uc.logger.Warn("CheckOut: failed to publish event for booking id=%d: %v", req.BookingID, err)
	}

	return &Response{
		BookingID:     req.BookingID,
		ScheduleID:    slot.ID,
		CheckOutTime:  req.CheckOutTime,
		Status:        string(domain.BookingCompleted),
		PenaltyIssued: penaltyIssued,
	}, nil
}

// translateError переводит ошибку транзакции в ошибку use case
func (uc *UseCase) translateError(err error) error {
	switch {
	case domain.IsBusinessError(err):
		return err
	case pgerrors.IsUnavailable(err), pgerrors.IsSerializationFailure(err):
		uc.logger.Error("CheckOut: storage unavailable: %v", err)
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	default:
		uc.logger.Error("CheckOut: %v", err)
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
}
