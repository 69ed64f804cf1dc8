package check_in

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

// UseCase use case для регистрации прихода
type UseCase struct {
	bookingRepo  BookingRepository
	policies     PolicyProvider
	penalties    PenaltyIssuer
	txManager    TransactionManager
	publisher    EventPublisher
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger

	earlyCheckInMinutes int
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

// WithEarlyCheckInLimit ограничивает ранний приход: не раньше чем за minutes минут
// до начала слота. 0 снимает ограничение
func (uc *UseCase) WithEarlyCheckInLimit(minutes int) *UseCase {
	uc.earlyCheckInMinutes = minutes
	return uc
}

// Execute сохраняет время прихода по Active бронированию.
// Приход позже начала слота плюс льготный период приводит к штрафу.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CheckIn: booking=%d, time=%s", req.BookingID, req.CheckInTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CheckIn: validation failed: %v", err)
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
				uc.logger.Warn("CheckIn: booking id=%d not found", req.BookingID)
				return ErrBookingNotFound
			}
			return fmt.Errorf("failed to get booking: %w", err)
		}

		// 3.2. Проверяем статус
		if !booking.IsActive() {
			uc.logger.Warn("CheckIn: booking id=%d has status %s", booking.ID, booking.Status)
			return fmt.Errorf("%w: status %s", ErrBookingNotActive, booking.Status)
		}
		if booking.IsCheckedIn() {
			uc.logger.Warn("CheckIn: booking id=%d already checked in at %s", booking.ID, *booking.CheckInTime)
			return ErrAlreadyCheckedIn
		}
		studentID = booking.StudentID

		// 3.3. Ищем сегодняшний слот
		schedules, err := uc.bookingRepo.GetSchedulesByBooking(txCtx, booking.ID)
		if err != nil {
			return fmt.Errorf("failed to get schedules: %w", err)
		}

		slot, err = findCheckInSlot(schedules, now, req.CheckInTime, uc.earlyCheckInMinutes)
		if err != nil {
			uc.logger.Warn("CheckIn: booking id=%d on %s at %s: %v",
				booking.ID, now.Format(domain.DateFormat), req.CheckInTime, err)
			return err
		}

		// 3.4. Проверяем опоздание
		policy, err := uc.policies.GetEffective(txCtx, &slot.InstrumentTypeID)
		if err != nil {
			return fmt.Errorf("failed to get penalty policy: %w", err)
		}

		if policy.IsLateCheckIn(slot.StartTime, req.CheckInTime) {
			uc.logger.Info("CheckIn: booking id=%d late, slot starts %s, grace %d min",
				booking.ID, slot.StartTime, policy.CheckInGraceMinutes)

			err := uc.penalties.Issue(txCtx, penalty.Request{
				StudentID: booking.StudentID,
				BookingID: booking.ID,
				Reason:    domain.PenaltyLateCheckIn,
				Policy:    policy,
				IssuedAt:  now,
			})
			if err != nil {
				return fmt.Errorf("failed to issue penalty: %w", err)
			}
			penaltyIssued = true
		}

		// 3.5. Сохраняем время прихода
		if err := uc.bookingRepo.SetCheckIn(txCtx, booking.ID, req.CheckInTime); err != nil {
			if errors.Is(err, bookingRepo.ErrInvalidStatus) {
				return ErrBookingNotActive
			}
			return fmt.Errorf("failed to save check-in: %w", err)
		}

		return nil
	})

	if err != nil {
		return nil, uc.translateError(err)
	}

	uc.logger.Info("CheckIn: booking id=%d checked in at %s, penalty=%t", req.BookingID, req.CheckInTime, penaltyIssued)
	uc.metrics.CheckedIn(penaltyIssued)
	if penaltyIssued {
		uc.metrics.PenaltyIssued(string(domain.PenaltyLateCheckIn))
	}

	if err := uc.publisher.Publish(ctx, events.CheckedIn{
		BookingID:     req.BookingID,
		StudentID:     studentID,
		CheckInTime:   req.CheckInTime.String(),
		PenaltyIssued: penaltyIssued,
		OccurredAt:    now,
	}); err != nil {
		uc.logger.Warn("CheckIn: failed to publish event for booking id=%d: %v", req.BookingID, err)
	}

	return &Response{
		BookingID:     req.BookingID,
		ScheduleID:    slot.ID,
		CheckInTime:   req.CheckInTime,
		PenaltyIssued: penaltyIssued,
	}, nil
}

// translateError переводит ошибку транзакции в ошибку use case
func (uc *UseCase) translateError(err error) error {
	switch {
	case domain.IsBusinessError(err):
		return err
	case pgerrors.IsUnavailable(err), pgerrors.IsSerializationFailure(err):
		uc.logger.Error("CheckIn: storage unavailable: %v", err)
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	default:
		uc.logger.Error("CheckIn: %v", err)
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
}
