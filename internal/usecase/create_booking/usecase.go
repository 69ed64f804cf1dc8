package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-InstrumentReservation/internal/domain"
	"github.com/m04kA/SMC-InstrumentReservation/internal/infra/events"
	studentRepo "github.com/m04kA/SMC-InstrumentReservation/internal/infra/storage/student"
	"github.com/m04kA/SMC-InstrumentReservation/pkg/pgerrors"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	studentRepo  StudentRepository
	txManager    TransactionManager
	publisher    EventPublisher
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	studentRepo StudentRepository,
	txManager TransactionManager,
	publisher EventPublisher,
	metrics Metrics,
	timeProvider TimeProvider,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		studentRepo:  studentRepo,
		txManager:    txManager,
		publisher:    publisher,
		metrics:      metrics,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования.
// Все слоты бронируются атомарно: при любой ошибке ни один слот не меняет статус.
// Строки слотов блокируются (FOR UPDATE), а перевод в Booked выполняется условным UPDATE,
// поэтому из двух параллельных запросов на один слот успешен ровно один.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: student=%d, schedules=%v", req.StudentID, req.ScheduleIDs)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	var result *domain.Booking

	// 3. Выполняем операции с БД в одной транзакции
	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// 3.1. Получаем действующий план квоты студента
		plan, err := uc.studentRepo.GetCurrentQuotaPlan(txCtx, req.StudentID, now)
		if err != nil {
			if errors.Is(err, studentRepo.ErrQuotaPlanNotFound) {
				uc.logger.Warn("CreateBooking: student id=%d has no active quota plan", req.StudentID)
				return ErrNoQuotaPlan
			}
			return fmt.Errorf("failed to get quota plan: %w", err)
		}

		// 3.2. Оштрафованный студент не может бронировать
		if plan.IsPenalized() {
			uc.logger.Warn("CreateBooking: student id=%d is penalized (points=%d)", req.StudentID, plan.PenaltyPoints)
			return ErrStudentPenalized
		}

		// 3.3. Блокируем слоты
		schedules, err := uc.bookingRepo.LockSchedules(txCtx, req.ScheduleIDs)
		if err != nil {
			return fmt.Errorf("failed to lock schedules: %w", err)
		}

		// 3.4. Проверяем каждый слот
		if err := validateSchedules(req.ScheduleIDs, schedules, plan.AccessLevel, now); err != nil {
			uc.logger.Warn("CreateBooking: student id=%d: %v", req.StudentID, err)
			return err
		}

		// 3.5. Создаем бронирование
		created, err := uc.bookingRepo.Create(txCtx, &domain.Booking{
			StudentID: req.StudentID,
			Status:    domain.BookingActive,
		})
		if err != nil {
			return fmt.Errorf("failed to create booking: %w", err)
		}

		// 3.6. Создаем строки бронирования
		if _, err := uc.bookingRepo.CreateLines(txCtx, created.ID, req.ScheduleIDs); err != nil {
			return fmt.Errorf("failed to create booking lines: %w", err)
		}

		// 3.7. Переводим слоты в Booked; если хотя бы один уже занят, откатываем всё
		reserved, err := uc.bookingRepo.ReserveSchedules(txCtx, req.ScheduleIDs)
		if err != nil {
			return fmt.Errorf("failed to reserve schedules: %w", err)
		}
		if reserved != int64(len(req.ScheduleIDs)) {
			uc.logger.Warn("CreateBooking: reserved %d of %d slots, rolling back", reserved, len(req.ScheduleIDs))
			return ErrSlotNotAvailable
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, uc.translateError(err)
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d for student id=%d", result.ID, req.StudentID)
	uc.metrics.BookingCreated()

	if err := uc.publisher.Publish(ctx, events.BookingCreated{
		BookingID:   result.ID,
		StudentID:   result.StudentID,
		ScheduleIDs: req.ScheduleIDs,
		OccurredAt:  now,
	}); err != nil {
		uc.logger.Warn("CreateBooking: failed to publish event for booking id=%d: %v", result.ID, err)
	}

	return &Response{
		BookingID:   result.ID,
		StudentID:   result.StudentID,
		Status:      string(result.Status),
		ScheduleIDs: req.ScheduleIDs,
		BookedAt:    result.BookedAt,
	}, nil
}

// translateError переводит ошибку транзакции в ошибку use case
func (uc *UseCase) translateError(err error) error {
	switch {
	case domain.IsBusinessError(err):
		return err
	case pgerrors.IsSerializationFailure(err):
		uc.logger.Warn("CreateBooking: lost concurrent race: %v", err)
		return ErrSlotNotAvailable
	case pgerrors.IsUnavailable(err):
		uc.logger.Error("CreateBooking: storage unavailable: %v", err)
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	default:
		uc.logger.Error("CreateBooking: %v", err)
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
}
