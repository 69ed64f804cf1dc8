// Package penalty начисляет штрафы студентам. Вызывается внутри транзакции
// отмены, прихода или ухода, поэтому все изменения фиксируются вместе с ней.
package penalty

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-InstrumentReservation/internal/domain"
	studentRepo "github.com/m04kA/SMC-InstrumentReservation/internal/infra/storage/student"
)

// Issuer начисляет штрафы
type Issuer struct {
	studentRepo StudentRepository
	logger      Logger
}

// NewIssuer создает новый экземпляр Issuer
func NewIssuer(studentRepo StudentRepository, logger Logger) *Issuer {
	return &Issuer{studentRepo: studentRepo, logger: logger}
}

// Request параметры штрафа
type Request struct {
	StudentID int64
	BookingID int64
	Reason    domain.PenaltyReason
	Policy    *domain.PenaltyPolicy
	IssuedAt  time.Time // Время начисления, задает и "сегодня" для выбора плана квоты
}

// Issue записывает штраф и добавляет баллы к действующему плану квоты студента.
// Если баланс достигает порога политики, план переводится в Penalized.
// Отсутствие действующего плана не ошибка: штраф все равно записывается.
func (i *Issuer) Issue(ctx context.Context, req Request) error {
	// 1. Записываем штраф
	_, err := i.studentRepo.CreatePenalty(ctx, &domain.Penalty{
		StudentID: req.StudentID,
		BookingID: req.BookingID,
		Reason:    req.Reason,
		Points:    req.Policy.PenaltyPoints,
		IssuedAt:  req.IssuedAt,
	})
	if err != nil {
		return fmt.Errorf("create penalty: %w", err)
	}

	// 2. Получаем действующий план квоты (с блокировкой внутри транзакции)
	plan, err := i.studentRepo.GetCurrentQuotaPlan(ctx, req.StudentID, req.IssuedAt)
	if err != nil {
		if errors.Is(err, studentRepo.ErrQuotaPlanNotFound) {
			i.logger.Warn("Penalty: student id=%d has no current quota plan, %s recorded without points",
				req.StudentID, req.Reason)
			return nil
		}
		return fmt.Errorf("get quota plan: %w", err)
	}

	// 3. Начисляем баллы
	wasPenalized := plan.IsPenalized()
	plan.ApplyPenalty(req.Policy.PenaltyPoints, req.Policy.PenalizedThreshold)

	if err := i.studentRepo.UpdateQuotaPlanPenalty(ctx, plan); err != nil {
		return fmt.Errorf("update quota plan: %w", err)
	}

	i.logger.Info("Penalty: %s for student id=%d booking id=%d, points=%d, plan status=%s",
		req.Reason, req.StudentID, req.BookingID, plan.PenaltyPoints, plan.Status)

	if !wasPenalized && plan.IsPenalized() {
		i.logger.Warn("Penalty: quota plan id=%d of student id=%d is now Penalized", plan.ID, req.StudentID)
	}

	return nil
}
