package students

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-InstrumentReservation/internal/service/students/models"
	"github.com/m04kA/SMC-InstrumentReservation/pkg/pgerrors"
)

// Service сервис списка студентов
type Service struct {
	studentRepo  StudentRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса студентов
func NewService(studentRepo StudentRepository, timeProvider TimeProvider, logger Logger) *Service {
	return &Service{
		studentRepo:  studentRepo,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// List возвращает всех студентов, упорядоченных по ID
// План квоты берется действующий на сегодняшнюю дату в часовом поясе сервиса
func (s *Service) List(ctx context.Context) ([]models.StudentResponse, error) {
	today := s.timeProvider.Now()

	list, err := s.studentRepo.ListStudents(ctx, today)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		if pgerrors.IsUnavailable(err) {
			return nil, fmt.Errorf("%w: List: %v", ErrUnavailable, err)
		}
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: fetched %d students", len(list))
	return models.FromDomainStudents(list), nil
}
