package policy

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-InstrumentReservation/internal/domain"
	policyRepo "github.com/m04kA/SMC-InstrumentReservation/internal/infra/storage/policy"
	"github.com/m04kA/SMC-InstrumentReservation/internal/service/policy/models"
	"github.com/m04kA/SMC-InstrumentReservation/pkg/pgerrors"
)

// Service сервис для работы с политиками штрафов
type Service struct {
	policyRepo PolicyRepository
	defaults   domain.PenaltyPolicy
	logger     Logger
}

// NewService создает новый экземпляр сервиса политик.
// defaults используются, если в базе нет ни политики типа, ни глобальной
func NewService(policyRepo PolicyRepository, defaults domain.PenaltyPolicy, logger Logger) *Service {
	defaults.ID = 0
	defaults.InstrumentTypeID = nil
	return &Service{
		policyRepo: policyRepo,
		defaults:   defaults,
		logger:     logger,
	}
}

// GetEffective возвращает действующую политику для типа прибора
// Приоритет: тип прибора > глобальная > значения из config.toml
// Используется usecase-ами внутри транзакции, поэтому ошибка хранилища
// остается в цепочке для классификации
func (s *Service) GetEffective(ctx context.Context, instrumentTypeID *int64) (*domain.PenaltyPolicy, error) {
	policy, err := s.policyRepo.GetWithHierarchy(ctx, instrumentTypeID)
	if err != nil {
		if errors.Is(err, policyRepo.ErrPolicyNotFound) {
			defaults := s.defaults
			return &defaults, nil
		}
		return nil, fmt.Errorf("%w: GetEffective - repository error: %w", ErrInternal, err)
	}
	return policy, nil
}

// Get возвращает действующую политику в виде DTO
func (s *Service) Get(ctx context.Context, instrumentTypeID *int64) (*models.PolicyResponse, error) {
	s.logger.Info("Get: fetching penalty policy for instrument type=%s", formatTypeID(instrumentTypeID))

	if instrumentTypeID != nil && *instrumentTypeID <= 0 {
		return nil, fmt.Errorf("%w: instrumentTypeId must be positive", ErrInvalidInput)
	}

	policy, err := s.GetEffective(ctx, instrumentTypeID)
	if err != nil {
		s.logger.Error("Get: %v", err)
		return nil, s.wrapStoreError("Get", err)
	}

	resp := models.FromDomainPolicy(policy)
	s.logger.Info("Get: resolved penalty policy id=%d (level: %s)", policy.ID, resp.Source)
	return resp, nil
}

// Update создает или обновляет политику для типа прибора или глобальную
func (s *Service) Update(ctx context.Context, req *models.UpdatePolicyRequest) (*models.PolicyResponse, error) {
	s.logger.Info("Update: upserting penalty policy for instrument type=%s", formatTypeID(req.InstrumentTypeID))

	if err := validateRequest(req); err != nil {
		s.logger.Warn("Update: validation failed: %v", err)
		return nil, err
	}

	policy, err := s.policyRepo.Upsert(ctx, req.ToDomainPolicy())
	if err != nil {
		if pgerrors.IsForeignKeyViolation(err) {
			s.logger.Warn("Update: instrument type=%s not found", formatTypeID(req.InstrumentTypeID))
			return nil, ErrInstrumentTypeNotFound
		}
		s.logger.Error("Update: repository error: %v", err)
		return nil, s.wrapStoreError("Update", err)
	}

	s.logger.Info("Update: penalty policy id=%d saved", policy.ID)
	return models.FromDomainPolicy(policy), nil
}

func (s *Service) wrapStoreError(op string, err error) error {
	if pgerrors.IsUnavailable(err) {
		return fmt.Errorf("%w: %s: %v", ErrUnavailable, op, err)
	}
	return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
}

func validateRequest(req *models.UpdatePolicyRequest) error {
	if req.InstrumentTypeID != nil && *req.InstrumentTypeID <= 0 {
		return fmt.Errorf("%w: instrumentTypeId must be positive", ErrInvalidInput)
	}

	windows := map[string]int{
		"lateCancelWindowMinutes": req.LateCancelWindowMinutes,
		"checkInGraceMinutes":     req.CheckInGraceMinutes,
		"checkOutGraceMinutes":    req.CheckOutGraceMinutes,
	}
	for name, value := range windows {
		if value < 0 || value > domain.MaxPolicyWindowMinutes {
			return fmt.Errorf("%w: %s must be between 0 and %d", ErrInvalidInput, name, domain.MaxPolicyWindowMinutes)
		}
	}

	if req.PenaltyPoints < 0 || req.PenaltyPoints > domain.MaxPenaltyPoints {
		return fmt.Errorf("%w: penaltyPoints must be between 0 and %d", ErrInvalidInput, domain.MaxPenaltyPoints)
	}
	if req.PenalizedThreshold < 1 || req.PenalizedThreshold > domain.MaxPenalizedThreshold {
		return fmt.Errorf("%w: penalizedThreshold must be between 1 and %d", ErrInvalidInput, domain.MaxPenalizedThreshold)
	}

	return nil
}

func formatTypeID(id *int64) string {
	if id == nil {
		return "global"
	}
	return fmt.Sprintf("%d", *id)
}
