package models

import (
	"time"

	"github.com/m04kA/SMC-InstrumentReservation/internal/domain"
)

// Уровни, с которых взята политика
const (
	SourceInstrumentType = "instrument_type"
	SourceGlobal         = "global"
	SourceDefault        = "default"
)

// Request модели

// UpdatePolicyRequest запрос на создание или обновление политики
// InstrumentTypeID == nil - глобальная политика
type UpdatePolicyRequest struct {
	InstrumentTypeID        *int64 `json:"instrumentTypeId,omitempty"`
	LateCancelWindowMinutes int    `json:"lateCancelWindowMinutes"`
	CheckInGraceMinutes     int    `json:"checkInGraceMinutes"`
	CheckOutGraceMinutes    int    `json:"checkOutGraceMinutes"`
	PenaltyPoints           int    `json:"penaltyPoints"`
	PenalizedThreshold      int    `json:"penalizedThreshold"`
}

// ToDomainPolicy конвертирует request в domain модель
func (r *UpdatePolicyRequest) ToDomainPolicy() *domain.PenaltyPolicy {
	return &domain.PenaltyPolicy{
		InstrumentTypeID:        r.InstrumentTypeID,
		LateCancelWindowMinutes: r.LateCancelWindowMinutes,
		CheckInGraceMinutes:     r.CheckInGraceMinutes,
		CheckOutGraceMinutes:    r.CheckOutGraceMinutes,
		PenaltyPoints:           r.PenaltyPoints,
		PenalizedThreshold:      r.PenalizedThreshold,
	}
}

// Response модели

// PolicyResponse ответ с действующей политикой штрафов
type PolicyResponse struct {
	ID                      int64      `json:"id"`
	InstrumentTypeID        *int64     `json:"instrumentTypeId,omitempty"`
	Source                  string     `json:"source"`
	LateCancelWindowMinutes int        `json:"lateCancelWindowMinutes"`
	CheckInGraceMinutes     int        `json:"checkInGraceMinutes"`
	CheckOutGraceMinutes    int        `json:"checkOutGraceMinutes"`
	PenaltyPoints           int        `json:"penaltyPoints"`
	PenalizedThreshold      int        `json:"penalizedThreshold"`
	CreatedAt               *time.Time `json:"createdAt,omitempty"`
	UpdatedAt               *time.Time `json:"updatedAt,omitempty"`
}

// FromDomainPolicy конвертирует domain модель в DTO
func FromDomainPolicy(p *domain.PenaltyPolicy) *PolicyResponse {
	if p == nil {
		return nil
	}

	resp := &PolicyResponse{
		ID:                      p.ID,
		InstrumentTypeID:        p.InstrumentTypeID,
		Source:                  sourceOf(p),
		LateCancelWindowMinutes: p.LateCancelWindowMinutes,
		CheckInGraceMinutes:     p.CheckInGraceMinutes,
		CheckOutGraceMinutes:    p.CheckOutGraceMinutes,
		PenaltyPoints:           p.PenaltyPoints,
		PenalizedThreshold:      p.PenalizedThreshold,
	}

	// У политики по умолчанию нет временных меток
	if !p.IsDefault() {
		createdAt, updatedAt := p.CreatedAt, p.UpdatedAt
		resp.CreatedAt = &createdAt
		resp.UpdatedAt = &updatedAt
	}

	return resp
}

func sourceOf(p *domain.PenaltyPolicy) string {
	switch {
	case p.IsDefault():
		return SourceDefault
	case p.IsGlobal():
		return SourceGlobal
	default:
		return SourceInstrumentType
	}
}
