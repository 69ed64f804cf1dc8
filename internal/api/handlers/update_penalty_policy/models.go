package update_penalty_policy

import (
	"github.com/m04kA/SMC-InstrumentReservation/internal/service/policy/models"
)

// UpdatePenaltyPolicyRequest HTTP request model
// Все поля, кроме instrumentTypeId, опциональны - неуказанные берутся из действующей политики
type UpdatePenaltyPolicyRequest struct {
	InstrumentTypeID        *int64 `json:"instrumentTypeId,omitempty"`
	LateCancelWindowMinutes *int   `json:"lateCancelWindowMinutes,omitempty"`
	CheckInGraceMinutes     *int   `json:"checkInGraceMinutes,omitempty"`
	CheckOutGraceMinutes    *int   `json:"checkOutGraceMinutes,omitempty"`
	PenaltyPoints           *int   `json:"penaltyPoints,omitempty"`
	PenalizedThreshold      *int   `json:"penalizedThreshold,omitempty"`
}

// UpdatePenaltyPolicyResponse HTTP response model
type UpdatePenaltyPolicyResponse struct {
	Success bool                   `json:"success"`
	Policy  *models.PolicyResponse `json:"policy"`
	Message string                 `json:"message"`
}

// ToServiceRequest накладывает переданные поля на действующую политику
func (r *UpdatePenaltyPolicyRequest) ToServiceRequest(current *models.PolicyResponse) *models.UpdatePolicyRequest {
	req := &models.UpdatePolicyRequest{
		InstrumentTypeID:        r.InstrumentTypeID,
		LateCancelWindowMinutes: current.LateCancelWindowMinutes,
		CheckInGraceMinutes:     current.CheckInGraceMinutes,
		CheckOutGraceMinutes:    current.CheckOutGraceMinutes,
		PenaltyPoints:           current.PenaltyPoints,
		PenalizedThreshold:      current.PenalizedThreshold,
	}

	if r.LateCancelWindowMinutes != nil {
		req.LateCancelWindowMinutes = *r.LateCancelWindowMinutes
	}
	if r.CheckInGraceMinutes != nil {
		req.CheckInGraceMinutes = *r.CheckInGraceMinutes
	}
	if r.CheckOutGraceMinutes != nil {
		req.CheckOutGraceMinutes = *r.CheckOutGraceMinutes
	}
	if r.PenaltyPoints != nil {
		req.PenaltyPoints = *r.PenaltyPoints
	}
	if r.PenalizedThreshold != nil {
		req.PenalizedThreshold = *r.PenalizedThreshold
	}

	return req
}
