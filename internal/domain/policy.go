package domain

import (
	"time"

	"github.com/m04kA/SMC-InstrumentReservation/pkg/types"
)

// PenaltyPolicy thresholds for late cancellation and late check-in/out.
// Supports hierarchical configuration:
// 1. Instrument type specific (instrument_type_id)
// 2. Global (NULL)
// 3. Service defaults from config.toml (ID = 0)
type PenaltyPolicy struct {
	ID                      int64
	InstrumentTypeID        *int64 // NULL = global policy
	LateCancelWindowMinutes int
	CheckInGraceMinutes     int
	CheckOutGraceMinutes    int
	PenaltyPoints           int
	PenalizedThreshold      int
	CreatedAt               time.Time
	UpdatedAt               time.Time
}

// IsGlobal returns true if this policy is not bound to an instrument type
func (p *PenaltyPolicy) IsGlobal() bool {
	return p.InstrumentTypeID == nil
}

// IsDefault returns true if the policy comes from service defaults, not the database
func (p *PenaltyPolicy) IsDefault() bool {
	return p.ID == 0
}

// LateCancelWindow returns the late-cancellation window as a duration
func (p *PenaltyPolicy) LateCancelWindow() time.Duration {
	return time.Duration(p.LateCancelWindowMinutes) * time.Minute
}

// CheckInGrace returns the check-in grace period as a duration
func (p *PenaltyPolicy) CheckInGrace() time.Duration {
	return time.Duration(p.CheckInGraceMinutes) * time.Minute
}

// CheckOutGrace returns the check-out grace period as a duration
func (p *PenaltyPolicy) CheckOutGrace() time.Duration {
	return time.Duration(p.CheckOutGraceMinutes) * time.Minute
}

// IsLateCancellation reports whether cancelling at now a slot starting at
// slotStart falls inside the late-cancellation window
func (p *PenaltyPolicy) IsLateCancellation(now, slotStart time.Time) bool {
	return !now.Before(slotStart.Add(-p.LateCancelWindow()))
}

// IsLateCheckIn reports whether arriving at actual is later than start plus grace
func (p *PenaltyPolicy) IsLateCheckIn(start, actual types.TimeString) bool {
	return actual.Seconds() > start.Seconds()+p.CheckInGraceMinutes*60
}

// IsLateCheckOut reports whether leaving at actual is later than end plus grace
func (p *PenaltyPolicy) IsLateCheckOut(end, actual types.TimeString) bool {
	return actual.Seconds() > end.Seconds()+p.CheckOutGraceMinutes*60
}

// PenaltyReason why a penalty was issued
type PenaltyReason string

const (
	PenaltyLateCancellation PenaltyReason = "LateCancellation"
	PenaltyLateCheckIn      PenaltyReason = "LateCheckIn"
	PenaltyLateCheckOut     PenaltyReason = "LateCheckOut"
)

// Penalty a penalty record issued to a student for a booking
type Penalty struct {
	ID        int64
	StudentID int64
	BookingID int64
	Reason    PenaltyReason
	Points    int
	IssuedAt  time.Time
}
