package domain

// Time format constants
const (
	TimeFormat = "15:04:05"   // HH:MM:SS
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Business validation constants
const (
	MaxSlotsPerBooking          = 50
	MaxCancellationReasonLength = 255
	DefaultCancellationReason   = "Cancelled via UI"
)

// Policy validation constants
const (
	MaxPolicyWindowMinutes = 10080 // 1 week
	MaxPenaltyPoints       = 100
	MaxPenalizedThreshold  = 1000
)
