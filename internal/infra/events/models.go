package events

import "time"

// Routing keys
const (
	KeyBookingCreated  = "booking.created"
	KeyBookingCanceled = "booking.canceled"
	KeyCheckedIn       = "booking.checked_in"
	KeyCheckedOut      = "booking.checked_out"
)

// Event доменное событие для публикации в RabbitMQ
type Event interface {
	RoutingKey() string
}

// BookingCreated бронирование создано
type BookingCreated struct {
	BookingID   int64     `json:"bookingId"`
	StudentID   int64     `json:"studentId"`
	ScheduleIDs []int64   `json:"scheduleIds"`
	OccurredAt  time.Time `json:"occurredAt"`
}

func (BookingCreated) RoutingKey() string { return KeyBookingCreated }

// BookingCanceled бронирование отменено
type BookingCanceled struct {
	BookingID     int64     `json:"bookingId"`
	StudentID     int64     `json:"studentId"`
	Reason        string    `json:"reason"`
	PenaltyIssued bool      `json:"penaltyIssued"`
	OccurredAt    time.Time `json:"occurredAt"`
}

func (BookingCanceled) RoutingKey() string { return KeyBookingCanceled }

// CheckedIn студент пришел на слот
type CheckedIn struct {
	BookingID     int64     `json:"bookingId"`
	StudentID     int64     `json:"studentId"`
	CheckInTime   string    `json:"checkInTime"`
	PenaltyIssued bool      `json:"penaltyIssued"`
	OccurredAt    time.Time `json:"occurredAt"`
}

func (CheckedIn) RoutingKey() string { return KeyCheckedIn }

// CheckedOut студент ушел, бронирование завершено
type CheckedOut struct {
	BookingID     int64     `json:"bookingId"`
	StudentID     int64     `json:"studentId"`
	CheckOutTime  string    `json:"checkOutTime"`
	PenaltyIssued bool      `json:"penaltyIssued"`
	OccurredAt    time.Time `json:"occurredAt"`
}

func (CheckedOut) RoutingKey() string { return KeyCheckedOut }
