package domain

import (
	"time"

	"github.com/m04kA/SMC-InstrumentReservation/pkg/types"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	BookingActive      BookingStatus = "Active"
	BookingCompleted   BookingStatus = "Completed"
	BookingCanceled    BookingStatus = "Canceled"
	BookingUnfulfilled BookingStatus = "Unfulfilled"
)

// Booking represents a reservation of one or more schedule slots by a student
type Booking struct {
	ID        int64
	StudentID int64
	Status    BookingStatus
	BookedAt  time.Time

	// Stored encrypted at rest, decrypted by the repository
	CheckInTime  *types.TimeString
	CheckOutTime *types.TimeString

	CancellationReason *string
	CanceledAt         *time.Time
}

// BookingLine links a booking to one schedule slot
type BookingLine struct {
	ID         int64
	BookingID  int64
	ScheduleID int64
}

// IsActive returns true if the booking has not reached a terminal status
func (b *Booking) IsActive() bool {
	return b.Status == BookingActive
}

// CanTransitionTo reports whether the booking may move to next.
// Only Active bookings change status, and never back to Active.
func (b *Booking) CanTransitionTo(next BookingStatus) bool {
	if b.Status != BookingActive {
		return false
	}
	switch next {
	case BookingCompleted, BookingCanceled, BookingUnfulfilled:
		return true
	default:
		return false
	}
}

// IsCheckedIn returns true if a check-in time was recorded
func (b *Booking) IsCheckedIn() bool {
	return b.CheckInTime != nil && !b.CheckInTime.IsZero()
}

// IsCheckedOut returns true if a check-out time was recorded
func (b *Booking) IsCheckedOut() bool {
	return b.CheckOutTime != nil && !b.CheckOutTime.IsZero()
}

// ParseBookingStatus validates a status string
func ParseBookingStatus(s string) (BookingStatus, bool) {
	switch BookingStatus(s) {
	case BookingActive, BookingCompleted, BookingCanceled, BookingUnfulfilled:
		return BookingStatus(s), true
	default:
		return "", false
	}
}

// BookingsFilter фильтр списка бронирований
type BookingsFilter struct {
	StudentID *int64         // Фильтр по студенту (опционально)
	Status    *BookingStatus // Фильтр по статусу (опционально)
}

// BookingDetails one row of the bookings listing: a booking line joined
// with its student, slot, instrument and location
type BookingDetails struct {
	BookingID             int64
	BookingStatus         BookingStatus
	BookedAt              time.Time
	StudentID             int64
	StudentName           string
	StudentEmail          string
	InstrumentName        string
	Model                 string
	InstrumentAccessLevel AccessLevel
	InstrumentID          int64
	ScheduleID            int64
	ScheduleDate          time.Time
	StartTime             types.TimeString
	EndTime               types.TimeString
	CheckInTime           *types.TimeString
	CheckOutTime          *types.TimeString
	Building              string
	RoomNo                string
}

// Location returns "Building - Room"
func (d *BookingDetails) Location() string {
	return FormatLocation(d.Building, d.RoomNo)
}
