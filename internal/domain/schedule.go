package domain

import (
	"time"

	"github.com/m04kA/SMC-InstrumentReservation/pkg/types"
)

// ScheduleStatus represents the status of a schedule slot
type ScheduleStatus string

const (
	ScheduleAvailable   ScheduleStatus = "Available"
	ScheduleBooked      ScheduleStatus = "Booked"
	ScheduleCompleted   ScheduleStatus = "Completed"
	ScheduleUnavailable ScheduleStatus = "Unavailable"
)

// Schedule is a bookable time slot of one instrument
type Schedule struct {
	ID           int64
	InstrumentID int64
	Date         time.Time
	StartTime    types.TimeString
	EndTime      types.TimeString
	Status       ScheduleStatus

	// Joined from the instrument type
	InstrumentTypeID    int64
	RequiredAccessLevel AccessLevel
}

// IsAvailable returns true if the slot can be booked
func (s *Schedule) IsAvailable() bool {
	return s.Status == ScheduleAvailable
}

// StartsAt returns the slot start as a point in time in loc
func (s *Schedule) StartsAt(loc *time.Location) time.Time {
	return s.StartTime.OnDate(dateIn(s.Date, loc))
}

// EndsAt returns the slot end as a point in time in loc
func (s *Schedule) EndsAt(loc *time.Location) time.Time {
	return s.EndTime.OnDate(dateIn(s.Date, loc))
}

// IsOn returns true if the slot takes place on the calendar day of t
func (s *Schedule) IsOn(t time.Time) bool {
	y1, m1, d1 := s.Date.Date()
	y2, m2, d2 := t.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// AvailableSlot one row of the open slot search
type AvailableSlot struct {
	ScheduleID       int64
	Date             time.Time
	StartTime        types.TimeString
	EndTime          types.TimeString
	Status           ScheduleStatus
	InstrumentID     int64
	InstrumentTypeID int64
	InstrumentName   string
	Model            string
	AccessLevel      AccessLevel
	Building         string
	RoomNo           string
}

// Location returns "Building - Room"
func (s *AvailableSlot) Location() string {
	return FormatLocation(s.Building, s.RoomNo)
}

// SlotsFilter фильтр поиска свободных слотов
type SlotsFilter struct {
	InstrumentTypeID *int64     // Тип прибора (опционально)
	Date             *time.Time // Дата (опционально)
}

// dateIn keeps the calendar date of d but places it in loc
func dateIn(d time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	y, m, day := d.Date()
	return time.Date(y, m, day, 0, 0, 0, 0, loc)
}
