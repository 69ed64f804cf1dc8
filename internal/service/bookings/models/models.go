package models

import (
	"time"

	"github.com/m04kA/SMC-InstrumentReservation/internal/domain"
	"github.com/m04kA/SMC-InstrumentReservation/pkg/types"
)

// Request модели

// GetBookingsRequest запрос на получение списка бронирований
type GetBookingsRequest struct {
	StudentID *int64  `json:"studentId,omitempty"` // Фильтр по студенту (опционально)
	Status    *string `json:"status,omitempty"`    // Фильтр по статусу (опционально)
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetBookingsRequest) ToDomainFilter() (domain.BookingsFilter, bool) {
	filter := domain.BookingsFilter{StudentID: r.StudentID}

	if r.Status != nil {
		status, ok := domain.ParseBookingStatus(*r.Status)
		if !ok {
			return filter, false
		}
		filter.Status = &status
	}

	return filter, true
}

// Response модели

// BookingLineResponse одна строка списка: бронирование и один из его слотов
// Имена полей совпадают с колонками, которые ожидает веб-клиент
type BookingLineResponse struct {
	BookingID             int64             `json:"BookingID"`
	BookingStatus         string            `json:"BookingStatus"`
	BookedAt              time.Time         `json:"BookedAt"`
	StudentID             int64             `json:"StudentID"`
	StudentName           string            `json:"StudentName"`
	StudentEmail          string            `json:"StudentEmail"`
	InstrumentName        string            `json:"InstrumentName"`
	Model                 string            `json:"Model"`
	InstrumentAccessLevel string            `json:"InstrumentAccessLevel"`
	InstrumentID          int64             `json:"InstrumentID"`
	ScheduleID            int64             `json:"ScheduleID"`
	ScheduleDate          string            `json:"ScheduleDate"`
	StartTime             types.TimeString  `json:"StartTime"`
	EndTime               types.TimeString  `json:"EndTime"`
	CheckInTime           *types.TimeString `json:"CheckInTime"`
	CheckOutTime          *types.TimeString `json:"CheckOutTime"`
	Building              string            `json:"Building"`
	RoomNo                string            `json:"RoomNo"`
	Location              string            `json:"Location"`
}

// Методы конвертации

// FromDomainBookingDetails конвертирует строку списка в DTO
func FromDomainBookingDetails(d *domain.BookingDetails) BookingLineResponse {
	return BookingLineResponse{
		BookingID:             d.BookingID,
		BookingStatus:         string(d.BookingStatus),
		BookedAt:              d.BookedAt,
		StudentID:             d.StudentID,
		StudentName:           d.StudentName,
		StudentEmail:          d.StudentEmail,
		InstrumentName:        d.InstrumentName,
		Model:                 d.Model,
		InstrumentAccessLevel: string(d.InstrumentAccessLevel),
		InstrumentID:          d.InstrumentID,
		ScheduleID:            d.ScheduleID,
		ScheduleDate:          d.ScheduleDate.Format(domain.DateFormat),
		StartTime:             d.StartTime,
		EndTime:               d.EndTime,
		CheckInTime:           d.CheckInTime,
		CheckOutTime:          d.CheckOutTime,
		Building:              d.Building,
		RoomNo:                d.RoomNo,
		Location:              d.Location(),
	}
}

// FromDomainBookingList конвертирует список строк в DTO
func FromDomainBookingList(list []*domain.BookingDetails) []BookingLineResponse {
	result := make([]BookingLineResponse, 0, len(list))
	for _, d := range list {
		result = append(result, FromDomainBookingDetails(d))
	}
	return result
}
