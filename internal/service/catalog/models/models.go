package models

import (
	"github.com/m04kA/SMC-InstrumentReservation/internal/domain"
	"github.com/m04kA/SMC-InstrumentReservation/pkg/types"
)

// Имена полей ответов совпадают с колонками, которые ожидает веб-клиент

// Request модели

// GetAvailableSlotsRequest фильтр поиска свободных слотов
type GetAvailableSlotsRequest struct {
	InstrumentTypeID *int64  // Тип прибора (опционально)
	Date             *string // Дата YYYY-MM-DD (опционально)
}

// Response модели

// DashboardStatsResponse агрегированные счетчики для главной страницы
type DashboardStatsResponse struct {
	TotalStudents     int64 `json:"totalStudents"`
	TotalInstruments  int64 `json:"totalInstruments"`
	ActiveBookings    int64 `json:"activeBookings"`
	CompletedBookings int64 `json:"completedBookings"`
	AvailableSlots    int64 `json:"availableSlots"`
	PenalizedStudents int64 `json:"penalizedStudents"`
}

// InstrumentTypeResponse тип прибора
type InstrumentTypeResponse struct {
	InstrumentTypeID int64  `json:"InstrumentTypeID"`
	Name             string `json:"Name"`
	Model            string `json:"Model"`
	Description      string `json:"Description"`
	AccessLevel      string `json:"AccessLevel"`
}

// AvailableSlotResponse свободный слот с прибором и помещением
type AvailableSlotResponse struct {
	ScheduleID       int64            `json:"ScheduleID"`
	Date             string           `json:"Date"`
	StartTime        types.TimeString `json:"StartTime"`
	EndTime          types.TimeString `json:"EndTime"`
	Status           string           `json:"Status"`
	InstrumentID     int64            `json:"InstrumentID"`
	InstrumentTypeID int64            `json:"InstrumentTypeID"`
	InstrumentName   string           `json:"InstrumentName"`
	Model            string           `json:"Model"`
	AccessLevel      string           `json:"AccessLevel"`
	Building         string           `json:"Building"`
	RoomNo           string           `json:"RoomNo"`
	Location         string           `json:"Location"`
}

// Методы конвертации

// FromDomainStats конвертирует статистику в DTO
func FromDomainStats(s *domain.DashboardStats) *DashboardStatsResponse {
	if s == nil {
		return nil
	}
	return &DashboardStatsResponse{
		TotalStudents:     s.TotalStudents,
		TotalInstruments:  s.TotalInstruments,
		ActiveBookings:    s.ActiveBookings,
		CompletedBookings: s.CompletedBookings,
		AvailableSlots:    s.AvailableSlots,
		PenalizedStudents: s.PenalizedStudents,
	}
}

// FromDomainInstrumentTypes конвертирует список типов приборов в DTO
func FromDomainInstrumentTypes(list []*domain.InstrumentType) []InstrumentTypeResponse {
	result := make([]InstrumentTypeResponse, 0, len(list))
	for _, t := range list {
		result = append(result, InstrumentTypeResponse{
			InstrumentTypeID: t.ID,
			Name:             t.Name,
			Model:            t.Model,
			Description:      t.Description,
			AccessLevel:      string(t.AccessLevel),
		})
	}
	return result
}

// FromDomainSlots конвертирует список слотов в DTO
func FromDomainSlots(list []*domain.AvailableSlot) []AvailableSlotResponse {
	result := make([]AvailableSlotResponse, 0, len(list))
	for _, s := range list {
		result = append(result, AvailableSlotResponse{
			ScheduleID:       s.ScheduleID,
			Date:             s.Date.Format(domain.DateFormat),
			StartTime:        s.StartTime,
			EndTime:          s.EndTime,
			Status:           string(s.Status),
			InstrumentID:     s.InstrumentID,
			InstrumentTypeID: s.InstrumentTypeID,
			InstrumentName:   s.InstrumentName,
			Model:            s.Model,
			AccessLevel:      string(s.AccessLevel),
			Building:         s.Building,
			RoomNo:           s.RoomNo,
			Location:         s.Location(),
		})
	}
	return result
}
