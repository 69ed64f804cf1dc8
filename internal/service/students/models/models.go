package models

import "github.com/m04kA/SMC-InstrumentReservation/internal/domain"

// StudentResponse строка списка студентов с текущим планом квоты
// Поля плана равны null, если у студента нет действующего плана
type StudentResponse struct {
	StudentID     int64   `json:"StudentID"`
	StudentName   string  `json:"StudentName"`
	Email         string  `json:"Email"`
	Major         string  `json:"Major"`
	AccessLevel   *string `json:"AccessLevel"`
	PenaltyPoints *int    `json:"PenaltyPoints"`
	QuotaStatus   *string `json:"QuotaStatus"`
}

// FromDomainStudents конвертирует список студентов в DTO
func FromDomainStudents(list []*domain.StudentSummary) []StudentResponse {
	result := make([]StudentResponse, 0, len(list))
	for _, s := range list {
		item := StudentResponse{
			StudentID:     s.StudentID,
			StudentName:   s.StudentName,
			Email:         s.Email,
			Major:         s.Major,
			PenaltyPoints: s.PenaltyPoints,
		}
		if s.AccessLevel != nil {
			level := string(*s.AccessLevel)
			item.AccessLevel = &level
		}
		if s.QuotaStatus != nil {
			status := string(*s.QuotaStatus)
			item.QuotaStatus = &status
		}
		result = append(result, item)
	}
	return result
}
