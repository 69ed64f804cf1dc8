package create_booking

import "time"

// Request модель запроса на создание бронирования
type Request struct {
	StudentID   int64   // ID студента
	ScheduleIDs []int64 // ID слотов расписания (одно бронирование может занимать несколько слотов)
}

// Response модель ответа с созданным бронированием
type Response struct {
	BookingID   int64     // ID созданного бронирования
	StudentID   int64     // ID студента
	Status      string    // Статус бронирования
	ScheduleIDs []int64   // Забронированные слоты
	BookedAt    time.Time // Время создания
}
