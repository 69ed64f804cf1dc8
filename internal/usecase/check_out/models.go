package check_out

import "github.com/m04kA/SMC-InstrumentReservation/pkg/types"

// Request модель запроса на регистрацию ухода
type Request struct {
	BookingID    int64            // ID бронирования
	CheckOutTime types.TimeString // Фактическое время ухода
}

// Response модель ответа на регистрацию ухода
type Response struct {
	BookingID     int64            // ID бронирования
	ScheduleID    int64            // Слот, по окончанию которого считается опоздание
	CheckOutTime  types.TimeString // Сохраненное время ухода
	Status        string           // Новый статус бронирования (Completed)
	PenaltyIssued bool             // Начислен ли штраф за поздний уход
}
