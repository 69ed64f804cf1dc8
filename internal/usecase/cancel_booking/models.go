package cancel_booking

// Request модель запроса на отмену бронирования
type Request struct {
	BookingID int64   // ID бронирования
	Reason    *string // Причина отмены (опционально)
}

// Response модель ответа на отмену бронирования
type Response struct {
	BookingID     int64  // ID бронирования
	Reason        string // Сохраненная причина отмены
	PenaltyIssued bool   // Начислен ли штраф за позднюю отмену
}
