package domain

// InstrumentType is a catalog entry shared by instruments of one model
type InstrumentType struct {
	ID          int64
	Name        string
	Model       string
	Description string
	AccessLevel AccessLevel
}

// DashboardStats aggregate counters for the dashboard
type DashboardStats struct {
	TotalStudents     int64
	TotalInstruments  int64
	ActiveBookings    int64
	CompletedBookings int64
	AvailableSlots    int64
	PenalizedStudents int64
}

// FormatLocation joins building and room as "Building - Room"
func FormatLocation(building, room string) string {
	return building + " - " + room
}
