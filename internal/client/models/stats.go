package models

// Stats is the admin dashboard summary for a date range.
type Stats struct {
	TotalReservations     int     `json:"total_reservations"`
	PendingReservations   int     `json:"pending_reservations"`
	ConfirmedReservations int     `json:"confirmed_reservations"`
	CancelledReservations int     `json:"cancelled_reservations"`
	TotalTables           int     `json:"total_tables"`
	OccupiedTables        int     `json:"occupied_tables"`
	TotalGuests           int     `json:"total_guests"`
	OccupancyRate         float64 `json:"occupancy_rate"`
}
