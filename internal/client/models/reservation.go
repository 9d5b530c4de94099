package models

// ReservationStatus follows the backend's reservation lifecycle.
type ReservationStatus string

const (
	ReservationPending   ReservationStatus = "pending"
	ReservationConfirmed ReservationStatus = "confirmed"
	ReservationSeated    ReservationStatus = "seated"
	ReservationCompleted ReservationStatus = "completed"
	ReservationCancelled ReservationStatus = "cancelled"
)

// Reservation is a booking of a table for a party at a given time.
type Reservation struct {
	ID             int64             `json:"id"`
	UserID         int64             `json:"user_id"`
	RestaurantID   int64             `json:"restaurant_id"`
	TableID        int64             `json:"table_id"`
	RestaurantName string            `json:"restaurant_name,omitempty"`
	TableNumber    string            `json:"table_number,omitempty"`
	Date           string            `json:"date"`
	Time           string            `json:"time"`
	PartySize      int               `json:"party_size"`
	Status         ReservationStatus `json:"status"`
	SpecialRequest string            `json:"special_request,omitempty"`
	CreatedAt      string            `json:"created_at,omitempty"`
}

// Active reports whether the reservation still occupies its table slot.
func (r *Reservation) Active() bool {
	switch r.Status {
	case ReservationPending, ReservationConfirmed, ReservationSeated:
		return true
	}
	return false
}
