package models

// TableStatus is the admin-facing lifecycle of a physical table.
type TableStatus string

const (
	TableAvailable   TableStatus = "available"
	TableOccupied    TableStatus = "occupied"
	TableMaintenance TableStatus = "maintenance"
)

// Table is a physical table in a restaurant.
type Table struct {
	ID           int64       `json:"id"`
	RestaurantID int64       `json:"restaurant_id"`
	Number       string      `json:"number"`
	Capacity     int         `json:"capacity"`
	Location     string      `json:"location,omitempty"`
	Status       TableStatus `json:"status"`
}
