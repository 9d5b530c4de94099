package services

import (
	"context"
	"fmt"

	"github.com/tablebook/tablebook/internal/client/api"
	"github.com/tablebook/tablebook/internal/client/models"
)

// AdminService wraps the /admin endpoints. Authorization is enforced
// server-side; the client only gates the UI on the user's role.
type AdminService struct {
	gw *api.Gateway
}

func NewAdminService(gw *api.Gateway) *AdminService {
	return &AdminService{gw: gw}
}

// Tables lists every table in the admin's restaurant.
func (s *AdminService) Tables(ctx context.Context) ([]models.Table, error) {
	env, err := s.gw.Get(ctx, "/admin/tables")
	if err != nil {
		return nil, err
	}

	var payload struct {
		Tables []models.Table `json:"tables"`
	}
	if err := env.Decode(&payload); err != nil {
		return nil, err
	}
	return payload.Tables, nil
}

// TableInput creates or amends a table.
type TableInput struct {
	Number   string `json:"number,omitempty"`
	Capacity int    `json:"capacity,omitempty"`
	Location string `json:"location,omitempty"`
	Status   string `json:"status,omitempty"`
}

// CreateTable adds a table.
func (s *AdminService) CreateTable(ctx context.Context, input TableInput) (*models.Table, error) {
	env, err := s.gw.Post(ctx, "/admin/tables", input)
	if err != nil {
		return nil, err
	}
	return decodeTable(env)
}

// UpdateTable amends a table.
func (s *AdminService) UpdateTable(ctx context.Context, id int64, input TableInput) (*models.Table, error) {
	env, err := s.gw.Patch(ctx, fmt.Sprintf("/admin/tables/%d", id), input)
	if err != nil {
		return nil, err
	}
	return decodeTable(env)
}

// DeleteTable removes a table.
func (s *AdminService) DeleteTable(ctx context.Context, id int64) error {
	_, err := s.gw.Delete(ctx, fmt.Sprintf("/admin/tables/%d", id))
	return err
}

// Reservations lists reservations across the restaurant.
func (s *AdminService) Reservations(ctx context.Context, filter ReservationFilter) ([]models.Reservation, error) {
	path := "/admin/reservations" + api.Query(map[string]string{
		"status": filter.Status,
		"date":   filter.Date,
	})
	env, err := s.gw.Get(ctx, path)
	if err != nil {
		return nil, err
	}

	var payload struct {
		Reservations []models.Reservation `json:"reservations"`
	}
	if err := env.Decode(&payload); err != nil {
		return nil, err
	}
	return payload.Reservations, nil
}

// SetReservationStatus moves a reservation through its lifecycle
// (confirm, seat, complete, cancel).
func (s *AdminService) SetReservationStatus(ctx context.Context, id int64, status models.ReservationStatus) (*models.Reservation, error) {
	body := map[string]string{"status": string(status)}
	env, err := s.gw.Patch(ctx, fmt.Sprintf("/admin/reservations/%d", id), body)
	if err != nil {
		return nil, err
	}
	return decodeReservation(env)
}

// StatsRange bounds the Stats query; empty strings mean the backend default.
type StatsRange struct {
	From string
	To   string
}

// Stats returns the dashboard summary.
func (s *AdminService) Stats(ctx context.Context, r StatsRange) (*models.Stats, error) {
	path := "/admin/stats" + api.Query(map[string]string{"from": r.From, "to": r.To})
	env, err := s.gw.Get(ctx, path)
	if err != nil {
		return nil, err
	}

	var payload struct {
		Stats *models.Stats `json:"stats"`
	}
	if err := env.Decode(&payload); err != nil {
		return nil, err
	}
	return payload.Stats, nil
}

func decodeTable(env *api.Envelope) (*models.Table, error) {
	var payload struct {
		Table *models.Table `json:"table"`
	}
	if err := env.Decode(&payload); err != nil {
		return nil, err
	}
	return payload.Table, nil
}
