package services

import (
	"context"
	"fmt"

	"github.com/tablebook/tablebook/internal/client/api"
	"github.com/tablebook/tablebook/internal/client/models"
)

// ReservationService wraps the customer-facing reservation endpoints.
type ReservationService struct {
	gw *api.Gateway
}

func NewReservationService(gw *api.Gateway) *ReservationService {
	return &ReservationService{gw: gw}
}

// ReservationFilter narrows List results. Zero values mean "no filter".
type ReservationFilter struct {
	Status string
	Date   string
}

// List returns the caller's reservations.
func (s *ReservationService) List(ctx context.Context, filter ReservationFilter) ([]models.Reservation, error) {
	path := "/client/reservations" + api.Query(map[string]string{
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

// Get returns one reservation by id.
func (s *ReservationService) Get(ctx context.Context, id int64) (*models.Reservation, error) {
	env, err := s.gw.Get(ctx, fmt.Sprintf("/client/reservations/%d", id))
	if err != nil {
		return nil, err
	}
	return decodeReservation(env)
}

// CreateReservationInput books a table.
type CreateReservationInput struct {
	RestaurantID   int64  `json:"restaurant_id"`
	TableID        int64  `json:"table_id"`
	Date           string `json:"date"`
	Time           string `json:"time"`
	PartySize      int    `json:"party_size"`
	SpecialRequest string `json:"special_request,omitempty"`
}

// Create books a table and returns the new reservation.
func (s *ReservationService) Create(ctx context.Context, input CreateReservationInput) (*models.Reservation, error) {
	env, err := s.gw.Post(ctx, "/client/reservations", input)
	if err != nil {
		return nil, err
	}
	return decodeReservation(env)
}

// UpdateReservationInput changes an existing booking. Zero-valued fields are
// left untouched by the backend.
type UpdateReservationInput struct {
	Date           string `json:"date,omitempty"`
	Time           string `json:"time,omitempty"`
	PartySize      int    `json:"party_size,omitempty"`
	SpecialRequest string `json:"special_request,omitempty"`
}

// Update amends a reservation and returns the updated record.
func (s *ReservationService) Update(ctx context.Context, id int64, input UpdateReservationInput) (*models.Reservation, error) {
	env, err := s.gw.Patch(ctx, fmt.Sprintf("/client/reservations/%d", id), input)
	if err != nil {
		return nil, err
	}
	return decodeReservation(env)
}

// Cancel cancels a reservation.
func (s *ReservationService) Cancel(ctx context.Context, id int64) error {
	_, err := s.gw.Delete(ctx, fmt.Sprintf("/client/reservations/%d", id))
	return err
}

func decodeReservation(env *api.Envelope) (*models.Reservation, error) {
	var payload struct {
		Reservation *models.Reservation `json:"reservation"`
	}
	if err := env.Decode(&payload); err != nil {
		return nil, err
	}
	return payload.Reservation, nil
}
