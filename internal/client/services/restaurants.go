package services

import (
	"context"
	"fmt"
	"strconv"

	"github.com/tablebook/tablebook/internal/client/api"
	"github.com/tablebook/tablebook/internal/client/models"
)

// RestaurantService wraps the customer-facing restaurant endpoints.
type RestaurantService struct {
	gw *api.Gateway
}

func NewRestaurantService(gw *api.Gateway) *RestaurantService {
	return &RestaurantService{gw: gw}
}

// RestaurantFilter narrows List results. Zero values mean "no filter".
type RestaurantFilter struct {
	Search  string
	Cuisine string
}

// List returns restaurants matching the filter.
func (s *RestaurantService) List(ctx context.Context, filter RestaurantFilter) ([]models.Restaurant, error) {
	path := "/client/restaurants" + api.Query(map[string]string{
		"search":  filter.Search,
		"cuisine": filter.Cuisine,
	})
	env, err := s.gw.Get(ctx, path)
	if err != nil {
		return nil, err
	}

	var payload struct {
		Restaurants []models.Restaurant `json:"restaurants"`
	}
	if err := env.Decode(&payload); err != nil {
		return nil, err
	}
	return payload.Restaurants, nil
}

// Get returns one restaurant by id.
func (s *RestaurantService) Get(ctx context.Context, id int64) (*models.Restaurant, error) {
	env, err := s.gw.Get(ctx, fmt.Sprintf("/client/restaurants/%d", id))
	if err != nil {
		return nil, err
	}

	var payload struct {
		Restaurant *models.Restaurant `json:"restaurant"`
	}
	if err := env.Decode(&payload); err != nil {
		return nil, err
	}
	return payload.Restaurant, nil
}

// Tables returns tables available at a restaurant for the given date and
// party size. Empty date or zero party size are omitted from the query.
func (s *RestaurantService) Tables(ctx context.Context, restaurantID int64, date string, partySize int) ([]models.Table, error) {
	size := ""
	if partySize > 0 {
		size = strconv.Itoa(partySize)
	}
	path := fmt.Sprintf("/client/restaurants/%d/tables", restaurantID) + api.Query(map[string]string{
		"date":       date,
		"party_size": size,
	})
	env, err := s.gw.Get(ctx, path)
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
