package restaurantRepo

import "tablemate/models"

// RestaurantRepository loads and maintains the restaurant catalog records.
type RestaurantRepository interface {
	// GetAll returns every catalog record in stable insertion order.
	GetAll() ([]models.Restaurant, error)
	// EnsureSeeded inserts the given records when the collection is empty.
	EnsureSeeded(seed []models.Restaurant) error
}
