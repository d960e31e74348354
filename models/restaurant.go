package models

// Restaurant is one immutable catalog entry. Records are loaded once at
// startup and never mutated at runtime.
type Restaurant struct {
	ID         string   `json:"id" bson:"id"`
	Name       string   `json:"name" bson:"name"`
	Area       string   `json:"area" bson:"area"`
	City       string   `json:"city" bson:"city"`
	Cuisines   []string `json:"cuisines" bson:"cuisines"`
	Price      string   `json:"price" bson:"price"` // "low", "mid" or "high"
	Vibes      []string `json:"vibes" bson:"vibes"`
	Dietary    []string `json:"dietary,omitempty" bson:"dietary,omitempty"`
	Rating     float64  `json:"rating" bson:"rating"`
	Highlights []string `json:"highlights,omitempty" bson:"highlights,omitempty"`
	// Bookable is false for walk-in-only venues.
	Bookable bool `json:"bookable" bson:"bookable"`
	// DiscountCode is an optional walk-in code surfaced when a non-bookable
	// venue is picked.
	DiscountCode string `json:"discountCode,omitempty" bson:"discountCode,omitempty"`
}

// PriceRank maps the catalog price tier to 1..3 for adjacency comparisons.
func (r Restaurant) PriceRank() int {
	switch r.Price {
	case "low":
		return 1
	case "mid":
		return 2
	case "high":
		return 3
	}
	return 0
}
