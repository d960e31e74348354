package catalog

import "tablemate/models"

// Seed returns the built-in restaurant list. It bootstraps an empty Mongo
// collection on first run and backs tests directly.
func Seed() []models.Restaurant {
	return []models.Restaurant{
		{
			ID: "r-001", Name: "Em Sherif", Area: "Achrafieh", City: "Beirut",
			Cuisines: []string{"Lebanese"}, Price: "high",
			Vibes:   []string{"elegant", "romantic"},
			Dietary: []string{"vegetarian options"},
			Rating:  4.7,
			Highlights: []string{"set menu of 20+ mezze", "live oud music"},
			Bookable:   true,
		},
		{
			ID: "r-002", Name: "Tavolina", Area: "Mar Mikhael", City: "Beirut",
			Cuisines: []string{"Italian"}, Price: "mid",
			Vibes:   []string{"cozy", "lively"},
			Dietary: []string{"vegetarian options"},
			Rating:  4.5,
			Highlights: []string{"handmade pasta", "natural wine list"},
			Bookable:   true,
		},
		{
			ID: "r-003", Name: "Kampai", Area: "Downtown", City: "Beirut",
			Cuisines: []string{"Japanese"}, Price: "high",
			Vibes:   []string{"buzzing", "business"},
			Rating:  4.4,
			Highlights: []string{"omakase counter", "late kitchen"},
			Bookable:   true,
		},
		{
			ID: "r-004", Name: "Barbar", Area: "Hamra", City: "Beirut",
			Cuisines: []string{"Lebanese", "Street Food"}, Price: "low",
			Vibes:   []string{"casual", "family"},
			Dietary: []string{"vegetarian options", "vegan options"},
			Rating:  4.2,
			Highlights: []string{"open 24 hours", "famous shawarma"},
			Bookable: false, DiscountCode: "BARBAR10",
		},
		{
			ID: "r-005", Name: "Liza", Area: "Achrafieh", City: "Beirut",
			Cuisines: []string{"Lebanese", "French"}, Price: "high",
			Vibes:   []string{"intimate", "elegant"},
			Dietary: []string{"gluten-free options"},
			Rating:  4.6,
			Highlights: []string{"19th-century palace setting", "seasonal tasting menu"},
			Bookable:   true,
		},
		{
			ID: "r-006", Name: "Mayrig", Area: "Gemmayzeh", City: "Beirut",
			Cuisines: []string{"Armenian"}, Price: "mid",
			Vibes:   []string{"cozy", "quiet"},
			Dietary: []string{"vegetarian options"},
			Rating:  4.5,
			Highlights: []string{"sour cherry kebab", "courtyard seating"},
			Bookable:   true,
		},
		{
			ID: "r-007", Name: "Ferdinand", Area: "Hamra", City: "Beirut",
			Cuisines: []string{"Burgers", "American"}, Price: "mid",
			Vibes:   []string{"lively", "casual"},
			Rating:  4.3,
			Highlights: []string{"craft beer taps", "trivia nights"},
			Bookable: false, DiscountCode: "FERD5",
		},
		{
			ID: "r-008", Name: "Babel Bay", Area: "Zaitunay Bay", City: "Beirut",
			Cuisines: []string{"Seafood", "Lebanese"}, Price: "high",
			Vibes:   []string{"outdoor", "elegant"},
			Dietary: []string{"gluten-free options"},
			Rating:  4.4,
			Highlights: []string{"marina-front terrace", "raw bar"},
			Bookable:   true,
		},
		{
			ID: "r-009", Name: "Tawlet", Area: "Mar Mikhael", City: "Beirut",
			Cuisines: []string{"Lebanese"}, Price: "mid",
			Vibes:   []string{"family", "casual"},
			Dietary: []string{"vegetarian options", "vegan options"},
			Rating:  4.6,
			Highlights: []string{"daily village cook rotation", "open buffet lunch"},
			Bookable:   true,
		},
		{
			ID: "r-010", Name: "Baron", Area: "Mar Mikhael", City: "Beirut",
			Cuisines: []string{"Mediterranean", "Fusion"}, Price: "mid",
			Vibes:   []string{"buzzing", "lively"},
			Rating:  4.5,
			Highlights: []string{"wood-fired small plates", "natural wines"},
			Bookable:   true,
		},
		{
			ID: "r-011", Name: "Kahwet Leila", Area: "Hamra", City: "Beirut",
			Cuisines: []string{"Lebanese", "Cafe"}, Price: "low",
			Vibes:   []string{"quiet", "casual"},
			Dietary: []string{"vegetarian options"},
			Rating:  4.1,
			Highlights: []string{"retro Beirut decor", "all-day breakfast"},
			Bookable:   true,
		},
		{
			ID: "r-012", Name: "Enab", Area: "Gemmayzeh", City: "Beirut",
			Cuisines: []string{"Lebanese"}, Price: "mid",
			Vibes:   []string{"outdoor", "family"},
			Dietary: []string{"vegetarian options"},
			Rating:  4.3,
			Highlights: []string{"rooftop garden", "village-style mezze"},
			Bookable:   true,
		},
		{
			ID: "r-013", Name: "El Molino", Area: "Badaro", City: "Beirut",
			Cuisines: []string{"Mexican"}, Price: "low",
			Vibes:   []string{"lively", "casual"},
			Dietary: []string{"vegan options"},
			Rating:  4.0,
			Highlights: []string{"frozen margaritas", "street tacos"},
			Bookable:   false,
		},
		{
			ID: "r-014", Name: "Indigo on the Roof", Area: "Downtown", City: "Beirut",
			Cuisines: []string{"French", "International"}, Price: "high",
			Vibes:   []string{"romantic", "outdoor"},
			Rating:  4.5,
			Highlights: []string{"rooftop skyline view", "sunset seating"},
			Bookable:   true,
		},
		{
			ID: "r-015", Name: "Bombay Central", Area: "Badaro", City: "Beirut",
			Cuisines: []string{"Indian"}, Price: "mid",
			Vibes:   []string{"cozy", "family"},
			Dietary: []string{"vegetarian options", "vegan options", "halal"},
			Rating:  4.2,
			Highlights: []string{"clay oven breads", "thali platters"},
			Bookable:   true,
		},
	}
}
