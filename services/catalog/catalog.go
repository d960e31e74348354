package catalog

import (
	"strings"

	"tablemate/models"
)

// Catalog is the in-memory restaurant set, loaded once at startup and
// immutable afterwards. Derived enumerations constrain the interpreter's
// value domains.
type Catalog struct {
	restaurants []models.Restaurant
	byID        map[string]models.Restaurant

	areas    []string
	cuisines []string
	vibes    []string
	dietary  []string
}

// New builds a Catalog from the given records, preserving their order.
func New(restaurants []models.Restaurant) *Catalog {
	c := &Catalog{
		restaurants: restaurants,
		byID:        make(map[string]models.Restaurant, len(restaurants)),
	}
	for _, r := range restaurants {
		c.byID[r.ID] = r
	}
	c.areas = distinct(restaurants, func(r models.Restaurant) []string { return []string{r.Area} })
	c.cuisines = distinct(restaurants, func(r models.Restaurant) []string { return r.Cuisines })
	c.vibes = distinct(restaurants, func(r models.Restaurant) []string { return r.Vibes })
	c.dietary = distinct(restaurants, func(r models.Restaurant) []string { return r.Dietary })
	return c
}

// distinct collects values in catalog order, deduped case-insensitively.
func distinct(restaurants []models.Restaurant, pick func(models.Restaurant) []string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, r := range restaurants {
		for _, v := range pick(r) {
			if v == "" {
				continue
			}
			key := strings.ToLower(v)
			if !seen[key] {
				seen[key] = true
				out = append(out, v)
			}
		}
	}
	return out
}

// All returns every record in catalog order.
func (c *Catalog) All() []models.Restaurant {
	return c.restaurants
}

// ByID looks up one record.
func (c *Catalog) ByID(id string) (models.Restaurant, bool) {
	r, ok := c.byID[id]
	return r, ok
}

// Areas returns the distinct areas in catalog order.
func (c *Catalog) Areas() []string { return c.areas }

// Cuisines returns the distinct cuisines in catalog order.
func (c *Catalog) Cuisines() []string { return c.cuisines }

// Vibes returns the distinct vibe tags in catalog order.
func (c *Catalog) Vibes() []string { return c.vibes }

// DietaryTags returns the distinct dietary tags in catalog order.
func (c *Catalog) DietaryTags() []string { return c.dietary }

// TopRated returns the n highest-rated records, ties broken by catalog
// order.
func (c *Catalog) TopRated(n int) []models.Restaurant {
	out := make([]models.Restaurant, len(c.restaurants))
	copy(out, c.restaurants)
	// insertion sort keeps the catalog-order tie break explicit
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j].Rating > out[j-1].Rating; j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	if n < len(out) {
		out = out[:n]
	}
	return out
}
