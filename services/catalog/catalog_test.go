package catalog

import (
	"testing"

	"tablemate/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEnumerations(t *testing.T) {
	cat := New([]models.Restaurant{
		{ID: "a", Area: "Hamra", Cuisines: []string{"Lebanese", "Mezze"}, Vibes: []string{"lively"}},
		{ID: "b", Area: "hamra", Cuisines: []string{"lebanese"}, Vibes: []string{"cozy"}},
		{ID: "c", Area: "Badaro", Cuisines: []string{"Italian"}, Dietary: []string{"vegetarian"}},
	})

	// deduped case-insensitively, first spelling wins, catalog order kept
	assert.Equal(t, []string{"Hamra", "Badaro"}, cat.Areas())
	assert.Equal(t, []string{"Lebanese", "Mezze", "Italian"}, cat.Cuisines())
	assert.Equal(t, []string{"lively", "cozy"}, cat.Vibes())
	assert.Equal(t, []string{"vegetarian"}, cat.DietaryTags())
}

func TestByID(t *testing.T) {
	cat := New(Seed())

	r, ok := cat.ByID("r-001")
	require.True(t, ok)
	assert.Equal(t, "Em Sherif", r.Name)

	_, ok = cat.ByID("missing")
	assert.False(t, ok)
}

func TestTopRated(t *testing.T) {
	cat := New([]models.Restaurant{
		{ID: "a", Rating: 4.2},
		{ID: "b", Rating: 4.7},
		{ID: "c", Rating: 4.7},
		{ID: "d", Rating: 4.9},
	})

	top := cat.TopRated(3)
	require.Len(t, top, 3)
	assert.Equal(t, "d", top[0].ID)
	// equal ratings keep catalog order
	assert.Equal(t, "b", top[1].ID)
	assert.Equal(t, "c", top[2].ID)

	assert.Len(t, cat.TopRated(10), 4)
}

func TestSeedIsCoherent(t *testing.T) {
	seed := Seed()
	require.NotEmpty(t, seed)

	ids := map[string]bool{}
	for _, r := range seed {
		assert.False(t, ids[r.ID], "duplicate id %s", r.ID)
		ids[r.ID] = true

		assert.NotEmpty(t, r.Name)
		assert.NotEmpty(t, r.Area)
		assert.NotEmpty(t, r.Cuisines)
		assert.Contains(t, []string{"low", "mid", "high"}, r.Price)
		assert.GreaterOrEqual(t, r.Rating, 3.5)
	}

	// at least one walk-in-only place with a discount code
	walkInWithCode := false
	for _, r := range seed {
		if !r.Bookable && r.DiscountCode != "" {
			walkInWithCode = true
		}
	}
	assert.True(t, walkInWithCode)
}
