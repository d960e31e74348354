package recommend

import (
	"testing"

	"tablemate/models"
	"tablemate/services/catalog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCatalog() *catalog.Catalog {
	return catalog.New([]models.Restaurant{
		{ID: "a", Name: "Trattoria", Area: "Hamra", Cuisines: []string{"Italian"},
			Price: "mid", Vibes: []string{"romantic"}, Rating: 4.0},
		{ID: "b", Name: "Sushi Bar", Area: "Hamra", Cuisines: []string{"Japanese"},
			Price: "high", Vibes: []string{"buzzing"}, Rating: 4.6},
		{ID: "c", Name: "Falafel House", Area: "Badaro", Cuisines: []string{"Lebanese"},
			Price: "low", Vibes: []string{"casual"}, Dietary: []string{"vegetarian"}, Rating: 4.3},
	})
}

func TestRecommendScoring(t *testing.T) {
	e := NewEngine(testCatalog())

	slots := models.Slots{
		Area:            "Hamra",
		CravingCuisines: []string{"Italian"},
		Vibe:            models.VibeRomantic,
		Budget:          "mid",
	}
	res := e.Recommend(slots, models.Profile{}, nil)

	// cuisine 3 + vibe 2 + budget 1 + rating 0.5*4.0 = 8.0
	assert.Equal(t, "a", res.Top.Restaurant.ID)
	assert.InDelta(t, 8.0, res.Top.Score, 0.001)
	assert.NotEmpty(t, res.Top.Reasons)
}

func TestRecommendProfileAffinity(t *testing.T) {
	e := NewEngine(testCatalog())

	prof := models.Profile{
		CuisineLikes: map[string]int{"Japanese": 4},
		VibeLikes:    map[string]int{models.VibeLively: 2},
	}
	res := e.Recommend(models.Slots{Area: "Hamra"}, prof, nil)

	// b: affinity 0.5*4 + vibe affinity 0.5*2 + rating 0.5*4.6 = 5.3
	// a: rating 0.5*4.0 = 2.0
	assert.Equal(t, "b", res.Top.Restaurant.ID)
	assert.InDelta(t, 5.3, res.Top.Score, 0.001)
}

func TestRecommendNeverEmpty(t *testing.T) {
	e := NewEngine(testCatalog())

	// nothing matches this area; the whole catalog is scored instead
	res := e.Recommend(models.Slots{Area: "Jounieh", Budget: "high"}, models.Profile{}, nil)
	assert.NotEmpty(t, res.Top.Restaurant.ID)
	assert.NotEmpty(t, res.All())
}

func TestRecommendDiversification(t *testing.T) {
	e := NewEngine(testCatalog())
	slots := models.Slots{Area: "Hamra"}

	first := e.Recommend(slots, models.Profile{}, nil)
	require.Equal(t, "b", first.Top.Restaurant.ID)

	// the shown top pick is demoted by exactly the repeat multiplier
	second := e.Recommend(slots, models.Profile{}, []string{"b"})
	assert.Equal(t, "a", second.Top.Restaurant.ID)
	for _, item := range second.All() {
		if item.Restaurant.ID == "b" {
			assert.InDelta(t, 0.5*4.6*0.3, item.Score, 0.001)
		}
	}
}

func TestRecommendBudgetFilterOnlyWhenExplicit(t *testing.T) {
	e := NewEngine(testCatalog())

	res := e.Recommend(models.Slots{Area: "Hamra", Budget: "high"}, models.Profile{}, nil)
	for _, item := range res.All() {
		assert.Equal(t, "high", item.Restaurant.Price)
	}

	// no budget slot: both Hamra records are eligible
	res = e.Recommend(models.Slots{Area: "Hamra"}, models.Profile{}, nil)
	assert.Len(t, res.All(), 2)
}

func TestRecommendDietaryFilter(t *testing.T) {
	e := NewEngine(testCatalog())

	res := e.Recommend(models.Slots{Dietary: []string{"vegetarian"}}, models.Profile{}, nil)
	assert.Equal(t, "c", res.Top.Restaurant.ID)
	assert.Len(t, res.All(), 1)
}

func TestRecommendRequest(t *testing.T) {
	e := NewEngine(testCatalog())

	req := models.ActiveRequest{
		Area:    "Hamra",
		Cuisine: "Japanese",
		Budget:  &models.BudgetLevel{Range: 3, Label: "high"},
	}
	res := e.RecommendRequest(req)

	// b: cuisine 10 + budget exact 5 + rating 0.5*4.6 = 17.3
	// a: budget adjacent 2 + rating 0.5*4.0 = 4.0
	assert.Equal(t, "b", res.Top.Restaurant.ID)
	assert.InDelta(t, 17.3, res.Top.Score, 0.001)
}

func TestRecommendRequestAreaFallback(t *testing.T) {
	e := NewEngine(testCatalog())

	res := e.RecommendRequest(models.ActiveRequest{Area: "Jounieh", Cuisine: "Italian"})
	// unknown area falls back to the top-rated records
	require.NotEmpty(t, res.All())
	assert.Len(t, res.All(), 3)
}

func TestRecommendRequestNoteKeywords(t *testing.T) {
	e := NewEngine(testCatalog())

	req := models.ActiveRequest{Area: "Hamra", Notes: "something romantic please"}
	res := e.RecommendRequest(req)

	// a: note keyword 3 + rating 2.0 = 5.0 beats b's rating 2.3
	assert.Equal(t, "a", res.Top.Restaurant.ID)
	assert.InDelta(t, 5.0, res.Top.Score, 0.001)
}

func TestVibeCategoriesOf(t *testing.T) {
	got := VibeCategoriesOf([]string{"rooftop", "terrace", "buzzing", "unknown-tag"})
	assert.Equal(t, []string{models.VibeOutdoor, models.VibeLively}, got)
}
