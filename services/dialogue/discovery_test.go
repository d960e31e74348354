package dialogue

import (
	"testing"

	"tablemate/models"
	"tablemate/services/catalog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextQuestionPriorityOrder(t *testing.T) {
	p := NewPolicy(catalog.New(catalog.Seed()))

	slots := models.Slots{}
	order := []models.SlotType{}
	for i := 0; i < 10; i++ {
		q := p.NextQuestion(slots, models.Profile{})
		if q == nil {
			break
		}
		order = append(order, q.Slot)
		// simulate an answer so the walk advances
		switch q.Slot {
		case models.SlotArea:
			slots.Area = "Hamra"
		case models.SlotMealTime:
			slots.MealTime = models.MealDinner
		case models.SlotPartySize:
			slots.PartySize = 2
		case models.SlotBudget:
			slots.Budget = models.BudgetMid
		case models.SlotCuisine:
			slots.CravingCuisines = []string{"Lebanese"}
		}
	}

	// the meal-time answer doubles as the flavor signal, so the walk is
	// complete once the budget lands and cuisine is never asked
	assert.Equal(t, []models.SlotType{
		models.SlotArea, models.SlotMealTime, models.SlotPartySize,
		models.SlotBudget,
	}, order)
	assert.True(t, slots.Complete())
}

func TestNextQuestionNilWhenComplete(t *testing.T) {
	p := NewPolicy(catalog.New(catalog.Seed()))

	slots := models.Slots{
		Area: "Hamra", PartySize: 4, Budget: models.BudgetHigh, Vibe: models.VibeRomantic,
		MealTime: models.MealDinner,
	}
	assert.Nil(t, p.NextQuestion(slots, models.Profile{}))

	// complete through the vibe alone: meal time must not be backfilled
	slots.MealTime = ""
	require.True(t, slots.Complete())
	assert.Equal(t, models.SlotNone, slots.NextSlot())
	assert.Nil(t, p.NextQuestion(slots, models.Profile{}))

	// complete through meal time with no cuisine or vibe: same rule
	slots.MealTime = models.MealDinner
	slots.Vibe = ""
	require.True(t, slots.Complete())
	assert.Nil(t, p.NextQuestion(slots, models.Profile{}))
}

func TestNextQuestionNeverReasksFilledSlot(t *testing.T) {
	p := NewPolicy(catalog.New(catalog.Seed()))

	slots := models.Slots{Area: "Badaro", MealTime: models.MealLunch}
	q := p.NextQuestion(slots, models.Profile{})
	require.NotNil(t, q)
	assert.Equal(t, models.SlotPartySize, q.Slot)
}

func TestBudgetQuestionUsesProfileDefault(t *testing.T) {
	p := NewPolicy(catalog.New(catalog.Seed()))

	slots := models.Slots{Area: "Hamra", MealTime: models.MealDinner, PartySize: 2}
	q := p.NextQuestion(slots, models.Profile{DefaultBudget: models.BudgetMid})
	require.NotNil(t, q)
	assert.Equal(t, models.SlotBudget, q.Slot)
	assert.Contains(t, q.Text, "Last time you went mid")
}

func TestNextRequestQuestionOrder(t *testing.T) {
	p := NewPolicy(catalog.New(catalog.Seed()))

	req := models.ActiveRequest{}
	q := p.NextRequestQuestion(req)
	require.NotNil(t, q)
	assert.Equal(t, models.SlotArea, q.Slot)

	req.Area = "Hamra"
	q = p.NextRequestQuestion(req)
	require.NotNil(t, q)
	assert.Equal(t, models.SlotCuisine, q.Slot)

	req.Cuisine = "Lebanese"
	req.Budget = &models.BudgetLevel{Range: 2, Label: "mid"}
	q = p.NextRequestQuestion(req)
	require.NotNil(t, q)
	assert.Equal(t, models.SlotDate, q.Slot)
}
