package dialogue

import (
	"context"
	"testing"

	"tablemate/models"
	"tablemate/services/catalog"
	"tablemate/services/interpreter"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testPipeline() *Pipeline {
	cat := catalog.New(catalog.Seed())
	return NewPipeline(interpreter.NewKeywordInterpreter(), cat, zap.NewNop())
}

func TestExtractGreetingGuard(t *testing.T) {
	p := testPipeline()

	for _, text := range []string{"hi", "hey there", "thanks", "ok"} {
		ext := p.Extract(context.Background(), text, models.Slots{}, models.SlotNone, "")
		assert.True(t, ext.Empty(), "greeting %q must extract nothing", text)
		assert.Equal(t, interpreter.IntentGreetingOrOffTopic, ext.Intent)
	}
}

func TestExtractFullSentence(t *testing.T) {
	p := testPipeline()

	ext := p.Extract(context.Background(),
		"romantic italian tonight in Hamra for 2, mid budget",
		models.Slots{}, models.SlotNone, "")

	require.False(t, ext.Empty())
	assert.Equal(t, interpreter.IntentRestaurantRequest, ext.Intent)
	assert.Equal(t, "Hamra", ext.Fields.Area)
	assert.Equal(t, []string{"Italian"}, ext.Fields.CravingCuisines)
	assert.Equal(t, models.MealDinner, ext.Fields.MealTime)
	assert.Equal(t, models.VibeRomantic, ext.Fields.Vibe)
	assert.Equal(t, 2, ext.Fields.PartySize)
	assert.Equal(t, models.BudgetMid, ext.Fields.Budget)
}

func TestExtractShortMessageRejectsFreeCuisine(t *testing.T) {
	p := testPipeline()

	// a three-token reply to the area question must not pick up a cuisine
	ext := p.Extract(context.Background(), "sushi in Hamra",
		models.Slots{}, models.SlotArea, "Which part of town should I look in?")

	assert.Empty(t, ext.Fields.CravingCuisines)
	assert.Equal(t, "Hamra", ext.Fields.Area)
}

func TestExtractPendingBudgetNumeral(t *testing.T) {
	p := testPipeline()

	// "2" answers the budget question; free text alone would reject it
	ext := p.Extract(context.Background(), "2",
		models.Slots{}, models.SlotBudget, "What's the budget — cheap, mid, or high?")
	assert.Equal(t, models.BudgetMid, ext.Fields.Budget)

	ext = p.Extract(context.Background(), "2", models.Slots{}, models.SlotNone, "")
	assert.Empty(t, ext.Fields.Budget)
}

func TestExtractUnavailableArea(t *testing.T) {
	p := testPipeline()

	ext := p.Extract(context.Background(), "Jounieh",
		models.Slots{}, models.SlotArea, "Which part of town should I look in?")

	assert.Empty(t, ext.Fields.Area)
	assert.Contains(t, ext.Unavailable, models.SlotArea)
}

func TestExtractCuisineQuestionAcceptsVibe(t *testing.T) {
	p := testPipeline()

	ext := p.Extract(context.Background(), "something romantic",
		models.Slots{}, models.SlotCuisine, "Any cuisine you're craving, or a vibe you're after?")

	assert.Equal(t, models.VibeRomantic, ext.Fields.Vibe)
	assert.Empty(t, ext.Fields.CravingCuisines)
}

func TestExtractOffTopicAnswerFillsNothing(t *testing.T) {
	p := testPipeline()

	ext := p.Extract(context.Background(), "do you watch football",
		models.Slots{}, models.SlotBudget, "What's the budget — cheap, mid, or high?")
	assert.True(t, ext.Empty())
}

func TestMergeNoOverwrite(t *testing.T) {
	current := models.Slots{Area: "Hamra", Budget: models.BudgetMid,
		CravingCuisines: []string{"Lebanese"}}
	add := models.Slots{Area: "Badaro", Budget: models.BudgetHigh,
		CravingCuisines: []string{"Italian"}, PartySize: 4}

	got := Merge(current, add, false)
	assert.Equal(t, "Hamra", got.Area)
	assert.Equal(t, models.BudgetMid, got.Budget)
	// cuisines accumulate outside a refine context
	assert.Equal(t, []string{"Lebanese", "Italian"}, got.CravingCuisines)
	assert.Equal(t, 4, got.PartySize)
}

func TestMergeRefiningReplaces(t *testing.T) {
	current := models.Slots{Area: "Hamra", CravingCuisines: []string{"Lebanese"}}
	add := models.Slots{Area: "Badaro", CravingCuisines: []string{"Italian"}}

	got := Merge(current, add, true)
	assert.Equal(t, "Badaro", got.Area)
	assert.Equal(t, []string{"Italian"}, got.CravingCuisines)
}
