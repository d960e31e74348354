package interpreter

import (
	"context"
	"testing"

	"tablemate/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyAndExtractGreeting(t *testing.T) {
	k := NewKeywordInterpreter()

	cls, err := k.ClassifyAndExtract(context.Background(), "hey there")
	require.NoError(t, err)
	assert.Equal(t, IntentGreetingOrOffTopic, cls.Intent)
	assert.Zero(t, countFields(cls.Extracted))
}

func TestClassifyAndExtractFullRequest(t *testing.T) {
	k := NewKeywordInterpreter()

	cls, err := k.ClassifyAndExtract(context.Background(),
		"romantic italian tonight in Hamra, mid budget, table for 2")
	require.NoError(t, err)

	assert.Equal(t, IntentRestaurantRequest, cls.Intent)
	assert.Equal(t, "Hamra", cls.Extracted.Area)
	assert.Equal(t, []string{"Italian"}, cls.Extracted.Cuisines)
	require.NotNil(t, cls.Extracted.Budget)
	assert.Equal(t, 2, cls.Extracted.Budget.Range)
	assert.Equal(t, "dinner", cls.Extracted.MealTime)
	assert.Equal(t, models.VibeRomantic, cls.Extracted.Vibe)
	assert.Equal(t, 2, cls.Extracted.PartySize)
}

func TestClassifyAndExtractRefinement(t *testing.T) {
	k := NewKeywordInterpreter()

	cls, err := k.ClassifyAndExtract(context.Background(), "actually make it japanese instead")
	require.NoError(t, err)
	assert.Equal(t, IntentRefinement, cls.Intent)
	assert.Equal(t, []string{"Japanese"}, cls.Extracted.Cuisines)
}

func TestValidateSlot(t *testing.T) {
	k := NewKeywordInterpreter()
	ctx := context.Background()

	t.Run("budget reply accepts bare numeral", func(t *testing.T) {
		val, err := k.ValidateSlot(ctx, models.SlotBudget, "2", nil)
		require.NoError(t, err)
		assert.Equal(t, "mid", val.Normalized)
		assert.Equal(t, 2, val.Range)
		assert.Greater(t, val.Confidence, LowConfidence)
	})

	t.Run("area reply resolves against choices", func(t *testing.T) {
		val, err := k.ValidateSlot(ctx, models.SlotArea, "hamra", []string{"Hamra", "Badaro"})
		require.NoError(t, err)
		assert.Equal(t, "Hamra", val.Normalized)
	})

	t.Run("unresolvable answer stays low confidence", func(t *testing.T) {
		val, err := k.ValidateSlot(ctx, models.SlotBudget, "whatever you think", nil)
		require.NoError(t, err)
		assert.Empty(t, val.Normalized)
		assert.LessOrEqual(t, val.Confidence, LowConfidence)
	})

	t.Run("iso date passes through", func(t *testing.T) {
		val, err := k.ValidateSlot(ctx, models.SlotDate, "2026-09-05 works", nil)
		require.NoError(t, err)
		assert.Equal(t, "2026-09-05", val.Normalized)
	})

	t.Run("notes are kept verbatim", func(t *testing.T) {
		val, err := k.ValidateSlot(ctx, models.SlotNotes, " window seat please ", nil)
		require.NoError(t, err)
		assert.Equal(t, "window seat please", val.Normalized)
	})
}

func TestNormalizeToCatalog(t *testing.T) {
	k := NewKeywordInterpreter()

	res, err := k.NormalizeToCatalog(context.Background(), "hamra", "sushi place",
		[]string{"Hamra", "Badaro"}, []string{"Japanese", "Lebanese"})
	require.NoError(t, err)

	assert.Equal(t, "Hamra", res.Area.Matched)
	assert.False(t, res.AreaUnavailable)
	// "sushi place" is not itself a catalog cuisine; normalization works
	// on the already-mapped name
	assert.True(t, res.CuisineUnavailable)

	res, err = k.NormalizeToCatalog(context.Background(), "jounieh", "",
		[]string{"Hamra"}, nil)
	require.NoError(t, err)
	assert.True(t, res.AreaUnavailable)
}

func TestAnalyzeAnswerOffTopic(t *testing.T) {
	k := NewKeywordInterpreter()

	got, err := k.AnalyzeAnswer(context.Background(),
		"What's the budget — cheap, mid, or high?", "do you like football?",
		models.SlotBudget, nil)
	require.NoError(t, err)
	assert.True(t, got.OffTopic)
	assert.Greater(t, got.OffTopicConfidence, 0.5)

	got, err = k.AnalyzeAnswer(context.Background(),
		"What's the budget — cheap, mid, or high?", "mid",
		models.SlotBudget, nil)
	require.NoError(t, err)
	assert.False(t, got.OffTopic)
	assert.Equal(t, "mid", got.Interpretation)
}
