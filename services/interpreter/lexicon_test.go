package interpreter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsGreeting(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"hi", true},
		{"Hello!", true},
		{"hey there", true},
		{"good morning", true},
		{"thanks", true},
		{"hi, looking for sushi", false},
		{"hello I need a table for 4", false},
		{"", false},
		{"romantic italian tonight", false},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.want, IsGreeting(tt.text))
		})
	}
}

func TestMapBudget(t *testing.T) {
	tests := []struct {
		text      string
		wantRange int
		wantLabel string
		ok        bool
	}{
		{"somewhere cheap please", 1, "cheap", true},
		{"mid-range works", 2, "mid", true},
		{"high budget", 3, "high", true},
		{"my budget is high", 3, "high", true},
		{"what's your budget?", 0, "", false},
		{"something fancy", 3, "high", true},
		{"totally lavish", 4, "luxury", true},
		{"around 50-100 per person", 1, "cheap", true},
		{"150-200 a head", 2, "mid", true},
		{"300-400 range", 3, "high", true},
		{"500-800", 4, "luxury", true},
		{"no budget words here", 0, "", false},
		// bare numerals never map in free text
		{"2", 0, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got, ok := MapBudget(tt.text)
			require.Equal(t, tt.ok, ok)
			if ok {
				assert.Equal(t, tt.wantRange, got.Range)
				assert.Equal(t, tt.wantLabel, got.Label)
			}
		})
	}
}

func TestMapBudgetReply(t *testing.T) {
	got, ok := MapBudgetReply("2")
	require.True(t, ok)
	assert.Equal(t, 2, got.Range)
	assert.Equal(t, "mid", got.Label)

	_, ok = MapBudgetReply("5")
	assert.False(t, ok, "out-of-scale numeral must not map")

	got, ok = MapBudgetReply("let's splurge")
	require.True(t, ok)
	assert.Equal(t, 3, got.Range)
}

func TestHasBudgetCue(t *testing.T) {
	assert.True(t, HasBudgetCue("what's the budget like"))
	assert.True(t, HasBudgetCue("around 30 per person"))
	assert.True(t, HasBudgetCue("somewhere cheap"))
	assert.False(t, HasBudgetCue("table for two in Hamra"))
}

func TestMapMealTime(t *testing.T) {
	got, ok := MapMealTime("dinner for two")
	require.True(t, ok)
	assert.Equal(t, "dinner", got)

	// weak time-of-day words only count as direct replies
	_, ok = MapMealTime("noon works")
	assert.False(t, ok)

	got, ok = MapMealTimeReply("noon works")
	require.True(t, ok)
	assert.Equal(t, "lunch", got)
}

func TestParsePartySize(t *testing.T) {
	tests := []struct {
		text string
		want int
		ok   bool
	}{
		{"table for 4 tonight", 4, true},
		{"party of 6", 6, true},
		{"we are 3 people", 3, true},
		{"just a couple of friends", 2, true},
		// a stray numeral with no cue must not become a party size
		{"at 8", 0, false},
		{"budget of 100", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got, ok := ParsePartySize(tt.text)
			require.Equal(t, tt.ok, ok)
			if ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}

	// the direct reply accepts a bare number
	got, ok := ParsePartySizeReply("5")
	require.True(t, ok)
	assert.Equal(t, 5, got)
}

func TestMapCuisines(t *testing.T) {
	got := MapCuisines("sushi or maybe pasta")
	assert.Equal(t, []string{"Japanese", "Italian"}, got)

	assert.Empty(t, MapCuisines("somewhere nice"))
}

func TestGuessArea(t *testing.T) {
	got, ok := GuessArea("somewhere in Hamra for dinner")
	require.True(t, ok)
	assert.Equal(t, "Hamra", got)

	got, ok = GuessArea("near Mar Mikhael tonight")
	require.True(t, ok)
	assert.Equal(t, "Mar Mikhael", got)

	_, ok = GuessArea("i want sushi")
	assert.False(t, ok)
}

func TestMatchChoice(t *testing.T) {
	choices := []string{"Achrafieh", "Mar Mikhael", "Hamra"}

	got, conf := MatchChoice("hamra", choices)
	assert.Equal(t, "Hamra", got)
	assert.InDelta(t, 0.95, conf, 0.001)

	got, conf = MatchChoice("mar mik", choices)
	assert.Equal(t, "Mar Mikhael", got)
	assert.InDelta(t, 0.8, conf, 0.001)

	got, conf = MatchChoice("jounieh", choices)
	assert.Empty(t, got)
	assert.Zero(t, conf)
}

func TestParseClockTime(t *testing.T) {
	tests := []struct {
		text string
		want string
		ok   bool
	}{
		{"8pm", "20:00", true},
		{"7:15 PM", "19:15", true},
		{"19:30", "19:30", true},
		{"12am", "00:00", true},
		{"12pm", "12:00", true},
		// a bare number is too ambiguous to be a clock time
		{"8", "", false},
		{"eightish", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got, ok := ParseClockTime(tt.text)
			require.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
