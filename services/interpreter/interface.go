package interpreter

import (
	"context"

	"tablemate/models"
)

// Intent labels returned by ClassifyAndExtract.
type Intent string

const (
	IntentGreetingOrOffTopic Intent = "greeting_or_offtopic"
	IntentRestaurantRequest  Intent = "restaurant_request"
	IntentSlotAnswer         Intent = "slot_answer"
	IntentRefinement         Intent = "refinement"
	IntentOther              Intent = "other"
)

// Extracted carries the structured fields pulled from one message. Empty
// or zero fields were not stated. Confidence is keyed by field name.
type Extracted struct {
	Area       string              `json:"area,omitempty"`
	Cuisines   []string            `json:"cuisines,omitempty"`
	Budget     *models.BudgetLevel `json:"budget,omitempty"`
	PartySize  int                 `json:"partySize,omitempty"`
	MealTime   string              `json:"mealTime,omitempty"`
	Vibe       string              `json:"vibe,omitempty"`
	Dietary    []string            `json:"dietary,omitempty"`
	Date       string              `json:"date,omitempty"`
	Time       string              `json:"time,omitempty"`
	Notes      string              `json:"notes,omitempty"`
	Confidence map[string]float64  `json:"confidence,omitempty"`
}

// Classification is the result of intent detection plus free extraction.
type Classification struct {
	Intent    Intent    `json:"intent"`
	Extracted Extracted `json:"extracted"`
}

// SlotValidation is the result of checking one reply against one pending
// slot. Normalized is empty and Confidence at most 0.3 when the reply does
// not answer the slot.
type SlotValidation struct {
	Value      string  `json:"value"`
	Normalized string  `json:"normalized"`
	Range      int     `json:"range,omitempty"` // budget only, 1..4
	Confidence float64 `json:"confidence"`
}

// Match pairs a free-text guess with its resolved catalog value.
type Match struct {
	Input      string  `json:"input"`
	Matched    string  `json:"matched"`
	Confidence float64 `json:"confidence"`
}

// CatalogResolution resolves raw area/cuisine guesses against the known
// catalog value lists. Unavailable flags mark guesses with no match.
type CatalogResolution struct {
	Area               Match `json:"areaMatch"`
	Cuisine            Match `json:"cuisineMatch"`
	AreaUnavailable    bool  `json:"areaUnavailable"`
	CuisineUnavailable bool  `json:"cuisineUnavailable"`
}

// AnswerAnalysis interprets a reply in the context of the exact question
// that was asked.
type AnswerAnalysis struct {
	Interpretation     string  `json:"interpretation"`
	Confidence         float64 `json:"confidence"`
	OffTopic           bool    `json:"isOffTopic"`
	OffTopicConfidence float64 `json:"offTopicConfidence"`
	Message            string  `json:"message,omitempty"`
}

// Interpreter converts free text into structured slot values and intent
// labels. Implementations hold no session state; callers supply all
// context on every call. Every operation must return deterministically
// degraded output rather than blocking when its backend is unavailable.
type Interpreter interface {
	ClassifyAndExtract(ctx context.Context, text string) (*Classification, error)
	ValidateSlot(ctx context.Context, slot models.SlotType, reply string, choices []string) (*SlotValidation, error)
	NormalizeToCatalog(ctx context.Context, rawArea, rawCuisine string, areas, cuisines []string) (*CatalogResolution, error)
	AnalyzeAnswer(ctx context.Context, question, answer string, slot models.SlotType, choices []string) (*AnswerAnalysis, error)
}

// LowConfidence is the cutoff at or below which interpreter output is
// treated as no extraction.
const LowConfidence = 0.3
