package interpreter

import (
	"context"
	"regexp"
	"strconv"
	"strings"

	"tablemate/models"
)

// KeywordInterpreter is the deterministic, lexicon-driven implementation.
// It backs every Gemini call site as the degradation path and runs the
// whole engine on its own when no API key is configured.
type KeywordInterpreter struct{}

// NewKeywordInterpreter returns the deterministic interpreter.
func NewKeywordInterpreter() *KeywordInterpreter {
	return &KeywordInterpreter{}
}

var requestVerbs = []string{
	"find", "recommend", "suggest", "looking", "craving", "want", "take me",
	"book", "reserve", "somewhere", "place to eat", "restaurant",
}

var refineVerbs = []string{
	"change", "instead", "actually", "rather", "different", "something else", "switch",
}

func (k *KeywordInterpreter) ClassifyAndExtract(_ context.Context, text string) (*Classification, error) {
	if IsGreeting(text) {
		return &Classification{Intent: IntentGreetingOrOffTopic}, nil
	}

	ext := Extracted{Confidence: map[string]float64{}}
	if area, ok := GuessArea(text); ok {
		ext.Area = area
		ext.Confidence["area"] = 0.6
	}
	if cuisines := MapCuisines(text); len(cuisines) > 0 {
		ext.Cuisines = cuisines
		ext.Confidence["cuisine"] = 0.85
	}
	if budget, ok := MapBudget(text); ok {
		ext.Budget = &budget
		ext.Confidence["budget"] = 0.85
	}
	if meal, ok := MapMealTime(text); ok {
		ext.MealTime = meal
		ext.Confidence["mealTime"] = 0.85
	}
	if vibe, ok := MapVibe(text); ok {
		ext.Vibe = vibe
		ext.Confidence["vibe"] = 0.85
	}
	if n, ok := ParsePartySize(text); ok {
		ext.PartySize = n
		ext.Confidence["partySize"] = 0.85
	}
	if dietary := MapDietary(text); len(dietary) > 0 {
		ext.Dietary = dietary
		ext.Confidence["dietary"] = 0.85
	}
	if t, ok := ParseClockTime(text); ok {
		ext.Time = t
		ext.Confidence["time"] = 0.8
	}

	lower := strings.ToLower(text)
	intent := IntentOther
	switch {
	case containsAny(lower, refineVerbs):
		intent = IntentRefinement
	case containsAny(lower, requestVerbs) || countFields(ext) >= 2:
		intent = IntentRestaurantRequest
	case countFields(ext) == 1:
		intent = IntentSlotAnswer
	}

	return &Classification{Intent: intent, Extracted: ext}, nil
}

func containsAny(lower string, cues []string) bool {
	for _, cue := range cues {
		if strings.Contains(lower, cue) {
			return true
		}
	}
	return false
}

func countFields(ext Extracted) int {
	n := 0
	if ext.Area != "" {
		n++
	}
	if len(ext.Cuisines) > 0 {
		n++
	}
	if ext.Budget != nil {
		n++
	}
	if ext.MealTime != "" {
		n++
	}
	if ext.Vibe != "" {
		n++
	}
	if ext.PartySize != 0 {
		n++
	}
	if len(ext.Dietary) > 0 {
		n++
	}
	return n
}

var isoDate = regexp.MustCompile(`\b\d{4}-\d{2}-\d{2}\b`)

func (k *KeywordInterpreter) ValidateSlot(_ context.Context, slot models.SlotType, reply string, choices []string) (*SlotValidation, error) {
	noAnswer := &SlotValidation{Value: reply, Confidence: 0.2}

	switch slot {
	case models.SlotBudget:
		if b, ok := MapBudgetReply(reply); ok {
			return &SlotValidation{Value: reply, Normalized: b.Tier(), Range: b.Range, Confidence: 0.9}, nil
		}
	case models.SlotMealTime:
		if v, ok := MapMealTimeReply(reply); ok {
			return &SlotValidation{Value: reply, Normalized: v, Confidence: 0.9}, nil
		}
	case models.SlotVibe:
		if v, ok := MapVibe(reply); ok {
			return &SlotValidation{Value: reply, Normalized: v, Confidence: 0.9}, nil
		}
	case models.SlotPartySize:
		if n, ok := ParsePartySizeReply(reply); ok {
			return &SlotValidation{Value: reply, Normalized: strconv.Itoa(n), Confidence: 0.9}, nil
		}
	case models.SlotArea, models.SlotCuisine:
		guess := reply
		if slot == models.SlotArea {
			if a, ok := GuessArea(reply); ok {
				guess = a
			}
		} else if mapped := MapCuisines(reply); len(mapped) > 0 {
			guess = mapped[0]
		}
		if matched, conf := MatchChoice(guess, choices); conf > LowConfidence {
			return &SlotValidation{Value: reply, Normalized: matched, Confidence: conf}, nil
		}
	case models.SlotDate:
		if m := isoDate.FindString(reply); m != "" {
			return &SlotValidation{Value: reply, Normalized: m, Confidence: 0.9}, nil
		}
		// relative dates are resolved by the date capability, not here
	case models.SlotTime:
		if t, ok := ParseClockTime(reply); ok {
			return &SlotValidation{Value: reply, Normalized: t, Confidence: 0.9}, nil
		}
	case models.SlotNotes:
		return &SlotValidation{Value: reply, Normalized: strings.TrimSpace(reply), Confidence: 0.9}, nil
	}
	return noAnswer, nil
}

func (k *KeywordInterpreter) NormalizeToCatalog(_ context.Context, rawArea, rawCuisine string, areas, cuisines []string) (*CatalogResolution, error) {
	res := &CatalogResolution{}
	if rawArea != "" {
		matched, conf := MatchChoice(rawArea, areas)
		res.Area = Match{Input: rawArea, Matched: matched, Confidence: conf}
		res.AreaUnavailable = matched == ""
	}
	if rawCuisine != "" {
		matched, conf := MatchChoice(rawCuisine, cuisines)
		res.Cuisine = Match{Input: rawCuisine, Matched: matched, Confidence: conf}
		res.CuisineUnavailable = matched == ""
	}
	return res, nil
}

func (k *KeywordInterpreter) AnalyzeAnswer(ctx context.Context, _ string, answer string, slot models.SlotType, choices []string) (*AnswerAnalysis, error) {
	val, err := k.ValidateSlot(ctx, slot, answer, choices)
	if err != nil {
		return nil, err
	}
	if val.Normalized != "" && val.Confidence > LowConfidence {
		return &AnswerAnalysis{Interpretation: val.Normalized, Confidence: val.Confidence}, nil
	}
	return &AnswerAnalysis{
		OffTopic:           true,
		OffTopicConfidence: 0.7,
	}, nil
}
