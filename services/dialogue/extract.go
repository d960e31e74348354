package dialogue

import (
	"context"
	"strconv"
	"strings"

	"tablemate/models"
	"tablemate/services/catalog"
	"tablemate/services/interpreter"

	"go.uber.org/zap"
)

// freeExtractionCutoff is the confidence bar for fields pulled from free
// text; it is stricter than the bar for a reply to a direct question.
const freeExtractionCutoff = 0.4

// Extraction is the validated partial result of one pipeline pass. Fields
// holds only values that cleared every gate; Unavailable lists slot types
// whose stated value has no catalog match, so the controller can re-prompt
// with examples instead of silently storing it.
type Extraction struct {
	Intent      interpreter.Intent
	Fields      models.Slots
	Unavailable []models.SlotType
	Confidence  float64
}

// Empty reports whether the pass produced nothing.
func (e *Extraction) Empty() bool {
	return countSet(e.Fields) == 0 && len(e.Unavailable) == 0
}

func countSet(s models.Slots) int {
	n := 0
	if s.Area != "" {
		n++
	}
	if s.MealTime != "" {
		n++
	}
	if s.PartySize != 0 {
		n++
	}
	if s.Budget != "" {
		n++
	}
	if len(s.CravingCuisines) > 0 {
		n++
	}
	if s.Vibe != "" {
		n++
	}
	if len(s.Dietary) > 0 {
		n++
	}
	return n
}

// Pipeline merges interpreter output into the slot model, resolving values
// against the catalog and rejecting low-confidence or unevidenced
// extractions.
type Pipeline struct {
	Interp interpreter.Interpreter
	Cat    *catalog.Catalog
	Log    *zap.Logger
}

// NewPipeline builds an extraction pipeline.
func NewPipeline(interp interpreter.Interpreter, cat *catalog.Catalog, log *zap.Logger) *Pipeline {
	return &Pipeline{Interp: interp, Cat: cat, Log: log}
}

// Extract runs one pass over the user's message. pending and lastQuestion
// describe the question asked last turn, when there was one; they
// materially change interpretation of short answers.
func (p *Pipeline) Extract(ctx context.Context, text string, current models.Slots, pending models.SlotType, lastQuestion string) *Extraction {
	ext := &Extraction{}

	// bare greetings and short acknowledgments never reach the interpreter
	if interpreter.IsGreeting(text) {
		ext.Intent = interpreter.IntentGreetingOrOffTopic
		return ext
	}

	// a reply to the pending question is validated first and takes
	// precedence over free extraction for the same slot
	if pending != models.SlotNone {
		p.validatePending(ctx, text, pending, lastQuestion, ext)
	}

	cls, err := p.Interp.ClassifyAndExtract(ctx, text)
	if err != nil {
		p.Log.Warn("classify failed, treating as no extraction", zap.Error(err))
		return ext
	}
	ext.Intent = cls.Intent
	p.applyFree(ctx, text, cls.Extracted, pending, ext)

	if ext.Confidence == 0 && !ext.Empty() {
		ext.Confidence = 0.8
	}
	return ext
}

func (p *Pipeline) validatePending(ctx context.Context, text string, pending models.SlotType, lastQuestion string, ext *Extraction) {
	choices := p.choicesFor(pending)

	// for area and cuisine an unresolved direct answer usually means an
	// out-of-catalog value; flag it so the controller re-prompts with
	// examples rather than treating the answer as off-topic
	if (pending == models.SlotArea || pending == models.SlotCuisine) && !resolvable(text, pending, choices) {
		ext.Unavailable = append(ext.Unavailable, pending)
		return
	}

	// the cuisine question doubles as the vibe question
	if pending == models.SlotCuisine {
		if v, ok := interpreter.MapVibe(text); ok {
			ext.Fields.Vibe = v
			ext.Confidence = 0.85
			return
		}
	}

	analysis, err := p.Interp.AnalyzeAnswer(ctx, lastQuestion, text, pending, choices)
	if err == nil && analysis.OffTopic && analysis.OffTopicConfidence > interpreter.LowConfidence {
		return
	}

	val, err := p.Interp.ValidateSlot(ctx, pending, text, choices)
	if err != nil || val.Normalized == "" || val.Confidence <= interpreter.LowConfidence {
		return
	}

	switch pending {
	case models.SlotArea:
		ext.Fields.Area = val.Normalized
	case models.SlotMealTime:
		ext.Fields.MealTime = val.Normalized
	case models.SlotPartySize:
		if n, err := strconv.Atoi(val.Normalized); err == nil && n > 0 {
			ext.Fields.PartySize = n
		}
	case models.SlotBudget:
		ext.Fields.Budget = val.Normalized
	case models.SlotCuisine:
		ext.Fields.CravingCuisines = []string{val.Normalized}
	case models.SlotVibe:
		ext.Fields.Vibe = val.Normalized
	case models.SlotDietary:
		ext.Fields.Dietary = interpreter.MapDietary(text)
	}
	ext.Confidence = val.Confidence
}

// resolvable reports whether a direct area or cuisine answer can be
// matched against the catalog by any route: the raw text, a location
// phrase inside it, a mapped cuisine word, or a vibe answer to the
// cuisine question.
func resolvable(text string, pending models.SlotType, choices []string) bool {
	if _, conf := interpreter.MatchChoice(text, choices); conf > 0 {
		return true
	}
	if pending == models.SlotArea {
		if guess, ok := interpreter.GuessArea(text); ok {
			_, conf := interpreter.MatchChoice(guess, choices)
			return conf > 0
		}
		return false
	}
	if _, ok := interpreter.MapVibe(text); ok {
		return true
	}
	for _, mapped := range interpreter.MapCuisines(text) {
		if _, conf := interpreter.MatchChoice(mapped, choices); conf > 0 {
			return true
		}
	}
	return false
}

// applyFree folds the free extraction in, applying the domain-resolution
// and plausibility gates. Values already set by direct validation win.
func (p *Pipeline) applyFree(ctx context.Context, text string, free interpreter.Extracted, pending models.SlotType, ext *Extraction) {
	conf := func(field string) float64 {
		if free.Confidence == nil {
			return 1
		}
		if c, ok := free.Confidence[field]; ok {
			return c
		}
		return 1
	}
	shortMessage := len(interpreter.Tokens(text)) <= 3

	if ext.Fields.Area == "" && free.Area != "" && conf("area") > interpreter.LowConfidence {
		res, err := p.Interp.NormalizeToCatalog(ctx, free.Area, "", p.Cat.Areas(), p.Cat.Cuisines())
		switch {
		case err != nil:
			p.Log.Warn("area normalization failed", zap.Error(err))
		case res.AreaUnavailable:
			ext.Unavailable = append(ext.Unavailable, models.SlotArea)
		case res.Area.Matched != "":
			ext.Fields.Area = res.Area.Matched
		}
	}

	// short messages are assumed to carry only a location, so free cuisine
	// extraction is rejected outright for them
	if len(ext.Fields.CravingCuisines) == 0 && len(free.Cuisines) > 0 &&
		!shortMessage && conf("cuisine") >= freeExtractionCutoff {
		for _, raw := range free.Cuisines {
			res, err := p.Interp.NormalizeToCatalog(ctx, "", raw, p.Cat.Areas(), p.Cat.Cuisines())
			switch {
			case err != nil:
				p.Log.Warn("cuisine normalization failed", zap.Error(err))
			case res.CuisineUnavailable:
				ext.Unavailable = append(ext.Unavailable, models.SlotCuisine)
			case res.Cuisine.Matched != "":
				ext.Fields.CravingCuisines = appendUnique(ext.Fields.CravingCuisines, res.Cuisine.Matched)
			}
		}
	}

	// keyword evidence gates: a field the message never actually stated is
	// dropped, however confident the interpreter was
	if ext.Fields.Budget == "" && free.Budget != nil &&
		conf("budget") >= freeExtractionCutoff && interpreter.HasBudgetCue(text) {
		ext.Fields.Budget = free.Budget.Tier()
	}
	if ext.Fields.MealTime == "" && free.MealTime != "" &&
		conf("mealTime") >= freeExtractionCutoff && interpreter.HasMealCue(text) {
		ext.Fields.MealTime = free.MealTime
	}
	if ext.Fields.Vibe == "" && free.Vibe != "" &&
		conf("vibe") >= freeExtractionCutoff && interpreter.HasVibeCue(text) {
		ext.Fields.Vibe = free.Vibe
	}
	if ext.Fields.PartySize == 0 && free.PartySize > 0 && conf("partySize") >= freeExtractionCutoff {
		if _, ok := interpreter.ParsePartySizeReply(text); ok || pending == models.SlotPartySize {
			ext.Fields.PartySize = free.PartySize
		}
	}
	if len(ext.Fields.Dietary) == 0 && len(free.Dietary) > 0 {
		ext.Fields.Dietary = free.Dietary
	}
}

func appendUnique(list []string, v string) []string {
	for _, existing := range list {
		if strings.EqualFold(existing, v) {
			return list
		}
	}
	return append(list, v)
}

func (p *Pipeline) choicesFor(slot models.SlotType) []string {
	switch slot {
	case models.SlotArea:
		return p.Cat.Areas()
	case models.SlotCuisine:
		return p.Cat.Cuisines()
	case models.SlotVibe:
		return []string{
			models.VibeRomantic, models.VibeLively, models.VibeQuiet,
			models.VibeOutdoor, models.VibeFamily, models.VibeBusiness,
		}
	case models.SlotMealTime:
		return []string{
			models.MealBreakfast, models.MealLunch, models.MealDinner,
			models.MealCoffee, models.MealDrinks, models.MealLateNight,
		}
	}
	return nil
}

// Merge folds a validated partial into the current slots. Outside a
// refine context, values that are already set are never overwritten;
// cuisines and dietary accumulate. In a refine context new values replace
// old ones.
func Merge(current, add models.Slots, refining bool) models.Slots {
	out := current
	if add.Area != "" && (refining || current.Area == "") {
		out.Area = add.Area
	}
	if add.MealTime != "" && (refining || current.MealTime == "") {
		out.MealTime = add.MealTime
	}
	if add.PartySize != 0 && (refining || current.PartySize == 0) {
		out.PartySize = add.PartySize
	}
	if add.Budget != "" && (refining || current.Budget == "") {
		out.Budget = add.Budget
	}
	if len(add.CravingCuisines) > 0 {
		if refining {
			out.CravingCuisines = add.CravingCuisines
		} else {
			for _, c := range add.CravingCuisines {
				out.CravingCuisines = appendUnique(out.CravingCuisines, c)
			}
		}
	}
	if add.Vibe != "" && (refining || current.Vibe == "") {
		out.Vibe = add.Vibe
	}
	for _, d := range add.Dietary {
		out.Dietary = appendUnique(out.Dietary, d)
	}
	return out
}
