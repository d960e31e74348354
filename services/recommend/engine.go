package recommend

import (
	"sort"
	"strings"

	"tablemate/models"
	"tablemate/services/catalog"
)

// Scoring weights for the discovery (Slots) flow.
const (
	cuisineWeight    = 3.0
	vibeWeight       = 2.0
	budgetWeight     = 1.0
	dietaryWeight    = 1.0
	affinityWeight   = 0.5 // per historical like
	ratingWeight     = 0.5
	repeatMultiplier = 0.3 // demotes previously shown picks without excluding them
)

// Scoring weights for the booking (ActiveRequest) flow, which leans much
// harder on its single cuisine.
const (
	reqCuisineWeight        = 10.0
	reqBudgetExactWeight    = 5.0
	reqBudgetAdjacentWeight = 2.0
	reqNoteKeywordWeight    = 3.0
)

// vibeCategories maps raw catalog vibe tags onto the requestable vibe
// enum.
var vibeCategories = map[string]string{
	"romantic": models.VibeRomantic, "intimate": models.VibeRomantic, "elegant": models.VibeRomantic,
	"lively": models.VibeLively, "buzzing": models.VibeLively, "energetic": models.VibeLively, "party": models.VibeLively,
	"quiet": models.VibeQuiet, "calm": models.VibeQuiet, "cozy": models.VibeQuiet, "serene": models.VibeQuiet,
	"outdoor": models.VibeOutdoor, "terrace": models.VibeOutdoor, "rooftop": models.VibeOutdoor, "garden": models.VibeOutdoor,
	"family": models.VibeFamily, "casual": models.VibeFamily, "kid-friendly": models.VibeFamily,
	"business": models.VibeBusiness, "formal": models.VibeBusiness, "professional": models.VibeBusiness,
}

// budget tier to catalog price tier
var tierToPrice = map[string]string{
	models.BudgetCheap: "low",
	models.BudgetMid:   "mid",
	models.BudgetHigh:  "high",
}

// Result is one ranked recommendation set: a top pick plus up to two
// alternatives.
type Result struct {
	Top          models.RecommendedItem
	Alternatives []models.RecommendedItem
}

// All returns top plus alternatives in rank order.
func (r Result) All() []models.RecommendedItem {
	return append([]models.RecommendedItem{r.Top}, r.Alternatives...)
}

// Engine scores the catalog against accumulated preferences.
type Engine struct {
	Cat *catalog.Catalog
}

// NewEngine builds an Engine over the given catalog.
func NewEngine(cat *catalog.Catalog) *Engine {
	return &Engine{Cat: cat}
}

// Recommend filters and scores the catalog for the discovery flow.
// Filtering never yields an empty result set: when every record is
// filtered out the full catalog is scored instead.
func (e *Engine) Recommend(slots models.Slots, profile models.Profile, shownIDs []string) Result {
	candidates := e.filter(slots)
	if len(candidates) == 0 {
		candidates = e.Cat.All()
	}

	scored := make([]models.RecommendedItem, 0, len(candidates))
	for _, r := range candidates {
		score := e.score(r, slots, profile)
		scored = append(scored, models.RecommendedItem{Restaurant: r, Score: score})
	}

	diversify(scored, shownIDs)
	sort.SliceStable(scored, func(i, j int) bool { return scored[i].Score > scored[j].Score })

	return e.assemble(scored, slots)
}

func (e *Engine) filter(slots models.Slots) []models.Restaurant {
	var out []models.Restaurant
	for _, r := range e.Cat.All() {
		if slots.Area != "" && !areaMatches(r.Area, slots.Area) {
			continue
		}
		// budget filters only when explicitly requested, never inferred
		// from profile defaults
		if slots.Budget != "" && r.Price != tierToPrice[slots.Budget] {
			continue
		}
		if !dietaryMatches(r.Dietary, slots.Dietary) {
			continue
		}
		if isAvoided(r, slots.AvoidCuisines, slots.AvoidTags) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// areaMatches tolerates partial and abbreviated input in both directions.
func areaMatches(catalogArea, requested string) bool {
	a := strings.ToLower(catalogArea)
	b := strings.ToLower(requested)
	return strings.Contains(a, b) || strings.Contains(b, a)
}

// dietaryMatches requires every requested tag to substring-match some
// catalog dietary tag.
func dietaryMatches(catalogTags, requested []string) bool {
	for _, want := range requested {
		found := false
		for _, have := range catalogTags {
			if strings.Contains(strings.ToLower(have), strings.ToLower(want)) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func isAvoided(r models.Restaurant, avoidCuisines, avoidTags []string) bool {
	for _, avoid := range avoidCuisines {
		for _, c := range r.Cuisines {
			if cuisineMatches(c, avoid) {
				return true
			}
		}
	}
	for _, avoid := range avoidTags {
		for _, v := range r.Vibes {
			if strings.EqualFold(v, avoid) {
				return true
			}
		}
	}
	return false
}

func cuisineMatches(catalogCuisine, requested string) bool {
	a := strings.ToLower(catalogCuisine)
	b := strings.ToLower(requested)
	return strings.Contains(a, b) || strings.Contains(b, a)
}

func (e *Engine) score(r models.Restaurant, slots models.Slots, profile models.Profile) float64 {
	score := 0.0

	for _, want := range slots.CravingCuisines {
		for _, have := range r.Cuisines {
			if cuisineMatches(have, want) {
				score += cuisineWeight
				break
			}
		}
	}

	if slots.Vibe != "" && hasVibeCategory(r.Vibes, slots.Vibe) {
		score += vibeWeight
	}

	if slots.Budget != "" && r.Price == tierToPrice[slots.Budget] {
		score += budgetWeight
	}

	for _, want := range slots.Dietary {
		for _, have := range r.Dietary {
			if strings.Contains(strings.ToLower(have), strings.ToLower(want)) {
				score += dietaryWeight
				break
			}
		}
	}

	// long-lived profile affinity
	for liked, count := range profile.CuisineLikes {
		for _, have := range r.Cuisines {
			if cuisineMatches(have, liked) {
				score += affinityWeight * float64(count)
				break
			}
		}
	}
	for _, cat := range vibeCategoriesOf(r.Vibes) {
		if count := profile.VibeLikes[cat]; count > 0 {
			score += affinityWeight * float64(count)
		}
	}

	score += ratingWeight * r.Rating
	return score
}

// hasVibeCategory reports whether any catalog vibe tag maps onto the
// requested vibe.
func hasVibeCategory(tags []string, want string) bool {
	for _, t := range tags {
		if vibeCategories[strings.ToLower(t)] == want {
			return true
		}
	}
	return false
}

// VibeCategoriesOf returns the distinct requestable vibe categories a
// restaurant's raw tags map onto. Profile learning uses it to credit
// the right category after a booking.
func VibeCategoriesOf(tags []string) []string {
	return vibeCategoriesOf(tags)
}

// vibeCategoriesOf returns the distinct categories of a tag set.
func vibeCategoriesOf(tags []string) []string {
	seen := map[string]bool{}
	var out []string
	for _, t := range tags {
		if cat, ok := vibeCategories[strings.ToLower(t)]; ok && !seen[cat] {
			seen[cat] = true
			out = append(out, cat)
		}
	}
	return out
}

// diversify multiplies the score of previously shown picks by the repeat
// multiplier. A dominant repeat can still surface.
func diversify(scored []models.RecommendedItem, shownIDs []string) {
	if len(shownIDs) == 0 {
		return
	}
	shown := make(map[string]bool, len(shownIDs))
	for _, id := range shownIDs {
		shown[id] = true
	}
	for i := range scored {
		if shown[scored[i].Restaurant.ID] {
			scored[i].Score *= repeatMultiplier
		}
	}
}

func (e *Engine) assemble(scored []models.RecommendedItem, slots models.Slots) Result {
	limit := 3
	if len(scored) < limit {
		limit = len(scored)
	}
	picks := scored[:limit]
	for i := range picks {
		picks[i].Reasons = reasons(picks[i].Restaurant, slots)
	}
	res := Result{Top: picks[0]}
	if len(picks) > 1 {
		res.Alternatives = picks[1:]
	}
	return res
}

// note keywords recognized in booking-flow free-text notes
var noteKeywords = []string{"romantic", "lively", "quiet", "family", "rooftop", "view"}

// RecommendRequest scores the catalog for the booking flow. Area is
// required; when nothing matches it, the three globally highest-rated
// records are returned regardless of any other field.
func (e *Engine) RecommendRequest(req models.ActiveRequest) Result {
	var candidates []models.Restaurant
	for _, r := range e.Cat.All() {
		if areaMatches(r.Area, req.Area) {
			candidates = append(candidates, r)
		}
	}
	if len(candidates) == 0 {
		candidates = e.Cat.TopRated(3)
	}

	scored := make([]models.RecommendedItem, 0, len(candidates))
	for _, r := range candidates {
		scored = append(scored, models.RecommendedItem{Restaurant: r, Score: e.scoreRequest(r, req)})
	}
	sort.SliceStable(scored, func(i, j int) bool { return scored[i].Score > scored[j].Score })

	return e.assemble(scored, requestAsSlots(req))
}

func (e *Engine) scoreRequest(r models.Restaurant, req models.ActiveRequest) float64 {
	score := 0.0

	if req.Cuisine != "" {
		for _, have := range r.Cuisines {
			if cuisineMatches(have, req.Cuisine) {
				score += reqCuisineWeight
				break
			}
		}
	}

	if req.Budget != nil {
		wantRank := priceRankOfTier(req.Budget.Tier())
		diff := r.PriceRank() - wantRank
		if diff < 0 {
			diff = -diff
		}
		switch diff {
		case 0:
			score += reqBudgetExactWeight
		case 1:
			score += reqBudgetAdjacentWeight
		}
	}

	notes := strings.ToLower(req.Notes)
	for _, kw := range noteKeywords {
		if !strings.Contains(notes, kw) {
			continue
		}
		if tagsContain(r.Vibes, kw) || tagsContain(r.Highlights, kw) {
			score += reqNoteKeywordWeight
		}
	}

	score += ratingWeight * r.Rating
	return score
}

func priceRankOfTier(tier string) int {
	switch tier {
	case models.BudgetCheap:
		return 1
	case models.BudgetMid:
		return 2
	case models.BudgetHigh:
		return 3
	}
	return 0
}

func tagsContain(tags []string, kw string) bool {
	for _, t := range tags {
		if strings.Contains(strings.ToLower(t), kw) {
			return true
		}
	}
	return false
}

// requestAsSlots projects the booking-flow request onto the slot shape the
// reason generator works over.
func requestAsSlots(req models.ActiveRequest) models.Slots {
	s := models.Slots{Area: req.Area}
	if req.Cuisine != "" {
		s.CravingCuisines = []string{req.Cuisine}
	}
	if req.Budget != nil {
		s.Budget = req.Budget.Tier()
	}
	if v, ok := noteVibe(req.Notes); ok {
		s.Vibe = v
	}
	return s
}

func noteVibe(notes string) (string, bool) {
	lower := strings.ToLower(notes)
	for _, kw := range []string{models.VibeRomantic, models.VibeLively, models.VibeQuiet, models.VibeFamily} {
		if strings.Contains(lower, kw) {
			return kw, true
		}
	}
	return "", false
}
