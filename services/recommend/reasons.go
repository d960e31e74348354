package recommend

import (
	"fmt"
	"strings"

	"tablemate/models"
)

const highRatingThreshold = 4.5

// reasons produces up to three short justification strings for one pick,
// in fixed priority: cuisine, vibe, budget, high rating, first highlight.
// A category only appears when it was requested and actually matched.
func reasons(r models.Restaurant, slots models.Slots) []string {
	var out []string

	for _, want := range slots.CravingCuisines {
		matched := ""
		for _, have := range r.Cuisines {
			if cuisineMatches(have, want) {
				matched = have
				break
			}
		}
		if matched != "" {
			out = append(out, fmt.Sprintf("serves the %s food you're craving", matched))
			break
		}
	}

	if slots.Vibe != "" && hasVibeCategory(r.Vibes, slots.Vibe) {
		out = append(out, fmt.Sprintf("has the %s atmosphere you asked for", slots.Vibe))
	}

	if slots.Budget != "" && r.Price == tierToPrice[slots.Budget] {
		out = append(out, fmt.Sprintf("fits your %s budget", budgetPhrase(slots.Budget)))
	}

	if len(out) < 3 && r.Rating >= highRatingThreshold {
		out = append(out, fmt.Sprintf("rated %.1f by diners", r.Rating))
	}

	if len(out) < 3 && len(r.Highlights) > 0 {
		out = append(out, strings.ToLower(r.Highlights[0]))
	}

	if len(out) > 3 {
		out = out[:3]
	}
	return out
}

func budgetPhrase(tier string) string {
	switch tier {
	case models.BudgetCheap:
		return "budget-friendly"
	case models.BudgetMid:
		return "mid-range"
	case models.BudgetHigh:
		return "high-end"
	}
	return tier
}
