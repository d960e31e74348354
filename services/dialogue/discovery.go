package dialogue

import (
	"fmt"
	"strings"

	"tablemate/models"
	"tablemate/services/catalog"
)

// Question is the next thing to ask, tagged with the slot it fills.
type Question struct {
	Text string
	Slot models.SlotType
}

// Policy decides the next unanswered slot in fixed priority order and
// renders the question. It never re-asks a filled slot, and returns nil
// exactly when the flow's completion predicate holds.
type Policy struct {
	Cat *catalog.Catalog
}

// NewPolicy builds a Policy over the given catalog.
func NewPolicy(cat *catalog.Catalog) *Policy {
	return &Policy{Cat: cat}
}

// NextQuestion returns the question for the discovery flow, or nil when
// the request is complete. The profile only flavors wording; it never
// fills a slot.
func (p *Policy) NextQuestion(slots models.Slots, profile models.Profile) *Question {
	slot := slots.NextSlot()
	if slot == models.SlotNone {
		return nil
	}
	return &Question{Text: p.render(slot, profile), Slot: slot}
}

// NextRequestQuestion returns the question for the booking flow, or nil
// when the request is complete.
func (p *Policy) NextRequestQuestion(req models.ActiveRequest) *Question {
	slot := req.NextSlot()
	if slot == models.SlotNone {
		return nil
	}
	return &Question{Text: p.render(slot, models.Profile{}), Slot: slot}
}

func (p *Policy) render(slot models.SlotType, profile models.Profile) string {
	switch slot {
	case models.SlotArea:
		return fmt.Sprintf("Which part of town should I look in? For example %s.", examples(p.Cat.Areas()))
	case models.SlotMealTime:
		return "Is this for breakfast, lunch, dinner, coffee, drinks, or a late-night bite?"
	case models.SlotPartySize:
		return "How many people will be joining?"
	case models.SlotBudget:
		if profile.DefaultBudget != "" {
			return fmt.Sprintf("What's the budget — cheap, mid, or high? Last time you went %s.", profile.DefaultBudget)
		}
		return "What's the budget — cheap, mid, or high?"
	case models.SlotCuisine:
		return fmt.Sprintf("Any cuisine you're craving, or a vibe you're after? We have %s.", examples(p.Cat.Cuisines()))
	case models.SlotVibe:
		return "What kind of vibe — romantic, lively, quiet, outdoor, family, or business?"
	case models.SlotDietary:
		return "Any dietary needs I should keep in mind?"
	case models.SlotDate:
		return "What date should I book for? Tomorrow, a weekday, or an exact date all work."
	case models.SlotTime:
		return "What time works for you?"
	case models.SlotNotes:
		return "Anything else I should pass along to the restaurant? Say no if not."
	}
	return "Tell me a bit more about what you're looking for."
}

// examples renders the first few catalog values for a re-prompt.
func examples(values []string) string {
	if len(values) > 4 {
		values = values[:4]
	}
	return strings.Join(values, ", ")
}
