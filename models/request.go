package models

// SlotType identifies one named, typed piece of a dining request.
type SlotType string

const (
	SlotArea      SlotType = "area"
	SlotMealTime  SlotType = "mealTime"
	SlotPartySize SlotType = "partySize"
	SlotBudget    SlotType = "budget"
	SlotCuisine   SlotType = "cuisine"
	SlotVibe      SlotType = "vibe"
	SlotDietary   SlotType = "dietary"
	SlotDate      SlotType = "date"
	SlotTime      SlotType = "time"
	SlotNotes     SlotType = "notes"
	SlotNone      SlotType = ""
)

// Meal time values accepted for Slots.MealTime.
const (
	MealBreakfast = "breakfast"
	MealLunch     = "lunch"
	MealDinner    = "dinner"
	MealCoffee    = "coffee"
	MealDrinks    = "drinks"
	MealLateNight = "late-night"
)

// Budget tiers accepted for Slots.Budget.
const (
	BudgetCheap = "cheap"
	BudgetMid   = "mid"
	BudgetHigh  = "high"
)

// Vibe values accepted for Slots.Vibe.
const (
	VibeRomantic = "romantic"
	VibeLively   = "lively"
	VibeQuiet    = "quiet"
	VibeOutdoor  = "outdoor"
	VibeFamily   = "family"
	VibeBusiness = "business"
)

// Slots accumulates the dining request across turns. A field is either
// absent (zero value) or holds a value from its declared domain; partially
// validated values never persist. Mutated only by the extraction pipeline.
type Slots struct {
	MealTime        string   `json:"mealTime,omitempty"`
	Area            string   `json:"area,omitempty"`
	PartySize       int      `json:"partySize,omitempty"`
	Budget          string   `json:"budget,omitempty"`
	CravingCuisines []string `json:"cravingCuisines,omitempty"`
	Vibe            string   `json:"vibe,omitempty"`
	Dietary         []string `json:"dietary,omitempty"`
	AvoidCuisines   []string `json:"avoidCuisines,omitempty"`
	AvoidTags       []string `json:"avoidTags,omitempty"`
}

// Complete reports whether enough is known to recommend: area, party size
// and budget are set, plus at least one flavor signal (cuisine, vibe or
// meal time).
func (s Slots) Complete() bool {
	if s.Area == "" || s.PartySize == 0 || s.Budget == "" {
		return false
	}
	return len(s.CravingCuisines) > 0 || s.Vibe != "" || s.MealTime != ""
}

// Clear resets every slot.
func (s *Slots) Clear() {
	*s = Slots{}
}

// ClearSlot resets one slot category by name.
func (s *Slots) ClearSlot(t SlotType) {
	switch t {
	case SlotArea:
		s.Area = ""
	case SlotMealTime:
		s.MealTime = ""
	case SlotPartySize:
		s.PartySize = 0
	case SlotBudget:
		s.Budget = ""
	case SlotCuisine:
		s.CravingCuisines = nil
	case SlotVibe:
		s.Vibe = ""
	case SlotDietary:
		s.Dietary = nil
	}
}

// BudgetLevel is the flat budget representation used by the booking flow:
// a 1..4 range plus a human label.
type BudgetLevel struct {
	Range int    `json:"range"`
	Label string `json:"label"`
}

// BudgetLabelForRange maps a 1..4 range onto its label.
func BudgetLabelForRange(r int) string {
	switch r {
	case 1:
		return BudgetCheap
	case 2:
		return BudgetMid
	case 3:
		return BudgetHigh
	case 4:
		return "luxury"
	}
	return ""
}

// Tier collapses the 1..4 range onto the three catalog price tiers.
func (b BudgetLevel) Tier() string {
	switch b.Range {
	case 1:
		return BudgetCheap
	case 2:
		return BudgetMid
	case 3, 4:
		return BudgetHigh
	}
	return ""
}

// ActiveRequest is the flatter slot representation used by the booking
// flow. Functionally the same request entity as Slots, with date/time for
// booking and a single cuisine, under a stricter completion predicate.
type ActiveRequest struct {
	Area      string       `json:"area,omitempty"`
	Cuisine   string       `json:"cuisine,omitempty"`
	Budget    *BudgetLevel `json:"budget,omitempty"`
	PartySize int          `json:"partySize,omitempty"`
	Date      string       `json:"date,omitempty"` // YYYY-MM-DD
	Time      string       `json:"time,omitempty"` // HH:MM or literal text
	Notes     string       `json:"notes,omitempty"`
}

// Complete requires every field of the booking flow to be set.
func (r ActiveRequest) Complete() bool {
	return r.Area != "" && r.Cuisine != "" && r.Budget != nil &&
		r.PartySize != 0 && r.Date != "" && r.Time != ""
}

// Clear resets every field.
func (r *ActiveRequest) Clear() {
	*r = ActiveRequest{}
}

// Flow is the common surface of the two request variants, so dialogue
// control is written once against completion and priority rather than a
// concrete slot set.
type Flow interface {
	Complete() bool
	NextSlot() SlotType
}

// NextSlot returns the first unfilled slot in the fixed priority order
// area, mealTime, partySize, budget, cuisine-or-vibe. It returns SlotNone
// whenever Complete holds, so a request that is complete through a later
// signal (say vibe with no meal time) is never asked to backfill an
// earlier one.
func (s Slots) NextSlot() SlotType {
	if s.Complete() {
		return SlotNone
	}
	switch {
	case s.Area == "":
		return SlotArea
	case s.MealTime == "":
		return SlotMealTime
	case s.PartySize == 0:
		return SlotPartySize
	case s.Budget == "":
		return SlotBudget
	}
	return SlotCuisine
}

// NextSlot returns the first unfilled field in the booking-flow order
// area, cuisine, budget, date, time, partySize.
func (r ActiveRequest) NextSlot() SlotType {
	switch {
	case r.Area == "":
		return SlotArea
	case r.Cuisine == "":
		return SlotCuisine
	case r.Budget == nil:
		return SlotBudget
	case r.Date == "":
		return SlotDate
	case r.Time == "":
		return SlotTime
	case r.PartySize == 0:
		return SlotPartySize
	}
	return SlotNone
}
