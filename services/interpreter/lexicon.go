package interpreter

import (
	"regexp"
	"strconv"
	"strings"

	"tablemate/models"
)

// The keyword lexicons below are the deterministic backbone of the
// interpreter: the keyword engine runs on them directly, and the pipeline
// uses the cue checks to reject LLM extractions with no textual evidence.

var greetings = map[string]bool{
	"hello": true, "hi": true, "hey": true, "hiya": true, "yo": true,
	"ok": true, "okay": true, "sure": true, "thanks": true, "thank": true,
	"thx": true, "yes": true, "yep": true, "yeah": true, "no": true,
	"nope": true, "cool": true, "great": true, "morning": true, "evening": true,
	"good": true, "you": true, "there": true,
}

var nonWord = regexp.MustCompile(`[^a-z0-9$:\-]+`)

// Tokens lowercases and splits a message, stripping punctuation.
func Tokens(text string) []string {
	cleaned := nonWord.ReplaceAllString(strings.ToLower(text), " ")
	return strings.Fields(cleaned)
}

// IsGreeting reports whether the message is a bare greeting or short
// casual acknowledgment: every token on the closed list and at most two
// tokens overall. Such messages never reach the LLM.
func IsGreeting(text string) bool {
	toks := Tokens(text)
	if len(toks) == 0 || len(toks) > 2 {
		return false
	}
	for _, t := range toks {
		if !greetings[t] {
			return false
		}
	}
	return true
}

// "budget" itself is deliberately absent: it names the topic, not a tier
// ("my budget is high"). It counts as evidence in HasBudgetCue only.
var budgetWords = map[string]int{
	"cheap": 1, "affordable": 1, "inexpensive": 1, "economical": 1,
	"mid": 2, "moderate": 2, "medium": 2, "average": 2, "reasonable": 2,
	"midrange": 2, "mid-range": 2,
	"high": 3, "expensive": 3, "fancy": 3, "upscale": 3, "pricey": 3,
	"fine": 3, "splurge": 3, "premium": 3,
	"lavish": 4, "luxury": 4, "luxurious": 4, "extravagant": 4,
}

var dollarRange = regexp.MustCompile(`(\d+)\s*-\s*(\d+)`)

// MapBudget maps explicit budget wording or a dollar range onto the 1..4
// scale. Bare numerals are deliberately not accepted here; see
// MapBudgetReply.
func MapBudget(text string) (models.BudgetLevel, bool) {
	for _, t := range Tokens(text) {
		if r, ok := budgetWords[strings.TrimPrefix(t, "$")]; ok {
			return models.BudgetLevel{Range: r, Label: models.BudgetLabelForRange(r)}, true
		}
	}
	if m := dollarRange.FindStringSubmatch(text); m != nil {
		upper, _ := strconv.Atoi(m[2])
		r := rangeForDollars(upper)
		return models.BudgetLevel{Range: r, Label: models.BudgetLabelForRange(r)}, true
	}
	return models.BudgetLevel{}, false
}

// MapBudgetReply additionally accepts a bare numeral 1..4 when the user is
// answering the budget question directly.
func MapBudgetReply(reply string) (models.BudgetLevel, bool) {
	if b, ok := MapBudget(reply); ok {
		return b, true
	}
	toks := Tokens(reply)
	if len(toks) == 1 {
		if n, err := strconv.Atoi(toks[0]); err == nil && n >= 1 && n <= 4 {
			return models.BudgetLevel{Range: n, Label: models.BudgetLabelForRange(n)}, true
		}
	}
	return models.BudgetLevel{}, false
}

func rangeForDollars(upper int) int {
	switch {
	case upper <= 100:
		return 1
	case upper <= 200:
		return 2
	case upper <= 400:
		return 3
	}
	return 4
}

// HasBudgetCue reports price/cost-related keyword evidence.
func HasBudgetCue(text string) bool {
	if _, ok := MapBudget(text); ok {
		return true
	}
	lower := strings.ToLower(text)
	for _, cue := range []string{"budget", "price", "cost", "spend", "$", "dollar", "per person"} {
		if strings.Contains(lower, cue) {
			return true
		}
	}
	return false
}

var mealWords = map[string]string{
	"breakfast": models.MealBreakfast, "brunch": models.MealBreakfast,
	"lunch": models.MealLunch, "dinner": models.MealDinner, "supper": models.MealDinner,
	"tonight": models.MealDinner, "evening": models.MealDinner,
	"coffee": models.MealCoffee, "cafe": models.MealCoffee, "espresso": models.MealCoffee,
	"drinks": models.MealDrinks, "cocktails": models.MealDrinks, "cocktail": models.MealDrinks,
	"bar": models.MealDrinks, "aperitif": models.MealDrinks,
	"late-night": models.MealLateNight, "midnight": models.MealLateNight,
}

// Weak meal words only count when meal time is the slot being asked about;
// "noon" in free text is more often a time than a meal statement.
var mealReplyWords = map[string]string{
	"noon": models.MealLunch, "midday": models.MealLunch,
	"morning": models.MealBreakfast, "afternoon": models.MealLunch,
	"late": models.MealLateNight, "night": models.MealDinner,
}

// MapMealTime maps strong meal wording in free text.
func MapMealTime(text string) (string, bool) {
	for _, t := range Tokens(text) {
		if v, ok := mealWords[t]; ok {
			return v, true
		}
	}
	return "", false
}

// MapMealTimeReply also accepts the weaker time-of-day words, because the
// pending question disambiguates them.
func MapMealTimeReply(reply string) (string, bool) {
	if v, ok := MapMealTime(reply); ok {
		return v, true
	}
	for _, t := range Tokens(reply) {
		if v, ok := mealReplyWords[t]; ok {
			return v, true
		}
	}
	return "", false
}

// HasMealCue reports time-of-day or meal keyword evidence.
func HasMealCue(text string) bool {
	if _, ok := MapMealTime(text); ok {
		return true
	}
	_, ok := MapMealTimeReply(text)
	return ok
}

var vibeWords = map[string]string{
	"romantic": models.VibeRomantic, "date": models.VibeRomantic,
	"intimate": models.VibeRomantic, "anniversary": models.VibeRomantic,
	"lively": models.VibeLively, "fun": models.VibeLively, "party": models.VibeLively,
	"buzzing": models.VibeLively, "energetic": models.VibeLively,
	"quiet": models.VibeQuiet, "calm": models.VibeQuiet,
	"chill": models.VibeQuiet, "peaceful": models.VibeQuiet,
	"outdoor": models.VibeOutdoor, "outdoors": models.VibeOutdoor,
	"terrace": models.VibeOutdoor, "rooftop": models.VibeOutdoor, "garden": models.VibeOutdoor,
	"family": models.VibeFamily, "kids": models.VibeFamily, "kid-friendly": models.VibeFamily,
	"business": models.VibeBusiness, "meeting": models.VibeBusiness, "work": models.VibeBusiness,
}

// MapVibe maps atmosphere wording onto the vibe enum.
func MapVibe(text string) (string, bool) {
	for _, t := range Tokens(text) {
		if v, ok := vibeWords[t]; ok {
			return v, true
		}
	}
	return "", false
}

// HasVibeCue reports atmosphere keyword evidence.
func HasVibeCue(text string) bool {
	_, ok := MapVibe(text)
	return ok
}

var numberWords = map[string]int{
	"one": 1, "two": 2, "three": 3, "four": 4, "five": 5, "six": 6,
	"seven": 7, "eight": 8, "nine": 9, "ten": 10, "eleven": 11, "twelve": 12,
	"couple": 2, "alone": 1, "solo": 1,
}

var partyPattern = regexp.MustCompile(`(?i)\b(?:for|party of|table for|group of)\s+(\d{1,2})\b`)
var bareNumber = regexp.MustCompile(`\b(\d{1,2})\b`)

var partyCues = []string{"people", "person", "persons", "of us", "guests", "pax", "party", "table"}

// ParsePartySize extracts a head count from free text. It requires either
// a "for N" style pattern or a people-related cue near a number, so stray
// numerals do not become party sizes.
func ParsePartySize(text string) (int, bool) {
	if m := partyPattern.FindStringSubmatch(text); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil && n > 0 {
			return n, true
		}
	}
	lower := strings.ToLower(text)
	hasCue := false
	for _, cue := range partyCues {
		if strings.Contains(lower, cue) {
			hasCue = true
			break
		}
	}
	for _, t := range Tokens(text) {
		if n, ok := numberWords[t]; ok && (hasCue || n <= 2) {
			return n, true
		}
	}
	if !hasCue {
		return 0, false
	}
	if m := bareNumber.FindStringSubmatch(text); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil && n > 0 {
			return n, true
		}
	}
	return 0, false
}

// ParsePartySizeReply accepts a bare number when party size is the pending
// question.
func ParsePartySizeReply(reply string) (int, bool) {
	if n, ok := ParsePartySize(reply); ok {
		return n, true
	}
	if m := bareNumber.FindStringSubmatch(reply); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil && n > 0 {
			return n, true
		}
	}
	for _, t := range Tokens(reply) {
		if n, ok := numberWords[t]; ok {
			return n, true
		}
	}
	return 0, false
}

// Common cuisine wording mapped to canonical catalog-style names. The
// final word is still resolved against the catalog's own cuisine list.
var cuisineWords = map[string]string{
	"lebanese": "Lebanese", "mezze": "Lebanese", "shawarma": "Lebanese",
	"italian": "Italian", "pasta": "Italian", "pizza": "Italian",
	"japanese": "Japanese", "sushi": "Japanese", "ramen": "Japanese",
	"french": "French", "bistro": "French", "armenian": "Armenian",
	"mexican": "Mexican", "tacos": "Mexican",
	"indian": "Indian", "curry": "Indian",
	"seafood": "Seafood", "fish": "Seafood",
	"burger": "Burgers", "burgers": "Burgers", "mediterranean": "Mediterranean",
	"chinese": "Chinese", "thai": "Thai",
	"american": "American", "steak": "American",
}

// MapCuisines collects every cuisine mentioned in the text.
func MapCuisines(text string) []string {
	var out []string
	seen := map[string]bool{}
	for _, t := range Tokens(text) {
		if c, ok := cuisineWords[t]; ok && !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
	}
	return out
}

var dietaryWords = map[string]string{
	"vegetarian": "vegetarian", "veggie": "vegetarian", "vegan": "vegan",
	"gluten-free": "gluten-free", "gluten": "gluten-free", "celiac": "gluten-free",
	"halal": "halal", "kosher": "kosher",
	"nut-free": "nut-free", "dairy-free": "dairy-free",
}

// MapDietary collects dietary requirements mentioned in the text.
func MapDietary(text string) []string {
	var out []string
	seen := map[string]bool{}
	for _, t := range Tokens(text) {
		if d, ok := dietaryWords[t]; ok && !seen[d] {
			seen[d] = true
			out = append(out, d)
		}
	}
	return out
}

var areaPattern = regexp.MustCompile(`(?i)\b(?:in|at|around|near)\s+([a-zA-Z][a-zA-Z' ]{1,30}?)(?:$|[,.!?]|\s+(?:for|with|on|tonight|tomorrow|this|next|and)\b)`)

// GuessArea captures a likely location phrase ("in Hamra", "near Badaro").
func GuessArea(text string) (string, bool) {
	if m := areaPattern.FindStringSubmatch(text); m != nil {
		guess := strings.TrimSpace(m[1])
		if guess != "" {
			return guess, true
		}
	}
	return "", false
}

// MatchChoice resolves a raw guess against a known value list with a
// bidirectional substring match, tolerating partial or abbreviated input.
// Confidence: 0.95 exact, 0.8 substring, 0 when unresolved.
func MatchChoice(raw string, choices []string) (string, float64) {
	if raw == "" {
		return "", 0
	}
	lower := strings.ToLower(strings.TrimSpace(raw))
	for _, c := range choices {
		if strings.ToLower(c) == lower {
			return c, 0.95
		}
	}
	for _, c := range choices {
		cl := strings.ToLower(c)
		if strings.Contains(cl, lower) || strings.Contains(lower, cl) {
			return c, 0.8
		}
	}
	return "", 0
}

var clockPattern = regexp.MustCompile(`(?i)\b(\d{1,2})(?::(\d{2}))?\s*(am|pm)?\b`)

// ParseClockTime normalizes "8pm", "19:30", "7:15 PM" to HH:MM. Returns
// false when no clock reading is present, in which case callers keep the
// literal text.
func ParseClockTime(text string) (string, bool) {
	m := clockPattern.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	hour, _ := strconv.Atoi(m[1])
	minute := 0
	if m[2] != "" {
		minute, _ = strconv.Atoi(m[2])
	}
	meridiem := strings.ToLower(m[3])
	if m[2] == "" && meridiem == "" {
		// a bare number with no colon or am/pm is too ambiguous
		return "", false
	}
	if meridiem == "pm" && hour < 12 {
		hour += 12
	}
	if meridiem == "am" && hour == 12 {
		hour = 0
	}
	if hour > 23 || minute > 59 {
		return "", false
	}
	return twoDigit(hour) + ":" + twoDigit(minute), true
}

func twoDigit(n int) string {
	if n < 10 {
		return "0" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}
